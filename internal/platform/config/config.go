package config

import (
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Server captures process level configuration.
type Server struct {
	Addr            string
	DatabaseURL     string
	RedisURL        string
	BcryptCost      int
	ShutdownTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("PONTO_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	cost := bcrypt.DefaultCost
	if v := os.Getenv("PONTO_BCRYPT_COST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cost = parsed
		}
	}

	shutdown := 10 * time.Second
	if v := os.Getenv("PONTO_SHUTDOWN_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			shutdown = parsed
		}
	}

	return Server{
		Addr:            addr,
		DatabaseURL:     os.Getenv("PONTO_DATABASE_URL"),
		RedisURL:        os.Getenv("PONTO_REDIS_URL"),
		BcryptCost:      cost,
		ShutdownTimeout: shutdown,
	}
}
