package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ponto/internal/platform/config"
	"ponto/internal/platform/httpserver"
	"ponto/internal/platform/logger"
	"ponto/internal/platform/middleware"
	"ponto/internal/platform/postgres"
	redisplatform "ponto/internal/platform/redis"
	reghandler "ponto/internal/registration/handler"
	regmetrics "ponto/internal/registration/metrics"
	"ponto/internal/registration/service"
	orgstore "ponto/internal/registration/store/organization"
	personstore "ponto/internal/registration/store/person"
	"ponto/pkg/password"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal/registration.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx := context.Background()

	organizations, persons, cleanup, err := buildStores(ctx, cfg, log)
	if err != nil {
		log.Error("store initialization failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	svc := service.New(organizations, persons, password.NewHasher(cfg.BcryptCost),
		service.WithLogger(log),
		service.WithMetrics(regmetrics.New()),
	)

	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))

	reghandler.New(svc, log).Register(r)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := httpserver.New(cfg.Addr, r)

	log.Info("starting ponto server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

// buildStores selects the identity store backend: postgres when a database
// URL is configured, redis as a lighter alternative, in-memory otherwise.
func buildStores(ctx context.Context, cfg config.Server, log *slog.Logger) (service.OrganizationStore, service.PersonStore, func(), error) {
	switch {
	case cfg.DatabaseURL != "":
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		log.Info("using postgres identity stores")
		return orgstore.NewPostgres(db), personstore.NewPostgres(db), func() { db.Close() }, nil

	case cfg.RedisURL != "":
		client, err := redisplatform.New(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Info("using redis identity stores")
		return orgstore.NewRedis(client.Client), personstore.NewRedis(client.Client), func() { client.Close() }, nil

	default:
		log.Info("using in-memory identity stores")
		return orgstore.NewInMemory(), personstore.NewInMemory(), func() {}, nil
	}
}
