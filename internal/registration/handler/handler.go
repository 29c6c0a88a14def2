package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ponto/internal/platform/middleware"
	"ponto/internal/registration/models"
	"ponto/internal/registration/service"
)

// Service defines the registration operations the handler depends on.
type Service interface {
	Register(ctx context.Context, req *models.Registration) (*models.RegistrationResult, error)
}

// Handler is the thin HTTP layer for company registration. It owns syntactic
// validation and envelope shaping; uniqueness rules live in the service.
type Handler struct {
	logger  *slog.Logger
	service Service
}

// New creates a registration Handler.
func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: svc}
}

// Register registers the registration routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/cadastrarpj", h.handleCadastrarPJ)
}

// handleCadastrarPJ registers a company together with its first
// administrative employee.
func (h *Handler) handleCadastrarPJ(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req CadastroPJRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid cadastro request body",
			"request_id", requestID,
			"error", err.Error(),
		)
		writeErros(w, http.StatusBadRequest, []string{"invalid request body"})
		return
	}

	req.Normalize()
	if errs := req.Validate(); len(errs) > 0 {
		writeErros(w, http.StatusBadRequest, errs)
		return
	}

	res, err := h.service.Register(ctx, req.ToRegistration())
	if err != nil {
		var conflictErr *service.ConflictError
		if errors.As(err, &conflictErr) {
			writeErros(w, http.StatusBadRequest, conflictErr.Messages())
			return
		}
		h.logger.ErrorContext(ctx, "registration failed",
			"request_id", requestID,
			"error", err.Error(),
		)
		writeErros(w, http.StatusInternalServerError, []string{"registration could not be completed"})
		return
	}

	writeData(w, http.StatusOK, newCadastroPJData(res))
}
