// Package setstatus implements the HTTP handler for closing out a session.
//
// A confirmed session can move to completed or cancelled; both states are
// terminal, so a second status change is rejected with a conflict.
package setstatus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/tutoriacr/package-ledger/internal/http/response"
	"github.com/tutoriacr/package-ledger/internal/lib/sl"
	"github.com/tutoriacr/package-ledger/internal/models"
	ledgersvc "github.com/tutoriacr/package-ledger/internal/services/ledger"
)

// Handler handles requests for changing a session status.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service describes the session close-out part of the ledger business logic.
type Service interface {
	SetSessionStatus(ctx context.Context, sessionID int, status string) error
}

// New creates a new Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Change a session status
// @Description Moves a confirmed session to completed or cancelled. Terminal statuses cannot be changed again.
// @Tags Sessions
// @Accept  json
// @Produce  json
// @Param id path int true "Session ID"
// @Param request body models.DummySessionStatus true "Target status"
// @Success 200 {object} map[string]any "Status changed"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON or ID"
// @Failure 404 {object} response.ErrorResponse "Session not found"
// @Failure 409 {object} response.ErrorResponse "Session is already closed"
// @Failure 422 {object} response.ErrorResponse "Validation failure"
// @Failure 500 {object} response.ErrorResponse "Server error while changing the status"
// @Router /sessions/{id}/status [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.session.setstatus"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	var req models.DummySessionStatus
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	if err := h.service.SetSessionStatus(r.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, ledgersvc.ErrSessionNotFound):
			log.Error("session not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("session not found"))
		case errors.Is(err, ledgersvc.ErrSessionClosed):
			log.Error("session is already closed", slog.Int("id", id))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("session is already completed or cancelled"))
		default:
			log.Error("failed to change session status", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not change session status"))
		}
		return
	}

	log.Info("success to change session status",
		slog.Int("id", id), slog.String("status", req.Status))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":     id,
		"status": req.Status,
	}))
}
