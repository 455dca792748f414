// Package remove implements the HTTP handler for deleting a session.
//
// Deleting a session is irreversible and the owning package's hour
// aggregates drop on the next query, so the route is restricted to
// administrators.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/tutoriacr/package-ledger/internal/http/response"
	"github.com/tutoriacr/package-ledger/internal/lib/sl"
	ledgersvc "github.com/tutoriacr/package-ledger/internal/services/ledger"
)

// Handler handles requests for removing a session by its ID.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the session removal part of the ledger business logic.
type Service interface {
	RemoveSession(ctx context.Context, sessionID int) error
}

// New creates a new Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Remove a session
// @Description Deletes the session with the given ID.
// @Tags Sessions
// @Produce  json
// @Param id path int true "Session ID"
// @Success 200 {object} map[string]any "Session removed"
// @Failure 400 {object} response.ErrorResponse "Malformed ID"
// @Failure 404 {object} response.ErrorResponse "Session not found"
// @Failure 500 {object} response.ErrorResponse "Server error while removing the session"
// @Router /sessions/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.session.remove"

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

	if err := h.service.RemoveSession(r.Context(), id); err != nil {
		if errors.Is(err, ledgersvc.ErrSessionNotFound) {
			log.Error("session not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("session not found"))
			return
		}
		log.Error("failed to remove session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove session"))
		return
	}

	log.Info("success to remove session", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"removed_id": id,
	}))
}
