// Package complete implements the HTTP handler for closing out a tutoring
// package.
//
// Closing is gated on the delivered hours: a package whose completed sessions
// do not yet cover the contracted hours is rejected with a conflict.
package complete

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

// Handler handles requests for completing a package.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the package close-out part of the ledger business logic.
type Service interface {
	CompletePackage(ctx context.Context, id int) error
}

// New creates a new Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Complete a package
// @Description Marks the package as completed once its delivered hours cover the contracted hours.
// @Tags Packages
// @Produce  json
// @Param id path int true "Package ID"
// @Success 200 {object} map[string]any "Package completed"
// @Failure 400 {object} response.ErrorResponse "Malformed ID"
// @Failure 404 {object} response.ErrorResponse "Package not found"
// @Failure 409 {object} response.ErrorResponse "Delivered hours below the contracted hours"
// @Failure 500 {object} response.ErrorResponse "Server error while completing the package"
// @Router /packages/{id}/complete [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.package.complete"

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

	if err := h.service.CompletePackage(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, ledgersvc.ErrPackageNotFound):
			log.Error("package not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("package not found"))
		case errors.Is(err, ledgersvc.ErrHoursIncomplete):
			log.Error("package hours are not delivered yet", slog.Int("id", id))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("delivered hours below contracted hours"))
		default:
			log.Error("failed to complete package", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not complete package"))
		}
		return
	}

	log.Info("success to complete package", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"completed_id": id,
	}))
}
