// Package remove implements the HTTP handler for deleting a package.
//
// Removing a package cascades to its sessions and payments, so the route is
// restricted to administrators.
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

// Handler handles requests for removing a package by its ID.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the package removal part of the ledger business logic.
type Service interface {
	RemovePackage(ctx context.Context, id int) error
}

// New creates a new Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Remove a package
// @Description Deletes the package with the given ID together with its sessions and payments.
// @Tags Packages
// @Produce  json
// @Param id path int true "Package ID"
// @Success 200 {object} map[string]any "Package removed"
// @Failure 400 {object} response.ErrorResponse "Malformed ID"
// @Failure 404 {object} response.ErrorResponse "Package not found"
// @Failure 500 {object} response.ErrorResponse "Server error while removing the package"
// @Router /packages/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.package.remove"

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

	if err := h.service.RemovePackage(r.Context(), id); err != nil {
		if errors.Is(err, ledgersvc.ErrPackageNotFound) {
			log.Error("package not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("package not found"))
			return
		}
		log.Error("failed to remove package", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove package"))
		return
	}

	log.Info("success to remove package", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"removed_id": id,
	}))
}
