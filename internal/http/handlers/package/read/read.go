// Package read implements the HTTP handler for fetching a single package
// by its ID.
//
// The handler extracts the ID from the URL parameters, delegates the read
// to the ledger service and returns the package data in JSON format.
package read

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
	"github.com/tutoriacr/package-ledger/internal/models"
	ledgersvc "github.com/tutoriacr/package-ledger/internal/services/ledger"
)

// Handler handles requests for reading a package by its unique identifier.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the package read part of the ledger business logic.
type Service interface {
	ReadPackage(ctx context.Context, id int) (*models.Package, error)
}

// New creates a new Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Read a package
// @Description Returns the package with the given ID.
// @Tags Packages
// @Produce  json
// @Param id path int true "Package ID"
// @Success 200 {object} map[string]any "Package data"
// @Failure 400 {object} response.ErrorResponse "Malformed ID"
// @Failure 404 {object} response.ErrorResponse "Package not found"
// @Failure 500 {object} response.ErrorResponse "Server error while reading the package"
// @Router /packages/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.package.read"

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

	res, err := h.service.ReadPackage(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledgersvc.ErrPackageNotFound) {
			log.Error("package not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("package not found"))
			return
		}
		log.Error("failed to read package", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read package"))
		return
	}

	log.Info("success to read package", slog.Any("package", res))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"package": res,
	}))
}
