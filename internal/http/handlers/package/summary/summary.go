// Package summary implements the HTTP handler for the package ledger summary.
//
// The summary aggregates delivered and scheduled hours, progress percent,
// remaining balance, payment status and the attention flag for one package.
package summary

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

// Handler handles requests for the ledger summary of a package.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the summary part of the ledger business logic.
type Service interface {
	Summary(ctx context.Context, id int) (*models.PackageSummary, error)
}

// New creates a new Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Package ledger summary
// @Description Returns delivered and scheduled hours, progress, remaining balance, payment status and the attention flag of the package.
// @Tags Packages
// @Produce  json
// @Param id path int true "Package ID"
// @Success 200 {object} map[string]any "Ledger summary"
// @Failure 400 {object} response.ErrorResponse "Malformed ID"
// @Failure 404 {object} response.ErrorResponse "Package not found"
// @Failure 500 {object} response.ErrorResponse "Server error while building the summary"
// @Router /packages/{id}/summary [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.package.summary"

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

	res, err := h.service.Summary(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledgersvc.ErrPackageNotFound) {
			log.Error("package not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("package not found"))
			return
		}
		log.Error("failed to build summary", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build summary"))
		return
	}

	log.Info("success to build summary", slog.Int("id", id), slog.String("flag", res.Flag))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"summary": res,
	}))
}
