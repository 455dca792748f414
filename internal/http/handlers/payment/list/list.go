// Package list implements the HTTP handler for the payment history of a
// package, newest first.
package list

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

// Handler handles requests for listing the payments of a package.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the payment history part of the ledger business logic.
type Service interface {
	ListPayments(ctx context.Context, packageID int) ([]*models.Payment, error)
}

// New creates a new Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary List payments
// @Description Returns the payment history of the package, newest first.
// @Tags Payments
// @Produce  json
// @Param id path int true "Package ID"
// @Success 200 {object} map[string]any "Payment list"
// @Failure 400 {object} response.ErrorResponse "Malformed ID"
// @Failure 404 {object} response.ErrorResponse "Package not found"
// @Failure 500 {object} response.ErrorResponse "Server error while listing payments"
// @Router /packages/{id}/payments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	packageID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	res, err := h.service.ListPayments(r.Context(), packageID)
	if err != nil {
		if errors.Is(err, ledgersvc.ErrPackageNotFound) {
			log.Error("package not found", slog.Int("id", packageID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("package not found"))
			return
		}
		log.Error("failed to list payments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list payments"))
		return
	}

	log.Info("success to list payments", slog.Int("count", len(res)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"payments": res,
		"count":    len(res),
	}))
}
