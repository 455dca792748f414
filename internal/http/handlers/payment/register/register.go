// Package register implements the HTTP handler for registering a payment
// against a package.
//
// The amount is added to the package's cumulative balance and the payment
// status is recomputed in the same store transaction. The handler returns
// the updated totals.
package register

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

// Handler handles requests for registering payments.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service describes the payment registration part of the ledger business logic.
type Service interface {
	RegisterPayment(ctx context.Context, packageID, amount int) (int, string, error)
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
// @Summary Register a payment
// @Description Adds a positive amount to the package's paid balance and recomputes the payment status.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param id path int true "Package ID"
// @Param request body models.DummyPayment true "Payment amount"
// @Success 200 {object} map[string]any "Updated totals"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON or ID"
// @Failure 404 {object} response.ErrorResponse "Package not found"
// @Failure 422 {object} response.ErrorResponse "Validation failure or non-positive amount"
// @Failure 500 {object} response.ErrorResponse "Server error while registering the payment"
// @Router /packages/{id}/payments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.register"

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

	var req models.DummyPayment
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

	amountPaid, paymentStatus, err := h.service.RegisterPayment(r.Context(), packageID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, ledgersvc.ErrPackageNotFound):
			log.Error("package not found", slog.Int("id", packageID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("package not found"))
		case errors.Is(err, ledgersvc.ErrInvalidAmount):
			log.Error("non-positive payment amount", slog.Int("amount", req.Amount))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("payment amount must be positive"))
		default:
			log.Error("failed to register payment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not register payment"))
		}
		return
	}

	log.Info("success to register payment",
		slog.Int("package_id", packageID),
		slog.Int("amount_paid", amountPaid),
		slog.String("payment_status", paymentStatus))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"package_id":     packageID,
		"amount_paid":    amountPaid,
		"payment_status": paymentStatus,
	}))
}
