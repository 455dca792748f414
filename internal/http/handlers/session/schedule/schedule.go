// Package schedule implements the HTTP handler for scheduling a session
// against a package.
//
// The handler decodes a JSON request with the session data, validates it,
// delegates the scheduling to the ledger service and returns the ID of the
// created session. New sessions always start as confirmed.
package schedule

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

// Handler handles requests for scheduling sessions.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service describes the session scheduling part of the ledger business logic.
type Service interface {
	ScheduleSession(ctx context.Context, packageID int, req models.DummySession) (int, error)
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
// @Summary Schedule a session
// @Description Appends a new confirmed session to the package.
// @Tags Sessions
// @Accept  json
// @Produce  json
// @Param id path int true "Package ID"
// @Param request body models.DummySession true "Session data"
// @Success 200 {object} map[string]any "Session scheduled"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON or ID"
// @Failure 404 {object} response.ErrorResponse "Package not found"
// @Failure 422 {object} response.ErrorResponse "Validation failure or malformed timestamp"
// @Failure 500 {object} response.ErrorResponse "Server error while scheduling the session"
// @Router /packages/{id}/sessions [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.session.schedule"

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

	var req models.DummySession
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

	id, err := h.service.ScheduleSession(r.Context(), packageID, req)
	if err != nil {
		switch {
		case errors.Is(err, ledgersvc.ErrPackageNotFound):
			log.Error("package not found", slog.Int("id", packageID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("package not found"))
		case errors.Is(err, ledgersvc.ErrInvalidTimestamp):
			log.Error("malformed timestamp", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("scheduled_at must be a valid RFC 3339 timestamp"))
		case errors.Is(err, ledgersvc.ErrInvalidDuration):
			log.Error("non-positive duration", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("duration_minutes must be positive"))
		default:
			log.Error("failed to schedule session", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not schedule session"))
		}
		return
	}

	log.Info("success to schedule session", slog.Int("id", id), slog.Int("package_id", packageID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"last_added_id": id,
	}))
}
