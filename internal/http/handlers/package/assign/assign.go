// Package assign implements the HTTP handler for matching a tutor to a
// package. Administrators only.
package assign

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
	ledgersvc "github.com/tutoriacr/package-ledger/internal/services/ledger"
)

// Request carries the tutor assignment data.
type Request struct {
	TutorUID string `json:"tutor_uid" validate:"required,uuid"`
}

// Service describes the tutor matching part of the ledger business logic.
type Service interface {
	AssignTutor(ctx context.Context, id int, tutorUID string) error
}

// Handler handles requests for assigning a tutor to a package.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
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
// @Summary Assign a tutor
// @Description Matches the given tutor to an open package.
// @Tags Packages
// @Accept  json
// @Produce  json
// @Param id path int true "Package ID"
// @Param request body Request true "Tutor UID"
// @Success 200 {object} map[string]any "Tutor assigned"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON or ID"
// @Failure 404 {object} response.ErrorResponse "Package not found"
// @Failure 422 {object} response.ErrorResponse "Validation failure"
// @Failure 500 {object} response.ErrorResponse "Server error while assigning the tutor"
// @Router /packages/{id}/assign [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.package.assign"

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

	var req Request
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

	if err := h.service.AssignTutor(r.Context(), id, req.TutorUID); err != nil {
		if errors.Is(err, ledgersvc.ErrPackageNotFound) {
			log.Error("package not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("package not found"))
			return
		}
		log.Error("failed to assign tutor", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not assign tutor"))
		return
	}

	log.Info("success to assign tutor", slog.Int("id", id), slog.String("tutor_uid", req.TutorUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"package_id": id,
		"tutor_uid":  req.TutorUID,
	}))
}
