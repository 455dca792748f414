// Package create implements the HTTP handler for contracting new tutoring
// packages.
//
// The handler decodes a JSON request with the package data, validates it,
// extracts the student UID from the request context, delegates the creation
// to the ledger service and returns the ID of the created package.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/tutoriacr/package-ledger/internal/http/middlewarectx"
	"github.com/tutoriacr/package-ledger/internal/http/response"
	"github.com/tutoriacr/package-ledger/internal/lib/sl"
	"github.com/tutoriacr/package-ledger/internal/models"
)

// Handler handles HTTP requests for creating packages.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service describes the package creation part of the ledger business logic.
type Service interface {
	CreatePackage(ctx context.Context, studentUID string, req models.DummyPackage) (int, error)
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
// @Summary Contract a new package
// @Description Creates a new tutoring package for the current student. Returns the ID of the created record.
// @Tags Packages
// @Accept  json
// @Produce  json
// @Param request body models.DummyPackage true "New package data"
// @Success 200 {object} map[string]any "Package created"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON"
// @Failure 401 {object} response.ErrorResponse "User is not authorized"
// @Failure 422 {object} response.ErrorResponse "Validation failure"
// @Failure 500 {object} response.ErrorResponse "Server error while creating the package"
// @Router /packages [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.package.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyPackage
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

	studentUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || studentUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id, err := h.service.CreatePackage(r.Context(), studentUID, req)
	if err != nil {
		log.Error("failed to create package", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create package"))
		return
	}

	log.Info("success to create package", slog.Any("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"last_added_id": id,
	}))
}
