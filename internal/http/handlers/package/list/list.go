// Package list implements the HTTP handler for listing tutoring packages.
//
// Students receive their own packages; administrators receive every package.
// The listing supports limit/offset pagination through query parameters.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/tutoriacr/package-ledger/internal/http/middlewarectx"
	"github.com/tutoriacr/package-ledger/internal/http/response"
	"github.com/tutoriacr/package-ledger/internal/lib/sl"
	"github.com/tutoriacr/package-ledger/internal/models"
)

const (
	defaultLimit  = 20
	defaultOffset = 0
)

// Handler handles requests for listing packages.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the package listing part of the ledger business logic.
type Service interface {
	ListPackages(ctx context.Context, studentUID, role string, limit, offset int) ([]*models.Package, error)
}

// New creates a new Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary List packages
// @Description Lists the current student's packages, or all packages for administrators.
// @Tags Packages
// @Produce  json
// @Param limit query int false "Page size (default 20)"
// @Param offset query int false "Page offset (default 0)"
// @Success 200 {object} map[string]any "Package list"
// @Failure 401 {object} response.ErrorResponse "User is not authorized"
// @Failure 500 {object} response.ErrorResponse "Server error while listing packages"
// @Router /packages/list [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.package.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	studentUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || studentUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	role, _ := r.Context().Value(middlewarectx.Role).(string)

	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	offset := defaultOffset
	if v := r.URL.Query().Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	res, err := h.service.ListPackages(r.Context(), studentUID, role, limit, offset)
	if err != nil {
		log.Error("failed to list packages", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list packages"))
		return
	}

	log.Info("success to list packages", slog.Int("count", len(res)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"packages": res,
		"count":    len(res),
	}))
}
