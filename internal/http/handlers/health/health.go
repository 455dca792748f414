// Package health implements the liveness probe of the HTTP server.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/tutoriacr/package-ledger/internal/http/response"
)

// Handler answers liveness probes.
type Handler struct {
	log *slog.Logger
}

// New creates a new Handler with the given logger.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

// ServeHTTP godoc
// @Summary Health check
// @Description Reports that the HTTP server is alive.
// @Tags Health
// @Produce  json
// @Success 200 {object} map[string]any "Server is alive"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status": "ok",
	}))
}
