// Package packageledger registers the routes of the main application.
package packageledger

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/tutoriacr/package-ledger/internal/http/handlers/auth/login"
	authregister "github.com/tutoriacr/package-ledger/internal/http/handlers/auth/register"
	"github.com/tutoriacr/package-ledger/internal/http/handlers/health"
	"github.com/tutoriacr/package-ledger/internal/http/handlers/package/assign"
	"github.com/tutoriacr/package-ledger/internal/http/handlers/package/complete"
	"github.com/tutoriacr/package-ledger/internal/http/handlers/package/create"
	packagelist "github.com/tutoriacr/package-ledger/internal/http/handlers/package/list"
	"github.com/tutoriacr/package-ledger/internal/http/handlers/package/read"
	packageremove "github.com/tutoriacr/package-ledger/internal/http/handlers/package/remove"
	"github.com/tutoriacr/package-ledger/internal/http/handlers/package/summary"
	paymentlist "github.com/tutoriacr/package-ledger/internal/http/handlers/payment/list"
	paymentregister "github.com/tutoriacr/package-ledger/internal/http/handlers/payment/register"
	"github.com/tutoriacr/package-ledger/internal/http/handlers/session/schedule"
	sessionremove "github.com/tutoriacr/package-ledger/internal/http/handlers/session/remove"
	"github.com/tutoriacr/package-ledger/internal/http/handlers/session/setstatus"
	"github.com/tutoriacr/package-ledger/internal/http/middlewarectx"
	authservice "github.com/tutoriacr/package-ledger/internal/services/auth"
	ledgerservice "github.com/tutoriacr/package-ledger/internal/services/ledger"
)

// RegisterRoutes registers every route of the application.
func RegisterRoutes(r chi.Router, logger *slog.Logger, ledgerService *ledgerservice.LedgerService, authService *authservice.AuthService) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Open endpoints
		r.Post("/register", authregister.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// JWT-protected group
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/packages", create.New(logger, ledgerService).ServeHTTP)
			r.Get("/packages/list", packagelist.New(logger, ledgerService).ServeHTTP)
			r.Get("/packages/{id}", read.New(logger, ledgerService).ServeHTTP)
			r.Get("/packages/{id}/summary", summary.New(logger, ledgerService).ServeHTTP)
			r.Post("/packages/{id}/complete", complete.New(logger, ledgerService).ServeHTTP)
			r.Post("/packages/{id}/sessions", schedule.New(logger, ledgerService).ServeHTTP)
			r.Post("/packages/{id}/payments", paymentregister.New(logger, ledgerService).ServeHTTP)
			r.Get("/packages/{id}/payments", paymentlist.New(logger, ledgerService).ServeHTTP)
			r.Put("/sessions/{id}/status", setstatus.New(logger, ledgerService).ServeHTTP)

			// Administrator-only endpoints
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))
				r.Put("/packages/{id}/assign", assign.New(logger, ledgerService).ServeHTTP)
				r.Delete("/packages/{id}", packageremove.New(logger, ledgerService).ServeHTTP)
				r.Delete("/sessions/{id}", sessionremove.New(logger, ledgerService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
