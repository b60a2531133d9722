package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/mpatel/khata/internal/adapter/http/handler"
	"github.com/mpatel/khata/internal/adapter/http/middleware"
	"github.com/mpatel/khata/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	DebtorHandler         *handler.DebtorHandler
	EntryHandler          *handler.EntryHandler
	SettlementHandler     *handler.SettlementHandler
	OutstandingHandler    *handler.OutstandingHandler
	CashbookHandler       *handler.CashbookHandler
	ReconciliationHandler *handler.ReconciliationHandler
	HealthHandler         *handler.HealthHandler
	IdempotencyStore      usecase.IdempotencyStore
	IdempotencyTTL        time.Duration
	RateLimiter           *middleware.RateLimiter
	Logger                zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore).
				WithTTL(cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Debtors
		r.Route("/debtors", func(r chi.Router) {
			r.Post("/", cfg.DebtorHandler.Create)
			r.Get("/", cfg.DebtorHandler.List)
			r.Get("/{id}", cfg.DebtorHandler.Get)
			r.Post("/{id}/entries", cfg.EntryHandler.Create)
			r.Get("/{id}/entries", cfg.EntryHandler.ListByDebtor)
			r.Get("/{id}/payments", cfg.EntryHandler.ListPaymentsByDebtor)
			r.Get("/{id}/outstanding", cfg.OutstandingHandler.GetByDebtor)
			r.Post("/{id}/settlements", cfg.SettlementHandler.Settle)
			r.Post("/{id}/settlements/clear", cfg.SettlementHandler.FullClear)
		})

		// Entries
		r.Route("/entries", func(r chi.Router) {
			r.Get("/{id}", cfg.EntryHandler.Get)
			r.Get("/{id}/payments", cfg.EntryHandler.ListPaymentsByEntry)
		})

		// Outstanding across debtors
		r.Get("/outstanding", cfg.OutstandingHandler.ListByKind)

		// Cashbook
		r.Get("/cashbook", cfg.CashbookHandler.List)

		// Reconciliation
		r.Route("/reconciliation", func(r chi.Router) {
			r.Get("/", cfg.ReconciliationHandler.ReconcileAll)
			r.Get("/{id}", cfg.ReconciliationHandler.ReconcileDebtor)
		})
	})

	return r
}
