package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dafater-app/dafater/internal/auth"
	"github.com/dafater-app/dafater/internal/companies"
	"github.com/dafater-app/dafater/internal/dashboard"
	"github.com/dafater-app/dafater/internal/invoices"
	"github.com/dafater-app/dafater/internal/ledger"
	"github.com/dafater-app/dafater/internal/reports"
	"github.com/dafater-app/dafater/internal/shared"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager

	AuthHandler      *auth.Handler
	CompanyHandler   *companies.Handler
	LedgerHandler    *ledger.Handler
	DashboardHandler *dashboard.Handler
	ReportsHandler   *reports.Handler
	InvoiceHandler   *invoices.Handler
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(api chi.Router) {
		params.AuthHandler.MountRoutes(api)

		api.Group(func(private chi.Router) {
			private.Use(RequireAuthenticated)
			params.CompanyHandler.MountRoutes(private)
			params.LedgerHandler.MountRoutes(private)
			params.DashboardHandler.MountRoutes(private)
			params.ReportsHandler.MountRoutes(private)
			params.InvoiceHandler.MountRoutes(private)
		})
	})

	return r
}
