package mockapi

import (
	"net/http"

	"github.com/vantagecrm/crm-client-go/internal/infra/observability"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter creates the mock gateway's HTTP router. Routes mirror the
// production API: /auth/token and /health are public, everything under
// /api/v1 requires a Bearer token.
func NewRouter(store *Store, auth *Auth, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Public endpoints ---
	r.Post("/auth/token", tokenHandler(auth, logger))
	r.Get("/health", healthHandler())
	r.Get("/health/services", servicesHealthHandler(store, logger))
	r.Handle("/metrics", promhttp.Handler())

	// --- Protected API ---
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(authMiddleware(auth, logger))

		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", listContactsHandler(store, logger))
			r.Post("/", createContactHandler(store, logger))
			r.Get("/{id}", getContactHandler(store, logger))
			r.Put("/{id}", updateContactHandler(store, logger))
			r.Delete("/{id}", deleteContactHandler(store, logger))
		})

		r.Route("/leads", func(r chi.Router) {
			r.Get("/", listLeadsHandler(store, logger))
			r.Post("/", createLeadHandler(store, logger))
			r.Post("/score", scoreLeadsHandler(store, logger))
			r.Get("/{id}", getLeadHandler(store, logger))
			r.Put("/{id}", updateLeadHandler(store, logger))
			r.Patch("/{id}", patchLeadHandler(store, logger))
			r.Delete("/{id}", deleteLeadHandler(store, logger))
			r.Post("/{id}/convert", convertLeadHandler(store, logger))
		})

		r.Route("/opportunities", func(r chi.Router) {
			r.Get("/", listOpportunitiesHandler(store, logger))
			r.Post("/", createOpportunityHandler(store, logger))
			r.Get("/stats", opportunityStatsHandler(store, logger))
			r.Get("/forecast", opportunityForecastHandler(store, logger))
			r.Get("/{id}", getOpportunityHandler(store, logger))
			r.Put("/{id}", updateOpportunityHandler(store, logger))
			r.Patch("/{id}", patchOpportunityHandler(store, logger))
			r.Delete("/{id}", deleteOpportunityHandler(store, logger))
		})

		r.Route("/activities", func(r chi.Router) {
			r.Get("/", listActivitiesHandler(store, logger))
			r.Post("/", createActivityHandler(store, logger))
			r.Get("/stats", activityStatsHandler(store, logger))
			r.Get("/{id}", getActivityHandler(store, logger))
			r.Put("/{id}", updateActivityHandler(store, logger))
			r.Patch("/{id}", patchActivityHandler(store, logger))
			r.Patch("/{id}/complete", completeActivityHandler(store, logger))
			r.Delete("/{id}", deleteActivityHandler(store, logger))
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/summary", dashboardSummaryHandler(store, logger))
			r.Get("/metrics", dashboardMetricsHandler(store, logger))
			r.Get("/charts/{type}", dashboardChartHandler(store, logger))
			r.Get("/recent-activities", dashboardRecentActivitiesHandler(store, logger))
			r.Get("/top-performers", dashboardTopPerformersHandler(store, logger))
		})
	})

	return r
}
