package mockapi

import (
	"net/http"
	"sync"

	"github.com/vantagecrm/crm-client-go/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:  "healthy",
			Service: "crm-mock-api",
		})
	}
}

// servicesHealthHandler probes each simulated downstream in parallel
// and reports the overall verdict.
func servicesHealthHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	checks := map[string]func() error{
		"database": func() error { return nil },
		"contacts": func() error { return nil },
		"leads":    func() error { return nil },
		"pipeline": func() error { return nil },
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var mu sync.Mutex
		services := make(map[string]string, len(checks))

		g, _ := errgroup.WithContext(r.Context())
		for name, check := range checks {
			name, check := name, check
			g.Go(func() error {
				err := check()
				mu.Lock()
				if err != nil {
					services[name] = "unhealthy"
				} else {
					services[name] = "healthy"
				}
				mu.Unlock()
				return err
			})
		}

		out := domain.ServicesHealth{Status: "healthy", Services: services}
		if err := g.Wait(); err != nil {
			logger.Warn("health: downstream probe failed", zap.Error(err))
			out.Status = "degraded"
		}
		writeJSON(w, http.StatusOK, out)
	}
}
