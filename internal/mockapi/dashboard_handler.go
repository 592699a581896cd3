package mockapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func dashboardSummaryHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.DashboardSummary())
	}
}

func dashboardMetricsHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.DashboardMetrics())
	}
}

var chartTypes = map[string]bool{
	"revenue":    true,
	"pipeline":   true,
	"activities": true,
	"leads":      true,
}

func dashboardChartHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chartType := chi.URLParam(r, "type")
		if !chartTypes[chartType] {
			writeError(w, http.StatusNotFound, "unknown chart type")
			return
		}
		period := r.URL.Query().Get("period")
		if period == "" {
			period = "month"
		}
		writeJSON(w, http.StatusOK, store.ChartSeries(chartType, period))
	}
}

func dashboardRecentActivitiesHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := queryInt(r, "limit")
		writeJSON(w, http.StatusOK, store.RecentActivities(limit))
	}
}

func dashboardTopPerformersHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.TopPerformers())
	}
}
