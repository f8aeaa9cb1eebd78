package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hyperterse/dataexplorer/core/infrastructure/logging"
)

// RegisterRoutes registers all HTTP routes
func RegisterRoutes(r chi.Router, queries *QueryHandler) {
	log := logging.New("routes")

	routes := []string{
		"GET /heartbeat",
		"GET /metrics",
		"GET /queries",
		"POST /queries/{name}/run",
	}

	r.Get("/heartbeat", handleHeartbeat)
	r.Method("GET", "/metrics", promhttp.Handler())
	r.Route("/queries", func(r chi.Router) {
		r.Get("/", queries.List)
		r.Post("/{name}/run", queries.Run)
	})

	log.Infof("Routes registered: %d", len(routes))
	for _, route := range routes {
		log.Debugf("  %s", route)
	}
}
