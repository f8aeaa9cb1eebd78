package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

var (
	remoteRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataexplorer_remote_requests_total",
			Help: "Total number of Data Explorer query runs by outcome",
		},
		[]string{"host", "query_id", "status"},
	)

	remoteRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dataexplorer_remote_request_duration_seconds",
			Help:    "Round-trip time of Data Explorer query runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"host", "query_id"},
	)

	renderedRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataexplorer_rendered_rows_total",
			Help: "Total number of result rows rendered into tables",
		},
		[]string{"query"},
	)
)

// StatusTransportError labels runs that never received an HTTP response
const StatusTransportError = "error"

// ObserveRemoteRequest records one query run. status is the HTTP status code
// as text, or StatusTransportError.
func ObserveRemoteRequest(host, queryID, status string, elapsed time.Duration) {
	remoteRequestsTotal.WithLabelValues(host, queryID, status).Inc()
	remoteRequestDuration.WithLabelValues(host, queryID).Observe(elapsed.Seconds())
}

// ObserveRenderedRows counts rows written into a rendered table.
func ObserveRenderedRows(query string, rows int) {
	renderedRowsTotal.WithLabelValues(query).Add(float64(rows))
}

// Push sends the default registry to a Prometheus Pushgateway. CI runs are
// too short-lived to be scraped.
func Push(ctx context.Context, gatewayURL, job string) error {
	return push.New(gatewayURL, job).
		Gatherer(prometheus.DefaultGatherer).
		PushContext(ctx)
}
