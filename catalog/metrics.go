package catalog

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "bf_eo_catalog"

var (
	itemsStored = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "items_stored_total",
		Help:      "EO items stored through the HTTP API.",
	})
	itemsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "items_rejected_total",
		Help:      "Submitted items that could not be read as EO items.",
	})
	responses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "http_responses_total",
		Help:      "HTTP responses by handler, method and status code.",
	}, []string{"handler", "method", "code"})
)

// Instrument counts the responses of a handler under the given name
func Instrument(name string, handler http.Handler) http.Handler {
	return promhttp.InstrumentHandlerCounter(responses.MustCurryWith(prometheus.Labels{"handler": name}), handler)
}

// MetricsHandler serves the collected metrics
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
