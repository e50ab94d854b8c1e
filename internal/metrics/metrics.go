// Package metrics exposes Prometheus counters for the dashboard.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector the service exports. It is separate from
// the default registry so tests see only these metrics.
var Registry = prometheus.NewRegistry()

var (
	requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests served, by method and status code.",
	}, []string{"method", "code"})

	logins = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "milasset_logins_total",
		Help: "Login attempts, by result.",
	}, []string{"result"})

	recordsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "milasset_records_created_total",
		Help: "Movement records submitted, by kind.",
	}, []string{"kind"})
)

func init() {
	Registry.MustRegister(requests, logins, recordsCreated)
}

// ObserveRequest counts one served request.
func ObserveRequest(method string, code int) {
	requests.WithLabelValues(method, strconv.Itoa(code)).Inc()
}

// ObserveLogin counts a login attempt.
func ObserveLogin(ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	logins.WithLabelValues(result).Inc()
}

// ObserveRecordCreated counts a submitted record of kind.
func ObserveRecordCreated(kind string) {
	recordsCreated.WithLabelValues(kind).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
