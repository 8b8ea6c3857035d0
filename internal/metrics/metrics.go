package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "collabhub_requests_total", Help: "Total HTTP requests by method and status"},
		[]string{"method", "status"},
	)
	AuthFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "collabhub_auth_failures_total", Help: "Total rejected authentication attempts"},
	)
	CollaborationJoins = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "collabhub_collaboration_joins_total", Help: "Total collaboration join requests accepted"},
	)
)

func Register() {
	prometheus.MustRegister(RequestsTotal, AuthFailures, CollaborationJoins)
}
