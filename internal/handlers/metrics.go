package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	outcomeCreated = "created"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// metrics owns a private registry so that each Handler exposes only its own counters.
type metrics struct {
	registry       *prometheus.Registry
	signups        *prometheus.CounterVec
	logins         *prometheus.CounterVec
	authRejections prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pickem_signups_total",
			Help: "Signup attempts by outcome",
		}, []string{"outcome"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pickem_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		authRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pickem_auth_rejections_total",
			Help: "Requests rejected by the bearer token guard",
		}),
	}
	m.registry.MustRegister(m.signups, m.logins, m.authRejections)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
