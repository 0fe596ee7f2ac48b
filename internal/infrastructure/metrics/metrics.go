// Package metrics registra as métricas Prometheus da API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal conta requisições por rota, método e status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "congomuv_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration mede a latência por rota
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "congomuv_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// AuthzDecisionsTotal conta decisões do gate de autorização
	AuthzDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "congomuv_authz_decisions_total",
			Help: "Total number of authorization decisions",
		},
		[]string{"role", "decision"},
	)

	// AuthFailuresTotal conta falhas da cadeia de autenticação por motivo
	AuthFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "congomuv_auth_failures_total",
			Help: "Total number of rejected requests in the authentication chain",
		},
		[]string{"reason"},
	)

	// RateLimitedTotal conta requisições bloqueadas pelo rate limit
	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "congomuv_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	// CircuitBreakerState expõe o estado dos circuit breakers (0 fechado, 1 meio-aberto, 2 aberto)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "congomuv_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// LiveClients é o número de clientes conectados ao feed ao vivo
	LiveClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "congomuv_live_clients",
			Help: "Number of connected live dashboard clients",
		},
	)
)
