// Package metrics exposes the switch's Prometheus instruments.
package metrics

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	// AccessTokenCreation counts successful token refreshes per connector.
	AccessTokenCreation *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AccessTokenCreation: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "access_token_creation_total",
			Help: "Number of access tokens minted, by connector.",
		}, []string{"connector"}),
	}

	reg.MustRegister(m.AccessTokenCreation)
	return m
}

// TokenRefreshed records one successful refresh. Best-effort by
// construction: counter increments cannot fail or block.
func (m *Metrics) TokenRefreshed(connectorName string) {
	m.AccessTokenCreation.WithLabelValues(connectorName).Inc()
}
