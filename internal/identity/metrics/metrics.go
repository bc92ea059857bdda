package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the identity module.
type Metrics struct {
	UsersRequested prometheus.Counter
	UsersApproved  prometheus.Counter
	Recharges      prometheus.Counter
}

// New creates a Metrics instance with all identity module metrics registered.
func New() *Metrics {
	return &Metrics{
		UsersRequested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "regnet_users_requested_total",
			Help: "Total number of identity registration requests accepted",
		}),
		UsersApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "regnet_users_approved_total",
			Help: "Total number of identities approved by a registrar",
		}),
		Recharges: promauto.NewCounter(prometheus.CounterOpts{
			Name: "regnet_recharges_total",
			Help: "Total number of successful account top-ups",
		}),
	}
}

// IncrementUsersRequested records an accepted registration request.
func (m *Metrics) IncrementUsersRequested() {
	if m != nil {
		m.UsersRequested.Inc()
	}
}

// IncrementUsersApproved records a registrar approval.
func (m *Metrics) IncrementUsersApproved() {
	if m != nil {
		m.UsersApproved.Inc()
	}
}

// IncrementRecharges records a successful top-up.
func (m *Metrics) IncrementRecharges() {
	if m != nil {
		m.Recharges.Inc()
	}
}
