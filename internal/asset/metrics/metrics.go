package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the asset module.
type Metrics struct {
	PropertiesRequested prometheus.Counter
	PropertiesApproved  prometheus.Counter
	StatusUpdates       prometheus.Counter
}

// New creates a Metrics instance with all asset module metrics registered.
func New() *Metrics {
	return &Metrics{
		PropertiesRequested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "regnet_properties_requested_total",
			Help: "Total number of property registration requests accepted",
		}),
		PropertiesApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "regnet_properties_approved_total",
			Help: "Total number of properties approved by a registrar",
		}),
		StatusUpdates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "regnet_property_status_updates_total",
			Help: "Total number of owner-initiated property status changes",
		}),
	}
}

// IncrementPropertiesRequested records an accepted registration request.
func (m *Metrics) IncrementPropertiesRequested() {
	if m != nil {
		m.PropertiesRequested.Inc()
	}
}

// IncrementPropertiesApproved records a registrar approval.
func (m *Metrics) IncrementPropertiesApproved() {
	if m != nil {
		m.PropertiesApproved.Inc()
	}
}

// IncrementStatusUpdates records an owner-initiated status change.
func (m *Metrics) IncrementStatusUpdates() {
	if m != nil {
		m.StatusUpdates.Inc()
	}
}
