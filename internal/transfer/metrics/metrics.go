package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the transfer module.
type Metrics struct {
	Purchases  prometheus.Counter
	CoinsMoved prometheus.Counter
}

// New creates a Metrics instance with all transfer module metrics registered.
func New() *Metrics {
	return &Metrics{
		Purchases: promauto.NewCounter(prometheus.CounterOpts{
			Name: "regnet_purchases_total",
			Help: "Total number of completed property purchases",
		}),
		CoinsMoved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "regnet_purchase_coins_total",
			Help: "Total coins moved between buyers and sellers",
		}),
	}
}

// ObservePurchase records a completed purchase and its price.
func (m *Metrics) ObservePurchase(price int) {
	if m != nil {
		m.Purchases.Inc()
		m.CoinsMoved.Add(float64(price))
	}
}
