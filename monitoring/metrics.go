package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketing_operations_total",
			Help: "Total core operations by name and outcome",
		},
		[]string{"operation", "status"},
	)

	ticketsPurchased = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickets_purchased_total",
			Help: "Tickets purchased per event",
		},
		[]string{"event_id"},
	)

	ticketsRefunded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickets_refunded_total",
			Help: "Tickets refunded per event",
		},
		[]string{"event_id"},
	)

	escrowReleased = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escrow_released_amount_total",
			Help: "Escrow amount released per event",
		},
		[]string{"event_id"},
	)

	platformBalance = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "platform_fee_balance",
			Help: "Current accumulated platform fee balance",
		},
	)
)

type Monitor struct{}

func NewMonitor() *Monitor {
	return &Monitor{}
}

func (m *Monitor) TrackOperation(operation, status string) {
	if m == nil {
		return
	}
	operations.WithLabelValues(operation, status).Inc()
}

func (m *Monitor) TrackPurchase(eventID string) {
	if m == nil {
		return
	}
	ticketsPurchased.WithLabelValues(eventID).Inc()
}

func (m *Monitor) TrackRefund(eventID string) {
	if m == nil {
		return
	}
	ticketsRefunded.WithLabelValues(eventID).Inc()
}

func (m *Monitor) TrackRelease(eventID string, amount int64) {
	if m == nil {
		return
	}
	escrowReleased.WithLabelValues(eventID).Add(float64(amount))
}

func (m *Monitor) SetPlatformBalance(balance int64) {
	if m == nil {
		return
	}
	platformBalance.Set(float64(balance))
}
