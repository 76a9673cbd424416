package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReservationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fablab_reservations_created_total",
		Help: "Reservations created, by initial status.",
	}, []string{"status"})

	ReservationsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fablab_reservations_cancelled_total",
		Help: "Confirmed reservations cancelled by members.",
	})

	QuotaBlocked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fablab_quota_blocked_total",
		Help: "Booking attempts rejected by the monthly hour quota.",
	})
)
