package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	DeliveriesSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_deliveries_sent_total",
			Help: "Total successful webhook deliveries",
		},
	)

	DeliveriesFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_deliveries_failed_total",
			Help: "Total failed webhook delivery attempts",
		},
	)

	SchedulerTicks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_scheduler_ticks_total",
			Help: "Total scheduler ticks completed",
		},
	)

	DeliveryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "webhook_delivery_duration_seconds",
			Help:    "Wall-clock duration of webhook delivery attempts",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func Init() {
	prometheus.MustRegister(DeliveriesSent)
	prometheus.MustRegister(DeliveriesFailed)
	prometheus.MustRegister(SchedulerTicks)
	prometheus.MustRegister(DeliveryDuration)
}
