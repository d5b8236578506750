package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes the server's prometheus instruments.
type Metrics struct {
	SessionsCreated prometheus.Counter
	SessionsClosed  prometheus.Counter
	SessionsOpen    prometheus.Gauge
	Suggestions     prometheus.Counter
	Reports         prometheus.Counter
	BestValue       *prometheus.GaugeVec
	QueueSize       *prometheus.GaugeVec
}

// NewMetrics registers the server metrics with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SessionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "simplexopt_sessions_created_total",
			Help: "Number of optimization sessions created.",
		}),
		SessionsClosed: factory.NewCounter(prometheus.CounterOpts{
			Name: "simplexopt_sessions_closed_total",
			Help: "Number of optimization sessions closed.",
		}),
		SessionsOpen: factory.NewGauge(prometheus.GaugeOpts{
			Name: "simplexopt_sessions_open",
			Help: "Number of optimization sessions currently open.",
		}),
		Suggestions: factory.NewCounter(prometheus.CounterOpts{
			Name: "simplexopt_suggestions_total",
			Help: "Number of evaluation points suggested.",
		}),
		Reports: factory.NewCounter(prometheus.CounterOpts{
			Name: "simplexopt_reports_total",
			Help: "Number of objective values reported.",
		}),
		BestValue: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "simplexopt_best_value",
			Help: "Best objective value found so far, per session.",
		}, []string{"session"}),
		QueueSize: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "simplexopt_queue_size",
			Help: "Number of simplices currently queued, per session.",
		}, []string{"session"}),
	}
}
