package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	SchedulesCreated prometheus.Counter
	SchedulesClosed  prometheus.Counter
	CrewJoins        prometheus.Counter
	CrewLeaves       prometheus.Counter
	SchedulesCleaned prometheus.Counter
	ErrorsCount      *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		SchedulesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedules_created_total",
			Help:      "The total number of schedules created",
		}),
		SchedulesClosed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedules_closed_total",
			Help:      "The total number of schedules closed",
		}),
		CrewJoins: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "crew_joins_total",
			Help:      "The total number of crew members boarded",
		}),
		CrewLeaves: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "crew_leaves_total",
			Help:      "The total number of crew members removed",
		}),
		SchedulesCleaned: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedules_cleaned_total",
			Help:      "The total number of old schedules deleted by cleanup",
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
