// Package metrics exposes Prometheus instrumentation for the client module.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records counters and latencies for client and engagement operations.
// All methods are safe on a nil receiver so instrumentation stays optional.
type Metrics struct {
	clientsCreated     prometheus.Counter
	clientsDeleted     prometheus.Counter
	engagementsCreated prometheus.Counter
	engagementsDeleted prometheus.Counter
	listDuration       *prometheus.HistogramVec
}

// New registers the client-module collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		clientsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "caoffice_clients_created_total",
			Help: "Number of client records created.",
		}),
		clientsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "caoffice_clients_deleted_total",
			Help: "Number of client records deleted.",
		}),
		engagementsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "caoffice_engagements_created_total",
			Help: "Number of engagement records created.",
		}),
		engagementsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "caoffice_engagements_deleted_total",
			Help: "Number of engagement records deleted.",
		}),
		listDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "caoffice_list_duration_seconds",
			Help:    "Latency of list queries by entity.",
			Buckets: prometheus.DefBuckets,
		}, []string{"entity"}),
	}
}

func (m *Metrics) ClientCreated() {
	if m == nil {
		return
	}
	m.clientsCreated.Inc()
}

func (m *Metrics) ClientDeleted() {
	if m == nil {
		return
	}
	m.clientsDeleted.Inc()
}

func (m *Metrics) EngagementCreated() {
	if m == nil {
		return
	}
	m.engagementsCreated.Inc()
}

func (m *Metrics) EngagementDeleted() {
	if m == nil {
		return
	}
	m.engagementsDeleted.Inc()
}

// ObserveListDuration records how long a list query took for the given entity.
func (m *Metrics) ObserveListDuration(entity string, d time.Duration) {
	if m == nil {
		return
	}
	m.listDuration.WithLabelValues(entity).Observe(d.Seconds())
}
