package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the receipt domain.
type Metrics struct {
	ReceiptsProcessed    prometheus.Counter
	DuplicateSubmissions prometheus.Counter
	PointsLookups        prometheus.Counter
}

// New creates and registers all receipt metrics.
func New() *Metrics {
	return &Metrics{
		ReceiptsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tally_receipts_processed_total",
			Help: "Total number of receipts accepted by the process endpoint",
		}),
		DuplicateSubmissions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tally_receipts_duplicate_total",
			Help: "Total number of submissions deduplicated to an existing receipt",
		}),
		PointsLookups: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tally_points_lookups_total",
			Help: "Total number of successful points lookups",
		}),
	}
}

func (m *Metrics) IncrementProcessed() {
	m.ReceiptsProcessed.Inc()
}

func (m *Metrics) IncrementDuplicates() {
	m.DuplicateSubmissions.Inc()
}

func (m *Metrics) IncrementLookups() {
	m.PointsLookups.Inc()
}
