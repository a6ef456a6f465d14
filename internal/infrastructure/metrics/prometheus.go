// Package metrics expone los contadores del motor de stock en Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	appinventory "github.com/jhoicas/inventario-cocina/internal/application/inventory"
)

var _ appinventory.Metrics = (*StockMetrics)(nil)

// StockMetrics implementa inventory.Metrics.
type StockMetrics struct {
	recorded      *prometheus.CounterVec
	rejected      *prometheus.CounterVec
	snapshotTime  prometheus.Histogram
	snapshotLines prometheus.Gauge
}

// NewStockMetrics crea y registra los colectores en reg.
func NewStockMetrics(reg prometheus.Registerer) *StockMetrics {
	m := &StockMetrics{
		recorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventario",
			Name:      "adjustments_recorded_total",
			Help:      "Ajustes de stock aceptados por tipo.",
		}, []string{"kind"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventario",
			Name:      "adjustments_rejected_total",
			Help:      "Ajustes de stock rechazados por motivo.",
		}, []string{"reason"}),
		snapshotTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "inventario",
			Name:      "snapshot_duration_seconds",
			Help:      "Tiempo de lectura y cálculo del snapshot.",
			Buckets:   prometheus.DefBuckets,
		}),
		snapshotLines: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "inventario",
			Name:      "snapshot_lines",
			Help:      "Líneas de stock del último snapshot calculado.",
		}),
	}
	reg.MustRegister(m.recorded, m.rejected, m.snapshotTime, m.snapshotLines)
	return m
}

func (m *StockMetrics) AdjustmentRecorded(kind string) {
	m.recorded.WithLabelValues(kind).Inc()
}

func (m *StockMetrics) AdjustmentRejected(reason string) {
	m.rejected.WithLabelValues(reason).Inc()
}

func (m *StockMetrics) SnapshotComputed(elapsed time.Duration, lines int) {
	m.snapshotTime.Observe(elapsed.Seconds())
	m.snapshotLines.Set(float64(lines))
}
