package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the metrics of a report run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         *prometheus.Registry

	rowsLoaded     prometheus.Counter
	departments    prometheus.Gauge
	regions        prometheus.Gauge
	highlightCount prometheus.Gauge
	stageDuration  *prometheus.HistogramVec
	stageErrors    *prometheus.CounterVec
	artifactBytes  *prometheus.GaugeVec
	lastSuccess    prometheus.Gauge
}

// Global metrics manager on a custom registry to avoid default Go metrics.
var globalManager = NewManager() //nolint:gochecknoglobals // intentional global for singleton metrics manager

// NewManager creates a metrics manager. Without WithPrometheusRegistry it
// registers on a fresh registry of its own.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "headcount",
		subsystem:        "report",
		histogramBuckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		customLabels:     make(map[string]string),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.rowsLoaded = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rows_loaded_total",
		Help:        "Employee rows read from the input dataset",
		ConstLabels: labels,
	})

	m.departments = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "departments",
		Help:        "Distinct departments in the last dataset",
		ConstLabels: labels,
	})

	m.regions = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "regions",
		Help:        "Distinct regions in the last dataset",
		ConstLabels: labels,
	})

	m.highlightCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "highlight_department_employees",
		Help:        "Employees in the highlighted department",
		ConstLabels: labels,
	})

	m.stageDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "stage_duration_seconds",
		Help:        "Duration of each pipeline stage",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"stage"})

	m.stageErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "stage_errors_total",
		Help:        "Pipeline stages that failed",
		ConstLabels: labels,
	}, []string{"stage"})

	m.artifactBytes = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "artifact_bytes",
		Help:        "Size of the last written artifact",
		ConstLabels: labels,
	}, []string{"artifact"})

	m.lastSuccess = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_success_timestamp_seconds",
		Help:        "Unix time of the last successful run",
		ConstLabels: labels,
	})
}

// RecordRowsLoaded adds n loaded rows.
func (m *Manager) RecordRowsLoaded(n int) { m.rowsLoaded.Add(float64(n)) }

// UpdateDataset sets the distinct department and region counts.
func (m *Manager) UpdateDataset(departments, regions int) {
	m.departments.Set(float64(departments))
	m.regions.Set(float64(regions))
}

// UpdateHighlightCount sets the highlighted department headcount.
func (m *Manager) UpdateHighlightCount(n int) { m.highlightCount.Set(float64(n)) }

// ObserveStage records how long stage took.
func (m *Manager) ObserveStage(stage string, d time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordStageError counts a failed stage.
func (m *Manager) RecordStageError(stage string) { m.stageErrors.WithLabelValues(stage).Inc() }

// UpdateArtifactBytes sets the size of a written artifact.
func (m *Manager) UpdateArtifactBytes(artifact string, n int) {
	m.artifactBytes.WithLabelValues(artifact).Set(float64(n))
}

// MarkSuccess stamps the time of a successful run.
func (m *Manager) MarkSuccess(t time.Time) { m.lastSuccess.Set(float64(t.Unix())) }

// Registry returns the registry the manager's metrics live on.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile dumps every metric in the text exposition format to path,
// for the node_exporter textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrTextfile, err)
	}
	return nil
}

// Default returns the process-wide manager.
func Default() *Manager { return globalManager }

// GetRegistry returns the custom Prometheus registry used by the default manager.
func GetRegistry() *prometheus.Registry { return globalManager.registry }
