package service

import (
	"github.com/okian/headcount/internal/adapters/report"
	"github.com/okian/headcount/pkg/logger"
	"github.com/okian/headcount/pkg/metrics"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithInput sets the employee CSV path.
func WithInput(path string) Option {
	return func(s *Service) { s.inputPath = path }
}

// WithChartPath sets where the PNG chart is written.
func WithChartPath(path string) Option {
	return func(s *Service) { s.chartPath = path }
}

// WithReportPath sets where the HTML report is written.
func WithReportPath(path string) Option {
	return func(s *Service) { s.reportPath = path }
}

// WithHighlight sets the department counted and drawn in the highlight color.
func WithHighlight(department string) Option {
	return func(s *Service) {
		if department != "" {
			s.highlight = department
		}
	}
}

// WithReportMeta sets the report header and footer metadata.
func WithReportMeta(meta report.Meta) Option {
	return func(s *Service) { s.meta = meta }
}

// WithLoader replaces the dataset loader.
func WithLoader(l Loader) Option {
	return func(s *Service) {
		if l != nil {
			s.loader = l
		}
	}
}

// WithChartRenderer replaces the chart renderer.
func WithChartRenderer(r ChartRenderer) Option {
	return func(s *Service) {
		if r != nil {
			s.chart = r
		}
	}
}

// WithWriter replaces the artifact writer.
func WithWriter(w Writer) Option {
	return func(s *Service) {
		if w != nil {
			s.writer = w
		}
	}
}

// WithMetrics sets the metrics manager runs are recorded on.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithMetricsPath makes every run dump its metrics to a Prometheus textfile.
func WithMetricsPath(path string) Option {
	return func(s *Service) { s.metricsPath = path }
}
