// Package service runs the headcount report pipeline: load the employee
// dataset, summarize it, draw the chart and write the report.
package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/headcount/internal/adapters/chart"
	"github.com/okian/headcount/internal/adapters/report"
	"github.com/okian/headcount/internal/adapters/source"
	"github.com/okian/headcount/internal/adapters/writer"
	"github.com/okian/headcount/internal/domain/aggregate"
	"github.com/okian/headcount/internal/domain/model"
	"github.com/okian/headcount/pkg/logger"
	"github.com/okian/headcount/pkg/metrics"
)

// Stage names, used in error prefixes, log lines and metric labels.
const (
	StageLoad        = "load"
	StageAggregate   = "aggregate"
	StageChart       = "chart"
	StageWriteChart  = "write_chart"
	StageReport      = "report"
	StageWriteReport = "write_report"
)

// Default artifact locations.
const (
	defaultInput  = "employee_data.csv"
	defaultChart  = "department_distribution.png"
	defaultReport = "employee_analysis.html"
)

// Loader reads an employee dataset.
type Loader interface {
	Load(ctx context.Context, path string) (*model.Dataset, error)
}

// ChartRenderer draws a summary as PNG bytes.
type ChartRenderer interface {
	Render(ctx context.Context, s aggregate.Summary, highlight string) ([]byte, error)
}

// Writer persists an artifact.
type Writer interface {
	Write(ctx context.Context, path string, r io.Reader) error
}

// Result is what a successful run produced.
type Result struct {
	RunID       string
	Summary     aggregate.Summary
	ChartPath   string
	ReportPath  string
	ChartBytes  []byte
	ReportBytes []byte
}

// Service wires the pipeline stages together.
type Service struct {
	inputPath   string
	chartPath   string
	reportPath  string
	highlight   string
	meta        report.Meta
	metricsPath string

	loader  Loader
	chart   ChartRenderer
	writer  Writer
	metrics *metrics.Manager
	logger  logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		inputPath:  defaultInput,
		chartPath:  defaultChart,
		reportPath: defaultReport,
		highlight:  aggregate.DefaultHighlight,
		meta: report.Meta{
			Title:        "Employee Performance Analysis",
			Organization: "Retail Company",
		},
		loader:  source.NewCSV(),
		chart:   chart.New(),
		writer:  writer.New(),
		metrics: metrics.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run executes every stage in order and stops at the first failure. Errors
// carry the failing stage as a "stage <name>:" prefix and keep their kinds
// for errors.Is. Nothing is written unless load, aggregate and chart succeed.
func (s *Service) Run(ctx context.Context) (Result, error) {
	if s.inputPath == "" {
		return Result{}, ErrNoInput
	}
	if s.chartPath == "" || s.reportPath == "" {
		return Result{}, ErrNoOutput
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	res := Result{RunID: uuid.NewString(), ChartPath: s.chartPath, ReportPath: s.reportPath}
	log := s.logger.With(logger.String("run_id", res.RunID))
	defer s.flushMetrics(ctx, log)

	log.Info(ctx, "starting headcount report",
		logger.String("input", s.inputPath),
		logger.String("highlight", s.highlight),
	)

	var ds *model.Dataset
	err := s.stage(ctx, log, StageLoad, func(ctx context.Context) error {
		var err error
		ds, err = s.loader.Load(ctx, s.inputPath)
		if err != nil {
			return err
		}
		s.metrics.RecordRowsLoaded(ds.Len())
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	err = s.stage(ctx, log, StageAggregate, func(context.Context) error {
		var err error
		res.Summary, err = aggregate.Summarize(ds.Employees, s.highlight)
		if err != nil {
			return err
		}
		s.metrics.UpdateDataset(res.Summary.DistinctDepartments(), res.Summary.DistinctRegions)
		s.metrics.UpdateHighlightCount(res.Summary.Highlight.Count)
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	err = s.stage(ctx, log, StageChart, func(ctx context.Context) error {
		var err error
		res.ChartBytes, err = s.chart.Render(ctx, res.Summary, s.highlight)
		return err
	})
	if err != nil {
		return Result{}, err
	}

	if err := s.persist(ctx, log, StageWriteChart, "chart", s.chartPath, res.ChartBytes); err != nil {
		return Result{}, err
	}

	err = s.stage(ctx, log, StageReport, func(context.Context) error {
		var err error
		res.ReportBytes, err = report.Build(report.FromSummary(s.meta, res.Summary, res.ChartBytes))
		return err
	})
	if err != nil {
		return Result{}, err
	}

	if err := s.persist(ctx, log, StageWriteReport, "report", s.reportPath, res.ReportBytes); err != nil {
		return Result{}, err
	}

	s.metrics.MarkSuccess(time.Now())
	s.logSummary(ctx, log, res)
	return res, nil
}

// stage runs fn under name, timing it and wrapping any failure.
func (s *Service) stage(ctx context.Context, log logger.Logger, name string, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("stage %s: %w", name, err)
	}

	log.Debug(ctx, "stage started", logger.String("stage", name))
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	s.metrics.ObserveStage(name, elapsed)

	if err != nil {
		s.metrics.RecordStageError(name)
		log.Error(ctx, "stage failed", logger.String("stage", name), logger.Error(err))
		return fmt.Errorf("stage %s: %w", name, err)
	}
	log.Info(ctx, "stage finished",
		logger.String("stage", name),
		logger.Float64("duration_ms", float64(elapsed.Microseconds())/1000),
	)
	return nil
}

func (s *Service) persist(ctx context.Context, log logger.Logger, name, artifact, path string, data []byte) error {
	return s.stage(ctx, log, name, func(ctx context.Context) error {
		if err := s.writer.Write(ctx, path, bytes.NewReader(data)); err != nil {
			return err
		}
		s.metrics.UpdateArtifactBytes(artifact, len(data))
		log.Info(ctx, "artifact written",
			logger.String("artifact", artifact),
			logger.String("path", path),
			logger.Int("bytes", len(data)),
		)
		return nil
	})
}

// flushMetrics writes the textfile when configured. A failure here never
// fails the run.
func (s *Service) flushMetrics(ctx context.Context, log logger.Logger) {
	if s.metricsPath == "" {
		return
	}
	if err := s.metrics.WriteTextfile(s.metricsPath); err != nil {
		log.Warn(ctx, "metrics textfile not written", logger.String("path", s.metricsPath), logger.Error(err))
	}
}

// logSummary prints the dataset overview and the department listing.
func (s *Service) logSummary(ctx context.Context, log logger.Logger, res Result) {
	sum := res.Summary
	log.Info(ctx, "dataset overview",
		logger.Int("employees", sum.Total),
		logger.Int("departments", sum.DistinctDepartments()),
		logger.Int("regions", sum.DistinctRegions),
		logger.Float64("mean_performance", sum.MeanPerformance),
	)
	log.Info(ctx, "departments", logger.String("names", strings.Join(sum.Names(), ", ")))
	log.Info(ctx, "highlighted department",
		logger.String("department", sum.Highlight.Name),
		logger.Int("employees", sum.Highlight.Count),
		logger.String("percent", fmt.Sprintf("%.1f", sum.Highlight.Percent)),
	)
	for _, d := range sum.ByName() {
		log.Info(ctx, "department count", logger.String("department", d.Name), logger.Int("employees", d.Count))
	}
	log.Info(ctx, "report complete",
		logger.String("chart", res.ChartPath),
		logger.String("report", res.ReportPath),
	)
}
