package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/headcount/internal/adapters/chart"
	"github.com/okian/headcount/internal/adapters/report"
	"github.com/okian/headcount/internal/adapters/source"
	app "github.com/okian/headcount/internal/app"
	"github.com/okian/headcount/internal/config"
	"github.com/okian/headcount/pkg/logger"
	"github.com/okian/headcount/pkg/metrics"
)

const chartSubtitle = "Workforce Analysis"

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use fmt for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Get().Error(ctx, "failed to load config", logger.Error(err))
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if _, err := newService(cfg, logger.Get()).Run(ctx); err != nil {
		logger.Get().Error(ctx, "report failed", logger.Error(err))
		stop()
		os.Exit(1)
	}
}

// newService maps configuration onto the pipeline.
func newService(cfg *config.Config, log logger.Logger) *app.Service {
	return app.New(
		app.WithLogger(log),
		app.WithInput(cfg.InputPath),
		app.WithLoader(source.NewCSV(source.WithDelimiter(cfg.DelimiterRune()))),
		app.WithChartPath(cfg.ChartPath),
		app.WithReportPath(cfg.ReportPath),
		app.WithHighlight(cfg.HighlightDepartment),
		app.WithChartRenderer(chart.New(
			chart.WithSize(cfg.ChartWidth, cfg.ChartHeight),
			chart.WithDPI(cfg.ChartDPI),
			chart.WithTitle("Employee Distribution Across Departments", cfg.ReportOrganization+" "+chartSubtitle),
		)),
		app.WithReportMeta(report.Meta{
			Title:        cfg.ReportTitle,
			Organization: cfg.ReportOrganization,
			Contact:      cfg.ReportContact,
			Date:         cfg.ReportDate,
		}),
		app.WithMetrics(metrics.Default()),
		app.WithMetricsPath(cfg.MetricsPath),
	)
}
