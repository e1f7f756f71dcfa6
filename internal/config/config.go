// Package config defines the report job configuration and its loading hooks.
//
// Conventions:
// - New(ctx) builds a Config populated with defaults.
// - Load(ctx) layers defaults, an optional YAML file and environment variables.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// InputPath is the employee CSV to analyse.
	InputPath string `koanf:"input_path"`

	// Delimiter separates CSV fields; must be a single character.
	Delimiter string `koanf:"delimiter"`

	// ChartPath and ReportPath are the two artifacts written per run.
	ChartPath  string `koanf:"chart_path"`
	ReportPath string `koanf:"report_path"`

	// HighlightDepartment is counted and drawn in the highlight color.
	HighlightDepartment string `koanf:"highlight_department"`

	// Chart canvas in pixels at ChartDPI.
	ChartWidth  int     `koanf:"chart_width"`
	ChartHeight int     `koanf:"chart_height"`
	ChartDPI    float64 `koanf:"chart_dpi"`

	// Report header and footer metadata. Kept static so reruns are byte-identical.
	ReportTitle        string `koanf:"report_title"`
	ReportOrganization string `koanf:"report_organization"`
	ReportContact      string `koanf:"report_contact"`
	ReportDate         string `koanf:"report_date"`

	// MetricsPath, when set, receives a Prometheus textfile after each run.
	MetricsPath string `koanf:"metrics_path"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		InputPath:           "employee_data.csv",
		Delimiter:           ",",
		ChartPath:           "department_distribution.png",
		ReportPath:          "employee_analysis.html",
		HighlightDepartment: "R&D",
		ChartWidth:          1200,
		ChartHeight:         700,
		ChartDPI:            96,
		ReportTitle:         "Employee Performance Analysis",
		ReportOrganization:  "Retail Company",
		ReportContact:       "analytics@example.com",
		ReportDate:          "November 21, 2025",
	}
}

// DelimiterRune returns the configured delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// Validate checks the fields a run cannot proceed without.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.InputPath) == "":
		return fmt.Errorf("%w: input_path must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.ChartPath) == "":
		return fmt.Errorf("%w: chart_path must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.ReportPath) == "":
		return fmt.Errorf("%w: report_path must not be empty", ErrInvalidConfig)
	case c.HighlightDepartment == "":
		return fmt.Errorf("%w: highlight_department must not be empty", ErrInvalidConfig)
	case utf8.RuneCountInString(c.Delimiter) != 1:
		return fmt.Errorf("%w: delimiter must be a single character, got %q", ErrInvalidConfig, c.Delimiter)
	case c.ChartWidth <= 0 || c.ChartHeight <= 0:
		return fmt.Errorf("%w: chart size must be positive, got %dx%d", ErrInvalidConfig, c.ChartWidth, c.ChartHeight)
	case c.ChartDPI <= 0:
		return fmt.Errorf("%w: chart_dpi must be positive", ErrInvalidConfig)
	}
	return nil
}
