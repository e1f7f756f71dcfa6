package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/headcount/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(*cfg, convey.ShouldResemble, *config.New(ctx))
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("HEADCOUNT_INPUT_PATH", "data/staff.csv")
			_ = os.Setenv("HEADCOUNT_HIGHLIGHT_DEPARTMENT", "Sales")
			_ = os.Setenv("HEADCOUNT_CHART_WIDTH", "1600")
			_ = os.Setenv("HEADCOUNT_CHART_DPI", "150")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.InputPath, convey.ShouldEqual, "data/staff.csv")
				convey.So(cfg.HighlightDepartment, convey.ShouldEqual, "Sales")
				convey.So(cfg.ChartWidth, convey.ShouldEqual, 1600)
				convey.So(cfg.ChartDPI, convey.ShouldEqual, 150)
				convey.So(cfg.ReportPath, convey.ShouldEqual, "employee_analysis.html")
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			path := createTempConfigFile(t, `
input_path: "in.csv"
delimiter: ";"
chart_path: "out/chart.png"
report_path: "out/report.html"
report_contact: "people-ops@example.com"
metrics_path: "out/headcount.prom"
`)
			_ = os.Setenv("HEADCOUNT_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.InputPath, convey.ShouldEqual, "in.csv")
				convey.So(cfg.DelimiterRune(), convey.ShouldEqual, ';')
				convey.So(cfg.ChartPath, convey.ShouldEqual, "out/chart.png")
				convey.So(cfg.ReportPath, convey.ShouldEqual, "out/report.html")
				convey.So(cfg.ReportContact, convey.ShouldEqual, "people-ops@example.com")
				convey.So(cfg.MetricsPath, convey.ShouldEqual, "out/headcount.prom")
				convey.So(cfg.HighlightDepartment, convey.ShouldEqual, "R&D") // From defaults
			})
		})

		convey.Convey("When both file and environment variables are set", func() {
			path := createTempConfigFile(t, `
input_path: "in.csv"
chart_width: 800
`)
			_ = os.Setenv("HEADCOUNT_CONFIG", path)
			_ = os.Setenv("HEADCOUNT_CHART_WIDTH", "1024")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.InputPath, convey.ShouldEqual, "in.csv")
				convey.So(cfg.ChartWidth, convey.ShouldEqual, 1024)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			_ = os.Setenv("HEADCOUNT_CONFIG", createTempConfigFile(t, `invalid: yaml: content: [`))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("HEADCOUNT_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("HEADCOUNT_CHART_HEIGHT", "tall")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the input path is blanked by the environment", func() {
			_ = os.Setenv("HEADCOUNT_INPUT_PATH", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "input_path must not be empty")
			})
		})
	})
}

// createTempConfigFile writes content to a YAML file under the test's temp dir.
func createTempConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "headcount.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// clearConfigEnvVars removes every HEADCOUNT_ variable the tests touch.
func clearConfigEnvVars() {
	for _, key := range []string{
		"HEADCOUNT_CONFIG",
		"HEADCOUNT_INPUT_PATH",
		"HEADCOUNT_HIGHLIGHT_DEPARTMENT",
		"HEADCOUNT_CHART_WIDTH",
		"HEADCOUNT_CHART_HEIGHT",
		"HEADCOUNT_CHART_DPI",
	} {
		_ = os.Unsetenv(key)
	}
}
