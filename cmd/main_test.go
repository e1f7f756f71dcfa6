package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/headcount/internal/config"
	"github.com/okian/headcount/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

const dataset = `department,region,performance_score,years_experience,satisfaction_rating
R&D,North,80,5,4.0
R&D,South,90,7,4.5
R&D,East,70,3,3.5
Sales,North,60,2,3.0
Sales,West,65,4,3.2
Sales,East,75,6,4.1
Sales,South,55,1,2.9
Sales,North,85,9,4.8
HR,West,72,8,3.9
HR,North,68,4,3.6
`

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.So(logger.Init(), convey.ShouldBeNil)
		dir := t.TempDir()
		input := filepath.Join(dir, "employee_data.csv")
		convey.So(os.WriteFile(input, []byte(dataset), 0o600), convey.ShouldBeNil)

		convey.Convey("When configuration comes from the environment", func() {
			_ = os.Setenv("HEADCOUNT_INPUT_PATH", input)
			_ = os.Setenv("HEADCOUNT_CHART_PATH", filepath.Join(dir, "department_distribution.png"))
			_ = os.Setenv("HEADCOUNT_REPORT_PATH", filepath.Join(dir, "employee_analysis.html"))
			_ = os.Setenv("HEADCOUNT_CHART_WIDTH", "640")
			_ = os.Setenv("HEADCOUNT_CHART_HEIGHT", "480")
			defer func() {
				_ = os.Unsetenv("HEADCOUNT_INPUT_PATH")
				_ = os.Unsetenv("HEADCOUNT_CHART_PATH")
				_ = os.Unsetenv("HEADCOUNT_REPORT_PATH")
				_ = os.Unsetenv("HEADCOUNT_CHART_WIDTH")
				_ = os.Unsetenv("HEADCOUNT_CHART_HEIGHT")
			}()

			ctx := context.Background()
			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the configured service produces both artifacts", func() {
				res, err := newService(cfg, logger.Nop()).Run(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Summary.Highlight.Count, convey.ShouldEqual, 3)

				_, err = os.Stat(cfg.ChartPath)
				convey.So(err, convey.ShouldBeNil)
				html, err := os.ReadFile(cfg.ReportPath)
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(html), convey.ShouldContainSubstring, cfg.ReportDate)
				convey.So(string(html), convey.ShouldContainSubstring, "30.0%")
			})
		})

		convey.Convey("When the highlighted department is absent", func() {
			cfg := config.New(context.Background())
			cfg.InputPath = input
			cfg.HighlightDepartment = "Legal"
			cfg.ChartPath = filepath.Join(dir, "c.png")
			cfg.ReportPath = filepath.Join(dir, "r.html")

			convey.Convey("Then the run fails", func() {
				_, err := newService(cfg, logger.Nop()).Run(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "Legal")
			})
		})

		convey.Convey("When a semicolon delimiter is configured", func() {
			semi := filepath.Join(dir, "semi.csv")
			convey.So(os.WriteFile(semi, []byte("department;region;performance_score;years_experience;satisfaction_rating\nR&D;North;80;5;4\n"), 0o600), convey.ShouldBeNil)
			cfg := config.New(context.Background())
			cfg.InputPath = semi
			cfg.Delimiter = ";"
			cfg.ChartPath = filepath.Join(dir, "s.png")
			cfg.ReportPath = filepath.Join(dir, "s.html")

			convey.Convey("Then the file is parsed with it", func() {
				res, err := newService(cfg, logger.Nop()).Run(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Summary.Total, convey.ShouldEqual, 1)
			})
		})
	})
}
