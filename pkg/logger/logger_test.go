package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		Convey("When initialized with defaults", func() {
			So(Init(), ShouldBeNil)

			Convey("Then Get returns a usable logger", func() {
				So(Get(), ShouldNotBeNil)
				So(Sync(), ShouldBeNil)
			})
		})

		Convey("When initialized with an unknown format", func() {
			err := Init(WithFormat("xml"))

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "unknown log format")
			})
		})
	})
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a logger writing text to a buffer", t, func() {
		var buf bytes.Buffer
		So(Init(WithOutput(&buf)), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging with fields", func() {
			Get().Info(ctx, "rows loaded", Int("rows", 10), String("path", "employee_data.csv"))

			Convey("Then the fields and caller appear in the line", func() {
				line := buf.String()
				So(line, ShouldContainSubstring, "rows loaded")
				So(line, ShouldContainSubstring, "rows=10")
				So(line, ShouldContainSubstring, "path=employee_data.csv")
				So(line, ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When the level is raised to warn", func() {
			So(SetLevelString("warn"), ShouldBeNil)
			Get().Info(ctx, "hidden")
			Get().Warn(ctx, "shown")

			Convey("Then info lines are dropped", func() {
				So(buf.String(), ShouldNotContainSubstring, "hidden")
				So(buf.String(), ShouldContainSubstring, "shown")
			})
		})

		Convey("When using With and Named", func() {
			Named("stage").With(String("run_id", "abc")).Info(ctx, "done")

			Convey("Then carried fields are grouped", func() {
				So(buf.String(), ShouldContainSubstring, "stage.run_id=abc")
			})
		})
	})
}

func TestLoggerJSON(t *testing.T) {
	Convey("Given a JSON logger", t, func() {
		var buf bytes.Buffer
		So(Init(WithOutput(&buf), WithFormat("JSON")), ShouldBeNil)

		Convey("When logging an error field", func() {
			Get().Error(context.Background(), "write failed", Error(errors.New("disk full")))

			Convey("Then each line is a JSON object", func() {
				var rec map[string]any
				So(json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &rec), ShouldBeNil)
				So(rec["msg"], ShouldEqual, "write failed")
				So(rec["level"], ShouldEqual, "ERROR")
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		for _, lvl := range []string{"debug", "INFO", "", " warning ", "error"} {
			So(SetLevelString(lvl), ShouldBeNil)
		}
		So(SetLevelString("verbose"), ShouldNotBeNil)
		So(SetLevelString("info"), ShouldBeNil)
	})
}

func TestNop(t *testing.T) {
	Convey("Given a nop logger", t, func() {
		l := Nop()
		So(func() { l.Error(context.Background(), "ignored", String("k", "v")) }, ShouldNotPanic)
		So(l.Named("x").With(Int("n", 1)), ShouldNotBeNil)
	})
}
