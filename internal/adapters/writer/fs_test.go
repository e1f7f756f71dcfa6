package writer_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/okian/headcount/internal/adapters/writer"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFS_Write(t *testing.T) {
	ctx := context.Background()

	Convey("Given a filesystem writer", t, func() {
		dir := t.TempDir()
		w := writer.New()

		Convey("When writing into a missing sub directory", func() {
			path := filepath.Join(dir, "out", "report.html")
			err := w.Write(ctx, path, strings.NewReader("<html></html>"))

			Convey("Then the directory is created and the content stored", func() {
				So(err, ShouldBeNil)
				b, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(b), ShouldEqual, "<html></html>")
			})

			Convey("And no temp files are left behind", func() {
				entries, _ := os.ReadDir(filepath.Join(dir, "out"))
				So(entries, ShouldHaveLength, 1)
				So(strings.HasPrefix(entries[0].Name(), ".tmp-"), ShouldBeFalse)
			})
		})

		Convey("When the target already exists", func() {
			path := filepath.Join(dir, "chart.png")
			So(w.Write(ctx, path, bytes.NewBufferString("v1")), ShouldBeNil)
			So(w.Write(ctx, path, bytes.NewBufferString("v2")), ShouldBeNil)

			Convey("Then it is replaced", func() {
				b, _ := os.ReadFile(path)
				So(string(b), ShouldEqual, "v2")
			})
		})

		Convey("When the file mode is configured", func() {
			if runtime.GOOS == "windows" {
				return
			}
			path := filepath.Join(dir, "private.html")
			So(writer.New(writer.WithFilePerm(0o600)).Write(ctx, path, strings.NewReader("x")), ShouldBeNil)

			Convey("Then it is applied", func() {
				info, err := os.Stat(path)
				So(err, ShouldBeNil)
				So(info.Mode().Perm(), ShouldEqual, os.FileMode(0o600))
			})
		})

		Convey("When the parent path is a regular file", func() {
			blocker := filepath.Join(dir, "blocker")
			So(os.WriteFile(blocker, []byte("x"), 0o600), ShouldBeNil)
			err := w.Write(ctx, filepath.Join(blocker, "report.html"), strings.NewReader("x"))

			Convey("Then the write fails with ErrWrite", func() {
				So(errors.Is(err, writer.ErrWrite), ShouldBeTrue)
			})
		})

		Convey("When the path is empty", func() {
			So(errors.Is(w.Write(ctx, "", strings.NewReader("x")), writer.ErrWrite), ShouldBeTrue)
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			path := filepath.Join(dir, "never.html")
			err := w.Write(cctx, path, strings.NewReader("x"))

			Convey("Then nothing is written", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				_, statErr := os.Stat(path)
				So(os.IsNotExist(statErr), ShouldBeTrue)
			})
		})
	})
}
