// Package writer persists run artifacts to the local filesystem.
package writer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Default writer configuration constants.
const (
	defaultFilePerm = 0o644
	defaultDirPerm  = 0o755
	defaultBufSize  = 64 * 1024
)

// Option applies a configuration option to the FS writer.
type Option func(*FS)

// WithFilePerm sets the mode of written files.
func WithFilePerm(perm os.FileMode) Option {
	return func(w *FS) {
		if perm != 0 {
			w.permF = perm
		}
	}
}

// WithDirPerm sets the mode of created parent directories.
func WithDirPerm(perm os.FileMode) Option {
	return func(w *FS) {
		if perm != 0 {
			w.permD = perm
		}
	}
}

// FS writes files by streaming into a temp file in the destination directory
// and renaming it into place, so readers never observe a partial artifact.
type FS struct {
	permF   os.FileMode
	permD   os.FileMode
	bufSize int
}

// New creates a filesystem writer.
func New(opts ...Option) *FS {
	w := &FS{permF: defaultFilePerm, permD: defaultDirPerm, bufSize: defaultBufSize}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write stores everything read from r at path, replacing any existing file.
func (w *FS) Write(ctx context.Context, path string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrWrite)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, w.permD); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := w.writeAtomic(ctx, dir, path, r); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	return nil
}

func (w *FS) writeAtomic(ctx context.Context, dir, dest string, r io.Reader) error {
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}

	if err := tmp.Chmod(w.permF); err != nil {
		return fail(err)
	}
	bw := bufio.NewWriterSize(tmp, w.bufSize)
	if _, err := io.Copy(bw, &ctxReader{ctx: ctx, r: r}); err != nil {
		return fail(err)
	}
	if err := bw.Flush(); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// ctxReader checks for cancellation before every Read.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *ctxReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}
