package gen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

// PackageWriter materializes the generated package directory.
type PackageWriter struct {
	cfg *Config

	// Metrics for diagnostics
	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks what a materialization wrote.
type WriterMetrics struct {
	FilesWritten int
	TotalBytes   int64
}

// NewPackageWriter creates a writer for the given config.
func NewPackageWriter(cfg *Config) *PackageWriter {
	return &PackageWriter{
		cfg:     cfg,
		metrics: &WriterMetrics{},
	}
}

// Metrics returns the write metrics.
func (w *PackageWriter) Metrics() *WriterMetrics {
	return w.metrics
}

// Materialize is the convenience function to reset the package directory
// and write the package for the given models.
func Materialize(ctx context.Context, cfg *Config, models []string) error {
	return NewPackageWriter(cfg).Write(ctx, models)
}

// Write resets the target directory and writes the template artifacts and
// the library entry. The module blocks and the library entry are built
// before the directory is touched, so collisions and render failures leave
// the previous package in place. Later failures leave the directory in
// whatever state the failing step left it.
func (w *PackageWriter) Write(ctx context.Context, models []string) error {
	modules, err := Modules(models)
	if err != nil {
		return err
	}
	lib, err := RenderLibrary(w.cfg, modules)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := w.reset(); err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	for _, a := range w.cfg.Artifacts {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return w.writeFile(a.Name, a.Data)
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	return w.writeFile(LibraryFile, lib)
}

// reset removes the target directory if present and recreates it with its
// source subdirectory.
func (w *PackageWriter) reset() error {
	target := w.cfg.Target
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		if err := os.RemoveAll(target); err != nil {
			return NewPathError(OpDeleteDir, target, err)
		}
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return NewPathError(OpDeleteDir, target, err)
	}
	if err := os.Mkdir(target, 0o755); err != nil {
		return NewPathError(OpCreateDir, target, err)
	}
	src := filepath.Join(target, filepath.FromSlash(w.cfg.SourceDir))
	if err := os.MkdirAll(src, 0o755); err != nil {
		return NewPathError(OpCreateDir, src, err)
	}
	return nil
}

func (w *PackageWriter) writeFile(name string, data []byte) error {
	path := filepath.Join(w.cfg.Target, filepath.FromSlash(name))
	if dir := filepath.Dir(path); dir != w.cfg.Target {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return NewPathError(OpCreateDir, dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return NewPathError(OpWriteFile, path, err)
	}

	w.mu.Lock()
	w.metrics.FilesWritten++
	w.metrics.TotalBytes += int64(len(data))
	w.mu.Unlock()
	return nil
}
