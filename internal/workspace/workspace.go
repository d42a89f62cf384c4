// Package workspace records generated packages in the go.work file of the
// project root.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// FileName is the name of the workspace manifest.
const FileName = "go.work"

// DefaultGoVersion is the go directive of a newly created go.work.
const DefaultGoVersion = "1.24"

// GoWork adds packages to the go.work of a project root.
type GoWork struct {
	root      string
	goVersion string
}

// New returns a GoWork for the given project root.
func New(root string) *GoWork {
	return &GoWork{root: root, goVersion: DefaultGoVersion}
}

// WithGoVersion sets the go directive used when go.work does not exist yet.
func (w *GoWork) WithGoVersion(v string) *GoWork {
	if v != "" {
		w.goVersion = v
	}
	return w
}

// Path returns the path of the go.work file.
func (w *GoWork) Path() string {
	return filepath.Join(w.root, FileName)
}

// AppendPackage adds a use directive for dir, a slash-separated path
// relative to the root. A directory that is already used is left as is;
// a missing go.work is created.
func (w *GoWork) AppendPackage(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	file := w.Path()
	data, err := os.ReadFile(file)
	switch {
	case errors.Is(err, os.ErrNotExist):
		data = []byte("go " + w.goVersion + "\n")
	case err != nil:
		return fmt.Errorf("could not read %s: %w", file, err)
	}
	wf, err := modfile.ParseWork(file, data, nil)
	if err != nil {
		return fmt.Errorf("could not parse %s: %w", file, err)
	}
	use := usePath(dir)
	for _, u := range wf.Use {
		if usePath(u.Path) == use {
			return nil
		}
	}
	if err := wf.AddUse(use, ""); err != nil {
		return fmt.Errorf("could not add %q to %s: %w", use, file, err)
	}
	wf.Cleanup()
	if err := os.WriteFile(file, modfile.Format(wf.Syntax), 0o644); err != nil {
		return fmt.Errorf("could not write %s: %w", file, err)
	}
	return nil
}

// Uses returns the use directives of the go.work file.
func (w *GoWork) Uses() ([]string, error) {
	data, err := os.ReadFile(w.Path())
	if err != nil {
		return nil, err
	}
	wf, err := modfile.ParseWork(w.Path(), data, nil)
	if err != nil {
		return nil, err
	}
	uses := make([]string, 0, len(wf.Use))
	for _, u := range wf.Use {
		uses = append(uses, u.Path)
	}
	return uses, nil
}

// usePath normalizes a relative directory to the "./dir" form written by
// the go command.
func usePath(dir string) string {
	dir = path.Clean(filepath.ToSlash(dir))
	if path.IsAbs(dir) || dir == "." || strings.HasPrefix(dir, "../") {
		return dir
	}
	return "./" + dir
}
