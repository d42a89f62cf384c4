// Package build builds generated packages by running a shell command in
// the package directory with the embedded mvdan.cc/sh interpreter.
package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// DefaultCommand runs the package build step, then compiles the package.
const DefaultCommand = "go generate ./... && go build ./..."

// PackageEnv is the environment variable holding the package name.
const PackageEnv = "AWTO_PACKAGE"

// Shell builds a package directory below the output root.
type Shell struct {
	root       string
	outputRoot string
	command    string
	env        []string
	stdout     io.Writer
	stderr     io.Writer
}

// New returns a Shell running DefaultCommand in <root>/<outputRoot>/<pkg>.
func New(root, outputRoot string) *Shell {
	return &Shell{
		root:       root,
		outputRoot: outputRoot,
		command:    DefaultCommand,
		env:        os.Environ(),
		stdout:     io.Discard,
		stderr:     os.Stderr,
	}
}

// WithCommand sets the build command.
func (s *Shell) WithCommand(cmd string) *Shell {
	if strings.TrimSpace(cmd) != "" {
		s.command = cmd
	}
	return s
}

// WithEnv sets the base environment of the command.
func (s *Shell) WithEnv(env []string) *Shell {
	s.env = env
	return s
}

// WithOutput sets the writers receiving the command output. nil writers
// discard output.
func (s *Shell) WithOutput(stdout, stderr io.Writer) *Shell {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	s.stdout, s.stderr = stdout, stderr
	return s
}

// Dir returns the directory the package is built in.
func (s *Shell) Dir(pkg string) string {
	return filepath.Join(s.root, s.outputRoot, pkg)
}

// Build runs the build command for the package with the given name.
func (s *Shell) Build(ctx context.Context, pkg string) error {
	prog, err := syntax.NewParser().Parse(strings.NewReader(s.command), "build")
	if err != nil {
		return fmt.Errorf("could not parse build command %q: %w", s.command, err)
	}
	dir, err := filepath.Abs(s.Dir(pkg))
	if err != nil {
		return fmt.Errorf("could not resolve package directory: %w", err)
	}
	env := append(append([]string(nil), s.env...), PackageEnv+"="+pkg)
	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(nil, s.stdout, s.stderr),
	)
	if err != nil {
		return fmt.Errorf("could not create interpreter: %w", err)
	}
	if err := runner.Run(ctx, prog); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return fmt.Errorf("could not build package '%s': exit status %d", pkg, status)
		}
		return fmt.Errorf("could not build package '%s': %w", pkg, err)
	}
	return nil
}
