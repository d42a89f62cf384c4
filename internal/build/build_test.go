package build

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPackageDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "awto", "database"), 0o755))
	return root
}

func TestShellBuild(t *testing.T) {
	t.Run("runs in package directory", func(t *testing.T) {
		root := newPackageDir(t)
		s := New(root, "awto").WithCommand("echo $AWTO_PACKAGE > built.txt")
		require.NoError(t, s.Build(context.Background(), "database"))

		data, err := os.ReadFile(filepath.Join(root, "awto", "database", "built.txt"))
		require.NoError(t, err)
		assert.Equal(t, "database\n", string(data))
	})

	t.Run("captures output", func(t *testing.T) {
		root := newPackageDir(t)
		var stdout bytes.Buffer
		s := New(root, "awto").WithCommand("echo building && echo done").WithOutput(&stdout, nil)
		require.NoError(t, s.Build(context.Background(), "database"))
		assert.Equal(t, "building\ndone\n", stdout.String())
	})

	t.Run("uses given environment", func(t *testing.T) {
		root := newPackageDir(t)
		var stdout bytes.Buffer
		s := New(root, "awto").
			WithCommand("echo $GOFLAGS").
			WithEnv([]string{"GOFLAGS=-mod=mod"}).
			WithOutput(&stdout, nil)
		require.NoError(t, s.Build(context.Background(), "database"))
		assert.Equal(t, "-mod=mod", strings.TrimSpace(stdout.String()))
	})

	t.Run("non-zero exit", func(t *testing.T) {
		root := newPackageDir(t)
		err := New(root, "awto").WithCommand("exit 3").Build(context.Background(), "database")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "package 'database'")
		assert.Contains(t, err.Error(), "exit status 3")
	})

	t.Run("invalid command", func(t *testing.T) {
		root := newPackageDir(t)
		err := New(root, "awto").WithCommand("echo 'unterminated").Build(context.Background(), "database")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "could not parse build command")
	})

	t.Run("missing package directory", func(t *testing.T) {
		err := New(t.TempDir(), "awto").WithCommand("true").Build(context.Background(), "database")
		require.Error(t, err)
	})
}

func TestShellDefaults(t *testing.T) {
	s := New("/project", "awto")
	assert.Equal(t, DefaultCommand, s.command)
	assert.Equal(t, filepath.Join("/project", "awto", "database"), s.Dir("database"))
	assert.Equal(t, DefaultCommand, s.WithCommand("  ").command)
}
