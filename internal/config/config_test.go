package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	d, err := cfg.WatchDebounce()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, d)
}

func TestLoadFile(t *testing.T) {
	root := t.TempDir()
	content := `
[output]
package = "store"

[build]
command = "go build ./..."
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "awto.toml"), []byte(content), 0o644))

	cfg, err := Load(root, "")
	require.NoError(t, err)
	assert.Equal(t, "store", cfg.Output.Package)
	assert.Equal(t, "awto", cfg.Output.Root)
	assert.Equal(t, "go build ./...", cfg.Build.Command)
	assert.Equal(t, "schema", cfg.Schema.Name)
}

func TestLoadExplicitFile(t *testing.T) {
	t.Run("reads given file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "custom.toml")
		require.NoError(t, os.WriteFile(file, []byte("[schema]\ndir = \"models\"\n"), 0o644))

		cfg, err := Load(t.TempDir(), file)
		require.NoError(t, err)
		assert.Equal(t, "models", cfg.Schema.Dir)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := Load(t.TempDir(), filepath.Join(t.TempDir(), "missing.toml"))
		require.Error(t, err)
	})
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("AWTO_OUTPUT_PACKAGE", "persistence")
	t.Setenv("AWTO_WATCH_DEBOUNCE", "2s")

	cfg, err := Load(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, "persistence", cfg.Output.Package)

	d, err := cfg.WatchDebounce()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, d)
}

func TestLoadInvalid(t *testing.T) {
	t.Run("empty required value", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "awto.toml"), []byte("[schema]\nname = \"\"\n"), 0o644))

		_, err := Load(root, "")
		require.ErrorIs(t, err, ErrInvalidConfig)
		assert.Contains(t, err.Error(), "schema.name")
	})

	t.Run("bad debounce", func(t *testing.T) {
		t.Setenv("AWTO_WATCH_DEBOUNCE", "soon")
		_, err := Load(t.TempDir(), "")
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("malformed toml", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "awto.toml"), []byte("[schema\n"), 0o644))

		_, err := Load(root, "")
		require.Error(t, err)
	})
}

func TestTOML(t *testing.T) {
	out, err := DefaultConfig().TOML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "[output]")
	assert.Contains(t, string(out), "package = 'database'")

	var decoded Config
	require.NoError(t, toml.Unmarshal(out, &decoded))
	assert.Equal(t, DefaultConfig(), &decoded)
}
