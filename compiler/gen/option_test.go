package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/awto"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := NewConfig(WithTarget("awto/database"))
		require.NoError(t, err)
		assert.Equal(t, "awto/database", cfg.Target)
		assert.Equal(t, DefaultPackage, cfg.Package)
		assert.Equal(t, DefaultSourceDir, cfg.SourceDir)
		assert.Equal(t, DefaultORMPackage, cfg.ORMPackage)
		assert.Equal(t, DefaultHeader, cfg.Header)
		assert.Equal(t, "awto.local/database", cfg.Module)
		assert.Equal(t, DefaultGoVersion, cfg.GoVersion)
		assert.Equal(t, DefaultSchemaDir, cfg.SchemaDir)
		require.Len(t, cfg.Artifacts, 3)
		assert.Equal(t, "go.mod", cfg.Artifacts[0].Name)
		assert.Equal(t, "generate.go", cfg.Artifacts[1].Name)
		assert.Equal(t, "app/doc.go", cfg.Artifacts[2].Name)
	})

	t.Run("missing target", func(t *testing.T) {
		t.Parallel()
		_, err := NewConfig()
		require.ErrorIs(t, err, ErrMissingConfig)
		assert.True(t, IsConfigError(err))
	})

	t.Run("options", func(t *testing.T) {
		t.Parallel()
		cfg, err := NewConfig(
			WithTarget("out"),
			WithPackage("store"),
			WithSourceDir("internal/app"),
			WithORMPackage("example.com/orm"),
			WithHeader("generated"),
			WithModule("example.com/shop/store"),
			WithGoVersion("1.25"),
			WithSchemaDir("../../models"),
		)
		require.NoError(t, err)
		assert.Equal(t, "example.com/shop/store", cfg.Module)
		assert.Equal(t, "1.25", cfg.GoVersion)
		assert.Equal(t, "../../models", cfg.SchemaDir)
		assert.Equal(t, "store", cfg.Package)
		assert.Equal(t, "internal/app", cfg.SourceDir)
		assert.Equal(t, "example.com/orm", cfg.ORMPackage)
		assert.Equal(t, "generated", cfg.Header)
	})
}

func TestOptionValidation(t *testing.T) {
	t.Parallel()

	tests := map[string]Option{
		"empty target":        WithTarget(""),
		"invalid package":     WithPackage("my-db"),
		"escaping source dir": WithSourceDir("../app"),
		"absolute source dir": WithSourceDir("/app"),
		"empty orm package":   WithORMPackage(""),
		"stdlib-like module":  WithModule("database"),
		"invalid module":      WithModule("example.com/a b"),
		"empty go version":    WithGoVersion(""),
		"empty schema dir":    WithSchemaDir(""),
		"schema dir spaces":   WithSchemaDir("../my schema"),
		"source package name": WithSourceDir("app-v2"),
		"absolute artifact":   WithArtifacts(Artifact{Name: "/etc/passwd"}),
		"escaping artifact":   WithArtifacts(Artifact{Name: "../go.mod"}),
		"library overwrite":   WithArtifacts(Artifact{Name: LibraryFile}),
		"empty artifact name": WithArtifacts(Artifact{}),
	}
	for name, opt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := opt(&Config{})
			require.Error(t, err)
			assert.True(t, IsConfigError(err))
		})
	}
}

func TestTemplates(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t,
		WithPackage("store"),
		WithModule("example.com/shop/awto/store"),
		WithSchemaDir("../../schema"),
	)
	artifacts, err := Templates(cfg)
	require.NoError(t, err)
	require.Len(t, artifacts, 3)

	gomod := string(artifacts[0].Data)
	assert.Contains(t, gomod, "module example.com/shop/awto/store\n")
	assert.Contains(t, gomod, "go "+DefaultGoVersion)
	assert.Contains(t, gomod, "require github.com/syssam/awto v"+awto.Version)

	generate := string(artifacts[1].Data)
	assert.Contains(t, generate, "package store\n")
	assert.Contains(t, generate, "//go:generate go run github.com/syssam/awto/cmd/awto generate bindings --schema ../../schema --out ./app\n")

	assert.Contains(t, string(artifacts[2].Data), "package app\n")
}

func TestModulePathFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		schema, root, pkg, want string
	}{
		{"example.com/shop/schema", "awto", "database", "example.com/shop/awto/database"},
		{"example.com/shop/schema/v2", "awto", "database", "example.com/shop/awto/database"},
		{"github.com/acme/app/schema", "gen/out", "store", "github.com/acme/app/gen/out/store"},
		{"schema", "awto", "database", ""},
		{"example.com/schema", "awto", "database", "example.com/awto/database"},
		{"local/schema", "awto", "database", ""},
		{"", "awto", "database", ""},
	}
	for _, tt := range tests {
		t.Run(tt.schema, func(t *testing.T) {
			assert.Equal(t, tt.want, ModulePathFor(tt.schema, tt.root, tt.pkg))
		})
	}
}
