package gen

import (
	"fmt"
	"go/token"
	"path"
	"strings"

	"golang.org/x/mod/module"

	"github.com/syssam/awto"
)

// Default values of the generated database package.
const (
	DefaultPackage    = "database"
	DefaultSourceDir  = "app"
	DefaultORMPackage = awto.ImportPath + "/orm"
	DefaultGoVersion  = "1.24"
	DefaultSchemaDir  = "../../schema"
	LibraryFile       = "database.go"
)

// DefaultModuleHost prefixes the module path of a generated package when
// none is configured. Module paths need a dot in their first element so they
// cannot shadow standard library packages.
const DefaultModuleHost = "awto.local"

// DefaultHeader is the header comment of the generated library entry.
var DefaultHeader = fmt.Sprintf("Code generated by %s v%s. DO NOT EDIT.", awto.Name, awto.Version)

// Artifact is a file written verbatim into the generated package.
type Artifact struct {
	Name string // slash-separated path relative to the package directory
	Data []byte
}

// Config holds the generated package settings.
type Config struct {
	// Target is the package directory. It is removed and recreated on
	// every materialization.
	Target string
	// Package is the Go package name of the generated package.
	Package string
	// Module is the module path of the generated package. Defaults to
	// DefaultModuleHost/Package.
	Module string
	// GoVersion is the go directive of the generated module.
	GoVersion string
	// SourceDir is the fixed subdirectory receiving the bindings written by
	// the build step. The library entry imports it for side effects.
	SourceDir string
	// SchemaDir is the schema package directory, relative to the package
	// directory, that the build step reads.
	SchemaDir string
	// ORMPackage is the import path of the re-exported ORM runtime.
	ORMPackage string
	// Header is the header comment of the library entry.
	Header string
	// Artifacts are the static files of the package. Unless set with
	// WithArtifacts, they are rendered from the embedded templates.
	Artifacts []Artifact
}

// Option configures code generation.
type Option func(*Config) error

// NewConfig creates a Config with defaults, applying the given options.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		Package:    DefaultPackage,
		GoVersion:  DefaultGoVersion,
		SourceDir:  DefaultSourceDir,
		SchemaDir:  DefaultSchemaDir,
		ORMPackage: DefaultORMPackage,
		Header:     DefaultHeader,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.Target == "" {
		return nil, NewConfigError("Target", nil, "missing target directory in config")
	}
	if cfg.Module == "" {
		cfg.Module = path.Join(DefaultModuleHost, cfg.Package)
	}
	if cfg.Artifacts == nil {
		artifacts, err := Templates(cfg)
		if err != nil {
			return nil, err
		}
		cfg.Artifacts = artifacts
	}
	return cfg, nil
}

// WithTarget sets the package directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithPackage sets the generated package name.
func WithPackage(name string) Option {
	return func(c *Config) error {
		if !token.IsIdentifier(name) {
			return NewConfigError("Package", name, "package name must be a Go identifier")
		}
		c.Package = name
		return nil
	}
}

// WithModule sets the module path of the generated package.
func WithModule(modulePath string) Option {
	return func(c *Config) error {
		if err := module.CheckPath(modulePath); err != nil {
			return NewConfigError("Module", modulePath, err.Error())
		}
		c.Module = modulePath
		return nil
	}
}

// WithGoVersion sets the go directive of the generated module.
func WithGoVersion(version string) Option {
	return func(c *Config) error {
		if version == "" {
			return NewConfigError("GoVersion", nil, "go version cannot be empty")
		}
		c.GoVersion = version
		return nil
	}
}

// WithSourceDir sets the build-step output subdirectory. Its last element
// is the package name of the bindings.
func WithSourceDir(dir string) Option {
	return func(c *Config) error {
		if dir == "" || path.IsAbs(dir) || strings.Contains(dir, "..") {
			return NewConfigError("SourceDir", dir, "source directory must be a relative path inside the package")
		}
		if !token.IsIdentifier(path.Base(dir)) {
			return NewConfigError("SourceDir", dir, "last element of the source directory must be a Go identifier")
		}
		c.SourceDir = dir
		return nil
	}
}

// WithSchemaDir sets the schema package directory, relative to the package
// directory.
func WithSchemaDir(dir string) Option {
	return func(c *Config) error {
		if dir == "" || strings.ContainsAny(dir, " \t\n") {
			return NewConfigError("SchemaDir", dir, "schema directory must be a non-empty path without spaces")
		}
		c.SchemaDir = dir
		return nil
	}
}

// WithORMPackage sets the import path of the ORM runtime.
func WithORMPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("ORMPackage", nil, "ORM package cannot be empty")
		}
		c.ORMPackage = pkg
		return nil
	}
}

// WithHeader sets the file header comment.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithArtifacts replaces the rendered template files.
func WithArtifacts(artifacts ...Artifact) Option {
	return func(c *Config) error {
		for _, a := range artifacts {
			if a.Name == "" || path.IsAbs(a.Name) || strings.Contains(a.Name, "..") {
				return NewConfigError("Artifacts", a.Name, "artifact path must be relative to the package")
			}
			if a.Name == LibraryFile {
				return NewConfigError("Artifacts", a.Name, "artifact overwrites the library entry")
			}
		}
		c.Artifacts = append([]Artifact{}, artifacts...)
		return nil
	}
}

// ModulePathFor returns the module path of a generated package placed next
// to the schema module. For the schema module example.com/shop/schema, the
// output root awto and the package database it is
// example.com/shop/awto/database. It returns "" if the schema module has no
// parent path to derive from.
func ModulePathFor(schemaModule, outputRoot, pkg string) string {
	prefix, _, ok := module.SplitPathVersion(schemaModule)
	if !ok {
		prefix = schemaModule
	}
	parent := path.Dir(prefix)
	if parent == "." || parent == "/" {
		return ""
	}
	mp := path.Join(parent, outputRoot, pkg)
	if module.CheckPath(mp) != nil {
		return ""
	}
	return mp
}
