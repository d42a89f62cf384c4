// Package compiler compiles the schema package of an awto project into the
// generated database package.
package compiler

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/syssam/awto/compiler/gen"
	"github.com/syssam/awto/compiler/load"
	"github.com/syssam/awto/internal/build"
	"github.com/syssam/awto/internal/workspace"
)

// Stage is a step of a database compilation.
type Stage string

// Compilation stages, in execution order.
const (
	StageValidateSchema Stage = "validate schema identity"
	StagePrepareRoot    Stage = "prepare workspace root"
	StageResetPackage   Stage = "reset and build package"
	StageRegister       Stage = "register in workspace"
	StageBuild          Stage = "trigger build"
)

// Default project layout.
const (
	DefaultSchemaDir   = "schema"
	DefaultSchemaEntry = "schema.go"
	DefaultSchemaName  = "schema"
	DefaultOutputRoot  = "awto"
)

// WorkspaceRegistrar adds a package directory, relative to the project
// root, to the workspace manifest.
type WorkspaceRegistrar interface {
	AppendPackage(ctx context.Context, path string) error
}

// BuildTrigger builds the generated package with the given name.
type BuildTrigger interface {
	Build(ctx context.Context, pkg string) error
}

// Database compiles the schema package into the database package.
type Database struct {
	root        string
	schemaDir   string
	schemaEntry string
	schemaName  string
	outputRoot  string
	pkg         string
	genOpts     []gen.Option
	registrar   WorkspaceRegistrar
	builder     BuildTrigger
	logger      *log.Logger

	// schemaModule is the module path read by the last schema validation.
	schemaModule string

	// mu serializes runs of the same Database.
	mu sync.Mutex
}

// Option configures a Database.
type Option func(*Database)

// WithRoot sets the project root. Defaults to the working directory.
func WithRoot(dir string) Option {
	return func(d *Database) { d.root = dir }
}

// WithSchema sets the schema package directory, relative to the root, and
// its entry file name.
func WithSchema(dir, entry string) Option {
	return func(d *Database) {
		if dir != "" {
			d.schemaDir = dir
		}
		if entry != "" {
			d.schemaEntry = entry
		}
	}
}

// WithSchemaName sets the required schema package name.
func WithSchemaName(name string) Option {
	return func(d *Database) {
		if name != "" {
			d.schemaName = name
		}
	}
}

// WithOutput sets the shared output root, relative to the project root, and
// the generated package name.
func WithOutput(root, pkg string) Option {
	return func(d *Database) {
		if root != "" {
			d.outputRoot = root
		}
		if pkg != "" {
			d.pkg = pkg
		}
	}
}

// WithGenOptions passes additional options to the package generator.
func WithGenOptions(opts ...gen.Option) Option {
	return func(d *Database) { d.genOpts = append(d.genOpts, opts...) }
}

// WithRegistrar sets the workspace registrar.
func WithRegistrar(r WorkspaceRegistrar) Option {
	return func(d *Database) { d.registrar = r }
}

// WithBuilder sets the build trigger.
func WithBuilder(b BuildTrigger) Option {
	return func(d *Database) { d.builder = b }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(d *Database) { d.logger = l }
}

// NewDatabase creates a Database. Without WithRegistrar and WithBuilder it
// registers the package in the root go.work and builds it with the default
// shell command.
func NewDatabase(opts ...Option) *Database {
	d := &Database{
		root:        ".",
		schemaDir:   DefaultSchemaDir,
		schemaEntry: DefaultSchemaEntry,
		schemaName:  DefaultSchemaName,
		outputRoot:  DefaultOutputRoot,
		pkg:         gen.DefaultPackage,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = log.Default()
	}
	if d.registrar == nil {
		d.registrar = workspace.New(d.root)
	}
	if d.builder == nil {
		d.builder = build.New(d.root, d.outputRoot)
	}
	return d
}

// Package returns the generated package name.
func (d *Database) Package() string {
	return d.pkg
}

// SchemaDir returns the schema package directory.
func (d *Database) SchemaDir() string {
	return filepath.Join(d.root, d.schemaDir)
}

// Target returns the generated package directory.
func (d *Database) Target() string {
	return filepath.Join(d.root, d.outputRoot, d.pkg)
}

// PackagePath returns the generated package directory relative to the
// project root, as recorded in the workspace.
func (d *Database) PackagePath() string {
	return "./" + filepath.ToSlash(filepath.Join(d.outputRoot, d.pkg))
}

// Run compiles the database package. Stages run in order and the first
// failure aborts the run; nothing is rolled back.
func (d *Database) Run(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	logger := d.logger.With("run", uuid.NewString())
	steps := []struct {
		stage Stage
		run   func(context.Context, *log.Logger) error
	}{
		{StageValidateSchema, d.validateSchema},
		{StagePrepareRoot, d.prepareRoot},
		{StageResetPackage, d.resetPackage},
		{StageRegister, d.register},
		{StageBuild, d.build},
	}
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Debug("running stage", "stage", s.stage)
		if err := s.run(ctx, logger); err != nil {
			logger.Debug("stage failed", "stage", s.stage, "err", err)
			return err
		}
	}
	logger.Infof("compiled package '%s'", d.pkg)
	return nil
}

func (d *Database) validateSchema(_ context.Context, logger *log.Logger) error {
	m, err := load.LoadManifest(filepath.Join(d.SchemaDir(), "go.mod"))
	if err != nil {
		return err
	}
	switch m.Name {
	case "":
		return ErrMissingSchemaName
	case d.schemaName:
		logger.Debug("schema manifest", "module", m.ModulePath)
		d.schemaModule = m.ModulePath
		return nil
	default:
		return &SchemaNameError{Actual: m.Name, Want: d.schemaName}
	}
}

func (d *Database) prepareRoot(context.Context, *log.Logger) error {
	dir := filepath.Join(d.root, d.outputRoot)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return gen.NewPathError(gen.OpCreateDir, dir, err)
	}
	return nil
}

func (d *Database) resetPackage(ctx context.Context, logger *log.Logger) error {
	models, err := load.ExtractFile(filepath.Join(d.SchemaDir(), d.schemaEntry))
	if err != nil {
		return err
	}
	logger.Debug("registered models", "models", models)
	opts, err := d.packageOptions()
	if err != nil {
		return err
	}
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return err
	}
	w := gen.NewPackageWriter(cfg)
	if err := w.Write(ctx, models); err != nil {
		return err
	}
	logger.Debug("wrote package", "dir", cfg.Target, "files", w.Metrics().FilesWritten, "bytes", w.Metrics().TotalBytes)
	return nil
}

// packageOptions configures the generated package: its location, its module
// path next to the schema module and the path the build step reads the
// schema from. Options passed with WithGenOptions take precedence.
func (d *Database) packageOptions() ([]gen.Option, error) {
	opts := []gen.Option{gen.WithTarget(d.Target()), gen.WithPackage(d.pkg)}
	if mp := gen.ModulePathFor(d.schemaModule, filepath.ToSlash(d.outputRoot), d.pkg); mp != "" {
		opts = append(opts, gen.WithModule(mp))
	}
	rel, err := filepath.Rel(d.Target(), d.SchemaDir())
	if err != nil {
		return nil, gen.NewConfigError("SchemaDir", d.SchemaDir(), err.Error())
	}
	opts = append(opts, gen.WithSchemaDir(filepath.ToSlash(rel)))
	return append(opts, d.genOpts...), nil
}

func (d *Database) register(ctx context.Context, _ *log.Logger) error {
	if err := d.registrar.AppendPackage(ctx, d.PackagePath()); err != nil {
		return &StageError{Stage: StageRegister, Cause: err}
	}
	return nil
}

func (d *Database) build(ctx context.Context, _ *log.Logger) error {
	if err := d.builder.Build(ctx, d.pkg); err != nil {
		return &StageError{Stage: StageBuild, Cause: err}
	}
	return nil
}
