// Package config loads the awto project configuration.
//
// Settings come from awto.toml in the project root (or the file given with
// --config) and from AWTO_ prefixed environment variables, such as
// AWTO_OUTPUT_PACKAGE. Every setting defaults to the conventional project
// layout, so a project without awto.toml needs no configuration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/syssam/awto/compiler/gen"
	"github.com/syssam/awto/internal/build"
	"github.com/syssam/awto/internal/workspace"
)

const (
	// FileName is the name of the config file (without extension).
	FileName = "awto"
	// FileExt is the config file extension.
	FileExt = "toml"
	// EnvPrefix is the prefix of environment overrides.
	EnvPrefix = "AWTO"
)

// ErrInvalidConfig is returned when a loaded setting is unusable.
var ErrInvalidConfig = errors.New("invalid config")

type (
	// Config is the project configuration.
	Config struct {
		Schema    SchemaConfig    `mapstructure:"schema" toml:"schema"`
		Output    OutputConfig    `mapstructure:"output" toml:"output"`
		Build     BuildConfig     `mapstructure:"build" toml:"build"`
		Workspace WorkspaceConfig `mapstructure:"workspace" toml:"workspace"`
		Watch     WatchConfig     `mapstructure:"watch" toml:"watch"`
	}

	// SchemaConfig locates the schema package.
	SchemaConfig struct {
		// Dir is the schema package directory, relative to the project root.
		Dir   string `mapstructure:"dir" toml:"dir"`
		// Entry is the file holding the registration marker.
		Entry string `mapstructure:"entry" toml:"entry"`
		// Name is the required schema package name.
		Name  string `mapstructure:"name" toml:"name"`
	}

	// OutputConfig locates the generated packages.
	OutputConfig struct {
		// Root is the shared output directory, relative to the project root.
		Root       string `mapstructure:"root" toml:"root"`
		// Package is the name of the generated database package.
		Package    string `mapstructure:"package" toml:"package"`
		// Module is the module path of the generated package. Empty derives
		// it from the schema module path.
		Module     string `mapstructure:"module" toml:"module"`
		// ORMPackage is the import path of the ORM runtime.
		ORMPackage string `mapstructure:"orm_package" toml:"orm_package"`
	}

	// BuildConfig controls the build trigger.
	BuildConfig struct {
		// Command is the shell command run in the generated package directory.
		Command string `mapstructure:"command" toml:"command"`
	}

	// WorkspaceConfig controls workspace registration.
	WorkspaceConfig struct {
		// GoVersion is the go directive of a newly created go.work.
		GoVersion string `mapstructure:"go_version" toml:"go_version"`
	}

	// WatchConfig controls watch mode.
	WatchConfig struct {
		// Debounce is the quiet period before a re-compilation, e.g. "500ms".
		Debounce string `mapstructure:"debounce" toml:"debounce"`
	}
)

// DefaultConfig returns the conventional project layout.
func DefaultConfig() *Config {
	return &Config{
		Schema: SchemaConfig{
			Dir:   "schema",
			Entry: "schema.go",
			Name:  "schema",
		},
		Output: OutputConfig{
			Root:       "awto",
			Package:    gen.DefaultPackage,
			ORMPackage: gen.DefaultORMPackage,
		},
		Build: BuildConfig{
			Command: build.DefaultCommand,
		},
		Workspace: WorkspaceConfig{
			GoVersion: workspace.DefaultGoVersion,
		},
		Watch: WatchConfig{
			Debounce: "500ms",
		},
	}
}

// Load reads the configuration of the project at root. An explicit file
// must exist; the default awto.toml is optional.
func Load(root, file string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("schema.dir", defaults.Schema.Dir)
	v.SetDefault("schema.entry", defaults.Schema.Entry)
	v.SetDefault("schema.name", defaults.Schema.Name)
	v.SetDefault("output.root", defaults.Output.Root)
	v.SetDefault("output.package", defaults.Output.Package)
	v.SetDefault("output.module", defaults.Output.Module)
	v.SetDefault("output.orm_package", defaults.Output.ORMPackage)
	v.SetDefault("build.command", defaults.Build.Command)
	v.SetDefault("workspace.go_version", defaults.Workspace.GoVersion)
	v.SetDefault("watch.debounce", defaults.Watch.Debounce)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType(FileExt)
		v.AddConfigPath(root)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	required := []struct {
		key, value string
	}{
		{"schema.dir", c.Schema.Dir},
		{"schema.entry", c.Schema.Entry},
		{"schema.name", c.Schema.Name},
		{"output.root", c.Output.Root},
		{"output.package", c.Output.Package},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, r.key)
		}
	}
	if _, err := c.WatchDebounce(); err != nil {
		return err
	}
	return nil
}

// WatchDebounce returns the parsed watch debounce period.
func (c *Config) WatchDebounce() (time.Duration, error) {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 0, fmt.Errorf("%w: watch.debounce: %w", ErrInvalidConfig, err)
	}
	return d, nil
}

// TOML renders the configuration in awto.toml syntax.
func (c *Config) TOML() ([]byte, error) {
	return toml.Marshal(c)
}
