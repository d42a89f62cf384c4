package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrDirectoryDelete indicates the previous package directory could not be removed.
	ErrDirectoryDelete = errors.New("awto: could not delete directory")
	// ErrDirectoryCreate indicates a package directory could not be created.
	ErrDirectoryCreate = errors.New("awto: could not create directory")
	// ErrFileWrite indicates a package file could not be written.
	ErrFileWrite = errors.New("awto: could not write file")
	// ErrModuleCollision indicates two models map to the same module name.
	ErrModuleCollision = errors.New("awto: module name collision")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("awto: missing configuration")
	// ErrGenerationFailed indicates the library entry could not be rendered.
	ErrGenerationFailed = errors.New("awto: code generation failed")
)

// Op is a filesystem operation of the materializer.
type Op string

// Filesystem operations.
const (
	OpDeleteDir Op = "delete directory"
	OpCreateDir Op = "create directory"
	OpWriteFile Op = "write file"
)

// PathError records a failed filesystem operation and the path it touched.
type PathError struct {
	Op    Op
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *PathError) Error() string {
	return fmt.Sprintf("awto: could not %s '%s': %v", e.Op, e.Path, e.Cause)
}

// Unwrap returns the underlying error.
func (e *PathError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error of the operation.
func (e *PathError) Is(target error) bool {
	switch e.Op {
	case OpDeleteDir:
		return target == ErrDirectoryDelete
	case OpCreateDir:
		return target == ErrDirectoryCreate
	case OpWriteFile:
		return target == ErrFileWrite
	}
	return false
}

// NewPathError creates a new PathError.
func NewPathError(op Op, path string, cause error) *PathError {
	return &PathError{Op: op, Path: path, Cause: cause}
}

// CollisionError reports models whose module names are equal.
type CollisionError struct {
	Module string
	Models []string
}

// Error implements the error interface.
func (e *CollisionError) Error() string {
	return fmt.Sprintf("awto: models %s map to the same module %q", strings.Join(e.Models, ", "), e.Module)
}

// Is reports whether the target matches ErrModuleCollision.
func (e *CollisionError) Is(target error) bool {
	return target == ErrModuleCollision
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("awto: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("awto: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError represents a code generation error.
type GenerationError struct {
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("awto: generation error")
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(file, message string, cause error) *GenerationError {
	return &GenerationError{
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsPathError reports whether the error is a PathError.
func IsPathError(err error) bool {
	var pathErr *PathError
	return errors.As(err, &pathErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
