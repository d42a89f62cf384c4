package compiler

import (
	"errors"
	"fmt"
)

// Sentinel errors of the compilation stages.
var (
	// ErrInvalidSchemaName indicates the schema package has the wrong name.
	ErrInvalidSchemaName = errors.New("awto: invalid schema package name")
	// ErrMissingSchemaName indicates the schema manifest declares no name.
	ErrMissingSchemaName = errors.New("awto: schema package must be named 'schema'")
	// ErrWorkspaceRegistration indicates the package could not be added to the workspace.
	ErrWorkspaceRegistration = errors.New("awto: workspace registration failed")
	// ErrBuild indicates the generated package failed to build.
	ErrBuild = errors.New("awto: build failed")
)

// SchemaNameError reports a schema package declaring another name than the
// required one.
type SchemaNameError struct {
	Actual string
	Want   string
}

// Error implements the error interface.
func (e *SchemaNameError) Error() string {
	return fmt.Sprintf("awto: schema package must be named '%s' but is named '%s'", e.Want, e.Actual)
}

// Is reports whether the target matches ErrInvalidSchemaName.
func (e *SchemaNameError) Is(target error) bool {
	return target == ErrInvalidSchemaName
}

// StageError wraps a collaborator failure with the stage it happened in.
type StageError struct {
	Stage Stage
	Cause error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Cause)
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error of the stage.
func (e *StageError) Is(target error) bool {
	switch e.Stage {
	case StageRegister:
		return target == ErrWorkspaceRegistration
	case StageBuild:
		return target == ErrBuild
	}
	return false
}

// IsStageError reports whether the error is a StageError.
func IsStageError(err error) bool {
	var stageErr *StageError
	return errors.As(err, &stageErr)
}
