package compiler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaNameError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &SchemaNameError{Actual: "models", Want: "schema"})
	assert.ErrorIs(t, err, ErrInvalidSchemaName)
	assert.NotErrorIs(t, err, ErrMissingSchemaName)
	assert.Contains(t, err.Error(), "must be named 'schema' but is named 'models'")
}

func TestStageError(t *testing.T) {
	cause := errors.New("exit status 1")
	tests := []struct {
		stage    Stage
		sentinel error
	}{
		{StageRegister, ErrWorkspaceRegistration},
		{StageBuild, ErrBuild},
	}
	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			err := &StageError{Stage: tt.stage, Cause: cause}
			assert.ErrorIs(t, err, tt.sentinel)
			assert.ErrorIs(t, err, cause)
			assert.Equal(t, string(tt.stage)+": exit status 1", err.Error())
			assert.True(t, IsStageError(fmt.Errorf("run: %w", err)))
		})
	}

	other := &StageError{Stage: StagePrepareRoot, Cause: cause}
	assert.NotErrorIs(t, other, ErrBuild)
	assert.NotErrorIs(t, other, ErrWorkspaceRegistration)
	assert.False(t, IsStageError(cause))
}
