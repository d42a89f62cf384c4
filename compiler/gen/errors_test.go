package gen

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathError(t *testing.T) {
	t.Run("Error message names the path", func(t *testing.T) {
		err := NewPathError(OpDeleteDir, "./awto/database", fs.ErrPermission)
		assert.Equal(t, "awto: could not delete directory './awto/database': permission denied", err.Error())
	})

	t.Run("Is matches the operation sentinel", func(t *testing.T) {
		assert.ErrorIs(t, NewPathError(OpDeleteDir, "d", nil), ErrDirectoryDelete)
		assert.ErrorIs(t, NewPathError(OpCreateDir, "d", nil), ErrDirectoryCreate)
		assert.ErrorIs(t, NewPathError(OpWriteFile, "f", nil), ErrFileWrite)
		assert.NotErrorIs(t, NewPathError(OpWriteFile, "f", nil), ErrDirectoryCreate)
		assert.NotErrorIs(t, NewPathError(Op("chmod"), "f", nil), ErrFileWrite)
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		err := NewPathError(OpWriteFile, "go.mod", fs.ErrExist)
		assert.ErrorIs(t, err, fs.ErrExist)
		assert.True(t, IsPathError(err))
		assert.False(t, IsPathError(errors.New("other")))
	})
}

func TestCollisionError(t *testing.T) {
	err := &CollisionError{Module: "user_account", Models: []string{"UserAccount", "User_Account"}}
	assert.ErrorIs(t, err, ErrModuleCollision)
	assert.Contains(t, err.Error(), "UserAccount, User_Account")
	assert.Contains(t, err.Error(), `"user_account"`)
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Package", "my-db", "package name must be a Go identifier")

		assert.Contains(t, err.Error(), "awto: config error")
		assert.Contains(t, err.Error(), "Package")
		assert.Contains(t, err.Error(), "my-db")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Target", nil, "cannot be empty")
		assert.NotContains(t, err.Error(), "value:")
	})

	t.Run("Is matches ErrMissingConfig", func(t *testing.T) {
		assert.True(t, errors.Is(NewConfigError("Target", nil, ""), ErrMissingConfig))
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("syntax error")
		err := NewGenerationError(LibraryFile, "render library entry", cause)

		assert.Contains(t, err.Error(), "awto: generation error")
		assert.Contains(t, err.Error(), "file: database.go")
		assert.Contains(t, err.Error(), "render library entry")
		assert.Contains(t, err.Error(), "syntax error")
		require.ErrorIs(t, err, cause)
		assert.ErrorIs(t, err, ErrGenerationFailed)
	})

	t.Run("IsGenerationError helper", func(t *testing.T) {
		assert.True(t, IsGenerationError(NewGenerationError("", "x", nil)))
		assert.False(t, IsGenerationError(errors.New("other")))
	})
}
