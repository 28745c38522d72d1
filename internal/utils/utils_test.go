package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnsureDirExists_DirAlreadyExists verifies no error when directory exists.
func TestEnsureDirExists_DirAlreadyExists(t *testing.T) {
	// Arrange: t.TempDir() already exists and is cleaned up by the test framework
	existingDir := t.TempDir()

	// Act
	err := EnsureDirExists(existingDir)

	// Assert
	assert.NoError(t, err)
}

// TestEnsureDirExists_DirDoesNotExist verifies nested directories are created when missing.
func TestEnsureDirExists_DirDoesNotExist(t *testing.T) {
	newDir := filepath.Join(t.TempDir(), "results", "2026")

	err := EnsureDirExists(newDir)

	require.NoError(t, err)
	assert.DirExists(t, newDir)
}

// TestEnsureDirExists_CannotCreateDir verifies error when directory cannot be created.
func TestEnsureDirExists_CannotCreateDir(t *testing.T) {
	// Empty directory name should cause an error
	assert.Error(t, EnsureDirExists(""))
}

// TestEnsureDirExists_PathIsFile verifies a regular file in the way is reported.
func TestEnsureDirExists_PathIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logins.json")
	require.NoError(t, os.WriteFile(file, []byte("[]"), 0o600))

	err := EnsureDirExists(file)

	assert.ErrorContains(t, err, "is not a directory")
}
