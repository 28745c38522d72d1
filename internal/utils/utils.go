// Package utils provides filesystem helpers.
package utils

import (
	"errors"
	"fmt"
	"os"
)

// EnsureDirExists checks if a directory exists at the given path and creates it
// if it does not. Returns an error if the directory cannot be created, or if the
// path exists but is not a directory.
func EnsureDirExists(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return os.MkdirAll(path, 0o755)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s exists and is not a directory", path)
	}
	return nil
}
