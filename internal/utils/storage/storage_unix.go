//go:build !windows

package storage

import "os"

// homeDir reads HOME on linux and macOS systems.
func homeDir() string {
	return os.Getenv("HOME")
}
