// Package storage provides the application's config and data directory paths per platform.
package storage

import "path/filepath"

const appDirName = ".browser-logins"

// GetConfigDirectory returns the directory holding config.yaml.
func GetConfigDirectory() string {
	return filepath.Join(homeDir(), appDirName)
}

// GetDataStoragePath returns the default directory for saved results.
func GetDataStoragePath() string {
	return filepath.Join(GetConfigDirectory(), "data")
}
