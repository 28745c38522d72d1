//go:build windows

package storage

import (
	"os"

	"github.com/charmbracelet/log"
)

// homeDir prefers USERPROFILE, then os.UserHomeDir(). If both fail it falls back to
// os.TempDir() so the paths built from it are never relative.
func homeDir() string {
	userProfileDir := os.Getenv("USERPROFILE")
	if userProfileDir == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			userProfileDir = home
		}
	}
	if userProfileDir == "" {
		log.Warn("USERPROFILE and UserHomeDir() both failed; using temp dir for data storage")
		return os.TempDir()
	}
	return userProfileDir
}
