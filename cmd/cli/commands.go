package cli

import (
	"github.com/ondrovic/browser-logins/internal/browsers"
	"github.com/ondrovic/browser-logins/internal/profiles"
	"github.com/ondrovic/browser-logins/internal/types"
	"github.com/ondrovic/browser-logins/internal/utils/spinners"
)

// credentialManager is the subset of *credentials.Manager the commands use; tests may inject a mock.
type credentialManager interface {
	Browsers() []browsers.Descriptor
	Enumerate() ([]types.BrowserData, error)
	Delete(target types.DeletionTarget) error
	DeleteAll() (types.SweepReport, error)
	Profiles() (map[string][]profiles.Identity, error)
}

// createSpinner creates a spinner; tests may override to observe or fake it.
var createSpinner = func(start, stopCh, stopMsg, failCh, failMsg string) spinners.Spinner {
	if s := spinners.CreateSpinner(start, stopCh, stopMsg, failCh, failMsg); s != nil {
		return s
	}
	return nil
}

// withSpinner runs task behind a spinner, or bare when quiet.
func withSpinner(quiet bool, start, stopMsg, failMsg string, task func() error) error {
	if quiet {
		return task()
	}
	return spinners.Run(createSpinner(start, "✓", stopMsg, "✗", failMsg), task)
}
