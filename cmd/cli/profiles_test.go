package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ondrovic/browser-logins/internal/browsers"
	"github.com/ondrovic/browser-logins/internal/profiles"
	"github.com/ondrovic/browser-logins/internal/types"
)

var sampleProfiles = map[string][]profiles.Identity{
	"Google Chrome": {{DisplayName: "Person 1", Directory: "Default"}, {DisplayName: "Work", Directory: "Profile 1"}},
	"Brave":         {{DisplayName: "Person 1", Directory: "Default"}},
}

func TestListProfiles_Sorted(t *testing.T) {
	m := new(mockManager)
	m.On("Profiles").Return(sampleProfiles, nil)

	out := captureStdout(t, func() {
		require.NoError(t, listProfiles(types.CliFlags{}, m))
	})

	assert.Equal(t, "✓ Brave\n    Person 1 (Default)\n✓ Google Chrome\n    Person 1 (Default)\n    Work (Profile 1)\n", out)
}

func TestListProfiles_BrowserFilter(t *testing.T) {
	m := new(mockManager)
	m.On("Browsers").Return(testBrowsers)
	m.On("Profiles").Return(sampleProfiles, nil)

	out := captureStdout(t, func() {
		require.NoError(t, listProfiles(types.CliFlags{BrowserName: "Brave"}, m))
	})

	assert.Equal(t, "✓ Brave\n    Person 1 (Default)\n", out)
}

func TestListProfiles_FilterNotInstalled(t *testing.T) {
	m := new(mockManager)
	m.On("Browsers").Return(testBrowsers)
	m.On("Profiles").Return(map[string][]profiles.Identity{}, nil)

	out := captureStdout(t, func() {
		require.NoError(t, listProfiles(types.CliFlags{BrowserName: "Google Chrome"}, m))
	})

	assert.Equal(t, "○ Google Chrome: not installed\n", out)
}

func TestListProfiles_UnknownBrowser(t *testing.T) {
	m := new(mockManager)
	m.On("Browsers").Return(testBrowsers)

	err := listProfiles(types.CliFlags{BrowserName: "Netscape"}, m)

	assert.ErrorIs(t, err, browsers.ErrBrowserNotFound)
	m.AssertNotCalled(t, "Profiles")
}

func TestListProfiles_Error(t *testing.T) {
	m := new(mockManager)
	boom := errors.New("Local State: malformed")
	m.On("Profiles").Return(nil, boom)

	assert.ErrorIs(t, listProfiles(types.CliFlags{}, m), boom)
}

func TestListProfiles_QuietPrintsJSON(t *testing.T) {
	m := new(mockManager)
	m.On("Profiles").Return(sampleProfiles, nil)

	out := captureStdout(t, func() {
		require.NoError(t, listProfiles(types.CliFlags{Quiet: true}, m))
	})

	assert.Contains(t, out, `"Brave"`)
	assert.Contains(t, out, `"directory": "Profile 1"`)
}
