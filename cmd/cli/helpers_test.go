package cli

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ondrovic/browser-logins/internal/browsers"
	"github.com/ondrovic/browser-logins/internal/profiles"
	"github.com/ondrovic/browser-logins/internal/types"
	"github.com/ondrovic/browser-logins/internal/utils/spinners"
)

// mockManager stands in for *credentials.Manager.
type mockManager struct {
	mock.Mock
}

func (m *mockManager) Browsers() []browsers.Descriptor {
	args := m.Called()
	list, _ := args.Get(0).([]browsers.Descriptor)
	return list
}

func (m *mockManager) Enumerate() ([]types.BrowserData, error) {
	args := m.Called()
	data, _ := args.Get(0).([]types.BrowserData)
	return data, args.Error(1)
}

func (m *mockManager) Delete(target types.DeletionTarget) error {
	args := m.Called(target)
	return args.Error(0)
}

func (m *mockManager) DeleteAll() (types.SweepReport, error) {
	args := m.Called()
	report, _ := args.Get(0).(types.SweepReport)
	return report, args.Error(1)
}

func (m *mockManager) Profiles() (map[string][]profiles.Identity, error) {
	args := m.Called()
	all, _ := args.Get(0).(map[string][]profiles.Identity)
	return all, args.Error(1)
}

var testBrowsers = []browsers.Descriptor{
	{Name: "Brave", RelativePath: "BraveSoftware/Brave-Browser/User Data", PerProfileCredentials: true},
	{Name: "Google Chrome", RelativePath: "Google/Chrome/User Data", PerProfileCredentials: true},
}

// mockSpinner records how it was driven.
type mockSpinner struct {
	startErr error
	stopErr  error
	stopped  *bool
	failed   *bool
}

func (m mockSpinner) Start() error { return m.startErr }

func (m mockSpinner) Stop() error {
	if m.stopped != nil {
		*m.stopped = true
	}
	return m.stopErr
}

func (m mockSpinner) StopFail() error {
	if m.failed != nil {
		*m.failed = true
	}
	return m.stopErr
}

func (m mockSpinner) StopFailMessage(string) {}
func (m mockSpinner) StopMessage(string)     {}

// stubSpinners replaces createSpinner and returns how many spinners were created.
func stubSpinners(t *testing.T) *int {
	t.Helper()
	n := 0
	old := createSpinner
	createSpinner = func(_, _, _, _, _ string) spinners.Spinner {
		n++
		return mockSpinner{}
	}
	t.Cleanup(func() { createSpinner = old })
	return &n
}

// capture runs fn with *target (os.Stdout or os.Stderr) redirected to a pipe and returns what
// was written. The pipe is drained concurrently so fn cannot block on a full buffer.
func capture(t *testing.T, target **os.File, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	old := *target
	*target = w
	defer func() { *target = old }()

	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		_, _ = io.Copy(&buf, r)
		close(done)
	}()

	fn()
	w.Close()
	<-done
	r.Close()
	return buf.String()
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	return capture(t, &os.Stdout, fn)
}

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	return capture(t, &os.Stderr, fn)
}
