package cli

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/ondrovic/browser-logins/internal/browsers"
	"github.com/ondrovic/browser-logins/internal/snapshot"
	"github.com/ondrovic/browser-logins/internal/types"
	"github.com/ondrovic/browser-logins/internal/utils/spinners"
)

func TestDeleteCmd_FlagsRequired(t *testing.T) {
	for _, name := range []string{"browser", "profile", "url", "username"} {
		f := deleteCmd.Flags().Lookup(name)
		if assert.NotNil(t, f, name) {
			assert.Equal(t, []string{"true"}, f.Annotations[cobra.BashCompOneRequiredFlag], name)
		}
	}
}

func TestDeleteLogin_PassesTarget(t *testing.T) {
	stubSpinners(t)
	m := new(mockManager)
	want := types.DeletionTarget{Browser: "Google Chrome", Profile: "Person 1", URL: "https://example.com/", Username: "alice"}
	m.On("Delete", want).Return(nil)

	err := deleteLogin(types.CliFlags{BrowserName: "Google Chrome", ProfileName: "Person 1", URL: "https://example.com/", Username: "alice"}, m)

	assert.NoError(t, err)
	m.AssertExpectations(t)
}

func TestDeleteLogin_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"unknown browser", browsers.ErrBrowserNotFound},
		{"store locked", snapshot.ErrWriteBackFailed},
		{"store missing", snapshot.ErrCredentialFileMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failed := false
			old := createSpinner
			createSpinner = func(_, _, _, _, _ string) spinners.Spinner { return mockSpinner{failed: &failed} }
			t.Cleanup(func() { createSpinner = old })

			m := new(mockManager)
			m.On("Delete", types.DeletionTarget{Browser: "Vivaldi", Profile: "Person 1"}).Return(tt.err)

			err := deleteLogin(types.CliFlags{BrowserName: "Vivaldi", ProfileName: "Person 1"}, m)

			assert.ErrorIs(t, err, tt.err)
			assert.True(t, failed, "spinner stops with a failure")
		})
	}
}

func TestDeleteLogin_QuietReturnsErrorUnchanged(t *testing.T) {
	spinnerCount := stubSpinners(t)
	boom := errors.New("profile not found")
	m := new(mockManager)
	m.On("Delete", types.DeletionTarget{}).Return(boom)

	err := deleteLogin(types.CliFlags{Quiet: true}, m)

	assert.Equal(t, boom, err)
	assert.Zero(t, *spinnerCount)
}
