package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCliFlags(t *testing.T) {
	flags := NewCliFlags()

	require.NotNil(t, flags)
	assert.Empty(t, flags.BrowserName)
	assert.False(t, flags.AssumeYes)
	assert.Nil(t, flags.TotpURIs)
}

func TestSweepReport_Totals(t *testing.T) {
	report := SweepReport{Results: []ProfileOutcome{
		{Browser: "Chromium", Profile: "Work", Deleted: 3},
		{Browser: "Chromium", Profile: "Home", Error: "write back failed"},
		{Browser: "Vivaldi", Profile: "Person 1", Skipped: true},
		{Browser: "Vivaldi", Profile: "Person 2", Deleted: 2},
	}}

	assert.Equal(t, int64(5), report.Deleted())
	assert.Equal(t, 1, report.Failed())
}

func TestSweepReport_Empty(t *testing.T) {
	var report SweepReport

	assert.Zero(t, report.Deleted())
	assert.Zero(t, report.Failed())
}

func TestBrowserData_JSONShape(t *testing.T) {
	created := time.Date(2021, 11, 19, 23, 14, 45, 0, time.UTC)
	data := []BrowserData{{
		Browser: "Chromium",
		Profiles: []ProfileData{{
			Profile:   "Work",
			Directory: "Profile 1",
			Credentials: []Credential{{
				URL:        "https://example.com",
				Username:   "alice",
				CreatedAt:  created,
				ModifiedAt: created,
			}},
		}},
	}}

	raw, err := json.Marshal(data)
	require.NoError(t, err)

	assert.JSONEq(t, `[{
		"browser": "Chromium",
		"profiles": [{
			"profileName": "Work",
			"directory": "Profile 1",
			"passwords": [{
				"url": "https://example.com",
				"username": "alice",
				"dateCreated": "2021-11-19T23:14:45Z",
				"dateModified": "2021-11-19T23:14:45Z"
			}]
		}]
	}]`, string(raw))
}
