package types

import (
	"time"
)

// cli related.
// CliFlags defines the structure for command-line flags shared by the commands, including
// the targeted-delete identity, output options and the confirmation override for bulk deletion.
type CliFlags struct {
	AssumeYes       bool
	BrowserName     string
	ConfigPath      string
	DisplayResults  bool
	OutputDirectory string
	OutputFilename  string
	ProfileName     string
	Quiet           bool
	RetryAttempts   int
	RetryDelay      time.Duration
	SaveResults     bool
	TotpURIs        []string
	URL             string
	Username        string
	Verbose         bool
}

// NewCliFlags initializes and returns a new instance of CliFlags with default values.
func NewCliFlags() *CliFlags {
	return &CliFlags{}
}

// end cli related.

// credential store related.

// Credential is one saved login read from a browser credential store. Only the plaintext
// metadata columns are exposed; the encrypted password value is never read.
type Credential struct {
	URL        string    `json:"url"`
	Username   string    `json:"username"`
	CreatedAt  time.Time `json:"dateCreated"`
	ModifiedAt time.Time `json:"dateModified"`
}

// ProfileData holds the credentials read from a single browser profile. Error is set when the
// profile exists but its store could not be copied or queried.
type ProfileData struct {
	Profile     string       `json:"profileName"`
	Directory   string       `json:"directory"`
	Credentials []Credential `json:"passwords"`
	Error       string       `json:"error,omitempty"`
}

// BrowserData groups the readable profiles of one installed browser. Error is set when the
// browser is installed but its manifest could not be parsed.
type BrowserData struct {
	Browser  string        `json:"browser"`
	Profiles []ProfileData `json:"profiles"`
	Error    string        `json:"error,omitempty"`
}

// DeletionTarget identifies the rows removed by a targeted delete. Every row whose
// (URL, Username) pair matches is removed.
type DeletionTarget struct {
	Browser  string `json:"browser"`
	Profile  string `json:"profile"`
	URL      string `json:"url"`
	Username string `json:"username"`
}

// ProfileOutcome records what a bulk delete did to one profile.
type ProfileOutcome struct {
	Browser string `json:"browser"`
	Profile string `json:"profile"`
	Deleted int64  `json:"deleted"`
	Skipped bool   `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SweepReport is the result of a bulk delete across every browser and profile.
type SweepReport struct {
	Results []ProfileOutcome `json:"results"`
}

// Failed returns the number of profiles whose deletion did not complete.
func (r SweepReport) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Error != "" {
			n++
		}
	}
	return n
}

// Deleted returns the total number of rows removed across all profiles.
func (r SweepReport) Deleted() int64 {
	var n int64
	for _, res := range r.Results {
		n += res.Deleted
	}
	return n
}

// end credential store related.

// cookie store related.

// CookieStoreInfo describes a cookie store found on disk and whether the profile directory
// that holds it also holds a saved-login store.
type CookieStoreInfo struct {
	Browser       string `json:"browser"`
	Profile       string `json:"profile"`
	CookiePath    string `json:"cookiePath"`
	IsDefault     bool   `json:"isDefault"`
	LoginDataPath string `json:"loginDataPath,omitempty"`
	HasLoginData  bool   `json:"hasLoginData"`
}

// end cookie store related.
