// Package formatters provides JSON formatting and the status lines printed by the commands.
package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/TylerBrock/colorjson"
	"github.com/fatih/color"

	"github.com/ondrovic/browser-logins/internal/types"
)

// marshalIndent is used by FormatAsJson; tests may override to simulate marshal failure.
var marshalIndent = json.MarshalIndent

// formatterMarshal is used by PrintPrettyJson; tests may override to simulate formatter marshal failure.
var formatterMarshal = func(f *colorjson.Formatter, obj interface{}) ([]byte, error) { return f.Marshal(obj) }

// FormatAsJson returns v as indented JSON.
func FormatAsJson(v interface{}) (string, error) {
	jsonData, err := marshalIndent(v, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}
	return string(jsonData), nil
}

// FormatResultsAsJson formats the enumerate-all result. A nil slice is rendered as [].
func FormatResultsAsJson(results []types.BrowserData) (string, error) {
	if results == nil {
		results = []types.BrowserData{}
	}
	return FormatAsJson(results)
}

// PrintJson prints a given JSON-formatted string to the standard output.
func PrintJson(data string) {
	fmt.Println(data)
}

// PrintPrettyJson takes a JSON string, unmarshals it into an object, and prints
// it with pretty formatting. Alternate key and string colors are used when
// useAltColors is true.
func PrintPrettyJson(data string, useAltColors ...bool) error {
	var obj interface{}

	if err := json.Unmarshal([]byte(data), &obj); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	f := colorjson.NewFormatter()
	f.Indent = 4

	if len(useAltColors) > 0 && useAltColors[0] {
		f.KeyColor = color.New(color.FgHiCyan)
		f.StringColor = color.New(color.FgHiMagenta)
	}

	s, err := formatterMarshal(f, obj)
	if err != nil {
		return fmt.Errorf("failed to marshal formatted JSON: %w", err)
	}

	fmt.Println(string(s))
	return nil
}

// CountCredentials returns how many profiles and credentials the result holds.
func CountCredentials(results []types.BrowserData) (profiles, credentials int) {
	for _, b := range results {
		profiles += len(b.Profiles)
		for _, p := range b.Profiles {
			credentials += len(p.Credentials)
		}
	}
	return profiles, credentials
}

// FormatOutcome renders one line of the bulk-delete report.
func FormatOutcome(o types.ProfileOutcome) string {
	name := o.Browser
	if o.Profile != "" {
		name += " / " + o.Profile
	}
	switch {
	case o.Error != "":
		return fmt.Sprintf("✗ %s: %s", name, o.Error)
	case o.Skipped:
		return fmt.Sprintf("○ %s: no saved logins", name)
	case o.Deleted == 1:
		return fmt.Sprintf("✓ %s: deleted 1 login", name)
	default:
		return fmt.Sprintf("✓ %s: deleted %d logins", name, o.Deleted)
	}
}

// FormatCookieStore renders one line of the detect report.
func FormatCookieStore(info types.CookieStoreInfo) string {
	var b strings.Builder
	if info.HasLoginData {
		b.WriteString("✓ ")
	} else {
		b.WriteString("○ ")
	}
	b.WriteString(info.Browser)
	if info.Profile != "" {
		fmt.Fprintf(&b, " / %s", info.Profile)
	}
	if info.IsDefault {
		b.WriteString(" (default)")
	}
	fmt.Fprintf(&b, ": %s", info.CookiePath)
	if info.HasLoginData {
		fmt.Fprintf(&b, " [logins: %s]", info.LoginDataPath)
	}
	return b.String()
}
