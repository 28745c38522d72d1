// Package profiles reads a browser's Local State manifest and maps profile display names to the
// directory names the browser uses on disk.
//
// Manifests are read fresh on every call. The browser rewrites Local State whenever it likes, so
// nothing here is cached between calls.
package profiles

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ondrovic/browser-logins/internal/browsers"
)

// ManifestFile is the manifest filename directly under a browser's install directory.
const ManifestFile = "Local State"

var (
	// ErrManifestNotFound means the install directory or its manifest does not exist, which is
	// the normal state of a browser that is not installed.
	ErrManifestNotFound = errors.New("manifest not found")
	// ErrManifestMalformed means the manifest exists but is not the expected JSON structure.
	ErrManifestMalformed = errors.New("manifest malformed")
	// ErrProfileNotFound means no manifest entry carries the requested display name.
	ErrProfileNotFound = errors.New("profile not found")
)

// Identity pairs a profile's display name with its on-disk directory name.
type Identity struct {
	DisplayName string `json:"name"`
	Directory   string `json:"directory"`
}

// Manifest is the read-only view of the profile section of Local State.
type Manifest struct {
	Path string
	// Entries follow the document order of profile.info_cache.
	Entries []Identity
	// Order is profile.profiles_order as written by the browser, if present.
	Order []string
}

type localState struct {
	Profile *struct {
		InfoCache     json.RawMessage `json:"info_cache"`
		ProfilesOrder json.RawMessage `json:"profiles_order"`
	} `json:"profile"`
}

// Load reads and parses the manifest of an installed browser.
func Load(root browsers.Root) (*Manifest, error) {
	if !root.Installed() {
		return nil, fmt.Errorf("%w: browser directory %s does not exist", ErrManifestNotFound, root.InstallPath)
	}

	path := filepath.Join(root.InstallPath, ManifestFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrManifestMalformed, path, err)
	}
	m.Path = path
	return m, nil
}

// Parse decodes a Local State document. A document with no profile section yields an empty
// manifest; entries whose name is not a string are skipped.
func Parse(data []byte) (*Manifest, error) {
	var state localState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}

	m := &Manifest{}
	if state.Profile == nil {
		return m, nil
	}

	entries, err := decodeInfoCache(state.Profile.InfoCache)
	if err != nil {
		return nil, err
	}
	m.Entries = entries

	// profiles_order is advisory; a bad value leaves Order empty.
	if len(state.Profile.ProfilesOrder) > 0 {
		var order []string
		if json.Unmarshal(state.Profile.ProfilesOrder, &order) == nil {
			m.Order = order
		}
	}
	return m, nil
}

// decodeInfoCache walks the info_cache object token by token so entry order matches the document.
func decodeInfoCache(raw json.RawMessage) ([]Identity, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("profile.info_cache is not an object")
	}

	var entries []Identity
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		dir, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in profile.info_cache", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		var info map[string]json.RawMessage
		if json.Unmarshal(value, &info) != nil {
			continue
		}
		var name string
		if json.Unmarshal(info["name"], &name) != nil {
			continue
		}
		entries = append(entries, Identity{DisplayName: name, Directory: dir})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return entries, nil
}

// TrimQuotes strips surrounding double quotes; callers sometimes pass a JSON-quoted name.
func TrimQuotes(name string) string {
	return strings.Trim(name, `"`)
}

// Find returns the first entry whose display name equals the (unquoted) name.
func (m *Manifest) Find(displayName string) (Identity, error) {
	target := TrimQuotes(displayName)
	for _, e := range m.Entries {
		if e.DisplayName == target {
			return e, nil
		}
	}
	return Identity{}, fmt.Errorf("%w: %q", ErrProfileNotFound, target)
}

// All returns every profile in document order.
func (m *Manifest) All() []Identity {
	out := make([]Identity, len(m.Entries))
	copy(out, m.Entries)
	return out
}

// Ordered returns profiles in the browser's own profiles_order, followed by any entries the
// order list does not mention.
func (m *Manifest) Ordered() []Identity {
	byDir := make(map[string]Identity, len(m.Entries))
	for _, e := range m.Entries {
		if _, ok := byDir[e.Directory]; !ok {
			byDir[e.Directory] = e
		}
	}

	out := make([]Identity, 0, len(m.Entries))
	used := make(map[string]bool, len(m.Entries))
	for _, dir := range m.Order {
		if e, ok := byDir[dir]; ok && !used[dir] {
			out = append(out, e)
			used[dir] = true
		}
	}
	for _, e := range m.Entries {
		if !used[e.Directory] {
			out = append(out, e)
			used[e.Directory] = true
		}
	}
	return out
}
