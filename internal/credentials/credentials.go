// Package credentials drives the registry, profile resolver, snapshot accessor and login
// database to enumerate and delete saved logins across every installed browser.
//
// Everything runs sequentially on the caller's goroutine. Two calls that snapshot and commit the
// same Login Data file at once will race; callers are expected to run one command at a time.
package credentials

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/ondrovic/browser-logins/internal/browsers"
	"github.com/ondrovic/browser-logins/internal/logindb"
	"github.com/ondrovic/browser-logins/internal/profiles"
	"github.com/ondrovic/browser-logins/internal/snapshot"
	"github.com/ondrovic/browser-logins/internal/types"
	"github.com/ondrovic/browser-logins/internal/utils/logging"
	"github.com/ondrovic/browser-logins/internal/utils/retry"
)

// copyBack commits a snapshot over its original; tests replace it to simulate a locked store.
var copyBack = (*snapshot.Snapshot).Commit

// Manager runs the enumerate and delete operations.
type Manager struct {
	browsers  []browsers.Descriptor
	lookupEnv browsers.LookupEnv
	retry     retry.Policy
	logger    *log.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithBrowsers replaces the registry (defaults to browsers.Known()).
func WithBrowsers(list []browsers.Descriptor) Option {
	return func(m *Manager) { m.browsers = list }
}

// WithLookupEnv replaces os.LookupEnv.
func WithLookupEnv(lookup browsers.LookupEnv) Option {
	return func(m *Manager) { m.lookupEnv = lookup }
}

// WithRetry sets the write-back retry policy.
func WithRetry(p retry.Policy) Option {
	return func(m *Manager) { m.retry = p }
}

// WithLogger sets the logger; without one nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// New returns a Manager over the browsers known on this OS.
func New(opts ...Option) *Manager {
	m := &Manager{
		browsers: browsers.Known(),
		retry:    retry.Default,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Browsers returns the registry the manager works over.
func (m *Manager) Browsers() []browsers.Descriptor {
	return m.browsers
}

// installedManifest resolves a browser and loads its manifest. A browser that is not installed
// returns profiles.ErrManifestNotFound.
func (m *Manager) installedManifest(d browsers.Descriptor) (browsers.Root, *profiles.Manifest, error) {
	root, err := browsers.Resolve(d, m.lookupEnv)
	if err != nil {
		return browsers.Root{}, nil, err
	}
	manifest, err := profiles.Load(root)
	if err != nil {
		return root, nil, err
	}
	return root, manifest, nil
}

// Profiles lists the profiles of every installed browser in the browser's own order. It backs
// the profiles command; browsers that are not installed are left out.
func (m *Manager) Profiles() (map[string][]profiles.Identity, error) {
	out := make(map[string][]profiles.Identity)
	for _, d := range m.browsers {
		_, manifest, err := m.installedManifest(d)
		switch {
		case errors.Is(err, browsers.ErrEnvironmentUnavailable):
			return nil, err
		case errors.Is(err, profiles.ErrManifestNotFound):
			continue
		case err != nil:
			return nil, fmt.Errorf("%s: %w", d.Name, err)
		}
		out[d.Name] = manifest.Ordered()
	}
	return out, nil
}

// Enumerate reads every saved login of every profile of every installed browser. Browsers that
// are not installed and profiles without a Login Data file are skipped. A browser whose manifest
// cannot be parsed, or a profile whose store cannot be read, is reported with its Error set.
func (m *Manager) Enumerate() ([]types.BrowserData, error) {
	results := []types.BrowserData{}

	for _, d := range m.browsers {
		root, manifest, err := m.installedManifest(d)
		if errors.Is(err, browsers.ErrEnvironmentUnavailable) {
			return nil, err
		}
		if errors.Is(err, profiles.ErrManifestNotFound) {
			m.logger.Debug("browser not installed", "browser", d.Name)
			continue
		}
		if err != nil {
			m.logger.Warn("skipping browser", "browser", d.Name, "err", err)
			results = append(results, types.BrowserData{Browser: d.Name, Profiles: []types.ProfileData{}, Error: err.Error()})
			continue
		}

		data := types.BrowserData{Browser: d.Name, Profiles: []types.ProfileData{}}
		for _, id := range manifest.All() {
			profile, ok := m.readProfile(root, id)
			if ok {
				data.Profiles = append(data.Profiles, profile)
			}
		}
		results = append(results, data)
	}

	return results, nil
}

// readProfile snapshots and reads one profile's store; ok is false when the profile has no store.
func (m *Manager) readProfile(root browsers.Root, id profiles.Identity) (types.ProfileData, bool) {
	profile := types.ProfileData{Profile: id.DisplayName, Directory: id.Directory, Credentials: []types.Credential{}}
	path := root.CredentialPath(id.Directory)

	err := snapshot.With(path, func(s *snapshot.Snapshot) error {
		creds, err := logindb.ReadAll(s.Path)
		if err != nil {
			return err
		}
		profile.Credentials = creds
		return nil
	})
	if errors.Is(err, snapshot.ErrCredentialFileMissing) {
		m.logger.Debug("no credential store", "browser", root.Descriptor.Name, "profile", id.DisplayName)
		return profile, false
	}
	if err != nil {
		m.logger.Warn("unreadable credential store", "browser", root.Descriptor.Name, "profile", id.DisplayName, "err", err)
		profile.Error = err.Error()
	}
	return profile, true
}

// Delete removes every row matching target's URL and username from the named profile and writes
// the store back. Every failure is returned, including a write-back that never succeeded.
func (m *Manager) Delete(target types.DeletionTarget) error {
	d, err := browsers.Find(m.browsers, target.Browser)
	if err != nil {
		return err
	}

	root, manifest, err := m.installedManifest(d)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", d.Name, err)
	}

	id, err := manifest.Find(target.Profile)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", d.Name, err)
	}

	deleted, err := m.mutate(root, id, func(path string) (int64, error) {
		return logindb.DeleteMatching(path, target.URL, target.Username)
	})
	if err != nil {
		return fmt.Errorf("delete from %s profile %q: %w", d.Name, id.DisplayName, err)
	}

	if deleted == 0 {
		m.logger.Info("no rows deleted", "browser", d.Name, "profile", id.DisplayName, "url", target.URL, "username", target.Username)
	} else {
		m.logger.Info("deleted rows", "count", deleted, "browser", d.Name, "profile", id.DisplayName, "url", target.URL, "username", target.Username)
	}
	return nil
}

// mutate snapshots the profile's store, applies change to the snapshot and always commits it
// back, even when nothing changed. The snapshot is removed before returning.
func (m *Manager) mutate(root browsers.Root, id profiles.Identity, change func(path string) (int64, error)) (int64, error) {
	path := root.CredentialPath(id.Directory)

	var deleted int64
	err := snapshot.With(path, func(s *snapshot.Snapshot) error {
		n, err := change(s.Path)
		if err != nil {
			return err
		}
		deleted = n
		return copyBack(s, path, m.retry, func(attempt int, err error) {
			m.logger.Warn("retrying write back", "path", path, "attempt", attempt, "of", m.retry.Normalize().Attempts, "err", err)
		})
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// DeleteAll removes every saved login from every profile of every installed browser. Each
// profile is handled on its own: a failure is logged and recorded in the report and the sweep
// moves on. Only a missing environment variable stops the sweep.
func (m *Manager) DeleteAll() (types.SweepReport, error) {
	report := types.SweepReport{Results: []types.ProfileOutcome{}}
	m.logger.Info("starting password deletion for all profiles")

	for _, d := range m.browsers {
		root, manifest, err := m.installedManifest(d)
		if errors.Is(err, browsers.ErrEnvironmentUnavailable) {
			return report, err
		}
		if errors.Is(err, profiles.ErrManifestNotFound) {
			continue
		}
		if err != nil {
			m.logger.Error("skipping browser", "browser", d.Name, "err", err)
			report.Results = append(report.Results, types.ProfileOutcome{Browser: d.Name, Error: err.Error()})
			continue
		}

		for _, id := range manifest.All() {
			outcome := m.purgeProfile(root, id)
			switch {
			case outcome.Error != "":
				m.logger.Error("failed to delete passwords", "browser", d.Name, "profile", id.DisplayName, "err", outcome.Error)
			case outcome.Skipped:
				m.logger.Debug("no credential store", "browser", d.Name, "profile", id.DisplayName)
			default:
				m.logger.Info("deleted passwords", "browser", d.Name, "profile", id.DisplayName, "count", outcome.Deleted)
			}
			report.Results = append(report.Results, outcome)
		}
	}

	m.logger.Info("finished password deletion for all profiles", "deleted", report.Deleted(), "failed", report.Failed())
	return report, nil
}

// purgeProfile runs the targeted delete for every (url, username) pair the profile's store holds,
// inside a single snapshot and commit.
func (m *Manager) purgeProfile(root browsers.Root, id profiles.Identity) types.ProfileOutcome {
	outcome := types.ProfileOutcome{Browser: root.Descriptor.Name, Profile: id.DisplayName}

	deleted, err := m.mutate(root, id, func(path string) (int64, error) {
		creds, err := logindb.ReadAll(path)
		if err != nil {
			return 0, err
		}
		type pair struct{ url, username string }
		seen := make(map[pair]bool, len(creds))
		var total int64
		for _, c := range creds {
			key := pair{c.URL, c.Username}
			if seen[key] {
				continue
			}
			seen[key] = true
			n, err := logindb.DeleteMatching(path, c.URL, c.Username)
			if err != nil {
				return total, err
			}
			total += n
		}
		return total, nil
	})

	switch {
	case errors.Is(err, snapshot.ErrCredentialFileMissing):
		outcome.Skipped = true
	case err != nil:
		outcome.Error = err.Error()
	default:
		outcome.Deleted = deleted
	}
	return outcome
}
