// Package browsers holds the registry of Chromium-family browsers whose saved logins can be
// managed, and resolves each one to its install directory on the current machine.
package browsers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrBrowserNotFound is returned when a requested browser name is not in the registry.
	ErrBrowserNotFound = errors.New("browser not found")
	// ErrEnvironmentUnavailable is returned when the environment variable that supplies a
	// browser's root directory is unset or empty.
	ErrEnvironmentUnavailable = errors.New("environment variable unavailable")
)

// CredentialFile is the name of the saved-login store inside a profile (or install) directory.
const CredentialFile = "Login Data"

// RootKind names the environment-supplied directory a browser is installed under.
type RootKind int

const (
	LocalAppData RootKind = iota
	RoamingAppData
	Home
)

// EnvVar returns the environment variable that supplies this root directory.
func (k RootKind) EnvVar() string {
	switch k {
	case LocalAppData:
		return "LOCALAPPDATA"
	case RoamingAppData:
		return "APPDATA"
	default:
		return "HOME"
	}
}

func (k RootKind) String() string {
	switch k {
	case LocalAppData:
		return "LocalAppData"
	case RoamingAppData:
		return "RoamingAppData"
	default:
		return "Home"
	}
}

// Descriptor is a static description of a browser product.
//
// PerProfileCredentials is false for products that keep a single Login Data file directly under
// the install directory instead of one per profile directory. That is a fact of the product and
// cannot be derived from the directory layout.
type Descriptor struct {
	Name                  string
	RelativePath          string // slash separated, relative to the root directory
	RootKind              RootKind
	PerProfileCredentials bool
}

// LookupEnv matches os.LookupEnv; tests pass their own.
type LookupEnv func(key string) (string, bool)

// Root is a descriptor combined with the install directory resolved from the environment.
type Root struct {
	Descriptor  Descriptor
	InstallPath string
}

// Find returns the descriptor with the given name.
func Find(list []Descriptor, name string) (Descriptor, error) {
	for _, d := range list {
		if d.Name == name {
			return d, nil
		}
	}
	return Descriptor{}, fmt.Errorf("%w: %s", ErrBrowserNotFound, name)
}

// Resolve joins the descriptor's relative path onto the root directory read from the
// environment. A nil lookup uses os.LookupEnv.
func Resolve(d Descriptor, lookup LookupEnv) (Root, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	key := d.RootKind.EnvVar()
	base, ok := lookup(key)
	if !ok || base == "" {
		return Root{}, fmt.Errorf("%w: %s (needed by %s)", ErrEnvironmentUnavailable, key, d.Name)
	}
	return Root{
		Descriptor:  d,
		InstallPath: filepath.Join(base, filepath.FromSlash(d.RelativePath)),
	}, nil
}

// Installed reports whether the install directory exists.
func (r Root) Installed() bool {
	info, err := os.Stat(r.InstallPath)
	return err == nil && info.IsDir()
}

// CredentialPath returns the Login Data path for the given profile directory.
func (r Root) CredentialPath(profileDir string) string {
	if !r.Descriptor.PerProfileCredentials {
		return filepath.Join(r.InstallPath, CredentialFile)
	}
	return filepath.Join(r.InstallPath, profileDir, CredentialFile)
}

// Names returns the registry names in order.
func Names(list []Descriptor) []string {
	names := make([]string, 0, len(list))
	for _, d := range list {
		names = append(names, d.Name)
	}
	return names
}

func windowsBrowsers() []Descriptor {
	return []Descriptor{
		{Name: "Brave Browser", RelativePath: "BraveSoftware/Brave-Browser/User Data", RootKind: LocalAppData, PerProfileCredentials: true},
		{Name: "Chromium", RelativePath: "Chromium/User Data", RootKind: LocalAppData, PerProfileCredentials: true},
		{Name: "Google Chrome", RelativePath: "Google/Chrome/User Data", RootKind: LocalAppData, PerProfileCredentials: true},
		{Name: "Microsoft Edge", RelativePath: "Microsoft/Edge/User Data", RootKind: LocalAppData, PerProfileCredentials: true},
		{Name: "Opera", RelativePath: "Opera Software/Opera Stable", RootKind: RoamingAppData, PerProfileCredentials: true},
		{Name: "Opera GX", RelativePath: "Opera Software/Opera GX Stable", RootKind: RoamingAppData, PerProfileCredentials: false},
		{Name: "Vivaldi", RelativePath: "Vivaldi/User Data", RootKind: LocalAppData, PerProfileCredentials: true},
	}
}

func linuxBrowsers() []Descriptor {
	return []Descriptor{
		{Name: "Chromium", RelativePath: ".config/chromium", RootKind: Home, PerProfileCredentials: true},
	}
}

func darwinBrowsers() []Descriptor {
	return []Descriptor{
		{Name: "Chromium", RelativePath: "Library/Application Support/Chromium", RootKind: Home, PerProfileCredentials: true},
	}
}
