//go:build !windows && !linux && !darwin

package browsers

// Known falls back to the XDG-style layout used on Linux.
func Known() []Descriptor {
	return linuxBrowsers()
}
