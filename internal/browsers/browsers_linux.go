//go:build linux

package browsers

// Known returns the browsers recognised on linux, in display order.
func Known() []Descriptor {
	return linuxBrowsers()
}
