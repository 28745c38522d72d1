//go:build windows

package browsers

// Known returns the browsers recognised on windows, in display order.
func Known() []Descriptor {
	return windowsBrowsers()
}
