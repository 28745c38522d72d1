//go:build darwin

package browsers

// Known returns the browsers recognised on darwin, in display order.
func Known() []Descriptor {
	return darwinBrowsers()
}
