// Package ui holds the pieces shared by every panel: the embedded Base
// model and the layout constants the panels size themselves with.
package ui

const (
	// ScrollMargin keeps this many rows visible around the cursor when a
	// list scrolls.
	ScrollMargin = 5

	// BorderHeight is the vertical space a panel border takes.
	BorderHeight = 2

	// HeaderHeight covers a panel title plus its separator line.
	HeaderHeight = 2

	// PanelOverhead is what a bordered, titled panel subtracts from its
	// height before listing content.
	PanelOverhead = BorderHeight + HeaderHeight
)
