// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package psp8

import "fmt"

// Field widths of the PSP8 layout. Readers parse the per-point blocks by
// column, so these are fixed.
const (
	indexWidth  = 6
	valueWidth  = 21
	valueDigits = 13
	markerWidth = 4
	// markerPad separates a channel marker from its first coefficient.
	markerPad = 23
)

// Sci renders a per-point magnitude: normalized scientific notation, 13
// fractional digits, right-justified in 21 columns.
func Sci(x float64) string {
	return fmt.Sprintf("%*.*E", valueWidth, valueDigits, x)
}

// Index renders a 1-based grid index right-justified in 6 columns.
func Index(i int) string {
	return fmt.Sprintf("%*d", indexWidth, i)
}

// Marker renders a channel number right-justified in 4 columns.
func Marker(l int) string {
	return fmt.Sprintf("%*d", markerWidth, l)
}

// Fixed4 renders a header mass or charge with 4 decimal places.
func Fixed4(x float64) string {
	return fmt.Sprintf("%.4f", x)
}

// Fixed8 renders a header radius or flag with 8 decimal places.
func Fixed8(x float64) string {
	return fmt.Sprintf("%.8f", x)
}

// Radius renders a core radius in the first header line.
func Radius(x float64) string {
	return fmt.Sprintf("%.5f", x)
}
