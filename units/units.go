// Package units converts between page millimeters and device pixels.
package units

// PxPerMm is the fixed conversion ratio: 144 device pixels per inch over 25.4 mm per inch.
const PxPerMm = 144.0 / 25.4

// MmToPx converts millimeters to device pixels.
func MmToPx(mm float64) float64 {
	return mm * PxPerMm
}

// PxToMm converts device pixels to millimeters.
func PxToMm(px float64) float64 {
	return px / PxPerMm
}
