package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI color code.
type Color uint8

// Predefined colors for rendered elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorBrightWhite
	ColorBrightYellow
	ColorGray
)
