// Package launchpad drives a Novation Launchpad as a lighting grid and button input.
//
// Buttons and lights are addressed by MIDI note: row*16 + col. Columns 0-7 form the
// square grid and column 8 holds the round scene buttons down the right edge.
package launchpad

// GridSize is the side of the square button grid
const GridSize = 8

const (
	rowStride = 16

	statusNoteOn        = 0x90
	statusControlChange = 0xB0
)

// Color is a Launchpad velocity code: red and green brightness plus the normal-mode flags
type Color byte

const (
	Off   Color = 0x0C
	Red   Color = 0x0F
	Green Color = 0x3C
	Amber Color = 0x3F
)

// Note returns the MIDI note for the button at (row, col)
func Note(row, col int) byte {
	return byte(row*rowStride + col)
}

// Position returns the (row, col) of the button that sends note
func Position(note byte) (row, col int) {
	return int(note) / rowStride, int(note) % rowStride
}
