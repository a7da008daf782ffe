package utils

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// TerminalColumns returns the width of the terminal attached to stdout
func TerminalColumns() (int, error) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0, errors.New("[TerminalColumns] stdout is not a terminal")
	}
	cols, _, err := term.GetSize(fd)
	if err != nil {
		return 0, errors.Wrap(err, "[TerminalColumns] failed to query terminal size")
	}
	return cols, nil
}

// FitWidth returns how many cells of glyph fit in cols terminal columns
func FitWidth(cols int, glyph string) int {
	glyphCols := max(len([]rune(glyph)), 1)
	return max(cols/glyphCols, 1)
}
