package model

import (
	"bufio"
	"io"
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

const (
	GlyphBlock = "██"
	GlyphEmpty = "  "

	clearCmd = "clear"
)

// Renderer draws one generation
type Renderer interface {
	Render(s *Snapshot) error
}

// TerminalRenderer dumps generations as text, one glyph per cell
type TerminalRenderer struct {
	Out         io.Writer
	Alive       string
	Dead        string
	ClearScreen bool
}

// NewTerminalRenderer renders to stdout with block glyphs, clearing between frames
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{
		Out:         os.Stdout,
		Alive:       GlyphBlock,
		Dead:        GlyphEmpty,
		ClearScreen: true,
	}
}

// Render writes the snapshot to Out
func (r *TerminalRenderer) Render(s *Snapshot) error {
	if r.ClearScreen {
		if err := r.Clear(); err != nil {
			return err
		}
	}

	w := bufio.NewWriter(r.Out)
	if _, err := w.WriteString(s.Format(r.Alive, r.Dead)); err != nil {
		return errors.Wrap(err, "[Render] failed to write frame")
	}
	if err := w.WriteByte('\n'); err != nil {
		return errors.Wrap(err, "[Render] failed to write frame")
	}
	return errors.Wrap(w.Flush(), "[Render] failed to flush frame")
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() error {
	cmd := exec.Command(clearCmd)
	cmd.Stdout = r.Out
	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "[Clear] failed to clear terminal")
	}
	return nil
}
