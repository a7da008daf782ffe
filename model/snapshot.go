package model

import (
	"iter"
	"strings"
)

// Snapshot is an immutable copy of one generation, stored row-major
type Snapshot struct {
	height int
	width  int
	cells  []bool
}

// Height returns the number of rows
func (s *Snapshot) Height() int { return s.height }

// Width returns the number of columns
func (s *Snapshot) Width() int { return s.width }

// Alive reports whether (row, col) was alive; the caller must stay in bounds
func (s *Snapshot) Alive(row, col int) bool {
	return s.cells[row*s.width+col]
}

// Rows yields each row in order. Ranging over it again replays the same generation.
func (s *Snapshot) Rows() iter.Seq2[int, []bool] {
	return func(yield func(int, []bool) bool) {
		for r := range s.height {
			if !yield(r, s.cells[r*s.width:(r+1)*s.width:(r+1)*s.width]) {
				return
			}
		}
	}
}

// Format renders one glyph per cell with rows joined by newlines
func (s *Snapshot) Format(alive, dead string) string {
	var sb strings.Builder
	for r, row := range s.Rows() {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for _, a := range row {
			if a {
				sb.WriteString(alive)
			} else {
				sb.WriteString(dead)
			}
		}
	}
	return sb.String()
}

// String renders the snapshot with 'o' for live cells and spaces for dead ones
func (s *Snapshot) String() string {
	return s.Format("o", " ")
}

func (s *Snapshot) reset(height, width int) {
	s.height = height
	s.width = width
	if cap(s.cells) < height*width {
		s.cells = make([]bool, height*width)
	}
	s.cells = s.cells[:height*width]
}

// Snapshot copies the current generation
func (b *Board) Snapshot() *Snapshot {
	s := &Snapshot{}
	b.SnapshotInto(s)
	return s
}

// SnapshotInto copies the current generation into s, reusing its buffer
func (b *Board) SnapshotInto(s *Snapshot) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s.reset(b.height, b.width)
	for r := range b.height {
		copy(s.cells[r*b.width:], b.alive[r])
	}
}

// Display returns a row-major traversal of the generation current at call time
func (b *Board) Display() iter.Seq[[]bool] {
	snap := b.Snapshot()
	return func(yield func([]bool) bool) {
		for _, row := range snap.Rows() {
			if !yield(row) {
				return
			}
		}
	}
}
