package model

import (
	"bytes"
	"testing"
)

func TestSnapshotFormat(t *testing.T) {
	b := newEmptyBoard(t, 2, 3)
	seed(t, b, pos{0, 1}, pos{1, 0}, pos{1, 2})
	snap := b.Snapshot()

	if got, want := snap.String(), " o \no o"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := snap.Format("#", "."), ".#.\n#.#"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}

	// later generations don't leak into an earlier snapshot
	b.Step()
	if !snap.Alive(0, 1) || snap.Alive(0, 0) {
		t.Error("snapshot changed after Step")
	}
}

func TestSnapshotPoolReusesBuffers(t *testing.T) {
	pool := NewSnapshotPool()
	small := newEmptyBoard(t, 2, 2)
	seed(t, small, pos{1, 1})
	large := newEmptyBoard(t, 3, 5)
	seed(t, large, pos{2, 4})

	s := pool.Take(large)
	if s.Height() != 3 || s.Width() != 5 || !s.Alive(2, 4) {
		t.Fatalf("unexpected snapshot %dx%d", s.Height(), s.Width())
	}
	SnapshotToPool(s, pool)

	s = pool.Take(small)
	if s.Height() != 2 || s.Width() != 2 {
		t.Fatalf("unexpected snapshot %dx%d", s.Height(), s.Width())
	}
	if got, want := s.String(), "  \n o"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	SnapshotToPool(s, nil)
}

func TestTerminalRenderer(t *testing.T) {
	b := newEmptyBoard(t, 2, 2)
	seed(t, b, pos{0, 0})

	var buf bytes.Buffer
	r := &TerminalRenderer{Out: &buf, Alive: GlyphBlock, Dead: GlyphEmpty}
	if err := r.Render(b.Snapshot()); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "██  \n    \n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
