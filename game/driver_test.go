package game

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/input"
	"github.com/sheikhrachel/go-life/model"
)

type recordingRenderer struct {
	mu     sync.Mutex
	frames []string
	acked  []input.Press
	err    error
}

func (r *recordingRenderer) Render(s *model.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.frames = append(r.frames, s.String())
	return nil
}

func (r *recordingRenderer) Acknowledge(row, col int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.acked = append(r.acked, input.Press{Row: row, Col: col})
	return nil
}

// scriptedSource hands out its batches in order, then blocks until ctx is done
type scriptedSource struct {
	batches [][]input.Press
	eof     bool
}

func (s *scriptedSource) Poll(ctx context.Context) ([]input.Press, error) {
	if len(s.batches) > 0 {
		batch := s.batches[0]
		s.batches = s.batches[1:]
		return batch, nil
	}
	if s.eof {
		return nil, io.EOF
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

func emptyBoard(t *testing.T, height, width int) *model.Board {
	t.Helper()
	b, err := model.New(height, width, model.WithDensity(0))
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestRunStopsAtGenerationLimit(t *testing.T) {
	b := emptyBoard(t, 5, 5)
	for _, c := range []int{1, 2, 3} {
		_ = b.SetAlive(2, c)
	}
	r := &recordingRenderer{}
	var status bytes.Buffer

	d := NewDriver(b, r, &scriptedSource{}, Options{
		FrameRate:      time.Millisecond,
		MaxGenerations: 2,
		Pool:           model.NewSnapshotPool(),
		Status:         &status,
	})
	if err := d.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(r.frames) != 3 {
		t.Fatalf("rendered %d frames, want 3", len(r.frames))
	}
	if r.frames[0] != r.frames[2] || r.frames[0] == r.frames[1] {
		t.Errorf("blinker frames did not oscillate:\n%q", r.frames)
	}
	if d.Stats().TotalGenerations != 2 {
		t.Errorf("stats recorded %d generations", d.Stats().TotalGenerations)
	}
	if !strings.Contains(status.String(), "Gen: 2 | Living: 3") {
		t.Errorf("unexpected status output:\n%s", status.String())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	d := NewDriver(emptyBoard(t, 3, 3), &recordingRenderer{}, &scriptedSource{}, Options{
		FrameRate: time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunReportsRendererFailure(t *testing.T) {
	boom := errors.New("device unplugged")
	d := NewDriver(emptyBoard(t, 3, 3), &recordingRenderer{err: boom}, &scriptedSource{}, Options{
		FrameRate: time.Millisecond,
	})
	if err := d.Run(context.Background()); errors.Cause(err) != boom {
		t.Errorf("got %v, want %v", err, boom)
	}
}

func TestRunKeepsSteppingAfterInputEOF(t *testing.T) {
	r := &recordingRenderer{}
	src := &scriptedSource{batches: [][]input.Press{{{Row: 0, Col: 0}}}, eof: true}
	d := NewDriver(emptyBoard(t, 4, 4), r, src, Options{
		FrameRate:      time.Millisecond,
		MaxGenerations: 3,
	})
	if err := d.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(r.frames) != 4 {
		t.Errorf("rendered %d frames, want 4", len(r.frames))
	}
}

func TestApplySetsCellsAlive(t *testing.T) {
	b := emptyBoard(t, 4, 4)
	r := &recordingRenderer{}
	d := NewDriver(b, r, nil, Options{FrameRate: 50 * time.Millisecond, SpeedStep: 10 * time.Millisecond})

	d.apply(input.Press{Row: 1, Col: 2})
	if alive, _ := b.CellAt(1, 2); !alive {
		t.Error("press did not set the cell alive")
	}
	if len(r.acked) != 1 || r.acked[0] != (input.Press{Row: 1, Col: 2}) {
		t.Errorf("acknowledged %v", r.acked)
	}

	// out of range rows are dropped without touching the board
	d.apply(input.Press{Row: 9, Col: 1})
	if got := b.Population(); got != 1 {
		t.Errorf("population %d after bad press, want 1", got)
	}
	if d.Interval() != 50*time.Millisecond {
		t.Errorf("bad press changed the interval to %s", d.Interval())
	}
}

func TestApplyControlColumnChangesInterval(t *testing.T) {
	b := emptyBoard(t, 8, 8)
	d := NewDriver(b, &recordingRenderer{}, nil, Options{FrameRate: 50 * time.Millisecond, SpeedStep: 10 * time.Millisecond})

	d.apply(input.Press{Row: 0, Col: 8})
	if d.Interval() != 10*time.Millisecond {
		t.Errorf("row 0: interval %s, want 10ms", d.Interval())
	}
	d.apply(input.Press{Row: 7, Col: 8})
	if d.Interval() != 80*time.Millisecond {
		t.Errorf("row 7: interval %s, want 80ms", d.Interval())
	}
	if got := b.Population(); got != 0 {
		t.Errorf("control press changed the board: population %d", got)
	}
}

func TestMonitor(t *testing.T) {
	var m Monitor
	seq := []struct {
		hash string
		want bool
	}{
		{"a", false}, {"b", false}, {"a", true}, {"c", false}, {"c", true},
		{"d", false}, {"e", false}, {"f", false}, {"a", false},
	}
	for i, s := range seq {
		if got := m.Observe(s.hash); got != s.want {
			t.Errorf("step %d (%s): got %v, want %v", i, s.hash, got, s.want)
		}
	}
	if len(m.history) != historySize {
		t.Errorf("history holds %d hashes, want %d", len(m.history), historySize)
	}
}
