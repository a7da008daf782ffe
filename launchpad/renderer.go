package launchpad

import (
	"sync"

	"github.com/sheikhrachel/go-life/model"
)

// Renderer lights live cells and darkens dead ones. Only cells that changed
// since the previous frame, or were acknowledged since, are sent.
type Renderer struct {
	ctrl  *Controller
	Color Color

	mu    sync.Mutex
	shown [GridSize][GridSize]Color
	valid bool
}

func NewRenderer(ctrl *Controller) *Renderer {
	return &Renderer{ctrl: ctrl, Color: Green}
}

// Render sends the snapshot's top-left GridSize x GridSize corner to the device
func (r *Renderer) Render(s *model.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var msgs []byte
	for row := range min(s.Height(), GridSize) {
		for col := range min(s.Width(), GridSize) {
			want := Off
			if s.Alive(row, col) {
				want = r.Color
			}
			if r.valid && r.shown[row][col] == want {
				continue
			}
			r.shown[row][col] = want
			msgs = append(msgs, statusNoteOn, Note(row, col), byte(want))
		}
	}
	r.valid = true

	if len(msgs) == 0 {
		return nil
	}
	return r.ctrl.writeBatch(msgs)
}

// Acknowledge flashes a cell red after it was set alive from the grid
func (r *Renderer) Acknowledge(row, col int) error {
	if row < 0 || row >= GridSize || col < 0 || col >= GridSize {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shown[row][col] = Red
	return r.ctrl.Light(row, col, Red)
}
