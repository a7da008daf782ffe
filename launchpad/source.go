package launchpad

import (
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/sheikhrachel/go-life/input"
)

// Source turns button presses into input presses. Releases are dropped.
type Source struct {
	*input.Queue
	logger log.Logger
}

// NewSource starts reading button presses from ctrl in the background
func NewSource(ctrl *Controller, logger log.Logger) *Source {
	s := &Source{
		Queue:  input.NewQueue(64),
		logger: logger,
	}
	go s.read(ctrl)
	return s
}

func (s *Source) read(ctrl *Controller) {
	for {
		msg, err := ctrl.ReadNote()
		if err != nil {
			if err != io.EOF {
				level.Error(s.logger).Log("msg", "launchpad read failed", "err", err)
			}
			s.Close(err)
			return
		}
		if msg.Velocity == 0 {
			continue
		}
		row, col := Position(msg.Note)
		level.Debug(s.logger).Log("msg", "button pressed", "note", msg.Note, "row", row, "col", col)
		s.Push(input.Press{Row: row, Col: col})
	}
}
