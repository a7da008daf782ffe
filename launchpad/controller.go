package launchpad

import (
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"
)

// Controller talks to a Launchpad over a raw MIDI stream
type Controller struct {
	mu  sync.Mutex
	rw  io.ReadWriter
	dec *Decoder
}

// NewController wraps an already open MIDI stream
func NewController(rw io.ReadWriter) *Controller {
	return &Controller{rw: rw, dec: NewDecoder(rw)}
}

// Open opens a raw MIDI device such as /dev/snd/midiC1D0
func Open(path string) (*Controller, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "[Open] failed to open MIDI device: %+v", path)
	}
	return NewController(f), nil
}

// Light illuminates the button at (row, col)
func (c *Controller) Light(row, col int, color Color) error {
	return c.write(statusNoteOn, Note(row, col), byte(color))
}

// Unlight turns off the button at (row, col)
func (c *Controller) Unlight(row, col int) error {
	return c.Light(row, col, Off)
}

// Reset turns every light off
func (c *Controller) Reset() error {
	return c.write(statusControlChange, 0, 0)
}

func (c *Controller) write(msg ...byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.rw.Write(msg); err != nil {
		return errors.Wrap(err, "[write] failed to send MIDI message")
	}
	return nil
}

// writeBatch sends several messages in one write
func (c *Controller) writeBatch(msgs []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.rw.Write(msgs); err != nil {
		return errors.Wrap(err, "[writeBatch] failed to send MIDI messages")
	}
	return nil
}

// ReadNote blocks until the next note-on message arrives
func (c *Controller) ReadNote() (NoteOn, error) {
	return c.dec.Next()
}

// Close closes the underlying device if it can be closed
func (c *Controller) Close() error {
	if closer, ok := c.rw.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
