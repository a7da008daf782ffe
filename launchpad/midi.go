package launchpad

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// NoteOn is a decoded note-on message. Velocity 0 means the button was released.
type NoteOn struct {
	Note     byte
	Velocity byte
}

// Decoder reads note-on messages from a raw MIDI byte stream, honouring running
// status and skipping every other message type.
type Decoder struct {
	r      *bufio.Reader
	status byte
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// dataLen returns the number of data bytes that follow a channel status byte
func dataLen(status byte) int {
	switch status & 0xF0 {
	case 0xC0, 0xD0:
		return 1
	default:
		return 2
	}
}

// Next returns the next note-on message
func (d *Decoder) Next() (NoteOn, error) {
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return NoteOn{}, err
		}

		switch {
		case b >= 0xF8:
			// realtime messages may appear anywhere and carry no data
			continue
		case b == 0xF0:
			if _, err := d.r.ReadBytes(0xF7); err != nil {
				return NoteOn{}, errors.Wrap(err, "[Next] unterminated sysex")
			}
			d.status = 0
			continue
		case b >= 0xF0:
			d.status = 0
			continue
		case b >= 0x80:
			d.status = b
			if b, err = d.r.ReadByte(); err != nil {
				return NoteOn{}, unexpected(err)
			}
		case d.status == 0:
			// stray data byte
			continue
		}

		data := [2]byte{b}
		if dataLen(d.status) == 2 {
			if data[1], err = d.r.ReadByte(); err != nil {
				return NoteOn{}, unexpected(err)
			}
		}

		if d.status&0xF0 == statusNoteOn {
			return NoteOn{Note: data[0], Velocity: data[1]}, nil
		}
	}
}

func unexpected(err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return errors.Wrap(err, "[Next] truncated message")
}
