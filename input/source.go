// Package input delivers "set this cell alive" presses from external devices.
package input

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// Press asks for the cell at (Row, Col) to be set alive. Coordinates outside
// the board are passed through untouched so drivers can treat them as controls.
type Press struct {
	Row int
	Col int
}

// Source delivers batches of presses. Poll blocks until at least one press is
// available, the context is done, or the source is exhausted (io.EOF).
type Source interface {
	Poll(ctx context.Context) ([]Press, error)
}

// LineSource reads presses as "row col" lines, e.g. from a terminal
type LineSource struct {
	*Queue
	logger log.Logger
}

// NewLineSource starts reading lines from r in the background
func NewLineSource(r io.Reader, logger log.Logger) *LineSource {
	s := &LineSource{
		Queue:  NewQueue(64),
		logger: logger,
	}
	go s.read(r)
	return s
}

func (s *LineSource) read(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		p, err := ParsePress(line)
		if err != nil {
			level.Warn(s.logger).Log("msg", "ignoring input line", "line", line, "err", err)
			continue
		}
		s.Push(p)
	}
	if err := scanner.Err(); err != nil {
		s.Close(errors.Wrap(err, "[LineSource] failed to read input"))
		return
	}
	s.Close(io.EOF)
}

// ParsePress parses "row col", accepting spaces or a comma between the two
func ParsePress(line string) (Press, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 2 {
		return Press{}, errors.Errorf("[ParsePress] expected \"row col\", got %q", line)
	}
	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return Press{}, errors.Wrapf(err, "[ParsePress] bad row in %q", line)
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return Press{}, errors.Wrapf(err, "[ParsePress] bad col in %q", line)
	}
	return Press{Row: row, Col: col}, nil
}
