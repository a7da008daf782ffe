package model

import (
	"crypto/md5"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/rules"
)

// DefaultDensity is the probability that a cell starts alive
const DefaultDensity = 0.1

var (
	// ErrInvalidDimensions is returned when a board is built with a non-positive height or width
	ErrInvalidDimensions = errors.New("board dimensions must be positive")
	// ErrOutOfBounds is returned when a cell is addressed outside the board
	ErrOutOfBounds = errors.New("cell out of bounds")
)

// Board is a toroidal Game of Life board addressed by (row, col).
//
// All methods are safe for concurrent use. Step holds the write lock across
// both of its passes, so readers only ever see whole generations. A SetAlive
// that takes the lock before a Step is counted by that Step; one that arrives
// while a Step is running waits for it and is counted by the following Step.
type Board struct {
	mu sync.RWMutex

	height int
	width  int
	alive  [][]bool
	// counts is scratch space for the neighbour pass of Step
	counts   [][]uint8
	parallel bool
}

type boardOptions struct {
	density  float64
	rng      *rand.Rand
	parallel bool
}

// Option configures a Board at construction
type Option func(*boardOptions)

// WithDensity sets the probability that each cell starts alive
func WithDensity(density float64) Option {
	return func(o *boardOptions) { o.density = density }
}

// WithRand sets the random source used to seed the initial generation
func WithRand(rng *rand.Rand) Option {
	return func(o *boardOptions) { o.rng = rng }
}

// WithParallel splits the neighbour pass of Step across row bands
func WithParallel(parallel bool) Option {
	return func(o *boardOptions) { o.parallel = parallel }
}

// New creates a height x width board with randomly seeded cells
func New(height, width int, opts ...Option) (*Board, error) {
	if height <= 0 || width <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[New] got %dx%d", height, width)
	}

	o := boardOptions{density: DefaultDensity}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	b := &Board{
		height:   height,
		width:    width,
		alive:    make([][]bool, height),
		counts:   make([][]uint8, height),
		parallel: o.parallel,
	}
	for r := range height {
		b.alive[r] = make([]bool, width)
		b.counts[r] = make([]uint8, width)
		for c := range width {
			b.alive[r][c] = o.rng.Float64() < o.density
		}
	}
	return b, nil
}

// Height returns the number of rows
func (b *Board) Height() int { return b.height }

// Width returns the number of columns
func (b *Board) Width() int { return b.width }

func (b *Board) checkBounds(op string, row, col int) error {
	if row < 0 || row >= b.height || col < 0 || col >= b.width {
		return errors.Wrapf(ErrOutOfBounds, "[%s] (%d, %d) outside %dx%d board", op, row, col, b.height, b.width)
	}
	return nil
}

// CellAt reports whether the cell at (row, col) is alive
func (b *Board) CellAt(row, col int) (bool, error) {
	if err := b.checkBounds("CellAt", row, col); err != nil {
		return false, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.alive[row][col], nil
}

// SetAlive forces the cell at (row, col) alive without advancing the generation
func (b *Board) SetAlive(row, col int) error {
	if err := b.checkBounds("SetAlive", row, col); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.alive[row][col] = true
	return nil
}

// Step advances the board by one generation
func (b *Board) Step() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.parallel {
		b.countParallel()
	} else {
		b.countRows(0, b.height)
	}

	for r := range b.height {
		for c := range b.width {
			b.alive[r][c] = rules.ApplyConwayRules(int(b.counts[r][c]), b.alive[r][c])
		}
	}
}

// countParallel runs the neighbour pass on one band of rows per CPU
func (b *Board) countParallel() {
	var (
		eg            errgroup.Group
		numWorkers    = runtime.NumCPU()
		rowsPerWorker = (b.height + numWorkers - 1) / numWorkers
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, b.height)
		)
		if startRow >= b.height {
			break
		}

		eg.Go(func() error {
			b.countRows(startRow, endRow)
			return nil
		})
	}

	// workers only write their own rows of counts and cannot fail
	_ = eg.Wait()
}

func (b *Board) countRows(startRow, endRow int) {
	for r := startRow; r < endRow; r++ {
		for c := range b.width {
			b.counts[r][c] = b.countNeighbours(r, c)
		}
	}
}

// countNeighbours counts live cells among the eight wrapped neighbours of (row, col).
// On boards narrower than three cells the same cell may be counted more than once.
func (b *Board) countNeighbours(row, col int) uint8 {
	var count uint8
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if b.alive[wrap(row+dr, b.height)][wrap(col+dc, b.width)] {
				count++
			}
		}
	}
	return count
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// Population returns the number of live cells
func (b *Board) Population() (count int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for r := range b.height {
		for c := range b.width {
			if b.alive[r][c] {
				count++
			}
		}
	}
	return
}

// Hash returns an MD5 digest of the current generation
func (b *Board) Hash() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	h := md5.New()
	for r := range b.height {
		for c := range b.width {
			if b.alive[r][c] {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
