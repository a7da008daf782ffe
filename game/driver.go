// Package game runs a board: one task renders and steps it on a timer while
// another delivers presses from an input source.
package game

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/input"
	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

// Acknowledger is implemented by renderers that can flag a cell set alive from input
type Acknowledger interface {
	Acknowledge(row, col int) error
}

// Options tune a Driver
type Options struct {
	FrameRate time.Duration
	// SpeedStep sets the interval to (row+1)*SpeedStep on a control press
	SpeedStep      time.Duration
	MaxGenerations int
	Pool           *model.SnapshotPool
	// Status receives a line of statistics per generation when set
	Status io.Writer
	Logger log.Logger
}

// Driver owns the loop state around a board
type Driver struct {
	board    *model.Board
	renderer model.Renderer
	source   input.Source

	interval  atomic.Int64
	speedStep time.Duration
	maxGens   int
	pool      *model.SnapshotPool
	status    io.Writer
	logger    log.Logger

	stats      *utils.Stats
	monitor    Monitor
	lastStatus string
}

// NewDriver wires a board to its renderer and an optional input source
func NewDriver(board *model.Board, renderer model.Renderer, source input.Source, opts Options) *Driver {
	if opts.Logger == nil {
		opts.Logger = log.NewNopLogger()
	}
	d := &Driver{
		board:     board,
		renderer:  renderer,
		source:    source,
		speedStep: opts.SpeedStep,
		maxGens:   opts.MaxGenerations,
		pool:      opts.Pool,
		status:    opts.Status,
		logger:    opts.Logger,
		stats:     utils.NewStats(),
	}
	d.SetInterval(opts.FrameRate)
	return d
}

// Interval returns the delay between generations
func (d *Driver) Interval() time.Duration {
	return time.Duration(d.interval.Load())
}

// SetInterval changes the delay between generations; it is safe to call while running
func (d *Driver) SetInterval(interval time.Duration) {
	d.interval.Store(int64(max(interval, 0)))
}

// Stats returns the statistics of the stepper task. Read them once Run has returned.
func (d *Driver) Stats() *utils.Stats {
	return d.stats
}

// Run drives the board until ctx is done, MaxGenerations is reached, or a
// collaborator fails. Interruption leaves the board between two generations.
func (d *Driver) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	inputCtx, stopInput := context.WithCancel(ctx)
	defer stopInput()

	eg.Go(func() error {
		defer stopInput()
		return d.simulate(ctx)
	})
	if d.source != nil {
		eg.Go(func() error {
			return d.deliver(inputCtx)
		})
	}

	return eg.Wait()
}

func (d *Driver) simulate(ctx context.Context) error {
	var (
		timer     = time.NewTimer(0)
		lastFrame = time.Now()
	)
	defer timer.Stop()
	<-timer.C

	for generation := 0; ; generation++ {
		frameStart := time.Now()
		if err := d.render(); err != nil {
			return err
		}
		d.record(generation, frameStart.Sub(lastFrame))
		lastFrame = frameStart

		if d.maxGens > 0 && generation >= d.maxGens {
			level.Info(d.logger).Log("msg", "reached generation limit", "generations", generation)
			return nil
		}

		timer.Reset(d.Interval())
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
		d.board.Step()
	}
}

func (d *Driver) render() error {
	var snap *model.Snapshot
	if d.pool != nil {
		snap = d.pool.Take(d.board)
		defer model.SnapshotToPool(snap, d.pool)
	} else {
		snap = d.board.Snapshot()
	}

	if err := d.renderer.Render(snap); err != nil {
		return errors.Wrap(err, "[render] renderer failed")
	}
	return nil
}

func (d *Driver) record(generation int, frame time.Duration) {
	population := d.board.Population()
	d.stats.Update(generation, population, d.board.Height()*d.board.Width(), frame)
	stagnant := d.monitor.Observe(d.board.Hash())

	status := "Active"
	switch {
	case population == 0:
		status = "Extinct"
	case stagnant:
		status = "Stagnant"
	}
	if status != d.lastStatus {
		level.Info(d.logger).Log("msg", "board status", "status", status, "generation", generation, "population", population)
		d.lastStatus = status
	}

	if d.status != nil {
		fmt.Fprintf(d.status, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s | Interval: %s\n",
			generation, population, d.stats.Density, status, d.Interval())
	}
}

func (d *Driver) deliver(ctx context.Context) error {
	for {
		presses, err := d.source.Poll(ctx)
		if err != nil {
			if err == io.EOF {
				level.Info(d.logger).Log("msg", "input closed")
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "[deliver] input failed")
		}

		for _, p := range presses {
			d.apply(p)
		}
	}
}

// apply sets a pressed cell alive. Presses right of the board are speed
// controls: row r sets the interval to (r+1)*SpeedStep.
func (d *Driver) apply(p input.Press) {
	if p.Row >= 0 && p.Col >= d.board.Width() {
		interval := time.Duration(p.Row+1) * d.speedStep
		d.SetInterval(interval)
		level.Info(d.logger).Log("msg", "interval changed", "interval", interval)
		return
	}

	if err := d.board.SetAlive(p.Row, p.Col); err != nil {
		level.Warn(d.logger).Log("msg", "dropping press", "row", p.Row, "col", p.Col, "err", err)
		return
	}
	level.Debug(d.logger).Log("msg", "cell set alive", "row", p.Row, "col", p.Col)

	if ack, ok := d.renderer.(Acknowledger); ok {
		if err := ack.Acknowledge(p.Row, p.Col); err != nil {
			level.Warn(d.logger).Log("msg", "acknowledge failed", "row", p.Row, "col", p.Col, "err", err)
		}
	}
}
