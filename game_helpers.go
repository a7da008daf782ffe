package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/sheikhrachel/go-life/game"
	"github.com/sheikhrachel/go-life/input"
	"github.com/sheikhrachel/go-life/launchpad"
	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

func flags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{Name: "config, c", Value: "config.json", Usage: "JSON configuration file, skipped when missing"},
		cli.BoolFlag{Name: "launchpad", Usage: "start from the 8x8 Launchpad defaults"},
		cli.IntFlag{Name: "width", Usage: "board width, 0 to fill the terminal"},
		cli.IntFlag{Name: "height", Usage: "board height"},
		cli.DurationFlag{Name: "interval", Usage: "delay between generations"},
		cli.IntFlag{Name: "generations", Usage: "stop after this many generations, 0 to run until interrupted"},
		cli.Float64Flag{Name: "density", Usage: "probability that a cell starts alive"},
		cli.Int64Flag{Name: "seed", Usage: "random seed, 0 for the current time"},
		cli.StringFlag{Name: "renderer", Usage: "terminal or launchpad"},
		cli.StringFlag{Name: "input", Usage: "none, terminal or launchpad"},
		cli.StringFlag{Name: "device", Usage: "raw MIDI device of the Launchpad"},
		cli.BoolFlag{Name: "parallel", Usage: "count neighbours on all CPUs"},
		cli.StringFlag{Name: "log-level", Usage: "debug, info, warn, error or none"},
	}
}

// loadConfig layers defaults, the config file and command line flags
func loadConfig(c *cli.Context) (utils.Config, error) {
	config := utils.DefaultConfig()
	if c.Bool("launchpad") {
		config = utils.LaunchpadConfig()
	}

	if path := c.String("config"); path != "" {
		if _, err := os.Stat(path); err == nil {
			if config, err = utils.LoadConfigOver(config, path); err != nil {
				return config, err
			}
		}
	}

	if c.IsSet("width") {
		config.Width = c.Int("width")
	}
	if c.IsSet("height") {
		config.Height = c.Int("height")
	}
	if c.IsSet("interval") {
		config.FrameRate = c.Duration("interval")
	}
	if c.IsSet("generations") {
		config.MaxGenerations = c.Int("generations")
	}
	if c.IsSet("density") {
		config.RandomDensity = c.Float64("density")
	}
	if c.IsSet("seed") {
		config.Seed = c.Int64("seed")
	}
	if c.IsSet("renderer") {
		config.Renderer = c.String("renderer")
	}
	if c.IsSet("input") {
		config.Input = c.String("input")
	}
	if c.IsSet("device") {
		config.Device = c.String("device")
	}
	if c.IsSet("parallel") {
		config.UseParallel = c.Bool("parallel")
	}
	if c.IsSet("log-level") {
		config.LogLevel = c.String("log-level")
	}

	return config, config.Validate()
}

func run(c *cli.Context) error {
	config, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := utils.NewLogger(os.Stderr, config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	driver, cleanup, err := initializeGame(config, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	displayGameInfo(config, logger)
	err = driver.Run(ctx)
	displayFinalStats(driver.Stats(), logger)
	return err
}

// initializeGame builds the board and its collaborators from the configuration
func initializeGame(config utils.Config, logger log.Logger) (*game.Driver, func(), error) {
	cleanup := func() {}

	if config.Width == 0 {
		cols, err := utils.TerminalColumns()
		if err != nil {
			return nil, cleanup, errors.Wrap(err, "[initializeGame] set a width when not running in a terminal")
		}
		config.Width = utils.FitWidth(cols, config.AliveGlyph)
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	board, err := model.New(config.Height, config.Width,
		model.WithDensity(config.RandomDensity),
		model.WithRand(rand.New(rand.NewSource(seed))),
		model.WithParallel(config.UseParallel),
	)
	if err != nil {
		return nil, cleanup, err
	}

	var ctrl *launchpad.Controller
	if config.Renderer == utils.RendererLaunchpad || config.Input == utils.InputLaunchpad {
		if ctrl, err = launchpad.Open(config.Device); err != nil {
			return nil, cleanup, err
		}
		cleanup = func() {
			if err := ctrl.Reset(); err != nil {
				level.Warn(logger).Log("msg", "failed to reset launchpad", "err", err)
			}
			_ = ctrl.Close()
		}
	}

	var (
		renderer model.Renderer
		status   io.Writer
	)
	switch config.Renderer {
	case utils.RendererLaunchpad:
		renderer = launchpad.NewRenderer(ctrl)
	default:
		terminal := model.NewTerminalRenderer()
		terminal.Alive, terminal.Dead = config.AliveGlyph, config.DeadGlyph
		renderer = terminal
		if config.ShowStatus {
			status = os.Stdout
		}
	}

	var source input.Source
	switch config.Input {
	case utils.InputTerminal:
		source = input.NewLineSource(os.Stdin, log.With(logger, "component", "terminal"))
	case utils.InputLaunchpad:
		source = launchpad.NewSource(ctrl, log.With(logger, "component", "launchpad"))
	}

	var pool *model.SnapshotPool
	if config.UseMemoryPool {
		pool = model.NewSnapshotPool()
	}

	driver := game.NewDriver(board, renderer, source, game.Options{
		FrameRate:      config.FrameRate,
		SpeedStep:      config.SpeedStep,
		MaxGenerations: config.MaxGenerations,
		Pool:           pool,
		Status:         status,
		Logger:         log.With(logger, "component", "driver"),
	})
	return driver, cleanup, nil
}

// displayGameInfo logs the initial game information
func displayGameInfo(config utils.Config, logger log.Logger) {
	level.Info(logger).Log(
		"msg", "starting",
		"board", fmt.Sprintf("%dx%d", config.Height, config.Width),
		"interval", config.FrameRate,
		"renderer", config.Renderer,
		"input", config.Input,
		"parallel", config.UseParallel,
	)
}

func displayFinalStats(stats *utils.Stats, logger log.Logger) {
	level.Info(logger).Log(
		"msg", "stopped",
		"generations", stats.TotalGenerations,
		"runtime", stats.Runtime().Round(time.Millisecond),
		"gen_per_sec", fmt.Sprintf("%.1f", stats.GenerationsPerSecond),
		"avg_population", fmt.Sprintf("%.1f", stats.AveragePopulation),
	)
}
