package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

const (
	RendererTerminal  = "terminal"
	RendererLaunchpad = "launchpad"

	InputNone      = "none"
	InputTerminal  = "terminal"
	InputLaunchpad = "launchpad"
)

// Config holds the configuration for the game
type Config struct {
	// Width of 0 means "as wide as the terminal"
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	FrameRate time.Duration `json:"frame_rate"`
	// SpeedStep is added to FrameRate per row when a control button is pressed
	SpeedStep      time.Duration `json:"speed_step"`
	UseParallel    bool          `json:"use_parallel"`
	UseMemoryPool  bool          `json:"use_memory_pool"`
	MaxGenerations int           `json:"max_generations"`
	RandomDensity  float64       `json:"random_density"`
	Seed           int64         `json:"seed"`
	Renderer       string        `json:"renderer"`
	Input          string        `json:"input"`
	Device         string        `json:"device"`
	AliveGlyph     string        `json:"alive_glyph"`
	DeadGlyph      string        `json:"dead_glyph"`
	ShowStatus     bool          `json:"show_status"`
	LogLevel       string        `json:"log_level"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:          0,
		Height:         24,
		FrameRate:      80 * time.Millisecond,
		SpeedStep:      10 * time.Millisecond,
		UseParallel:    false,
		UseMemoryPool:  true,
		MaxGenerations: 0,
		RandomDensity:  0.1,
		Renderer:       RendererTerminal,
		Input:          InputNone,
		Device:         "/dev/snd/midiC1D0",
		AliveGlyph:     "o",
		DeadGlyph:      " ",
		ShowStatus:     true,
		LogLevel:       "info",
	}
}

// LaunchpadConfig returns defaults for an 8x8 Launchpad grid
func LaunchpadConfig() Config {
	config := DefaultConfig()
	config.Width = 8
	config.Height = 8
	config.FrameRate = 50 * time.Millisecond
	config.Renderer = RendererLaunchpad
	config.Input = InputLaunchpad
	config.ShowStatus = false
	return config
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	return LoadConfigOver(DefaultConfig(), filename)
}

// LoadConfigOver loads configuration from JSON file, keeping base for unset fields
func LoadConfigOver(base Config, filename string) (Config, error) {
	config := base

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Validate checks the settings the driver cannot run without
func (c Config) Validate() error {
	switch {
	case c.Width < 0:
		return errors.Errorf("[Validate] width must not be negative, got %d", c.Width)
	case c.Height <= 0:
		return errors.Errorf("[Validate] height must be positive, got %d", c.Height)
	case c.FrameRate < 0:
		return errors.Errorf("[Validate] frame rate must not be negative, got %s", c.FrameRate)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Errorf("[Validate] random density must be within [0, 1], got %v", c.RandomDensity)
	}
	switch c.Renderer {
	case RendererTerminal, RendererLaunchpad:
	default:
		return errors.Errorf("[Validate] unknown renderer %q", c.Renderer)
	}
	switch c.Input {
	case InputNone, InputTerminal, InputLaunchpad:
	default:
		return errors.Errorf("[Validate] unknown input %q", c.Input)
	}
	return nil
}
