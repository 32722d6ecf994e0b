// Package config binds command-line flags, PIXEL_TIMER_* environment variables
// and an optional TOML file into one Config.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/fftoml"

	"github.com/lixenwraith/pixel-timer/audio"
	"github.com/lixenwraith/pixel-timer/constants"
	"github.com/lixenwraith/pixel-timer/timer"
)

// EnvPrefix is prepended to upper-cased flag names, "cell-size" -> PIXEL_TIMER_CELL_SIZE
const EnvPrefix = "PIXEL_TIMER"

// Color modes
const (
	ColorAuto      = "auto"
	ColorTrueColor = "truecolor"
	Color256       = "256"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config is the resolved runtime configuration
type Config struct {
	ConfigFile string
	Color      string
	Debug      bool

	CellSize int
	Gap      int
	FPS      int
	Debounce time.Duration

	Audio       bool
	Volume      int // percent
	SampleRate  int
	AlarmFile   string
	AlarmRepeat int

	Glow    bool
	GlowMax float64

	Start time.Duration // zero shows the form
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Color:       ColorAuto,
		CellSize:    constants.DefaultCellSize,
		Gap:         constants.DefaultCellGap,
		FPS:         constants.DefaultFPS,
		Debounce:    constants.ResizeDebounce,
		Audio:       true,
		Volume:      int(constants.DefaultMasterVolume * 100),
		SampleRate:  constants.DefaultSampleRate,
		AlarmRepeat: constants.DefaultAlarmRepeat,
		Glow:        true,
		GlowMax:     constants.GlowMaxPercentage,
	}
}

// NewFlagSet binds every option of c to a new flag set, defaults taken from c
func NewFlagSet(name string, c *Config) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "TOML config file (optional)")
	fs.StringVar(&c.Color, "color", c.Color, "Color mode: auto, truecolor, 256")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "Write debug log to logs/pixel-timer.log")

	fs.IntVar(&c.CellSize, "cell-size", c.CellSize, "Cell size in grid units")
	fs.IntVar(&c.Gap, "gap", c.Gap, "Gap between cells in grid units")
	fs.IntVar(&c.FPS, "fps", c.FPS, "Frames per second")
	fs.DurationVar(&c.Debounce, "debounce", c.Debounce, "Quiet period before a resize rebuilds the grid")

	fs.BoolVar(&c.Audio, "audio", c.Audio, "Play the alarm on completion")
	fs.IntVar(&c.Volume, "volume", c.Volume, "Alarm volume 0-100")
	fs.IntVar(&c.SampleRate, "sample-rate", c.SampleRate, "Speaker sample rate in Hz")
	fs.StringVar(&c.AlarmFile, "alarm", c.AlarmFile, "Alarm sound file (.wav or .mp3), empty for the built-in chime")
	fs.IntVar(&c.AlarmRepeat, "alarm-repeat", c.AlarmRepeat, "Times the alarm plays")

	fs.BoolVar(&c.Glow, "glow", c.Glow, "Animate a glow over the grid after completion")
	fs.Float64Var(&c.GlowMax, "glow-max", c.GlowMax, "Fraction of cells pulsing per glow step at full ramp")

	fs.DurationVar(&c.Start, "start", c.Start, "Start immediately with this duration, e.g. 25m")

	return fs
}

// Options returns the ff parse options shared by Load and the CLI root command
func Options() []ff.Option {
	return []ff.Option{
		ff.WithEnvVarPrefix(EnvPrefix),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(fftoml.Parser),
		ff.WithAllowMissingConfigFile(true),
	}
}

// Load parses args, environment and config file, then validates.
// Precedence: flags, then environment, then file, then defaults.
func Load(args []string) (Config, error) {
	cfg := Default()
	fs := NewFlagSet("pixel-timer", &cfg)

	if err := ff.Parse(fs, args, Options()...); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the timer cannot run with
func (c Config) Validate() error {
	switch {
	case c.CellSize < 1:
		return fmt.Errorf("%w: cell-size must be at least 1, got %d", ErrInvalidConfig, c.CellSize)
	case c.Gap < 0:
		return fmt.Errorf("%w: gap must not be negative, got %d", ErrInvalidConfig, c.Gap)
	case c.FPS < 1 || c.FPS > constants.MaxFPS:
		return fmt.Errorf("%w: fps must be in 1..%d, got %d", ErrInvalidConfig, constants.MaxFPS, c.FPS)
	case c.Debounce < 0:
		return fmt.Errorf("%w: debounce must not be negative, got %v", ErrInvalidConfig, c.Debounce)
	case c.Volume < 0 || c.Volume > 100:
		return fmt.Errorf("%w: volume must be in 0..100, got %d", ErrInvalidConfig, c.Volume)
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample-rate must be positive, got %d", ErrInvalidConfig, c.SampleRate)
	case c.AlarmRepeat < 1:
		return fmt.Errorf("%w: alarm-repeat must be at least 1, got %d", ErrInvalidConfig, c.AlarmRepeat)
	case c.GlowMax < constants.GlowMinPercentage || c.GlowMax > 1:
		return fmt.Errorf("%w: glow-max must be in %.2f..1, got %.2f", ErrInvalidConfig, constants.GlowMinPercentage, c.GlowMax)
	case c.Start < 0:
		return fmt.Errorf("%w: start must not be negative, got %v", ErrInvalidConfig, c.Start)
	}

	switch c.Color {
	case ColorAuto, ColorTrueColor, Color256:
	default:
		return fmt.Errorf("%w: color must be auto, truecolor or 256, got %q", ErrInvalidConfig, c.Color)
	}
	return nil
}

// FrameInterval is the render tick period for FPS
func (c Config) FrameInterval() time.Duration {
	fps := c.FPS
	if fps < 1 {
		fps = constants.DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// TimerOptions maps grid, resize and glow settings onto the controller
func (c Config) TimerOptions() timer.Options {
	opts := timer.DefaultOptions()
	opts.CellSize = c.CellSize
	opts.Gap = c.Gap
	opts.Debounce = c.Debounce
	opts.GlowEnabled = c.Glow
	opts.Glow.MaxPercentage = c.GlowMax
	return opts
}

// AudioConfig maps the alarm settings onto the player
func (c Config) AudioConfig() *audio.AudioConfig {
	cfg := audio.DefaultAudioConfig()
	cfg.Enabled = c.Audio
	cfg.MasterVolume = audio.VolumeFromPercent(c.Volume)
	cfg.SampleRate = c.SampleRate
	cfg.AlarmFile = c.AlarmFile
	cfg.Repeat = c.AlarmRepeat
	return cfg
}
