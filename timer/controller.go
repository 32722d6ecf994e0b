// Package timer implements the pixel countdown: fill scheduling, the remaining-time
// reporter, the post-completion glow and the controller that owns their state.
package timer

import (
	"log"
	"math/rand"
	"time"

	"github.com/lixenwraith/pixel-timer/constants"
	"github.com/lixenwraith/pixel-timer/engine"
	"github.com/lixenwraith/pixel-timer/grid"
)

// Options configures a Controller
type Options struct {
	CellSize    int
	Gap         int
	Debounce    time.Duration
	GlowEnabled bool
	Glow        GlowConfig
	Rand        *rand.Rand // nil seeds from the clock
}

// DefaultOptions returns the stock grid, debounce and glow settings
func DefaultOptions() Options {
	return Options{
		CellSize:    constants.DefaultCellSize,
		Gap:         constants.DefaultCellGap,
		Debounce:    constants.ResizeDebounce,
		GlowEnabled: true,
		Glow:        DefaultGlowConfig(),
	}
}

// Controller owns one timer: grid, fill, reporter, glow, and the display toggle.
// All methods run on the loop goroutine.
type Controller struct {
	loop  *engine.Loop
	view  View
	alarm Alarm
	opts  Options

	grid     grid.Grid
	fill     *FillScheduler
	reporter *Reporter
	glow     *GlowAnimator

	displayRemaining bool
	resize           engine.Handle
}

// NewController wires the components to view and alarm; a nil alarm is silent
func NewController(loop *engine.Loop, view View, alarm Alarm, opts Options) *Controller {
	if alarm == nil {
		alarm = silentAlarm{}
	}
	c := &Controller{
		loop:  loop,
		view:  view,
		alarm: alarm,
		opts:  opts,
	}
	c.fill = NewFillScheduler(loop, view.CellActivated, c.complete)
	c.reporter = NewReporter(loop, c.fill, view.RemainingChanged)
	c.glow = NewGlowAnimator(loop, opts.Glow, opts.Rand, view.GlowPulsed)
	return c
}

// SetViewport sizes the grid immediately, dropping any pending debounced resize
func (c *Controller) SetViewport(width, height int) {
	c.cancelResize()
	c.applyViewport(width, height)
}

// Resize sizes the grid once resize events have been quiet for the debounce period
func (c *Controller) Resize(width, height int) {
	c.cancelResize()
	c.resize = c.loop.AfterFunc(c.opts.Debounce, func(time.Time) {
		c.resize = 0
		c.applyViewport(width, height)
	})
}

func (c *Controller) cancelResize() {
	if c.resize != 0 {
		c.loop.Cancel(c.resize)
		c.resize = 0
	}
}

// applyViewport recomputes the grid first, then lets the pending fill tick resume against it.
// The view is rebuilt before the fill so cells lit by a completed run growing land on the new grid.
func (c *Controller) applyViewport(width, height int) {
	c.grid = grid.Compute(width, height, c.opts.CellSize, c.opts.Gap)
	c.view.CellsRebuilt(c.grid, c.fill.ActiveSet().Clone())
	c.fill.SetTotal(c.grid.TotalCells)
	c.glow.SetTotal(c.grid.TotalCells)

	log.Printf("grid: %dx%d units -> %dx%d (%d cells), %s, %d active",
		width, height, c.grid.Columns, c.grid.Rows, c.grid.TotalCells, c.fill.Phase(), c.fill.ActiveCount())
}

// Start begins a countdown of d over the current grid
func (c *Controller) Start(d time.Duration) error {
	if err := c.fill.Start(d, c.grid.TotalCells); err != nil {
		log.Printf("timer: start rejected (%v): %v", d, err)
		return err
	}

	c.displayRemaining = true
	c.view.PhaseChanged(PhaseRunning)
	c.view.DisplayToggled(true)
	c.view.RemainingChanged(FormatRemaining(d))
	c.reporter.Start()

	log.Printf("timer: started %v over %d cells", d, c.grid.TotalCells)
	return nil
}

// StartFields parses the HH/MM/SS inputs and starts
func (c *Controller) StartFields(hours, minutes, seconds string) error {
	return c.Start(ParseFields(hours, minutes, seconds))
}

// complete runs exactly once per run, from the fill tick
func (c *Controller) complete(now time.Time) {
	log.Printf("timer: completed after %v", c.fill.Elapsed(now))

	c.alarm.PlayAlarm()
	if c.opts.GlowEnabled {
		c.glow.Start(c.grid.TotalCells)
	}
	c.view.PhaseChanged(PhaseCompleted)
}

// Reset returns to Idle from any phase, cancelling every pending tick and pulse
func (c *Controller) Reset() {
	prev := c.fill.Phase()

	c.fill.Reset()
	c.reporter.Stop()
	c.glow.Stop()
	c.alarm.StopAlarm()

	c.displayRemaining = false
	c.view.CellsRebuilt(c.grid, make(ActiveSet))
	c.view.DisplayToggled(false)
	c.view.PhaseChanged(PhaseIdle)

	log.Printf("timer: reset from %s", prev)
}

// ToggleDisplay flips the remaining-time visibility while a run exists.
// Scheduling is unaffected.
func (c *Controller) ToggleDisplay() bool {
	if c.fill.Phase() == PhaseIdle {
		return false
	}
	c.displayRemaining = !c.displayRemaining
	c.view.DisplayToggled(c.displayRemaining)
	return c.displayRemaining
}

// Grid returns the current layout
func (c *Controller) Grid() grid.Grid {
	return c.grid
}

// Phase returns the fill lifecycle state
func (c *Controller) Phase() Phase {
	return c.fill.Phase()
}

// State returns a snapshot of the run
func (c *Controller) State() TimerState {
	return c.fill.State()
}

// DisplayVisible reports whether the remaining time is shown
func (c *Controller) DisplayVisible() bool {
	return c.displayRemaining
}

// Glow returns the glow ramp, ok is false when not glowing
func (c *Controller) Glow() (GlowState, bool) {
	return c.glow.State()
}

// ReporterRunning reports whether the remaining-time loop is still ticking
func (c *Controller) ReporterRunning() bool {
	return c.reporter.Running()
}
