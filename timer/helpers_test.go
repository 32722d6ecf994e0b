package timer

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/pixel-timer/engine"
	"github.com/lixenwraith/pixel-timer/grid"
)

var testEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

const testFrame = 16 * time.Millisecond

// recordingView captures every View call for assertions
type recordingView struct {
	grid     grid.Grid
	active   map[int]bool
	rebuilds int

	activations []int
	remaining   []string
	// ActiveCount seen by the view when each remaining string arrived
	remainingCount []int

	pulses  []Pulse
	phases  []Phase
	visible bool
}

func newRecordingView() *recordingView {
	return &recordingView{active: make(map[int]bool)}
}

func (v *recordingView) CellsRebuilt(g grid.Grid, active ActiveSet) {
	v.grid = g
	v.rebuilds++
	v.active = make(map[int]bool, active.Len())
	for i := range active {
		v.active[i] = true
	}
}

func (v *recordingView) CellActivated(index int) {
	v.active[index] = true
	v.activations = append(v.activations, index)
}

func (v *recordingView) RemainingChanged(text string) {
	v.remaining = append(v.remaining, text)
	v.remainingCount = append(v.remainingCount, len(v.active))
}

func (v *recordingView) GlowPulsed(p Pulse) { v.pulses = append(v.pulses, p) }

func (v *recordingView) PhaseChanged(p Phase) { v.phases = append(v.phases, p) }

func (v *recordingView) DisplayToggled(visible bool) { v.visible = visible }

func (v *recordingView) lastPhase() Phase {
	if len(v.phases) == 0 {
		return PhaseIdle
	}
	return v.phases[len(v.phases)-1]
}

type countingAlarm struct {
	plays, stops int
}

func (a *countingAlarm) PlayAlarm() { a.plays++ }
func (a *countingAlarm) StopAlarm() { a.stops++ }

type harness struct {
	loop  *engine.Loop
	clock *engine.ManualTimeProvider
	view  *recordingView
	alarm *countingAlarm
	ctrl  *Controller
}

// newHarness builds a controller over a viewport of width x height units (cell 1, gap 1)
func newHarness(width, height int) *harness {
	clock := engine.NewManualTimeProvider(testEpoch)
	loop := engine.NewLoop(clock)
	view := newRecordingView()
	alarm := &countingAlarm{}

	opts := DefaultOptions()
	opts.Rand = rand.New(rand.NewSource(42))

	ctrl := NewController(loop, view, alarm, opts)
	ctrl.SetViewport(width, height)

	return &harness{loop: loop, clock: clock, view: view, alarm: alarm, ctrl: ctrl}
}

// step advances one frame and runs it
func (h *harness) step() {
	h.clock.Advance(testFrame)
	h.loop.RunFrame()
}

// runFor runs frames until d has passed, calling check after each frame when non-nil
func (h *harness) runFor(d time.Duration, check func()) {
	end := h.clock.Now().Add(d)
	for h.clock.Now().Before(end) {
		h.step()
		if check != nil {
			check()
		}
	}
}

// runUntil runs frames until the absolute offset from testEpoch
func (h *harness) runUntil(offset time.Duration, check func()) {
	h.runFor(testEpoch.Add(offset).Sub(h.clock.Now()), check)
}
