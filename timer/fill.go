package timer

import (
	"math"
	"time"

	"github.com/lixenwraith/pixel-timer/engine"
)

// PixelsToActivate maps elapsed time to the number of cells that should be lit.
// Derived from wall time, not tick count, so frame rate and stalls do not drift the fill.
func PixelsToActivate(elapsed, duration time.Duration, totalCells int) int {
	if totalCells <= 0 || elapsed <= 0 || duration <= 0 {
		return 0
	}
	if elapsed >= duration {
		return totalCells
	}
	n := int(math.Floor(float64(elapsed) * float64(totalCells) / float64(duration)))
	if n > totalCells {
		n = totalCells
	}
	return n
}

// FillScheduler lights cells in index order as time elapses.
// Idle -> Running on Start, Running -> Completed when every cell is lit, back to Idle only via Reset.
type FillScheduler struct {
	loop  *engine.Loop
	state TimerState
	total int

	// Bumped on every start and reset, ticks from older runs return immediately
	gen   uint64
	frame engine.Handle

	onActivate func(index int)
	onComplete func(now time.Time)
}

// NewFillScheduler creates an idle scheduler; callbacks may be nil
func NewFillScheduler(loop *engine.Loop, onActivate func(index int), onComplete func(now time.Time)) *FillScheduler {
	return &FillScheduler{
		loop:       loop,
		state:      newTimerState(),
		onActivate: onActivate,
		onComplete: onComplete,
	}
}

// Start begins a run over totalCells cells lasting duration
func (f *FillScheduler) Start(duration time.Duration, totalCells int) error {
	if duration <= 0 {
		return ErrInvalidDuration
	}
	if f.state.Phase != PhaseIdle {
		return ErrNotIdle
	}
	if totalCells < 0 {
		totalCells = 0
	}

	f.gen++
	f.total = totalCells
	f.state.Phase = PhaseRunning
	f.state.StartTime = f.loop.Now()
	f.state.Duration = duration

	gen := f.gen
	f.frame = f.loop.RequestFrame(func(now time.Time) { f.tick(gen, now) })
	return nil
}

// tick activates the cells due by now and re-arms itself until completion.
// An empty grid completes on the first tick.
func (f *FillScheduler) tick(gen uint64, now time.Time) {
	if gen != f.gen || f.state.Phase != PhaseRunning {
		return
	}
	f.frame = 0

	target := PixelsToActivate(now.Sub(f.state.StartTime), f.state.Duration, f.total)
	f.activateTo(target)

	// A shrunken grid can leave ActiveCount past total before the deadline
	if f.state.ActiveCount >= f.total && target >= f.total {
		f.state.Phase = PhaseCompleted
		if f.onComplete != nil {
			f.onComplete(now)
		}
		return
	}

	f.frame = f.loop.RequestFrame(func(now time.Time) { f.tick(gen, now) })
}

// SetTotal switches to a resized grid without touching progress.
// A completed run that grows lights the new cells at once so it stays full.
func (f *FillScheduler) SetTotal(totalCells int) {
	if totalCells < 0 {
		totalCells = 0
	}
	f.total = totalCells
	if f.state.Phase == PhaseCompleted {
		f.activateTo(totalCells)
	}
}

// activateTo lights cells in index order until ActiveCount reaches n
func (f *FillScheduler) activateTo(n int) {
	for f.state.ActiveCount < n {
		index := f.state.ActiveCount
		f.state.ActiveSet.Add(index)
		f.state.ActiveCount++
		if f.onActivate != nil {
			f.onActivate(index)
		}
	}
}

// Reset cancels any pending tick and clears the run
func (f *FillScheduler) Reset() {
	f.gen++
	if f.frame != 0 {
		f.loop.Cancel(f.frame)
		f.frame = 0
	}
	f.state = newTimerState()
}

// Phase returns the lifecycle state
func (f *FillScheduler) Phase() Phase {
	return f.state.Phase
}

// Total returns the cell count being filled
func (f *FillScheduler) Total() int {
	return f.total
}

// ActiveCount returns the number of cells lit so far
func (f *FillScheduler) ActiveCount() int {
	return f.state.ActiveCount
}

// ActiveSet returns the live set of lit indices, callers must not modify it
func (f *FillScheduler) ActiveSet() ActiveSet {
	return f.state.ActiveSet
}

// State returns a snapshot with its own copy of the active set
func (f *FillScheduler) State() TimerState {
	s := f.state
	s.ActiveSet = f.state.ActiveSet.Clone()
	return s
}

// Elapsed returns run time at now, zero when idle
func (f *FillScheduler) Elapsed(now time.Time) time.Duration {
	if f.state.Phase == PhaseIdle {
		return 0
	}
	return now.Sub(f.state.StartTime)
}

// Remaining returns max(duration - elapsed, 0)
func (f *FillScheduler) Remaining(now time.Time) time.Duration {
	if f.state.Phase == PhaseIdle {
		return 0
	}
	left := f.state.Duration - f.Elapsed(now)
	if left < 0 {
		return 0
	}
	return left
}
