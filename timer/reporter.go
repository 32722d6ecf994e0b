package timer

import (
	"time"

	"github.com/lixenwraith/pixel-timer/engine"
)

// Reporter publishes the remaining time on its own frame loop.
// Display visibility never gates it; it stops once the fill leaves Running.
type Reporter struct {
	loop *engine.Loop
	fill *FillScheduler
	emit func(text string)

	gen   uint64
	frame engine.Handle
}

// NewReporter creates a stopped reporter over fill
func NewReporter(loop *engine.Loop, fill *FillScheduler, emit func(text string)) *Reporter {
	return &Reporter{loop: loop, fill: fill, emit: emit}
}

// Start begins ticking from the next frame, restarting if already running
func (r *Reporter) Start() {
	r.Stop()
	gen := r.gen
	r.frame = r.loop.RequestFrame(func(now time.Time) { r.tick(gen, now) })
}

func (r *Reporter) tick(gen uint64, now time.Time) {
	if gen != r.gen {
		return
	}
	r.frame = 0

	running := r.fill.Phase() == PhaseRunning
	remaining := r.fill.Remaining(now)
	if !running {
		// An empty grid completes before its deadline
		remaining = 0
	}
	if r.emit != nil {
		r.emit(FormatRemaining(remaining))
	}

	// Final value is emitted on the frame the fill completes
	if !running {
		return
	}
	r.frame = r.loop.RequestFrame(func(now time.Time) { r.tick(gen, now) })
}

// Stop cancels the pending tick
func (r *Reporter) Stop() {
	r.gen++
	if r.frame != 0 {
		r.loop.Cancel(r.frame)
		r.frame = 0
	}
}

// Running reports whether a tick is pending
func (r *Reporter) Running() bool {
	return r.frame != 0
}
