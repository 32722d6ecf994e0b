package timer

import (
	"errors"
	"testing"
	"time"
)

func TestController_MinuteScenario(t *testing.T) {
	h := newHarness(20, 20)
	if h.ctrl.Grid().TotalCells != 100 {
		t.Fatalf("Expected 100 cells, got %d", h.ctrl.Grid().TotalCells)
	}

	if err := h.ctrl.StartFields("0", "1", "0"); err != nil {
		t.Fatalf("StartFields failed: %v", err)
	}
	if h.ctrl.Phase() != PhaseRunning || h.view.lastPhase() != PhaseRunning {
		t.Fatalf("Expected running, got %s / view %s", h.ctrl.Phase(), h.view.lastPhase())
	}
	if !h.view.visible || !h.ctrl.DisplayVisible() {
		t.Error("Expected remaining time visible on start")
	}

	prev := 0
	h.runUntil(time.Minute, func() {
		n := h.ctrl.State().ActiveCount
		if n < prev {
			t.Fatalf("ActiveCount decreased %d -> %d", prev, n)
		}
		prev = n
		if h.ctrl.Phase() == PhaseCompleted && h.clock.Now().Before(testEpoch.Add(time.Minute)) {
			t.Fatalf("Completed early at %v", h.clock.Now().Sub(testEpoch))
		}
	})

	state := h.ctrl.State()
	if state.ActiveCount != 100 || state.ActiveSet.Len() != 100 {
		t.Errorf("Expected 100 active after 60s, got %d (set %d)", state.ActiveCount, state.ActiveSet.Len())
	}
	if h.ctrl.Phase() != PhaseCompleted || h.view.lastPhase() != PhaseCompleted {
		t.Errorf("Expected completed, got %s / view %s", h.ctrl.Phase(), h.view.lastPhase())
	}
	if len(h.view.active) != 100 {
		t.Errorf("Expected view to show 100 active cells, got %d", len(h.view.active))
	}
	if h.alarm.plays != 1 {
		t.Errorf("Expected alarm once, got %d", h.alarm.plays)
	}
	if glow, ok := h.ctrl.Glow(); !ok || glow.Percentage != 0.1 {
		t.Errorf("Expected glow started at 10%%, got %+v ok=%v", glow, ok)
	}

	// Completion side effects do not repeat
	h.runFor(15*time.Second, nil)
	if h.alarm.plays != 1 {
		t.Errorf("Alarm replayed: %d plays", h.alarm.plays)
	}
	if len(h.view.pulses) == 0 {
		t.Error("Expected glow pulses after completion")
	}
}

func TestController_RejectsZeroDuration(t *testing.T) {
	h := newHarness(20, 20)

	err := h.ctrl.StartFields("0", "0", "0")
	if !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("Expected ErrInvalidDuration, got %v", err)
	}
	if h.ctrl.Phase() != PhaseIdle {
		t.Errorf("Expected idle, got %s", h.ctrl.Phase())
	}
	if len(h.view.phases) != 0 || len(h.view.remaining) != 0 || h.view.visible {
		t.Errorf("Rejected start touched the view: phases %v, remaining %v", h.view.phases, h.view.remaining)
	}
	if h.loop.Pending() != 0 {
		t.Errorf("Rejected start scheduled %d callbacks", h.loop.Pending())
	}

	err = h.ctrl.StartFields("", "abc", "")
	if !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("Expected invalid fields to parse as zero and be rejected, got %v", err)
	}
}

func TestController_StartWhileRunning(t *testing.T) {
	h := newHarness(20, 20)
	h.ctrl.Start(time.Minute)

	if err := h.ctrl.Start(time.Second); !errors.Is(err, ErrNotIdle) {
		t.Errorf("Expected ErrNotIdle, got %v", err)
	}
}

func TestController_ResetMidRun(t *testing.T) {
	h := newHarness(20, 20)
	h.ctrl.Start(time.Minute)

	h.runUntil(30*time.Second, nil)
	if n := h.ctrl.State().ActiveCount; n != 50 {
		t.Fatalf("Expected 50/100 active at 30s, got %d", n)
	}

	activations := len(h.view.activations)
	h.ctrl.Reset()

	state := h.ctrl.State()
	if h.ctrl.Phase() != PhaseIdle || state.ActiveCount != 0 || state.ActiveSet.Len() != 0 {
		t.Fatalf("Reset left %s with %d active, set %d", h.ctrl.Phase(), state.ActiveCount, state.ActiveSet.Len())
	}
	if len(h.view.active) != 0 {
		t.Errorf("Expected grid fully cleared, %d cells still lit", len(h.view.active))
	}
	if h.view.lastPhase() != PhaseIdle || h.view.visible {
		t.Errorf("Expected idle view with hidden time, got %s visible=%v", h.view.lastPhase(), h.view.visible)
	}
	if h.alarm.stops != 1 {
		t.Errorf("Expected alarm stopped once, got %d", h.alarm.stops)
	}
	if h.loop.Pending() != 0 {
		t.Errorf("Reset left %d pending callbacks", h.loop.Pending())
	}

	remaining := len(h.view.remaining)
	h.runFor(2*time.Minute, nil)

	if len(h.view.activations) != activations {
		t.Errorf("%d activations after reset", len(h.view.activations)-activations)
	}
	if len(h.view.remaining) != remaining {
		t.Errorf("%d remaining updates after reset", len(h.view.remaining)-remaining)
	}
	if h.alarm.plays != 0 {
		t.Error("Alarm played after reset")
	}
}

func TestController_ResetAfterCompletion(t *testing.T) {
	h := newHarness(20, 20)
	h.ctrl.Start(time.Second)
	h.runFor(3*time.Second, nil)

	if h.ctrl.Phase() != PhaseCompleted {
		t.Fatalf("Expected completed, got %s", h.ctrl.Phase())
	}

	h.ctrl.Reset()
	pulses := len(h.view.pulses)

	if _, ok := h.ctrl.Glow(); ok {
		t.Error("Glow still active after reset")
	}
	h.runFor(5*time.Second, nil)
	if len(h.view.pulses) != pulses {
		t.Errorf("%d pulses after reset", len(h.view.pulses)-pulses)
	}

	// A fresh run starts from zero
	if err := h.ctrl.Start(time.Minute); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}
	h.step()
	if n := h.ctrl.State().ActiveCount; n != 0 {
		t.Errorf("Expected fresh run to start at 0, got %d", n)
	}
}

func TestController_ResizeMidRunResumes(t *testing.T) {
	h := newHarness(20, 20)
	h.ctrl.Start(time.Minute)
	h.runUntil(30*time.Second, nil)

	before := h.ctrl.State()
	rebuilds := h.view.rebuilds

	// A burst of resize events rebuilds once after they go quiet
	h.ctrl.Resize(30, 20)
	h.runFor(50*time.Millisecond, nil)
	h.ctrl.Resize(36, 20)
	h.runFor(50*time.Millisecond, nil)
	h.ctrl.Resize(40, 20)

	h.runFor(150*time.Millisecond, nil)
	if h.view.rebuilds != rebuilds {
		t.Fatalf("Grid rebuilt before debounce expired")
	}
	h.runFor(100*time.Millisecond, nil)
	if h.view.rebuilds != rebuilds+1 {
		t.Fatalf("Expected one rebuild after quiescence, got %d", h.view.rebuilds-rebuilds)
	}

	if h.ctrl.Grid().TotalCells != 200 {
		t.Fatalf("Expected 200 cells after resize, got %d", h.ctrl.Grid().TotalCells)
	}
	for _, i := range before.ActiveSet.Indices() {
		if !h.view.active[i] {
			t.Fatalf("Index %d not re-marked after rebuild", i)
		}
	}

	h.step()
	after := h.ctrl.State()
	if after.ActiveCount < before.ActiveCount {
		t.Errorf("Resize decreased ActiveCount %d -> %d", before.ActiveCount, after.ActiveCount)
	}
	if after.ActiveCount < 100 {
		t.Errorf("Expected fill to resume near half of 200, got %d", after.ActiveCount)
	}
	if !after.StartTime.Equal(before.StartTime) {
		t.Errorf("Resize restarted the run")
	}

	h.runUntil(time.Minute, nil)
	if h.ctrl.Phase() != PhaseCompleted || h.ctrl.State().ActiveCount != 200 {
		t.Errorf("Expected 200/200 completed at the original deadline, got %s %d",
			h.ctrl.Phase(), h.ctrl.State().ActiveCount)
	}
}

func TestController_SetViewportSkipsDebounce(t *testing.T) {
	h := newHarness(20, 20)
	h.ctrl.Resize(40, 40)
	h.ctrl.SetViewport(10, 10)

	if h.ctrl.Grid().TotalCells != 25 {
		t.Errorf("Expected 25 cells immediately, got %d", h.ctrl.Grid().TotalCells)
	}

	h.runFor(time.Second, nil)
	if h.ctrl.Grid().TotalCells != 25 {
		t.Errorf("Pending resize overrode SetViewport: %d cells", h.ctrl.Grid().TotalCells)
	}
}

func TestController_ToggleDisplay(t *testing.T) {
	h := newHarness(20, 20)

	if h.ctrl.ToggleDisplay() {
		t.Error("Toggle while idle should be a no-op")
	}

	h.ctrl.Start(time.Minute)
	if h.ctrl.ToggleDisplay() || h.view.visible {
		t.Error("Expected toggle to hide")
	}
	if !h.ctrl.ToggleDisplay() || !h.view.visible {
		t.Error("Expected toggle to show")
	}
}

func TestController_EmptyViewport(t *testing.T) {
	h := newHarness(0, 0)

	if err := h.ctrl.Start(time.Minute); err != nil {
		t.Fatalf("Start on empty grid failed: %v", err)
	}
	h.step()

	if h.ctrl.Phase() != PhaseCompleted {
		t.Errorf("Expected immediate completion on empty grid, got %s", h.ctrl.Phase())
	}
	if len(h.view.activations) != 0 {
		t.Errorf("Expected no activations, got %d", len(h.view.activations))
	}
}

func TestController_GrowAfterCompletionStaysFull(t *testing.T) {
	h := newHarness(20, 20) // 100 cells
	if err := h.ctrl.Start(10 * time.Second); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	h.runFor(11*time.Second, nil)
	if h.ctrl.Phase() != PhaseCompleted {
		t.Fatalf("Expected completed, got %s", h.ctrl.Phase())
	}
	glowBefore, _ := h.ctrl.Glow()
	completions := len(h.view.phases)
	activatedBefore := len(h.view.activations)

	h.ctrl.SetViewport(40, 40) // 400 cells
	total := h.ctrl.Grid().TotalCells
	if total != 400 {
		t.Fatalf("Expected 400 cells, got %d", total)
	}

	state := h.ctrl.State()
	if state.ActiveCount != total || state.ActiveSet.Len() != total {
		t.Errorf("Expected %d active after grow, got %d (set %d)", total, state.ActiveCount, state.ActiveSet.Len())
	}
	added := h.view.activations[activatedBefore:]
	if len(added) != total-100 {
		t.Fatalf("Expected %d new activations, got %d", total-100, len(added))
	}
	for i, index := range added {
		if index != 100+i {
			t.Fatalf("Activation %d: expected index %d, got %d", i, 100+i, index)
		}
	}
	if len(h.view.active) != total {
		t.Errorf("Expected view to show %d active cells, got %d", total, len(h.view.active))
	}

	h.runFor(2*time.Second, nil)
	if h.ctrl.Phase() != PhaseCompleted {
		t.Errorf("Expected completed after grow, got %s", h.ctrl.Phase())
	}
	if h.ctrl.State().ActiveCount != total {
		t.Errorf("Expected %d active, got %d", total, h.ctrl.State().ActiveCount)
	}
	if h.alarm.plays != 1 {
		t.Errorf("Alarm replayed after grow: %d plays", h.alarm.plays)
	}
	if len(h.view.phases) != completions {
		t.Errorf("Phase changed after grow: %v", h.view.phases[completions:])
	}
	if glowAfter, ok := h.ctrl.Glow(); !ok || glowAfter.StepIndex < glowBefore.StepIndex {
		t.Errorf("Glow restarted: before %+v, after %+v ok=%v", glowBefore, glowAfter, ok)
	}
}

func TestController_GlowDisabled(t *testing.T) {
	h := newHarness(20, 20)
	h.ctrl.opts.GlowEnabled = false

	h.ctrl.Start(time.Second)
	h.runFor(5*time.Second, nil)

	if h.ctrl.Phase() != PhaseCompleted {
		t.Fatalf("Expected completed, got %s", h.ctrl.Phase())
	}
	if _, ok := h.ctrl.Glow(); ok || len(h.view.pulses) != 0 {
		t.Error("Glow ran while disabled")
	}
	if h.alarm.plays != 1 {
		t.Errorf("Expected alarm once, got %d", h.alarm.plays)
	}
}
