package timer

import (
	"sort"
	"time"
)

// Phase is the fill scheduler lifecycle state
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// ActiveSet holds activated cell indices.
// It outlives grid rebuilds so lit cells stay lit after a resize.
type ActiveSet map[int]struct{}

// Add marks index active
func (s ActiveSet) Add(index int) {
	s[index] = struct{}{}
}

// Has reports whether index is active
func (s ActiveSet) Has(index int) bool {
	_, ok := s[index]
	return ok
}

// Len returns the number of active indices
func (s ActiveSet) Len() int {
	return len(s)
}

// Indices returns active indices in ascending order
func (s ActiveSet) Indices() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Clone returns an independent copy
func (s ActiveSet) Clone() ActiveSet {
	out := make(ActiveSet, len(s))
	for i := range s {
		out[i] = struct{}{}
	}
	return out
}

// TimerState is the state of one run, owned by FillScheduler.
// ActiveCount never decreases within a run.
type TimerState struct {
	Phase       Phase
	StartTime   time.Time
	Duration    time.Duration
	ActiveCount int
	ActiveSet   ActiveSet
}

func newTimerState() TimerState {
	return TimerState{ActiveSet: make(ActiveSet)}
}

// GlowState tracks the ramp of the post-completion glow
type GlowState struct {
	Percentage float64
	StepIndex  int
}
