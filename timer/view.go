package timer

import (
	"time"

	"github.com/lixenwraith/pixel-timer/grid"
)

// View receives everything the timer wants on screen.
// Calls arrive on the loop goroutine; implementations must not block.
type View interface {
	// CellsRebuilt replaces the grid layout; active must be re-marked
	CellsRebuilt(g grid.Grid, active ActiveSet)
	CellActivated(index int)
	RemainingChanged(text string)
	GlowPulsed(p Pulse)
	PhaseChanged(p Phase)
	DisplayToggled(visible bool)
}

// Alarm plays the completion sound
type Alarm interface {
	PlayAlarm()
	StopAlarm()
}

// Pulse is one glow transition on a cell: base color to Color over FadeIn,
// then back over FadeOut, starting at At.
type Pulse struct {
	Index   int
	Color   string // #rrggbb
	FadeIn  time.Duration
	FadeOut time.Duration
	At      time.Time
}

// End returns when the pulse is back at the base color
func (p Pulse) End() time.Time {
	return p.At.Add(p.FadeIn + p.FadeOut)
}

type silentAlarm struct{}

func (silentAlarm) PlayAlarm() {}
func (silentAlarm) StopAlarm() {}
