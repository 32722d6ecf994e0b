package timer

import (
	"math"
	"math/rand"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/pixel-timer/constants"
	"github.com/lixenwraith/pixel-timer/engine"
)

// GlowConfig shapes the post-completion glow
type GlowConfig struct {
	Steps         int           // ramp steps before the percentage holds
	Ramp          time.Duration // span of all ramp steps
	MinPercentage float64
	MaxPercentage float64
	FadeIn        time.Duration
	FadeOut       time.Duration
	MaxDelay      time.Duration // per-cell start delay is uniform in [0, MaxDelay)
}

// DefaultGlowConfig returns 10 steps over 10s ramping 10% to 50% of cells
func DefaultGlowConfig() GlowConfig {
	return GlowConfig{
		Steps:         constants.GlowSteps,
		Ramp:          constants.GlowRamp,
		MinPercentage: constants.GlowMinPercentage,
		MaxPercentage: constants.GlowMaxPercentage,
		FadeIn:        constants.GlowFadeIn,
		FadeOut:       constants.GlowFadeOut,
		MaxDelay:      constants.GlowMaxDelay,
	}
}

// StepInterval returns the spacing between glow steps
func (c GlowConfig) StepInterval() time.Duration {
	if c.Steps <= 0 || c.Ramp <= 0 {
		return time.Second
	}
	return c.Ramp / time.Duration(c.Steps)
}

// GlowPercentage returns the fraction of cells pulsed at step, held at the max once the ramp ends
func GlowPercentage(step int, cfg GlowConfig) float64 {
	if step < 0 {
		step = 0
	}
	if cfg.Steps <= 0 || step >= cfg.Steps {
		return cfg.MaxPercentage
	}
	p := cfg.MinPercentage + float64(step)*(cfg.MaxPercentage-cfg.MinPercentage)/float64(cfg.Steps)
	return math.Min(p, cfg.MaxPercentage)
}

// SampleDistinct returns k distinct indices drawn uniformly from [0, n)
func SampleDistinct(rng *rand.Rand, n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}

	// Partial Fisher-Yates
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rng.Intn(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// RandomColorHex returns a uniformly random 24-bit color as #rrggbb
func RandomColorHex(rng *rand.Rand) string {
	c := colorful.Color{
		R: float64(rng.Intn(256)) / 255,
		G: float64(rng.Intn(256)) / 255,
		B: float64(rng.Intn(256)) / 255,
	}
	return c.Hex()
}

// GlowAnimator pulses a growing random subset of cells after completion.
// Pulses on the same cell from different steps may overlap; the newest wins.
type GlowAnimator struct {
	loop *engine.Loop
	cfg  GlowConfig
	rng  *rand.Rand
	emit func(Pulse)

	gen     uint64
	step    engine.Handle
	pending map[engine.Handle]struct{}
	state   *GlowState
	total   int
}

// NewGlowAnimator creates a stopped animator
func NewGlowAnimator(loop *engine.Loop, cfg GlowConfig, rng *rand.Rand, emit func(Pulse)) *GlowAnimator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &GlowAnimator{
		loop:    loop,
		cfg:     cfg,
		rng:     rng,
		emit:    emit,
		pending: make(map[engine.Handle]struct{}),
	}
}

// Start runs step 0 now and the following steps on a fixed interval until Stop
func (g *GlowAnimator) Start(totalCells int) {
	g.Stop()
	g.total = totalCells
	g.state = &GlowState{Percentage: GlowPercentage(0, g.cfg)}

	gen := g.gen
	g.runStep(gen, g.loop.Now())
	g.step = g.loop.Every(g.cfg.StepInterval(), func(now time.Time) { g.runStep(gen, now) })
}

func (g *GlowAnimator) runStep(gen uint64, now time.Time) {
	if gen != g.gen || g.state == nil {
		return
	}

	pct := GlowPercentage(g.state.StepIndex, g.cfg)
	g.state.Percentage = pct
	count := int(math.Floor(float64(g.total) * pct))

	for _, index := range SampleDistinct(g.rng, g.total, count) {
		var delay time.Duration
		if g.cfg.MaxDelay > 0 {
			delay = time.Duration(g.rng.Int63n(int64(g.cfg.MaxDelay)))
		}
		p := Pulse{
			Index:   index,
			Color:   RandomColorHex(g.rng),
			FadeIn:  g.cfg.FadeIn,
			FadeOut: g.cfg.FadeOut,
		}

		var h engine.Handle
		h = g.loop.AfterFunc(delay, func(at time.Time) {
			delete(g.pending, h)
			if gen != g.gen {
				return
			}
			p.At = at
			if g.emit != nil {
				g.emit(p)
			}
		})
		g.pending[h] = struct{}{}
	}

	g.state.StepIndex++
}

// Stop cancels the step timer and every pulse not yet started
func (g *GlowAnimator) Stop() {
	g.gen++
	if g.step != 0 {
		g.loop.Cancel(g.step)
		g.step = 0
	}
	for h := range g.pending {
		g.loop.Cancel(h)
	}
	g.pending = make(map[engine.Handle]struct{})
	g.state = nil
}

// SetTotal makes later steps sample a resized grid
func (g *GlowAnimator) SetTotal(totalCells int) {
	if totalCells < 0 {
		totalCells = 0
	}
	g.total = totalCells
}

// State returns the ramp position, ok is false when not running
func (g *GlowAnimator) State() (GlowState, bool) {
	if g.state == nil {
		return GlowState{}, false
	}
	return *g.state, true
}

// PendingPulses returns the number of pulses waiting on their start delay
func (g *GlowAnimator) PendingPulses() int {
	return len(g.pending)
}
