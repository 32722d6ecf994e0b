package render

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/pixel-timer/constants"
	"github.com/lixenwraith/pixel-timer/grid"
	"github.com/lixenwraith/pixel-timer/timer"
)

// glowPulse is a received pulse with its color already parsed
type glowPulse struct {
	timer.Pulse
	color tcell.Color
}

// View keeps what the controller reported and draws it to a tcell screen.
// Not safe for concurrent use: updates and Draw run on the loop goroutine.
type View struct {
	cellSize int
	gap      int

	grid   grid.Grid
	active []bool
	pulses map[int]glowPulse

	phase         timer.Phase
	remaining     string
	showRemaining bool

	form   *SettingsForm
	notice string
}

// NewView creates a view for cells of cellSize units separated by gap units
func NewView(cellSize, gap int) *View {
	return &View{
		cellSize: cellSize,
		gap:      gap,
		pulses:   make(map[int]glowPulse),
		form:     NewSettingsForm(),
	}
}

// CellsRebuilt replaces the grid, marking the given indices active
func (v *View) CellsRebuilt(g grid.Grid, active timer.ActiveSet) {
	v.grid = g
	v.active = make([]bool, g.TotalCells)
	for i := range active {
		if i >= 0 && i < len(v.active) {
			v.active[i] = true
		}
	}
	for i := range v.pulses {
		if i >= g.TotalCells {
			delete(v.pulses, i)
		}
	}
}

// CellActivated marks one cell; indices past a shrunken grid are ignored
func (v *View) CellActivated(index int) {
	if index >= 0 && index < len(v.active) {
		v.active[index] = true
	}
}

// RemainingChanged stores the HH:MM:SS text
func (v *View) RemainingChanged(text string) {
	v.remaining = text
}

// GlowPulsed starts a pulse, replacing any pulse already on that cell
func (v *View) GlowPulsed(p timer.Pulse) {
	c, ok := ParseHexColor(p.Color)
	if !ok {
		return
	}
	v.pulses[p.Index] = glowPulse{Pulse: p, color: c}
}

// PhaseChanged switches between the form and the running display
func (v *View) PhaseChanged(p timer.Phase) {
	v.phase = p
	switch p {
	case timer.PhaseIdle:
		v.remaining = ""
		clear(v.pulses)
	case timer.PhaseRunning:
		v.notice = ""
	}
}

// DisplayToggled shows or hides the remaining-time box
func (v *View) DisplayToggled(visible bool) {
	v.showRemaining = visible
}

// Form returns the idle settings form
func (v *View) Form() *SettingsForm {
	return v.form
}

// SetNotice sets the message shown under the form, empty clears it
func (v *View) SetNotice(text string) {
	v.notice = text
}

// Notice returns the current form message
func (v *View) Notice() string {
	return v.notice
}

// Phase returns the last reported phase
func (v *View) Phase() timer.Phase {
	return v.phase
}

// Remaining returns the last remaining-time text and whether it is shown
func (v *View) Remaining() (string, bool) {
	return v.remaining, v.showRemaining
}

// ActiveCount returns the number of lit cells in the current grid
func (v *View) ActiveCount() int {
	n := 0
	for _, a := range v.active {
		if a {
			n++
		}
	}
	return n
}

// CellColor returns the fill color of a cell at now, including any glow
func (v *View) CellColor(index int, now time.Time) tcell.Color {
	if index < 0 || index >= len(v.active) {
		return RgbCellIdle
	}
	base := RgbCellIdle
	if v.active[index] {
		base = RgbCellActive
	}
	if p, ok := v.pulses[index]; ok {
		return Blend(base, p.color, pulseFactor(p.Pulse, now))
	}
	return base
}

// pulseFactor rises 0 to 1 over FadeIn, then falls back to 0 over FadeOut
func pulseFactor(p timer.Pulse, now time.Time) float64 {
	t := now.Sub(p.At)
	switch {
	case t <= 0:
		return 0
	case t < p.FadeIn:
		return float64(t) / float64(p.FadeIn)
	case t < p.FadeIn+p.FadeOut:
		return 1 - float64(t-p.FadeIn)/float64(p.FadeOut)
	default:
		return 0
	}
}

func (v *View) prunePulses(now time.Time) {
	for i, p := range v.pulses {
		if !now.Before(p.End()) {
			delete(v.pulses, i)
		}
	}
}

// Draw renders the full frame; the caller calls screen.Show
func (v *View) Draw(screen tcell.Screen, now time.Time) {
	width, height := screen.Size()
	screen.Fill(' ', tcell.StyleDefault.Background(RgbBackground))
	v.prunePulses(now)

	areaHeight := height - constants.ReservedRows
	v.drawGrid(screen, width, areaHeight, now)

	if v.phase == timer.PhaseIdle {
		v.drawForm(screen, width, areaHeight)
	} else if v.showRemaining && v.remaining != "" {
		v.drawTimeBox(screen, width, areaHeight)
	}

	v.drawHint(screen, width, height)
}

func (v *View) drawGrid(screen tcell.Screen, width, height int, now time.Time) {
	gw, gh := gridExtent(v.grid, v.cellSize, v.gap)
	ox := max((width-gw)/2, 0)
	oy := max((height-gh)/2, 0)

	for row := 0; row < v.grid.Rows; row++ {
		for col := 0; col < v.grid.Columns; col++ {
			x, y, w, h := cellRect(col, row, v.cellSize, v.gap)
			style := tcell.StyleDefault.Background(v.CellColor(v.grid.Index(col, row), now))
			fillRect(screen, ox+x, oy+y, w, h, style)
		}
	}
}

func (v *View) drawTimeBox(screen tcell.Screen, width, height int) {
	text := " " + v.remaining + " "
	w := runewidth.StringWidth(text) + 2
	x := (width - w) / 2
	y := height/2 - 1

	style := tcell.StyleDefault.Background(RgbTimeBoxBg).Foreground(RgbTimeText)
	fillRect(screen, x, y, w, 3, style)
	drawText(screen, x+1, y+1, text, style.Bold(true))
}

func (v *View) drawForm(screen tcell.Screen, width, height int) {
	formWidth := 3*constants.FormFieldWidth + 2*constants.FormFieldGap
	x := (width - formWidth) / 2
	y := height/2 - 3

	bg := tcell.StyleDefault.Background(RgbBackground)
	fillRect(screen, x-2, y-1, formWidth+4, 8, bg)

	drawCentered(screen, width, y, constants.FormTitle, bg.Foreground(RgbFormTitle).Bold(true))

	fieldStyle := tcell.StyleDefault.Background(RgbFormFieldBg).Foreground(RgbFormField)
	focusStyle := tcell.StyleDefault.Background(RgbFormFocusBg).Foreground(RgbFormFocus).Bold(true)
	labelStyle := bg.Foreground(RgbHintText)

	for i := 0; i < fieldCount; i++ {
		fx := x + i*(constants.FormFieldWidth+constants.FormFieldGap)

		style := fieldStyle
		if i == v.form.Focus() {
			style = focusStyle
		}
		text := v.form.Field(i)
		if text == "" {
			text = "0"
		}
		fillRect(screen, fx, y+2, constants.FormFieldWidth, 1, style)
		drawText(screen, fx+(constants.FormFieldWidth-runewidth.StringWidth(text))/2, y+2, text, style)

		label := constants.FormLabels[i]
		drawText(screen, fx+(constants.FormFieldWidth-runewidth.StringWidth(label))/2, y+3, label, labelStyle)

		if i < fieldCount-1 {
			drawText(screen, fx+constants.FormFieldWidth+constants.FormFieldGap/2, y+2, ":", bg.Foreground(RgbFormField))
		}
	}

	if v.notice != "" {
		drawCentered(screen, width, y+5, v.notice, bg.Foreground(RgbNotice))
	}
}

func (v *View) drawHint(screen tcell.Screen, width, height int) {
	if height <= 0 {
		return
	}
	hint := constants.HintIdle
	if v.phase != timer.PhaseIdle {
		hint = constants.HintRunning
	}

	style := tcell.StyleDefault.Background(RgbHintBg).Foreground(RgbHintText)
	fillRect(screen, 0, height-1, width, 1, style)
	drawText(screen, 0, height-1, runewidth.Truncate(hint, width, "…"), style)
}

// fillRect paints blanks; out-of-screen cells are dropped by tcell
func fillRect(screen tcell.Screen, x, y, w, h int, style tcell.Style) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			screen.SetContent(x+dx, y+dy, ' ', nil, style)
		}
	}
}

// drawText writes s at (x, y) honoring wide runes, returns the next column
func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		screen.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}

func drawCentered(screen tcell.Screen, width, y int, s string, style tcell.Style) {
	drawText(screen, (width-runewidth.StringWidth(s))/2, y, s, style)
}
