// Package modes maps terminal input to timer commands for the idle form and the running display.
package modes

import (
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pixel-timer/constants"
	"github.com/lixenwraith/pixel-timer/render"
	"github.com/lixenwraith/pixel-timer/timer"
)

// InputHandler processes user input events
type InputHandler struct {
	ctrl *timer.Controller
	view *render.View

	// Mouse buttons held at the previous mouse event, clicks fire on press only
	buttons tcell.ButtonMask
}

// NewInputHandler creates a new input handler
func NewInputHandler(ctrl *timer.Controller, view *render.View) *InputHandler {
	return &InputHandler{
		ctrl: ctrl,
		view: view,
	}
}

// HandleEvent processes a tcell event and returns false if the app should exit
func (h *InputHandler) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKeyEvent(ev)
	case *tcell.EventMouse:
		h.handleMouseEvent(ev)
		return true
	case *tcell.EventResize:
		h.ctrl.Resize(render.Viewport(ev.Size()))
		return true
	}
	return true
}

// handleKeyEvent processes keyboard events
func (h *InputHandler) handleKeyEvent(ev *tcell.EventKey) bool {
	// Handle exit keys
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return false
	case tcell.KeyRune:
		if ev.Rune() == 'q' {
			return false
		}
	}

	if h.ctrl.Phase() == timer.PhaseIdle {
		h.handleFormKey(ev)
	} else {
		h.handleRunningKey(ev)
	}
	return true
}

// handleFormKey edits the HH / MM / SS fields and starts on Enter
func (h *InputHandler) handleFormKey(ev *tcell.EventKey) {
	form := h.view.Form()

	switch ev.Key() {
	case tcell.KeyEnter:
		h.start()
	case tcell.KeyTab, tcell.KeyRight:
		form.Next()
	case tcell.KeyBacktab, tcell.KeyLeft:
		form.Prev()
	case tcell.KeyUp:
		form.Step(1)
	case tcell.KeyDown:
		form.Step(-1)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		form.Backspace()
	case tcell.KeyRune:
		form.Insert(ev.Rune())
	}
}

func (h *InputHandler) start() {
	err := h.ctrl.StartFields(h.view.Form().Values())
	switch {
	case errors.Is(err, timer.ErrInvalidDuration):
		h.view.SetNotice(constants.InvalidDurationNotice)
	case err != nil:
		h.view.SetNotice(err.Error())
	}
}

// handleRunningKey handles the display toggle and reset
func (h *InputHandler) handleRunningKey(ev *tcell.EventKey) {
	if ev.Key() != tcell.KeyRune {
		return
	}
	switch ev.Rune() {
	case ' ':
		h.ctrl.ToggleDisplay()
	case 'r', 'R':
		h.ctrl.Reset()
	}
}

// handleMouseEvent toggles the display on a primary button press
func (h *InputHandler) handleMouseEvent(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && h.buttons&tcell.Button1 == 0
	h.buttons = buttons

	if pressed && h.ctrl.Phase() != timer.PhaseIdle {
		h.ctrl.ToggleDisplay()
	}
}
