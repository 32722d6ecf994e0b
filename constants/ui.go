package constants

// Hint bar text per screen
const (
	HintIdle    = " enter: start  tab: next field  up/down: adjust  esc: quit "
	HintRunning = " space/click: toggle time  r: reset  q: quit "
)

// Settings form
const (
	FormTitle      = "PIXEL TIMER"
	FormFieldWidth = 6
	FormFieldGap   = 3
)

// FormLabels are the captions under the HH/MM/SS fields
var FormLabels = [3]string{"hours", "minutes", "seconds"}
