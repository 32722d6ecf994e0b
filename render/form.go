package render

import (
	"strconv"

	"github.com/lixenwraith/pixel-timer/constants"
	"github.com/lixenwraith/pixel-timer/timer"
)

// Form field indices
const (
	FieldHours = iota
	FieldMinutes
	FieldSeconds
	fieldCount
)

// SettingsForm holds the HH / MM / SS inputs shown while idle
type SettingsForm struct {
	fields [fieldCount]string
	focus  int
}

// NewSettingsForm returns an empty form focused on hours
func NewSettingsForm() *SettingsForm {
	return &SettingsForm{}
}

// Insert appends a digit to the focused field, returns false if rejected
func (f *SettingsForm) Insert(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}
	field := &f.fields[f.focus]
	if len(*field) >= constants.FieldMaxDigits {
		return false
	}
	*field += string(r)
	return true
}

// Backspace removes the last digit of the focused field
func (f *SettingsForm) Backspace() {
	field := &f.fields[f.focus]
	if n := len(*field); n > 0 {
		*field = (*field)[:n-1]
	}
}

// Next moves focus right, wrapping
func (f *SettingsForm) Next() {
	f.focus = (f.focus + 1) % fieldCount
}

// Prev moves focus left, wrapping
func (f *SettingsForm) Prev() {
	f.focus = (f.focus + fieldCount - 1) % fieldCount
}

// Step adds delta to the focused value, clamped to what the field can hold
func (f *SettingsForm) Step(delta int) {
	limit := 1
	for i := 0; i < constants.FieldMaxDigits; i++ {
		limit *= 10
	}

	v := timer.ParseField(f.fields[f.focus]) + delta
	if v < 0 {
		v = 0
	}
	if v >= limit {
		v = limit - 1
	}
	f.fields[f.focus] = strconv.Itoa(v)
}

// Focus returns the focused field index
func (f *SettingsForm) Focus() int {
	return f.focus
}

// Field returns the raw text of field i
func (f *SettingsForm) Field(i int) string {
	if i < 0 || i >= fieldCount {
		return ""
	}
	return f.fields[i]
}

// Values returns hours, minutes and seconds as typed
func (f *SettingsForm) Values() (hours, minutes, seconds string) {
	return f.fields[FieldHours], f.fields[FieldMinutes], f.fields[FieldSeconds]
}
