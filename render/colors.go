package render

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB palette
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)  // Tokyo Night background
	RgbCellIdle   = tcell.NewRGBColor(52, 56, 77)  // Dim slate
	RgbCellActive = tcell.NewRGBColor(0, 200, 0)   // Normal green
	RgbTimeBoxBg  = tcell.NewRGBColor(0, 0, 0)     // Black
	RgbTimeText   = tcell.NewRGBColor(255, 255, 255)

	RgbHintText = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbHintBg   = tcell.NewRGBColor(36, 40, 59)

	RgbFormTitle   = tcell.NewRGBColor(144, 238, 144) // Light grass green
	RgbFormField   = tcell.NewRGBColor(200, 200, 200)
	RgbFormFieldBg = tcell.NewRGBColor(50, 50, 50)
	RgbFormFocusBg = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbFormFocus   = tcell.NewRGBColor(0, 0, 0)
	RgbNotice      = tcell.NewRGBColor(255, 80, 80) // Normal red
)

// toColorful converts a tcell color for blending
func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// fromColorful converts a blended color back, clamping out-of-gamut values
func fromColorful(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Blend mixes from toward to by t in [0, 1] in sRGB space
func Blend(from, to tcell.Color, t float64) tcell.Color {
	if t <= 0 {
		return from
	}
	if t >= 1 {
		return to
	}
	return fromColorful(toColorful(from).BlendRgb(toColorful(to), t))
}

// ParseHexColor parses #rrggbb, ok is false for malformed input
func ParseHexColor(hex string) (tcell.Color, bool) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return tcell.ColorDefault, false
	}
	return fromColorful(c), true
}
