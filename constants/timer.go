package constants

import "time"

// Glow Animator
const (
	// GlowSteps is the number of ramp steps before the percentage holds
	GlowSteps = 10

	// GlowRamp is the time span of all ramp steps
	GlowRamp = 10 * time.Second

	// GlowMinPercentage is the fraction of cells pulsed on the first step
	GlowMinPercentage = 0.1

	// GlowMaxPercentage is the fraction of cells pulsed once the ramp completes
	GlowMaxPercentage = 0.5

	// GlowFadeIn is the transition time from base color to the pulse color
	GlowFadeIn = 1 * time.Second

	// GlowFadeOut is the transition time back to the base color
	GlowFadeOut = 1 * time.Second

	// GlowMaxDelay bounds the random per-cell delay before a pulse starts
	GlowMaxDelay = 1 * time.Second
)

// Duration input
const (
	// FieldMaxDigits is the digit limit for each of the HH/MM/SS fields
	FieldMaxDigits = 4

	// InvalidDurationNotice is shown when a start is rejected
	InvalidDurationNotice = "Please enter a time greater than 0."
)
