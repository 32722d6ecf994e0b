package audio

import (
	"github.com/lixenwraith/pixel-timer/constants"
)

// AudioConfig holds alarm playback settings
type AudioConfig struct {
	Enabled      bool
	MasterVolume float64 // 0.0 - 1.0
	SampleRate   int
	AlarmFile    string // .wav or .mp3, empty plays the built-in chime
	Repeat       int
}

// DefaultAudioConfig returns enabled audio with the built-in chime
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: constants.DefaultMasterVolume,
		SampleRate:   constants.DefaultSampleRate,
		Repeat:       constants.DefaultAlarmRepeat,
	}
}

// VolumeFromPercent converts a 0-100 volume to 0.0-1.0, clamped
func VolumeFromPercent(percent int) float64 {
	v := float64(percent) / 100.0
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}

// normalize repairs out-of-range values in place
func (c *AudioConfig) normalize() {
	if c.SampleRate <= 0 {
		c.SampleRate = constants.DefaultSampleRate
	}
	if c.Repeat < 1 {
		c.Repeat = 1
	}
	if c.MasterVolume < 0 {
		c.MasterVolume = 0
	}
	if c.MasterVolume > 1 {
		c.MasterVolume = 1
	}
}
