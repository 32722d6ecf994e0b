package constants

import "time"

// Audio output
const (
	// DefaultSampleRate is the speaker sample rate
	DefaultSampleRate = 48000

	// SpeakerBufferDuration is the speaker buffer length, trades latency for underruns
	SpeakerBufferDuration = 100 * time.Millisecond

	// DefaultMasterVolume is the alarm volume in [0, 1]
	DefaultMasterVolume = 0.7

	// DefaultAlarmRepeat is how many times the alarm phrase plays
	DefaultAlarmRepeat = 4

	// ResampleQuality is passed to beep.Resample for alarm files
	ResampleQuality = 4
)

// Alarm chime timing
const (
	AlarmNoteDuration = 180 * time.Millisecond
	AlarmNoteAttack   = 5 * time.Millisecond
	AlarmNoteRelease  = 120 * time.Millisecond
	AlarmNoteGap      = 60 * time.Millisecond
	AlarmPhraseGap    = 400 * time.Millisecond
)

// AlarmNotes are the chime frequencies in Hz (E6, C6, G6)
var AlarmNotes = []float64{1318.51, 1046.50, 1567.98}
