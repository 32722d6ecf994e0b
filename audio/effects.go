package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/pixel-timer/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack and release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, zero volume maps to a silent effect
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// createChimeNote is one bell-like note: fundamental plus a quieter octave
func createChimeNote(freq float64, rate beep.SampleRate) beep.Streamer {
	dur := constants.AlarmNoteDuration

	fund := NewOscillator(freq, dur, WaveSine, rate)
	fundShaped := NewEnvelope(fund, dur, constants.AlarmNoteAttack, constants.AlarmNoteRelease, rate)

	over := NewOscillator(freq*2, dur, WaveSine, rate)
	overShaped := NewEnvelope(over, dur, constants.AlarmNoteAttack, constants.AlarmNoteRelease/2, rate)

	return beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)
}

// CreateAlarmSound generates the chime phrase cfg.Repeat times at master volume
func CreateAlarmSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	repeat := cfg.Repeat
	if repeat < 1 {
		repeat = 1
	}

	parts := make([]beep.Streamer, 0, repeat*(2*len(constants.AlarmNotes)+1))
	for r := 0; r < repeat; r++ {
		for _, freq := range constants.AlarmNotes {
			parts = append(parts,
				createChimeNote(freq, rate),
				beep.Silence(rate.N(constants.AlarmNoteGap)),
			)
		}
		parts = append(parts, beep.Silence(rate.N(constants.AlarmPhraseGap)))
	}

	return newVolume(beep.Seq(parts...), cfg.MasterVolume)
}

// AlarmSoundLength is the playing time of CreateAlarmSound for repeat phrases
func AlarmSoundLength(repeat int) time.Duration {
	if repeat < 1 {
		repeat = 1
	}
	note := constants.AlarmNoteDuration + constants.AlarmNoteGap
	phrase := time.Duration(len(constants.AlarmNotes))*note + constants.AlarmPhraseGap
	return time.Duration(repeat) * phrase
}
