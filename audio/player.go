package audio

import (
	"log"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/pixel-timer/constants"
)

// Player plays the completion alarm through the system speaker.
// Every method is safe without Initialize: the player then stays silent.
type Player struct {
	mu     sync.Mutex
	config *AudioConfig
	rate   beep.SampleRate
	mixer  *beep.Mixer

	alarm  *beep.Ctrl
	sample *beep.Buffer // decoded AlarmFile, nil uses the chime

	initialized bool
}

// NewPlayer creates a player; a nil config uses defaults
func NewPlayer(cfg *AudioConfig) *Player {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	c := *cfg
	c.normalize()

	return &Player{
		config: &c,
		rate:   beep.SampleRate(c.SampleRate),
		mixer:  &beep.Mixer{},
	}
}

// Initialize decodes the alarm file and opens the speaker.
// A disabled config skips the speaker and returns nil.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.config.Enabled {
		return nil
	}

	p.loadSample()

	err := speaker.Init(p.rate, p.rate.N(constants.SpeakerBufferDuration))
	if err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// loadSample falls back to the chime when the file cannot be used
func (p *Player) loadSample() {
	if p.config.AlarmFile == "" {
		return
	}
	buf, err := LoadAlarmFile(p.config.AlarmFile, p.rate)
	if err != nil {
		log.Printf("audio: %v, using built-in chime", err)
		return
	}
	p.sample = buf
	log.Printf("audio: loaded %s (%v)", p.config.AlarmFile, p.rate.D(buf.Len()))
}

// AlarmStreamer builds a fresh alarm stream
func (p *Player) AlarmStreamer() beep.Streamer {
	if p.sample != nil {
		return bufferedAlarm(p.sample, p.config)
	}
	return CreateAlarmSound(p.config)
}

// PlayAlarm starts the alarm, replacing one already playing
func (p *Player) PlayAlarm() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	ctrl := &beep.Ctrl{Streamer: p.AlarmStreamer()}

	speaker.Lock()
	if p.alarm != nil {
		// A nil streamer drains, the mixer drops it
		p.alarm.Streamer = nil
	}
	p.mixer.Add(ctrl)
	speaker.Unlock()

	p.alarm = ctrl
}

// StopAlarm silences the alarm if playing
func (p *Player) StopAlarm() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.alarm == nil {
		return
	}

	speaker.Lock()
	p.alarm.Streamer = nil
	speaker.Unlock()

	p.alarm = nil
}

// Enabled reports whether the speaker is open
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Close stops all sound and releases the speaker
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	p.alarm = nil
	p.initialized = false
}
