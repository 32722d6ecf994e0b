package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"

	"github.com/lixenwraith/pixel-timer/constants"
)

// Sentinel errors
var (
	ErrUnsupportedFormat = errors.New("unsupported alarm format")
	ErrEmptyAlarm        = errors.New("alarm file has no samples")
)

// LoadAlarmFile decodes a .wav or .mp3 file fully into memory at rate
func LoadAlarmFile(path string, rate beep.SampleRate) (*beep.Buffer, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".wav" && ext != ".mp3" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open alarm: %w", err)
	}
	defer f.Close()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("decode alarm %s: %w", filepath.Base(path), err)
	}

	var s beep.Streamer = streamer
	if format.SampleRate != rate {
		s = beep.Resample(constants.ResampleQuality, format.SampleRate, rate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{
		SampleRate:  rate,
		NumChannels: format.NumChannels,
		Precision:   format.Precision,
	})
	buf.Append(s)

	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode alarm %s: %w", filepath.Base(path), err)
	}
	if buf.Len() == 0 {
		return nil, ErrEmptyAlarm
	}
	return buf, nil
}

// bufferedAlarm plays buf cfg.Repeat times separated by the phrase gap
func bufferedAlarm(buf *beep.Buffer, cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	repeat := cfg.Repeat
	if repeat < 1 {
		repeat = 1
	}

	parts := make([]beep.Streamer, 0, 2*repeat)
	for r := 0; r < repeat; r++ {
		parts = append(parts,
			buf.Streamer(0, buf.Len()),
			beep.Silence(rate.N(constants.AlarmPhraseGap)),
		)
	}
	return newVolume(beep.Seq(parts...), cfg.MasterVolume)
}
