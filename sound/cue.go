package sound

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/milk9111/dollhouse/internal/log"
)

type CueKind int

const (
	Click CueKind = iota
	Toggle
	Navigate
)

func (k CueKind) String() string {
	switch k {
	case Click:
		return "click"
	case Toggle:
		return "toggle"
	case Navigate:
		return "navigate"
	default:
		return fmt.Sprintf("cue(%d)", int(k))
	}
}

// Cue is a request for one transient tone. On only matters for Toggle.
type Cue struct {
	Kind CueKind
	On   bool
}

// Tones is the tone table for every cue.
type Tones struct {
	Click     Tone
	ToggleOn  Tone
	ToggleOff Tone
	Navigate  Tone
}

// DefaultTones matches the house controller's original sounds.
func DefaultTones() Tones {
	return Tones{
		Click:     Tone{StartHz: 800, Duration: 100 * time.Millisecond, Wave: Square, Gain: defaultGain, EndGain: defaultEndGain},
		ToggleOn:  Tone{StartHz: 600, Duration: 200 * time.Millisecond, Wave: Sine, Gain: defaultGain, EndGain: defaultEndGain},
		ToggleOff: Tone{StartHz: 400, Duration: 200 * time.Millisecond, Wave: Sine, Gain: defaultGain, EndGain: defaultEndGain},
		Navigate:  Tone{StartHz: 1000, EndHz: 400, Duration: 150 * time.Millisecond, Wave: Sine, Gain: defaultGain, EndGain: defaultEndGain},
	}
}

// For picks the tone for c.
func (t Tones) For(c Cue) Tone {
	switch c.Kind {
	case Toggle:
		if c.On {
			return t.ToggleOn
		}
		return t.ToggleOff
	case Navigate:
		return t.Navigate
	default:
		return t.Click
	}
}

// Engine plays PCM buffers. Implementations own the output device.
type Engine interface {
	SampleRate() int
	// Play starts pcm immediately and returns without waiting for it.
	Play(pcm []byte) error
}

// Synthesizer turns cues into tones on an engine. It keeps no state between
// calls; callers decide whether sound is enabled.
type Synthesizer struct {
	engine Engine
	tones  Tones
	log    *slog.Logger
}

func NewSynthesizer(engine Engine, tones Tones, l *slog.Logger) *Synthesizer {
	if l == nil {
		l = log.L()
	}
	return &Synthesizer{engine: engine, tones: tones, log: l}
}

// SetTones swaps the tone table, used on scene reload.
func (s *Synthesizer) SetTones(t Tones) {
	if s == nil {
		return
	}
	s.tones = t
}

// Play renders c and hands it to the engine. Failures are logged and
// dropped.
func (s *Synthesizer) Play(c Cue) {
	if s == nil || s.engine == nil {
		return
	}
	pcm := Render(s.tones.For(c), s.engine.SampleRate())
	if len(pcm) == 0 {
		return
	}
	if err := s.engine.Play(pcm); err != nil {
		s.log.Debug("sound: play cue", "cue", c.Kind.String(), "err", err)
	}
}
