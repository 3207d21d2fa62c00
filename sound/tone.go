// Package sound synthesizes the short procedural cues played on state
// changes.
package sound

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"time"
)

type Waveform int

const (
	Sine Waveform = iota
	Square
)

func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Square:
		return "square"
	default:
		return fmt.Sprintf("waveform(%d)", int(w))
	}
}

func ParseWaveform(s string) (Waveform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sine", "":
		return Sine, nil
	case "square":
		return Square, nil
	default:
		return 0, fmt.Errorf("sound: unknown waveform %q", s)
	}
}

// Tone is one oscillator+envelope pair. Frequency and gain both move
// exponentially from their start to their end value over Duration.
type Tone struct {
	StartHz  float64
	EndHz    float64
	Duration time.Duration
	Wave     Waveform
	Gain     float64
	EndGain  float64
}

const (
	defaultGain    = 0.1
	defaultEndGain = 0.01
)

// bytesPerFrame is 16-bit little endian stereo, the format ebiten's audio
// players consume.
const bytesPerFrame = 4

func expRamp(from, to, t float64) float64 {
	if from <= 0 || to <= 0 || from == to {
		return from + (to-from)*t
	}
	return from * math.Pow(to/from, t)
}

// Render produces PCM samples for t at sampleRate.
func Render(t Tone, sampleRate int) []byte {
	if sampleRate <= 0 || t.Duration <= 0 || t.StartHz <= 0 {
		return nil
	}
	endHz := t.EndHz
	if endHz <= 0 {
		endHz = t.StartHz
	}
	gain := t.Gain
	if gain <= 0 {
		gain = defaultGain
	}
	endGain := t.EndGain
	if endGain <= 0 {
		endGain = defaultEndGain
	}
	gain = math.Min(gain, 1)
	endGain = math.Min(endGain, 1)

	frames := int(t.Duration.Seconds() * float64(sampleRate))
	out := make([]byte, frames*bytesPerFrame)

	phase := 0.0
	dt := 1 / float64(sampleRate)
	for i := 0; i < frames; i++ {
		u := float64(i) / float64(frames)
		freq := expRamp(t.StartHz, endHz, u)
		g := expRamp(gain, endGain, u)

		var v float64
		switch t.Wave {
		case Square:
			if math.Sin(phase) >= 0 {
				v = 1
			} else {
				v = -1
			}
		default:
			v = math.Sin(phase)
		}
		phase += 2 * math.Pi * freq * dt
		if phase > 2*math.Pi {
			phase -= 2 * math.Pi
		}

		s := int16(v * g * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*bytesPerFrame:], uint16(s))
		binary.LittleEndian.PutUint16(out[i*bytesPerFrame+2:], uint16(s))
	}
	return out
}
