// Package speaker plays synthesized cues through ebiten's audio context.
package speaker

import (
	"errors"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const DefaultSampleRate = 44100

var (
	ErrClosed = errors.New("speaker: engine closed")
	// ErrAlreadyOpen is returned when a second engine is opened; ebiten
	// allows one audio context per process.
	ErrAlreadyOpen = errors.New("speaker: audio context already open")
)

var opened sync.Mutex

// Engine owns the process audio context and every player created from it.
// Close releases the players and frees the context slot for a later Open.
type Engine struct {
	ctx     *audio.Context
	players []*audio.Player
	closed  bool
}

var shared *audio.Context

// Open acquires the audio output.
func Open(sampleRate int) (*Engine, error) {
	if !opened.TryLock() {
		return nil, ErrAlreadyOpen
	}
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if shared == nil {
		shared = audio.NewContext(sampleRate)
	}
	return &Engine{ctx: shared}, nil
}

func (e *Engine) SampleRate() int {
	return e.ctx.SampleRate()
}

// Play starts pcm on a fresh player. Finished players are dropped on the
// next call.
func (e *Engine) Play(pcm []byte) error {
	if e.closed {
		return ErrClosed
	}
	e.prune()
	p := e.ctx.NewPlayerFromBytes(pcm)
	p.Play()
	e.players = append(e.players, p)
	return nil
}

func (e *Engine) prune() {
	live := e.players[:0]
	for _, p := range e.players {
		if p.IsPlaying() {
			live = append(live, p)
			continue
		}
		_ = p.Close()
	}
	for i := len(live); i < len(e.players); i++ {
		e.players[i] = nil
	}
	e.players = live
}

// Active reports how many cues are still sounding.
func (e *Engine) Active() int {
	e.prune()
	return len(e.players)
}

// Close stops every player and releases the output.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	var errs []error
	for _, p := range e.players {
		p.Pause()
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	e.players = nil
	opened.Unlock()
	return errors.Join(errs...)
}
