package house

import (
	"context"
	"image"
	"sync"

	"github.com/milk9111/dollhouse/media"
	"github.com/milk9111/dollhouse/sound"
	"github.com/milk9111/dollhouse/viewport"
)

type fakePlayback struct {
	mu      sync.Mutex
	block   bool
	started bool
	closed  int
	paused  int
}

func (p *fakePlayback) Start(ctx context.Context) error {
	if p.block {
		<-ctx.Done()
		return ctx.Err()
	}
	p.mu.Lock()
	p.started = true
	p.mu.Unlock()
	return nil
}

func (p *fakePlayback) Pause() {
	p.mu.Lock()
	p.paused++
	p.mu.Unlock()
}

func (p *fakePlayback) Frame() image.Image { return nil }

func (p *fakePlayback) Close() error {
	p.mu.Lock()
	p.closed++
	p.mu.Unlock()
	return nil
}

func (p *fakePlayback) closeCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

type fakeSource struct {
	block  bool
	opened []*fakePlayback
}

func (s *fakeSource) Open(string) (media.Playback, error) {
	pb := &fakePlayback{block: s.block}
	s.opened = append(s.opened, pb)
	return pb, nil
}

type fakeAudio struct {
	plays int
}

func (a *fakeAudio) SampleRate() int { return 8000 }

func (a *fakeAudio) Play(pcm []byte) error {
	a.plays++
	return nil
}

type recordingObserver struct {
	ticks     int
	commands  int
	cues      []sound.Cue
	viewports []viewport.Class
	states    []media.BindState
	failures  int
}

func (o *recordingObserver) MediaStateChanged(_ string, s media.BindState) {
	o.states = append(o.states, s)
}
func (o *recordingObserver) MediaStartFailed(string)          { o.failures++ }
func (o *recordingObserver) CuePlayed(c sound.Cue)            { o.cues = append(o.cues, c) }
func (o *recordingObserver) Ticked(n int)                     { o.ticks++; o.commands += n }
func (o *recordingObserver) ViewportChanged(c viewport.Class) { o.viewports = append(o.viewports, c) }
