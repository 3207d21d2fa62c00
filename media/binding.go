package media

import (
	"image"

	"github.com/google/uuid"
)

// Binding wraps a playback handle's live frames for one surface. It plays
// the role of a video texture.
type Binding struct {
	ID   string
	Node string

	playback Playback
	released bool
}

func newBinding(node string, pb Playback) *Binding {
	return &Binding{ID: uuid.NewString(), Node: node, playback: pb}
}

// Frame returns the latest frame, or nil once released or before playback
// produced anything.
func (b *Binding) Frame() image.Image {
	if b == nil || b.released || b.playback == nil {
		return nil
	}
	return b.playback.Frame()
}

func (b *Binding) Released() bool {
	return b == nil || b.released
}

func (b *Binding) release() {
	if b == nil {
		return
	}
	b.released = true
	b.playback = nil
}

// Screen is the default Surface implementation.
type Screen struct {
	node string
	held *Binding
}

func NewScreen(node string) *Screen {
	return &Screen{node: node}
}

func (s *Screen) Node() string { return s.node }

func (s *Screen) Binding() *Binding { return s.held }

func (s *Screen) Attach(b *Binding) error {
	if b == nil {
		return ErrNilBinding
	}
	if b.Released() {
		return ErrReleased
	}
	if s.held != nil && s.held != b {
		return ErrSurfaceBusy
	}
	s.held = b
	return nil
}

func (s *Screen) Detach(b *Binding) bool {
	if b == nil || s.held != b {
		return false
	}
	s.held = nil
	return true
}
