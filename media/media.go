// Package media binds streaming video to a renderable surface.
//
// A Resource walks Detached -> Attaching -> Bound -> Detached. Opening and
// releasing happen on the update loop; only the playback start runs on its
// own goroutine, and its result is picked up by the next Poll.
package media

import (
	"context"
	"errors"
	"fmt"
	"image"
)

var (
	ErrSurfaceBusy = errors.New("media: surface already holds a binding")
	ErrReleased    = errors.New("media: binding released")
	ErrNilBinding  = errors.New("media: binding is nil")
)

// BindState is the lifecycle position of a Resource.
type BindState int

const (
	Detached BindState = iota
	Attaching
	Bound
)

func (s BindState) String() string {
	switch s {
	case Detached:
		return "detached"
	case Attaching:
		return "attaching"
	case Bound:
		return "bound"
	default:
		return fmt.Sprintf("bind_state(%d)", int(s))
	}
}

// Playback is a handle on one media stream.
type Playback interface {
	// Start begins playback. It may block on I/O and is never called on the
	// update loop. Cancelling ctx abandons the start.
	Start(ctx context.Context) error
	// Pause and Close run on the update loop and must not wait on I/O.
	Pause()
	// Frame returns the most recent decoded frame, or nil before the first.
	Frame() image.Image
	Close() error
}

// Source opens playback handles. Open must not block on I/O.
type Source interface {
	Open(uri string) (Playback, error)
}

// Surface is a renderable quad that shows at most one binding.
type Surface interface {
	Node() string
	Attach(b *Binding) error
	// Detach clears b if it is the held binding and reports whether it was.
	Detach(b *Binding) bool
	Binding() *Binding
}

// Observer receives lifecycle notifications, typically for metrics.
type Observer interface {
	MediaStateChanged(node string, s BindState)
	MediaStartFailed(node string)
}
