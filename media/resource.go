package media

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/milk9111/dollhouse/internal/log"
)

type Option func(*Resource)

func WithLogger(l *slog.Logger) Option {
	return func(r *Resource) {
		if l != nil {
			r.log = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(r *Resource) { r.observer = o }
}

// Resource ties one media source to one surface.
type Resource struct {
	URI string

	source  Source
	surface Surface

	state    BindState
	playback Playback
	binding  *Binding

	cancel  context.CancelFunc
	pending chan error

	// armed is cleared by a failed attach and set again by the next off,
	// so a failure is retried on the next on transition rather than every
	// tick.
	armed    bool
	failures int

	log      *slog.Logger
	observer Observer
}

func NewResource(uri string, src Source, surface Surface, opts ...Option) *Resource {
	r := &Resource{
		URI:     uri,
		source:  src,
		surface: surface,
		armed:   true,
		log:     log.L(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With("node", surface.Node(), "uri", uri)
	return r
}

func (r *Resource) State() BindState { return r.state }

func (r *Resource) Binding() *Binding { return r.binding }

func (r *Resource) Surface() Surface { return r.surface }

// Failures counts playback starts that did not succeed.
func (r *Resource) Failures() int { return r.failures }

// Reconcile drives the resource toward the governing flag. It never blocks.
func (r *Resource) Reconcile(on bool) {
	r.Poll()
	switch {
	case on && r.state == Detached && r.armed:
		r.Attach()
	case !on:
		r.armed = true
		if r.state != Detached {
			r.Detach()
		}
	}
}

// Attach opens playback, binds it to the surface and starts playback in the
// background. It is a no-op unless the resource is Detached.
func (r *Resource) Attach() {
	if r.state != Detached {
		return
	}
	if r.source == nil || r.surface == nil {
		return
	}

	pb, err := r.source.Open(r.URI)
	if err != nil {
		r.fail(err)
		return
	}

	b := newBinding(r.surface.Node(), pb)
	if err := r.surface.Attach(b); err != nil {
		_ = pb.Close()
		r.fail(err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- pb.Start(ctx)
	}()

	r.playback = pb
	r.binding = b
	r.cancel = cancel
	r.pending = done
	r.setState(Attaching)
}

// Poll picks up the result of an in-flight playback start.
func (r *Resource) Poll() {
	if r.state != Attaching || r.pending == nil {
		return
	}
	select {
	case err := <-r.pending:
		r.pending = nil
		if err != nil {
			r.failures++
			r.log.Debug("media: playback start failed", "err", err)
			if r.observer != nil {
				r.observer.MediaStartFailed(r.surface.Node())
			}
			return
		}
		r.setState(Bound)
	default:
	}
}

// Detach stops playback and releases the binding from any state. Calling it
// on a detached resource does nothing. A close error is logged.
func (r *Resource) Detach() {
	if err := r.detach(); err != nil {
		r.log.Debug("media: close playback", "err", err)
	}
}

// Close releases everything the resource holds and returns the playback
// close error, if any.
func (r *Resource) Close() error {
	return r.detach()
}

func (r *Resource) detach() error {
	if r.state == Detached {
		return nil
	}
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.pending = nil

	if r.playback != nil {
		r.playback.Pause()
	}
	if r.binding != nil {
		r.surface.Detach(r.binding)
		r.binding.release()
		r.binding = nil
	}
	var err error
	if r.playback != nil {
		if cerr := r.playback.Close(); cerr != nil {
			err = fmt.Errorf("media: close %s: %w", r.URI, cerr)
		}
		r.playback = nil
	}
	r.setState(Detached)
	return err
}

func (r *Resource) fail(err error) {
	r.failures++
	r.armed = false
	r.log.Debug("media: attach failed", "err", err)
	if r.observer != nil {
		r.observer.MediaStartFailed(r.surface.Node())
	}
}

func (r *Resource) setState(s BindState) {
	if r.state == s {
		return
	}
	r.log.Debug("media: state", "from", r.state.String(), "to", s.String())
	r.state = s
	if r.observer != nil {
		r.observer.MediaStateChanged(r.surface.Node(), s)
	}
}
