package media

import "sync"

// Loop runs one decode goroutine at a time for a playback. Stop never
// waits: a loop blocked in I/O finishes in the background, and the next
// Start holds its goroutine back until the previous one has exited.
type Loop struct {
	mu   sync.Mutex
	stop chan struct{}
	last chan struct{}
}

// Start runs fn on a new goroutine unless one is already running. fn must
// return soon after stop is closed, though it may finish a blocking call
// first.
func (l *Loop) Start(fn func(stop <-chan struct{})) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stop != nil {
		return
	}
	stop, done := make(chan struct{}), make(chan struct{})
	prev := l.last
	go func() {
		defer close(done)
		if prev != nil {
			select {
			case <-prev:
			case <-stop:
				<-prev
				return
			}
		}
		fn(stop)
	}()
	l.stop, l.last = stop, done
}

// Stop signals the running loop, if any, and returns at once.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stop != nil {
		close(l.stop)
		l.stop = nil
	}
}

// Running reports whether a loop was started and not yet stopped.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stop != nil
}

// Done returns a channel closed once every started loop has exited.
func (l *Loop) Done() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.last == nil {
		c := make(chan struct{})
		close(c)
		return c
	}
	return l.last
}
