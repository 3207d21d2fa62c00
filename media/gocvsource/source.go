// Package gocvsource decodes video with OpenCV for media resources.
package gocvsource

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/milk9111/dollhouse/internal/log"
	"github.com/milk9111/dollhouse/media"
	"gocv.io/x/gocv"
)

const defaultFPS = 30

var errEmptyURI = errors.New("gocvsource: empty uri")

// Source opens looping, muted video streams.
type Source struct {
	log *slog.Logger
}

func New(l *slog.Logger) *Source {
	if l == nil {
		l = log.L()
	}
	return &Source{log: l}
}

func (s *Source) Open(uri string) (media.Playback, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, errEmptyURI
	}
	return &playback{uri: uri, log: s.log.With("uri", uri)}, nil
}

type playback struct {
	uri string
	log *slog.Logger

	mu      sync.Mutex
	capture *gocv.VideoCapture
	fps     float64
	frame   image.Image
	closed  bool

	loop media.Loop
}

// Start opens the capture on first use and (re)starts the decode loop.
func (p *playback) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return media.ErrReleased
	}
	if p.capture != nil {
		p.startLoopLocked()
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	vc, err := gocv.OpenVideoCapture(p.uri)
	if err != nil {
		return fmt.Errorf("gocvsource: open %s: %w", p.uri, err)
	}
	if !vc.IsOpened() {
		_ = vc.Close()
		return fmt.Errorf("gocvsource: open %s: capture not opened", p.uri)
	}
	if err := ctx.Err(); err != nil {
		_ = vc.Close()
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		_ = vc.Close()
		return media.ErrReleased
	}
	p.capture = vc
	p.fps = vc.Get(gocv.VideoCaptureFPS)
	if p.fps <= 0 {
		p.fps = defaultFPS
	}
	p.startLoopLocked()
	return nil
}

func (p *playback) startLoopLocked() {
	vc := p.capture
	interval := time.Duration(float64(time.Second) / p.fps)
	p.loop.Start(func(stop <-chan struct{}) {
		p.decode(vc, interval, stop)
	})
}

func (p *playback) decode(vc *gocv.VideoCapture, interval time.Duration, stop <-chan struct{}) {
	mat := gocv.NewMat()
	defer mat.Close()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		if ok := vc.Read(&mat); !ok || mat.Empty() {
			// loop back to the first frame
			vc.Set(gocv.VideoCapturePosFrames, 0)
			continue
		}
		img, err := mat.ToImage()
		if err != nil {
			p.log.Debug("gocvsource: convert frame", "err", err)
			continue
		}
		p.mu.Lock()
		if !p.closed {
			p.frame = img
		}
		p.mu.Unlock()
	}
}

// Pause tells the decode loop to stop and returns at once. The last frame
// is kept.
func (p *playback) Pause() {
	p.loop.Stop()
}

func (p *playback) Frame() image.Image {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frame
}

// Close releases the capture without waiting for a blocked read. While a
// decode loop is still inside Read the capture is closed once it exits.
func (p *playback) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.frame = nil
	vc := p.capture
	p.capture = nil
	p.mu.Unlock()

	p.loop.Stop()
	if vc == nil {
		return nil
	}
	done := p.loop.Done()
	select {
	case <-done:
		return vc.Close()
	default:
	}
	go func() {
		<-done
		if err := vc.Close(); err != nil {
			p.log.Debug("gocvsource: close capture", "err", err)
		}
	}()
	return nil
}
