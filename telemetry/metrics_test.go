package telemetry

import (
	"testing"

	"github.com/milk9111/dollhouse/house"
	"github.com/milk9111/dollhouse/media"
	"github.com/milk9111/dollhouse/sound"
	"github.com/milk9111/dollhouse/viewport"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

var _ house.Observer = (*Metrics)(nil)

func TestMetricsRecord(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	if err := m.Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}

	m.Ticked(10)
	m.Ticked(5)
	m.CuePlayed(sound.Cue{Kind: sound.Click})
	m.CuePlayed(sound.Cue{Kind: sound.Toggle, On: true})
	m.CuePlayed(sound.Cue{Kind: sound.Toggle})
	m.MediaStateChanged("tv.screen", media.Bound)
	m.MediaStartFailed("tv.screen")
	m.ViewportChanged(viewport.Narrow)

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"ticks", m.ticks, 2},
		{"commands", m.commands, 15},
		{"toggle_cues", m.cues.WithLabelValues(sound.Toggle.String()), 2},
		{"click_cues", m.cues.WithLabelValues(sound.Click.String()), 1},
		{"media_state", m.mediaState.WithLabelValues("tv.screen"), float64(media.Bound)},
		{"start_failures", m.startFailures, 1},
		{"viewport_changes", m.viewportChanges, 1},
		{"narrow", m.viewportClass, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := testutil.ToFloat64(tc.c); got != tc.want {
				t.Fatalf("%s = %v, want %v", tc.name, got, tc.want)
			}
		})
	}
}

func TestRegisterTwiceFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := NewMetrics().Register(reg); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := NewMetrics().Register(reg); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}
