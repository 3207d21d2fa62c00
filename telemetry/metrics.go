// Package telemetry exposes the frame loop's prometheus collectors.
package telemetry

import (
	"github.com/milk9111/dollhouse/media"
	"github.com/milk9111/dollhouse/sound"
	"github.com/milk9111/dollhouse/viewport"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics implements house.Observer.
type Metrics struct {
	ticks           prometheus.Counter
	commands        prometheus.Counter
	cues            *prometheus.CounterVec
	startFailures   prometheus.Counter
	mediaState      *prometheus.GaugeVec
	viewportChanges prometheus.Counter
	viewportClass   prometheus.Gauge
}

func NewMetrics() *Metrics {
	return &Metrics{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dollhouse_ticks_total",
			Help: "Frame loop ticks run",
		}),
		commands: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dollhouse_render_commands_total",
			Help: "Renderer commands emitted",
		}),
		cues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dollhouse_audio_cues_total",
			Help: "Audio cues handed to the synthesizer",
		}, []string{"cue"}),
		startFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dollhouse_media_start_failures_total",
			Help: "Media playback starts that failed",
		}),
		mediaState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "dollhouse_media_state",
			Help: "Media binding state per node (0=detached, 1=attaching, 2=bound)",
		}, []string{"node"}),
		viewportChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dollhouse_viewport_changes_total",
			Help: "Viewport class changes",
		}),
		viewportClass: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dollhouse_viewport_narrow",
			Help: "1 while the viewport is in the narrow class",
		}),
	}
}

// Collectors returns every collector for registration.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.ticks,
		m.commands,
		m.cues,
		m.startFailures,
		m.mediaState,
		m.viewportChanges,
		m.viewportClass,
	}
}

// Register adds every collector to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) Ticked(commands int) {
	m.ticks.Inc()
	m.commands.Add(float64(commands))
}

func (m *Metrics) CuePlayed(c sound.Cue) {
	m.cues.WithLabelValues(c.Kind.String()).Inc()
}

func (m *Metrics) MediaStateChanged(node string, s media.BindState) {
	m.mediaState.WithLabelValues(node).Set(float64(s))
}

func (m *Metrics) MediaStartFailed(string) {
	m.startFailures.Inc()
}

func (m *Metrics) ViewportChanged(class viewport.Class) {
	m.viewportChanges.Inc()
	if class == viewport.Narrow {
		m.viewportClass.Set(1)
		return
	}
	m.viewportClass.Set(0)
}
