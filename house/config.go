package house

import (
	"time"

	"github.com/milk9111/dollhouse/prefabs"
	"github.com/milk9111/dollhouse/render"
	"github.com/milk9111/dollhouse/sound"
	"github.com/milk9111/dollhouse/state"
	"github.com/milk9111/dollhouse/viewport"
)

// tonesFrom overlays the configured tones on the defaults. Missing entries
// keep the default tone.
func tonesFrom(spec prefabs.ToneTableSpec) sound.Tones {
	tones := sound.DefaultTones()
	overlay := func(dst *sound.Tone, src *prefabs.ToneSpec) {
		if src == nil {
			return
		}
		t := *dst
		if src.StartHz > 0 {
			t.StartHz = src.StartHz
		}
		if src.EndHz > 0 {
			t.EndHz = src.EndHz
		}
		if src.Duration > 0 {
			t.Duration = time.Duration(src.Duration * float64(time.Second))
		}
		if src.Wave != "" {
			if w, err := sound.ParseWaveform(src.Wave); err == nil {
				t.Wave = w
			}
		}
		if src.Gain > 0 {
			t.Gain = src.Gain
		}
		if src.EndGain > 0 {
			t.EndGain = src.EndGain
		}
		*dst = t
	}
	overlay(&tones.Click, spec.Click)
	overlay(&tones.ToggleOn, spec.ToggleOn)
	overlay(&tones.ToggleOff, spec.ToggleOff)
	overlay(&tones.Navigate, spec.Navigate)
	return tones
}

// cameraTable converts the configured cameras. Views or classes left out
// fall back to the defaults through Table.Lookup.
func cameraTable(spec prefabs.ViewportSpec) viewport.Table {
	table := viewport.Table{}
	for name, classes := range spec.Cameras {
		view, err := state.ParseView(name)
		if err != nil {
			continue
		}
		byClass := map[viewport.Class]viewport.CameraConfig{}
		if c := classes.Narrow; c != nil {
			byClass[viewport.Narrow] = cameraConfig(*c)
		}
		if c := classes.Wide; c != nil {
			byClass[viewport.Wide] = cameraConfig(*c)
		}
		table[view] = byClass
	}
	return table
}

func cameraConfig(c prefabs.CameraSpec) viewport.CameraConfig {
	return viewport.CameraConfig{
		Position:    render.Vec3{X: c.Position.X, Y: c.Position.Y, Z: c.Position.Z},
		FieldOfView: c.FieldOfView,
	}
}
