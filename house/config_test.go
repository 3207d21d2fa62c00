package house

import (
	"testing"
	"time"

	"github.com/milk9111/dollhouse/prefabs"
	"github.com/milk9111/dollhouse/sound"
)

func TestTonesFromKeepsUnsetFields(t *testing.T) {
	defaults := sound.DefaultTones()

	tests := []struct {
		name string
		spec prefabs.ToneTableSpec
		got  func(sound.Tones) sound.Tone
		want sound.Tone
	}{
		{
			name: "navigate_duration_only",
			spec: prefabs.ToneTableSpec{Navigate: &prefabs.ToneSpec{Duration: 0.25}},
			got:  func(t sound.Tones) sound.Tone { return t.Navigate },
			want: func() sound.Tone {
				n := defaults.Navigate
				n.Duration = 250 * time.Millisecond
				return n
			}(),
		},
		{
			name: "navigate_new_sweep",
			spec: prefabs.ToneTableSpec{Navigate: &prefabs.ToneSpec{StartHz: 2000, EndHz: 500}},
			got:  func(t sound.Tones) sound.Tone { return t.Navigate },
			want: func() sound.Tone {
				n := defaults.Navigate
				n.StartHz, n.EndHz = 2000, 500
				return n
			}(),
		},
		{
			name: "click_untouched",
			spec: prefabs.ToneTableSpec{Navigate: &prefabs.ToneSpec{Gain: 0.2}},
			got:  func(t sound.Tones) sound.Tone { return t.Click },
			want: defaults.Click,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.got(tonesFrom(tc.spec)); got != tc.want {
				t.Fatalf("tone = %+v, want %+v", got, tc.want)
			}
		})
	}
}
