package render

import (
	"testing"

	"github.com/milk9111/dollhouse/media"
)

func TestCommandString(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"rotation", Command{Node: "gate.left", Op: OpRotation, Axis: AxisY, Value: -1.0471975511965976}, "gate.left rotation.y=-1.0472"},
		{"intensity", Command{Node: "light.floor", Op: OpIntensity, Value: 2}, "light.floor intensity=2.000"},
		{"texture_cleared", Command{Node: "tv.screen", Op: OpTexture}, "tv.screen texture=none"},
		{"texture_bound", Command{Node: "tv.screen", Op: OpTexture, Binding: &media.Binding{ID: "b1"}}, "tv.screen texture=b1"},
		{"camera", Command{Node: "camera", Op: OpCamera, Vec: Vec3{X: 15, Y: 8, Z: 15}, Value: 50}, "camera camera=(15.000, 8.000, 15.000) fov=50.0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cmd.String(); got != tc.want {
				t.Fatalf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseAxis(t *testing.T) {
	for _, a := range []Axis{AxisX, AxisY, AxisZ} {
		got, err := ParseAxis(a.String())
		if err != nil || got != a {
			t.Fatalf("ParseAxis(%q) = %v, %v", a.String(), got, err)
		}
	}
	if got, err := ParseAxis(""); err != nil || got != AxisY {
		t.Fatalf("ParseAxis(\"\") = %v, %v, want y", got, err)
	}
	if _, err := ParseAxis("w"); err == nil {
		t.Fatal("ParseAxis(\"w\") should fail")
	}
}

func TestBufferCommandsIsCopy(t *testing.T) {
	var b Buffer
	if b.Commands() != nil {
		t.Fatal("empty buffer should return nil")
	}
	b.Push(Command{Node: "light.fan", Op: OpIntensity, Value: 1})
	out := b.Commands()

	b.Reset()
	b.Push(Command{Node: "light.fan", Op: OpIntensity, Value: 0})
	if out[0].Value != 1 {
		t.Fatalf("kept command changed after Reset: %v", out[0])
	}
	if b.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", b.Len())
	}
}

func TestFrameFind(t *testing.T) {
	f := Index([]Command{
		{Node: "camera", Op: OpCamera, Value: 50},
		{Node: "tv.glow", Op: OpIntensity, Value: 0.5},
		{Node: "tv.glow", Op: OpPosition},
	})
	if c, ok := f.Find("tv.glow", OpIntensity); !ok || c.Value != 0.5 {
		t.Fatalf("Find(tv.glow, intensity) = %v, %v", c, ok)
	}
	if _, ok := f.Find("tv.glow", OpRotation); ok {
		t.Fatal("unexpected rotation command")
	}
	if _, ok := f.Find("missing", OpCamera); ok {
		t.Fatal("unexpected command for missing node")
	}
}
