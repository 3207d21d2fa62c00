package anim

import (
	"math"
	"testing"

	"github.com/milk9111/dollhouse/common"
)

func TestAngleConvergesMonotonically(t *testing.T) {
	cases := []struct {
		name    string
		start   float64
		target  float64
		elapsed float64
	}{
		{"open_60hz", 0, math.Pi / 3, 1.0 / 60},
		{"close_144hz", -math.Pi / 3, 0, 1.0 / 144},
		{"open_30hz", 0, -math.Pi / 3, 1.0 / 30},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := Property{Kind: Angle, Current: c.start, Rate: DefaultRate, Min: -math.Pi / 3, Max: math.Pi / 3}
			prev := math.Abs(c.target - p.Current)
			for i := 0; i < 600; i++ {
				p = p.Advance(c.elapsed, c.target, false)
				d := math.Abs(c.target - p.Current)
				if d > prev {
					t.Fatalf("tick %d: distance grew from %v to %v", i, prev, d)
				}
				prev = d
			}
			if prev > 1e-3 {
				t.Fatalf("expected convergence, distance still %v", prev)
			}
		})
	}
}

func TestAngleFrameRateIndependent(t *testing.T) {
	target := math.Pi / 3
	a := Property{Kind: Angle, Rate: DefaultRate}
	b := Property{Kind: Angle, Rate: DefaultRate}
	for i := 0; i < 60; i++ {
		a = a.Advance(1.0/60, target, false)
	}
	for i := 0; i < 144; i++ {
		b = b.Advance(1.0/144, target, false)
	}
	if math.Abs(a.Current-b.Current) > 1e-9 {
		t.Fatalf("expected equal progress after 1s, got %v and %v", a.Current, b.Current)
	}
}

func TestAngleClampsTarget(t *testing.T) {
	p := Property{Kind: Angle, Rate: DefaultRate, Min: -1, Max: 1}
	p = p.Advance(1, 50, false)
	if p.Target != 1 {
		t.Fatalf("expected target clamped to 1, got %v", p.Target)
	}
	if p.Current > 1 {
		t.Fatalf("current overshot clamp: %v", p.Current)
	}
}

func TestAngleRecoversFromInvalidValues(t *testing.T) {
	p := Property{Kind: Angle, Rate: DefaultRate, Current: math.NaN()}
	p = p.Advance(1.0/60, 0.5, false)
	if p.Current != 0.5 {
		t.Fatalf("expected NaN current reset to target, got %v", p.Current)
	}

	p = p.Advance(1.0/60, math.Inf(1), false)
	if p.Target != 0.5 {
		t.Fatalf("expected non-finite target to be ignored, got %v", p.Target)
	}

	before := p
	for _, dt := range []float64{0, -1, math.NaN()} {
		if got := p.Advance(dt, 0, false); got != before {
			t.Fatalf("elapsed %v changed property: %+v", dt, got)
		}
	}
}

func TestAccumulatorConstantVelocity(t *testing.T) {
	cases := []struct {
		name string
		on   bool
		want float64
	}{
		{"on", true, 8},
		{"idle_creep", false, 0.1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := Property{Kind: Accumulator, OnVelocity: 8, OffVelocity: 0.1}
			dt := 1.0 / 60
			for i := 0; i < 30; i++ {
				next := p.Advance(dt, 0, c.on)
				step := common.WrapAngle(next.Current - p.Current)
				if math.Abs(step/dt-c.want) > 1e-6 {
					t.Fatalf("tick %d: velocity %v, want %v", i, step/dt, c.want)
				}
				p = next
			}
			if p.Velocity(c.on) != c.want {
				t.Fatalf("Velocity(%v) = %v", c.on, p.Velocity(c.on))
			}
		})
	}
}

func TestAccumulatorStaysNormalized(t *testing.T) {
	p := Property{Kind: Accumulator, OnVelocity: 8}
	for i := 0; i < 10000; i++ {
		p = p.Advance(1.0/60, 0, true)
		if p.Current < 0 || p.Current >= common.FullTurn {
			t.Fatalf("tick %d: current %v outside [0, 2π)", i, p.Current)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{Angle, Accumulator} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("spring"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
