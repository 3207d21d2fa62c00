// Package anim drives scalar values toward discrete targets over time.
package anim

import (
	"fmt"
	"math"

	"github.com/milk9111/dollhouse/common"
)

// Kind selects how a Property advances.
type Kind int

const (
	// Angle properties chase their target with exponential smoothing.
	Angle Kind = iota
	// Accumulator properties ignore the target and integrate a velocity.
	Accumulator
)

func (k Kind) String() string {
	switch k {
	case Angle:
		return "angle"
	case Accumulator:
		return "accumulator"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind accepts the names produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "angle", "":
		return Angle, nil
	case "accumulator":
		return Accumulator, nil
	default:
		return 0, fmt.Errorf("anim: unknown property kind %q", s)
	}
}

// DefaultRate is the continuous equivalent of blending 10% of the remaining
// distance per frame at 60Hz.
var DefaultRate = common.RateFromPerFrame(0.1, 60)

// Property is a smoothed or accumulated value. The zero value is an Angle
// property that never moves; set Rate or the velocities before use.
type Property struct {
	Kind    Kind
	Current float64
	Target  float64

	// Rate is the smoothing rate per second for Angle properties.
	Rate float64

	// OnVelocity and OffVelocity are radians per second for Accumulator
	// properties, chosen by the governing flag.
	OnVelocity  float64
	OffVelocity float64

	// Min and Max bound the target. Both zero means unbounded.
	Min float64
	Max float64
}

func (p Property) bounded() bool {
	return p.Min != 0 || p.Max != 0
}

// ClampTarget applies the property bounds to target.
func (p Property) ClampTarget(target float64) float64 {
	if !p.bounded() {
		return target
	}
	return common.Clamp(target, p.Min, p.Max)
}

// Advance moves an Angle property toward target, or integrates an
// Accumulator property using the velocity selected by on. Invalid elapsed
// times leave the property unchanged.
func (p Property) Advance(elapsed, target float64, on bool) Property {
	if !common.Finite(elapsed) || elapsed <= 0 {
		return p
	}

	switch p.Kind {
	case Accumulator:
		v := p.OffVelocity
		if on {
			v = p.OnVelocity
		}
		if !common.Finite(p.Current) {
			p.Current = 0
		}
		if common.Finite(v) {
			p.Current = common.WrapAngle(p.Current + v*elapsed)
		}
		return p
	default:
		if common.Finite(target) {
			p.Target = p.ClampTarget(target)
		}
		if !common.Finite(p.Current) {
			p.Current = p.Target
			return p
		}
		k := common.SmoothingFactor(p.Rate, elapsed)
		p.Current += (p.Target - p.Current) * k
		return p
	}
}

// Velocity reports the angular velocity an Accumulator property runs at for
// the given flag. Angle properties report zero.
func (p Property) Velocity(on bool) float64 {
	if p.Kind != Accumulator {
		return 0
	}
	if on {
		return p.OnVelocity
	}
	return p.OffVelocity
}

// Settled reports whether an Angle property is within eps of its target.
func (p Property) Settled(eps float64) bool {
	if p.Kind != Angle {
		return false
	}
	return math.Abs(p.Target-p.Current) <= eps
}
