package common

import "math"

// FullTurn is one revolution in radians.
const FullTurn = 2 * math.Pi

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp restricts v to [lo, hi]. Bounds given in the wrong order are swapped.
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// WrapAngle normalizes a into [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, FullTurn)
	if a < 0 {
		a += FullTurn
	}
	return a
}

// SmoothingFactor is the fraction of the remaining distance covered in dt
// seconds by an exponential decay running at rate per second.
func SmoothingFactor(rate, dt float64) float64 {
	if rate <= 0 || dt <= 0 {
		return 0
	}
	return 1 - math.Exp(-rate*dt)
}

// RateFromPerFrame converts a fixed per-frame blend factor k at fps frames
// per second into the equivalent continuous rate.
func RateFromPerFrame(k, fps float64) float64 {
	if k <= 0 || k >= 1 || fps <= 0 {
		return 0
	}
	return -math.Log(1-k) * fps
}
