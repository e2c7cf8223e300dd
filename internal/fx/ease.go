package fx

import "math"

// Easing functions take progress in [0,1] (callers clamp) and return
// eased progress. OutBack deliberately overshoots past 1.

func Linear(t float64) float64 { return t }

func OutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

func InOutQuint(t float64) float64 {
	if t < 0.5 {
		return 16 * t * t * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u*u*u/2
}

// DefaultOvershoot is the classic 1.70158 back constant (~10% overshoot).
const DefaultOvershoot = 1.70158

// OutBack overshoots the target before settling; s controls the amount.
func OutBack(t, s float64) float64 {
	c3 := s + 1
	u := t - 1
	return 1 + c3*u*u*u + s*u*u
}

// PingPong is a triangle wave over [0,1] peaking at 0.5.
func PingPong(t float64) float64 {
	if t < 0.5 {
		return t * 2
	}
	return (1 - t) * 2
}

func Smoothstep(t float64) float64 {
	t = Clamp01(t)
	return t * t * (3 - 2*t)
}

// Lerp interpolates a→b with t clamped to [0,1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*Clamp01(t)
}

func Clamp01(t float64) float64 {
	if t < 0 || math.IsNaN(t) {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Window maps t into the sub-range [start,end], clamped to [0,1].
func Window(t, start, end float64) float64 {
	if end <= start {
		if t >= end {
			return 1
		}
		return 0
	}
	return Clamp01((t - start) / (end - start))
}
