package fx

import "math"

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// finite maps NaN and ±Inf to 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// sanitizeDT rejects negative or NaN steps and caps long frames.
func sanitizeDT(dt float64) (float64, bool) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return 0, false
	}
	if dt > MaxStep {
		dt = MaxStep
	}
	return dt, true
}

// wrap maps v into [lo, lo+span) toroidally.
func wrap(v, lo, span float64) float64 {
	if span <= 0 {
		return v
	}
	v = math.Mod(v-lo, span)
	if v < 0 {
		v += span
	}
	if v >= span {
		v = 0
	}
	return v + lo
}

func approach(cur, target, maxDelta float64) float64 {
	if cur < target {
		cur += maxDelta
		if cur > target {
			cur = target
		}
		return cur
	}
	if cur > target {
		cur -= maxDelta
		if cur < target {
			cur = target
		}
	}
	return cur
}

// bezier2 evaluates a quadratic Bezier at t.
func bezier2(p0, c, p1, t float64) float64 {
	u := 1 - t
	return u*u*p0 + 2*u*t*c + t*t*p1
}
