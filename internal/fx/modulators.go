package fx

import (
	"math"

	"juice/internal/canvas"
)

// Shake is a decaying sinusoidal screen offset. Idle until triggered,
// active while the timer runs, idle again at zero.
type Shake struct {
	X, Y float64 // current offset

	intensity float64
	timer     float64
	duration  float64
	clock     float64
}

// Trigger starts or strengthens a shake; stronger/longer requests win.
func (s *Shake) Trigger(intensity, duration float64) {
	intensity, duration = finite(intensity), finite(duration)
	if intensity <= 0 || duration <= 0 {
		return
	}
	if s.timer <= 0 {
		s.intensity = 0
	}
	if intensity > s.intensity {
		s.intensity = intensity
	}
	if duration > s.timer {
		s.timer = duration
		s.duration = duration
	}
}

func (s *Shake) Active() bool { return s.timer > 0 }

func (s *Shake) Update(dt float64) {
	if s.timer <= 0 {
		s.X, s.Y = 0, 0
		s.intensity = 0
		s.clock = 0
		return
	}
	s.timer -= dt
	if s.timer <= 0 {
		s.timer = 0
		s.X, s.Y = 0, 0
		s.intensity = 0
		s.clock = 0
		return
	}
	s.clock += dt
	decay := s.timer / s.duration
	mag := s.intensity * decay * decay
	s.X = mag * math.Sin(s.clock*ShakeFreqX*2*math.Pi)
	s.Y = mag * math.Sin(s.clock*ShakeFreqY*2*math.Pi+1.3)
}

func (s *Shake) Reset() { *s = Shake{} }

// Flash is a full-screen tint whose alpha falls linearly to zero.
type Flash struct {
	col      canvas.Color
	peak     float64
	timer    float64
	duration float64
}

func (f *Flash) Trigger(col canvas.Color, peak, duration float64) {
	peak, duration = Clamp01(finite(peak)), finite(duration)
	if peak <= 0 || duration <= 0 {
		return
	}
	// Keep the brighter of the running and the new flash.
	if f.Alpha() > peak {
		return
	}
	f.col = col
	f.peak = peak
	f.timer = duration
	f.duration = duration
}

func (f *Flash) Active() bool { return f.timer > 0 }

// Alpha is the current overlay opacity.
func (f *Flash) Alpha() float64 {
	if f.timer <= 0 || f.duration <= 0 {
		return 0
	}
	return f.peak * f.timer / f.duration
}

func (f *Flash) Update(dt float64) {
	if f.timer <= 0 {
		return
	}
	f.timer -= dt
	if f.timer < 0 {
		f.timer = 0
	}
}

func (f *Flash) Render(c canvas.Canvas, bounds canvas.Rect, paint *canvas.Paint) {
	a := f.Alpha()
	if a <= 0 {
		return
	}
	paint.SetFill(f.col.WithAlpha(a))
	paint.Blur = 0
	c.DrawRect(bounds, paint)
}

func (f *Flash) Reset() { *f = Flash{} }

// Vignette darkens the screen edges. SetTarget retargets; the current
// strength approaches the target exponentially at VignetteRate.
type Vignette struct {
	current float64
	target  float64
}

func (v *Vignette) SetTarget(strength float64) {
	v.target = clampF(finite(strength), 0, MaxVignette)
}

func (v *Vignette) Target() float64  { return v.target }
func (v *Vignette) Current() float64 { return v.current }

func (v *Vignette) Active() bool { return v.current > 0.001 || v.target > 0 }

func (v *Vignette) Update(dt float64) {
	k := 1 - math.Exp(-VignetteRate*dt)
	v.current += (v.target - v.current) * k
	if math.Abs(v.target-v.current) < 1e-4 {
		v.current = v.target
	}
}

// Render draws nested blurred edge bands whose opacity grows toward the
// border.
func (v *Vignette) Render(c canvas.Canvas, bounds canvas.Rect, paint *canvas.Paint) {
	if v.current <= 0.001 {
		return
	}
	band := math.Min(bounds.W, bounds.H) * 0.09
	for i := 0; i < 4; i++ {
		a := v.current * float64(4-i) / 4 * 0.55
		paint.SetStroke(canvas.Palette.Black.WithAlpha(a), band)
		paint.Blur = band * 0.8
		c.DrawRect(bounds.Inset(band*(float64(i)+0.5)), paint)
	}
}

func (v *Vignette) Reset() { *v = Vignette{} }
