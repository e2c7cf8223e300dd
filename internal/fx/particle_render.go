package fx

import (
	"math"

	"juice/internal/canvas"
)

// minAlpha keeps fade-in kinds drawing from the frame their delay ends.
const minAlpha = 1.0 / 255

// Render draws every live particle that is past its delay. It never
// mutates the pool, so calling it several times per tick is safe.
func (ps *Pool) Render(c canvas.Canvas, b *canvas.Brush) {
	for i := 0; i < ps.n; i++ {
		p := &ps.items[i]
		if p.Age < 0 {
			continue
		}
		renderParticle(c, b, p, math.Max(p.Alpha(), minAlpha))
	}
}

func renderParticle(c canvas.Canvas, b *canvas.Brush, p *Particle, a float64) {
	t := p.Progress()
	switch p.Kind {
	case KindBurst:
		b.Stroke.SetStroke(p.Col.WithAlpha(a), math.Max(0.5, p.Size*(1-t)))
		b.Stroke.Blur = 0
		c.DrawCircle(p.X, p.Y, OutCubic(t)*p.TX, &b.Stroke)

	case KindCoin:
		renderCoin(c, b, p, t)

	case KindSparkle:
		s := p.Size * (0.65 + 0.35*math.Sin(p.Phase+p.Age*p.Spin))
		starPath(&b.Path, p.X, p.Y, s)
		b.Fill.SetFill(p.Col.WithAlpha(a))
		b.Fill.Blur = 0
		c.DrawPath(&b.Path, &b.Fill)

	case KindNumberPop:
		scale := OutBack(Clamp01(t/0.25), DefaultOvershoot)
		c.Save()
		c.Translate(p.X, p.Y)
		c.Scale(scale, scale)
		b.Text.Color = canvas.Palette.Black.WithAlpha(a * 0.5)
		b.Text.TextSize = p.Size
		b.Text.Align = canvas.AlignCenter
		c.DrawText(p.Text, 1, 1, &b.Text)
		b.Text.Color = p.Col.WithAlpha(a)
		c.DrawText(p.Text, 0, 0, &b.Text)
		c.Restore()

	case KindShockwave:
		width := math.Max(0.5, p.Size*(1-t))
		b.Stroke.SetStroke(p.Col.WithAlpha(a), width)
		b.Stroke.Blur = 0
		c.DrawCircle(p.X, p.Y, OutCubic(t)*p.TX, &b.Stroke)
		if inner := Window(t, 0.2, 1); inner > 0 {
			b.Stroke.SetStroke(p.Col.WithAlpha(a*0.7), width*0.6)
			c.DrawCircle(p.X, p.Y, OutCubic(inner)*p.TX*0.7, &b.Stroke)
		}

	case KindConfetti:
		w := p.Size * (0.25 + 0.75*math.Abs(math.Cos(p.Phase*0.7)))
		h := p.Size * p.TX
		c.Save()
		c.Translate(p.X, p.Y)
		c.Rotate(p.Phase)
		b.Fill.SetFill(p.Col.WithAlpha(a))
		b.Fill.Blur = 0
		c.DrawRect(canvas.XYWH(-w/2, -h/2, w, h), &b.Fill)
		c.Restore()

	case KindRocket:
		tailX := p.X - p.VX*RocketTrail
		tailY := p.Y - p.VY*RocketTrail
		b.Path.Reset()
		b.Path.MoveTo(tailX, tailY)
		b.Path.LineTo(p.X, p.Y)
		b.Stroke.SetStroke(p.Col.WithAlpha(0.45), p.Size)
		b.Stroke.Blur = p.Size
		c.DrawPath(&b.Path, &b.Stroke)
		glow(c, b, p.X, p.Y, p.Size*2.2, p.Col.WithAlpha(0.6))
		b.Fill.SetFill(canvas.Palette.White)
		b.Fill.Blur = 0
		c.DrawCircle(p.X, p.Y, p.Size*0.8, &b.Fill)

	case KindSpark:
		r := p.Size * (1 - 0.55*t)
		glow(c, b, p.X, p.Y, r*2.4, p.Col.WithAlpha(a*0.55))
		b.Fill.SetFill(canvas.Lerp(canvas.Palette.White, p.Col, t*2).WithAlpha(a))
		b.Fill.Blur = 0
		c.DrawCircle(p.X, p.Y, r, &b.Fill)

	case KindFlame:
		col := flameColor(p, t)
		r := p.Size * (1 - 0.6*t)
		glow(c, b, p.X, p.Y, r*1.8, col.WithAlpha(a*0.5))
		b.Fill.SetFill(col.WithAlpha(a))
		b.Fill.Blur = r * 0.5
		c.DrawCircle(p.X, p.Y, r, &b.Fill)

	case KindGlowRing:
		r := p.TX * (1 + 0.08*math.Sin(p.Phase))
		b.Glow.SetStroke(p.Col.WithAlpha(a), p.Size)
		b.Glow.Blur = p.Size * 2
		c.DrawCircle(p.X, p.Y, r, &b.Glow)

	case KindRain:
		spd := math.Hypot(p.VX, p.VY)
		if spd < 1e-6 {
			return
		}
		k := p.Size / spd
		b.Path.Reset()
		b.Path.MoveTo(p.X-p.VX*k, p.Y-p.VY*k)
		b.Path.LineTo(p.X, p.Y)
		b.Stroke.SetStroke(p.Col.WithAlpha(a), 1)
		b.Stroke.Blur = 0
		c.DrawPath(&b.Path, &b.Stroke)

	case KindSnow:
		b.Fill.SetFill(p.Col.WithAlpha(a))
		b.Fill.Blur = p.Size * 0.4
		c.DrawCircle(p.X, p.Y, p.Size, &b.Fill)

	case KindLeaf:
		col := p.Col
		if p.ID&1 == 1 && p.Col2.A > 0 {
			col = p.Col2
		}
		c.Save()
		c.Translate(p.X, p.Y)
		c.Rotate(p.Phase + p.Age*p.Spin)
		c.Scale(1, 0.45)
		b.Fill.SetFill(col.WithAlpha(a))
		b.Fill.Blur = 0
		c.DrawCircle(0, 0, p.Size, &b.Fill)
		c.Restore()
	}
}

func renderCoin(c canvas.Canvas, b *canvas.Brush, p *Particle, t float64) {
	scale := Lerp(1, 0.5, OutCubic(t))
	flip := math.Abs(math.Cos(p.Phase))
	if flip < 0.15 {
		flip = 0.15
	}
	rim := p.Col2
	if rim.A == 0 {
		rim = p.Col.Mul(170)
	}
	c.Save()
	c.Translate(p.X, p.Y)
	c.Scale(scale*flip, scale)
	b.Fill.SetFill(rim)
	b.Fill.Blur = 0
	c.DrawCircle(0, 0, p.Size, &b.Fill)
	b.Fill.SetFill(p.Col)
	c.DrawCircle(0, 0, p.Size*0.78, &b.Fill)
	b.Fill.SetFill(canvas.Palette.GoldShine.WithAlpha(0.8))
	c.DrawCircle(-p.Size*0.3, -p.Size*0.3, p.Size*0.22, &b.Fill)
	c.Restore()
}

// flameColor ramps hot to mid over the first half of life, then mid to
// the particle's cool colour.
func flameColor(p *Particle, t float64) canvas.Color {
	if t < 0.5 {
		return canvas.Lerp(p.Col, canvas.Palette.FireMid, t*2)
	}
	return canvas.Lerp(canvas.Palette.FireMid, p.Col2, (t-0.5)*2)
}

// glow draws an additive soft disc.
func glow(c canvas.Canvas, b *canvas.Brush, x, y, r float64, col canvas.Color) {
	b.Glow.SetFill(col)
	b.Glow.Blur = r * 0.6
	c.DrawCircle(x, y, r, &b.Glow)
}

// starPath builds a 4-point star with concave quadratic edges.
func starPath(path *canvas.Path, x, y, s float64) {
	path.Reset()
	path.MoveTo(x, y-s)
	path.QuadTo(x, y, x+s, y)
	path.QuadTo(x, y, x, y+s)
	path.QuadTo(x, y, x-s, y)
	path.QuadTo(x, y, x, y-s)
	path.Close()
}
