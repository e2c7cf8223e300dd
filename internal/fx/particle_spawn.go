package fx

import (
	"math"
	"strconv"

	"juice/internal/canvas"
)

// Coin flight tuning.
const (
	coinFlightTime = 0.75
	coinRadius     = 7.0
)

// emitter spawns catalog effects into one pool from one random stream.
// Every engine type owns one; the spawn helpers are shared between them.
type emitter struct {
	ps  *Pool
	rng *Rand
}

func (em emitter) burst(x, y float64, col canvas.Color, maxRadius, duration float64) bool {
	return em.ps.Spawn(Particle{
		Kind: KindBurst,
		X:    x, Y: y,
		Life: duration,
		Size: math.Max(2, maxRadius*0.08),
		TX:   math.Max(0, maxRadius),
		Col:  col,
	})
}

// coinFly spawns n coins from (fx,fy) to (tx,ty), coin i delayed by
// i*stagger. It returns how many entered the pool.
func (em emitter) coinFly(fromX, fromY, toX, toY float64, n int, stagger float64) int {
	if n <= 0 {
		return 0
	}
	stagger = math.Max(0, finite(stagger))
	dx, dy := toX-fromX, toY-fromY
	dist := math.Hypot(dx, dy)
	// Perpendicular, biased upward so coins arc over the screen.
	nx, ny := 0.0, -1.0
	if dist > 1e-6 {
		nx, ny = -dy/dist, dx/dist
		if ny > 0 {
			nx, ny = -nx, -ny
		}
	}
	spawned := 0
	for i := 0; i < n; i++ {
		sx := fromX + em.rng.RangeF(-6, 6)
		sy := fromY + em.rng.RangeF(-6, 6)
		bend := dist * em.rng.RangeF(0.2, 0.45)
		cx := (sx+toX)*0.5 + nx*bend + em.rng.RangeF(-12, 12)
		cy := (sy+toY)*0.5 + ny*bend + em.rng.RangeF(-12, 12)
		if em.ps.Spawn(Particle{
			Kind: KindCoin,
			X:    sx, Y: sy,
			X0: sx, Y0: sy,
			CX: cx, CY: cy,
			TX: toX, TY: toY,
			Life:  coinFlightTime + em.rng.RangeF(0, 0.1),
			Size:  coinRadius,
			Phase: em.rng.RangeF(0, math.Pi),
			Spin:  em.rng.RangeF(8, 14),
			Col:   canvas.Palette.Gold,
			Col2:  canvas.Palette.GoldDark,
		}.After(float64(i) * stagger)) {
			spawned++
		}
	}
	return spawned
}

func (em emitter) sparkle(x, y float64, col canvas.Color, size, duration, delay float64) bool {
	return em.ps.Spawn(Particle{
		Kind: KindSparkle,
		X:    x, Y: y,
		Life:  duration,
		Size:  size,
		Phase: em.rng.RangeF(0, 2*math.Pi),
		Spin:  em.rng.RangeF(6, 12),
		Col:   col,
	}.After(delay))
}

// sparkles scatters n sparkles inside radius around (x,y) with staggered
// delays.
func (em emitter) sparkles(x, y, radius float64, n int, col canvas.Color) int {
	spawned := 0
	for i := 0; i < n; i++ {
		ang := em.rng.RangeF(0, 2*math.Pi)
		d := radius * math.Sqrt(em.rng.Float64())
		if em.sparkle(x+math.Cos(ang)*d, y+math.Sin(ang)*d, col,
			em.rng.RangeF(3, 7), em.rng.RangeF(0.35, 0.7), em.rng.RangeF(0, 0.3)) {
			spawned++
		}
	}
	return spawned
}

func (em emitter) label(x, y float64, text string, col canvas.Color, size float64) bool {
	return em.ps.Spawn(Particle{
		Kind: KindNumberPop,
		X:    x, Y: y,
		VX:   em.rng.RangeF(-6, 6),
		VY:   -70,
		Life: 1.2,
		Size: size,
		Col:  col,
		Text: text,
	})
}

func (em emitter) numberPop(x, y float64, value int, col canvas.Color) bool {
	text := strconv.Itoa(value)
	if value >= 0 {
		text = "+" + text
	}
	return em.label(x, y, text, col, 18)
}

func (em emitter) shockwave(x, y, maxRadius, duration float64, col canvas.Color) bool {
	return em.ps.Spawn(Particle{
		Kind: KindShockwave,
		X:    x, Y: y,
		Life: duration,
		Size: math.Max(2, maxRadius*0.12),
		TX:   math.Max(0, maxRadius),
		Col:  col,
	})
}

// confetti fires n pieces upward around dir (radians) within ±spread.
func (em emitter) confetti(x, y float64, n int, dir, spread, speed float64) int {
	spawned := 0
	for i := 0; i < n; i++ {
		ang := dir + em.rng.RangeF(-spread, spread)
		spd := speed * em.rng.RangeF(0.55, 1.1)
		if em.ps.Spawn(Particle{
			Kind: KindConfetti,
			X:    x + em.rng.RangeF(-4, 4), Y: y + em.rng.RangeF(-4, 4),
			VX:    math.Cos(ang) * spd,
			VY:    math.Sin(ang) * spd,
			Life:  em.rng.RangeF(1.6, 2.6),
			Size:  em.rng.RangeF(6, 10),
			Phase: em.rng.RangeF(0, 2*math.Pi),
			Spin:  em.rng.Sign() * em.rng.RangeF(5, 13),
			TX:    em.rng.RangeF(0.4, 0.65),
			Col:   canvas.HSV(em.rng.RangeF(0, 360), em.rng.RangeF(0.6, 0.9), 1),
		}) {
			spawned++
		}
	}
	return spawned
}

func (em emitter) flame(x, y float64, n int) int {
	spawned := 0
	for i := 0; i < n; i++ {
		if em.ps.Spawn(Particle{
			Kind: KindFlame,
			X:    x + em.rng.RangeF(-3, 3), Y: y,
			VX:    em.rng.RangeF(-8, 8),
			VY:    em.rng.RangeF(-40, -15),
			Life:  em.rng.RangeF(0.35, 0.75),
			Size:  em.rng.RangeF(3, 6),
			Phase: em.rng.RangeF(0, 2*math.Pi),
			Col:   canvas.Palette.FireHot,
			Col2:  canvas.Palette.FireCool,
		}.After(em.rng.RangeF(0, 0.15))) {
			spawned++
		}
	}
	return spawned
}

func (em emitter) glowRing(x, y, radius float64, col canvas.Color, duration float64) bool {
	return em.ps.Spawn(Particle{
		Kind: KindGlowRing,
		X:    x, Y: y,
		Life: duration,
		Size: math.Max(2, radius*0.15),
		TX:   radius,
		Spin: 9,
		Col:  col,
	})
}

// rocket launches from (x,y) straight up to burstY, drifting by vx.
func (em emitter) rocket(x, y, burstY, vx float64, col canvas.Color) bool {
	if burstY >= y {
		burstY = y - 1
	}
	flight := (y - burstY) / RocketSpeed
	return em.ps.Spawn(Particle{
		Kind: KindRocket,
		X:    x, Y: y,
		X0: x, Y0: y,
		VX:   vx,
		VY:   -RocketSpeed,
		Life: flight + 1, // detonation happens well before expiry
		Size: 2.2,
		TX:   float64(em.rng.Range(BurstMinSparks, BurstMaxSparks)),
		TY:   burstY,
		Col:  canvas.Palette.FireHot,
		Col2: col,
	})
}
