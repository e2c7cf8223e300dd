package fx

import (
	"math"

	"juice/internal/canvas"
)

type Kind uint8

const (
	KindBurst Kind = iota
	KindCoin
	KindSparkle
	KindNumberPop
	KindShockwave
	KindConfetti
	KindRocket
	KindSpark
	KindFlame
	KindGlowRing
	KindRain
	KindSnow
	KindLeaf
	kindCount
)

var kindNames = [kindCount]string{
	"burst", "coin", "sparkle", "number-pop", "shockwave", "confetti",
	"rocket", "spark", "flame", "glow-ring", "rain", "snow", "leaf",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// Particle is one pool slot. The record is flat: auxiliary fields are
// reused per kind as follows (unlisted fields are unused by that kind).
//
//	Kind        Size            Phase / Spin              X0,Y0      CX,CY     TX,TY            Col2
//	Burst       ring width      -                         -          -         TX max radius    -
//	Coin        radius          flip angle / flip rate    start      control   target           rim
//	Sparkle     peak size       wobble offset / rate      -          -         -                -
//	NumberPop   text size       -                         -          -         -                -
//	Shockwave   ring width      -                         -          -         TX max radius    -
//	Confetti    long side       rotation / rot. velocity  -          -         TX aspect        -
//	Rocket      head radius     -                         last pos   -         TX sparks, TY    burst colour
//	                                                                           burst altitude
//	Spark       radius          -                         -          -         -                -
//	Flame       radius          sway offset               -          -         -                cool colour
//	GlowRing    ring width      pulse phase / pulse rate  -          -         TX radius        -
//	Rain        streak length   -                         -          -         -                -
//	Snow        radius          wobble offset             -          -         -                -
//	Leaf        radius          sway+rotation seed / rot  -          -         -                second tone
//
// Text is only set for NumberPop.
type Particle struct {
	Kind Kind
	ID   uint64 // spawn serial assigned by the pool

	X, Y   float64
	VX, VY float64

	Age  float64 // seconds; negative while the spawn delay is running
	Life float64

	Size  float64
	Phase float64
	Spin  float64

	Col  canvas.Color
	Col2 canvas.Color

	X0, Y0 float64
	CX, CY float64
	TX, TY float64

	Text string
}

// After returns a copy of p that stays inert for delay seconds.
func (p Particle) After(delay float64) Particle {
	delay = finite(delay)
	if delay < 0 {
		delay = 0
	}
	p.Age = -delay
	return p
}

// InDelay reports whether the particle is still waiting out its delay.
func (p *Particle) InDelay() bool { return p.Age < 0 }

// Progress is Age/Life clamped to [0,1]; 0 while delayed.
func (p *Particle) Progress() float64 {
	if p.Age <= 0 || p.Life <= 0 {
		return 0
	}
	return Clamp01(p.Age / p.Life)
}

// Alpha is the kind-specific opacity at the particle's current progress.
func (p *Particle) Alpha() float64 {
	return KindAlpha(p.Kind, p.Progress())
}

// KindAlpha maps progress to opacity for a kind.
func KindAlpha(k Kind, t float64) float64 {
	t = Clamp01(t)
	switch k {
	case KindBurst, KindShockwave:
		return 1 - t
	case KindCoin:
		return 1
	case KindSparkle:
		return PingPong(t)
	case KindNumberPop:
		return fadeTail(t, 0.4)
	case KindConfetti:
		return fadeTail(t, 0.3)
	case KindRocket:
		return 1
	case KindSpark:
		return 1 - t*t
	case KindFlame:
		return (1 - t) * Clamp01(t/0.1)
	case KindGlowRing:
		return PingPong(t) * 0.9
	case KindRain:
		return 0.7 * fadeTail(t, 0.15)
	case KindSnow, KindLeaf:
		return Clamp01(t/0.1) * fadeTail(t, 0.2)
	}
	return 1 - t
}

// fadeTail is 1 until the last `tail` fraction, then falls linearly to 0.
func fadeTail(t, tail float64) float64 {
	start := 1 - tail
	if t <= start {
		return 1
	}
	return Clamp01((1 - t) / tail)
}

// Overflow picks what Spawn does on a full pool. The zero value evicts.
type Overflow uint8

const (
	// EvictOldest replaces the particle with the lowest spawn serial.
	EvictOldest Overflow = iota
	// DropNew rejects spawns while the pool is full.
	DropNew
)

// Pool is a fixed-capacity particle store. Storage is allocated once;
// removal swaps the last live particle into the freed slot, so slot order
// carries no meaning.
type Pool struct {
	items    []Particle
	n        int
	overflow Overflow
	serial   uint64

	// wrap bounds for weather kinds; empty disables wrapping.
	wrap canvas.Rect

	dropped uint64
	evicted uint64
}

func NewPool(capacity int, overflow Overflow) *Pool {
	if capacity <= 0 {
		capacity = JuiceCapacity
	}
	return &Pool{
		items:    make([]Particle, capacity),
		overflow: overflow,
	}
}

func (ps *Pool) Len() int { return ps.n }
func (ps *Pool) Cap() int { return len(ps.items) }

// At returns a pointer to live slot i for inspection. Callers outside the
// package must not mutate it.
func (ps *Pool) At(i int) *Particle { return &ps.items[i] }

// Live is the read-only view of live particles, valid until the next
// mutation.
func (ps *Pool) Live() []Particle { return ps.items[:ps.n] }

// Dropped and Evicted count overflow losses since creation.
func (ps *Pool) Dropped() uint64 { return ps.dropped }
func (ps *Pool) Evicted() uint64 { return ps.evicted }

// SetWrap sets the toroidal bounds used by weather kinds.
func (ps *Pool) SetWrap(r canvas.Rect) { ps.wrap = r }

// Clear drops every particle in O(1). Slot contents are left stale and
// are never read past Len.
func (ps *Pool) Clear() { ps.n = 0 }

// Spawn inserts p, applying the overflow policy when full. It reports
// whether p entered the pool.
func (ps *Pool) Spawn(p Particle) bool {
	sanitize(&p)
	ps.serial++
	p.ID = ps.serial
	if ps.n < len(ps.items) {
		ps.items[ps.n] = p
		ps.n++
		return true
	}
	if ps.overflow == DropNew || ps.n == 0 {
		ps.dropped++
		return false
	}
	oldest := 0
	for i := 1; i < ps.n; i++ {
		if ps.items[i].ID < ps.items[oldest].ID {
			oldest = i
		}
	}
	ps.items[oldest] = p
	ps.evicted++
	return true
}

// removeAt swap-removes slot i.
func (ps *Pool) removeAt(i int) {
	last := ps.n - 1
	if i != last {
		ps.items[i] = ps.items[last]
	}
	ps.n = last
}

// sanitize clamps malformed descriptors instead of rejecting them.
func sanitize(p *Particle) {
	p.X, p.Y = finite(p.X), finite(p.Y)
	p.VX, p.VY = finite(p.VX), finite(p.VY)
	p.X0, p.Y0 = finite(p.X0), finite(p.Y0)
	p.CX, p.CY = finite(p.CX), finite(p.CY)
	p.TX, p.TY = finite(p.TX), finite(p.TY)
	p.Phase, p.Spin = finite(p.Phase), finite(p.Spin)
	if !(p.Life >= MinLife) || math.IsInf(p.Life, 0) {
		p.Life = MinLife
	}
	p.Age = finite(p.Age)
	if p.Age > 0 {
		p.Age = 0
	}
	p.Size = finite(p.Size)
	if p.Size < 0 {
		p.Size = 0
	}
	if p.Kind >= kindCount {
		p.Kind = KindSparkle
	}
}
