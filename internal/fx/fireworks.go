package fx

import (
	"math"

	"juice/internal/canvas"
)

// Fireworks owns a drop-new pool of rockets and their bursts. A rocket
// that reaches its burst altitude is replaced by sparks in the same
// Update.
type Fireworks struct {
	pool   *Pool
	rng    Rand
	events Events
	brush  *canvas.Brush
}

func NewFireworks(seed uint32) *Fireworks {
	return &Fireworks{
		pool:  NewPool(FireworksCapacity, DropNew),
		rng:   NewRand(seed),
		brush: canvas.NewBrush(),
	}
}

func (f *Fireworks) Pool() *Pool     { return f.pool }
func (f *Fireworks) Len() int        { return f.pool.Len() }
func (f *Fireworks) Active() bool    { return f.pool.Len() > 0 }
func (f *Fireworks) Events() []Event { return f.events.Slice() }
func (f *Fireworks) Seed(s uint32)   { f.rng.Seed(s) }

// Launch fires one rocket from (x,y) that bursts at burstY in col. A
// zero-alpha col picks a random saturated hue.
func (f *Fireworks) Launch(x, y, burstY float64, col canvas.Color) bool {
	if col.A == 0 {
		col = canvas.HSV(f.rng.RangeF(0, 360), 0.75, 1)
	}
	vx := f.rng.RangeF(-18, 18)
	return emitter{ps: f.pool, rng: &f.rng}.rocket(x, y, burstY, vx, col)
}

// Volley launches n rockets spread across bounds, bursting in its upper
// third.
func (f *Fireworks) Volley(bounds canvas.Rect, n int) int {
	launched := 0
	for i := 0; i < n; i++ {
		if launchInto(emitter{ps: f.pool, rng: &f.rng}, bounds) {
			launched++
		}
	}
	return launched
}

func (f *Fireworks) Update(dt float64) {
	f.events.reset()
	f.pool.Update(dt, &f.rng, &f.events)
}

func (f *Fireworks) Render(c canvas.Canvas, _ canvas.Rect) {
	f.pool.Render(c, f.brush)
}

func (f *Fireworks) Clear() {
	f.pool.Clear()
	f.events.reset()
}

// launchInto fires one rocket from the bottom edge of bounds.
func launchInto(em emitter, bounds canvas.Rect) bool {
	x := bounds.X + bounds.W*em.rng.RangeF(0.12, 0.88)
	y := bounds.Bottom()
	burstY := bounds.Y + bounds.H*em.rng.RangeF(0.12, 0.38)
	col := canvas.HSV(em.rng.RangeF(0, 360), em.rng.RangeF(0.6, 0.85), 1)
	// Lean toward the centre so bursts stay on screen.
	lean := (bounds.CenterX() - x) / math.Max(1, bounds.W) * 40
	return em.rocket(x, y, burstY, lean+em.rng.RangeF(-10, 10), col)
}
