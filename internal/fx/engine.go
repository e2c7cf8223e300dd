package fx

import "juice/internal/canvas"

// EngineConfig sizes a juice engine. Zero values fall back to defaults.
type EngineConfig struct {
	Capacity int
	Overflow Overflow
	Seed     uint32
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Capacity: JuiceCapacity,
		Overflow: EvictOldest,
		Seed:     1,
	}
}

func (c EngineConfig) withDefaults() EngineConfig {
	if c.Capacity <= 0 {
		c.Capacity = JuiceCapacity
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
	return c
}

// Engine is the general-purpose juice layer: one particle pool, the three
// screen modulators, and the spawn catalog. Not safe for concurrent use.
type Engine struct {
	pool   *Pool
	rng    Rand
	events Events
	brush  *canvas.Brush

	shake    Shake
	flash    Flash
	vignette Vignette
}

func NewEngine(cfg EngineConfig) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		pool:  NewPool(cfg.Capacity, cfg.Overflow),
		rng:   NewRand(cfg.Seed),
		brush: canvas.NewBrush(),
	}
}

func (e *Engine) emit() emitter { return emitter{ps: e.pool, rng: &e.rng} }

func (e *Engine) Pool() *Pool { return e.pool }
func (e *Engine) Len() int    { return e.pool.Len() }

// Seed restarts the random stream.
func (e *Engine) Seed(seed uint32) { e.rng.Seed(seed) }

// Events returns what happened during the last Update.
func (e *Engine) Events() []Event { return e.events.Slice() }

// Active reports whether anything is still animating.
func (e *Engine) Active() bool {
	return e.pool.Len() > 0 || e.shake.Active() || e.flash.Active() || e.vignette.Active()
}

func (e *Engine) Update(dt float64) {
	e.events.reset()
	dt, ok := sanitizeDT(dt)
	if !ok {
		return
	}
	e.pool.Update(dt, &e.rng, &e.events)
	e.shake.Update(dt)
	e.flash.Update(dt)
	e.vignette.Update(dt)
}

// Render draws particles offset by the current shake, then the flash and
// vignette overlays in screen space.
func (e *Engine) Render(c canvas.Canvas, bounds canvas.Rect) {
	c.Save()
	c.Translate(e.shake.X, e.shake.Y)
	e.pool.Render(c, e.brush)
	c.Restore()
	e.flash.Render(c, bounds, &e.brush.Fill)
	e.vignette.Render(c, bounds, &e.brush.Stroke)
}

// Clear drops all particles and resets the modulators.
func (e *Engine) Clear() {
	e.pool.Clear()
	e.events.reset()
	e.shake.Reset()
	e.flash.Reset()
	e.vignette.Reset()
}

func (e *Engine) Shake(intensity, duration float64) { e.shake.Trigger(intensity, duration) }

func (e *Engine) Flash(col canvas.Color, peak, duration float64) {
	e.flash.Trigger(col, peak, duration)
}

func (e *Engine) SetVignette(strength float64) { e.vignette.SetTarget(strength) }

func (e *Engine) ShakeOffset() (float64, float64) { return e.shake.X, e.shake.Y }
func (e *Engine) FlashAlpha() float64             { return e.flash.Alpha() }
func (e *Engine) Vignette() float64               { return e.vignette.Current() }

// Catalog.

func (e *Engine) SpawnBurst(x, y float64, col canvas.Color, maxRadius, duration float64) bool {
	return e.emit().burst(x, y, col, maxRadius, duration)
}

// SpawnCoinFly sends n coins along curved paths to (toX,toY). Coin i
// waits i*stagger seconds. It returns the number spawned.
func (e *Engine) SpawnCoinFly(fromX, fromY, toX, toY float64, n int, stagger float64) int {
	return e.emit().coinFly(fromX, fromY, toX, toY, n, stagger)
}

func (e *Engine) SpawnSparkle(x, y float64, col canvas.Color, size, duration, delay float64) bool {
	return e.emit().sparkle(x, y, col, size, duration, delay)
}

func (e *Engine) SpawnSparkles(x, y, radius float64, n int, col canvas.Color) int {
	return e.emit().sparkles(x, y, radius, n, col)
}

func (e *Engine) SpawnNumberPop(x, y float64, value int, col canvas.Color) bool {
	return e.emit().numberPop(x, y, value, col)
}

func (e *Engine) SpawnLabel(x, y float64, text string, col canvas.Color, size float64) bool {
	return e.emit().label(x, y, text, col, size)
}

func (e *Engine) SpawnShockwave(x, y, maxRadius, duration float64, col canvas.Color) bool {
	return e.emit().shockwave(x, y, maxRadius, duration, col)
}

func (e *Engine) SpawnConfetti(x, y float64, n int, dir, spread, speed float64) int {
	return e.emit().confetti(x, y, n, dir, spread, speed)
}

func (e *Engine) SpawnFlame(x, y float64, n int) int {
	return e.emit().flame(x, y, n)
}

func (e *Engine) SpawnGlowRing(x, y, radius float64, col canvas.Color, duration float64) bool {
	return e.emit().glowRing(x, y, radius, col, duration)
}
