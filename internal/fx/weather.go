package fx

import (
	"math"

	"juice/internal/canvas"
)

type WeatherMode uint8

const (
	WeatherClear WeatherMode = iota
	WeatherRain
	WeatherSnow
	WeatherLeaves
	WeatherStorm
)

func (m WeatherMode) String() string {
	switch m {
	case WeatherClear:
		return "clear"
	case WeatherRain:
		return "rain"
	case WeatherSnow:
		return "snow"
	case WeatherLeaves:
		return "leaves"
	case WeatherStorm:
		return "storm"
	}
	return "unknown"
}

// ParseWeather maps a mode name back to its value.
func ParseWeather(s string) (WeatherMode, bool) {
	for m := WeatherClear; m <= WeatherStorm; m++ {
		if m.String() == s {
			return m, true
		}
	}
	return WeatherClear, false
}

// WeatherConfig tunes a weather layer. Zero fields take defaults.
type WeatherConfig struct {
	Capacity  int
	Intensity float64 // multiplier on the mode's spawn rate
	// LightningChance is the per-second probability of a strike in storms.
	LightningChance float64
}

func (c WeatherConfig) withDefaults() WeatherConfig {
	if c.Capacity <= 0 {
		c.Capacity = WeatherCapacity
	}
	if !(c.Intensity > 0) {
		c.Intensity = 1
	}
	c.Intensity = math.Min(c.Intensity, 3)
	if !(c.LightningChance > 0) {
		c.LightningChance = 0.25
	}
	return c
}

// Weather is an ambient precipitation layer with its own drop-new pool.
// Particles are spawned from an accumulator so the rate is independent of
// frame rate, and wrap toroidally inside the bounds.
type Weather struct {
	cfg    WeatherConfig
	pool   *Pool
	rng    Rand
	events Events
	brush  *canvas.Brush
	flash  Flash

	seed      uint32
	mode      WeatherMode
	intensity float64
	windX     float64
	windGoal  float64
	spawnAcc  float64
	gustAcc   float64
	bounds    canvas.Rect
}

func NewWeather(cfg WeatherConfig, seed uint32) *Weather {
	cfg = cfg.withDefaults()
	w := &Weather{
		cfg:   cfg,
		pool:  NewPool(cfg.Capacity, DropNew),
		brush: canvas.NewBrush(),
	}
	w.Configure(WeatherClear, seed)
	return w
}

// Configure switches mode and restarts the random stream. Existing
// particles keep falling until they expire.
func (w *Weather) Configure(mode WeatherMode, seed uint32) {
	if seed == 0 {
		seed = 1
	}
	w.seed = seed ^ 0x57A7E12D
	w.mode = mode
	w.spawnAcc = 0
	w.gustAcc = 0
	w.rng = NewRand(w.seed)
	w.intensity = w.cfg.Intensity * (0.78 + w.rng.RangeF(0, 0.44))
	w.windX = w.rng.RangeF(-14, 14)
	w.windGoal = w.windX
}

// SetBounds sets the area particles spawn in and wrap around.
func (w *Weather) SetBounds(width, height float64) {
	w.bounds = canvas.XYWH(0, 0, math.Max(0, finite(width)), math.Max(0, finite(height)))
	w.pool.SetWrap(w.bounds)
}

func (w *Weather) Mode() WeatherMode { return w.mode }
func (w *Weather) Wind() float64     { return w.windX }
func (w *Weather) Pool() *Pool       { return w.pool }
func (w *Weather) Len() int          { return w.pool.Len() }
func (w *Weather) Events() []Event   { return w.events.Slice() }
func (w *Weather) Active() bool      { return w.mode != WeatherClear || w.pool.Len() > 0 || w.flash.Active() }

func (w *Weather) Clear() {
	w.pool.Clear()
	w.flash.Reset()
	w.events.reset()
	w.spawnAcc = 0
}

func (w *Weather) Update(dt float64) {
	w.events.reset()
	dt, ok := sanitizeDT(dt)
	if !ok {
		return
	}
	w.spawn(dt)
	w.pool.Update(dt, &w.rng, &w.events)
	w.flash.Update(dt)
}

func (w *Weather) rate() float64 {
	switch w.mode {
	case WeatherRain:
		return RainRate
	case WeatherStorm:
		return RainRate * 1.6
	case WeatherSnow:
		return SnowRate
	case WeatherLeaves:
		return LeavesRate
	}
	return 0
}

func (w *Weather) spawn(dt float64) {
	if w.mode == WeatherClear || w.bounds.Empty() {
		return
	}

	// Slow gust drift so the fall direction changes over time.
	w.gustAcc += dt
	if w.gustAcc >= GustPeriod {
		w.windGoal = clampF(w.windGoal+w.rng.RangeF(-2.8, 2.8), -MaxWind, MaxWind)
		w.gustAcc = 0
	}
	w.windX = approach(w.windX, w.windGoal, WindSlew*dt)

	if w.mode == WeatherStorm && w.rng.Chance(w.cfg.LightningChance*dt) {
		w.flash.Trigger(canvas.Palette.Lightning, w.rng.RangeF(0.35, 0.6), 0.25)
		w.events.push(Event{
			Type:  EventThunder,
			X:     w.bounds.X + w.bounds.W*w.rng.Float64(),
			Y:     w.bounds.Y,
			Col:   canvas.Palette.Lightning,
			Value: int(w.rng.RangeF(0.2, 1.5) * 1000), // ms until the rumble
		})
	}

	w.spawnAcc += w.rate() * w.intensity * dt
	count := int(w.spawnAcc)
	if count <= 0 {
		return
	}
	w.spawnAcc -= float64(count)

	for i := 0; i < count; i++ {
		x := w.bounds.X + w.rng.RangeF(0, w.bounds.W)
		y := w.bounds.Y + w.rng.RangeF(0, w.bounds.H)
		switch w.mode {
		case WeatherRain, WeatherStorm:
			wind := w.windX * 0.35
			if w.mode == WeatherStorm {
				wind = w.windX
			}
			w.pool.Spawn(Particle{
				Kind: KindRain,
				X:    x, Y: y,
				VX:   wind + w.rng.RangeF(-8, 8),
				VY:   380 + w.rng.RangeF(0, 160),
				Size: 8 + w.rng.RangeF(0, 6),
				Life: 0.7 + w.rng.RangeF(0, 0.7),
				Col:  canvas.Palette.Rain,
			})
		case WeatherSnow:
			w.pool.Spawn(Particle{
				Kind: KindSnow,
				X:    x, Y: y,
				VX:    w.windX + w.rng.RangeF(-9, 9),
				VY:    28 + w.rng.RangeF(0, 28),
				Size:  1.5 + w.rng.RangeF(0, 2),
				Life:  2.2 + w.rng.RangeF(0, 2),
				Phase: w.rng.RangeF(0, 2*math.Pi),
				Col:   canvas.Palette.Snow,
			})
		case WeatherLeaves:
			w.pool.Spawn(Particle{
				Kind: KindLeaf,
				X:    x, Y: y,
				VX:    w.windX*1.4 + w.rng.RangeF(-12, 12),
				VY:    22 + w.rng.RangeF(0, 18),
				Size:  4 + w.rng.RangeF(0, 3),
				Life:  3 + w.rng.RangeF(0, 2.5),
				Phase: w.rng.RangeF(0, 2*math.Pi),
				Spin:  w.rng.Sign() * w.rng.RangeF(0.8, 2.4),
				Col:   canvas.Palette.LeafA,
				Col2:  canvas.Palette.LeafB,
			})
		}
	}
}

func (w *Weather) Render(c canvas.Canvas, bounds canvas.Rect) {
	w.pool.Render(c, w.brush)
	w.flash.Render(c, bounds, &w.brush.Fill)
}
