// Package demo is the showcase scene shared by every host: a tycoon-style
// money counter driven by a looping script that exercises each effect
// engine, plus manual triggers bound to keys by the hosts.
package demo

import (
	"math"
	"strconv"

	"juice/internal/canvas"
	"juice/internal/fx"
)

const (
	DefaultWidth  = 960
	DefaultHeight = 600
	DefaultLoop   = 30.0 // script period, seconds
	CoinValue     = 10
	ClockSeconds  = 90
)

// Config tunes a Scene. Zero fields take defaults.
type Config struct {
	Seed   uint32
	Width  float64
	Height float64
	// Script runs the built-in loop; hosts may turn it off for manual play.
	Script bool
	Loop   float64
}

func (c Config) withDefaults() Config {
	if c.Seed == 0 {
		c.Seed = 1
	}
	if !(c.Width > 0) {
		c.Width = DefaultWidth
	}
	if !(c.Height > 0) {
		c.Height = DefaultHeight
	}
	if !(c.Loop > 0) {
		c.Loop = DefaultLoop
	}
	return c
}

// Scene owns one of each effect engine and merges their events per tick.
type Scene struct {
	Bus *Bus

	cfg         Config
	engine      *fx.Engine
	fireworks   *fx.Fireworks
	weather     *fx.Weather
	ceremony    *fx.Ceremony
	celebration *fx.Celebration
	clock       *fx.FlipClock
	rng         fx.Rand
	brush       *canvas.Brush

	bounds   canvas.Rect
	script   []Step
	t        float64
	next     int
	loops    int
	vignette bool
	money    int
	events   []fx.Event
	stats    Stats
}

func NewScene(cfg Config) *Scene {
	cfg = cfg.withDefaults()
	s := &Scene{
		Bus:         NewBus(),
		cfg:         cfg,
		engine:      fx.NewEngine(fx.EngineConfig{Seed: fx.Mix(cfg.Seed, 1, 0)}),
		fireworks:   fx.NewFireworks(fx.Mix(cfg.Seed, 2, 0)),
		weather:     fx.NewWeather(fx.WeatherConfig{}, fx.Mix(cfg.Seed, 3, 0)),
		ceremony:    fx.NewCeremony(fx.Mix(cfg.Seed, 4, 0)),
		celebration: fx.NewCelebration(fx.Mix(cfg.Seed, 5, 0)),
		clock:       fx.NewFlipClock(),
		rng:         fx.NewRand(cfg.Seed),
		brush:       canvas.NewBrush(),
		events:      make([]fx.Event, 0, 6*fx.EventCapacity),
	}
	if cfg.Script {
		s.script = DefaultScript()
	}
	s.clock.Set(ClockSeconds)
	s.Resize(cfg.Width, cfg.Height)
	return s
}

// Resize updates the layout for a new logical viewport.
func (s *Scene) Resize(width, height float64) {
	if !(width > 0) || !(height > 0) {
		return
	}
	s.bounds = canvas.XYWH(0, 0, width, height)
	s.weather.SetBounds(width, height)
	s.ceremony.SetBounds(width, height)
	s.celebration.SetBounds(width, height)
	x, y := s.counterPos()
	s.celebration.SetCounter(x, y)
}

func (s *Scene) counterPos() (float64, float64) {
	return s.bounds.Right() - 80, s.bounds.Y + 34
}

func (s *Scene) Bounds() canvas.Rect     { return s.bounds }
func (s *Scene) Money() int              { return s.money }
func (s *Scene) Stats() Stats            { return s.stats }
func (s *Scene) Events() []fx.Event      { return s.events }
func (s *Scene) Weather() fx.WeatherMode { return s.weather.Mode() }
func (s *Scene) Clock() *fx.FlipClock    { return s.clock }

// Live is the number of live particles across all engines.
func (s *Scene) Live() int {
	return s.engine.Len() + s.fireworks.Len() + s.weather.Len() + s.ceremony.Len() + s.celebration.Len()
}

// Update advances the script and every engine by dt, then publishes the
// merged events on the bus.
func (s *Scene) Update(dt float64) {
	if !(dt > 0) {
		return
	}
	dt = math.Min(dt, fx.MaxStep)
	s.events = s.events[:0]
	s.runScript(dt)

	s.engine.Update(dt)
	s.fireworks.Update(dt)
	s.weather.Update(dt)
	s.ceremony.Update(dt)
	s.celebration.Update(dt)
	s.clock.Update(dt)

	s.collect(s.engine.Events())
	s.collect(s.fireworks.Events())
	s.collect(s.weather.Events())
	s.collect(s.ceremony.Events())
	s.collect(s.celebration.Events())
	s.collect(s.clock.Events())

	s.stats.observe(dt, s.Live(), s.events)
	s.Bus.Emit(s.events)
}

func (s *Scene) collect(evs []fx.Event) {
	for _, e := range evs {
		if e.Type == fx.EventCoinArrived {
			s.money += CoinValue
		}
	}
	s.events = append(s.events, evs...)
}

func (s *Scene) runScript(dt float64) {
	if len(s.script) == 0 {
		return
	}
	s.t += dt
	for s.next < len(s.script) && s.script[s.next].At <= s.t {
		s.Trigger(s.script[s.next].Action)
		s.next++
	}
	if s.t >= s.cfg.Loop {
		s.t -= s.cfg.Loop
		s.next = 0
		s.loops++
	}
}

// Render draws back to front: weather, juice, fireworks, celebration,
// HUD, then the ceremony overlay.
func (s *Scene) Render(c canvas.Canvas) {
	b := s.bounds
	s.weather.Render(c, b)
	s.engine.Render(c, b)
	s.fireworks.Render(c, b)
	s.celebration.Render(c, b)
	s.renderHUD(c)
	s.ceremony.Render(c, b)
}

func (s *Scene) renderHUD(c canvas.Canvas) {
	br := s.brush
	x, y := s.counterPos()
	br.Glow.SetFill(canvas.Palette.Gold.WithAlpha(0.35))
	br.Glow.Blur = 10
	c.DrawCircle(x-44, y-6, 9, &br.Glow)
	br.Fill.SetFill(canvas.Palette.Gold)
	br.Fill.Blur = 0
	c.DrawCircle(x-44, y-6, 8, &br.Fill)
	br.Text.Color = canvas.Palette.White
	br.Text.TextSize = 20
	br.Text.Align = canvas.AlignLeft
	c.DrawText("$"+strconv.Itoa(s.money), x-30, y, &br.Text)

	w := math.Max(80, math.Min(220, s.bounds.W*0.3))
	clock := canvas.XYWH(s.bounds.CenterX()-w/2, s.bounds.Y+12, w, w*0.32)
	s.clock.Render(c, clock)
}

// Trigger fires one showcase action at a position picked from the scene's
// own stream, so scripted runs stay deterministic.
func (s *Scene) Trigger(a Action) {
	if a < 0 || a >= actionCount {
		return
	}
	s.stats.Actions[a]++
	w, h := s.bounds.W, s.bounds.H
	x := s.rng.RangeF(w*0.2, w*0.8)
	y := s.rng.RangeF(h*0.35, h*0.75)
	switch a {
	case ActionCoins:
		cx, cy := s.counterPos()
		n := s.rng.Range(5, 10)
		s.engine.SpawnCoinFly(x, y, cx, cy, n, 0.05)
		s.engine.SpawnNumberPop(x, y-20, n*CoinValue, canvas.Palette.Cash)
	case ActionSparkles:
		s.engine.SpawnSparkles(x, y, 40, 10, canvas.Palette.GoldShine)
	case ActionShockwave:
		s.engine.SpawnShockwave(x, y, 120, 0.6, canvas.Palette.White)
		s.engine.SpawnBurst(x, y, canvas.Palette.Gold, 70, 0.45)
	case ActionConfetti:
		s.engine.SpawnConfetti(x, h, 40, -math.Pi/2, 0.6, 420)
	case ActionFlame:
		s.engine.SpawnFlame(x, y, 24)
	case ActionGlowRing:
		s.engine.SpawnGlowRing(x, y, 36, canvas.Palette.Glow, 1.6)
		s.engine.SpawnLabel(x, y-50, "Upgrade!", canvas.Palette.Glow, 18)
	case ActionFireworks:
		s.fireworks.Volley(s.bounds, 4)
	case ActionCeremony:
		kind := fx.CeremonyKind(s.loops % 4)
		s.ceremony.Start(kind, ceremonyTitles[kind][0], ceremonyTitles[kind][1])
	case ActionCelebration:
		s.celebration.Start("Payday!", 100*s.rng.Range(2, 9), w/2, h*0.55)
	case ActionWeather:
		s.weather.Configure((s.weather.Mode()+1)%(fx.WeatherStorm+1), fx.Mix(s.cfg.Seed, 3, s.stats.Actions[a]))
	case ActionShake:
		s.engine.Shake(9, 0.5)
	case ActionFlash:
		s.engine.Flash(canvas.Palette.White, 0.6, 0.4)
	case ActionVignette:
		s.vignette = !s.vignette
		if s.vignette {
			s.engine.SetVignette(0.6)
		} else {
			s.engine.SetVignette(0)
		}
	case ActionClock:
		s.clock.Set(ClockSeconds)
		s.clock.Start()
	case ActionClear:
		s.engine.Clear()
		s.fireworks.Clear()
		s.ceremony.Clear()
		s.celebration.Clear()
		s.vignette = false
	}
}

var ceremonyTitles = [...][2]string{
	fx.CeremonyMilestone: {"100 Shops", "A retail empire"},
	fx.CeremonyAward:     {"Best Bakery", "Downtown district"},
	fx.CeremonyOpening:   {"Grand Opening", "Harbor Mall"},
	fx.CeremonyRecord:    {"Record Day", "$1,000,000 in sales"},
}
