package fx

import (
	"math"

	"juice/internal/canvas"
)

type CeremonyKind uint8

const (
	CeremonyMilestone CeremonyKind = iota
	CeremonyAward
	CeremonyOpening
	CeremonyRecord
)

func (k CeremonyKind) String() string {
	switch k {
	case CeremonyMilestone:
		return "milestone"
	case CeremonyAward:
		return "award"
	case CeremonyOpening:
		return "opening"
	case CeremonyRecord:
		return "record"
	}
	return "unknown"
}

// Accent is the highlight colour bound to the kind.
func (k CeremonyKind) Accent() canvas.Color {
	switch k {
	case CeremonyAward:
		return canvas.HSV(275, 0.55, 1)
	case CeremonyOpening:
		return canvas.Palette.Cash
	case CeremonyRecord:
		return canvas.HSV(12, 0.8, 1)
	}
	return canvas.Palette.Gold
}

// Ceremony phase indices, reported as Event.Value of EventCeremonyPhase.
const (
	PhaseBackdrop = iota
	PhaseScaleIn
	PhaseTextReveal
	PhaseFadeOut
)

func ceremonyTimeline() Timeline {
	return NewTimeline(CeremonyDuration,
		Phase{Name: "backdrop", Start: 0, End: CeremonyBackdropIn},
		Phase{Name: "scale-in", Start: CeremonyScaleStart, End: CeremonyScaleEnd},
		Phase{Name: "text-reveal", Start: CeremonyTextReveal, End: CeremonyTextReveal + 0.6},
		Phase{Name: "fade-out", Start: CeremonyFadeOut, End: CeremonyDuration},
	)
}

// Ceremony is the full-screen announcement: backdrop, a card that scales
// in, a typed-out title, confetti and a rocket show. It stays active past
// its timeline until every particle it owns has expired.
type Ceremony struct {
	confetti *Pool
	fw       *Fireworks
	rng      Rand
	events   Events
	brush    *canvas.Brush
	flash    Flash
	tl       Timeline

	active   bool
	kind     CeremonyKind
	title    string
	subtitle string
	accent   canvas.Color
	bounds   canvas.Rect
}

func NewCeremony(seed uint32) *Ceremony {
	return &Ceremony{
		confetti: NewPool(CeremonyCapacity, EvictOldest),
		fw:       NewFireworks(Mix(seed, 1, 0)),
		rng:      NewRand(seed),
		brush:    canvas.NewBrush(),
		tl:       ceremonyTimeline(),
		bounds:   canvas.XYWH(0, 0, 800, 600),
	}
}

func (c *Ceremony) SetBounds(width, height float64) {
	c.bounds = canvas.XYWH(0, 0, math.Max(1, finite(width)), math.Max(1, finite(height)))
}

func (c *Ceremony) Active() bool         { return c.active }
func (c *Ceremony) Elapsed() float64     { return c.tl.Elapsed() }
func (c *Ceremony) Kind() CeremonyKind   { return c.kind }
func (c *Ceremony) Accent() canvas.Color { return c.accent }
func (c *Ceremony) Events() []Event      { return c.events.Slice() }
func (c *Ceremony) Len() int             { return c.confetti.Len() + c.fw.Len() }

// Start (re)opens the ceremony. A running one is replaced.
func (c *Ceremony) Start(kind CeremonyKind, title, subtitle string) {
	c.confetti.Clear()
	c.fw.Clear()
	c.flash.Reset()
	c.tl.Restart()
	c.active = true
	c.kind = kind
	c.title = title
	c.subtitle = subtitle
	c.accent = kind.Accent()

	b := c.bounds
	em := emitter{ps: c.confetti, rng: &c.rng}
	em.confetti(b.X+b.W*0.1, b.Bottom(), 36, -math.Pi/2+0.45, 0.35, 620)
	em.confetti(b.Right()-b.W*0.1, b.Bottom(), 36, -math.Pi/2-0.45, 0.35, 620)
	c.fw.Volley(b, 2)
	c.flash.Trigger(c.accent, 0.35, 0.3)
}

// Clear cancels immediately.
func (c *Ceremony) Clear() {
	c.confetti.Clear()
	c.fw.Clear()
	c.flash.Reset()
	c.events.reset()
	c.active = false
}

func (c *Ceremony) Update(dt float64) {
	c.events.reset()
	if !c.active {
		return
	}
	dt, ok := sanitizeDT(dt)
	if !ok {
		return
	}

	entered := c.tl.Advance(dt)
	for i := 0; i < c.tl.Len(); i++ {
		if entered&(1<<i) == 0 {
			continue
		}
		c.events.push(Event{
			Type:  EventCeremonyPhase,
			X:     c.bounds.CenterX(),
			Y:     c.bounds.CenterY(),
			Col:   c.accent,
			Value: i,
		})
		if i == PhaseTextReveal {
			em := emitter{ps: c.confetti, rng: &c.rng}
			em.confetti(c.bounds.CenterX(), c.bounds.CenterY(), 28, -math.Pi/2, 1.1, 420)
		}
	}

	if c.tl.Within(CeremonyRocketStart, CeremonyRocketEnd) && c.rng.Chance(RocketLaunchRate*dt) {
		launchInto(emitter{ps: c.fw.pool, rng: &c.rng}, c.bounds)
	}

	c.confetti.Update(dt, &c.rng, &c.events)
	c.fw.Update(dt)
	for _, e := range c.fw.Events() {
		c.events.push(e)
	}
	c.flash.Update(dt)

	if c.tl.Done() && c.confetti.Len() == 0 && c.fw.Len() == 0 {
		c.active = false
	}
}

func (c *Ceremony) Render(cv canvas.Canvas, bounds canvas.Rect) {
	if !c.active {
		return
	}
	e := c.tl.Elapsed()
	fade := 1 - Window(e, CeremonyFadeOut, CeremonyDuration)
	b := c.brush

	if a := Window(e, 0, CeremonyBackdropIn) * fade; a > 0 {
		b.Fill.SetFill(canvas.Palette.Backdrop.WithAlpha(0.72 * a))
		b.Fill.Blur = 0
		cv.DrawRect(bounds, &b.Fill)
	}

	c.fw.Render(cv, bounds)

	if s := OutBack(Window(e, CeremonyScaleStart, CeremonyScaleEnd), DefaultOvershoot); s > 0 && fade > 0 {
		c.renderCard(cv, bounds, s, fade, e)
	}

	c.confetti.Render(cv, b)
	c.flash.Render(cv, bounds, &b.Fill)
}

func (c *Ceremony) renderCard(cv canvas.Canvas, bounds canvas.Rect, scale, fade, e float64) {
	b := c.brush
	cw := math.Min(bounds.W*0.7, 520)
	ch := cw * 0.42
	card := canvas.XYWH(-cw/2, -ch/2, cw, ch)

	cv.Save()
	cv.Translate(bounds.CenterX(), bounds.CenterY())
	cv.Scale(scale, scale)

	pulse := 0.5 + 0.5*math.Sin(e*5)
	b.Glow.SetStroke(c.accent.WithAlpha(0.35*fade*(0.6+0.4*pulse)), 10)
	b.Glow.Blur = 18
	roundRect(&b.Path, card.Inset(-6), 22)
	cv.DrawPath(&b.Path, &b.Glow)

	roundRect(&b.Path, card, 18)
	b.Fill.SetFill(canvas.Palette.Card.WithAlpha(fade))
	b.Fill.Blur = 0
	cv.DrawPath(&b.Path, &b.Fill)
	b.Stroke.SetStroke(c.accent.WithAlpha(fade), 3)
	b.Stroke.Blur = 0
	cv.DrawPath(&b.Path, &b.Stroke)

	b.Text.Align = canvas.AlignCenter
	if t := Window(e, CeremonyTextReveal, CeremonyTextReveal+0.6); t > 0 {
		b.Text.TextSize = 30
		b.Text.Color = c.accent.WithAlpha(fade)
		cv.DrawText(revealPrefix(c.title, t), 0, -ch*0.12, &b.Text)
	}
	if a := Window(e, CeremonyTextReveal+0.4, CeremonyTextReveal+0.8) * fade; a > 0 && c.subtitle != "" {
		b.Text.TextSize = 16
		b.Text.Color = canvas.Palette.White.WithAlpha(a)
		cv.DrawText(c.subtitle, 0, ch*0.22, &b.Text)
	}
	cv.Restore()
}
