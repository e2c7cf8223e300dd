package fx

import (
	"math"

	"juice/internal/canvas"
)

const digitGlyphs = "0123456789"

// FlipMaxSeconds is the largest time the clock can show, 99:59.
const FlipMaxSeconds = 99*60 + 59

// FlipClock is an MM:SS countdown whose digit cards flip when they
// change. Longer times are clamped to 99:59.
type FlipClock struct {
	remaining float64
	running   bool
	lastSec   int

	digits [FlipDigits]int
	prev   [FlipDigits]int
	flip   [FlipDigits]float64 // seconds of flip animation left

	// WarnAt is the remaining time below which digits turn red.
	WarnAt float64

	events Events
	brush  *canvas.Brush
}

func NewFlipClock() *FlipClock {
	return &FlipClock{WarnAt: 10, brush: canvas.NewBrush()}
}

// Set shows seconds without animating. The clock keeps its running state.
func (fc *FlipClock) Set(seconds float64) {
	fc.remaining = clampF(finite(seconds), 0, FlipMaxSeconds)
	fc.lastSec = int(math.Ceil(fc.remaining))
	fc.digits = clockDigits(fc.lastSec)
	fc.prev = fc.digits
	fc.flip = [FlipDigits]float64{}
}

func (fc *FlipClock) Start()                  { fc.running = fc.remaining > 0 }
func (fc *FlipClock) Stop()                   { fc.running = false }
func (fc *FlipClock) Running() bool           { return fc.running }
func (fc *FlipClock) Remaining() float64      { return fc.remaining }
func (fc *FlipClock) Digits() [FlipDigits]int { return fc.digits }
func (fc *FlipClock) Events() []Event         { return fc.events.Slice() }

// FlipProgress is the eased flip position of digit i, from 0 when the
// flip starts to 1 when it lands. Idle digits report 1.
func (fc *FlipClock) FlipProgress(i int) float64 {
	if fc.flip[i] <= 0 {
		return 1
	}
	return InOutQuint(1 - fc.flip[i]/FlipDuration)
}

func (fc *FlipClock) Flipping() bool {
	for _, f := range fc.flip {
		if f > 0 {
			return true
		}
	}
	return false
}

func (fc *FlipClock) Update(dt float64) {
	fc.events.reset()
	dt, ok := sanitizeDT(dt)
	if !ok {
		return
	}
	for i := range fc.flip {
		if fc.flip[i] > 0 {
			fc.flip[i] = math.Max(0, fc.flip[i]-dt)
		}
	}
	if !fc.running {
		return
	}
	fc.remaining -= dt
	if fc.remaining <= 0 {
		fc.remaining = 0
		fc.running = false
	}
	sec := int(math.Ceil(fc.remaining))
	if sec == fc.lastSec {
		return
	}
	fc.lastSec = sec
	fc.events.push(Event{Type: EventTick, Value: sec})
	next := clockDigits(sec)
	for i := range next {
		if next[i] != fc.digits[i] {
			fc.prev[i] = fc.digits[i]
			fc.digits[i] = next[i]
			fc.flip[i] = FlipDuration
		}
	}
	if sec == 0 {
		fc.events.push(Event{Type: EventExpired})
	}
}

func clockDigits(sec int) [FlipDigits]int {
	sec = max(0, min(sec, FlipMaxSeconds))
	m, s := sec/60, sec%60
	return [FlipDigits]int{m / 10, m % 10, s / 10, s % 10}
}

// Render lays the four cards and the colon out across bounds.
func (fc *FlipClock) Render(c canvas.Canvas, bounds canvas.Rect) {
	gap := bounds.W * 0.03
	colon := bounds.W * 0.08
	cw := (bounds.W - colon - 3*gap) / 4
	ch := math.Min(bounds.H, cw*1.45)
	top := bounds.CenterY() - ch/2

	ink := canvas.Palette.White
	if fc.remaining <= fc.WarnAt && (fc.running || fc.remaining == 0) {
		ink = canvas.Palette.Loss
	}

	x := bounds.X
	for i := 0; i < FlipDigits; i++ {
		if i == 2 {
			fc.renderColon(c, x+colon/2-gap/2, top, ch, ink)
			x += colon
		}
		fc.renderCard(c, i, canvas.XYWH(x, top, cw, ch), ink)
		x += cw + gap
	}
}

func (fc *FlipClock) renderCard(c canvas.Canvas, i int, card canvas.Rect, ink canvas.Color) {
	b := fc.brush
	d := fc.digits[i]
	scaleY := 1.0
	if fc.flip[i] > 0 {
		p := fc.FlipProgress(i)
		scaleY = math.Abs(1 - 2*p)
		if p < 0.5 {
			d = fc.prev[i]
		}
	}
	scaleY = math.Max(scaleY, 0.04)

	c.Save()
	c.Translate(card.CenterX(), card.CenterY())
	c.Scale(1, scaleY)
	local := canvas.XYWH(-card.W/2, -card.H/2, card.W, card.H)
	roundRect(&b.Path, local, card.W*0.12)
	b.Fill.SetFill(canvas.Palette.CardDark)
	b.Fill.Blur = 0
	c.DrawPath(&b.Path, &b.Fill)

	b.Text.Align = canvas.AlignCenter
	b.Text.TextSize = card.H * 0.62
	b.Text.Color = ink
	c.DrawText(digitGlyphs[d:d+1], 0, card.H*0.22, &b.Text)
	c.Restore()

	// Hinge line across the middle.
	b.Stroke.SetStroke(canvas.Palette.Black.WithAlpha(0.45), 1.5)
	b.Stroke.Blur = 0
	b.Path.Reset()
	b.Path.MoveTo(card.X, card.CenterY())
	b.Path.LineTo(card.Right(), card.CenterY())
	c.DrawPath(&b.Path, &b.Stroke)
}

func (fc *FlipClock) renderColon(c canvas.Canvas, x, top, h float64, ink canvas.Color) {
	// Blink on the half second while running.
	if fc.running && fc.remaining-math.Floor(fc.remaining) < 0.5 {
		ink = ink.WithAlpha(0.35)
	}
	r := h * 0.05
	fc.brush.Fill.SetFill(ink)
	fc.brush.Fill.Blur = 0
	c.DrawCircle(x, top+h*0.35, r, &fc.brush.Fill)
	c.DrawCircle(x, top+h*0.65, r, &fc.brush.Fill)
}
