package fx

import (
	"math"
	"strconv"

	"juice/internal/canvas"
)

const (
	celebBurst = iota
	celebCoins
	celebSparkle
	celebBannerOut
)

func celebrationTimeline() Timeline {
	return NewTimeline(CelebrationDuration,
		Phase{Name: "burst", Start: 0, End: 0.3},
		Phase{Name: "coins", Start: 0.2, End: 1.4},
		Phase{Name: "sparkle", Start: 0.7, End: 1.2},
		Phase{Name: "banner-out", Start: CelebrationDuration - 0.45, End: CelebrationDuration},
	)
}

// Celebration is the short payout sequence: a shockwave and "+amount" at
// the source, side confetti cannons, a coin shower into the counter and a
// banner that drops in from the top.
type Celebration struct {
	pool   *Pool
	rng    Rand
	events Events
	brush  *canvas.Brush
	shake  Shake
	tl     Timeline

	active   bool
	doneSent bool
	title    string
	label    string
	amount   int
	x, y     float64
	counterX float64
	counterY float64
	bounds   canvas.Rect
}

func NewCelebration(seed uint32) *Celebration {
	c := &Celebration{
		pool:  NewPool(CelebrationCapacity, EvictOldest),
		rng:   NewRand(seed),
		brush: canvas.NewBrush(),
		tl:    celebrationTimeline(),
	}
	c.SetBounds(800, 600)
	return c
}

// SetBounds resizes the screen area and moves the counter to its top-right
// corner unless SetCounter placed it explicitly afterwards.
func (c *Celebration) SetBounds(width, height float64) {
	c.bounds = canvas.XYWH(0, 0, math.Max(1, finite(width)), math.Max(1, finite(height)))
	c.counterX = c.bounds.Right() - 60
	c.counterY = c.bounds.Y + 28
}

// SetCounter places the coin shower target.
func (c *Celebration) SetCounter(x, y float64) {
	c.counterX, c.counterY = finite(x), finite(y)
}

func (c *Celebration) Active() bool     { return c.active }
func (c *Celebration) Elapsed() float64 { return c.tl.Elapsed() }
func (c *Celebration) Amount() int      { return c.amount }
func (c *Celebration) Events() []Event  { return c.events.Slice() }
func (c *Celebration) Len() int         { return c.pool.Len() }
func (c *Celebration) Pool() *Pool      { return c.pool }

// Start begins a payout of amount at (x,y). The label is formatted here,
// once, so Render never allocates.
func (c *Celebration) Start(title string, amount int, x, y float64) {
	c.pool.Clear()
	c.shake.Reset()
	c.tl.Restart()
	c.active = true
	c.doneSent = false
	c.title = title
	c.amount = amount
	c.label = "+" + strconv.Itoa(amount)
	if amount < 0 {
		c.label = strconv.Itoa(amount)
	}
	c.x, c.y = finite(x), finite(y)
}

func (c *Celebration) Clear() {
	c.pool.Clear()
	c.shake.Reset()
	c.events.reset()
	c.active = false
}

func (c *Celebration) Update(dt float64) {
	c.events.reset()
	if !c.active {
		return
	}
	dt, ok := sanitizeDT(dt)
	if !ok {
		return
	}

	em := emitter{ps: c.pool, rng: &c.rng}
	entered := c.tl.Advance(dt)
	if entered&(1<<celebBurst) != 0 {
		em.shockwave(c.x, c.y, 140, 0.55, canvas.Palette.Gold)
		em.burst(c.x, c.y, canvas.Palette.GoldShine, 70, 0.35)
		em.label(c.x, c.y-16, c.label, canvas.Palette.Cash, 22)
		b := c.bounds
		em.confetti(b.X, b.Bottom(), 24, -math.Pi/2+0.55, 0.3, 560)
		em.confetti(b.Right(), b.Bottom(), 24, -math.Pi/2-0.55, 0.3, 560)
		c.shake.Trigger(6, 0.35)
	}
	if entered&(1<<celebCoins) != 0 {
		em.coinFly(c.x, c.y, c.counterX, c.counterY, CelebrationCoins, CelebrationStagger)
	}
	if entered&(1<<celebSparkle) != 0 {
		em.sparkles(c.counterX, c.counterY, 26, 8, canvas.Palette.GoldShine)
	}

	c.pool.Update(dt, &c.rng, &c.events)
	c.shake.Update(dt)

	if c.tl.Done() {
		if !c.doneSent {
			c.doneSent = true
			c.events.push(Event{Type: EventCelebrationDone, X: c.counterX, Y: c.counterY, Value: c.amount})
		}
		if c.pool.Len() == 0 {
			c.active = false
		}
	}
}

func (c *Celebration) Render(cv canvas.Canvas, bounds canvas.Rect) {
	if !c.active {
		return
	}
	cv.Save()
	cv.Translate(c.shake.X, c.shake.Y)
	c.pool.Render(cv, c.brush)
	cv.Restore()

	e := c.tl.Elapsed()
	if e >= CelebrationDuration {
		return
	}
	in := OutBack(Window(e, 0, CelebrationBannerIn), DefaultOvershoot)
	out := InOutQuint(c.tl.Progress(celebBannerOut))
	bw := math.Min(bounds.W*0.6, 420)
	bh := 56.0
	drop := bounds.Y + 24 + bh
	y := -bh + drop*in - (drop+8)*out
	banner := canvas.XYWH(bounds.CenterX()-bw/2, y, bw, bh)

	b := c.brush
	roundRect(&b.Path, banner, 14)
	b.Fill.SetFill(canvas.Palette.CardDark.WithAlpha(0.92))
	b.Fill.Blur = 0
	cv.DrawPath(&b.Path, &b.Fill)
	b.Stroke.SetStroke(canvas.Palette.Gold, 2)
	b.Stroke.Blur = 0
	cv.DrawPath(&b.Path, &b.Stroke)

	b.Text.Align = canvas.AlignCenter
	b.Text.TextSize = 18
	b.Text.Color = canvas.Palette.White
	cv.DrawText(c.title, banner.CenterX(), banner.Y+22, &b.Text)
	b.Text.TextSize = 16
	b.Text.Color = canvas.Palette.Gold
	cv.DrawText(c.label, banner.CenterX(), banner.Y+42, &b.Text)
}
