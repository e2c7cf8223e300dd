// Package canvas is the drawing-backend contract the effect engines issue
// their primitives to. Backends own pixels; callers own paints and paths.
package canvas

// Canvas is an immediate-mode drawing surface with a transform stack.
//
// Implementations must not retain *Paint or *Path past the call: callers
// reuse them as scratch between draws.
type Canvas interface {
	Save()
	Restore()
	Translate(dx, dy float64)
	Rotate(rad float64)
	Scale(sx, sy float64)
	// ClipRect intersects the current clip with r in local coordinates.
	// Backends may approximate rotated clips by their bounding box.
	ClipRect(r Rect)

	DrawCircle(cx, cy, radius float64, p *Paint)
	DrawRect(r Rect, p *Paint)
	DrawPath(path *Path, p *Paint)
	DrawText(s string, x, y float64, p *Paint)
}

type Rect struct {
	X, Y, W, H float64
}

func XYWH(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) CenterX() float64 { return r.X + r.W*0.5 }
func (r Rect) CenterY() float64 { return r.Y + r.H*0.5 }
func (r Rect) Right() float64   { return r.X + r.W }
func (r Rect) Bottom() float64  { return r.Y + r.H }
func (r Rect) Empty() bool      { return r.W <= 0 || r.H <= 0 }

// Inset shrinks the rect by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// Intersect returns the overlap of r and o (possibly empty).
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.Right(), o.Right())
	y1 := min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

type Style uint8

const (
	Fill Style = iota
	Stroke
)

type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Paint holds the per-draw properties. It is a plain value: setting a
// property is assigning a field.
type Paint struct {
	Color       Color
	Style       Style
	StrokeWidth float64
	// Blur is a soft-edge radius in local units; 0 draws hard edges.
	Blur     float64
	TextSize float64
	Align    Align
	// Additive asks the backend for additive blending where supported.
	Additive bool
}

// Reset restores p to an opaque white hard-edged fill.
func (p *Paint) Reset() {
	*p = Paint{Color: Palette.White, StrokeWidth: 1, TextSize: 16}
}

func (p *Paint) SetFill(c Color) *Paint {
	p.Color = c
	p.Style = Fill
	return p
}

func (p *Paint) SetStroke(c Color, width float64) *Paint {
	p.Color = c
	p.Style = Stroke
	p.StrokeWidth = width
	return p
}

// Brush is a reusable scratch set of paints and one path, owned by a single
// draw context and passed explicitly to renderers.
type Brush struct {
	Fill   Paint
	Stroke Paint
	Glow   Paint
	Text   Paint
	Path   Path
}

func NewBrush() *Brush {
	b := &Brush{}
	b.Reset()
	return b
}

func (b *Brush) Reset() {
	b.Fill.Reset()
	b.Stroke.Reset()
	b.Stroke.Style = Stroke
	b.Glow.Reset()
	b.Glow.Additive = true
	b.Text.Reset()
	b.Text.Align = AlignCenter
	b.Path.Reset()
}
