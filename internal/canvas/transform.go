package canvas

import "math"

// Matrix is a 2D affine transform:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix struct {
	A, B, C, D, E, F float64
}

func Identity() Matrix { return Matrix{A: 1, D: 1} }

func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// Mul returns m·n (n is applied first).
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// ScaleFactor is the geometric mean of the axis scales, used to size radii
// and stroke widths in device space.
func (m Matrix) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}

// Rotation returns the rotation angle encoded in m.
func (m Matrix) Rotation() float64 { return math.Atan2(m.B, m.A) }

// AxisAligned reports whether m maps rects to rects.
func (m Matrix) AxisAligned() bool {
	const eps = 1e-9
	return (math.Abs(m.B) < eps && math.Abs(m.C) < eps) || (math.Abs(m.A) < eps && math.Abs(m.D) < eps)
}

type state struct {
	m       Matrix
	clip    Rect
	clipped bool
}

// Transform is the save/restore stack shared by the backends. The zero
// value is not ready; use Reset.
type Transform struct {
	cur   state
	stack []state
}

// Reset clears the stack and sets the device clip.
func (t *Transform) Reset(device Rect) {
	t.stack = t.stack[:0]
	t.cur = state{m: Identity(), clip: device}
}

func (t *Transform) Save() { t.stack = append(t.stack, t.cur) }

// Restore pops the last Save; unbalanced calls are ignored.
func (t *Transform) Restore() {
	if len(t.stack) == 0 {
		return
	}
	t.cur = t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
}

func (t *Transform) Depth() int { return len(t.stack) }

func (t *Transform) Translate(dx, dy float64) {
	t.cur.m = t.cur.m.Mul(Matrix{A: 1, D: 1, E: dx, F: dy})
}

func (t *Transform) Rotate(rad float64) {
	s, c := math.Sincos(rad)
	t.cur.m = t.cur.m.Mul(Matrix{A: c, B: s, C: -s, D: c})
}

func (t *Transform) Scale(sx, sy float64) {
	t.cur.m = t.cur.m.Mul(Matrix{A: sx, D: sy})
}

// ClipRect intersects the device clip with the bounding box of r.
func (t *Transform) ClipRect(r Rect) {
	t.cur.clip = t.cur.clip.Intersect(t.Bounds(r))
	t.cur.clipped = true
}

func (t *Transform) Matrix() Matrix { return t.cur.m }
func (t *Transform) Clip() Rect     { return t.cur.clip }
func (t *Transform) Clipped() bool  { return t.cur.clipped }

func (t *Transform) Apply(x, y float64) (float64, float64) { return t.cur.m.Apply(x, y) }

// Bounds maps r to device space and returns its bounding box.
func (t *Transform) Bounds(r Rect) Rect {
	m := t.cur.m
	x0, y0 := m.Apply(r.X, r.Y)
	x1, y1 := m.Apply(r.Right(), r.Y)
	x2, y2 := m.Apply(r.Right(), r.Bottom())
	x3, y3 := m.Apply(r.X, r.Bottom())
	minX := min(x0, x1, x2, x3)
	minY := min(y0, y1, y2, y3)
	return Rect{X: minX, Y: minY, W: max(x0, x1, x2, x3) - minX, H: max(y0, y1, y2, y3) - minY}
}

// Corners maps r's corners to device space (clockwise from top-left).
func (t *Transform) Corners(r Rect) [8]float64 {
	m := t.cur.m
	var out [8]float64
	out[0], out[1] = m.Apply(r.X, r.Y)
	out[2], out[3] = m.Apply(r.Right(), r.Y)
	out[4], out[5] = m.Apply(r.Right(), r.Bottom())
	out[6], out[7] = m.Apply(r.X, r.Bottom())
	return out
}
