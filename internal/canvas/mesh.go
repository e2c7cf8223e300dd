package canvas

import "math"

// Vertex is a device-space triangle vertex with a straight-alpha colour.
// The layout is six packed float32s so GPU backends can upload Mesh.Verts
// as is.
type Vertex struct {
	X, Y       float32
	R, G, B, A float32
}

// Mesh tessellates shapes into a device-space triangle list. Blur is
// rendered as a feather strip fading to transparent outside the shape.
// Storage is retained across Reset.
type Mesh struct {
	Verts []Vertex

	flat Flattener
	pts  []float64
	offs []float64
}

func (m *Mesh) Reset() { m.Verts = m.Verts[:0] }

// Triangles returns the number of triangles queued.
func (m *Mesh) Triangles() int { return len(m.Verts) / 3 }

// AddCircle tessellates an ellipse: the circle (cx, cy, r) mapped by mat.
func (m *Mesh) AddCircle(mat Matrix, cx, cy, r float64, p *Paint) {
	if !(r > 0) {
		return
	}
	sf := mat.ScaleFactor()
	n := int(math.Ceil(2 * math.Pi * r * sf / 3))
	n = min(max(n, 12), 128)
	m.pts = m.pts[:0]
	for i := 0; i < n; i++ {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		x, y := mat.Apply(cx+c*r, cy+s*r)
		m.pts = append(m.pts, x, y)
	}
	m.shape(m.pts, true, sf, p)
}

// AddRect tessellates r mapped by mat.
func (m *Mesh) AddRect(mat Matrix, r Rect, p *Paint) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	m.pts = m.pts[:0]
	for _, c := range [4][2]float64{{r.X, r.Y}, {r.Right(), r.Y}, {r.Right(), r.Bottom()}, {r.X, r.Bottom()}} {
		x, y := mat.Apply(c[0], c[1])
		m.pts = append(m.pts, x, y)
	}
	m.shape(m.pts, true, mat.ScaleFactor(), p)
}

// AddPath flattens path under mat and tessellates each contour. Fills use
// a fan from the contour centroid, which is exact for convex and
// star-shaped outlines.
func (m *Mesh) AddPath(mat Matrix, path *Path, p *Paint) {
	m.flat.Flatten(path, mat)
	sf := mat.ScaleFactor()
	for _, c := range m.flat.Contours {
		closed := c.Closed || p.Style == Fill
		m.shape(m.flat.Pts[c.Start*2:c.End*2], closed, sf, p)
	}
}

func (m *Mesh) shape(pts []float64, closed bool, sf float64, p *Paint) {
	if len(pts) < 4 || p.Color.A == 0 {
		return
	}
	col := vertexColor(p.Color)
	fade := col
	fade.A = 0
	feather := math.Max(0, p.Blur) * sf
	offs := m.miters(pts, closed)

	if p.Style == Stroke {
		hw := math.Max(0.5, p.StrokeWidth*sf*0.5)
		m.strip(pts, offs, closed, -hw, hw, col, col)
		if feather > 0 {
			m.strip(pts, offs, closed, hw, hw+feather, col, fade)
			m.strip(pts, offs, closed, -hw-feather, -hw, fade, col)
		}
		return
	}
	if len(pts) < 6 {
		return
	}
	m.fan(pts, col)
	if feather > 0 {
		out := -1.0
		if signedArea(pts) < 0 {
			out = 1
		}
		m.strip(pts, offs, true, 0, out*feather, col, fade)
	}
}

func (m *Mesh) fan(pts []float64, col Vertex) {
	n := len(pts) / 2
	var cx, cy float64
	for i := 0; i < n; i++ {
		cx += pts[2*i]
		cy += pts[2*i+1]
	}
	cx /= float64(n)
	cy /= float64(n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		m.Verts = append(m.Verts,
			at(cx, cy, col),
			at(pts[2*i], pts[2*i+1], col),
			at(pts[2*j], pts[2*j+1], col))
	}
}

// strip emits quads between the offsets d0 and d1 along each segment's
// miter direction, shading from c0 to c1 across the strip.
func (m *Mesh) strip(pts, offs []float64, closed bool, d0, d1 float64, c0, c1 Vertex) {
	n := len(pts) / 2
	segs := n - 1
	if closed {
		segs = n
	}
	for s := 0; s < segs; s++ {
		i, j := s, (s+1)%n
		a0 := at(pts[2*i]+offs[2*i]*d0, pts[2*i+1]+offs[2*i+1]*d0, c0)
		a1 := at(pts[2*i]+offs[2*i]*d1, pts[2*i+1]+offs[2*i+1]*d1, c1)
		b0 := at(pts[2*j]+offs[2*j]*d0, pts[2*j+1]+offs[2*j+1]*d0, c0)
		b1 := at(pts[2*j]+offs[2*j]*d1, pts[2*j+1]+offs[2*j+1]*d1, c1)
		m.Verts = append(m.Verts, a0, b0, b1, a0, b1, a1)
	}
}

// miters returns, per vertex, the offset direction that keeps both
// adjacent edges at unit distance. Sharp joins are capped at 4.
func (m *Mesh) miters(pts []float64, closed bool) []float64 {
	n := len(pts) / 2
	m.offs = m.offs[:0]
	for i := 0; i < n; i++ {
		hasIn := i > 0 || closed
		hasOut := i < n-1 || closed
		var ax, ay, bx, by float64
		if hasIn {
			ax, ay = edgeNormal(pts, (i-1+n)%n, i)
		}
		if hasOut {
			bx, by = edgeNormal(pts, i, (i+1)%n)
		}
		if !hasIn {
			ax, ay = bx, by
		}
		if !hasOut {
			bx, by = ax, ay
		}
		mx, my := ax+bx, ay+by
		if l := math.Hypot(mx, my); l > 1e-9 {
			mx, my = mx/l, my/l
		} else {
			mx, my = bx, by
		}
		k := 4.0
		if d := mx*bx + my*by; d > 0.25 {
			k = 1 / d
		}
		m.offs = append(m.offs, mx*k, my*k)
	}
	return m.offs
}

// edgeNormal is the left unit normal of the edge i->j.
func edgeNormal(pts []float64, i, j int) (float64, float64) {
	dx := pts[2*j] - pts[2*i]
	dy := pts[2*j+1] - pts[2*i+1]
	l := math.Hypot(dx, dy)
	if l < 1e-12 {
		return 0, 0
	}
	return -dy / l, dx / l
}

// signedArea is positive when left normals point inward.
func signedArea(pts []float64) float64 {
	n := len(pts) / 2
	a := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += pts[2*i]*pts[2*j+1] - pts[2*j]*pts[2*i+1]
	}
	return a / 2
}

func vertexColor(c Color) Vertex {
	r, g, b, a := c.Floats()
	return Vertex{R: r, G: g, B: b, A: a}
}

func at(x, y float64, col Vertex) Vertex {
	col.X, col.Y = float32(x), float32(y)
	return col
}
