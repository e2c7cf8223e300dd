package canvas

import "math"

type Verb uint8

const (
	VerbMove Verb = iota
	VerbLine
	VerbQuad
	VerbCubic
	VerbClose
)

// Path is a reusable vector path. Reset keeps the backing storage so a
// path rebuilt every frame does not allocate once warmed up.
type Path struct {
	verbs []Verb
	pts   []float64 // flat x,y pairs; Move/Line 1 pair, Quad 2, Cubic 3
}

func (p *Path) Reset() {
	p.verbs = p.verbs[:0]
	p.pts = p.pts[:0]
}

func (p *Path) Empty() bool { return len(p.verbs) == 0 }

func (p *Path) MoveTo(x, y float64) {
	p.verbs = append(p.verbs, VerbMove)
	p.pts = append(p.pts, x, y)
}

func (p *Path) LineTo(x, y float64) {
	p.verbs = append(p.verbs, VerbLine)
	p.pts = append(p.pts, x, y)
}

func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.verbs = append(p.verbs, VerbQuad)
	p.pts = append(p.pts, cx, cy, x, y)
}

func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.verbs = append(p.verbs, VerbCubic)
	p.pts = append(p.pts, c1x, c1y, c2x, c2y, x, y)
}

func (p *Path) Close() {
	p.verbs = append(p.verbs, VerbClose)
}

// Verbs exposes the command list; pts holds the matching operands.
func (p *Path) Verbs() []Verb     { return p.verbs }
func (p *Path) Points() []float64 { return p.pts }

// Contour is a flattened polyline in a Flattener's shared point buffer.
type Contour struct {
	Start, End int // indices into Flattener.Pts (pairs)
	Closed     bool
}

// Flattener converts paths to polylines with adaptive Bezier subdivision.
// Backends keep one per draw context.
type Flattener struct {
	Pts      []float64
	Contours []Contour
	// Tolerance is the max deviation in device units; 0 means 0.25.
	Tolerance float64
}

// Flatten transforms path by m and appends its contours, replacing any
// previous result.
func (f *Flattener) Flatten(path *Path, m Matrix) {
	f.Pts = f.Pts[:0]
	f.Contours = f.Contours[:0]
	tol := f.Tolerance
	if tol <= 0 {
		tol = 0.25
	}

	var cx, cy, sx, sy float64
	open := false
	start := 0
	pi := 0
	flush := func(closed bool) {
		if open && len(f.Pts)/2-start > 1 {
			f.Contours = append(f.Contours, Contour{Start: start, End: len(f.Pts) / 2, Closed: closed})
		}
		open = false
	}
	for _, v := range path.verbs {
		switch v {
		case VerbMove:
			flush(false)
			cx, cy = m.Apply(path.pts[pi], path.pts[pi+1])
			pi += 2
			sx, sy = cx, cy
			start = len(f.Pts) / 2
			f.Pts = append(f.Pts, cx, cy)
			open = true
		case VerbLine:
			x, y := m.Apply(path.pts[pi], path.pts[pi+1])
			pi += 2
			f.ensureOpen(&open, &start, cx, cy)
			f.Pts = append(f.Pts, x, y)
			cx, cy = x, y
		case VerbQuad:
			qx, qy := m.Apply(path.pts[pi], path.pts[pi+1])
			x, y := m.Apply(path.pts[pi+2], path.pts[pi+3])
			pi += 4
			f.ensureOpen(&open, &start, cx, cy)
			n := segments(math.Hypot(qx-cx, qy-cy)+math.Hypot(x-qx, y-qy), tol)
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				u := 1 - t
				f.Pts = append(f.Pts,
					u*u*cx+2*u*t*qx+t*t*x,
					u*u*cy+2*u*t*qy+t*t*y)
			}
			cx, cy = x, y
		case VerbCubic:
			ax, ay := m.Apply(path.pts[pi], path.pts[pi+1])
			bx, by := m.Apply(path.pts[pi+2], path.pts[pi+3])
			x, y := m.Apply(path.pts[pi+4], path.pts[pi+5])
			pi += 6
			f.ensureOpen(&open, &start, cx, cy)
			n := segments(math.Hypot(ax-cx, ay-cy)+math.Hypot(bx-ax, by-ay)+math.Hypot(x-bx, y-by), tol)
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				u := 1 - t
				f.Pts = append(f.Pts,
					u*u*u*cx+3*u*u*t*ax+3*u*t*t*bx+t*t*t*x,
					u*u*u*cy+3*u*u*t*ay+3*u*t*t*by+t*t*t*y)
			}
			cx, cy = x, y
		case VerbClose:
			flush(true)
			cx, cy = sx, sy
		}
	}
	flush(false)
}

func (f *Flattener) ensureOpen(open *bool, start *int, cx, cy float64) {
	if *open {
		return
	}
	*start = len(f.Pts) / 2
	f.Pts = append(f.Pts, cx, cy)
	*open = true
}

// segments picks a subdivision count from the control polygon length.
func segments(polyLen, tol float64) int {
	n := int(math.Ceil(math.Sqrt(polyLen / tol)))
	if n < 1 {
		return 1
	}
	if n > 64 {
		return 64
	}
	return n
}
