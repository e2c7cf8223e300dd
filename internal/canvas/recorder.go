package canvas

import (
	"fmt"
	"strings"
)

type OpKind uint8

const (
	OpCircle OpKind = iota
	OpRect
	OpPath
	OpText
	opKindCount
)

func (k OpKind) String() string {
	switch k {
	case OpCircle:
		return "circle"
	case OpRect:
		return "rect"
	case OpPath:
		return "path"
	case OpText:
		return "text"
	}
	return "unknown"
}

// Op is one recorded draw call in device coordinates.
type Op struct {
	Kind   OpKind
	X, Y   float64 // device-space anchor (centre for circles, origin for rects/text)
	Size   float64 // device radius, rect width or text size
	Color  Color
	Style  Style
	Blur   float64
	Text   string
	Points int // flattened point count for paths
}

// Recorder is a Canvas that records draw calls instead of rasterising.
// With Keep false it only counts, which keeps it allocation free.
type Recorder struct {
	Keep bool
	Ops  []Op

	xf     Transform
	flat   Flattener
	counts [opKindCount]int
	device Rect
}

func NewRecorder(device Rect, keep bool) *Recorder {
	r := &Recorder{Keep: keep, device: device}
	r.xf.Reset(device)
	return r
}

// Reset forgets recorded ops and the transform stack.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.counts = [opKindCount]int{}
	r.xf.Reset(r.device)
}

func (r *Recorder) Count(k OpKind) int { return r.counts[k] }

func (r *Recorder) Total() int {
	n := 0
	for _, c := range r.counts {
		n += c
	}
	return n
}

// Depth is the current Save nesting, useful to check balanced renders.
func (r *Recorder) Depth() int { return r.xf.Depth() }

func (r *Recorder) Save()                    { r.xf.Save() }
func (r *Recorder) Restore()                 { r.xf.Restore() }
func (r *Recorder) Translate(dx, dy float64) { r.xf.Translate(dx, dy) }
func (r *Recorder) Rotate(rad float64)       { r.xf.Rotate(rad) }
func (r *Recorder) Scale(sx, sy float64)     { r.xf.Scale(sx, sy) }
func (r *Recorder) ClipRect(rc Rect)         { r.xf.ClipRect(rc) }

func (r *Recorder) DrawCircle(cx, cy, radius float64, p *Paint) {
	x, y := r.xf.Apply(cx, cy)
	r.record(Op{Kind: OpCircle, X: x, Y: y, Size: radius * r.xf.Matrix().ScaleFactor(), Color: p.Color, Style: p.Style, Blur: p.Blur})
}

func (r *Recorder) DrawRect(rc Rect, p *Paint) {
	x, y := r.xf.Apply(rc.X, rc.Y)
	r.record(Op{Kind: OpRect, X: x, Y: y, Size: rc.W * r.xf.Matrix().ScaleFactor(), Color: p.Color, Style: p.Style, Blur: p.Blur})
}

func (r *Recorder) DrawPath(path *Path, p *Paint) {
	r.flat.Flatten(path, r.xf.Matrix())
	var x, y float64
	if len(r.flat.Pts) >= 2 {
		x, y = r.flat.Pts[0], r.flat.Pts[1]
	}
	r.record(Op{Kind: OpPath, X: x, Y: y, Color: p.Color, Style: p.Style, Blur: p.Blur, Points: len(r.flat.Pts) / 2})
}

func (r *Recorder) DrawText(s string, x, y float64, p *Paint) {
	dx, dy := r.xf.Apply(x, y)
	r.record(Op{Kind: OpText, X: dx, Y: dy, Size: p.TextSize * r.xf.Matrix().ScaleFactor(), Color: p.Color, Text: s})
}

func (r *Recorder) record(op Op) {
	r.counts[op.Kind]++
	if r.Keep {
		r.Ops = append(r.Ops, op)
	}
}

// Summary renders the per-kind counters, e.g. "circle=3 rect=1 path=0 text=2".
func (r *Recorder) Summary() string {
	var b strings.Builder
	for k := OpKind(0); k < opKindCount; k++ {
		if k > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%d", k, r.counts[k])
	}
	return b.String()
}
