// Package ebitencanvas implements canvas.Canvas on an ebiten image.
//
// Shapes share the canvas.Mesh tessellator with the GL backend and are
// submitted with DrawTriangles against a white source texel. Hard filled
// circles go through ebiten's vector package for antialiased edges, and
// text is laid out with text/v2 on the Go Regular face.
package ebitencanvas

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"juice/internal/canvas"
)

// maxBatch is the largest vertex run addressable by uint16 indices,
// rounded down to whole triangles.
const maxBatch = 65535 / 3 * 3

type Stats struct {
	DrawCalls int
	Triangles int
	Glyphs    int
}

type Canvas struct {
	dst    *ebiten.Image
	target *ebiten.Image
	src    *ebiten.Image
	face   *text.GoTextFaceSource

	xf       canvas.Transform
	mesh     canvas.Mesh
	verts    []ebiten.Vertex
	idx      []uint16
	additive bool
	clip     canvas.Rect
	stats    Stats
}

// New loads the text face. It can run before ebiten.RunGame.
func New() (*Canvas, error) {
	face, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	white := ebiten.NewImage(3, 3)
	white.Fill(image.White)
	return &Canvas{
		src:  white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		face: face,
	}, nil
}

// Begin targets dst for one frame. scale maps logical units to dst pixels.
func (c *Canvas) Begin(dst *ebiten.Image, scale float64, bg canvas.Color) {
	c.dst = dst
	c.target = dst
	c.stats = Stats{}
	c.additive = false
	b := dst.Bounds()
	device := canvas.XYWH(float64(b.Min.X), float64(b.Min.Y), float64(b.Dx()), float64(b.Dy()))
	c.clip = device
	c.xf.Reset(device)
	if scale > 0 && scale != 1 {
		c.xf.Scale(scale, scale)
	}
	dst.Fill(bg.NRGBA())
}

// End flushes pending triangles and returns the frame's stats.
func (c *Canvas) End() Stats {
	c.flush()
	c.dst, c.target = nil, nil
	return c.stats
}

func (c *Canvas) Save()                    { c.xf.Save() }
func (c *Canvas) Restore()                 { c.xf.Restore() }
func (c *Canvas) Translate(dx, dy float64) { c.xf.Translate(dx, dy) }
func (c *Canvas) Rotate(rad float64)       { c.xf.Rotate(rad) }
func (c *Canvas) Scale(sx, sy float64)     { c.xf.Scale(sx, sy) }
func (c *Canvas) ClipRect(r canvas.Rect)   { c.xf.ClipRect(r) }

func (c *Canvas) DrawCircle(cx, cy, radius float64, p *canvas.Paint) {
	m := c.xf.Matrix()
	if p.Style == canvas.Fill && p.Blur <= 0 && !p.Additive && uniform(m) {
		if !(radius > 0) || p.Color.A == 0 {
			return
		}
		c.use(false)
		c.flush()
		x, y := m.Apply(cx, cy)
		vector.DrawFilledCircle(c.target, float32(x), float32(y), float32(radius*m.ScaleFactor()), p.Color.NRGBA(), true)
		c.stats.DrawCalls++
		return
	}
	c.use(p.Additive)
	c.mesh.AddCircle(m, cx, cy, radius, p)
}

func (c *Canvas) DrawRect(r canvas.Rect, p *canvas.Paint) {
	c.use(p.Additive)
	c.mesh.AddRect(c.xf.Matrix(), r, p)
}

func (c *Canvas) DrawPath(path *canvas.Path, p *canvas.Paint) {
	c.use(p.Additive)
	c.mesh.AddPath(c.xf.Matrix(), path, p)
}

// DrawText draws s with its baseline at y, anchored at x per p.Align.
func (c *Canvas) DrawText(s string, x, y float64, p *canvas.Paint) {
	if s == "" || p.Color.A == 0 || !(p.TextSize > 0) {
		return
	}
	c.use(false)
	c.flush()
	face := &text.GoTextFace{Source: c.face, Size: p.TextSize}
	op := &text.DrawOptions{}
	op.PrimaryAlign = textAlign(p.Align)
	op.GeoM.Translate(x, y-face.Metrics().HAscent)
	op.GeoM.Concat(geoM(c.xf.Matrix()))
	op.ColorScale.ScaleWithColor(p.Color.NRGBA())
	op.Filter = ebiten.FilterLinear
	text.Draw(c.target, s, face, op)
	c.stats.DrawCalls++
	c.stats.Glyphs += utf8.RuneCountInString(s)
}

// use flushes the batch when the blend mode or clip changes.
func (c *Canvas) use(additive bool) {
	clip := c.xf.Clip()
	if additive == c.additive && clip == c.clip {
		return
	}
	c.flush()
	c.additive = additive
	if clip != c.clip {
		c.clip = clip
		c.target = c.dst.SubImage(clipRect(clip)).(*ebiten.Image)
	}
}

func (c *Canvas) flush() {
	if len(c.mesh.Verts) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{}
	if c.additive {
		op.Blend = ebiten.BlendLighter
	}
	for start := 0; start < len(c.mesh.Verts); start += maxBatch {
		end := min(start+maxBatch, len(c.mesh.Verts))
		c.verts, c.idx = appendBatch(c.verts[:0], c.idx[:0], c.mesh.Verts[start:end])
		c.target.DrawTriangles(c.verts, c.idx, c.src, op)
		c.stats.DrawCalls++
	}
	c.stats.Triangles += c.mesh.Triangles()
	c.mesh.Reset()
}

// appendBatch converts mesh vertices to ebiten vertices sampling the
// single white texel at (1,1), with sequential indices.
func appendBatch(verts []ebiten.Vertex, idx []uint16, mv []canvas.Vertex) ([]ebiten.Vertex, []uint16) {
	for i, v := range mv {
		verts = append(verts, ebiten.Vertex{
			DstX: v.X, DstY: v.Y,
			SrcX: 1.5, SrcY: 1.5,
			ColorR: v.R, ColorG: v.G, ColorB: v.B, ColorA: v.A,
		})
		idx = append(idx, uint16(i))
	}
	return verts, idx
}

func geoM(m canvas.Matrix) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m.A)
	g.SetElement(0, 1, m.C)
	g.SetElement(0, 2, m.E)
	g.SetElement(1, 0, m.B)
	g.SetElement(1, 1, m.D)
	g.SetElement(1, 2, m.F)
	return g
}

// uniform reports whether m keeps circles circular.
func uniform(m canvas.Matrix) bool {
	const eps = 1e-9
	return math.Abs(m.A-m.D) < eps && math.Abs(m.B+m.C) < eps
}

func clipRect(r canvas.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())),
	)
}

func textAlign(a canvas.Align) text.Align {
	switch a {
	case canvas.AlignCenter:
		return text.AlignCenter
	case canvas.AlignRight:
		return text.AlignEnd
	}
	return text.AlignStart
}
