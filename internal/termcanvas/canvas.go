// Package termcanvas implements canvas.Canvas on a tcell screen.
//
// Each terminal cell holds two square-ish pixels drawn with an upper half
// block, foreground on top and background below. Shapes are tessellated by
// canvas.Mesh and rasterised in software. Text is placed one rune per cell
// over the pixels, ignoring text size.
package termcanvas

import (
	"math"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"juice/internal/canvas"
)

const (
	halfBlock  = '▀'
	sampleBias = 1.0 / 1024
)

type rgb struct{ r, g, b float32 }

type glyph struct {
	r   rune
	col canvas.Color
}

type Stats struct {
	Triangles int
	Points    int
	Glyphs    int
}

type Canvas struct {
	xf       canvas.Transform
	mesh     canvas.Mesh
	additive bool
	clip     canvas.Rect

	cols, rows int
	px         []rgb
	glyphs     []glyph
	stats      Stats
}

func New() *Canvas { return &Canvas{} }

// Begin starts a frame on a cols x rows cell grid showing the logical
// rectangle view.
func (c *Canvas) Begin(cols, rows int, view canvas.Rect, bg canvas.Color) {
	cols, rows = max(cols, 0), max(rows, 0)
	c.cols, c.rows = cols, rows
	n := cols * rows * 2
	if cap(c.px) < n {
		c.px = make([]rgb, n)
		c.glyphs = make([]glyph, cols*rows)
	}
	c.px = c.px[:n]
	c.glyphs = c.glyphs[:cols*rows]
	fill := vertexRGB(bg)
	for i := range c.px {
		c.px[i] = fill
	}
	clear(c.glyphs)
	c.stats = Stats{}
	c.additive = false

	device := canvas.XYWH(0, 0, float64(cols), float64(rows*2))
	c.clip = device
	c.xf.Reset(device)
	if view.W > 0 && view.H > 0 {
		c.xf.Scale(float64(cols)/view.W, float64(rows*2)/view.H)
		c.xf.Translate(-view.X, -view.Y)
	}
}

// End rasterises pending triangles and returns the frame's stats.
func (c *Canvas) End() Stats {
	c.flush()
	return c.stats
}

// Present copies the frame to s. The caller calls s.Show.
func (c *Canvas) Present(s tcell.Screen) {
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			top := c.px[(2*row)*c.cols+col]
			bot := c.px[(2*row+1)*c.cols+col]
			if g := c.glyphs[row*c.cols+col]; g.r != 0 {
				bg := rgb{(top.r + bot.r) / 2, (top.g + bot.g) / 2, (top.b + bot.b) / 2}
				fg := blend(bg, g.col, 1, false)
				s.SetContent(col, row, g.r, nil, tcell.StyleDefault.Foreground(tcellColor(fg)).Background(tcellColor(bg)))
				continue
			}
			s.SetContent(col, row, halfBlock, nil, tcell.StyleDefault.Foreground(tcellColor(top)).Background(tcellColor(bot)))
		}
	}
}

// Pixel returns the colour of pixel (x, y) in 8-bit channels; y counts
// half-cells from the top.
func (c *Canvas) Pixel(x, y int) canvas.Color {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows*2 {
		return canvas.Color{}
	}
	p := c.px[y*c.cols+x]
	return canvas.RGB(to8(p.r), to8(p.g), to8(p.b))
}

// Glyph returns the rune placed in cell (col, row), or 0.
func (c *Canvas) Glyph(col, row int) rune {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return 0
	}
	return c.glyphs[row*c.cols+col].r
}

func (c *Canvas) Save()                    { c.xf.Save() }
func (c *Canvas) Restore()                 { c.xf.Restore() }
func (c *Canvas) Translate(dx, dy float64) { c.xf.Translate(dx, dy) }
func (c *Canvas) Rotate(rad float64)       { c.xf.Rotate(rad) }
func (c *Canvas) Scale(sx, sy float64)     { c.xf.Scale(sx, sy) }
func (c *Canvas) ClipRect(r canvas.Rect)   { c.xf.ClipRect(r) }

// DrawCircle plots circles smaller than a pixel as single points so that
// sparks survive the coarse grid.
func (c *Canvas) DrawCircle(cx, cy, radius float64, p *canvas.Paint) {
	m := c.xf.Matrix()
	r := (radius + math.Max(0, p.Blur)) * m.ScaleFactor()
	if r < 1 && r > 0 && p.Color.A > 0 {
		c.use(p.Additive)
		x, y := m.Apply(cx, cy)
		a := float64(p.Color.A) / 255 * math.Max(0.3, math.Min(1, math.Pi*r*r))
		c.plot(int(math.Floor(x)), int(math.Floor(y)), vertexRGB(p.Color), float32(a))
		c.stats.Points++
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

// DrawText places s on the cell row holding the text's vertical centre,
// anchored at x per p.Align.
func (c *Canvas) DrawText(s string, x, y float64, p *canvas.Paint) {
	if s == "" || p.Color.A == 0 {
		return
	}
	c.flush()
	px, py := c.xf.Apply(x, y-p.TextSize*0.35)
	n := utf8.RuneCountInString(s)
	col := int(math.Floor(px))
	switch p.Align {
	case canvas.AlignCenter:
		col -= n / 2
	case canvas.AlignRight:
		col -= n
	}
	row := int(math.Floor(py / 2))
	if row < 0 || row >= c.rows {
		return
	}
	clip := c.xf.Clip()
	for _, r := range s {
		if col >= 0 && col < c.cols && cellVisible(clip, col, row) {
			c.glyphs[row*c.cols+col] = glyph{r: r, col: p.Color}
			c.stats.Glyphs++
		}
		col++
	}
}

func cellVisible(clip canvas.Rect, col, row int) bool {
	cx, cy := float64(col)+0.5, float64(row*2)+1
	return cx >= clip.X && cx < clip.Right() && cy >= clip.Y && cy < clip.Bottom()
}

func (c *Canvas) use(additive bool) {
	clip := c.xf.Clip()
	if additive == c.additive && clip == c.clip {
		return
	}
	c.flush()
	c.additive = additive
	c.clip = clip
}

func (c *Canvas) flush() {
	v := c.mesh.Verts
	for i := 0; i+2 < len(v); i += 3 {
		c.triangle(v[i], v[i+1], v[i+2])
	}
	c.stats.Triangles += c.mesh.Triangles()
	c.mesh.Reset()
}

// triangle fills the pixels whose centres lie inside a-b-c, interpolating
// vertex colours barycentrically. Samples sit slightly off the centre so a
// pixel on an edge shared by two triangles is covered once.
func (c *Canvas) triangle(a, b, d canvas.Vertex) {
	area := edge(a.X, a.Y, b.X, b.Y, d.X, d.Y)
	if area == 0 {
		return
	}
	x0 := math.Max(c.clip.X, float64(min3(a.X, b.X, d.X)))
	y0 := math.Max(c.clip.Y, float64(min3(a.Y, b.Y, d.Y)))
	x1 := math.Min(c.clip.Right(), float64(max3(a.X, b.X, d.X)))
	y1 := math.Min(c.clip.Bottom(), float64(max3(a.Y, b.Y, d.Y)))
	for y := int(math.Floor(y0)); float64(y) < y1; y++ {
		py := float32(y) + 0.5 + sampleBias*1.7
		for x := int(math.Floor(x0)); float64(x) < x1; x++ {
			px := float32(x) + 0.5 + sampleBias
			w0 := edge(b.X, b.Y, d.X, d.Y, px, py) / area
			w1 := edge(d.X, d.Y, a.X, a.Y, px, py) / area
			w2 := edge(a.X, a.Y, b.X, b.Y, px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			col := rgb{
				a.R*w0 + b.R*w1 + d.R*w2,
				a.G*w0 + b.G*w1 + d.G*w2,
				a.B*w0 + b.B*w1 + d.B*w2,
			}
			c.plot(x, y, col, a.A*w0+b.A*w1+d.A*w2)
		}
	}
}

func (c *Canvas) plot(x, y int, col rgb, alpha float32) {
	if alpha <= 0 || x < 0 || y < 0 || x >= c.cols || y >= c.rows*2 {
		return
	}
	fx, fy := float64(x)+0.5, float64(y)+0.5
	if fx < c.clip.X || fx >= c.clip.Right() || fy < c.clip.Y || fy >= c.clip.Bottom() {
		return
	}
	i := y*c.cols + x
	c.px[i] = blendRGB(c.px[i], col, alpha, c.additive)
}

func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

func blend(dst rgb, c canvas.Color, scale float32, additive bool) rgb {
	return blendRGB(dst, vertexRGB(c), float32(c.A)/255*scale, additive)
}

func blendRGB(dst, src rgb, a float32, additive bool) rgb {
	a = min(max(a, 0), 1)
	if additive {
		return rgb{
			min(1, dst.r+src.r*a),
			min(1, dst.g+src.g*a),
			min(1, dst.b+src.b*a),
		}
	}
	return rgb{
		dst.r + (src.r-dst.r)*a,
		dst.g + (src.g-dst.g)*a,
		dst.b + (src.b-dst.b)*a,
	}
}

func vertexRGB(c canvas.Color) rgb {
	r, g, b, _ := c.Floats()
	return rgb{r, g, b}
}

func to8(v float32) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}

func tcellColor(c rgb) tcell.Color {
	return tcell.NewRGBColor(int32(to8(c.r)), int32(to8(c.g)), int32(to8(c.b)))
}

func min3(a, b, c float32) float32 { return min(a, b, c) }
func max3(a, b, c float32) float32 { return max(a, b, c) }
