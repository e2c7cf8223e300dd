// Package glcanvas implements canvas.Canvas on an OpenGL 4.1 core
// context. Shapes are tessellated into one streaming triangle batch,
// additive soft discs become glow point sprites, and text is drawn from a
// basicfont atlas. A batch is flushed whenever the pipeline, blend mode
// or clip changes, so draw order is preserved.
package glcanvas

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"juice/internal/canvas"
)

type pipeline uint8

const (
	pipeNone pipeline = iota
	pipeShape
	pipeGlow
	pipeText
)

// Stats counts the work of the last frame.
type Stats struct {
	DrawCalls int
	Triangles int
	Sprites   int
	Glyphs    int
}

// glOffset converts a byte offset to unsafe.Pointer for VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Canvas must be created and used on the goroutine that owns the GL
// context.
type Canvas struct {
	xf   canvas.Transform
	mesh canvas.Mesh
	glow []float32 // x, y, size, r, g, b, a
	text []float32 // x, y, u, v, r, g, b, a

	fbW, fbH int

	pipe     pipeline
	additive bool
	clip     canvas.Rect
	stats    Stats

	shapeProg, glowProg, textProg uint32
	shapeVAO, glowVAO, textVAO    uint32
	shapeVBO, glowVBO, textVBO    uint32
	uShapeRes, uGlowRes, uTextRes int32
	fontTex                       uint32
}

// New compiles the programs and uploads the font atlas. gl.Init must
// already have run on the calling thread.
func New() (*Canvas, error) {
	shapeProg, err := linkProgram(shapeVertSrc, shapeFragSrc)
	if err != nil {
		return nil, fmt.Errorf("shape program: %w", err)
	}
	glowProg, err := linkProgram(glowVertSrc, glowFragSrc)
	if err != nil {
		gl.DeleteProgram(shapeProg)
		return nil, fmt.Errorf("glow program: %w", err)
	}
	textProg, err := linkProgram(textVertSrc, textFragSrc)
	if err != nil {
		gl.DeleteProgram(shapeProg)
		gl.DeleteProgram(glowProg)
		return nil, fmt.Errorf("text program: %w", err)
	}
	c := &Canvas{shapeProg: shapeProg, glowProg: glowProg, textProg: textProg}

	// Shape VAO/VBO: per-vertex pos(2) + color(4), matching canvas.Vertex.
	c.shapeVAO, c.shapeVBO = newVertexArray(
		attrib{0, 2, 0},
		attrib{1, 4, 2},
	)
	// Glow VAO/VBO: pos(2) + size(1) + color(4).
	c.glowVAO, c.glowVBO = newVertexArray(
		attrib{0, 2, 0},
		attrib{1, 1, 2},
		attrib{2, 4, 3},
	)
	// Text VAO/VBO: pos(2) + uv(2) + color(4).
	c.textVAO, c.textVBO = newVertexArray(
		attrib{0, 2, 0},
		attrib{1, 2, 2},
		attrib{2, 4, 4},
	)

	c.uShapeRes = gl.GetUniformLocation(shapeProg, gl.Str("uResolution\x00"))
	c.uGlowRes = gl.GetUniformLocation(glowProg, gl.Str("uResolution\x00"))
	gl.UseProgram(textProg)
	c.uTextRes = gl.GetUniformLocation(textProg, gl.Str("uResolution\x00"))
	gl.Uniform1i(gl.GetUniformLocation(textProg, gl.Str("uFontTex\x00")), 0)

	atlas := buildAtlas()
	gl.GenTextures(1, &c.fontTex)
	gl.BindTexture(gl.TEXTURE_2D, c.fontTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(atlasW), int32(atlasH), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(atlas.Pix))

	gl.BindVertexArray(0)
	return c, nil
}

type attrib struct {
	index  uint32
	size   int32
	offset int // in floats
}

func newVertexArray(attribs ...attrib) (vao, vbo uint32) {
	stride := 0
	for _, a := range attribs {
		stride += int(a.size)
	}
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	for _, a := range attribs {
		gl.EnableVertexAttribArray(a.index)
		gl.VertexAttribPointer(a.index, a.size, gl.FLOAT, false, int32(stride*4), glOffset(a.offset*4))
	}
	return vao, vbo
}

func (c *Canvas) Destroy() {
	for _, id := range []uint32{c.shapeVBO, c.glowVBO, c.textVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{c.shapeVAO, c.glowVAO, c.textVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{c.shapeProg, c.glowProg, c.textProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	if c.fontTex != 0 {
		gl.DeleteTextures(1, &c.fontTex)
	}
}

// Begin starts a frame on a fbW x fbH framebuffer. scale maps logical
// units to framebuffer pixels (window content scale).
func (c *Canvas) Begin(fbW, fbH int, scale float64, bg canvas.Color) {
	c.fbW, c.fbH = fbW, fbH
	c.stats = Stats{}
	c.pipe = pipeNone
	c.additive = false
	device := canvas.XYWH(0, 0, float64(fbW), float64(fbH))
	c.clip = device
	c.xf.Reset(device)
	if scale > 0 && scale != 1 {
		c.xf.Scale(scale, scale)
	}

	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	r, g, b, _ := bg.Floats()
	gl.ClearColor(r, g, b, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.SCISSOR_TEST)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

// End flushes pending batches and returns the frame's stats.
func (c *Canvas) End() Stats {
	c.flush()
	gl.Disable(gl.SCISSOR_TEST)
	gl.Disable(gl.BLEND)
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
	if p.Additive && p.Style == canvas.Fill && p.Blur > 0 {
		c.use(pipeGlow, true)
		x, y := m.Apply(cx, cy)
		size := 2 * (radius + p.Blur) * m.ScaleFactor()
		r, g, b, a := p.Color.Floats()
		c.glow = append(c.glow, float32(x), float32(y), float32(size), r, g, b, a)
		return
	}
	c.use(pipeShape, p.Additive)
	c.mesh.AddCircle(m, cx, cy, radius, p)
}

func (c *Canvas) DrawRect(r canvas.Rect, p *canvas.Paint) {
	c.use(pipeShape, p.Additive)
	c.mesh.AddRect(c.xf.Matrix(), r, p)
}

func (c *Canvas) DrawPath(path *canvas.Path, p *canvas.Paint) {
	c.use(pipeShape, p.Additive)
	c.mesh.AddPath(c.xf.Matrix(), path, p)
}

// DrawText draws s with its baseline at y, anchored at x per p.Align.
// Only printable ASCII is in the atlas; other runes draw as '?'.
func (c *Canvas) DrawText(s string, x, y float64, p *canvas.Paint) {
	if s == "" || p.Color.A == 0 {
		return
	}
	c.use(pipeText, false)
	m := c.xf.Matrix()
	scale := p.TextSize / cellH * m.ScaleFactor()
	if !(scale > 0) {
		return
	}
	n := 0
	for range s {
		n++
	}
	w := float64(n*cellW) * scale
	dx, dy := m.Apply(x, y)
	switch p.Align {
	case canvas.AlignCenter:
		dx -= w / 2
	case canvas.AlignRight:
		dx -= w
	}
	top := dy - cellAscent*scale
	gw, gh := float32(cellW*scale), float32(cellH*scale)
	cr, cg, cb, ca := p.Color.Floats()
	sx := float32(math.Round(dx))
	sy := float32(math.Round(top))
	for _, ch := range s {
		u0, v0, u1, v1, ok := glyphUV(ch)
		if !ok {
			u0, v0, u1, v1, _ = glyphUV('?')
		}
		// Two triangles: TL, TR, BL then TR, BR, BL.
		c.text = append(c.text,
			sx, sy, u0, v0, cr, cg, cb, ca,
			sx+gw, sy, u1, v0, cr, cg, cb, ca,
			sx, sy+gh, u0, v1, cr, cg, cb, ca,
			sx+gw, sy, u1, v0, cr, cg, cb, ca,
			sx+gw, sy+gh, u1, v1, cr, cg, cb, ca,
			sx, sy+gh, u0, v1, cr, cg, cb, ca,
		)
		sx += gw
		c.stats.Glyphs++
	}
}

// use switches the active batch, flushing the old one when the pipeline,
// blend mode or clip differs.
func (c *Canvas) use(pipe pipeline, additive bool) {
	clip := c.xf.Clip()
	if pipe == c.pipe && additive == c.additive && clip == c.clip {
		return
	}
	c.flush()
	c.pipe = pipe
	c.additive = additive
	if clip != c.clip {
		c.clip = clip
		c.scissor(clip)
	}
	if additive {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	} else {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
}

func (c *Canvas) scissor(r canvas.Rect) {
	if r == canvas.XYWH(0, 0, float64(c.fbW), float64(c.fbH)) {
		gl.Disable(gl.SCISSOR_TEST)
		return
	}
	gl.Enable(gl.SCISSOR_TEST)
	x0, y0 := int32(math.Floor(r.X)), int32(math.Floor(r.Y))
	x1, y1 := int32(math.Ceil(r.Right())), int32(math.Ceil(r.Bottom()))
	gl.Scissor(x0, int32(c.fbH)-y1, max(0, x1-x0), max(0, y1-y0))
}

func (c *Canvas) flush() {
	res := [2]float32{float32(c.fbW), float32(c.fbH)}
	switch c.pipe {
	case pipeShape:
		if len(c.mesh.Verts) == 0 {
			return
		}
		gl.UseProgram(c.shapeProg)
		gl.Uniform2f(c.uShapeRes, res[0], res[1])
		gl.BindVertexArray(c.shapeVAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, c.shapeVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(c.mesh.Verts)*int(unsafe.Sizeof(canvas.Vertex{})), gl.Ptr(c.mesh.Verts), gl.STREAM_DRAW)
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(c.mesh.Verts)))
		c.stats.Triangles += c.mesh.Triangles()
		c.mesh.Reset()
	case pipeGlow:
		if len(c.glow) == 0 {
			return
		}
		gl.UseProgram(c.glowProg)
		gl.Uniform2f(c.uGlowRes, res[0], res[1])
		gl.BindVertexArray(c.glowVAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, c.glowVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(c.glow)*4, gl.Ptr(c.glow), gl.STREAM_DRAW)
		gl.DrawArrays(gl.POINTS, 0, int32(len(c.glow)/7))
		c.stats.Sprites += len(c.glow) / 7
		c.glow = c.glow[:0]
	case pipeText:
		if len(c.text) == 0 {
			return
		}
		gl.UseProgram(c.textProg)
		gl.Uniform2f(c.uTextRes, res[0], res[1])
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, c.fontTex)
		gl.BindVertexArray(c.textVAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, c.textVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(c.text)*4, gl.Ptr(c.text), gl.STREAM_DRAW)
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(c.text)/8))
		c.text = c.text[:0]
	default:
		return
	}
	c.stats.DrawCalls++
	gl.BindVertexArray(0)
}
