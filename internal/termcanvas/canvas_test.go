package termcanvas

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"juice/internal/canvas"
)

// 20x10 cells over a 200x200 view: one pixel is 10x10 logical units.
func newFrame() *Canvas {
	c := New()
	c.Begin(20, 10, canvas.XYWH(0, 0, 200, 200), canvas.Palette.Black)
	return c
}

func TestFillRect(t *testing.T) {
	c := newFrame()
	p := canvas.Paint{Color: canvas.RGB(255, 0, 0)}
	c.DrawRect(canvas.XYWH(0, 0, 100, 200), &p)
	st := c.End()

	if st.Triangles == 0 {
		t.Fatal("no triangles rasterised")
	}
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			got := c.Pixel(x, y)
			want := canvas.Palette.Black
			if x < 10 {
				want = canvas.RGB(255, 0, 0)
			}
			if got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestAlphaAndAdditiveBlend(t *testing.T) {
	c := newFrame()
	half := canvas.Paint{Color: canvas.Color{R: 255, A: 128}}
	c.DrawRect(canvas.XYWH(0, 0, 100, 100), &half)
	add := canvas.Paint{Color: canvas.RGB(100, 0, 0), Additive: true}
	c.DrawRect(canvas.XYWH(100, 0, 100, 100), &add)
	c.DrawRect(canvas.XYWH(100, 0, 100, 100), &add)
	c.End()

	if r := c.Pixel(2, 2).R; r < 126 || r > 130 {
		t.Errorf("half-alpha red = %d, want ~128", r)
	}
	if r := c.Pixel(15, 2).R; r != 200 {
		t.Errorf("two additive draws = %d, want 200", r)
	}
}

func TestClipRect(t *testing.T) {
	c := newFrame()
	c.Save()
	c.ClipRect(canvas.XYWH(50, 50, 50, 50))
	p := canvas.Paint{Color: canvas.Palette.White}
	c.DrawRect(canvas.XYWH(0, 0, 200, 200), &p)
	c.Restore()
	c.End()

	if c.Pixel(7, 7) != canvas.Palette.White {
		t.Errorf("inside clip = %v", c.Pixel(7, 7))
	}
	for _, pt := range [][2]int{{2, 2}, {12, 7}, {7, 12}} {
		if got := c.Pixel(pt[0], pt[1]); got != canvas.Palette.Black {
			t.Errorf("outside clip %v = %v", pt, got)
		}
	}
}

func TestTinyCirclePlotsPoint(t *testing.T) {
	c := newFrame()
	p := canvas.Paint{Color: canvas.Palette.White}
	c.DrawCircle(55, 55, 2, &p)
	st := c.End()
	if st.Points != 1 || st.Triangles != 0 {
		t.Fatalf("stats %+v, want one point", st)
	}
	if c.Pixel(5, 5).R == 0 {
		t.Error("point not plotted")
	}
}

func TestTextPlacement(t *testing.T) {
	c := newFrame()
	p := canvas.Paint{Color: canvas.Palette.Gold, TextSize: 20, Align: canvas.AlignCenter}
	c.DrawText("AB", 100, 100, &p)
	c.End()

	if c.Glyph(9, 4) != 'A' || c.Glyph(10, 4) != 'B' {
		t.Fatalf("glyphs %q %q, want A B", c.Glyph(9, 4), c.Glyph(10, 4))
	}
	if c.Glyph(11, 4) != 0 {
		t.Errorf("stray glyph %q", c.Glyph(11, 4))
	}
}

func TestPresent(t *testing.T) {
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	defer s.Fini()
	s.SetSize(20, 10)

	c := newFrame()
	red := canvas.Paint{Color: canvas.RGB(255, 0, 0)}
	c.DrawRect(canvas.XYWH(0, 0, 200, 10), &red)
	txt := canvas.Paint{Color: canvas.Palette.White, TextSize: 20, Align: canvas.AlignLeft}
	c.DrawText("$", 0, 100, &txt)
	c.End()
	c.Present(s)
	s.Show()

	cells, w, _ := s.GetContents()
	if w != 20 {
		t.Fatalf("screen width %d", w)
	}
	top := cells[0]
	if len(top.Runes) == 0 || top.Runes[0] != halfBlock {
		t.Fatalf("cell (0,0) runes %q", top.Runes)
	}
	fg, bg, _ := top.Style.Decompose()
	if r, _, _ := fg.RGB(); r != 255 {
		t.Errorf("top pixel red = %d", r)
	}
	if r, _, _ := bg.RGB(); r != 0 {
		t.Errorf("bottom pixel red = %d", r)
	}
	if got := cells[4*20].Runes; len(got) == 0 || got[0] != '$' {
		t.Errorf("text cell runes %q", got)
	}
}
