package glcanvas

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Atlas layout: printable ASCII in a 16-column grid of 7x13 cells.
const (
	atlasCols  = 16
	atlasFirst = 32
	atlasLast  = 126
	cellW      = 7
	cellH      = 13
	cellAscent = 11
	atlasW     = atlasCols * cellW
	atlasH     = ((atlasLast - atlasFirst + atlasCols) / atlasCols) * cellH
)

// buildAtlas rasterises basicfont's 7x13 face into a white NRGBA image with
// glyph coverage in alpha.
func buildAtlas() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, atlasW, atlasH))
	d := font.Drawer{Dst: img, Src: image.White, Face: basicfont.Face7x13}
	for r := rune(atlasFirst); r <= atlasLast; r++ {
		col, row := glyphCell(r)
		d.Dot = fixed.P(col*cellW, row*cellH+cellAscent)
		d.DrawString(string(r))
	}
	return img
}

func glyphCell(r rune) (col, row int) {
	i := int(r - atlasFirst)
	return i % atlasCols, i / atlasCols
}

// glyphUV returns the atlas texture coordinates of r; ok is false for
// runes outside the atlas.
func glyphUV(r rune) (u0, v0, u1, v1 float32, ok bool) {
	if r < atlasFirst || r > atlasLast {
		return 0, 0, 0, 0, false
	}
	col, row := glyphCell(r)
	u0 = float32(col*cellW) / atlasW
	v0 = float32(row*cellH) / atlasH
	u1 = float32((col+1)*cellW) / atlasW
	v1 = float32((row+1)*cellH) / atlasH
	return u0, v0, u1, v1, true
}
