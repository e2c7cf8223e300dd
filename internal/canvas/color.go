package canvas

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit per channel, non-premultiplied colour.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 255} }

// HSV builds an opaque colour from hue (degrees), saturation and value in [0,1].
func HSV(h, s, v float64) Color {
	r, g, b := colorful.Hsv(h, s, v).Clamped().RGB255()
	return Color{R: r, G: g, B: b, A: 255}
}

// Hue returns the colour's hue in degrees.
func (c Color) Hue() float64 {
	h, _, _ := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsv()
	return h
}

// WithAlpha scales the colour's alpha by a in [0,1].
func (c Color) WithAlpha(a float64) Color {
	if a <= 0 {
		c.A = 0
		return c
	}
	if a >= 1 {
		return c
	}
	c.A = uint8(float64(c.A)*a + 0.5)
	return c
}

// Mul scales the colour channels by k/255, keeping alpha.
func (c Color) Mul(k uint8) Color {
	return Color{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
		A: c.A,
	}
}

// Lerp mixes a and b in linear sRGB space; t is clamped to [0,1].
func Lerp(a, b Color, t float64) Color {
	return Color{
		R: lerpU8(a.R, b.R, t),
		G: lerpU8(a.G, b.G, t),
		B: lerpU8(a.B, b.B, t),
		A: lerpU8(a.A, b.A, t),
	}
}

// NRGBA converts to the standard library colour type used by image backends.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Floats returns the channels normalised to [0,1].
func (c Color) Floats() (r, g, b, a float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255
}

func lerpU8(a, b uint8, t float64) uint8 {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

var Palette = struct {
	Gold      Color
	GoldDark  Color
	GoldShine Color
	White     Color
	Black     Color
	Rain      Color
	Snow      Color
	LeafA     Color
	LeafB     Color
	Glow      Color
	FireHot   Color
	FireMid   Color
	FireCool  Color
	Cash      Color
	Loss      Color
	Card      Color
	CardDark  Color
	Backdrop  Color
	Lightning Color
}{
	Gold:      RGB(255, 200, 60),
	GoldDark:  RGB(190, 130, 30),
	GoldShine: RGB(255, 245, 200),
	White:     RGB(255, 255, 255),
	Black:     RGB(0, 0, 0),
	Rain:      RGB(175, 195, 220),
	Snow:      RGB(235, 242, 250),
	LeafA:     RGB(214, 120, 40),
	LeafB:     RGB(180, 70, 35),
	Glow:      RGB(255, 200, 90),
	FireHot:   RGB(255, 210, 110),
	FireMid:   RGB(255, 150, 70),
	FireCool:  RGB(190, 70, 45),
	Cash:      RGB(120, 230, 120),
	Loss:      RGB(240, 90, 80),
	Card:      RGB(48, 52, 64),
	CardDark:  RGB(30, 32, 40),
	Backdrop:  RGB(10, 12, 20),
	Lightning: RGB(230, 235, 255),
}
