package fx

import (
	"unicode/utf8"

	"juice/internal/canvas"
)

// roundRect replaces path with r rounded by radius.
func roundRect(path *canvas.Path, r canvas.Rect, radius float64) {
	radius = clampF(radius, 0, min(r.W, r.H)*0.5)
	x0, y0, x1, y1 := r.X, r.Y, r.Right(), r.Bottom()
	path.Reset()
	path.MoveTo(x0+radius, y0)
	path.LineTo(x1-radius, y0)
	path.QuadTo(x1, y0, x1, y0+radius)
	path.LineTo(x1, y1-radius)
	path.QuadTo(x1, y1, x1-radius, y1)
	path.LineTo(x0+radius, y1)
	path.QuadTo(x0, y1, x0, y1-radius)
	path.LineTo(x0, y0+radius)
	path.QuadTo(x0, y0, x0+radius, y0)
	path.Close()
}

// revealPrefix returns the leading fraction t of s, cut on a rune
// boundary. Slicing keeps it allocation-free.
func revealPrefix(s string, t float64) string {
	if t >= 1 {
		return s
	}
	n := int(float64(len(s)) * Clamp01(t))
	for n > 0 && n < len(s) && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
