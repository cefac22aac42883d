package raster

import (
	"image"
	"image/color"
	"math"

	"mazecaster/internal/mathutil"
)

// Surface is a fixed-size RGBA pixel buffer. Pix is row-major, 4 bytes per
// pixel, the layout ebiten's WritePixels expects.
type Surface struct {
	Width  int
	Height int
	Pix    []byte

	background color.RGBA
	current    color.RGBA
}

// New creates a surface cleared to opaque black. Negative sizes become zero.
func New(width, height int) *Surface {
	width = max(width, 0)
	height = max(height, 0)
	s := &Surface{
		Width:      width,
		Height:     height,
		Pix:        make([]byte, width*height*4),
		background: color.RGBA{0, 0, 0, 255},
		current:    color.RGBA{255, 255, 255, 255},
	}
	s.Clear()
	return s
}

// SetBackgroundColor sets the color Clear fills with.
func (s *Surface) SetBackgroundColor(c color.RGBA) {
	s.background = c
}

// SetCurrentColor sets the color used by SetPixel, FillRect and Line.
func (s *Surface) SetCurrentColor(c color.RGBA) {
	s.current = c
}

// CurrentColor returns the active drawing color.
func (s *Surface) CurrentColor() color.RGBA {
	return s.current
}

// Clear fills the whole surface with the background color.
func (s *Surface) Clear() {
	if len(s.Pix) == 0 {
		return
	}
	bg := s.background
	s.Pix[0], s.Pix[1], s.Pix[2], s.Pix[3] = bg.R, bg.G, bg.B, bg.A
	// Doubling copy fills the rest from the first pixel
	for filled := 4; filled < len(s.Pix); filled *= 2 {
		copy(s.Pix[filled:], s.Pix[:filled])
	}
}

// InBounds reports whether (x, y) addresses a pixel.
func (s *Surface) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.Width && y < s.Height
}

// SetPixel writes the current color. Out-of-bounds writes are ignored.
func (s *Surface) SetPixel(x, y int) {
	s.SetRGBA(x, y, s.current)
}

// SetRGBA writes c at (x, y). Out-of-bounds writes are ignored.
func (s *Surface) SetRGBA(x, y int, c color.RGBA) {
	if !s.InBounds(x, y) {
		return
	}
	i := (y*s.Width + x) * 4
	s.Pix[i] = c.R
	s.Pix[i+1] = c.G
	s.Pix[i+2] = c.B
	s.Pix[i+3] = c.A
}

// RGBAAt returns the pixel at (x, y), or transparent black outside.
func (s *Surface) RGBAAt(x, y int) color.RGBA {
	if !s.InBounds(x, y) {
		return color.RGBA{}
	}
	i := (y*s.Width + x) * 4
	return color.RGBA{s.Pix[i], s.Pix[i+1], s.Pix[i+2], s.Pix[i+3]}
}

// ColorModel implements image.Image.
func (s *Surface) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.Width, s.Height)
}

// At implements image.Image.
func (s *Surface) At(x, y int) color.Color {
	return s.RGBAAt(x, y)
}

// Set implements draw.Image, so font drawers and image/draw can target the
// surface directly. Translucent colors are blended over the existing pixel.
func (s *Surface) Set(x, y int, c color.Color) {
	if !s.InBounds(x, y) {
		return
	}
	r, g, b, a := c.RGBA()
	if a == 0xffff {
		s.SetRGBA(x, y, color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 255})
		return
	}
	if a == 0 {
		return
	}
	dst := s.RGBAAt(x, y)
	inv := 0xffff - a
	s.SetRGBA(x, y, color.RGBA{
		R: uint8((r + uint32(dst.R)*0x101*inv/0xffff) >> 8),
		G: uint8((g + uint32(dst.G)*0x101*inv/0xffff) >> 8),
		B: uint8((b + uint32(dst.B)*0x101*inv/0xffff) >> 8),
		A: 255,
	})
}

// FillRect fills a w×h rectangle with the current color, clipped to the
// surface.
func (s *Surface) FillRect(x, y, w, h int) {
	x0 := mathutil.ClampInt(x, 0, s.Width)
	y0 := mathutil.ClampInt(y, 0, s.Height)
	x1 := mathutil.ClampInt(x+w, 0, s.Width)
	y1 := mathutil.ClampInt(y+h, 0, s.Height)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			s.SetRGBA(px, py, s.current)
		}
	}
}

// Line draws a Bresenham line from (x0, y0) to (x1, y1), both endpoints
// included. Segments leaving the surface are clipped to it first.
func (s *Surface) Line(x0, y0, x1, y1 int) {
	if !s.InBounds(x0, y0) || !s.InBounds(x1, y1) {
		fx0, fy0, fx1, fy1, ok := clipLine(float64(x0), float64(y0), float64(x1), float64(y1),
			0, 0, float64(s.Width-1), float64(s.Height-1))
		if !ok {
			return
		}
		x0, y0 = int(math.Round(fx0)), int(math.Round(fy0))
		x1, y1 = int(math.Round(fx1)), int(math.Round(fy1))
	}

	dx := mathutil.IntAbs(x1 - x0)
	dy := -mathutil.IntAbs(y1 - y0)
	sx := mathutil.IntSign(x1 - x0)
	sy := mathutil.IntSign(y1 - y0)
	err := dx + dy

	for {
		s.SetPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clipLine is Liang-Barsky clipping against an inclusive rectangle.
func clipLine(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	if xmax < xmin || ymax < ymin {
		return 0, 0, 0, 0, false
	}
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0 - xmin, xmax - x0, y0 - ymin, ymax - y0}
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// FillCircle fills a disc of radius r centred on (cx, cy).
func (s *Surface) FillCircle(cx, cy, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				s.SetPixel(cx+dx, cy+dy)
			}
		}
	}
}
