package texture

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"mazecaster/internal/mathutil"
)

// Texture is an immutable width×height grid of straight (non-premultiplied)
// RGBA texels, row-major. Textures are shared between frames and sessions
// and must not be modified once handed to a renderer.
type Texture struct {
	Width  int
	Height int
	Pix    []color.RGBA
}

// New creates a transparent texture. Sizes below 1 become 1.
func New(width, height int) *Texture {
	width = max(width, 1)
	height = max(height, 1)
	return &Texture{
		Width:  width,
		Height: height,
		Pix:    make([]color.RGBA, width*height),
	}
}

// Set writes a texel; used while building textures.
func (t *Texture) Set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return
	}
	t.Pix[y*t.Width+x] = c
}

// At returns the texel at (x, y) with both indices clamped into range.
func (t *Texture) At(x, y int) color.RGBA {
	x = mathutil.ClampInt(x, 0, t.Width-1)
	y = mathutil.ClampInt(y, 0, t.Height-1)
	return t.Pix[y*t.Width+x]
}

// Sample reads the texel at normalised (u, v). u wraps modulo 1 and v is
// clamped to [0, 1]; non-finite coordinates read as 0.
func (t *Texture) Sample(u, v float64) color.RGBA {
	if !mathutil.Finite(u) {
		u = 0
	}
	u = mathutil.Fract(u)
	v = mathutil.Clamp(v, 0, 1)
	return t.At(texel(u, t.Width), texel(v, t.Height))
}

// SampleWrap reads the texel at (u, v) with both axes wrapping, for tiled
// floor and sky surfaces.
func (t *Texture) SampleWrap(u, v float64) color.RGBA {
	if !mathutil.Finite(u) {
		u = 0
	}
	if !mathutil.Finite(v) {
		v = 0
	}
	return t.At(texel(mathutil.Fract(u), t.Width), texel(mathutil.Fract(v), t.Height))
}

func texel(f float64, size int) int {
	return mathutil.ClampInt(int(math.Floor(f*float64(size))), 0, size-1)
}

// FromImage copies any image into a texture.
func FromImage(img image.Image) *Texture {
	b := img.Bounds()
	t := New(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			t.Set(x-b.Min.X, y-b.Min.Y, color.RGBA{c.R, c.G, c.B, c.A})
		}
	}
	return t
}

// Load decodes a PNG or JPEG file into a texture.
func Load(path string) (*Texture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("texture %s is empty", path)
	}
	return FromImage(img), nil
}
