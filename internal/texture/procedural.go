package texture

import "image/color"

// Procedural textures stand in for missing image files.

// Solid returns a 1×1 texture of a single color.
func Solid(c color.RGBA) *Texture {
	t := New(1, 1)
	t.Pix[0] = c
	return t
}

// Brick draws staggered bricks with mortar lines every 8 texels, offsetting
// every other course by half a brick.
func Brick(width, height int, brick, mortar color.RGBA) *Texture {
	t := New(width, height)
	const course = 8
	brickLen := max(t.Width/4, 2)
	for y := 0; y < t.Height; y++ {
		row := y / course
		offset := 0
		if row%2 == 1 {
			offset = brickLen / 2
		}
		for x := 0; x < t.Width; x++ {
			c := brick
			if y%course == 0 || (x+offset)%brickLen == 0 {
				c = mortar
			}
			t.Set(x, y, c)
		}
	}
	return t
}

// Checker alternates two colors in cell×cell squares.
func Checker(width, height, cell int, a, b color.RGBA) *Texture {
	t := New(width, height)
	cell = max(cell, 1)
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			if (x/cell+y/cell)%2 == 0 {
				t.Set(x, y, a)
			} else {
				t.Set(x, y, b)
			}
		}
	}
	return t
}

// Gradient blends from top to bottom over the texture's height.
func Gradient(width, height int, top, bottom color.RGBA) *Texture {
	t := New(width, height)
	for y := 0; y < t.Height; y++ {
		f := 0.0
		if t.Height > 1 {
			f = float64(y) / float64(t.Height-1)
		}
		c := lerp(top, bottom, f)
		for x := 0; x < t.Width; x++ {
			t.Set(x, y, c)
		}
	}
	return t
}

// Disc fills a circle of the given color on a transparent square, a
// placeholder sprite frame.
func Disc(size int, c color.RGBA) *Texture {
	t := New(size, size)
	r := float64(t.Width) / 2
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			dx := float64(x) + 0.5 - r
			dy := float64(y) + 0.5 - r
			if dx*dx+dy*dy <= r*r {
				t.Set(x, y, c)
			}
		}
	}
	return t
}

func lerp(a, b color.RGBA, f float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*f + 0.5)
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}
