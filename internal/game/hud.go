package game

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"mazecaster/internal/monitoring"
	"mazecaster/internal/world"
)

const hudMargin = 6

var hudBacking = color.RGBA{0, 0, 0, 140}

// hudLines builds the overlay text for the current frame
func hudLines(v *world.View, fps float64, m monitoring.Metrics) []string {
	textures := "on"
	if !v.Textured {
		textures = "off"
	}
	return []string{
		fmt.Sprintf("FPS %.0f  world %.1fms  sprites %.1fms", fps, ms(m.WorldPassTime.Nanoseconds()), ms(m.SpritePassTime.Nanoseconds())),
		v.Status(),
		fmt.Sprintf("textures %s  goals %d", textures, m.GoalsReached),
		"M map  N minimap  T textures  H hud  Esc frees mouse",
	}
}

func ms(ns int64) float64 {
	return float64(ns) / 1e6
}

// drawHUD writes lines of 7x13 text over a translucent box in the top left
// corner of dst.
func drawHUD(dst draw.Image, lines []string, col color.RGBA) {
	if len(lines) == 0 {
		return
	}
	face := basicfont.Face7x13
	lineH := face.Height

	width := 0
	for _, line := range lines {
		width = max(width, font.MeasureString(face, line).Ceil())
	}
	box := image.Rect(0, 0, width+2*hudMargin, len(lines)*lineH+2*hudMargin)
	draw.Draw(dst, box.Intersect(dst.Bounds()), image.NewUniform(hudBacking), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
	}
	for i, line := range lines {
		d.Dot = fixed.P(hudMargin, hudMargin+face.Ascent+i*lineH)
		d.DrawString(line)
	}
}

func rgb(c [3]int) color.RGBA {
	clamp := func(v int) uint8 { return uint8(min(max(v, 0), 255)) }
	return color.RGBA{clamp(c[0]), clamp(c[1]), clamp(c[2]), 255}
}
