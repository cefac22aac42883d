package render

import (
	"image/color"
	"math"

	"mazecaster/internal/caster"
	"mazecaster/internal/config"
	"mazecaster/internal/mathutil"
	"mazecaster/internal/maze"
)

// DefaultProjectionPlaneDistance scales projected heights. It is a visual
// constant, independent of the field of view.
const DefaultProjectionPlaneDistance = 70.0

// Options configure a Renderer.
type Options struct {
	Caster                  caster.Options
	ProjectionPlaneDistance float64
	MaxSpriteSize           int   // Cap on a sprite's projected edge, in pixels
	AlphaCutoff             uint8 // Sprite texels below this alpha are skipped
	TopDownRays             int
	Shading                 Shading
	Tiles                   *maze.TileSet // Flat colors for untextured walls and the top-down view

	Minimap MinimapOptions
}

// MinimapOptions place the minimap overlay.
type MinimapOptions struct {
	OriginX, OriginY int
	Scale            int // Pixels per cell
}

// Shading combines distance falloff, a time pulse and a highlight band at the
// top and bottom of wall spans into one multiplicative gain.
type Shading struct {
	FalloffDistance float64
	MinBrightness   float64
	PulseAmplitude  float64
	PulseFrequency  float64 // Hz
	EdgeWidth       float64 // Fraction of the span height
	EdgeBoost       float64
}

// DefaultOptions returns the options of the shipped config.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

// OptionsFromConfig maps the render, shading and minimap config sections.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Caster:                  caster.OptionsFromConfig(cfg),
		ProjectionPlaneDistance: cfg.Render.ProjectionPlaneDistance,
		MaxSpriteSize:           cfg.Render.MaxSpriteSize,
		AlphaCutoff:             cfg.Render.AlphaCutoff,
		TopDownRays:             cfg.Render.TopDownRays,
		Shading: Shading{
			FalloffDistance: cfg.Shading.FalloffDistance,
			MinBrightness:   cfg.Shading.MinBrightness,
			PulseAmplitude:  cfg.Shading.PulseAmplitude,
			PulseFrequency:  cfg.Shading.PulseFrequency,
			EdgeWidth:       cfg.Shading.EdgeWidth,
			EdgeBoost:       cfg.Shading.EdgeBoost,
		},
		Minimap: MinimapOptions{
			OriginX: cfg.Minimap.OriginX,
			OriginY: cfg.Minimap.OriginY,
			Scale:   cfg.Minimap.Scale,
		},
	}
}

// Falloff is 1 - d/FalloffDistance clamped to [MinBrightness, 1].
func (s Shading) Falloff(distance float64) float64 {
	if s.FalloffDistance <= 0 {
		return 1
	}
	return mathutil.Clamp(1-distance/s.FalloffDistance, s.MinBrightness, 1)
}

// Pulse is 1 + A*sin(2*pi*f*t), never negative.
func (s Shading) Pulse(t float64) float64 {
	p := 1 + s.PulseAmplitude*math.Sin(2*math.Pi*s.PulseFrequency*t)
	if !mathutil.Finite(p) {
		return 1
	}
	return math.Max(p, 0)
}

// Edge boosts rows within EdgeWidth of either end of a wall span; v is the
// row's position in the span, 0 at the top.
func (s Shading) Edge(v float64) float64 {
	if s.EdgeWidth > 0 && (v < s.EdgeWidth || v > 1-s.EdgeWidth) {
		return 1 + s.EdgeBoost
	}
	return 1
}

// Gain is the full wall multiplier.
func (s Shading) Gain(distance, t, v float64) float64 {
	return s.Falloff(distance) * s.Pulse(t) * s.Edge(v)
}

// Apply scales the color channels by gain, saturating each channel.
func Apply(c color.RGBA, gain float64) color.RGBA {
	return color.RGBA{
		R: mathutil.ClampByte(float64(c.R) * gain),
		G: mathutil.ClampByte(float64(c.G) * gain),
		B: mathutil.ClampByte(float64(c.B) * gain),
		A: 255,
	}
}
