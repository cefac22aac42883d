package sprite

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"mazecaster/internal/config"
	"mazecaster/internal/texture"
)

// Sprite is a camera-facing billboard placed in the world. Only Elapsed
// changes while a level runs.
type Sprite struct {
	Pos     mgl64.Vec2
	Frames  []*texture.Texture
	FPS     float64
	Elapsed float64
	Scale   float64
}

// New creates a sprite at (x, y). A zero scale becomes 1.
func New(x, y float64, frames []*texture.Texture, fps, scale float64) *Sprite {
	if scale == 0 {
		scale = 1
	}
	return &Sprite{Pos: mgl64.Vec2{x, y}, Frames: frames, FPS: fps, Scale: scale}
}

// Update advances the animation clock by dt seconds.
func (s *Sprite) Update(dt float64) {
	if dt > 0 && !math.IsInf(dt, 0) {
		s.Elapsed += dt
	}
}

// FrameIndex is floor(Elapsed*FPS) mod frame count, with zero frames counted
// as one.
func (s *Sprite) FrameIndex() int {
	n := max(len(s.Frames), 1)
	f := math.Floor(s.Elapsed * s.FPS)
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return int(math.Mod(f, float64(n)))
}

// CurrentFrame returns the frame to draw, or nil when there are none.
func (s *Sprite) CurrentFrame() *texture.Texture {
	if len(s.Frames) == 0 {
		return nil
	}
	return s.Frames[s.FrameIndex()]
}

// placeholderFrames are used when a sprite's images cannot be loaded.
func placeholderFrames() []*texture.Texture {
	return []*texture.Texture{
		texture.Disc(32, color.RGBA{255, 200, 0, 255}),
		texture.Disc(32, color.RGBA{255, 140, 0, 255}),
	}
}

// FromConfig builds a sprite, loading each configured frame. Missing files
// are replaced by placeholders so a level always shows its sprites.
func FromConfig(sc config.SpriteConfig) *Sprite {
	var frames []*texture.Texture
	if len(sc.Frames) == 0 {
		frames = placeholderFrames()
	} else {
		fallback := placeholderFrames()
		for i, path := range sc.Frames {
			frames = append(frames, texture.LoadOr(path, func() *texture.Texture {
				return fallback[i%len(fallback)]
			}))
		}
	}
	return New(sc.X, sc.Y, frames, sc.FPS, sc.Scale)
}

// LoadAll builds every configured sprite.
func LoadAll(cfgs []config.SpriteConfig) []*Sprite {
	sprites := make([]*Sprite, 0, len(cfgs))
	for _, sc := range cfgs {
		sprites = append(sprites, FromConfig(sc))
	}
	return sprites
}

// UpdateAll advances every sprite's animation.
func UpdateAll(sprites []*Sprite, dt float64) {
	for _, s := range sprites {
		s.Update(dt)
	}
}

// CloneAll copies the sprites so each viewer keeps its own animation clock.
// Frames are shared.
func CloneAll(sprites []*Sprite) []*Sprite {
	out := make([]*Sprite, 0, len(sprites))
	for _, s := range sprites {
		if s == nil {
			continue
		}
		c := *s
		out = append(out, &c)
	}
	return out
}
