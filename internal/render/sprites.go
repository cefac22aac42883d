package render

import (
	"math"
	"sort"

	"mazecaster/internal/camera"
	"mazecaster/internal/mathutil"
	"mazecaster/internal/raster"
	"mazecaster/internal/sprite"
)

// RenderSprites draws billboards over a completed world pass, farthest
// first. A texel is drawn only where the sprite is strictly nearer than the
// column's wall depth; the depth buffer is never written, so sprites do not
// occlude each other except through draw order. The caller's slice is left
// in its original order. Returns the number of pixels drawn.
func (r *Renderer) RenderSprites(surface *raster.Surface, cam *camera.Camera, sprites []*sprite.Sprite, depth *DepthBuffer) int {
	if len(sprites) == 0 || surface.Width == 0 || surface.Height == 0 || depth == nil {
		return 0
	}

	type entry struct {
		s    *sprite.Sprite
		dist float64
	}
	order := make([]entry, 0, len(sprites))
	for _, s := range sprites {
		if s == nil {
			continue
		}
		d := s.Pos.Sub(cam.Pos).Len()
		if math.IsNaN(d) {
			continue
		}
		order = append(order, entry{s: s, dist: d})
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].dist > order[j].dist
	})

	drawn := 0
	for _, e := range order {
		drawn += r.drawSprite(surface, cam, e.s, e.dist, depth)
	}
	return drawn
}

func (r *Renderer) drawSprite(surface *raster.Surface, cam *camera.Camera, s *sprite.Sprite, dist float64, depth *DepthBuffer) int {
	frame := s.CurrentFrame()
	if frame == nil {
		return 0
	}
	dist = math.Max(dist, r.opts.Caster.MinDistance)
	if math.IsInf(dist, 0) {
		return 0
	}

	w, h := surface.Width, surface.Height
	halfH := float64(h) / 2

	delta := s.Pos.Sub(cam.Pos)
	angle := mathutil.NormalizeAngle(math.Atan2(delta[1], delta[0]) - cam.Angle)
	if math.Abs(angle) > cam.FOV/2 || cam.FOV <= 0 {
		return 0
	}
	screenX := (angle/cam.FOV + 0.5) * float64(w)

	size := halfH / dist * r.opts.ProjectionPlaneDistance * s.Scale
	if r.opts.MaxSpriteSize > 0 && size > float64(r.opts.MaxSpriteSize) {
		size = float64(r.opts.MaxSpriteSize)
	}
	if !(size >= 1) {
		return 0
	}

	left := screenX - size/2
	top := halfH - size/2
	x0 := clampRow(math.Floor(left), w)
	x1 := clampRow(math.Floor(left+size), w)
	y0 := clampRow(math.Floor(top), h)
	y1 := clampRow(math.Floor(top+size), h)
	if x0 >= x1 || y0 >= y1 {
		return 0
	}

	uMax := math.Nextafter(1, 0)
	drawn := 0
	for x := x0; x < x1; x++ {
		if !(dist < depth.At(x)) {
			continue
		}
		u := mathutil.Clamp((float64(x)-left)/size, 0, uMax)
		for y := y0; y < y1; y++ {
			c := frame.Sample(u, (float64(y)-top)/size)
			if c.A < r.opts.AlphaCutoff {
				continue
			}
			c.A = 255
			surface.SetRGBA(x, y, c)
			drawn++
		}
	}
	return drawn
}
