package render

import (
	"math"

	"mazecaster/internal/camera"
	"mazecaster/internal/caster"
	"mazecaster/internal/mathutil"
	"mazecaster/internal/maze"
	"mazecaster/internal/raster"
	"mazecaster/internal/texture"
)

// Renderer draws a maze from a camera into a raster.Surface. A frame is
// RenderWorld followed by RenderSprites with the same DepthBuffer; the
// top-down views are independent of both. A Renderer keeps scratch buffers
// and must not be used by two goroutines at once.
type Renderer struct {
	opts   Options
	caster *caster.Caster
	tiles  *maze.TileSet

	// rowDistance[y] is the inverse-perspective floor/sky distance of row y
	rowDistance []float64
	rowHeight   int
}

// New creates a renderer, filling unusable options with defaults.
func New(opts Options) *Renderer {
	if !(opts.ProjectionPlaneDistance > 0) {
		opts.ProjectionPlaneDistance = DefaultProjectionPlaneDistance
	}
	if opts.AlphaCutoff == 0 {
		opts.AlphaCutoff = 10
	}
	if opts.TopDownRays <= 0 {
		opts.TopDownRays = 5
	}
	if opts.Minimap.Scale <= 0 {
		opts.Minimap.Scale = 8
	}
	c := caster.New(opts.Caster)
	opts.Caster = c.Options()

	tiles := opts.Tiles
	if tiles == nil {
		tiles = maze.DefaultTileSet()
	}
	return &Renderer{opts: opts, caster: c, tiles: tiles}
}

// Options returns the effective options.
func (r *Renderer) Options() Options {
	return r.opts
}

// WallHeight projects a perpendicular distance to a wall span height in
// pixels: (halfH / distance) * projection plane distance. Distances below
// the caster's epsilon are raised to it, so the result is always finite.
func (r *Renderer) WallHeight(distance float64, screenHeight int) float64 {
	halfH := float64(screenHeight) / 2
	return halfH / r.repair(distance) * r.opts.ProjectionPlaneDistance
}

func (r *Renderer) repair(d float64) float64 {
	minD := r.opts.Caster.MinDistance
	if !mathutil.Finite(d) {
		if d > 0 {
			return r.opts.Caster.MaxDistance
		}
		return minD
	}
	return math.Max(d, minD)
}

// RenderWorld casts one ray per column and paints sky, wall and floor. The
// depth buffer is reset and then receives exactly one finite distance per
// column. textures may be nil, in which case walls use flat tile colors and
// sky and floor are left as the surface background.
func (r *Renderer) RenderWorld(surface *raster.Surface, grid *maze.Maze, cam *camera.Camera, textures *texture.Set, t float64, depth *DepthBuffer) {
	w, h := surface.Width, surface.Height
	if depth == nil {
		depth = NewDepthBuffer(w)
	} else if depth.Len() != w {
		depth.Resize(w)
	} else {
		depth.Reset()
	}
	if w == 0 {
		return
	}
	if h == 0 {
		// Nothing to paint, but the sprite pass still reads every column
		for col := 0; col < w; col++ {
			depth.Set(col, r.opts.Caster.MaxDistance)
		}
		return
	}
	r.prepareRows(h)

	var floorTex, skyTex *texture.Texture
	if textures != nil {
		floorTex, skyTex = textures.Floor, textures.Sky
	}
	tiles := r.tiles
	if textures != nil && textures.Tiles != nil {
		tiles = textures.Tiles
	}

	halfH := float64(h) / 2
	shading := r.opts.Shading
	pulse := shading.Pulse(t)
	cs := r.opts.Caster.CellSize

	for col := 0; col < w; col++ {
		angle := cam.RayAngle(col, w)
		hit := r.caster.Cast(grid, cam.Pos, angle, cam.Angle)
		distance := r.repair(hit.Distance)
		depth.Set(col, distance)

		// Rows [wallStart, wallEnd) belong to the wall
		wallStart, wallEnd := int(halfH), int(halfH)
		wallHeight := halfH / distance * r.opts.ProjectionPlaneDistance
		top := halfH - wallHeight/2
		if !hit.Miss {
			wallStart = clampRow(math.Ceil(top), h)
			wallEnd = clampRow(math.Ceil(halfH+wallHeight/2), h)
		}

		dirX, dirY := math.Cos(angle), math.Sin(angle)
		// Floor and sky distances are measured along the heading; divide by
		// the cosine to walk along this column's ray instead
		cosCorr := math.Cos(angle - cam.Angle)
		if cosCorr < 1e-6 {
			cosCorr = 1e-6
		}

		if skyTex != nil {
			for y := 0; y < wallStart; y++ {
				along := r.rowDistance[y] / cosCorr
				u := (cam.Pos[0] + dirX*along) / cs
				v := (cam.Pos[1] + dirY*along) / cs
				surface.SetRGBA(col, y, skyTex.SampleWrap(u, v))
			}
		}

		if wallEnd > wallStart {
			wallTex := textures.ForSymbol(hit.Cell)
			flat := tiles.Lookup(hit.Cell).Color
			u := hit.TextureU(cs)
			for y := wallStart; y < wallEnd; y++ {
				v := (float64(y) + 0.5 - top) / wallHeight
				c := flat
				if wallTex != nil {
					c = wallTex.Sample(u, v)
				}
				surface.SetRGBA(col, y, Apply(c, shading.Gain(distance, t, v)))
			}
		}

		if floorTex != nil {
			for y := wallEnd; y < h; y++ {
				along := r.rowDistance[y] / cosCorr
				u := (cam.Pos[0] + dirX*along) / cs
				v := (cam.Pos[1] + dirY*along) / cs
				gain := shading.Falloff(r.rowDistance[y]) * pulse
				surface.SetRGBA(col, y, Apply(floorTex.SampleWrap(u, v), gain))
			}
		}
	}
}

// prepareRows caches rowDistance for a screen height:
// (halfH / |y - halfH|) * projection plane distance, with the horizon row
// treated as one pixel away.
func (r *Renderer) prepareRows(h int) {
	if r.rowHeight == h && len(r.rowDistance) == h {
		return
	}
	r.rowDistance = make([]float64, h)
	r.rowHeight = h
	halfH := float64(h) / 2
	for y := range r.rowDistance {
		dy := math.Abs(float64(y) - halfH)
		if dy < 1 {
			dy = 1
		}
		r.rowDistance[y] = math.Min(halfH/dy*r.opts.ProjectionPlaneDistance, r.opts.Caster.MaxDistance)
	}
}

func clampRow(v float64, h int) int {
	if v <= 0 {
		return 0
	}
	if v >= float64(h) {
		return h
	}
	return int(v)
}
