package render

import (
	"image/color"
	"math"

	"mazecaster/internal/camera"
	"mazecaster/internal/maze"
	"mazecaster/internal/raster"
)

var (
	rayColor     = color.RGBA{245, 245, 245, 255}
	playerColor  = color.RGBA{253, 249, 0, 255}
	headingColor = color.RGBA{255, 161, 0, 255}
)

// RenderTopDown draws the maze seen from above with cellPixelSize pixels per
// cell, the camera as a dot and a fan of TopDownRays rays traced to their
// walls. It neither reads nor writes a depth buffer.
func (r *Renderer) RenderTopDown(surface *raster.Surface, grid *maze.Maze, cam *camera.Camera, cellPixelSize int) {
	cp := max(cellPixelSize, 1)
	r.drawCells(surface, grid, 0, 0, cp)

	scale := float64(cp) / r.opts.Caster.CellSize
	px, py := toPixel(cam.Pos[0]*scale), toPixel(cam.Pos[1]*scale)

	surface.SetCurrentColor(rayColor)
	n := r.opts.TopDownRays
	for i := 0; i < n; i++ {
		angle := cam.Angle - cam.FOV/2 + cam.FOV*float64(i)/float64(n)
		hit := r.caster.Cast(grid, cam.Pos, angle, cam.Angle)
		surface.Line(px, py, toPixel(hit.Point[0]*scale), toPixel(hit.Point[1]*scale))
	}

	surface.SetCurrentColor(playerColor)
	surface.FillCircle(px, py, max(cp/10, 2))
}

// RenderMinimap overlays a small top-down map at the configured origin with
// the camera position and a short heading line.
func (r *Renderer) RenderMinimap(surface *raster.Surface, grid *maze.Maze, cam *camera.Camera) {
	m := r.opts.Minimap
	r.drawCells(surface, grid, m.OriginX, m.OriginY, m.Scale)

	scale := float64(m.Scale) / r.opts.Caster.CellSize
	px := float64(m.OriginX) + cam.Pos[0]*scale
	py := float64(m.OriginY) + cam.Pos[1]*scale

	length := math.Max(float64(m.Scale)*2, 6)
	dir := cam.Forward().Mul(length)
	surface.SetCurrentColor(headingColor)
	surface.Line(toPixel(px), toPixel(py), toPixel(px+dir[0]), toPixel(py+dir[1]))

	surface.SetCurrentColor(playerColor)
	surface.SetPixel(toPixel(px), toPixel(py))
}

// drawCells fills every non-empty cell with its tile color.
func (r *Renderer) drawCells(surface *raster.Surface, grid *maze.Maze, ox, oy, cp int) {
	grid.Each(func(row, col int, symbol rune) {
		if maze.Classify(symbol) == maze.CellEmpty {
			return
		}
		surface.SetCurrentColor(r.tiles.Color(symbol))
		surface.FillRect(ox+col*cp, oy+row*cp, cp, cp)
	})
}

// toPixel floors a pixel coordinate, keeping non-finite values off-surface.
func toPixel(v float64) int {
	if math.IsNaN(v) || v < math.MinInt32 {
		return math.MinInt32
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Floor(v))
}
