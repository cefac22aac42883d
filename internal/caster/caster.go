package caster

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"mazecaster/internal/config"
	"mazecaster/internal/mathutil"
)

// Method selects how rays walk the grid.
type Method int

const (
	// MethodDDA visits every grid line the ray crosses, exactly.
	MethodDDA Method = iota
	// MethodMarch advances in fixed world-unit steps and tests each point.
	MethodMarch
)

func (m Method) String() string {
	if m == MethodMarch {
		return "march"
	}
	return "dda"
}

// ParseMethod maps the config spelling to a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "", "dda":
		return MethodDDA, nil
	case "march":
		return MethodMarch, nil
	default:
		return MethodDDA, fmt.Errorf("unknown cast method %q", s)
	}
}

// Grid is what a ray is cast against. Cells outside the grid must report
// as walls.
type Grid interface {
	IsWall(row, col int) bool
	At(row, col int) (rune, bool)
}

// Options tune a Caster. Distances are in world units.
type Options struct {
	CellSize    float64
	MaxDistance float64
	MinDistance float64
	MarchStep   float64
	Method      Method
}

// DefaultOptions matches the shipped config.
func DefaultOptions() Options {
	return Options{
		CellSize:    100,
		MaxDistance: 10000,
		MinDistance: 0.005,
		MarchStep:   1,
		Method:      MethodDDA,
	}
}

// OptionsFromConfig reads caster options from the render and world sections.
func OptionsFromConfig(cfg *config.Config) Options {
	method, _ := ParseMethod(cfg.Render.CastMethod)
	return Options{
		CellSize:    cfg.World.CellSize,
		MaxDistance: cfg.Render.MaxDistance,
		MinDistance: cfg.Render.MinDistance,
		MarchStep:   cfg.Render.MarchStep,
		Method:      method,
	}
}

// Hit describes where a single ray stopped.
type Hit struct {
	Distance  float64    // Perpendicular to the heading, never below MinDistance
	RayLength float64    // Euclidean length travelled along the ray
	Cell      rune       // Symbol of the struck cell, 0 outside the grid
	Row, Col  int        // Struck cell
	Point     mgl64.Vec2 // World-space hit point
	Miss      bool       // No wall within MaxDistance
}

// TextureU returns the horizontal texture coordinate of the hit: the
// fractional offset within the cell along whichever axis is farther from a
// cell boundary. A point on an x grid line hit a vertical face, so u runs
// along y, and the reverse for horizontal faces.
func (h Hit) TextureU(cellSize float64) float64 {
	if cellSize <= 0 {
		return 0
	}
	fx := mathutil.Fract(h.Point[0] / cellSize)
	fy := mathutil.Fract(h.Point[1] / cellSize)
	if math.Min(fx, 1-fx) <= math.Min(fy, 1-fy) {
		return fy
	}
	return fx
}

// Caster traces rays through a Grid. It holds no per-frame state and can
// be shared by renderers.
type Caster struct {
	opts Options
}

// New creates a caster, replacing unusable option values with defaults.
func New(opts Options) *Caster {
	def := DefaultOptions()
	if !(opts.CellSize > 0) {
		opts.CellSize = def.CellSize
	}
	if !(opts.MinDistance > 0) {
		opts.MinDistance = def.MinDistance
	}
	if !(opts.MaxDistance > opts.MinDistance) || math.IsInf(opts.MaxDistance, 0) {
		opts.MaxDistance = math.Max(def.MaxDistance, opts.MinDistance*2)
	}
	if !(opts.MarchStep > 0) {
		opts.MarchStep = def.MarchStep
	}
	return &Caster{opts: opts}
}

// Options returns the effective options.
func (c *Caster) Options() Options {
	return c.opts
}

// Cast traces one ray from origin at angle. heading is the camera heading
// used for the perpendicular distance correction.
func (c *Caster) Cast(grid Grid, origin mgl64.Vec2, angle, heading float64) Hit {
	if !mathutil.Finite(angle) {
		angle = heading
	}
	dir := mgl64.Vec2{math.Cos(angle), math.Sin(angle)}

	var hit Hit
	if !mathutil.Finite(origin[0]) || !mathutil.Finite(origin[1]) {
		hit = Hit{Row: -1, Col: -1, Point: origin}
	} else if c.opts.Method == MethodMarch {
		hit = c.march(grid, origin, dir)
	} else {
		hit = c.dda(grid, origin, dir)
	}

	if hit.Miss {
		hit.RayLength = c.opts.MaxDistance
		hit.Distance = c.opts.MaxDistance
		return hit
	}
	hit.Distance = c.repair(hit.RayLength * math.Cos(angle-heading))
	return hit
}

// repair keeps a distance finite and at least MinDistance.
func (c *Caster) repair(d float64) float64 {
	if !mathutil.Finite(d) || d < c.opts.MinDistance {
		return c.opts.MinDistance
	}
	return math.Min(d, c.opts.MaxDistance)
}

func (c *Caster) dda(grid Grid, origin, dir mgl64.Vec2) Hit {
	cs := c.opts.CellSize
	posX := origin[0] / cs
	posY := origin[1] / cs
	cellX := cellIndex(posX, dir[0])
	cellY := cellIndex(posY, dir[1])

	if grid.IsWall(cellY, cellX) {
		return c.hitAt(grid, origin, dir, 0, cellY, cellX)
	}

	// How far along the ray (in cells) to cross one grid line on each axis
	deltaX, deltaY := 1e30, 1e30
	if dir[0] != 0 {
		deltaX = math.Abs(1 / dir[0])
	}
	if dir[1] != 0 {
		deltaY = math.Abs(1 / dir[1])
	}

	var stepX, stepY int
	var sideX, sideY float64
	if dir[0] < 0 {
		stepX = -1
		sideX = (posX - float64(cellX)) * deltaX
	} else {
		stepX = 1
		sideX = (float64(cellX) + 1 - posX) * deltaX
	}
	if dir[1] < 0 {
		stepY = -1
		sideY = (posY - float64(cellY)) * deltaY
	} else {
		stepY = 1
		sideY = (float64(cellY) + 1 - posY) * deltaY
	}

	maxCells := c.opts.MaxDistance / cs
	for {
		var t float64
		if sideX < sideY {
			t = sideX
			sideX += deltaX
			cellX += stepX
		} else {
			t = sideY
			sideY += deltaY
			cellY += stepY
		}
		if t > maxCells {
			return Hit{Row: cellY, Col: cellX, Point: origin.Add(dir.Mul(c.opts.MaxDistance)), Miss: true}
		}
		if grid.IsWall(cellY, cellX) {
			return c.hitAt(grid, origin, dir, t*cs, cellY, cellX)
		}
	}
}

func (c *Caster) march(grid Grid, origin, dir mgl64.Vec2) Hit {
	cs := c.opts.CellSize
	steps := int(math.Ceil(c.opts.MaxDistance / c.opts.MarchStep))
	for i := 0; i <= steps; i++ {
		d := math.Min(float64(i)*c.opts.MarchStep, c.opts.MaxDistance)
		p := origin.Add(dir.Mul(d))
		row := cellIndex(p[1]/cs, dir[1])
		col := cellIndex(p[0]/cs, dir[0])
		if grid.IsWall(row, col) {
			return c.hitAt(grid, origin, dir, d, row, col)
		}
	}
	return Hit{Row: -1, Col: -1, Point: origin.Add(dir.Mul(c.opts.MaxDistance)), Miss: true}
}

func (c *Caster) hitAt(grid Grid, origin, dir mgl64.Vec2, length float64, row, col int) Hit {
	symbol, _ := grid.At(row, col)
	return Hit{
		RayLength: length,
		Cell:      symbol,
		Row:       row,
		Col:       col,
		Point:     origin.Add(dir.Mul(length)),
	}
}

// cellIndex floors a coordinate given in cells. A coordinate exactly on a
// grid line belongs to the cell the ray is moving into.
func cellIndex(v, dir float64) int {
	f := math.Floor(v)
	if v == f && dir < 0 {
		f--
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return int(f)
}
