package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"mazecaster/internal/mathutil"
)

// Camera is the observer the renderers project from. Angle 0 looks along +x
// and angles grow towards +y, so on screen (y down) the left edge of the
// view is at Angle - FOV/2.
type Camera struct {
	Pos   mgl64.Vec2 // Position in world units
	Angle float64    // Heading in radians
	FOV   float64    // Horizontal field of view in radians
}

// Walls answers whether a world point is inside a wall cell.
type Walls interface {
	IsWallAt(x, y, cellSize float64) bool
}

// New creates a camera at (x, y).
func New(x, y, angle, fov float64) *Camera {
	return &Camera{Pos: mgl64.Vec2{x, y}, Angle: angle, FOV: fov}
}

// Forward returns the unit heading vector.
func (c *Camera) Forward() mgl64.Vec2 {
	return Direction(c.Angle)
}

// Right returns the unit vector 90 degrees clockwise on screen from Forward.
func (c *Camera) Right() mgl64.Vec2 {
	return Direction(c.Angle + math.Pi/2)
}

// Direction returns the unit vector for an angle.
func Direction(angle float64) mgl64.Vec2 {
	return mgl64.Vec2{math.Cos(angle), math.Sin(angle)}
}

// Rotate turns the camera by delta radians, keeping Angle in (-pi, pi].
func (c *Camera) Rotate(delta float64) {
	c.Angle = mathutil.NormalizeAngle(c.Angle + delta)
}

// RayAngle returns the ray angle of screen column col out of width:
// heading - FOV/2 + FOV*(col/width).
func (c *Camera) RayAngle(col, width int) float64 {
	if width <= 0 {
		return c.Angle
	}
	return c.Angle - c.FOV/2 + c.FOV*float64(col)/float64(width)
}

// Move translates the camera by delta, sliding along walls: each axis is
// tried separately and rejected if the camera's collision box would overlap
// a wall. Returns true if the camera moved at all.
func (c *Camera) Move(delta mgl64.Vec2, walls Walls, cellSize, radius float64) bool {
	if walls == nil {
		c.Pos = c.Pos.Add(delta)
		return delta[0] != 0 || delta[1] != 0
	}

	moved := false
	if delta[0] != 0 {
		next := mgl64.Vec2{c.Pos[0] + delta[0], c.Pos[1]}
		if !blocked(walls, next, cellSize, radius) {
			c.Pos = next
			moved = true
		}
	}
	if delta[1] != 0 {
		next := mgl64.Vec2{c.Pos[0], c.Pos[1] + delta[1]}
		if !blocked(walls, next, cellSize, radius) {
			c.Pos = next
			moved = true
		}
	}
	return moved
}

// MoveForward steps along the heading; negative distance walks backwards.
func (c *Camera) MoveForward(distance float64, walls Walls, cellSize, radius float64) bool {
	return c.Move(c.Forward().Mul(distance), walls, cellSize, radius)
}

// Strafe steps sideways; positive distance moves right on screen.
func (c *Camera) Strafe(distance float64, walls Walls, cellSize, radius float64) bool {
	return c.Move(c.Right().Mul(distance), walls, cellSize, radius)
}

// blocked tests the four corners of the collision box around p.
func blocked(walls Walls, p mgl64.Vec2, cellSize, radius float64) bool {
	for _, d := range [4]mgl64.Vec2{{-radius, -radius}, {radius, -radius}, {-radius, radius}, {radius, radius}} {
		q := p.Add(d)
		if walls.IsWallAt(q[0], q[1], cellSize) {
			return true
		}
	}
	return false
}
