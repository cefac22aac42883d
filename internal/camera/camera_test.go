package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"mazecaster/internal/maze"
)

const eps = 1e-9

func TestDirectionVectors(t *testing.T) {
	c := New(0, 0, 0, math.Pi/3)
	if f := c.Forward(); math.Abs(f[0]-1) > eps || math.Abs(f[1]) > eps {
		t.Errorf("Forward at angle 0 = %v", f)
	}
	if r := c.Right(); math.Abs(r[0]) > eps || math.Abs(r[1]-1) > eps {
		t.Errorf("Right at angle 0 = %v", r)
	}
}

func TestRotateNormalizes(t *testing.T) {
	c := New(0, 0, math.Pi-0.1, math.Pi/3)
	c.Rotate(0.3)
	if c.Angle > math.Pi || c.Angle <= -math.Pi {
		t.Errorf("Angle %v left (-pi, pi]", c.Angle)
	}
	if math.Abs(c.Angle-(-math.Pi+0.2)) > 1e-9 {
		t.Errorf("Expected wrap to -pi+0.2, got %v", c.Angle)
	}
}

func TestRayAngle(t *testing.T) {
	c := New(0, 0, 1, 0.6)
	if got := c.RayAngle(0, 100); math.Abs(got-0.7) > eps {
		t.Errorf("Left column angle = %v, want 0.7", got)
	}
	if got := c.RayAngle(50, 100); math.Abs(got-1) > eps {
		t.Errorf("Center column angle = %v, want 1", got)
	}
	if got := c.RayAngle(3, 0); got != 1 {
		t.Errorf("Zero width should return the heading, got %v", got)
	}
}

func TestMoveSlidesAlongWalls(t *testing.T) {
	m := maze.New([]string{
		"+---+",
		"|   |",
		"|   |",
		"+---+",
	})

	t.Run("free move", func(t *testing.T) {
		c := New(150, 150, 0, math.Pi/3)
		if !c.MoveForward(10, m, 100, 10) {
			t.Fatal("Expected to move")
		}
		if !c.Pos.ApproxEqual(mgl64.Vec2{160, 150}) {
			t.Errorf("Expected (160,150), got %v", c.Pos)
		}
	})

	t.Run("blocked by wall", func(t *testing.T) {
		c := New(150, 115, -math.Pi/2, math.Pi/3)
		if c.Move(mgl64.Vec2{0, -10}, m, 100, 10) {
			t.Errorf("Should not move into the wall, now at %v", c.Pos)
		}
	})

	t.Run("slides on one axis", func(t *testing.T) {
		c := New(150, 115, 0, math.Pi/3)
		c.Move(mgl64.Vec2{10, -10}, m, 100, 10)
		if math.Abs(c.Pos[0]-160) > eps || math.Abs(c.Pos[1]-115) > eps {
			t.Errorf("Expected slide to (160,115), got %v", c.Pos)
		}
	})

	t.Run("no walls", func(t *testing.T) {
		c := New(0, 0, 0, math.Pi/3)
		c.Strafe(5, nil, 100, 10)
		if math.Abs(c.Pos[0]) > eps || math.Abs(c.Pos[1]-5) > eps {
			t.Errorf("Expected (0,5), got %v", c.Pos)
		}
	})
}
