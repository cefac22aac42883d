package caster

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"mazecaster/internal/config"
	"mazecaster/internal/maze"
)

// room is a 3x3 open area bordered by walls, 100 units per cell.
var room = maze.New([]string{
	"+---+",
	"|   |",
	"|   |",
	"|   |",
	"+---+",
})

func casters() map[string]*Caster {
	march := DefaultOptions()
	march.Method = MethodMarch
	return map[string]*Caster{
		"dda":   New(DefaultOptions()),
		"march": New(march),
	}
}

func TestCastStraightAtWall(t *testing.T) {
	for name, c := range casters() {
		t.Run(name, func(t *testing.T) {
			hit := c.Cast(room, mgl64.Vec2{300, 250}, 0, 0)
			if hit.Miss {
				t.Fatal("Expected a hit")
			}
			if math.Abs(hit.Distance-100) > c.Options().MarchStep {
				t.Errorf("Expected distance ~100, got %v", hit.Distance)
			}
			if hit.Cell != '|' || hit.Row != 2 || hit.Col != 4 {
				t.Errorf("Expected '|' at (2,4), got %q at (%d,%d)", hit.Cell, hit.Row, hit.Col)
			}
			if u := hit.TextureU(100); math.Abs(u-0.5) > 1e-9 {
				t.Errorf("Expected u=0.5 at the middle of the face, got %v", u)
			}
		})
	}
}

func TestCastPerpendicularDistance(t *testing.T) {
	c := New(DefaultOptions())
	hit := c.Cast(room, mgl64.Vec2{300, 250}, 0.3, 0)
	if math.Abs(hit.Distance-100) > 1e-6 {
		t.Errorf("Perpendicular distance should be 100, got %v", hit.Distance)
	}
	if math.Abs(hit.RayLength-100/math.Cos(0.3)) > 1e-6 {
		t.Errorf("Ray length should be %v, got %v", 100/math.Cos(0.3), hit.RayLength)
	}
}

func TestCastCorridorMiss(t *testing.T) {
	corridor := maze.New([]string{
		"+--------------------+",
		"|                    |",
		"+--------------------+",
	})
	for name, c := range casters() {
		t.Run(name, func(t *testing.T) {
			opts := c.Options()
			opts.MaxDistance = 500
			c := New(opts)
			hit := c.Cast(corridor, mgl64.Vec2{150, 150}, 0, 0)
			if !hit.Miss {
				t.Fatalf("Expected a miss, got %+v", hit)
			}
			if hit.Distance != 500 || hit.RayLength != 500 {
				t.Errorf("Miss should report the max distance, got %v/%v", hit.Distance, hit.RayLength)
			}
		})
	}
}

func TestCastEpsilonFloor(t *testing.T) {
	c := New(DefaultOptions())
	tests := []struct {
		name   string
		origin mgl64.Vec2
		angle  float64
	}{
		{"inside a wall", mgl64.Vec2{50, 50}, 0},
		{"touching a wall", mgl64.Vec2{399.999, 250}, 0},
		{"outside the grid", mgl64.Vec2{-50, -50}, 1},
		{"nan origin", mgl64.Vec2{math.NaN(), 250}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hit := c.Cast(room, tc.origin, tc.angle, tc.angle)
			if hit.Distance != c.Options().MinDistance {
				t.Errorf("Expected the epsilon floor, got %v", hit.Distance)
			}
		})
	}
}

func TestCastBoundaryTieBreak(t *testing.T) {
	grid := maze.New([]string{
		"+---+",
		"|# |",
		"+---+",
	})
	for name, c := range casters() {
		t.Run(name, func(t *testing.T) {
			// x=200 is the line between the '#' cell and the open cell
			back := c.Cast(grid, mgl64.Vec2{200, 150}, math.Pi, math.Pi)
			if back.Col != 1 || back.Distance != c.Options().MinDistance {
				t.Errorf("Moving -x should start in the '#' cell, got col %d dist %v", back.Col, back.Distance)
			}
			fwd := c.Cast(grid, mgl64.Vec2{200, 150}, 0, 0)
			if fwd.Col != 3 || math.Abs(fwd.Distance-100) > c.Options().MarchStep {
				t.Errorf("Moving +x should start in the open cell, got col %d dist %v", fwd.Col, fwd.Distance)
			}
		})
	}
}

func TestCastIrregularRowEndsAtWall(t *testing.T) {
	grid := maze.New([]string{"    "})
	c := New(DefaultOptions())

	hit := c.Cast(grid, mgl64.Vec2{50, 50}, 0, 0)
	if math.Abs(hit.Distance-350) > 1e-6 || hit.Cell != 0 {
		t.Errorf("Expected the end of the row at 350, got %v (%q)", hit.Distance, hit.Cell)
	}
	hit = c.Cast(grid, mgl64.Vec2{50, 50}, math.Pi, math.Pi)
	if math.Abs(hit.Distance-50) > 1e-6 || hit.Col != -1 {
		t.Errorf("Expected negative column wall at 50, got %v col %d", hit.Distance, hit.Col)
	}
}

func TestTextureUFaces(t *testing.T) {
	vertical := Hit{Point: mgl64.Vec2{400, 225}}
	if u := vertical.TextureU(100); math.Abs(u-0.25) > 1e-9 {
		t.Errorf("Vertical face u = %v, want 0.25", u)
	}
	horizontal := Hit{Point: mgl64.Vec2{375, 300}}
	if u := horizontal.TextureU(100); math.Abs(u-0.75) > 1e-9 {
		t.Errorf("Horizontal face u = %v, want 0.75", u)
	}
}

func TestParseMethod(t *testing.T) {
	if m, err := ParseMethod("march"); err != nil || m != MethodMarch {
		t.Errorf("ParseMethod(march) = %v, %v", m, err)
	}
	if m, err := ParseMethod(""); err != nil || m != MethodDDA {
		t.Errorf("Empty method should default to dda, got %v, %v", m, err)
	}
	if _, err := ParseMethod("bogus"); err == nil {
		t.Error("Expected error for unknown method")
	}
}

func TestNewRepairsOptions(t *testing.T) {
	c := New(Options{CellSize: -1, MaxDistance: math.Inf(1), MarchStep: 0})
	opts := c.Options()
	if opts.CellSize != 100 || opts.MinDistance != 0.005 || opts.MaxDistance != 10000 || opts.MarchStep != 1 {
		t.Errorf("Unexpected repaired options %+v", opts)
	}

	fromCfg := OptionsFromConfig(config.Default())
	if fromCfg != DefaultOptions() {
		t.Errorf("Default config should give default options, got %+v", fromCfg)
	}
}
