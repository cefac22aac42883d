package world

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"mazecaster/internal/config"
	"mazecaster/internal/maze"
	"mazecaster/internal/monitoring"
	"mazecaster/internal/sprite"
	"mazecaster/internal/texture"
)

func testWorld(cfg *config.Config) *World {
	if cfg == nil {
		cfg = config.Default()
	}
	m := maze.New([]string{
		"+---+",
		"|   |",
		"| g |",
		"|   |",
		"+---+",
	})
	sprites := []*sprite.Sprite{sprite.New(250, 150, nil, 1, 1)}
	return New(cfg, m, nil, texture.NewSet(maze.DefaultTileSet()), sprites)
}

func TestStartFallsBackToOpenCell(t *testing.T) {
	w := testWorld(nil)
	if x, y := w.Start(); x != 150 || y != 150 {
		t.Errorf("Expected configured start (150,150), got (%v,%v)", x, y)
	}

	cfg := config.Default()
	cfg.World.StartX, cfg.World.StartY = 50, 50
	w = testWorld(cfg)
	if x, y := w.Start(); x != 150 || y != 150 {
		t.Errorf("Start inside a wall should move to the first open cell, got (%v,%v)", x, y)
	}
}

func TestStepEntersGoalOnce(t *testing.T) {
	monitor := monitoring.NewPerformanceMonitor()
	v := NewView(testWorld(nil), 32, 24, monitor)
	v.Camera.Pos[0], v.Camera.Pos[1] = 250, 150
	v.Camera.Angle = math.Pi / 2

	entered := 0
	for i := 0; i < 10; i++ {
		if v.Step(Actions{Move: 1}, 0) {
			entered++
		}
	}
	if entered != 1 {
		t.Errorf("Expected exactly one goal entry, got %d", entered)
	}
	if !v.AtGoal() {
		t.Errorf("Camera should stand in the goal cell, at %v", v.Camera.Pos)
	}
	if monitor.GetCurrentMetrics().GoalsReached != 1 {
		t.Error("Goal entry should be counted by the monitor")
	}
}

func TestStepTogglesAndTurns(t *testing.T) {
	w := testWorld(nil)
	v := NewView(w, 32, 24, nil)

	v.Step(Actions{ToggleMode: true, ToggleMinimap: true, ToggleTextures: true}, 0)
	if !v.Mode2D || !v.ShowMinimap || v.Textured {
		t.Errorf("Toggles not applied: 2D=%v minimap=%v textured=%v", v.Mode2D, v.ShowMinimap, v.Textured)
	}

	v.Step(Actions{Turn: 1}, 0)
	if want := w.Config.Input.RotationSpeed; math.Abs(v.Camera.Angle-want) > 1e-9 {
		t.Errorf("Turn should rotate by the rotation speed, got %v want %v", v.Camera.Angle, want)
	}
}

func TestStepAnimatesOwnSprites(t *testing.T) {
	w := testWorld(nil)
	a := NewView(w, 32, 24, nil)
	b := NewView(w, 32, 24, nil)

	a.Step(Actions{}, 0.5)
	if a.Sprites[0].Elapsed != 0.5 || a.Elapsed != 0.5 {
		t.Errorf("View clock should advance, got %v", a.Sprites[0].Elapsed)
	}
	if b.Sprites[0].Elapsed != 0 || w.Sprites[0].Elapsed != 0 {
		t.Error("Other views and the shared world must keep their own clocks")
	}
}

func TestRenderModes(t *testing.T) {
	v := NewView(testWorld(nil), 32, 24, nil)
	v.Textured = false

	s := v.Render()
	for i := 0; i < v.Depth.Len(); i++ {
		if d := v.Depth.At(i); math.IsInf(d, 0) || math.IsNaN(d) {
			t.Fatalf("3D render left depth[%d] = %v", i, d)
		}
	}
	center := s.RGBAAt(16, 12)

	v.Mode2D = true
	s = v.Render()
	if s.RGBAAt(0, 0) != v.World().Tiles.Color('+') {
		t.Errorf("Top-down view should draw the corner tile, got %v", s.RGBAAt(0, 0))
	}
	if center == v.background {
		t.Error("3D view should paint a wall at the screen center")
	}
}

func TestResize(t *testing.T) {
	v := NewView(testWorld(nil), 32, 24, nil)
	old := v.Surface
	v.Resize(32, 24)
	if v.Surface != old {
		t.Error("Same size should keep the surface")
	}
	v.Resize(10, 6)
	if v.Surface.Width != 10 || v.Surface.Height != 6 || v.Depth.Len() != 10 {
		t.Errorf("Resize gave %dx%d, depth %d", v.Surface.Width, v.Surface.Height, v.Depth.Len())
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	mapFile := filepath.Join(dir, "level.txt")
	if err := os.WriteFile(mapFile, []byte("+--+\n|  |\n+--+\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.World.MapFile = mapFile
	cfg.Assets.TileFile = filepath.Join(dir, "missing.yaml")
	w, err := Load(cfg)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if w.Maze.Width() != 4 || w.Tiles == nil || w.Textures == nil {
		t.Errorf("Unexpected world %+v", w)
	}

	cfg.World.MapFile = filepath.Join(dir, "nope.txt")
	if _, err := Load(cfg); err == nil {
		t.Error("Expected an error for a missing maze")
	}
}
