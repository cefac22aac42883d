package config

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	testConfig := `display:
  screen_width: 640
  screen_height: 480
  window_title: "Test"
world:
  cell_size: 64
  map_file: "maps/test.txt"
camera:
  field_of_view: 1.0471975512
render:
  projection_plane_distance: 70
  cast_method: "march"
  march_step: 0.5
shading:
  pulse_amplitude: 0.1
  pulse_frequency: 0.5
assets:
  wall_textures:
    brick: "textures/brick.png"
  sprites:
    - x: 250
      y: 250
      frames: ["a.png", "b.png"]
      fps: 4
      scale: 0.5
`

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.GetScreenWidth() != 640 || cfg.GetScreenHeight() != 480 {
		t.Errorf("Expected 640x480, got %dx%d", cfg.GetScreenWidth(), cfg.GetScreenHeight())
	}
	if cfg.GetCellSize() != 64 {
		t.Errorf("Expected cell size 64, got %v", cfg.GetCellSize())
	}
	if cfg.Render.CastMethod != "march" || cfg.Render.MarchStep != 0.5 {
		t.Errorf("Render section not decoded: %+v", cfg.Render)
	}
	if cfg.Assets.WallTextures["brick"] != "textures/brick.png" {
		t.Errorf("Expected brick texture path, got %q", cfg.Assets.WallTextures["brick"])
	}
	if len(cfg.Assets.Sprites) != 1 || len(cfg.Assets.Sprites[0].Frames) != 2 {
		t.Fatalf("Expected one sprite with two frames, got %+v", cfg.Assets.Sprites)
	}

	// Defaults fill what the file leaves out
	if cfg.Render.MinDistance != 0.005 {
		t.Errorf("Expected default min distance 0.005, got %v", cfg.Render.MinDistance)
	}
	if cfg.Render.MaxSpriteSize != 8*480 {
		t.Errorf("Expected sprite cap derived from screen height, got %d", cfg.Render.MaxSpriteSize)
	}
	if GlobalConfig != cfg {
		t.Error("Expected GlobalConfig to point at the loaded config")
	}
}

func TestParseKeepsExplicitZeros(t *testing.T) {
	cfg, err := Parse([]byte(`world:
  start_x: 0
  start_y: 0
shading:
  min_brightness: 0
  edge_width: 0
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.World.StartX != 0 || cfg.World.StartY != 0 {
		t.Errorf("Expected start (0,0), got (%v,%v)", cfg.World.StartX, cfg.World.StartY)
	}
	if cfg.Shading.MinBrightness != 0 || cfg.Shading.EdgeWidth != 0 {
		t.Errorf("Explicit zero shading was overwritten: %+v", cfg.Shading)
	}
	// Keys the file leaves out keep their defaults
	if cfg.Shading.FalloffDistance != 1200 || cfg.World.CellSize != 100 {
		t.Errorf("Expected defaults for missing keys, got %+v %+v", cfg.Shading, cfg.World)
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should validate: %v", err)
	}
	if math.Abs(cfg.GetCameraFOV()-math.Pi/3) > 1e-12 {
		t.Errorf("Expected 60 degree FOV, got %v", cfg.GetCameraFOV())
	}
	if cfg.Render.ProjectionPlaneDistance != 70 {
		t.Errorf("Expected projection plane distance 70, got %v", cfg.Render.ProjectionPlaneDistance)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"negative cell size", func(c *Config) { c.World.CellSize = -1 }, "cell_size"},
		{"fov too wide", func(c *Config) { c.Camera.FieldOfView = 7 }, "field_of_view"},
		{"max below min", func(c *Config) { c.Render.MaxDistance = 0.001 }, "max_distance"},
		{"unknown method", func(c *Config) { c.Render.CastMethod = "bsp" }, "cast_method"},
		{"brightness above one", func(c *Config) { c.Shading.MinBrightness = 2 }, "min_brightness"},
		{"zero tps", func(c *Config) { c.Display.TargetTPS = 0 }, "target_tps"},
		{"zero frame interval", func(c *Config) { c.Remote.FrameMillis = 0 }, "frame_millis"},
		{"zero minimap scale", func(c *Config) { c.Minimap.Scale = 0 }, "minimap"},
		{"negative edge width", func(c *Config) { c.Shading.EdgeWidth = -0.1 }, "edge_width"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected wrapped not-exist error, got %v", err)
	}
}

func TestShippedConfig(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "config.yaml"))
	if err != nil {
		t.Fatalf("Shipped config should load: %v", err)
	}
	if cfg.World.MapFile == "" || len(cfg.Assets.Sprites) == 0 {
		t.Errorf("Shipped config should name a map and sprites, got %+v", cfg.World)
	}
	if cfg.Shading.PulseAmplitude == 0 || cfg.Shading.EdgeBoost == 0 {
		t.Error("Shipped config should enable the pulse and edge shading")
	}
}
