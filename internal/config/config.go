package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all renderer and viewer configuration values
type Config struct {
	Display DisplayConfig `yaml:"display"`
	World   WorldConfig   `yaml:"world"`
	Camera  CameraConfig  `yaml:"camera"`
	Render  RenderConfig  `yaml:"render"`
	Shading ShadingConfig `yaml:"shading"`
	Minimap MinimapConfig `yaml:"minimap"`
	Input   InputConfig   `yaml:"input"`
	Assets  AssetsConfig  `yaml:"assets"`
	Remote  RemoteConfig  `yaml:"remote"`
}

type DisplayConfig struct {
	ScreenWidth     int    `yaml:"screen_width"`
	ScreenHeight    int    `yaml:"screen_height"`
	WindowTitle     string `yaml:"window_title"`
	Resizable       bool   `yaml:"resizable"`
	BackgroundColor [3]int `yaml:"background_color"`
	ShowHUD         bool   `yaml:"show_hud"`
	StartIn2D       bool   `yaml:"start_in_2d"`
	HUDColor        [3]int `yaml:"hud_color"`
	TargetTPS       int    `yaml:"target_tps"`
}

type WorldConfig struct {
	CellSize   float64 `yaml:"cell_size"`
	MapFile    string  `yaml:"map_file"`
	StartX     float64 `yaml:"start_x"`
	StartY     float64 `yaml:"start_y"`
	StartAngle float64 `yaml:"start_angle"`
}

type CameraConfig struct {
	FieldOfView float64 `yaml:"field_of_view"`
}

// RenderConfig controls the projection and ray casting constants.
type RenderConfig struct {
	// ProjectionPlaneDistance is a tunable visual constant, not derived from the FOV.
	ProjectionPlaneDistance float64 `yaml:"projection_plane_distance"`
	MinDistance             float64 `yaml:"min_distance"`
	MaxDistance             float64 `yaml:"max_distance"`
	CastMethod              string  `yaml:"cast_method"` // "dda" or "march"
	MarchStep               float64 `yaml:"march_step"`
	MaxSpriteSize           int     `yaml:"max_sprite_size"` // 0 means 8x the screen height
	AlphaCutoff             uint8   `yaml:"alpha_cutoff"`
	TopDownRays             int     `yaml:"top_down_rays"`
}

type ShadingConfig struct {
	FalloffDistance float64 `yaml:"falloff_distance"`
	MinBrightness   float64 `yaml:"min_brightness"`
	PulseAmplitude  float64 `yaml:"pulse_amplitude"`
	PulseFrequency  float64 `yaml:"pulse_frequency"`
	EdgeWidth       float64 `yaml:"edge_width"`
	EdgeBoost       float64 `yaml:"edge_boost"`
}

type MinimapConfig struct {
	Enabled  bool `yaml:"enabled"`
	OriginX  int  `yaml:"origin_x"`
	OriginY  int  `yaml:"origin_y"`
	Scale    int  `yaml:"scale"`
	CellSize int  `yaml:"top_down_cell_size"`
}

type InputConfig struct {
	MoveSpeed        float64 `yaml:"move_speed"`
	RotationSpeed    float64 `yaml:"rotation_speed"`
	MouseSensitivity float64 `yaml:"mouse_sensitivity"`
	CollisionRadius  float64 `yaml:"collision_radius"`
}

type AssetsConfig struct {
	TileFile     string            `yaml:"tile_file"`
	WallTextures map[string]string `yaml:"wall_textures"` // texture name -> image path
	FloorTexture string            `yaml:"floor_texture"`
	SkyTexture   string            `yaml:"sky_texture"`
	Sprites      []SpriteConfig    `yaml:"sprites"`
}

type SpriteConfig struct {
	X      float64  `yaml:"x"`
	Y      float64  `yaml:"y"`
	Frames []string `yaml:"frames"`
	FPS    float64  `yaml:"fps"`
	Scale  float64  `yaml:"scale"`
}

type RemoteConfig struct {
	Addr        string `yaml:"addr"`
	HostKeyFile string `yaml:"host_key_file"`
	FrameMillis int    `yaml:"frame_millis"`
}

var GlobalConfig *Config

// Default returns the built-in configuration. Parse decodes YAML on top of
// it, so keys a file leaves out keep these values while an explicit zero is
// kept as written.
func Default() *Config {
	c := &Config{
		Display: DisplayConfig{
			ScreenWidth:     1300,
			ScreenHeight:    900,
			WindowTitle:     "Raycaster",
			BackgroundColor: [3]int{50, 50, 100},
			HUDColor:        [3]int{255, 255, 255},
			TargetTPS:       60,
		},
		World: WorldConfig{
			CellSize: 100,
			MapFile:  "assets/maps/level1.txt",
			StartX:   150,
			StartY:   150,
		},
		Camera: CameraConfig{FieldOfView: math.Pi / 3},
		Render: RenderConfig{
			ProjectionPlaneDistance: 70,
			MinDistance:             0.005,
			MaxDistance:             10000,
			CastMethod:              "dda",
			MarchStep:               1,
			AlphaCutoff:             10,
			TopDownRays:             5,
		},
		Shading: ShadingConfig{
			FalloffDistance: 1200,
			MinBrightness:   0.25,
			EdgeWidth:       0.02,
		},
		Minimap: MinimapConfig{Scale: 8, CellSize: 40},
		Input: InputConfig{
			MoveSpeed:        10,
			RotationSpeed:    math.Pi / 10,
			MouseSensitivity: 0.004,
			CollisionRadius:  10,
		},
		Assets: AssetsConfig{TileFile: "assets/tiles.yaml"},
		Remote: RemoteConfig{
			Addr:        ":2222",
			HostKeyFile: "host_key",
			FrameMillis: 66,
		},
	}
	c.resolve()
	return c
}

// LoadConfig loads the configuration from a YAML file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes, fills defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	config := Default()
	// Derived values are recomputed after decoding
	config.Render.MaxSpriteSize = 0
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.resolve()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Set global config for easy access
	GlobalConfig = config

	return config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// resolve fills values derived from other settings.
func (c *Config) resolve() {
	if c.Render.MaxSpriteSize == 0 {
		c.Render.MaxSpriteSize = 8 * c.Display.ScreenHeight
	}
}

// Validate rejects values the renderer cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Display.ScreenWidth < 1 || c.Display.ScreenHeight < 1 {
		errs = append(errs, fmt.Errorf("display size must be positive, got %dx%d", c.Display.ScreenWidth, c.Display.ScreenHeight))
	}
	if c.World.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("cell_size must be positive, got %v", c.World.CellSize))
	}
	if c.Camera.FieldOfView <= 0 || c.Camera.FieldOfView >= 2*math.Pi {
		errs = append(errs, fmt.Errorf("field_of_view must be in (0, 2pi), got %v", c.Camera.FieldOfView))
	}
	if c.Render.MinDistance <= 0 {
		errs = append(errs, fmt.Errorf("min_distance must be positive, got %v", c.Render.MinDistance))
	}
	if c.Render.MaxDistance <= c.Render.MinDistance {
		errs = append(errs, fmt.Errorf("max_distance (%v) must exceed min_distance (%v)", c.Render.MaxDistance, c.Render.MinDistance))
	}
	if c.Render.CastMethod != "dda" && c.Render.CastMethod != "march" {
		errs = append(errs, fmt.Errorf("unknown cast_method %q", c.Render.CastMethod))
	}
	if c.Render.MarchStep <= 0 {
		errs = append(errs, fmt.Errorf("march_step must be positive, got %v", c.Render.MarchStep))
	}
	if c.Display.TargetTPS < 1 {
		errs = append(errs, fmt.Errorf("target_tps must be positive, got %d", c.Display.TargetTPS))
	}
	if c.Remote.FrameMillis < 1 {
		errs = append(errs, fmt.Errorf("frame_millis must be positive, got %d", c.Remote.FrameMillis))
	}
	if c.Minimap.Scale < 1 || c.Minimap.CellSize < 1 {
		errs = append(errs, fmt.Errorf("minimap scale and top_down_cell_size must be positive, got %d and %d", c.Minimap.Scale, c.Minimap.CellSize))
	}
	if c.Shading.FalloffDistance < 0 || c.Shading.EdgeWidth < 0 {
		errs = append(errs, fmt.Errorf("falloff_distance and edge_width must not be negative"))
	}
	if c.Shading.MinBrightness < 0 || c.Shading.MinBrightness > 1 {
		errs = append(errs, fmt.Errorf("min_brightness must be in [0, 1], got %v", c.Shading.MinBrightness))
	}
	return errors.Join(errs...)
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetCellSize() float64 {
	return c.World.CellSize
}

func (c *Config) GetCameraFOV() float64 {
	return c.Camera.FieldOfView
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Input.MoveSpeed
}

func (c *Config) GetRotSpeed() float64 {
	return c.Input.RotationSpeed
}
