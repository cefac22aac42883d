package world

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"mazecaster/internal/camera"
	"mazecaster/internal/maze"
	"mazecaster/internal/monitoring"
	"mazecaster/internal/raster"
	"mazecaster/internal/render"
	"mazecaster/internal/sprite"
	"mazecaster/internal/texture"
)

// Actions are one tick of viewer input. Move, Strafe and Turn count steps of
// the configured move and rotation speeds.
type Actions struct {
	Move   float64 // Forward steps, negative backs up
	Strafe float64 // Steps to the right
	Turn   float64 // Rotation steps, positive turns right on screen
	Look   float64 // Extra rotation in radians (mouse look)

	ToggleMode     bool
	ToggleMinimap  bool
	ToggleTextures bool
}

// View is one observer of a World: its own camera, renderer, surface, depth
// buffer and sprite clocks. A View is not safe for concurrent use; give each
// window or session its own.
type View struct {
	world      *World
	monitor    *monitoring.PerformanceMonitor
	background color.RGBA

	Camera   *camera.Camera
	Renderer *render.Renderer
	Surface  *raster.Surface
	Depth    *render.DepthBuffer
	Sprites  []*sprite.Sprite

	Mode2D      bool
	ShowMinimap bool
	Textured    bool
	Elapsed     float64 // Seconds, drives the shading pulse

	inGoal bool
}

// NewView creates a viewer of w rendering at width x height pixels. A nil
// monitor gets a private one.
func NewView(w *World, width, height int, monitor *monitoring.PerformanceMonitor) *View {
	if monitor == nil {
		monitor = monitoring.NewPerformanceMonitor()
	}
	cfg := w.Config

	opts := render.OptionsFromConfig(cfg)
	opts.Tiles = w.Tiles

	x, y := w.Start()
	v := &View{
		world:       w,
		monitor:     monitor,
		background:  rgb(cfg.Display.BackgroundColor),
		Camera:      camera.New(x, y, cfg.World.StartAngle, cfg.GetCameraFOV()),
		Renderer:    render.New(opts),
		Depth:       render.NewDepthBuffer(width),
		Sprites:     sprite.CloneAll(w.Sprites),
		Mode2D:      cfg.Display.StartIn2D,
		ShowMinimap: cfg.Minimap.Enabled,
		Textured:    true,
	}
	v.Surface = v.newSurface(width, height)
	v.inGoal = v.AtGoal()
	return v
}

func (v *View) newSurface(width, height int) *raster.Surface {
	s := raster.New(width, height)
	s.SetBackgroundColor(v.background)
	s.Clear()
	return s
}

// World returns the level this view observes.
func (v *View) World() *World {
	return v.world
}

// Resize replaces the surface when the output size changes.
func (v *View) Resize(width, height int) {
	if width == v.Surface.Width && height == v.Surface.Height {
		return
	}
	v.Surface = v.newSurface(width, height)
	v.Depth.Resize(v.Surface.Width)
}

// Step applies one tick of input and advances the animation clocks by dt
// seconds. It reports whether the camera has just entered a goal cell.
func (v *View) Step(a Actions, dt float64) bool {
	cfg := v.world.Config
	cs := cfg.GetCellSize()
	radius := cfg.Input.CollisionRadius

	if a.ToggleMode {
		v.Mode2D = !v.Mode2D
	}
	if a.ToggleMinimap {
		v.ShowMinimap = !v.ShowMinimap
	}
	if a.ToggleTextures {
		v.Textured = !v.Textured
	}

	if turn := a.Turn*cfg.GetRotSpeed() + a.Look; turn != 0 {
		v.Camera.Rotate(turn)
	}
	if a.Move != 0 {
		v.Camera.MoveForward(a.Move*cfg.GetMoveSpeed(), v.world.Maze, cs, radius)
	}
	if a.Strafe != 0 {
		v.Camera.Strafe(a.Strafe*cfg.GetMoveSpeed(), v.world.Maze, cs, radius)
	}

	if dt > 0 && !math.IsInf(dt, 0) {
		v.Elapsed += dt
		sprite.UpdateAll(v.Sprites, dt)
	}

	now := v.AtGoal()
	entered := now && !v.inGoal
	v.inGoal = now
	if entered {
		row, col := v.Cell()
		log.Printf("Goal reached at cell (%d, %d)", row, col)
		v.monitor.GoalReached()
	}
	return entered
}

// Cell returns the maze cell under the camera.
func (v *View) Cell() (row, col int) {
	return maze.WorldToCell(v.Camera.Pos[0], v.Camera.Pos[1], v.world.Config.GetCellSize())
}

// AtGoal reports whether the camera stands in a goal cell.
func (v *View) AtGoal() bool {
	row, col := v.Cell()
	return v.world.Maze.Kind(row, col) == maze.CellGoal
}

// Render draws one frame into the surface: the top-down view in 2D mode,
// otherwise the world pass, the sprite pass and the optional minimap.
func (v *View) Render() *raster.Surface {
	s := v.Surface
	s.Clear()

	if v.Mode2D {
		v.Renderer.RenderTopDown(s, v.world.Maze, v.Camera, v.world.Config.Minimap.CellSize)
		return s
	}

	var textures *texture.Set
	if v.Textured {
		textures = v.world.Textures
	}

	pass := v.monitor.StartWorldPass()
	v.Renderer.RenderWorld(s, v.world.Maze, v.Camera, textures, v.Elapsed, v.Depth)
	pass.EndWorldPass(s.Width)

	pass = v.monitor.StartSpritePass()
	pass.EndSpritePass(v.Renderer.RenderSprites(s, v.Camera, v.Sprites, v.Depth))

	if v.ShowMinimap {
		v.Renderer.RenderMinimap(s, v.world.Maze, v.Camera)
	}
	return s
}

// Status is a one-line description of the camera and view mode.
func (v *View) Status() string {
	mode := "3D"
	if v.Mode2D {
		mode = "2D"
	}
	row, col := v.Cell()
	deg := v.Camera.Angle * 180 / math.Pi
	return fmt.Sprintf("%s  pos %.0f,%.0f  cell %d,%d  heading %.0f", mode, v.Camera.Pos[0], v.Camera.Pos[1], row, col, deg)
}
