package game

import (
	"mazecaster/internal/game/keytracker"
	"mazecaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputHandler turns keyboard and mouse state into view actions
type InputHandler struct {
	game *Game

	modeKeyTracker    keytracker.KeyStateTracker
	minimapKeyTracker keytracker.KeyStateTracker
	textureKeyTracker keytracker.KeyStateTracker

	captured   bool
	paused     bool
	lastMouseX int
	haveMouse  bool
}

// NewInputHandler creates a new input handler
func NewInputHandler(game *Game) *InputHandler {
	return &InputHandler{game: game}
}

// HandleInput reads this frame's input
func (ih *InputHandler) HandleInput() world.Actions {
	var a world.Actions

	// Movement and rotation
	a.Move = axis(anyPressed(ebiten.KeyDown, ebiten.KeyS), anyPressed(ebiten.KeyUp, ebiten.KeyW))
	a.Turn = axis(anyPressed(ebiten.KeyLeft, ebiten.KeyA), anyPressed(ebiten.KeyRight, ebiten.KeyD))
	a.Strafe = axis(anyPressed(ebiten.KeyQ), anyPressed(ebiten.KeyE))

	// View toggles
	a.ToggleMode = ih.modeKeyTracker.IsKeyJustPressed(ebiten.KeyM)
	a.ToggleMinimap = ih.minimapKeyTracker.IsKeyJustPressed(ebiten.KeyN)
	a.ToggleTextures = ih.textureKeyTracker.IsKeyJustPressed(ebiten.KeyT)
	ih.game.hud.Poll()
	ih.game.perfDebug.Poll()

	a.Look = ih.mouseLook(ih.game.view.Mode2D != a.ToggleMode)
	return a
}

// mouseLook keeps the cursor captured in the 3D view and converts its
// horizontal motion into rotation. Escape releases it until the next click;
// the 2D view always releases it.
func (ih *InputHandler) mouseLook(mode2D bool) float64 {
	if mode2D {
		ih.release()
		return 0
	}
	if ih.captured && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		ih.release()
		ih.paused = true
		return 0
	}
	if !ih.captured && (!ih.paused || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)) {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		ih.captured = true
		ih.paused = false
		ih.haveMouse = false
	}
	if !ih.captured {
		return 0
	}

	x, _ := ebiten.CursorPosition()
	if !ih.haveMouse {
		ih.lastMouseX, ih.haveMouse = x, true
		return 0
	}
	dx := x - ih.lastMouseX
	ih.lastMouseX = x
	return mouseTurn(dx, ih.game.config.Input.MouseSensitivity)
}

func (ih *InputHandler) release() {
	if ih.captured {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		ih.captured = false
	}
}

func anyPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// axis maps a pair of opposing inputs to -1, 0 or 1.
func axis(negative, positive bool) float64 {
	v := 0.0
	if negative {
		v--
	}
	if positive {
		v++
	}
	return v
}

// mouseTurn converts a horizontal cursor delta in pixels to radians.
func mouseTurn(dx int, sensitivity float64) float64 {
	return float64(dx) * sensitivity
}
