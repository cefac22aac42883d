package game

import (
	"time"

	"mazecaster/internal/config"
	"mazecaster/internal/game/keytracker"
	"mazecaster/internal/monitoring"
	"mazecaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
)

// Game runs one view of the world in an Ebiten window
type Game struct {
	config  *config.Config
	view    *world.View
	monitor *monitoring.PerformanceMonitor
	input   *InputHandler

	// frame receives the software-rendered pixels each Draw
	frame *ebiten.Image

	hud       keytracker.Toggle
	perfDebug keytracker.Toggle

	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
	perfLowFpsSince    time.Time
	perfLastPerfLog    time.Time
}

// NewGame creates a game viewing w at the configured screen size
func NewGame(w *world.World) *Game {
	cfg := w.Config
	monitor := monitoring.NewPerformanceMonitor()

	g := &Game{
		config:    cfg,
		view:      world.NewView(w, cfg.GetScreenWidth(), cfg.GetScreenHeight(), monitor),
		monitor:   monitor,
		hud:       keytracker.Toggle{Key: ebiten.KeyH, On: cfg.Display.ShowHUD},
		perfDebug: keytracker.Toggle{Key: ebiten.KeyF3},
	}
	g.input = NewInputHandler(g)
	return g
}

// View returns the game's viewer state
func (g *Game) View() *world.View {
	return g.view
}

// Update handles input and advances the simulation by one tick
func (g *Game) Update() error {
	start := time.Now()
	defer func() { g.lastUpdateDuration = time.Since(start) }()

	actions := g.input.HandleInput()
	g.view.Step(actions, 1/float64(ebiten.TPS()))
	g.maybeLogPerfDrop()
	return nil
}

// Draw renders the view into the software surface and uploads it
func (g *Game) Draw(screen *ebiten.Image) {
	frameTimer := g.monitor.StartFrame()
	defer frameTimer.EndFrame()
	start := time.Now()
	defer func() { g.lastDrawDuration = time.Since(start) }()

	b := screen.Bounds()
	g.view.Resize(b.Dx(), b.Dy())
	surface := g.view.Render()

	if g.hud.On {
		drawHUD(surface, hudLines(g.view, ebiten.ActualFPS(), g.monitor.GetCurrentMetrics()), rgb(g.config.Display.HUDColor))
	}

	if g.frame == nil || g.frame.Bounds().Dx() != surface.Width || g.frame.Bounds().Dy() != surface.Height {
		if g.frame != nil {
			g.frame.Deallocate()
		}
		g.frame = ebiten.NewImage(surface.Width, surface.Height)
	}
	g.frame.WritePixels(surface.Pix)
	screen.DrawImage(g.frame, nil)
}

// Layout returns the screen dimensions
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.config.GetScreenWidth(), g.config.GetScreenHeight()
}
