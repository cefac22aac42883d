package main

import (
	"log"

	"mazecaster/internal/config"
	"mazecaster/internal/game"
	"mazecaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	// Load configuration
	cfg := config.MustLoadConfig("config.yaml")

	// Load tiles, maze, textures and sprites
	w := world.MustLoad(cfg)

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.Display.TargetTPS)

	g := game.NewGame(w)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
