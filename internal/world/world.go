package world

import (
	"fmt"
	"image/color"
	"log"

	"mazecaster/internal/config"
	"mazecaster/internal/maze"
	"mazecaster/internal/sprite"
	"mazecaster/internal/texture"
)

// World is a loaded level. It is shared by every viewer and never modified
// after loading; viewers animate their own copies of the sprites.
type World struct {
	Config   *config.Config
	Maze     *maze.Maze
	Tiles    *maze.TileSet
	Textures *texture.Set
	Sprites  []*sprite.Sprite
}

// New assembles a world from already loaded parts. A nil tile set falls back
// to the built-in one.
func New(cfg *config.Config, m *maze.Maze, tiles *maze.TileSet, textures *texture.Set, sprites []*sprite.Sprite) *World {
	if cfg == nil {
		cfg = config.Default()
	}
	if tiles == nil {
		tiles = maze.DefaultTileSet()
	}
	return &World{
		Config:   cfg,
		Maze:     m,
		Tiles:    tiles,
		Textures: textures,
		Sprites:  sprites,
	}
}

// Load reads the tile set, maze, textures and sprites named by cfg. Only a
// missing maze is an error; missing assets are replaced by placeholders.
func Load(cfg *config.Config) (*World, error) {
	tiles, err := maze.LoadTileSet(cfg.Assets.TileFile)
	if err != nil {
		log.Printf("Warning: Failed to load tile config: %v", err)
		tiles = maze.DefaultTileSet()
	}

	m, err := maze.LoadMaze(cfg.World.MapFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load world: %w", err)
	}

	textures := texture.LoadSet(cfg.Assets, tiles)
	sprites := sprite.LoadAll(cfg.Assets.Sprites)
	log.Printf("World loaded: %dx%d cells, %d wall textures, %d sprites",
		m.Width(), m.Height(), len(textures.Names()), len(sprites))

	return New(cfg, m, tiles, textures, sprites), nil
}

// MustLoad loads the world and panics on error
func MustLoad(cfg *config.Config) *World {
	w, err := Load(cfg)
	if err != nil {
		panic("Failed to load world: " + err.Error())
	}
	return w
}

// Start returns the configured start position, or the center of the first
// open cell when that position is inside a wall.
func (w *World) Start() (x, y float64) {
	cs := w.Config.World.CellSize
	x, y = w.Config.World.StartX, w.Config.World.StartY
	if !w.Maze.IsWallAt(x, y, cs) {
		return x, y
	}

	found := false
	w.Maze.Each(func(row, col int, symbol rune) {
		if found || maze.Classify(symbol) == maze.CellWall {
			return
		}
		x, y = maze.CellCenter(row, col, cs)
		found = true
	})
	if !found {
		log.Printf("Warning: maze has no open cell, starting at (%.0f, %.0f)", x, y)
	}
	return x, y
}

func rgb(c [3]int) color.RGBA {
	return color.RGBA{channel(c[0]), channel(c[1]), channel(c[2]), 255}
}

func channel(v int) uint8 {
	return uint8(min(max(v, 0), 255))
}
