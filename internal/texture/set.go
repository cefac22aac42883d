package texture

import (
	"image/color"
	"log"
	"sort"

	"mazecaster/internal/config"
	"mazecaster/internal/maze"
)

const placeholderSize = 64

// Set resolves the textures a frame needs: walls by tile symbol, plus the
// shared floor and sky. Default is used for wall names without a texture.
type Set struct {
	Tiles   *maze.TileSet
	Floor   *Texture
	Sky     *Texture
	Default *Texture

	walls map[string]*Texture
}

// NewSet creates an empty set bound to a tile set.
func NewSet(tiles *maze.TileSet) *Set {
	return &Set{Tiles: tiles, walls: make(map[string]*Texture)}
}

// AddWall registers a wall texture under a name referenced by tiles.yaml.
func (s *Set) AddWall(name string, t *Texture) {
	s.walls[name] = t
}

// Wall returns the texture registered under name, or Default.
func (s *Set) Wall(name string) *Texture {
	if s == nil {
		return nil
	}
	if t, ok := s.walls[name]; ok {
		return t
	}
	return s.Default
}

// ForSymbol resolves the wall texture for a grid symbol. It returns nil when
// neither the symbol's texture nor a default is available.
func (s *Set) ForSymbol(symbol rune) *Texture {
	if s == nil {
		return nil
	}
	return s.Wall(s.Tiles.TextureName(symbol))
}

// Names lists registered wall texture names in order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.walls))
	for name := range s.walls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadSet builds the texture set from the assets config. Every texture the
// tile set names gets an entry: configured files are loaded, and anything
// missing or unreadable becomes a procedural placeholder tinted with the
// tile's minimap color.
func LoadSet(assets config.AssetsConfig, tiles *maze.TileSet) *Set {
	s := NewSet(tiles)

	for name, path := range assets.WallTextures {
		if tex, err := Load(path); err != nil {
			log.Printf("Warning: wall texture %q: %v; using placeholder", name, err)
		} else {
			s.AddWall(name, tex)
		}
	}

	for _, symbol := range tiles.Symbols() {
		tile := tiles.Lookup(symbol)
		if tile.Kind != maze.CellWall && tile.Kind != maze.CellGoal {
			continue
		}
		if _, ok := s.walls[tile.Texture]; ok || tile.Texture == "" {
			continue
		}
		s.AddWall(tile.Texture, placeholderWall(tile.Color))
	}

	fallback := tiles.Lookup(0)
	s.Default = s.walls[fallback.Texture]
	if s.Default == nil {
		s.Default = placeholderWall(fallback.Color)
	}

	s.Floor = loadOr(assets.FloorTexture, "floor", func() *Texture {
		return Checker(placeholderSize, placeholderSize, 16, color.RGBA{90, 90, 90, 255}, color.RGBA{60, 60, 60, 255})
	})
	s.Sky = loadOr(assets.SkyTexture, "sky", func() *Texture {
		return Gradient(placeholderSize, placeholderSize, color.RGBA{30, 30, 80, 255}, color.RGBA{90, 90, 160, 255})
	})
	return s
}

// LoadOr loads path, falling back to the placeholder builder when the path
// is empty or the file cannot be used.
func LoadOr(path string, placeholder func() *Texture) *Texture {
	return loadOr(path, path, placeholder)
}

func loadOr(path, label string, placeholder func() *Texture) *Texture {
	if path == "" {
		return placeholder()
	}
	tex, err := Load(path)
	if err != nil {
		log.Printf("Warning: %s texture: %v; using placeholder", label, err)
		return placeholder()
	}
	return tex
}

func placeholderWall(tint color.RGBA) *Texture {
	mortar := color.RGBA{uint8(int(tint.R) * 7 / 10), uint8(int(tint.G) * 7 / 10), uint8(int(tint.B) * 7 / 10), 255}
	return Brick(placeholderSize, placeholderSize, tint, mortar)
}
