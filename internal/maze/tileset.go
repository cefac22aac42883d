package maze

import (
	"fmt"
	"image/color"
	"os"
	"sort"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// TileData is one tile definition as written in tiles.yaml.
type TileData struct {
	Name    string `yaml:"name"`
	Letter  string `yaml:"letter"`
	Texture string `yaml:"texture"`
	Color   [3]int `yaml:"color"`
}

// TileConfig is the root of tiles.yaml.
type TileConfig struct {
	Tiles   map[string]TileData `yaml:"tiles"`
	Default TileData            `yaml:"default"`
}

// Tile is the resolved rendering info for one symbol.
type Tile struct {
	Key     string
	Name    string
	Symbol  rune
	Kind    CellKind
	Texture string
	Color   color.RGBA
}

// TileSet maps symbols to textures and minimap colors, with a default
// entry for symbols it does not know.
type TileSet struct {
	bySymbol map[rune]Tile
	fallback Tile
}

// DefaultTileSet returns the palette the maze files were authored against.
func DefaultTileSet() *TileSet {
	ts := &TileSet{
		bySymbol: make(map[rune]Tile),
		fallback: Tile{Key: "default", Name: "Wall", Kind: CellWall, Texture: "default", Color: color.RGBA{255, 255, 255, 255}},
	}
	ts.add(Tile{Key: "corner", Name: "Corner", Symbol: '+', Texture: "corner", Color: color.RGBA{138, 43, 226, 255}})
	ts.add(Tile{Key: "horizontal", Name: "Horizontal Wall", Symbol: '-', Texture: "wall", Color: color.RGBA{238, 130, 238, 255}})
	ts.add(Tile{Key: "vertical", Name: "Vertical Wall", Symbol: '|', Texture: "wall", Color: color.RGBA{238, 130, 238, 255}})
	ts.add(Tile{Key: "goal", Name: "Goal", Symbol: SymbolGoal, Texture: "goal", Color: color.RGBA{0, 228, 48, 255}})
	return ts
}

// NewTileSet creates an empty tile set with the given fallback.
func NewTileSet(fallback Tile) *TileSet {
	fallback.Kind = CellWall
	return &TileSet{bySymbol: make(map[rune]Tile), fallback: fallback}
}

// LoadTileSet loads a tile set from a YAML file
func LoadTileSet(filename string) (*TileSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read tile config file: %w", err)
	}
	return ParseTileSet(data)
}

// ParseTileSet decodes tiles.yaml content.
func ParseTileSet(data []byte) (*TileSet, error) {
	var cfg TileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse tile config: %w", err)
	}

	base := DefaultTileSet()
	fallback := base.fallback
	if cfg.Default.Texture != "" {
		fallback.Texture = cfg.Default.Texture
	}
	if cfg.Default.Color != [3]int{} {
		fallback.Color = rgb(cfg.Default.Color)
	}
	ts := NewTileSet(fallback)

	// Sorted keys keep duplicate-letter errors deterministic
	keys := make([]string, 0, len(cfg.Tiles))
	for key := range cfg.Tiles {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		td := cfg.Tiles[key]
		if utf8.RuneCountInString(td.Letter) != 1 {
			return nil, fmt.Errorf("tile %q: letter must be a single character, got %q", key, td.Letter)
		}
		symbol, _ := utf8.DecodeRuneInString(td.Letter)
		if symbol == SymbolEmpty {
			return nil, fmt.Errorf("tile %q: the empty symbol cannot carry a tile", key)
		}
		if _, dup := ts.bySymbol[symbol]; dup {
			return nil, fmt.Errorf("tile %q: letter %q already defined", key, td.Letter)
		}
		ts.add(Tile{
			Key:     key,
			Name:    td.Name,
			Symbol:  symbol,
			Texture: td.Texture,
			Color:   rgb(td.Color),
		})
	}
	return ts, nil
}

func (ts *TileSet) add(t Tile) {
	t.Kind = Classify(t.Symbol)
	ts.bySymbol[t.Symbol] = t
}

// Lookup returns the tile for a symbol, or the default tile.
func (ts *TileSet) Lookup(symbol rune) Tile {
	if ts != nil {
		if t, ok := ts.bySymbol[symbol]; ok {
			return t
		}
		t := ts.fallback
		t.Symbol = symbol
		t.Kind = Classify(symbol)
		return t
	}
	return Tile{Symbol: symbol, Kind: Classify(symbol), Color: color.RGBA{255, 255, 255, 255}}
}

// Color returns the minimap color of a symbol.
func (ts *TileSet) Color(symbol rune) color.RGBA {
	return ts.Lookup(symbol).Color
}

// TextureName returns the texture bound to a symbol.
func (ts *TileSet) TextureName(symbol rune) string {
	return ts.Lookup(symbol).Texture
}

// Symbols lists the explicitly defined symbols in ascending order.
func (ts *TileSet) Symbols() []rune {
	if ts == nil {
		return nil
	}
	out := make([]rune, 0, len(ts.bySymbol))
	for s := range ts.bySymbol {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func rgb(c [3]int) color.RGBA {
	return color.RGBA{R: channel(c[0]), G: channel(c[1]), B: channel(c[2]), A: 255}
}

func channel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
