package maze

import (
	"image/color"
	"os"
	"testing"
)

func TestTileSet(t *testing.T) {
	testConfig := `default:
  texture: "stone"
  color: [200, 200, 200]
tiles:
  brick_wall:
    name: "Brick Wall"
    letter: "#"
    texture: "brick"
    color: [180, 60, 40]
  exit:
    name: "Exit"
    letter: "g"
    texture: "goal"
    color: [0, 255, 0]
`

	tmpFile, err := os.CreateTemp("", "test_tiles_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(testConfig); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	tmpFile.Close()

	ts, err := LoadTileSet(tmpFile.Name())
	if err != nil {
		t.Fatalf("Failed to load tile config: %v", err)
	}

	brick := ts.Lookup('#')
	if brick.Key != "brick_wall" || brick.Texture != "brick" || brick.Kind != CellWall {
		t.Errorf("Unexpected brick tile: %+v", brick)
	}
	if brick.Color != (color.RGBA{180, 60, 40, 255}) {
		t.Errorf("Unexpected brick color: %v", brick.Color)
	}

	if ts.Lookup('g').Kind != CellGoal {
		t.Error("Expected 'g' to classify as goal")
	}

	// Unknown symbols fall back to the default entry
	unknown := ts.Lookup('%')
	if unknown.Texture != "stone" || unknown.Symbol != '%' {
		t.Errorf("Expected fallback tile for '%%', got %+v", unknown)
	}
	if ts.TextureName('@') != "stone" {
		t.Errorf("Expected fallback texture, got %q", ts.TextureName('@'))
	}

	symbols := ts.Symbols()
	if len(symbols) != 2 || symbols[0] != '#' || symbols[1] != 'g' {
		t.Errorf("Unexpected symbols %q", symbols)
	}
}

func TestTileSetRejectsBadLetters(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty letter", "tiles:\n  a:\n    letter: \"\"\n"},
		{"two letters", "tiles:\n  a:\n    letter: \"ab\"\n"},
		{"space letter", "tiles:\n  a:\n    letter: \" \"\n"},
		{"duplicate", "tiles:\n  a:\n    letter: \"#\"\n  b:\n    letter: \"#\"\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseTileSet([]byte(tc.yaml)); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestDefaultTileSetColors(t *testing.T) {
	ts := DefaultTileSet()
	if ts.Color('+') != (color.RGBA{138, 43, 226, 255}) {
		t.Errorf("Unexpected corner color %v", ts.Color('+'))
	}
	if ts.Color('-') != ts.Color('|') {
		t.Error("Horizontal and vertical walls should share a color")
	}
	if ts.Color('x') != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("Unknown walls should be white, got %v", ts.Color('x'))
	}

	var nilSet *TileSet
	if nilSet.Lookup('g').Kind != CellGoal {
		t.Error("nil tile set should still classify symbols")
	}
}

func TestShippedAssets(t *testing.T) {
	tiles, err := LoadTileSet("../../assets/tiles.yaml")
	if err != nil {
		t.Fatalf("Shipped tiles.yaml should load: %v", err)
	}
	for _, name := range []string{"level1.txt", "level2.txt"} {
		m, err := LoadMaze("../../assets/maps/" + name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if _, _, ok := m.Find(SymbolGoal); !ok {
			t.Errorf("%s has no goal cell", name)
		}
		m.Each(func(row, col int, symbol rune) {
			if Classify(symbol) == CellWall && tiles.Lookup(symbol).Key == "default" {
				t.Errorf("%s: symbol %q at (%d,%d) has no tile entry", name, symbol, row, col)
			}
		})
	}
}
