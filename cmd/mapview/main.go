package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"mazecaster/internal/config"
	"mazecaster/internal/maze"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	windowWidth  = 1200
	windowHeight = 800
	sidebarWidth = 300
)

type viewer struct {
	cfg         *config.Config
	tiles       *maze.TileSet
	maps        []mapInfo
	mapIndex    int
	legendLines []string
	lastErr     string
}

func main() {
	configPath := flag.String("config", "config.yaml", "config file")
	export := flag.String("export", "", "write the first map's top-down view to this PNG and exit")
	cellPx := flag.Int("cell", 0, "pixels per cell for -export (default: minimap top_down_cell_size)")
	flag.Parse()

	ensureRuntimeCWD(*configPath)
	cfg := config.MustLoadConfig(*configPath)

	tiles, err := maze.LoadTileSet(cfg.Assets.TileFile)
	if err != nil {
		log.Printf("Warning: Failed to load tile config: %v", err)
		tiles = maze.DefaultTileSet()
	}

	maps, err := loadMaps(filepath.Dir(cfg.World.MapFile))
	if err != nil {
		log.Printf("Warning: %v", err)
	}

	if *export != "" {
		if len(maps) == 0 || maps[0].Err != nil {
			log.Fatalf("no map to export")
		}
		px := *cellPx
		if px <= 0 {
			px = cfg.Minimap.CellSize
		}
		if err := exportPNG(*export, cfg, tiles, maps[0].Maze, px); err != nil {
			log.Fatal(err)
		}
		log.Printf("Wrote %s", *export)
		return
	}

	v := &viewer{
		cfg:         cfg,
		tiles:       tiles,
		maps:        maps,
		legendLines: buildLegendLines(tiles),
	}
	if len(maps) == 0 {
		v.lastErr = "no maps loaded"
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Maze Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if len(v.maps) == 0 {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		v.mapIndex = (v.mapIndex + 1) % len(v.maps)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		v.mapIndex = (v.mapIndex - 1 + len(v.maps)) % len(v.maps)
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 22, 255})

	if len(v.maps) == 0 {
		ebitenutil.DebugPrintAt(screen, v.lastErr, 16, 16)
		return
	}

	m := v.maps[v.mapIndex]
	if m.Err != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("map %s failed to load: %v", m.Name, m.Err), 16, 16)
		return
	}

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()

	padding := 16
	mapAreaW := screenW - sidebarWidth - padding*3
	mapAreaH := screenH - padding*2
	sidebarX := padding + mapAreaW + padding

	v.drawMapPanel(screen, m, padding, padding, mapAreaW, mapAreaH)
	v.drawSidebar(screen, m, sidebarX, padding, sidebarWidth, mapAreaH)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

func (v *viewer) drawMapPanel(screen *ebiten.Image, m mapInfo, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{20, 20, 35, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	grid := m.Maze
	tileSize := fitTileSize(w, h, grid.Width(), grid.Height())
	if tileSize == 0 {
		ebitenutil.DebugPrintAt(screen, "empty map", x+12, y+12)
		return
	}
	originX := x + (w-grid.Width()*tileSize)/2
	originY := y + (h-grid.Height()*tileSize)/2

	grid.Each(func(row, col int, symbol rune) {
		if maze.Classify(symbol) == maze.CellEmpty {
			return
		}
		drawFilledRect(screen, originX+col*tileSize, originY+row*tileSize, tileSize, tileSize, v.tiles.Color(symbol))
	})

	// Start position and sprites, in cell units
	cs := v.cfg.World.CellSize
	marker := func(wx, wy float64, clr color.RGBA) {
		cx := float32(originX) + float32(wx/cs)*float32(tileSize)
		cy := float32(originY) + float32(wy/cs)*float32(tileSize)
		vector.DrawFilledCircle(screen, cx, cy, float32(max(tileSize/4, 2)), clr, true)
	}
	marker(v.cfg.World.StartX, v.cfg.World.StartY, color.RGBA{50, 200, 255, 255})
	for _, s := range v.cfg.Assets.Sprites {
		marker(s.X, s.Y, color.RGBA{255, 161, 0, 255})
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s (%d/%d)", m.Name, v.mapIndex+1, len(v.maps)), x+12, y+8)
	ebitenutil.DebugPrintAt(screen, "Left/Right (or A/D) to switch maps, Esc to quit", x+12, y+24)
}

func (v *viewer) drawSidebar(screen *ebiten.Image, m mapInfo, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{18, 18, 26, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	row := y + 12
	lines := append(m.Stats.Lines(), "")
	lines = append(lines, v.legendLines...)
	lines = append(lines, "", "Cyan: start  Orange: sprites")
	for _, line := range lines {
		if row > y+h-16 {
			break
		}
		ebitenutil.DebugPrintAt(screen, line, x+12, row)
		row += 16
	}
}

// fitTileSize is the largest square cell that fits a cols x rows grid in a
// w x h panel, at least 2 pixels. Zero for an empty grid.
func fitTileSize(w, h, cols, rows int) int {
	if cols <= 0 || rows <= 0 {
		return 0
	}
	return max(min(w/cols, h/rows), 2)
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h int, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func drawRectBorder(screen *ebiten.Image, x, y, w, h, thickness int, clr color.RGBA) {
	t := float32(thickness)
	fx := float32(x)
	fy := float32(y)
	fw := float32(w)
	fh := float32(h)
	vector.DrawFilledRect(screen, fx, fy, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy+fh-t, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy, t, fh, clr, false)
	vector.DrawFilledRect(screen, fx+fw-t, fy, t, fh, clr, false)
}

// ensureRuntimeCWD moves to the executable's directory when the config is
// not reachable from the current one.
func ensureRuntimeCWD(configPath string) {
	if _, err := os.Stat(configPath); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	_ = os.Chdir(filepath.Dir(exe))
}
