package main

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mazecaster/internal/camera"
	"mazecaster/internal/config"
	"mazecaster/internal/maze"
	"mazecaster/internal/raster"
	"mazecaster/internal/render"
)

type mapInfo struct {
	Name  string
	Maze  *maze.Maze
	Stats mapStats
	Err   error
}

type mapStats struct {
	Width, Height int
	Walls, Open   int
	Goals         int
}

func (s mapStats) Lines() []string {
	return []string{
		fmt.Sprintf("Cells: %dx%d", s.Width, s.Height),
		fmt.Sprintf("Walls: %d", s.Walls),
		fmt.Sprintf("Open: %d", s.Open),
		fmt.Sprintf("Goals: %d", s.Goals),
	}
}

func statsOf(m *maze.Maze) mapStats {
	s := mapStats{Width: m.Width(), Height: m.Height()}
	m.Each(func(_, _ int, symbol rune) {
		switch maze.Classify(symbol) {
		case maze.CellWall:
			s.Walls++
		case maze.CellGoal:
			s.Goals++
		default:
			s.Open++
		}
	})
	return s
}

// loadMaps reads every *.txt maze in dir, sorted by name. Files that fail
// to parse are kept with their error so the viewer can report them.
func loadMaps(dir string) ([]mapInfo, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("failed to list maps in %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no maps in %s", dir)
	}
	sort.Strings(paths)

	maps := make([]mapInfo, 0, len(paths))
	for _, path := range paths {
		info := mapInfo{Name: strings.TrimSuffix(filepath.Base(path), ".txt")}
		info.Maze, info.Err = maze.LoadMaze(path)
		if info.Err == nil {
			info.Stats = statsOf(info.Maze)
		}
		maps = append(maps, info)
	}
	return maps, nil
}

func buildLegendLines(tiles *maze.TileSet) []string {
	lines := []string{
		"Tiles (letter -> key/name)",
		"--------------------------",
	}
	for _, symbol := range tiles.Symbols() {
		t := tiles.Lookup(symbol)
		lines = append(lines, fmt.Sprintf("%c -> %s (%s) [%s]", symbol, t.Key, t.Name, t.Kind))
	}
	lines = append(lines, "space -> empty", "other -> default wall")
	return lines
}

// exportPNG renders the top-down view of m with the camera at the configured
// start and writes it as a PNG.
func exportPNG(path string, cfg *config.Config, tiles *maze.TileSet, m *maze.Maze, cellPx int) error {
	opts := render.OptionsFromConfig(cfg)
	opts.Tiles = tiles
	r := render.New(opts)

	surface := raster.New(m.Width()*cellPx, m.Height()*cellPx)
	cam := camera.New(cfg.World.StartX, cfg.World.StartY, cfg.World.StartAngle, cfg.Camera.FieldOfView)
	r.RenderTopDown(surface, m, cam, cellPx)

	return writeFile(path, func(w io.Writer) error {
		return png.Encode(w, surface)
	})
}

// writeFile creates path and fills it with encode, removing the file again
// if encoding or closing fails.
func writeFile(path string, encode func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	if err := encode(f); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}
