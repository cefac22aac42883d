package maze

import "math"

// Symbols with fixed meaning across every collaborator. Any other rune is a
// wall variant.
const (
	SymbolEmpty = ' '
	SymbolGoal  = 'g'
)

// CellKind classifies a grid symbol.
type CellKind int

const (
	CellWall CellKind = iota
	CellEmpty
	CellGoal
)

func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellGoal:
		return "goal"
	default:
		return "wall"
	}
}

// Classify returns the kind of a symbol.
func Classify(symbol rune) CellKind {
	switch symbol {
	case SymbolEmpty:
		return CellEmpty
	case SymbolGoal:
		return CellGoal
	default:
		return CellWall
	}
}

// Maze is an immutable grid of tile symbols. Rows may have different lengths;
// anything outside a row is a wall.
type Maze struct {
	rows  [][]rune
	width int
}

// New builds a maze from text rows. The input is copied.
func New(lines []string) *Maze {
	m := &Maze{rows: make([][]rune, len(lines))}
	for i, line := range lines {
		m.rows[i] = []rune(line)
		if len(m.rows[i]) > m.width {
			m.width = len(m.rows[i])
		}
	}
	return m
}

// Height returns the number of rows.
func (m *Maze) Height() int {
	if m == nil {
		return 0
	}
	return len(m.rows)
}

// Width returns the length of the longest row.
func (m *Maze) Width() int {
	if m == nil {
		return 0
	}
	return m.width
}

// At returns the symbol at (row, col). ok is false outside the grid.
func (m *Maze) At(row, col int) (symbol rune, ok bool) {
	if m == nil || row < 0 || row >= len(m.rows) {
		return 0, false
	}
	r := m.rows[row]
	if col < 0 || col >= len(r) {
		return 0, false
	}
	return r[col], true
}

// Kind classifies the cell at (row, col); out of bounds is a wall.
func (m *Maze) Kind(row, col int) CellKind {
	symbol, ok := m.At(row, col)
	if !ok {
		return CellWall
	}
	return Classify(symbol)
}

// IsWall reports whether a ray stops at (row, col).
func (m *Maze) IsWall(row, col int) bool {
	return m.Kind(row, col) == CellWall
}

// IsWallAt tests the cell containing world point (x, y).
func (m *Maze) IsWallAt(x, y, cellSize float64) bool {
	row, col := WorldToCell(x, y, cellSize)
	return m.IsWall(row, col)
}

// Find returns the first cell holding symbol, scanning row by row.
func (m *Maze) Find(symbol rune) (row, col int, ok bool) {
	if m == nil {
		return 0, 0, false
	}
	for i, r := range m.rows {
		for j, c := range r {
			if c == symbol {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// Each calls fn for every defined cell.
func (m *Maze) Each(fn func(row, col int, symbol rune)) {
	if m == nil {
		return
	}
	for i, r := range m.rows {
		for j, c := range r {
			fn(i, j, c)
		}
	}
}

// WorldToCell maps a world point to (row, col). Negative coordinates map to
// negative indices, which are out of bounds.
func WorldToCell(x, y, cellSize float64) (row, col int) {
	if cellSize <= 0 || math.IsNaN(x) || math.IsNaN(y) {
		return -1, -1
	}
	return floorIndex(y / cellSize), floorIndex(x / cellSize)
}

// CellCenter returns the world coordinates of a cell's center.
func CellCenter(row, col int, cellSize float64) (x, y float64) {
	return (float64(col) + 0.5) * cellSize, (float64(row) + 0.5) * cellSize
}

func floorIndex(v float64) int {
	f := math.Floor(v)
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return int(f)
}
