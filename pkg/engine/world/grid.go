package world

import (
	"strings"

	"codeberg.org/anaseto/gruid/rl"
)

// Grid is a width x height matrix of cell values with bounds checks.
// A fresh grid is solid wall.
type Grid struct {
	cells  rl.Grid
	width  int
	height int
}

// NewGrid creates a new all-wall grid with the given dimensions
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic("Grid dimensions must be positive")
	}
	g := &Grid{
		cells:  rl.NewGrid(width, height),
		width:  width,
		height: height,
	}
	g.Fill(Wall)
	return g
}

// Width returns the number of columns in the grid
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows in the grid
func (g *Grid) Height() int {
	return g.height
}

// Area returns width * height
func (g *Grid) Area() int {
	return g.width * g.height
}

// InBounds checks if an x/y position is within grid bounds
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// IsPlayable checks if a position is within the playable area (not on the perimeter)
// This ensures a 1-cell wall border around the entire map
func (g *Grid) IsPlayable(x, y int) bool {
	return x >= 1 && x < g.width-1 && y >= 1 && y < g.height-1
}

// IsOnPerimeter checks if a position is on the edge of the grid
func (g *Grid) IsOnPerimeter(x, y int) bool {
	return g.InBounds(x, y) && !g.IsPlayable(x, y)
}

// Get returns the cell at the given position and whether it is in bounds
func (g *Grid) Get(x, y int) (Cell, bool) {
	if !g.InBounds(x, y) {
		return Wall, false
	}
	return Cell(g.cells.At(Pt(x, y))), true
}

// At returns the cell at the given position; out-of-bounds reads are Wall
func (g *Grid) At(x, y int) Cell {
	c, _ := g.Get(x, y)
	return c
}

// AtPoint is At for a Point
func (g *Grid) AtPoint(p Point) Cell {
	return g.At(p.X, p.Y)
}

// Set writes a cell value. Returns false if out of bounds.
func (g *Grid) Set(x, y int, c Cell) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.cells.Set(Pt(x, y), rl.Cell(c))
	return true
}

// IsWall reports whether the position holds a wall. Out-of-bounds is not a wall,
// so features can never claim the outside of the map as their border.
func (g *Grid) IsWall(x, y int) bool {
	c, ok := g.Get(x, y)
	return ok && c == Wall
}

// Passable reports whether the position is in bounds and passable
func (g *Grid) Passable(x, y int) bool {
	c, ok := g.Get(x, y)
	return ok && c.Passable()
}

// Fill sets every cell to c
func (g *Grid) Fill(c Cell) {
	g.cells.Fill(rl.Cell(c))
}

// Count returns the number of cells holding c
func (g *Grid) Count(c Cell) int {
	n := 0
	g.ForEachCell(func(x, y int, cell Cell) {
		if cell == c {
			n++
		}
	})
	return n
}

// CountPassable returns the number of floor and door cells
func (g *Grid) CountPassable() int {
	return g.Count(Floor) + g.Count(Door)
}

// CenterPosition returns the x and y of the grid center
func (g *Grid) CenterPosition() (int, int) {
	return g.width / 2, g.height / 2
}

// ForEachCell iterates over all cells column by column, calling fn for each
func (g *Grid) ForEachCell(fn func(x, y int, c Cell)) {
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			fn(x, y, Cell(g.cells.At(Pt(x, y))))
		}
	}
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	c := &Grid{
		cells:  rl.NewGrid(g.width, g.height),
		width:  g.width,
		height: g.height,
	}
	g.ForEachCell(func(x, y int, cell Cell) {
		c.cells.Set(Pt(x, y), rl.Cell(cell))
	})
	return c
}

// Equal reports whether both grids have the same size and contents
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.width != o.width || g.height != o.height {
		return false
	}
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			if g.At(x, y) != o.At(x, y) {
				return false
			}
		}
	}
	return true
}

// Rows returns the cell values as rows (indexed [y][x]) of plain integers
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.height)
	for y := 0; y < g.height; y++ {
		rows[y] = make([]int, g.width)
		for x := 0; x < g.width; x++ {
			rows[y][x] = int(g.At(x, y))
		}
	}
	return rows
}

// GridFromRows rebuilds a grid from Rows output. Ragged input is rejected.
func GridFromRows(rows [][]int) (*Grid, bool) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, false
	}
	g := NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.width {
			return nil, false
		}
		for x, v := range row {
			g.Set(x, y, Cell(v))
		}
	}
	return g, true
}

// String renders the grid one row per line using Cell.Symbol
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			sb.WriteRune(g.At(x, y).Symbol())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
