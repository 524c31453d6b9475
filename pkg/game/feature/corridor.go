package feature

import (
	"fmt"

	"deepdelve/pkg/engine/rng"
	"deepdelve/pkg/engine/world"
)

// Corridor is a straight one cell wide passage from start to end, inclusive.
type Corridor struct {
	id           int64
	start, end   world.Point
	endsWithWall bool
}

// NewCorridor creates a corridor from (sx, sy) to (ex, ey). The two points
// must share a row or a column.
func NewCorridor(sx, sy, ex, ey int) *Corridor {
	return &Corridor{
		id:           corridorCounter.Add(1),
		start:        world.Pt(sx, sy),
		end:          world.Pt(ex, ey),
		endsWithWall: true,
	}
}

// RandomCorridorAt creates a corridor starting at (x, y) and running in
// direction (dx, dy) for a random length.
func RandomCorridorAt(g *rng.RNG, x, y, dx, dy int, length Range) (*Corridor, error) {
	if _, ok := world.DirectionOf(dx, dy); !ok {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrDirection, dx, dy)
	}
	n := length.Draw(g)
	return NewCorridor(x, y, x+dx*n, y+dy*n), nil
}

func (c *Corridor) isFeature() {}

// ID returns the unique corridor identifier
func (c *Corridor) ID() int64 { return c.id }

// Name returns the graph node name, e.g. "corridor-7"
func (c *Corridor) Name() string { return name(KindCorridor, c.id) }

// Kind returns KindCorridor
func (c *Corridor) Kind() Kind { return KindCorridor }

func (c *Corridor) Start() world.Point { return c.start }
func (c *Corridor) End() world.Point   { return c.end }

// EndsWithWall is true when the cell past the end was wall at validation time
func (c *Corridor) EndsWithWall() bool { return c.endsWithWall }

// Direction returns the unit step from start towards end, (0,0) for a
// single cell corridor.
func (c *Corridor) Direction() (dx, dy int) {
	return unit(c.end.X - c.start.X), unit(c.end.Y - c.start.Y)
}

// Length returns the number of cells
func (c *Corridor) Length() int {
	return 1 + max(abs(c.end.X-c.start.X), abs(c.end.Y-c.start.Y))
}

// Validate checks the corridor cell by cell: each cell must be diggable and
// flanked by wall on both sides. On the first bad cell the corridor is cut
// short just before it. The receiver is never modified; when ok is true the
// returned corridor carries the adjusted end and shares the receiver's ID.
//
// A corridor is rejected when it is cut down to nothing, when a single cell
// stub runs into a wall, or when it ends against a wall while one of the
// corners ahead is open.
func (c *Corridor) Validate(isWall, canBeDug CellFunc) (*Corridor, bool) {
	dx, dy := c.Direction()
	nx, ny := dy, -dx
	length := c.Length()
	end := c.end

	for i := 0; i < length; i++ {
		x, y := c.start.X+i*dx, c.start.Y+i*dy
		if !canBeDug(x, y) || !isWall(x+nx, y+ny) || !isWall(x-nx, y-ny) {
			length = i
			end = world.Pt(x-dx, y-dy)
			break
		}
	}

	if length == 0 {
		return nil, false
	}
	if length == 1 && isWall(end.X+dx, end.Y+dy) {
		return nil, false
	}

	firstCornerBad := !isWall(end.X+dx+nx, end.Y+dy+ny)
	secondCornerBad := !isWall(end.X+dx-nx, end.Y+dy-ny)
	endsWithWall := isWall(end.X+dx, end.Y+dy)
	if (firstCornerBad || secondCornerBad) && endsWithWall {
		return nil, false
	}

	return &Corridor{
		id:           c.id,
		start:        c.start,
		end:          end,
		endsWithWall: endsWithWall,
	}, true
}

// Dig emits every corridor cell as Floor
func (c *Corridor) Dig(fn DigFunc) {
	for _, p := range c.Cells() {
		fn(p.X, p.Y, world.Floor)
	}
}

// PriorityWalls returns the cell straight ahead of the end and the two cells
// beside the end. Digging resumes there first so corridors tend to keep
// going. Empty when the corridor does not end against a wall.
func (c *Corridor) PriorityWalls() []world.Point {
	if !c.endsWithWall {
		return nil
	}
	dx, dy := c.Direction()
	nx, ny := dy, -dx
	return []world.Point{
		world.Pt(c.end.X+dx, c.end.Y+dy),
		world.Pt(c.end.X+nx, c.end.Y+ny),
		world.Pt(c.end.X-nx, c.end.Y-ny),
	}
}

// Cells returns the corridor cells from start to end
func (c *Corridor) Cells() []world.Point {
	dx, dy := c.Direction()
	n := c.Length()
	cells := make([]world.Point, n)
	for i := 0; i < n; i++ {
		cells[i] = world.Pt(c.start.X+i*dx, c.start.Y+i*dy)
	}
	return cells
}

// Bounds returns the box spanned by the two endpoints
func (c *Corridor) Bounds() (lo, hi world.Point) {
	lo = world.Pt(min(c.start.X, c.end.X), min(c.start.Y, c.end.Y))
	hi = world.Pt(max(c.start.X, c.end.X), max(c.start.Y, c.end.Y))
	return lo, hi
}

func (c *Corridor) String() string {
	return fmt.Sprintf("%s (%d,%d)->(%d,%d)", c.Name(), c.start.X, c.start.Y, c.end.X, c.end.Y)
}
