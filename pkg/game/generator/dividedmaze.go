package generator

import (
	"context"

	"github.com/zyedidia/generic/queue"

	"deepdelve/pkg/engine/rng"
	"deepdelve/pkg/engine/world"
)

// rect is an inclusive cell rectangle
type rect struct {
	left, top, right, bottom int
}

// DividedMaze builds a perfect maze by recursive division: every chamber is
// split by a cross of walls and three of the four arms get a hole.
type DividedMaze struct {
	base
}

// NewDividedMaze creates a DividedMaze for a width x height map
func NewDividedMaze(width, height int, r *rng.RNG, opts Options) (*DividedMaze, error) {
	b, err := newBase(KindDividedMaze, width, height, r, opts)
	if err != nil {
		return nil, err
	}
	return &DividedMaze{base: b}, nil
}

// Generate divides chambers first in, first out until none can be split.
// Cancellation is checked once per chamber.
func (m *DividedMaze) Generate(ctx context.Context) (*Level, error) {
	m.reset()
	m.grid.Fill(world.Floor)
	for x := 0; x < m.width; x++ {
		m.grid.Set(x, 0, world.Wall)
		m.grid.Set(x, m.height-1, world.Wall)
	}
	for y := 0; y < m.height; y++ {
		m.grid.Set(0, y, world.Wall)
		m.grid.Set(m.width-1, y, world.Wall)
	}

	todo := queue.New[rect]()
	todo.Enqueue(rect{1, 1, m.width - 2, m.height - 2})
	for !todo.Empty() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m.iterations++
		for _, sub := range m.partition(todo.Dequeue()) {
			todo.Enqueue(sub)
		}
	}
	return m.finish(nil), nil
}

// partition splits one chamber and returns the four sub-chambers, or nothing
// when the chamber is too small. A split line is only eligible on an even
// coordinate whose both ends meet wall, so the new walls join existing ones.
func (m *DividedMaze) partition(room rect) []rect {
	var availX, availY []int
	for x := room.left + 1; x < room.right; x++ {
		top := m.grid.At(x, room.top-1) == world.Wall
		bottom := m.grid.At(x, room.bottom+1) == world.Wall
		if top && bottom && x%2 == 0 {
			availX = append(availX, x)
		}
	}
	for y := room.top + 1; y < room.bottom; y++ {
		left := m.grid.At(room.left-1, y) == world.Wall
		right := m.grid.At(room.right+1, y) == world.Wall
		if left && right && y%2 == 0 {
			availY = append(availY, y)
		}
	}
	if len(availX) == 0 || len(availY) == 0 {
		return nil
	}

	x, _ := rng.Item(m.rng, availX)
	y, _ := rng.Item(m.rng, availY)
	m.grid.Set(x, y, world.Wall)

	// left, right, top, bottom arms; holes only go on odd cells
	arms := make([][]world.Point, 4)
	for i := room.left; i < x; i++ {
		m.grid.Set(i, y, world.Wall)
		if i%2 != 0 {
			arms[0] = append(arms[0], world.Pt(i, y))
		}
	}
	for i := x + 1; i <= room.right; i++ {
		m.grid.Set(i, y, world.Wall)
		if i%2 != 0 {
			arms[1] = append(arms[1], world.Pt(i, y))
		}
	}
	for j := room.top; j < y; j++ {
		m.grid.Set(x, j, world.Wall)
		if j%2 != 0 {
			arms[2] = append(arms[2], world.Pt(x, j))
		}
	}
	for j := y + 1; j <= room.bottom; j++ {
		m.grid.Set(x, j, world.Wall)
		if j%2 != 0 {
			arms[3] = append(arms[3], world.Pt(x, j))
		}
	}

	solid := int(m.rng.GetUniform() * float64(len(arms)))
	for i, arm := range arms {
		if i == solid {
			continue
		}
		if hole, ok := rng.Item(m.rng, arm); ok {
			m.grid.Set(hole.X, hole.Y, world.Floor)
		}
	}

	return []rect{
		{room.left, room.top, x - 1, y - 1},
		{x + 1, room.top, room.right, y - 1},
		{room.left, y + 1, x - 1, room.bottom},
		{x + 1, y + 1, room.right, room.bottom},
	}
}
