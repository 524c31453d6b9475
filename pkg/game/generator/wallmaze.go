package generator

import (
	"context"

	"deepdelve/pkg/engine/rng"
	"deepdelve/pkg/engine/world"
)

// WallMaze carves a perfect maze through solid rock with a recursive
// backtracker. Passages run on odd coordinates and the walls between them
// are one cell thick.
type WallMaze struct {
	base
}

// NewWallMaze creates a WallMaze for a width x height map
func NewWallMaze(width, height int, r *rng.RNG, opts Options) (*WallMaze, error) {
	b, err := newBase(KindWallMaze, width, height, r, opts)
	if err != nil {
		return nil, err
	}
	return &WallMaze{base: b}, nil
}

// Generate walks the maze from the top left cell with an explicit stack.
// Cancellation is checked once per step.
func (m *WallMaze) Generate(ctx context.Context) (*Level, error) {
	m.reset()
	start := world.Pt(1, 1)
	m.carve(start.X, start.Y, world.Floor)
	stack := []world.Point{start}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m.iterations++
		cur := stack[len(stack)-1]

		var next []world.Point
		for _, d := range world.Topology4.Dirs() {
			n := world.Pt(cur.X+2*d.X, cur.Y+2*d.Y)
			if m.canBeDug(n.X, n.Y) {
				next = append(next, n)
			}
		}
		n, ok := rng.Item(m.rng, next)
		if !ok {
			stack = stack[:len(stack)-1]
			continue
		}
		m.carve((cur.X+n.X)/2, (cur.Y+n.Y)/2, world.Floor)
		m.carve(n.X, n.Y, world.Floor)
		stack = append(stack, n)
	}
	return m.finish(nil), nil
}
