// Package path implements grid pathfinding (Dijkstra and A*) over an abstract
// passability callback. Both searches grow from the target towards the
// source, so a computed route is reported source first, target last.
package path

import (
	"deepdelve/pkg/engine/world"
)

// PassableFunc reports whether (x, y) may be entered from (fromX, fromY).
// Because the search runs from the target outward, (fromX, fromY) is the
// neighbour that lies closer to the target.
type PassableFunc func(x, y, fromX, fromY int) bool

// GridPassable adapts a grid into a PassableFunc (floor and doors are passable).
func GridPassable(g *world.Grid) PassableFunc {
	return func(x, y, _, _ int) bool {
		return g.Passable(x, y)
	}
}

// base holds what Dijkstra and AStar share.
type base struct {
	to       world.Point
	passable PassableFunc
	topology world.Topology
	dirs     []world.Point
}

func newBase(toX, toY int, passable PassableFunc, topology world.Topology) base {
	if !topology.IsValid() {
		topology = world.Topology8
	}
	dirs := topology.Dirs()
	if topology == world.Topology8 {
		// orthogonal moves first for straighter routes
		dirs = []world.Point{dirs[0], dirs[2], dirs[4], dirs[6], dirs[1], dirs[3], dirs[5], dirs[7]}
	}
	return base{
		to:       world.Pt(toX, toY),
		passable: passable,
		topology: topology,
		dirs:     dirs,
	}
}

func (b *base) neighbors(c world.Point) []world.Point {
	result := make([]world.Point, 0, len(b.dirs))
	for _, d := range b.dirs {
		n := c.Add(d)
		if !b.passable(n.X, n.Y, c.X, c.Y) {
			continue
		}
		result = append(result, n)
	}
	return result
}

// collect gathers a Compute callback into a slice.
func collect(compute func(fromX, fromY int, fn func(x, y int)), fromX, fromY int) []world.Point {
	var out []world.Point
	compute(fromX, fromY, func(x, y int) {
		out = append(out, world.Pt(x, y))
	})
	return out
}
