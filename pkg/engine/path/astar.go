package path

import (
	"math"

	"github.com/zyedidia/generic/heap"

	"deepdelve/pkg/engine/world"
)

type anode struct {
	p    world.Point
	prev *anode
	g    float64
	h    float64
	seq  int
}

func (n *anode) f() float64 {
	return n.g + n.h
}

// lessNode orders the open set by f, then by h (closer to the goal first),
// then by insertion order.
func lessNode(a, b *anode) bool {
	if a.f() != b.f() {
		return a.f() < b.f()
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

// AStar searches from the target towards a source using a heuristic suited to
// the topology: Manhattan (4), hex-adjusted (6) or Chebyshev (8).
type AStar struct {
	base
	from world.Point
	seq  int
}

// NewAStar creates a search towards (toX, toY).
func NewAStar(toX, toY int, passable PassableFunc, topology world.Topology) *AStar {
	return &AStar{base: newBase(toX, toY, passable, topology)}
}

// Compute calls fn for every cell of the route from (fromX, fromY) to the
// target, source first and target last. fn is never called when no route exists.
func (a *AStar) Compute(fromX, fromY int, fn func(x, y int)) {
	a.from = world.Pt(fromX, fromY)
	a.seq = 0
	todo := heap.New[*anode](lessNode)
	done := make(map[world.Point]*anode)

	todo.Push(a.node(a.to, nil))
	for todo.Size() > 0 {
		item, _ := todo.Pop()
		if _, seen := done[item.p]; seen {
			continue
		}
		done[item.p] = item
		if item.p == a.from {
			break
		}
		for _, n := range a.neighbors(item.p) {
			if _, seen := done[n]; seen {
				continue
			}
			todo.Push(a.node(n, item))
		}
	}

	item, ok := done[a.from]
	if !ok {
		return
	}
	for item != nil {
		fn(item.p.X, item.p.Y)
		item = item.prev
	}
}

// Path is Compute collected into a slice; nil when there is no route.
func (a *AStar) Path(fromX, fromY int) []world.Point {
	return collect(a.Compute, fromX, fromY)
}

func (a *AStar) node(p world.Point, prev *anode) *anode {
	n := &anode{p: p, prev: prev, h: a.distance(p), seq: a.seq}
	a.seq++
	if prev != nil {
		n.g = prev.g + 1
	}
	return n
}

func (a *AStar) distance(p world.Point) float64 {
	dx := math.Abs(float64(p.X - a.from.X))
	dy := math.Abs(float64(p.Y - a.from.Y))
	switch a.topology {
	case world.Topology4:
		return dx + dy
	case world.Topology6:
		return dy + math.Max(0, (dx-dy)/2)
	default:
		return math.Max(dx, dy)
	}
}
