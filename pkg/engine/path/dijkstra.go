package path

import (
	"github.com/zyedidia/generic/queue"

	"deepdelve/pkg/engine/world"
)

type dnode struct {
	p    world.Point
	prev *dnode
}

// Dijkstra is a breadth-first predecessor tree rooted at the target. The
// tree is expanded lazily and cached across Compute calls, so repeated
// queries towards the same target are cheap.
type Dijkstra struct {
	base
	computed map[world.Point]*dnode
	todo     *queue.Queue[*dnode]
}

// NewDijkstra creates a search towards (toX, toY).
func NewDijkstra(toX, toY int, passable PassableFunc, topology world.Topology) *Dijkstra {
	d := &Dijkstra{
		base:     newBase(toX, toY, passable, topology),
		computed: make(map[world.Point]*dnode),
		todo:     queue.New[*dnode](),
	}
	d.add(d.to, nil)
	return d
}

// Compute calls fn for every cell of the route from (fromX, fromY) to the
// target, source first and target last. fn is never called when the source
// is unreachable.
func (d *Dijkstra) Compute(fromX, fromY int, fn func(x, y int)) {
	from := world.Pt(fromX, fromY)
	if _, ok := d.computed[from]; !ok {
		d.compute(from)
	}
	item, ok := d.computed[from]
	if !ok {
		return
	}
	for item != nil {
		fn(item.p.X, item.p.Y)
		item = item.prev
	}
}

// Path is Compute collected into a slice; nil when there is no route.
func (d *Dijkstra) Path(fromX, fromY int) []world.Point {
	return collect(d.Compute, fromX, fromY)
}

func (d *Dijkstra) compute(from world.Point) {
	for !d.todo.Empty() {
		item := d.todo.Dequeue()
		for _, n := range d.neighbors(item.p) {
			if _, done := d.computed[n]; done {
				continue
			}
			d.add(n, item)
		}
		// expanded before stopping so later queries keep a complete frontier
		if item.p == from {
			return
		}
	}
}

func (d *Dijkstra) add(p world.Point, prev *dnode) {
	n := &dnode{p: p, prev: prev}
	d.computed[p] = n
	d.todo.Enqueue(n)
}
