package generator

import (
	"sort"
	"time"

	"github.com/zyedidia/generic/queue"

	"deepdelve/pkg/engine/rng"
	"deepdelve/pkg/engine/world"
	"deepdelve/pkg/game/feature"
	"deepdelve/pkg/game/graph"
	"deepdelve/pkg/game/state"
)

// Level is the finished product of one generation pass. The grid is a private
// copy; doors are stamped as world.Door.
type Level struct {
	Generator Kind
	Width     int
	Height    int
	Seed      float64
	// StartState is the RNG state before the pass began; restoring it and
	// generating again reproduces the level.
	StartState rng.State

	Grid      *world.Grid
	Rooms     []*feature.Room
	Corridors []*feature.Corridor
	Graph     *graph.Graph

	// Complete is false when the pass stopped before reaching its goal.
	// Err then says why.
	Complete   bool
	Err        error
	Iterations int
	Elapsed    time.Duration
}

// Features returns rooms followed by corridors
func (l *Level) Features() []feature.Feature {
	out := make([]feature.Feature, 0, len(l.Rooms)+len(l.Corridors))
	for _, r := range l.Rooms {
		out = append(out, r)
	}
	for _, c := range l.Corridors {
		out = append(out, c)
	}
	return out
}

// Each calls fn once per cell with its value: 0 open, 1 wall, 2 door
func (l *Level) Each(fn func(x, y int, c world.Cell)) {
	l.Grid.ForEachCell(fn)
}

// DugRatio returns the open fraction of the area the generator aims for:
// the whole map for Digger, the inner area otherwise
func (l *Level) DugRatio() float64 {
	area := (l.Width - 2) * (l.Height - 2)
	if l.Generator == KindDigger {
		area = l.Width * l.Height
	}
	if area <= 0 {
		return 0
	}
	return float64(l.Grid.CountPassable()) / float64(area)
}

// Regions returns the number of 4-connected open regions
func (l *Level) Regions() int {
	return len(regions(l.Grid))
}

// Data copies the level into its persisted form
func (l *Level) Data() state.LevelData {
	d := state.LevelData{
		Generator:  string(l.Generator),
		Width:      l.Width,
		Height:     l.Height,
		Seed:       l.Seed,
		StartState: l.StartState,
		Cells:      l.Grid.Rows(),
		Complete:   l.Complete,
		Iterations: l.Iterations,
	}
	if l.Err != nil {
		d.Error = l.Err.Error()
	}
	for _, r := range l.Rooms {
		d.Rooms = append(d.Rooms, state.RoomDataOf(r))
	}
	for _, c := range l.Corridors {
		d.Corridors = append(d.Corridors, state.CorridorDataOf(c))
	}
	for _, e := range l.Graph.Edges() {
		d.Edges = append(d.Edges, state.EdgeData{A: e.A, B: e.B, At: state.PointOf(e.At)})
	}
	return d
}

// Endpoints picks an entrance and an exit: the entrance is the center of the
// first room (or the first open cell), the exit is the open cell furthest from
// it by walking distance. ok is false for a level with no open cell.
func (l *Level) Endpoints() (entrance, exit world.Point, ok bool) {
	entrance, ok = l.entrance()
	if !ok {
		return entrance, exit, false
	}
	return entrance, findFurthestCell(l.Grid, entrance), true
}

func (l *Level) entrance() (world.Point, bool) {
	if len(l.Rooms) > 0 {
		c := l.Rooms[0].Center()
		if l.Grid.Passable(c.X, c.Y) {
			return c, true
		}
	}
	var first world.Point
	found := false
	l.Grid.ForEachCell(func(x, y int, c world.Cell) {
		if !found && c.Passable() {
			first, found = world.Pt(x, y), true
		}
	})
	return first, found
}

// findFurthestCell walks the open cells breadth first from start and returns
// the last one reached. Ties go to doorless floor over doors.
func findFurthestCell(grid *world.Grid, start world.Point) world.Point {
	type cellDist struct {
		p    world.Point
		dist int
	}
	visited := map[world.Point]bool{start: true}
	todo := queue.New[cellDist]()
	todo.Enqueue(cellDist{start, 0})

	furthest, maxDist := start, -1
	for !todo.Empty() {
		current := todo.Dequeue()
		if current.dist > maxDist ||
			(current.dist == maxDist && grid.AtPoint(furthest) == world.Door && grid.AtPoint(current.p) == world.Floor) {
			maxDist = current.dist
			furthest = current.p
		}
		for _, d := range world.Topology4.Dirs() {
			n := current.p.Add(d)
			if grid.Passable(n.X, n.Y) && !visited[n] {
				visited[n] = true
				todo.Enqueue(cellDist{n, current.dist + 1})
			}
		}
	}
	return furthest
}

// regions flood fills every 4-connected open region, largest first
func regions(grid *world.Grid) [][]world.Point {
	seen := make(map[world.Point]bool)
	var out [][]world.Point
	grid.ForEachCell(func(x, y int, c world.Cell) {
		p := world.Pt(x, y)
		if !c.Passable() || seen[p] {
			return
		}
		seen[p] = true
		region := []world.Point{p}
		todo := queue.New[world.Point]()
		todo.Enqueue(p)
		for !todo.Empty() {
			cur := todo.Dequeue()
			for _, d := range world.Topology4.Dirs() {
				n := cur.Add(d)
				if grid.Passable(n.X, n.Y) && !seen[n] {
					seen[n] = true
					region = append(region, n)
					todo.Enqueue(n)
				}
			}
		}
		out = append(out, region)
	})
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}
