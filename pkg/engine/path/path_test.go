package path

import (
	"strings"
	"testing"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deepdelve/pkg/engine/world"
)

const corridorMap = `
##########
#........#
#.######.#
#.#....#.#
#.#.##.#.#
#...#..#.#
######.#.#
#......#.#
#.########
##########`

func gridFromString(t *testing.T, s string) *world.Grid {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(s), "\n")
	g := world.NewGrid(len(lines[0]), len(lines))
	for y, line := range lines {
		for x, r := range line {
			if r != '#' {
				g.Set(x, y, world.Floor)
			}
		}
	}
	return g
}

// oracle is an independent 4-connected A* used to cross-check route lengths.
type oracle struct {
	nb paths.Neighbors
	g  *world.Grid
}

func (o *oracle) Neighbors(p gruid.Point) []gruid.Point {
	return o.nb.Cardinal(p, func(q gruid.Point) bool { return o.g.Passable(q.X, q.Y) })
}

func (o *oracle) Cost(p, q gruid.Point) int { return 1 }

func (o *oracle) Estimation(p, q gruid.Point) int { return paths.DistanceManhattan(p, q) }

func oraclePath(g *world.Grid, from, to world.Point) []gruid.Point {
	pr := paths.NewPathRange(gruid.NewRange(0, 0, g.Width(), g.Height()))
	return pr.AstarPath(&oracle{g: g}, from, to)
}

func assertContiguous(t *testing.T, route []world.Point, topology world.Topology) {
	t.Helper()
	for i := 1; i < len(route); i++ {
		step := route[i].Sub(route[i-1])
		assert.Contains(t, topology.Dirs(), step, "step %d is not a neighbour move", i)
	}
}

func TestAStar_MatchesOracleLength(t *testing.T) {
	g := gridFromString(t, corridorMap)
	from, to := world.Pt(1, 1), world.Pt(1, 8)

	want := oraclePath(g, from, to)
	require.NotEmpty(t, want)

	route := NewAStar(to.X, to.Y, GridPassable(g), world.Topology4).Path(from.X, from.Y)
	require.Len(t, route, len(want))
	assert.Equal(t, from, route[0], "route starts at the source")
	assert.Equal(t, to, route[len(route)-1], "route ends at the target")
	assertContiguous(t, route, world.Topology4)
}

func TestDijkstra_MatchesOracleLength(t *testing.T) {
	g := gridFromString(t, corridorMap)
	from, to := world.Pt(1, 1), world.Pt(1, 8)

	want := oraclePath(g, from, to)
	route := NewDijkstra(to.X, to.Y, GridPassable(g), world.Topology4).Path(from.X, from.Y)
	require.Len(t, route, len(want))
	assert.Equal(t, from, route[0])
	assert.Equal(t, to, route[len(route)-1])
	assertContiguous(t, route, world.Topology4)
}

func TestDijkstra_CachedTreeServesSeveralSources(t *testing.T) {
	g := gridFromString(t, corridorMap)
	d := NewDijkstra(1, 8, GridPassable(g), world.Topology4)

	far := d.Path(8, 7)
	near := d.Path(3, 3)
	require.NotEmpty(t, far)
	require.NotEmpty(t, near)
	assert.Len(t, near, len(oraclePath(g, world.Pt(3, 3), world.Pt(1, 8))))
	assert.Len(t, far, len(oraclePath(g, world.Pt(8, 7), world.Pt(1, 8))))
}

func TestPath_NoRouteNeverCallsBack(t *testing.T) {
	g := world.NewGrid(7, 3)
	g.Set(1, 1, world.Floor)
	g.Set(2, 1, world.Floor)
	g.Set(4, 1, world.Floor)
	g.Set(5, 1, world.Floor)

	called := false
	NewAStar(5, 1, GridPassable(g), world.Topology8).Compute(1, 1, func(x, y int) { called = true })
	assert.False(t, called, "A* callback on unreachable source")

	NewDijkstra(5, 1, GridPassable(g), world.Topology8).Compute(1, 1, func(x, y int) { called = true })
	assert.False(t, called, "Dijkstra callback on unreachable source")
}

func TestPath_SourceIsTarget(t *testing.T) {
	g := gridFromString(t, corridorMap)
	assert.Equal(t, []world.Point{world.Pt(3, 3)}, NewAStar(3, 3, GridPassable(g), world.Topology4).Path(3, 3))
	assert.Equal(t, []world.Point{world.Pt(3, 3)}, NewDijkstra(3, 3, GridPassable(g), world.Topology4).Path(3, 3))
}

func TestAStar_EightConnectedDiagonal(t *testing.T) {
	g := world.NewGrid(10, 10)
	g.Fill(world.Floor)
	route := NewAStar(7, 6, GridPassable(g), world.Topology8).Path(1, 1)
	// Chebyshev distance 6 -> 7 cells
	assert.Len(t, route, 7)
	assertContiguous(t, route, world.Topology8)
}

func TestAStar_HexTopology(t *testing.T) {
	passable := func(x, y, _, _ int) bool {
		return x >= 0 && y >= 0 && x < 12 && y < 6
	}
	route := NewAStar(4, 0, passable, world.Topology6).Path(0, 0)
	assert.Equal(t, []world.Point{world.Pt(0, 0), world.Pt(2, 0), world.Pt(4, 0)}, route)
}

func TestAStar_InvalidTopologyFallsBackToEight(t *testing.T) {
	a := NewAStar(0, 0, func(int, int, int, int) bool { return true }, world.Topology(5))
	assert.Equal(t, world.Topology8, a.topology)
	assert.Len(t, a.dirs, 8)
}
