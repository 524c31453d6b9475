package graph

import (
	"log"
	"sort"
	"strings"

	"deepdelve/pkg/engine/world"
	"deepdelve/pkg/game/feature"
)

// Build creates the connectivity graph of a finished level. Every feature
// becomes a node. A feature claims the cells it owns plus their passable
// orthogonal neighbours, and two features are linked when they claim a common
// cell. A cell owned by three or more features is logged as a structural
// warning but does not stop the build.
//
// This departs from a plain radius-1 claim on purpose: diagonal neighbours
// and walls are not claimed, so features that only touch at a corner or
// through a wall stay unlinked. The warning counts owners rather than
// claimants, since a busy junction legitimately has many claimants.
func Build(grid *world.Grid, features []feature.Feature, logger *log.Logger) *Graph {
	if logger == nil {
		logger = log.Default()
	}
	g := New()
	owners := make(map[world.Point][]string)
	claims := make(map[world.Point][]string)

	for _, f := range features {
		name := f.Name()
		g.AddNode(name)

		claimed := make(map[world.Point]bool)
		claim := func(p world.Point) {
			if !claimed[p] {
				claimed[p] = true
				claims[p] = append(claims[p], name)
			}
		}
		for _, p := range f.Cells() {
			owners[p] = append(owners[p], name)
			claim(p)
			for _, d := range world.Topology4.Dirs() {
				n := p.Add(d)
				if grid.Passable(n.X, n.Y) {
					claim(n)
				}
			}
		}
	}

	points := make([]world.Point, 0, len(claims))
	for p := range claims {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return world.LessPoint(points[i], points[j]) })

	for _, p := range points {
		if names := owners[p]; len(names) >= 3 {
			logger.Printf("graph: cell %s owned by %d features: %s", world.Key(p), len(names), strings.Join(names, " "))
		}
		names := claims[p]
		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				g.AddEdge(names[i], names[j], p)
			}
		}
	}
	return g
}
