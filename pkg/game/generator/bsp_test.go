// Package generator tests BSP grid generation: rooms, corridors, connectivity,
// entrance and exit placement.
package generator

import (
	"context"
	"testing"

	"deepdelve/pkg/engine/rng"
	"deepdelve/pkg/engine/world"
)

// countReachableCells returns the number of open cells reachable from start via N/E/S/W.
func countReachableCells(grid *world.Grid, start world.Point) int {
	if !grid.Passable(start.X, start.Y) {
		return 0
	}
	visited := map[world.Point]bool{start: true}
	queue := []world.Point{start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range world.Topology4.Dirs() {
			n := c.Add(d)
			if grid.Passable(n.X, n.Y) && !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(visited)
}

func generateBSP(t *testing.T, seed float64) *Level {
	t.Helper()
	g, err := NewBSP(60, 30, rng.New(seed), quietOptions())
	if err != nil {
		t.Fatalf("NewBSP: %v", err)
	}
	level, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !level.Complete {
		t.Fatalf("level incomplete: %v", level.Err)
	}
	return level
}

func TestBSPGenerate_HasRooms(t *testing.T) {
	level := generateBSP(t, 1)
	if len(level.Rooms) < 2 {
		t.Fatalf("got %d rooms, want at least 2", len(level.Rooms))
	}
	for _, r := range level.Rooms {
		for _, p := range r.Cells() {
			if !level.Grid.Passable(p.X, p.Y) {
				t.Errorf("room %s cell %v is not open", r.Name(), p)
			}
		}
	}
}

func TestBSPGenerate_RoomsDoNotTouch(t *testing.T) {
	level := generateBSP(t, 2)
	for i, a := range level.Rooms {
		for _, b := range level.Rooms[i+1:] {
			apart := a.Right()+2 < b.Left() || b.Right()+2 < a.Left() ||
				a.Bottom()+2 < b.Top() || b.Bottom()+2 < a.Top()
			if !apart {
				t.Errorf("rooms %s and %s share a wall", a, b)
			}
		}
	}
}

func TestBSPGenerate_HasCorridors(t *testing.T) {
	level := generateBSP(t, 3)
	if len(level.Corridors) < 1 {
		t.Errorf("expected at least one corridor, got %d", len(level.Corridors))
	}
	doors := 0
	for _, r := range level.Rooms {
		doors += len(r.Doors())
	}
	if doors < 2 {
		t.Errorf("expected at least two doors, got %d", doors)
	}
}

func TestBSPGenerate_AllCellsReachable(t *testing.T) {
	level := generateBSP(t, 4)
	start, _, ok := level.Endpoints()
	if !ok {
		t.Fatal("Endpoints found no open cell")
	}
	total := level.Grid.CountPassable()
	reachable := countReachableCells(level.Grid, start)
	if reachable != total {
		t.Errorf("reachable cells %d != open cells %d (isolated rooms)", reachable, total)
	}
	if !level.Graph.Connected() {
		t.Errorf("feature graph has %d components, want 1", len(level.Graph.Components()))
	}
}

func TestBSPGenerate_StartAndExitSet(t *testing.T) {
	level := generateBSP(t, 7)
	start, exit, ok := level.Endpoints()
	if !ok {
		t.Fatal("Endpoints found no open cell")
	}
	if start != level.Rooms[0].Center() {
		t.Errorf("start = %v, want center of first room %v", start, level.Rooms[0].Center())
	}
	if !level.Grid.Passable(exit.X, exit.Y) {
		t.Errorf("exit %v is not walkable", exit)
	}
	if exit == start {
		t.Error("exit equals start")
	}
}
