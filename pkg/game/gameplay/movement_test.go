package gameplay

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"deepdelve/pkg/engine/world"
	"deepdelve/pkg/game/generator"
)

func quietOptions() generator.Options {
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return generator.Options{
		Logger: log.New(io.Discard, "", 0),
		Clock:  func() time.Time { return epoch },
	}
}

// makeArena creates an open width x height level ringed by walls
func makeArena(t *testing.T, width, height int) *generator.Level {
	t.Helper()
	g, err := generator.NewArena(width, height, quietOptions())
	if err != nil {
		t.Fatalf("NewArena: %v", err)
	}
	level, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return level
}

func TestCanEnter_NilLevel(t *testing.T) {
	if CanEnter(nil, 1, 1) {
		t.Error("CanEnter(nil, 1, 1) = true, want false")
	}
}

func TestCanEnter_WallAndFloor(t *testing.T) {
	level := makeArena(t, 5, 5)
	if CanEnter(level, 0, 0) {
		t.Error("CanEnter on the outer wall = true, want false")
	}
	if !CanEnter(level, 2, 2) {
		t.Error("CanEnter on the floor = false, want true")
	}
	if CanEnter(level, -1, 2) {
		t.Error("CanEnter outside the grid = true, want false")
	}
}

func TestMove_Blocked(t *testing.T) {
	level := makeArena(t, 5, 5)
	a := NewActor("a", 1, world.Pt(1, 1))
	if Move(level, a, world.Pt(-1, 0)) {
		t.Error("Move into the wall succeeded")
	}
	if a.Pos != world.Pt(1, 1) || a.Moves() != 0 {
		t.Errorf("actor moved to %v after %d moves, want (1,1) and 0", a.Pos, a.Moves())
	}
}

func TestMove_Open(t *testing.T) {
	level := makeArena(t, 5, 5)
	a := NewActor("a", 1, world.Pt(1, 1))
	if !Move(level, a, world.Pt(1, 0)) {
		t.Fatal("Move onto the floor failed")
	}
	if a.Pos != world.Pt(2, 1) {
		t.Errorf("actor at %v, want (2,1)", a.Pos)
	}
	if a.Moves() != 1 {
		t.Errorf("got %d moves, want 1", a.Moves())
	}
}
