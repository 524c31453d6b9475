package world

import (
	"testing"
)

func TestNewGrid_StartsAsWall(t *testing.T) {
	g := NewGrid(4, 3)
	if g.Width() != 4 || g.Height() != 3 {
		t.Fatalf("size = %dx%d, want 4x3", g.Width(), g.Height())
	}
	if n := g.Count(Wall); n != 12 {
		t.Errorf("Count(Wall) = %d, want 12", n)
	}
}

func TestNewGrid_PanicsOnBadSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewGrid(0, 5) did not panic")
		}
	}()
	NewGrid(0, 5)
}

func TestGrid_BoundsChecks(t *testing.T) {
	g := NewGrid(5, 5)
	if g.Set(5, 0, Floor) {
		t.Error("Set out of bounds returned true")
	}
	if _, ok := g.Get(-1, 2); ok {
		t.Error("Get(-1,2) reported in bounds")
	}
	if g.At(10, 10) != Wall {
		t.Error("out-of-bounds At should read as Wall")
	}
	if g.IsWall(10, 10) {
		t.Error("out-of-bounds IsWall should be false")
	}
	if !g.IsPlayable(1, 1) || g.IsPlayable(0, 2) || !g.IsOnPerimeter(4, 4) {
		t.Error("playable/perimeter classification is wrong")
	}
}

func TestGrid_SetCloneEqual(t *testing.T) {
	g := NewGrid(3, 3)
	g.Set(1, 1, Floor)
	g.Set(1, 0, Door)

	c := g.Clone()
	if !g.Equal(c) {
		t.Fatal("clone is not equal to source")
	}
	c.Set(1, 1, Wall)
	if g.At(1, 1) != Floor {
		t.Error("mutating the clone changed the source")
	}
	if g.Equal(c) {
		t.Error("grids should differ after mutation")
	}
	if g.CountPassable() != 2 {
		t.Errorf("CountPassable = %d, want 2", g.CountPassable())
	}
}

func TestGrid_RowsRoundTrip(t *testing.T) {
	g := NewGrid(4, 2)
	g.Set(0, 1, Floor)
	g.Set(3, 0, Door)
	rows := g.Rows()
	if rows[1][0] != int(Floor) || rows[0][3] != int(Door) {
		t.Fatalf("Rows indexed wrong: %v", rows)
	}
	back, ok := GridFromRows(rows)
	if !ok || !back.Equal(g) {
		t.Error("GridFromRows(Rows()) did not round-trip")
	}
	if _, ok := GridFromRows([][]int{{1, 1}, {1}}); ok {
		t.Error("ragged rows accepted")
	}
}

func TestGrid_String(t *testing.T) {
	g := NewGrid(3, 2)
	g.Set(1, 0, Floor)
	g.Set(2, 1, Door)
	want := "#.#\n##+\n"
	if got := g.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestDirection_DeltaAndOpposite(t *testing.T) {
	for _, d := range AllDirections() {
		dx, dy := d.Delta()
		ox, oy := d.Opposite().Delta()
		if dx != -ox || dy != -oy {
			t.Errorf("%v opposite delta mismatch", d)
		}
		back, ok := DirectionOf(dx, dy)
		if !ok || back != d {
			t.Errorf("DirectionOf(%d,%d) = %v, want %v", dx, dy, back, d)
		}
	}
	if _, ok := DirectionOf(1, 1); ok {
		t.Error("diagonal should not map to a cardinal direction")
	}
}

func TestTopology_Dirs(t *testing.T) {
	if n := len(Topology4.Dirs()); n != 4 {
		t.Errorf("Topology4 has %d dirs", n)
	}
	if n := len(Topology6.Dirs()); n != 6 {
		t.Errorf("Topology6 has %d dirs", n)
	}
	if n := len(Topology8.Dirs()); n != 8 {
		t.Errorf("Topology8 has %d dirs", n)
	}
	d := Topology4.Dirs()
	d[0] = Pt(9, 9)
	if Topology4.Dirs()[0] == Pt(9, 9) {
		t.Error("Dirs must return a copy")
	}
}
