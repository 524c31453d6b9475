package feature

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deepdelve/pkg/engine/rng"
	"deepdelve/pkg/engine/world"
)

func callbacks(g *world.Grid) (isWall, canBeDug CellFunc) {
	isWall = g.IsWall
	canBeDug = func(x, y int) bool {
		if x < 1 || y < 1 || x+1 >= g.Width() || y+1 >= g.Height() {
			return false
		}
		return g.At(x, y) == world.Wall
	}
	return isWall, canBeDug
}

func TestRandomRoomAt_AttachesToWallCell(t *testing.T) {
	r := rng.New(7)
	width, height := Range{3, 6}, Range{2, 4}
	cases := []struct {
		dx, dy int
		check  func(room *Room)
	}{
		{1, 0, func(room *Room) { assert.Equal(t, 11, room.Left()) }},
		{-1, 0, func(room *Room) { assert.Equal(t, 9, room.Right()) }},
		{0, 1, func(room *Room) { assert.Equal(t, 11, room.Top()) }},
		{0, -1, func(room *Room) { assert.Equal(t, 9, room.Bottom()) }},
	}
	for _, tc := range cases {
		for i := 0; i < 20; i++ {
			room, err := RandomRoomAt(r, 10, 10, tc.dx, tc.dy, width, height)
			require.NoError(t, err)
			tc.check(room)
			assert.Equal(t, []world.Point{world.Pt(10, 10)}, room.Doors())
			assert.True(t, room.OnHalo(10, 10), "door sits on the halo")
			assert.GreaterOrEqual(t, room.Width(), 3)
			assert.LessOrEqual(t, room.Width(), 6)
			assert.GreaterOrEqual(t, room.Height(), 2)
			assert.LessOrEqual(t, room.Height(), 4)
		}
	}
}

func TestRandomRoomAt_RejectsDiagonal(t *testing.T) {
	_, err := RandomRoomAt(rng.New(1), 5, 5, 1, 1, Range{3, 3}, Range{3, 3})
	assert.True(t, errors.Is(err, ErrDirection))

	_, err = RandomCorridorAt(rng.New(1), 5, 5, 0, 0, Range{3, 3})
	assert.True(t, errors.Is(err, ErrDirection))
}

func TestRandomRoom_HaloStaysInsideArea(t *testing.T) {
	r := rng.New(99)
	for i := 0; i < 200; i++ {
		room := RandomRoom(r, 20, 12, Range{3, 9}, Range{3, 5})
		assert.GreaterOrEqual(t, room.Left()-1, 0)
		assert.GreaterOrEqual(t, room.Top()-1, 0)
		assert.Less(t, room.Right()+1, 20)
		assert.Less(t, room.Bottom()+1, 12)
	}
}

func TestRandomRoomCenter_ContainsCenterPoint(t *testing.T) {
	r := rng.New(3)
	for i := 0; i < 50; i++ {
		room := RandomRoomCenter(r, 15, 8, Range{3, 9}, Range{3, 5})
		assert.True(t, room.Contains(15, 8))
	}
}

func TestRoom_IsValidNeedsWallHalo(t *testing.T) {
	g := world.NewGrid(10, 10)
	isWall, canBeDug := callbacks(g)
	room := NewRoom(2, 2, 4, 4)
	assert.True(t, room.IsValid(isWall, canBeDug))

	g.Set(5, 3, world.Floor)
	assert.False(t, room.IsValid(isWall, canBeDug), "open halo cell")

	g.Fill(world.Wall)
	edge := NewRoom(0, 2, 2, 4)
	assert.False(t, edge.IsValid(isWall, canBeDug), "halo off the map is not wall")
}

func TestRoom_DigValues(t *testing.T) {
	room := NewRoomWithDoor(2, 2, 4, 4, 5, 3)
	counts := map[world.Cell]int{}
	room.Dig(func(x, y int, c world.Cell) {
		counts[c]++
		assert.True(t, x >= 1 && x <= 5 && y >= 1 && y <= 5)
	})
	assert.Equal(t, 9, counts[world.Floor])
	assert.Equal(t, 1, counts[world.Door])
	assert.Equal(t, 15, counts[world.Wall])
}

func TestRoom_AddDoorsWhereHaloIsOpen(t *testing.T) {
	g := world.NewGrid(10, 10)
	room := NewRoom(2, 2, 4, 4)
	room.Dig(func(x, y int, c world.Cell) { g.Set(x, y, c) })
	g.Set(5, 3, world.Floor)
	g.Set(3, 1, world.Floor)

	room.AddDoors(g.IsWall)
	assert.Equal(t, []world.Point{world.Pt(3, 1), world.Pt(5, 3)}, room.Doors())
	assert.Len(t, room.Cells(), 9+2)

	lo, hi := room.Bounds()
	assert.Equal(t, world.Pt(2, 1), lo)
	assert.Equal(t, world.Pt(5, 4), hi)

	room.ClearDoors()
	assert.Empty(t, room.Doors())
}

func TestRoom_CenterRoundsHalfUp(t *testing.T) {
	assert.Equal(t, world.Pt(3, 2), NewRoom(1, 1, 4, 2).Center())
	assert.Equal(t, world.Pt(2, 2), NewRoom(1, 1, 3, 3).Center())
	assert.Equal(t, world.Pt(-2, 0), NewRoom(-3, 0, -2, 0).Center())
}

func TestCorridor_ValidFullLength(t *testing.T) {
	g := world.NewGrid(12, 12)
	isWall, canBeDug := callbacks(g)
	c := NewCorridor(2, 5, 6, 5)

	v, ok := c.Validate(isWall, canBeDug)
	require.True(t, ok)
	assert.Equal(t, c.ID(), v.ID())
	assert.Equal(t, 5, v.Length())
	assert.True(t, v.EndsWithWall())
	assert.Equal(t, []world.Point{world.Pt(7, 5), world.Pt(6, 4), world.Pt(6, 6)}, v.PriorityWalls())
}

func TestCorridor_ShortenedIntoOpenSpace(t *testing.T) {
	g := world.NewGrid(12, 12)
	g.Set(7, 5, world.Floor)
	isWall, canBeDug := callbacks(g)
	c := NewCorridor(2, 5, 9, 5)

	v, ok := c.Validate(isWall, canBeDug)
	require.True(t, ok)
	assert.Equal(t, world.Pt(6, 5), v.End())
	assert.False(t, v.EndsWithWall())
	assert.Nil(t, v.PriorityWalls())
	assert.Equal(t, world.Pt(9, 5), c.End(), "receiver is untouched")
}

func TestCorridor_OpenCornerAtWallEndRejected(t *testing.T) {
	g := world.NewGrid(12, 12)
	g.Set(5, 4, world.Floor)
	isWall, canBeDug := callbacks(g)

	_, ok := NewCorridor(2, 5, 6, 5).Validate(isWall, canBeDug)
	assert.False(t, ok)
}

func TestCorridor_DegenerateLengths(t *testing.T) {
	g := world.NewGrid(12, 12)
	g.Set(2, 5, world.Floor)
	isWall, canBeDug := callbacks(g)
	_, ok := NewCorridor(2, 5, 6, 5).Validate(isWall, canBeDug)
	assert.False(t, ok, "zero length")

	g.Fill(world.Wall)
	g.Set(3, 4, world.Floor)
	_, ok = NewCorridor(2, 5, 6, 5).Validate(isWall, canBeDug)
	assert.False(t, ok, "one cell stub into a wall")

	g.Fill(world.Wall)
	g.Set(3, 5, world.Floor)
	v, ok := NewCorridor(2, 5, 6, 5).Validate(isWall, canBeDug)
	require.True(t, ok, "one cell opening onto open space")
	assert.Equal(t, 1, v.Length())
}

func TestCorridor_CellsAndBounds(t *testing.T) {
	c := NewCorridor(4, 6, 4, 3)
	assert.Equal(t, []world.Point{world.Pt(4, 6), world.Pt(4, 5), world.Pt(4, 4), world.Pt(4, 3)}, c.Cells())
	lo, hi := c.Bounds()
	assert.Equal(t, world.Pt(4, 3), lo)
	assert.Equal(t, world.Pt(4, 6), hi)

	var floors int
	c.Dig(func(x, y int, v world.Cell) {
		assert.Equal(t, world.Floor, v)
		floors++
	})
	assert.Equal(t, 4, floors)
}

func TestCounters_StrictlyIncreasingAndRestorable(t *testing.T) {
	saved := Counters()
	defer RestoreCounters(saved)

	a := NewRoom(1, 1, 2, 2)
	b := NewRoom(1, 1, 2, 2)
	assert.Equal(t, a.ID()+1, b.ID())
	c := NewCorridor(0, 0, 3, 0)

	RestoreCounters(CounterState{Room: 41, Corridor: 9})
	assert.Equal(t, "room-42", NewRoom(1, 1, 2, 2).Name())
	assert.Equal(t, "corridor-10", NewCorridor(0, 0, 1, 0).Name())
	assert.NotEqual(t, c.Name(), a.Name())

	var f Feature = c
	assert.Equal(t, KindCorridor, f.Kind())
	assert.Equal(t, "corridor", f.Kind().String())
}
