package feature

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"deepdelve/pkg/engine/rng"
	"deepdelve/pkg/engine/world"
)

// ErrDirection is returned when a feature is anchored with a direction that
// is not one of the four cardinal unit vectors.
var ErrDirection = errors.New("feature: direction must be a cardinal unit vector")

// Room is a rectangle of floor (x1,y1)-(x2,y2), inclusive, surrounded by a
// one cell halo of wall in which doors may be cut.
type Room struct {
	id             int64
	x1, y1, x2, y2 int
	doors          mapset.Set[world.Point]
}

// NewRoom creates a room covering (x1,y1)-(x2,y2) with no doors
func NewRoom(x1, y1, x2, y2 int) *Room {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return &Room{
		id:    roomCounter.Add(1),
		x1:    x1,
		y1:    y1,
		x2:    x2,
		y2:    y2,
		doors: mapset.New[world.Point](),
	}
}

// NewRoomWithDoor creates a room with a single door at (doorX, doorY)
func NewRoomWithDoor(x1, y1, x2, y2, doorX, doorY int) *Room {
	r := NewRoom(x1, y1, x2, y2)
	r.AddDoor(doorX, doorY)
	return r
}

// RandomRoomAt creates a room attached to the wall cell (x, y) and extending
// away from it in direction (dx, dy). The room is shifted by a random offset
// along the wall, and the wall cell becomes its door.
func RandomRoomAt(g *rng.RNG, x, y, dx, dy int, width, height Range) (*Room, error) {
	w := width.Draw(g)
	h := height.Draw(g)

	switch {
	case dx == 1 && dy == 0:
		y2 := y - int(g.GetUniform()*float64(h))
		return NewRoomWithDoor(x+1, y2, x+w, y2+h-1, x, y), nil
	case dx == -1 && dy == 0:
		y2 := y - int(g.GetUniform()*float64(h))
		return NewRoomWithDoor(x-w, y2, x-1, y2+h-1, x, y), nil
	case dx == 0 && dy == 1:
		x2 := x - int(g.GetUniform()*float64(w))
		return NewRoomWithDoor(x2, y+1, x2+w-1, y+h, x, y), nil
	case dx == 0 && dy == -1:
		x2 := x - int(g.GetUniform()*float64(w))
		return NewRoomWithDoor(x2, y-h, x2+w-1, y-1, x, y), nil
	}
	return nil, fmt.Errorf("%w: (%d,%d)", ErrDirection, dx, dy)
}

// RandomRoomCenter creates a room of random size that contains (cx, cy)
func RandomRoomCenter(g *rng.RNG, cx, cy int, width, height Range) *Room {
	w := width.Draw(g)
	h := height.Draw(g)

	x1 := cx - int(g.GetUniform()*float64(w))
	y1 := cy - int(g.GetUniform()*float64(h))
	return NewRoom(x1, y1, x1+w-1, y1+h-1)
}

// RandomRoom creates a room of random size placed anywhere inside a
// availWidth x availHeight area, leaving the outermost ring free.
func RandomRoom(g *rng.RNG, availWidth, availHeight int, width, height Range) *Room {
	w := width.Draw(g)
	h := height.Draw(g)

	left := availWidth - w - 1
	top := availHeight - h - 1
	x1 := 1 + int(g.GetUniform()*float64(left))
	y1 := 1 + int(g.GetUniform()*float64(top))
	return NewRoom(x1, y1, x1+w-1, y1+h-1)
}

func (r *Room) isFeature() {}

// ID returns the unique room identifier
func (r *Room) ID() int64 { return r.id }

// Name returns the graph node name, e.g. "room-3"
func (r *Room) Name() string { return name(KindRoom, r.id) }

// Kind returns KindRoom
func (r *Room) Kind() Kind { return KindRoom }

func (r *Room) Left() int   { return r.x1 }
func (r *Room) Right() int  { return r.x2 }
func (r *Room) Top() int    { return r.y1 }
func (r *Room) Bottom() int { return r.y2 }

// Width returns the interior width
func (r *Room) Width() int { return r.x2 - r.x1 + 1 }

// Height returns the interior height
func (r *Room) Height() int { return r.y2 - r.y1 + 1 }

// Center returns the middle of the interior, rounding halves up
func (r *Room) Center() world.Point {
	return world.Pt(roundHalfUp(r.x1+r.x2), roundHalfUp(r.y1+r.y2))
}

// roundHalfUp returns round(sum / 2) with .5 going towards +inf
func roundHalfUp(sum int) int {
	if sum >= 0 {
		return (sum + 1) / 2
	}
	return -((-sum) / 2)
}

// Contains reports whether (x, y) is an interior cell
func (r *Room) Contains(x, y int) bool {
	return x >= r.x1 && x <= r.x2 && y >= r.y1 && y <= r.y2
}

// OnHalo reports whether (x, y) is on the one cell ring around the interior
func (r *Room) OnHalo(x, y int) bool {
	left, right, top, bottom := r.x1-1, r.x2+1, r.y1-1, r.y2+1
	if x < left || x > right || y < top || y > bottom {
		return false
	}
	return x == left || x == right || y == top || y == bottom
}

// AddDoor marks (x, y) as a door
func (r *Room) AddDoor(x, y int) {
	r.doors.Put(world.Pt(x, y))
}

// HasDoor reports whether (x, y) is a door of this room
func (r *Room) HasDoor(x, y int) bool {
	return r.doors.Has(world.Pt(x, y))
}

// ClearDoors removes every door
func (r *Room) ClearDoors() {
	r.doors = mapset.New[world.Point]()
}

// Doors returns the door coordinates, sorted
func (r *Room) Doors() []world.Point {
	doors := make([]world.Point, 0, r.doors.Size())
	r.doors.Each(func(p world.Point) {
		doors = append(doors, p)
	})
	sort.Slice(doors, func(i, j int) bool { return world.LessPoint(doors[i], doors[j]) })
	return doors
}

// AddDoors cuts a door wherever the halo touches open space
func (r *Room) AddDoors(isWall CellFunc) {
	r.eachHalo(func(x, y int, border bool) bool {
		if border && !isWall(x, y) {
			r.AddDoor(x, y)
		}
		return true
	})
}

// IsValid reports whether the room fits: every halo cell must be wall and
// every interior cell must be diggable.
func (r *Room) IsValid(isWall, canBeDug CellFunc) bool {
	return r.eachHalo(func(x, y int, border bool) bool {
		if border {
			return isWall(x, y)
		}
		return canBeDug(x, y)
	})
}

// Dig emits every cell of the halo and interior: doors as Door, the rest of
// the halo as Wall and the interior as Floor.
func (r *Room) Dig(fn DigFunc) {
	r.eachHalo(func(x, y int, border bool) bool {
		switch {
		case r.HasDoor(x, y):
			fn(x, y, world.Door)
		case border:
			fn(x, y, world.Wall)
		default:
			fn(x, y, world.Floor)
		}
		return true
	})
}

// Cells returns the interior plus door cells, sorted
func (r *Room) Cells() []world.Point {
	cells := make([]world.Point, 0, r.Width()*r.Height()+r.doors.Size())
	r.eachHalo(func(x, y int, border bool) bool {
		if !border || r.HasDoor(x, y) {
			cells = append(cells, world.Pt(x, y))
		}
		return true
	})
	return cells
}

// Bounds returns the interior box, widened to include any doors
func (r *Room) Bounds() (lo, hi world.Point) {
	lo, hi = world.Pt(r.x1, r.y1), world.Pt(r.x2, r.y2)
	r.doors.Each(func(p world.Point) {
		lo.X, lo.Y = min(lo.X, p.X), min(lo.Y, p.Y)
		hi.X, hi.Y = max(hi.X, p.X), max(hi.Y, p.Y)
	})
	return lo, hi
}

func (r *Room) String() string {
	return fmt.Sprintf("%s (%d,%d)-(%d,%d) doors=%d", r.Name(), r.x1, r.y1, r.x2, r.y2, r.doors.Size())
}

// eachHalo walks the interior plus halo column by column. border is true on
// the halo. Stops early when fn returns false; the result is false then.
func (r *Room) eachHalo(fn func(x, y int, border bool) bool) bool {
	left, right, top, bottom := r.x1-1, r.x2+1, r.y1-1, r.y2+1
	for x := left; x <= right; x++ {
		for y := top; y <= bottom; y++ {
			border := x == left || x == right || y == top || y == bottom
			if !fn(x, y, border) {
				return false
			}
		}
	}
	return true
}
