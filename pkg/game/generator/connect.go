package generator

import (
	"math"

	"deepdelve/pkg/engine/rng"
	"deepdelve/pkg/engine/world"
	"deepdelve/pkg/game/feature"
)

// Wall sides, clockwise from north. They index world.Topology4.Dirs().
const (
	sideNorth = iota
	sideEast
	sideSouth
	sideWest
)

// coord is a point addressable by axis: 0 is x, 1 is y
type coord [2]int

func coordOf(p world.Point) coord { return coord{p.X, p.Y} }

func (c coord) point() world.Point { return world.Pt(c[0], c[1]) }

// connectRooms digs a corridor from a wall of room1 to a wall of room2 and
// records a door on each end. The shape is picked from how the rooms line up:
// a straight I when room1's exit point faces room2's wall span, an L through
// another wall of room2 when it is well outside the span, otherwise an S
// bending halfway. Returns false when a wall has no usable spot.
func (b *base) connectRooms(room1, room2 *feature.Room) bool {
	center1, center2 := room1.Center(), room2.Center()
	diffX, diffY := center2.X-center1.X, center2.Y-center1.Y

	var side1, side2, lo, hi, index int
	if abs(diffX) < abs(diffY) {
		// north and south walls first
		side1 = sideNorth
		if diffY > 0 {
			side1 = sideSouth
		}
		side2 = (side1 + 2) % 4
		lo, hi = room2.Left(), room2.Right()
		index = 0
	} else {
		// east and west walls first
		side1 = sideWest
		if diffX > 0 {
			side1 = sideEast
		}
		side2 = (side1 + 2) % 4
		lo, hi = room2.Top(), room2.Bottom()
		index = 1
	}

	start, ok := b.placeInWall(room1, side1)
	if !ok {
		return false
	}
	index2 := (index + 1) % 2

	var end coord
	switch {
	case start[index] >= lo && start[index] <= hi:
		end = start
		switch side2 {
		case sideNorth:
			end[index2] = room2.Top() - 1
		case sideEast:
			end[index2] = room2.Right() + 1
		case sideSouth:
			end[index2] = room2.Bottom() + 1
		case sideWest:
			end[index2] = room2.Left() - 1
		}
		b.digLine(start, end)

	case start[index] < lo-1 || start[index] > hi+1:
		diff := start[index] - coordOf(center2)[index]
		rotation := 0
		switch side2 {
		case sideNorth, sideEast:
			rotation = 1
			if diff < 0 {
				rotation = 3
			}
		case sideSouth, sideWest:
			rotation = 3
			if diff < 0 {
				rotation = 1
			}
		}
		side2 = (side2 + rotation) % 4
		if end, ok = b.placeInWall(room2, side2); !ok {
			return false
		}
		var mid coord
		mid[index] = start[index]
		mid[index2] = end[index2]
		b.digLine(start, mid, end)

	default:
		if end, ok = b.placeInWall(room2, side2); !ok {
			return false
		}
		half := int(math.Floor(float64(end[index2]+start[index2])/2 + 0.5))
		var mid1, mid2 coord
		mid1[index], mid1[index2] = start[index], half
		mid2[index], mid2[index2] = end[index], half
		b.digLine(start, mid1, mid2, end)
	}

	room1.AddDoor(start[0], start[1])
	room2.AddDoor(end[0], end[1])
	return true
}

// placeInWall picks a random wall cell on one side of the room's halo. Cells
// next to an opening are skipped so two corridors never run side by side
// into the same room, and the outer ring is never used.
func (b *base) placeInWall(room *feature.Room, side int) (coord, bool) {
	var start, dir coord
	var length int
	switch side {
	case sideNorth:
		dir = coord{1, 0}
		start = coord{room.Left(), room.Top() - 1}
		length = room.Width()
	case sideEast:
		dir = coord{0, 1}
		start = coord{room.Right() + 1, room.Top()}
		length = room.Height()
	case sideSouth:
		dir = coord{1, 0}
		start = coord{room.Left(), room.Bottom() + 1}
		length = room.Width()
	case sideWest:
		dir = coord{0, 1}
		start = coord{room.Left() - 1, room.Top()}
		length = room.Height()
	}

	avail := make([]*coord, length)
	lastBad := -2
	for i := 0; i < length; i++ {
		c := coord{start[0] + i*dir[0], start[1] + i*dir[1]}
		if b.isWall(c[0], c[1]) {
			if lastBad != i-1 && b.inside(c[0], c[1]) {
				avail[i] = &c
			}
		} else {
			lastBad = i
			if i > 0 {
				avail[i-1] = nil
			}
		}
	}

	var spots []coord
	for _, c := range avail {
		if c != nil {
			spots = append(spots, *c)
		}
	}
	return rng.Item(b.rng, spots)
}

// digLine digs a chain of straight corridors through the given points.
// Zero length links are dropped unless they are the whole line.
func (b *base) digLine(points ...coord) {
	for i := 1; i < len(points); i++ {
		from, to := points[i-1], points[i]
		if from == to && len(points) > 2 {
			continue
		}
		corridor := feature.NewCorridor(from[0], from[1], to[0], to[1])
		corridor.Dig(b.carve)
		b.corridors = append(b.corridors, corridor)
	}
}

// closestRoom returns the room whose center is nearest to room's center by
// squared distance. The first of equally near rooms wins.
func closestRoom(rooms []*feature.Room, room *feature.Room) *feature.Room {
	var result *feature.Room
	dist := math.MaxInt
	center := room.Center()
	for _, r := range rooms {
		c := r.Center()
		dx, dy := c.X-center.X, c.Y-center.Y
		if d := dx*dx + dy*dy; d < dist {
			dist = d
			result = r
		}
	}
	return result
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
