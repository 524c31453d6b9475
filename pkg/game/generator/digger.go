package generator

import (
	"context"
	"fmt"
	"sort"

	"deepdelve/pkg/engine/rng"
	"deepdelve/pkg/engine/world"
	"deepdelve/pkg/game/feature"
)

// wallTier ranks candidate walls. Priority walls sit at the end of corridors
// and are tried before any plain candidate.
type wallTier int

const (
	candidateWall wallTier = iota + 1
	priorityWall
)

// Digger grows a dungeon organically: starting from one room it repeatedly
// picks a wall of what was already dug and tries to attach a new room or
// corridor to it.
type Digger struct {
	base
	walls map[world.Point]wallTier
}

// NewDigger creates a Digger for a width x height map
func NewDigger(width, height int, r *rng.RNG, opts Options) (*Digger, error) {
	b, err := newBase(KindDigger, width, height, r, opts)
	if err != nil {
		return nil, err
	}
	return &Digger{base: b}, nil
}

// Generate digs until DugPercentage of the whole map is open and no
// priority walls are left. Hitting the time or iteration limit first returns
// whatever was dug with Complete unset.
func (d *Digger) Generate(ctx context.Context) (*Level, error) {
	d.reset()
	d.walls = make(map[world.Point]wallTier)
	d.firstRoom()

	var stop error
	for {
		limit, err := d.poll(ctx)
		if err != nil {
			return nil, err
		}
		if limit != nil {
			stop = limit
			break
		}

		wall, ok := d.findWall()
		if !ok {
			if d.totalRatio() < d.opts.DugPercentage {
				stop = fmt.Errorf("%w at %.2f dug", ErrExhausted, d.totalRatio())
			}
			break
		}
		if dir, ok := d.diggingDirection(wall); ok {
			for attempt := 0; attempt < d.opts.FeatureAttempts; attempt++ {
				if d.tryFeature(wall, dir) {
					d.removeSurroundingWalls(wall)
					d.removeSurroundingWalls(wall.Sub(dir))
					break
				}
			}
		}

		if d.totalRatio() >= d.opts.DugPercentage && d.priorityWalls() == 0 {
			break
		}
	}

	d.addDoors()
	d.walls = nil
	return d.finish(stop), nil
}

// firstRoom places a random room around the map center. It is clipped to the
// inner area when the map is too small for it.
func (d *Digger) firstRoom() {
	cx, cy := d.width/2, d.height/2
	room := feature.RandomRoomCenter(d.rng, cx, cy, d.opts.RoomWidth, d.opts.RoomHeight)
	if !room.IsValid(d.isWall, d.canBeDug) {
		room = feature.NewRoom(
			max(room.Left(), 1), max(room.Top(), 1),
			min(room.Right(), d.width-2), min(room.Bottom(), d.height-2),
		)
	}
	d.rooms = append(d.rooms, room)
	room.Dig(d.dig)
}

// dig opens floor and doors, and records border cells as candidate walls
func (d *Digger) dig(x, y int, c world.Cell) {
	if c == world.Wall {
		d.walls[world.Pt(x, y)] = candidateWall
		return
	}
	d.carve(x, y, world.Floor)
}

func (d *Digger) priorityWalls() int {
	n := 0
	for _, tier := range d.walls {
		if tier == priorityWall {
			n++
		}
	}
	return n
}

// findWall removes and returns a candidate wall, preferring priority walls.
// Candidates are sorted before the random pick so the result only depends
// on the RNG.
func (d *Digger) findWall() (world.Point, bool) {
	var plain, prio []world.Point
	for p, tier := range d.walls {
		if tier == priorityWall {
			prio = append(prio, p)
		} else {
			plain = append(plain, p)
		}
	}
	pool := plain
	if len(prio) > 0 {
		pool = prio
	}
	if len(pool) == 0 {
		return world.Point{}, false
	}
	sort.Slice(pool, func(i, j int) bool { return world.LessPoint(pool[i], pool[j]) })
	p, _ := rng.Item(d.rng, pool)
	delete(d.walls, p)
	return p, true
}

// diggingDirection returns the direction away from the single open
// neighbour of p. A wall with zero or several open neighbours is unusable.
func (d *Digger) diggingDirection(p world.Point) (world.Point, bool) {
	if p.X <= 0 || p.Y <= 0 || p.X >= d.width-1 || p.Y >= d.height-1 {
		return world.Point{}, false
	}
	var open world.Point
	found := false
	for _, dir := range world.Topology4.Dirs() {
		n := p.Add(dir)
		if d.grid.At(n.X, n.Y) != world.Wall {
			if found {
				return world.Point{}, false
			}
			open, found = dir, true
		}
	}
	if !found {
		return world.Point{}, false
	}
	return world.Pt(-open.X, -open.Y), true
}

// tryFeature attempts one weighted random feature anchored at wall p
func (d *Digger) tryFeature(p, dir world.Point) bool {
	kind, _ := rng.Weighted(d.rng, []rng.Choice[feature.Kind]{
		{Value: feature.KindRoom, Weight: d.opts.RoomWeight},
		{Value: feature.KindCorridor, Weight: d.opts.CorridorWeight},
	})

	if kind == feature.KindRoom {
		room, err := feature.RandomRoomAt(d.rng, p.X, p.Y, dir.X, dir.Y, d.opts.RoomWidth, d.opts.RoomHeight)
		if err != nil || !room.IsValid(d.isWall, d.canBeDug) {
			return false
		}
		room.Dig(d.dig)
		d.rooms = append(d.rooms, room)
		return true
	}

	candidate, err := feature.RandomCorridorAt(d.rng, p.X, p.Y, dir.X, dir.Y, d.opts.CorridorLength)
	if err != nil {
		return false
	}
	corridor, ok := candidate.Validate(d.isWall, d.canBeDug)
	if !ok {
		return false
	}
	corridor.Dig(d.dig)
	for _, w := range corridor.PriorityWalls() {
		d.walls[w] = priorityWall
	}
	d.corridors = append(d.corridors, corridor)
	return true
}

// removeSurroundingWalls forgets candidates one and two cells away from p in
// the four cardinal directions
func (d *Digger) removeSurroundingWalls(p world.Point) {
	for _, dir := range world.Topology4.Dirs() {
		delete(d.walls, p.Add(dir))
		delete(d.walls, world.Pt(p.X+2*dir.X, p.Y+2*dir.Y))
	}
}
