package generator

import (
	"context"
	"fmt"

	"deepdelve/pkg/engine/rng"
	"deepdelve/pkg/engine/world"
	"deepdelve/pkg/game/feature"
)

// Uniform places non-overlapping rooms first and then retrofits corridors
// between them.
type Uniform struct {
	base
	connected   []*feature.Room
	unconnected []*feature.Room
}

// NewUniform creates a Uniform generator for a width x height map
func NewUniform(width, height int, r *rng.RNG, opts Options) (*Uniform, error) {
	b, err := newBase(KindUniform, width, height, r, opts)
	if err != nil {
		return nil, err
	}
	return &Uniform{base: b}, nil
}

// Generate retries whole layouts until the rooms can all be connected. When
// the time or iteration limit runs out first the returned level is
// incomplete and must be discarded by the caller.
func (u *Uniform) Generate(ctx context.Context) (*Level, error) {
	u.reset()

	var stop error
	for {
		limit, err := u.poll(ctx)
		if err != nil {
			return nil, err
		}
		if limit != nil {
			stop = limit
			if len(u.rooms) < 2 {
				stop = fmt.Errorf("%w; last attempt: %w", limit, ErrTooFewRooms)
			}
			break
		}

		u.clear()
		u.generateRooms()
		if len(u.rooms) < 2 {
			continue
		}
		if u.generateCorridors() {
			break
		}
	}

	u.addDoors()
	return u.finish(stop), nil
}

// generateRooms keeps adding rooms until RoomDugPercentage is passed or a
// room no longer fits
func (u *Uniform) generateRooms() {
	for {
		room := u.generateRoom()
		if u.dugRatio() > u.opts.RoomDugPercentage || room == nil {
			return
		}
	}
}

func (u *Uniform) generateRoom() *feature.Room {
	for attempt := 0; attempt < u.opts.RoomAttempts; attempt++ {
		room := feature.RandomRoom(u.rng, u.width, u.height, u.opts.RoomWidth, u.opts.RoomHeight)
		if !room.IsValid(u.isWall, u.canBeDug) {
			continue
		}
		room.Dig(u.carve)
		u.rooms = append(u.rooms, room)
		return room
	}
	return nil
}

// generateCorridors tries CorridorAttempts times to link every room into one
// network, starting each attempt from a grid holding only the rooms.
func (u *Uniform) generateCorridors() bool {
	for attempt := 0; attempt < u.opts.CorridorAttempts; attempt++ {
		u.corridors = nil
		u.grid.Fill(world.Wall)
		u.dug = 0
		for _, r := range u.rooms {
			r.ClearDoors()
			r.Dig(u.carve)
		}

		u.unconnected = rng.Shuffle(u.rng, u.rooms)
		u.connected = nil
		if n := len(u.unconnected); n > 0 {
			u.connected = append(u.connected, u.unconnected[n-1])
			u.unconnected = u.unconnected[:n-1]
		}

		for {
			connected, ok := rng.Item(u.rng, u.connected)
			if !ok {
				break
			}
			room1 := closestRoom(u.unconnected, connected)
			if room1 == nil {
				break
			}
			room2 := closestRoom(u.connected, room1)
			if room2 == nil {
				break
			}
			if !u.connectRooms(room1, room2) {
				break
			}
			u.markConnected(room1)
			u.markConnected(room2)
			if len(u.unconnected) == 0 {
				return true
			}
		}
	}
	return false
}

func (u *Uniform) markConnected(room *feature.Room) {
	for i, r := range u.unconnected {
		if r == room {
			u.unconnected = append(u.unconnected[:i], u.unconnected[i+1:]...)
			u.connected = append(u.connected, room)
			return
		}
	}
}
