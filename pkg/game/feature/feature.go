// Package feature provides the constructive shapes carved by the dungeon
// generators: rectangular rooms and straight corridors.
package feature

import (
	"fmt"
	"sync/atomic"

	"deepdelve/pkg/engine/rng"
	"deepdelve/pkg/engine/world"
)

// Range is an inclusive [Min, Max] interval used for random dimensions.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Draw returns a uniformly chosen value in the range
func (r Range) Draw(g *rng.RNG) int {
	return g.GetUniformInt(r.Min, r.Max)
}

// Kind tells rooms and corridors apart
type Kind int

// Feature kinds
const (
	KindRoom Kind = iota
	KindCorridor
)

func (k Kind) String() string {
	switch k {
	case KindRoom:
		return "room"
	case KindCorridor:
		return "corridor"
	default:
		return "unknown"
	}
}

// CellFunc answers a yes/no question about a grid cell, such as "is it a
// wall" or "can it be dug".
type CellFunc func(x, y int) bool

// DigFunc receives every cell a feature carves along with the value it wants
// there: Floor, Wall for a room's border, or Door.
type DigFunc func(x, y int, c world.Cell)

// Feature is a Room or a Corridor. The set is closed.
type Feature interface {
	ID() int64
	Name() string
	Kind() Kind
	// Cells returns the passable cells the feature owns.
	Cells() []world.Point
	// Bounds returns the inclusive bounding box of the owned cells.
	Bounds() (lo, hi world.Point)
	Dig(fn DigFunc)

	isFeature()
}

var (
	roomCounter     atomic.Int64
	corridorCounter atomic.Int64
)

// CounterState is the last identifier handed out for each feature kind.
type CounterState struct {
	Room     int64 `json:"room"`
	Corridor int64 `json:"corridor"`
}

// Counters returns the current identifier counters
func Counters() CounterState {
	return CounterState{
		Room:     roomCounter.Load(),
		Corridor: corridorCounter.Load(),
	}
}

// RestoreCounters resets the identifier counters, typically after loading a
// save so new features do not collide with persisted ones.
func RestoreCounters(c CounterState) {
	roomCounter.Store(c.Room)
	corridorCounter.Store(c.Corridor)
}

func name(k Kind, id int64) string {
	return fmt.Sprintf("%s-%d", k, id)
}

// unit returns the sign of v: -1, 0 or 1
func unit(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
