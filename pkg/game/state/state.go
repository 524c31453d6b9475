// Package state holds the persisted-state contract: everything needed to
// reproduce a dungeon later (RNG seed and state, feature identifier counters)
// and a plain, JSON friendly copy of a generated level.
package state

import (
	"encoding/json"
	"fmt"

	"deepdelve/pkg/engine/rng"
	"deepdelve/pkg/engine/world"
	"deepdelve/pkg/game/feature"
)

// Version of the persisted layout
const Version = 1

// Snapshot is the state a save game carries so generation resumes exactly
// where it left off
type Snapshot struct {
	Version  int                  `json:"version" jsonschema:"required"`
	Seed     float64              `json:"seed" jsonschema:"required"`
	RNG      rng.State            `json:"rng" jsonschema:"required"`
	Counters feature.CounterState `json:"counters" jsonschema:"required"`
}

// Capture records the RNG and the global feature counters
func Capture(r *rng.RNG) Snapshot {
	return Snapshot{
		Version:  Version,
		Seed:     r.Seed(),
		RNG:      r.State(),
		Counters: feature.Counters(),
	}
}

// Restore puts the RNG and the feature counters back. The seed is applied
// first so that the state overrides it.
func (s Snapshot) Restore(r *rng.RNG) {
	r.SetSeed(s.Seed)
	r.SetState(s.RNG)
	feature.RestoreCounters(s.Counters)
}

// Marshal encodes a snapshot as indented JSON
func Marshal(s Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Unmarshal decodes a snapshot and checks its version
func Unmarshal(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("state: decode snapshot: %w", err)
	}
	if s.Version != Version {
		return Snapshot{}, fmt.Errorf("%w: got %d, want %d", ErrVersion, s.Version, Version)
	}
	return s, nil
}

// Point is a cell coordinate
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PointOf converts a world point
func PointOf(p world.Point) Point {
	return Point{X: p.X, Y: p.Y}
}

// RoomData is a room as persisted
type RoomData struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Doors []Point `json:"doors,omitempty"`
}

// CorridorData is a corridor as persisted
type CorridorData struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Start        Point  `json:"start"`
	End          Point  `json:"end"`
	EndsWithWall bool   `json:"endsWithWall"`
}

// EdgeData links two features by name through the cell they share
type EdgeData struct {
	A  string `json:"a"`
	B  string `json:"b"`
	At Point  `json:"at"`
}

// LevelData is a generated level reduced to plain values
type LevelData struct {
	Generator  string         `json:"generator" jsonschema:"required"`
	Width      int            `json:"width" jsonschema:"required"`
	Height     int            `json:"height" jsonschema:"required"`
	Seed       float64        `json:"seed"`
	StartState rng.State      `json:"startState"`
	Cells      [][]int        `json:"cells" jsonschema:"required"`
	Rooms      []RoomData     `json:"rooms"`
	Corridors  []CorridorData `json:"corridors"`
	Edges      []EdgeData     `json:"edges"`
	Complete   bool           `json:"complete"`
	Error      string         `json:"error,omitempty"`
	Iterations int            `json:"iterations"`
}

// RoomDataOf copies a room
func RoomDataOf(r *feature.Room) RoomData {
	d := RoomData{
		ID:   r.ID(),
		Name: r.Name(),
		X1:   r.Left(),
		Y1:   r.Top(),
		X2:   r.Right(),
		Y2:   r.Bottom(),
	}
	for _, p := range r.Doors() {
		d.Doors = append(d.Doors, PointOf(p))
	}
	return d
}

// CorridorDataOf copies a corridor
func CorridorDataOf(c *feature.Corridor) CorridorData {
	return CorridorData{
		ID:           c.ID(),
		Name:         c.Name(),
		Start:        PointOf(c.Start()),
		End:          PointOf(c.End()),
		EndsWithWall: c.EndsWithWall(),
	}
}

// Grid rebuilds the cell grid. ok is false when the rows are ragged or
// empty.
func (l LevelData) Grid() (*world.Grid, bool) {
	return world.GridFromRows(l.Cells)
}
