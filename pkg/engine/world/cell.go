// Package world provides generic 2D grid-based world primitives.
// These are engine-level constructs usable by any tile-based game.
package world

import (
	"fmt"

	"codeberg.org/anaseto/gruid"
)

// Point is an (X, Y) grid coordinate. X grows to the right, Y grows down.
type Point = gruid.Point

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Key returns the "x,y" key used to name a coordinate in logs and dumps.
func Key(p Point) string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Cell is the semantic value stored in a grid cell.
type Cell int

// Cell values
const (
	Floor Cell = 0 // passable, empty
	Wall  Cell = 1 // unpassable
	Door  Cell = 2 // passable, distinguished for rendering and logic
)

// Passable returns true for floor and door cells
func (c Cell) Passable() bool {
	return c == Floor || c == Door
}

// Symbol returns the single-character map symbol for the cell
func (c Cell) Symbol() rune {
	switch c {
	case Floor:
		return '.'
	case Door:
		return '+'
	default:
		return '#'
	}
}

// String returns the name of the cell value
func (c Cell) String() string {
	switch c {
	case Floor:
		return "Floor"
	case Wall:
		return "Wall"
	case Door:
		return "Door"
	default:
		return "Unknown"
	}
}

// LessPoint orders points by X, then Y. Used wherever iteration over a set of
// points must be deterministic.
func LessPoint(a, b Point) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}
