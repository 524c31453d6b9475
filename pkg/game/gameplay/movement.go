// Package gameplay walks actors across a generated level. Every actor follows
// the shortest route to the exit and turns are handed out by speed.
package gameplay

import (
	"deepdelve/pkg/engine/world"
	"deepdelve/pkg/game/generator"
)

// Actor is a walker on a level
type Actor struct {
	Name  string
	Pos   world.Point
	speed float64
	route []world.Point
	moves int
}

// NewActor places an actor at the given cell
func NewActor(name string, speed float64, at world.Point) *Actor {
	return &Actor{Name: name, Pos: at, speed: speed}
}

// Speed is the actor's speed stat; higher acts more often.
func (a *Actor) Speed() float64 {
	return a.speed
}

// Moves is the number of cells the actor has walked
func (a *Actor) Moves() int {
	return a.moves
}

// Remaining is the number of steps left on the actor's route
func (a *Actor) Remaining() int {
	if len(a.route) == 0 {
		return 0
	}
	return len(a.route) - 1
}

// Arrived reports whether the actor is standing at the end of its route
func (a *Actor) Arrived() bool {
	return len(a.route) > 0 && a.Pos == a.route[len(a.route)-1]
}

// CanEnter reports whether (x, y) can be walked onto
func CanEnter(l *generator.Level, x, y int) bool {
	if l == nil || l.Grid == nil {
		return false
	}
	return l.Grid.Passable(x, y)
}

// Move steps the actor one cell in direction d. Nothing happens when the
// target cell is blocked.
func Move(l *generator.Level, a *Actor, d world.Point) bool {
	to := a.Pos.Add(d)
	if !CanEnter(l, to.X, to.Y) {
		return false
	}
	a.Pos = to
	a.moves++
	return true
}

// advance moves the actor to the next cell of its route
func (a *Actor) advance(l *generator.Level) bool {
	if len(a.route) < 2 {
		return false
	}
	next := a.route[1]
	if !Move(l, a, next.Sub(a.Pos)) {
		return false
	}
	a.route = a.route[1:]
	return true
}
