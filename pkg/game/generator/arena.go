package generator

import (
	"context"

	"deepdelve/pkg/game/feature"
)

// Arena is a single open room bordered by wall. It uses no randomness.
type Arena struct {
	base
}

// NewArena creates an Arena generator
func NewArena(width, height int, opts Options) (*Arena, error) {
	b, err := newBase(KindArena, width, height, nil, opts)
	if err != nil {
		return nil, err
	}
	return &Arena{base: b}, nil
}

// Generate opens every cell except the outer ring
func (a *Arena) Generate(ctx context.Context) (*Level, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.reset()
	room := feature.NewRoom(1, 1, a.width-2, a.height-2)
	room.Dig(a.carve)
	a.rooms = append(a.rooms, room)
	a.iterations = 1
	return a.finish(nil), nil
}
