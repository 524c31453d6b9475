package generator

import (
	"context"
	"fmt"
	"time"

	"deepdelve/pkg/engine/rng"
	"deepdelve/pkg/engine/world"
	"deepdelve/pkg/game/feature"
	"deepdelve/pkg/game/graph"
)

// base is the working state shared by every generator. The grid, rooms and
// corridors only live for one Generate call; finish copies them out.
type base struct {
	kind   Kind
	width  int
	height int
	rng    *rng.RNG
	opts   Options

	grid       *world.Grid
	rooms      []*feature.Room
	corridors  []*feature.Corridor
	dug        int
	iterations int

	started    time.Time
	startState rng.State
}

func newBase(kind Kind, width, height int, r *rng.RNG, opts Options) (base, error) {
	if width < 3 || height < 3 {
		return base{}, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, width, height)
	}
	if r == nil {
		r = rng.Default
	}
	return base{
		kind:   kind,
		width:  width,
		height: height,
		rng:    r,
		opts:   opts.withDefaults(kind),
	}, nil
}

// Name returns the generator kind
func (b *base) Name() Kind {
	return b.kind
}

// Options returns the effective options after defaults were applied
func (b *base) Options() Options {
	return b.opts
}

// reset starts a fresh pass on an all-wall grid
func (b *base) reset() {
	b.grid = world.NewGrid(b.width, b.height)
	b.rooms = nil
	b.corridors = nil
	b.dug = 0
	b.iterations = 0
	b.started = b.opts.Clock()
	b.startState = b.rng.State()
}

// clear wipes the grid for another attempt inside the same pass
func (b *base) clear() {
	b.grid.Fill(world.Wall)
	b.rooms = nil
	b.corridors = nil
	b.dug = 0
}

func (b *base) innerArea() int {
	return (b.width - 2) * (b.height - 2)
}

func (b *base) dugRatio() float64 {
	return float64(b.dug) / float64(b.innerArea())
}

// totalRatio measures what was dug against the whole map, ring included
func (b *base) totalRatio() float64 {
	return float64(b.dug) / float64(b.width*b.height)
}

// isWall is false outside the map so no feature can use the void as a border
func (b *base) isWall(x, y int) bool {
	return b.grid.IsWall(x, y)
}

// canBeDug keeps a one cell margin around the map
func (b *base) canBeDug(x, y int) bool {
	if x < 1 || y < 1 || x+1 >= b.width || y+1 >= b.height {
		return false
	}
	return b.grid.At(x, y) == world.Wall
}

// inside is true off the outer ring
func (b *base) inside(x, y int) bool {
	return x >= 1 && y >= 1 && x <= b.width-2 && y <= b.height-2
}

// carve writes a feature cell and counts newly opened floor
func (b *base) carve(x, y int, c world.Cell) {
	before := b.grid.At(x, y)
	if b.grid.Set(x, y, c) && c == world.Floor && before == world.Wall {
		b.dug++
	}
}

func (b *base) elapsed() time.Duration {
	return b.opts.Clock().Sub(b.started)
}

// poll is called once per outer loop iteration. It returns ctx.Err() when
// the caller gave up, and a limit error when the pass must stop early.
func (b *base) poll(ctx context.Context) (limit error, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.elapsed() > b.opts.TimeLimit {
		return fmt.Errorf("%w after %s", ErrTimeLimit, b.opts.TimeLimit), nil
	}
	if b.opts.MaxIterations > 0 && b.iterations >= b.opts.MaxIterations {
		return fmt.Errorf("%w (%d)", ErrIterationLimit, b.opts.MaxIterations), nil
	}
	b.iterations++
	return nil, nil
}

// addDoors recomputes every room's doors from the current grid
func (b *base) addDoors() {
	for _, r := range b.rooms {
		r.ClearDoors()
		r.AddDoors(b.isWall)
	}
}

// finish copies the working state into a Level. A pass that claims to be
// complete is downgraded when its open cells or its feature graph fall apart.
func (b *base) finish(stop error) *Level {
	grid := b.grid.Clone()
	for _, r := range b.rooms {
		for _, d := range r.Doors() {
			grid.Set(d.X, d.Y, world.Door)
		}
	}

	l := &Level{
		Generator:  b.kind,
		Width:      b.width,
		Height:     b.height,
		Seed:       b.rng.Seed(),
		StartState: b.startState,
		Grid:       grid,
		Rooms:      append([]*feature.Room(nil), b.rooms...),
		Corridors:  append([]*feature.Corridor(nil), b.corridors...),
		Complete:   stop == nil,
		Err:        stop,
		Iterations: b.iterations,
		Elapsed:    b.elapsed(),
	}
	l.Graph = graph.Build(grid, l.Features(), b.opts.Logger)

	if l.Complete {
		if n := l.Regions(); n > 1 {
			l.Complete, l.Err = false, fmt.Errorf("%w: %d open regions", ErrDisconnected, n)
		} else if !l.Graph.Connected() {
			l.Complete, l.Err = false, fmt.Errorf("%w: %d feature groups", ErrDisconnected, len(l.Graph.Components()))
		}
	}
	if !l.Complete {
		b.opts.Logger.Printf("generator: %s %dx%d incomplete after %d iterations: %v", b.kind, b.width, b.height, b.iterations, l.Err)
	}
	return l
}
