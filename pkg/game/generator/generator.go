package generator

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"deepdelve/pkg/engine/rng"
)

// Generator is an interface for map generation algorithms
type Generator interface {
	Name() Kind
	// Generate runs one generation pass. The error is only non-nil when ctx
	// is cancelled; running out of time or attempts is reported on the
	// returned Level instead.
	Generate(ctx context.Context) (*Level, error)
}

// Kind names a generation algorithm
type Kind string

// Available generators
const (
	KindArena       Kind = "arena"
	KindDigger      Kind = "digger"
	KindUniform     Kind = "uniform"
	KindDividedMaze Kind = "dividedmaze"
	KindBSP         Kind = "bsp"
	KindMiner       Kind = "miner"
	KindWallMaze    Kind = "wallmaze"
	KindMountain    Kind = "mountain"
)

// DefaultKind is the generator used when none is asked for
const DefaultKind = KindDigger

// Errors reported by the generators
var (
	ErrInvalidSize    = errors.New("generator: width and height must be at least 3")
	ErrTimeLimit      = errors.New("generator: time limit exceeded")
	ErrIterationLimit = errors.New("generator: iteration limit reached")
	ErrExhausted      = errors.New("generator: no candidate walls left")
	ErrTooFewRooms    = errors.New("generator: fewer than two rooms fit")
	ErrDisconnected   = errors.New("generator: level is not connected")
	ErrUnknownKind    = errors.New("generator: unknown kind")
)

type constructor func(width, height int, r *rng.RNG, opts Options) (Generator, error)

var registry = map[Kind]constructor{
	KindArena: func(w, h int, r *rng.RNG, o Options) (Generator, error) {
		return NewArena(w, h, o)
	},
	KindDigger: func(w, h int, r *rng.RNG, o Options) (Generator, error) {
		return NewDigger(w, h, r, o)
	},
	KindUniform: func(w, h int, r *rng.RNG, o Options) (Generator, error) {
		return NewUniform(w, h, r, o)
	},
	KindDividedMaze: func(w, h int, r *rng.RNG, o Options) (Generator, error) {
		return NewDividedMaze(w, h, r, o)
	},
	KindBSP: func(w, h int, r *rng.RNG, o Options) (Generator, error) {
		return NewBSP(w, h, r, o)
	},
	KindMiner: func(w, h int, r *rng.RNG, o Options) (Generator, error) {
		return NewMiner(w, h, r, o)
	},
	KindWallMaze: func(w, h int, r *rng.RNG, o Options) (Generator, error) {
		return NewWallMaze(w, h, r, o)
	},
	KindMountain: func(w, h int, r *rng.RNG, o Options) (Generator, error) {
		return NewMountain(w, h, r, o)
	},
}

// New creates the generator registered under kind. A nil r falls back to
// rng.Default.
func New(kind Kind, width, height int, r *rng.RNG, opts Options) (Generator, error) {
	ctor, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return ctor(width, height, r, opts)
}

// Kinds returns every registered generator kind, sorted
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// ParseKind validates a generator name
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := registry[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}
