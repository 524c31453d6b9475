package generator

import (
	"context"
	"fmt"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"deepdelve/pkg/engine/rng"
	"deepdelve/pkg/engine/world"
)

const (
	// mountainScale converts cell coordinates into noise space
	mountainScale = 0.12
	// mountainLevel is the height below which a cell is open valley floor
	mountainLevel = 0.05
)

// Mountain carves valleys out of a simplex noise height field and keeps the
// largest connected one.
type Mountain struct {
	base
}

// NewMountain creates a Mountain generator for a width x height map
func NewMountain(width, height int, r *rng.RNG, opts Options) (*Mountain, error) {
	b, err := newBase(KindMountain, width, height, r, opts)
	if err != nil {
		return nil, err
	}
	return &Mountain{base: b}, nil
}

// Generate draws a new noise field per attempt until the kept valley covers
// DugPercentage of the inner area. The noise seed comes from the RNG, so the
// result is reproducible.
func (m *Mountain) Generate(ctx context.Context) (*Level, error) {
	m.reset()

	var stop error
	for {
		limit, err := m.poll(ctx)
		if err != nil {
			return nil, err
		}
		if limit != nil {
			stop = fmt.Errorf("%w; best valley %.2f of %.2f", limit, m.dugRatio(), m.opts.DugPercentage)
			break
		}
		if m.attempt() >= m.opts.DugPercentage {
			break
		}
	}
	return m.finish(stop), nil
}

// attempt fills the grid from one noise field and returns the open ratio
func (m *Mountain) attempt() float64 {
	m.clear()
	seed := int64(m.rng.GetUniform() * math.MaxInt32)
	noise := opensimplex.New(seed)

	for x := 1; x < m.width-1; x++ {
		for y := 1; y < m.height-1; y++ {
			h := noise.Eval2(float64(x)*mountainScale, float64(y)*mountainScale)
			if h < mountainLevel {
				m.grid.Set(x, y, world.Floor)
			}
		}
	}

	valleys := regions(m.grid)
	m.grid.Fill(world.Wall)
	if len(valleys) == 0 {
		return 0
	}
	for _, p := range valleys[0] {
		m.carve(p.X, p.Y, world.Floor)
	}
	return m.dugRatio()
}
