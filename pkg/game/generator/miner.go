package generator

import (
	"context"
	"fmt"

	"deepdelve/pkg/engine/rng"
	"deepdelve/pkg/engine/world"
	"deepdelve/pkg/game/feature"
)

// minerBranch is the chance that a miner splits off at each cell it digs.
// Every generation of branches is 0.1 less likely to split again.
const minerBranch = 0.4

// Miner digs the map with branching miners walking straight lines. The first
// four set off from the center, one per direction; later ones restart from a
// random open cell until enough of the map is open.
type Miner struct {
	base
}

// NewMiner creates a Miner for a width x height map
func NewMiner(width, height int, r *rng.RNG, opts Options) (*Miner, error) {
	b, err := newBase(KindMiner, width, height, r, opts)
	if err != nil {
		return nil, err
	}
	return &Miner{base: b}, nil
}

// Generate launches miners until DugPercentage is reached. Each launch
// counts as one iteration.
func (m *Miner) Generate(ctx context.Context) (*Level, error) {
	m.reset()

	var stop error
	first := true
	for first || m.dugRatio() < m.opts.DugPercentage {
		limit, err := m.poll(ctx)
		if err != nil {
			return nil, err
		}
		if limit != nil {
			stop = fmt.Errorf("%w at %.2f dug", limit, m.dugRatio())
			break
		}

		if first {
			first = false
			cx, cy := m.grid.CenterPosition()
			center := world.Pt(cx, cy)
			seed := feature.NewCorridor(cx, cy, cx, cy)
			seed.Dig(m.carve)
			m.corridors = append(m.corridors, seed)
			for _, d := range world.Topology4.Dirs() {
				m.dig(center, d, minerBranch)
			}
			continue
		}

		from, ok := rng.Item(m.rng, m.openCells())
		if !ok {
			stop = fmt.Errorf("%w: nothing open to mine from", ErrExhausted)
			break
		}
		m.dig(from, m.randomDirection(), minerBranch)
	}
	return m.finish(stop), nil
}

func (m *Miner) randomDirection() world.Point {
	dirs := world.Topology4.Dirs()
	d, _ := rng.Item(m.rng, dirs)
	return d
}

// dig walks one straight segment away from from in direction d, recording it
// as a corridor, then lets every dug cell spawn a sideways branch with
// probability branch.
func (m *Miner) dig(from, d world.Point, branch float64) {
	start := from.Add(d)
	if !m.inside(start.X, start.Y) {
		return
	}
	end := start
	length := m.opts.CorridorLength.Draw(m.rng)
	for i := 1; i < length; i++ {
		next := end.Add(d)
		if !m.inside(next.X, next.Y) {
			break
		}
		end = next
	}

	corridor := feature.NewCorridor(start.X, start.Y, end.X, end.Y)
	corridor.Dig(m.carve)
	m.corridors = append(m.corridors, corridor)

	for p := start; ; p = p.Add(d) {
		if m.rng.GetUniform() < branch {
			turn := []world.Point{world.Pt(d.Y, d.X), world.Pt(-d.Y, -d.X)}
			side, _ := rng.Item(m.rng, turn)
			m.dig(p, side, branch-0.1)
		}
		if p == end {
			break
		}
	}
}

// openCells lists the open cells in column order
func (m *Miner) openCells() []world.Point {
	var out []world.Point
	m.grid.ForEachCell(func(x, y int, c world.Cell) {
		if c.Passable() {
			out = append(out, world.Pt(x, y))
		}
	})
	return out
}
