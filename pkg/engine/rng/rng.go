// Package rng provides a seedable, reproducible uniform random generator.
// Every randomized decision made by the generators routes through an *RNG so
// that a fixed seed reproduces a fixed map.
package rng

import (
	"math"
	"time"
)

// frac is 2^-32.
const frac = 2.3283064365386963e-10

// State is the complete internal state of an RNG: s0, s1, s2 and the carry c.
type State [4]float64

// RNG is an Alea-style multiply-with-carry generator with 32-bit precision.
// It is not safe for concurrent use; give each goroutine its own instance.
type RNG struct {
	seed       float64
	s0, s1, s2 float64
	c          float64
}

// Default is the process-wide instance, seeded from the clock at startup.
// Generators never read it implicitly; it only exists for top-level callers.
var Default = New(float64(time.Now().UnixMilli()))

// New creates a generator initialised with the given seed.
func New(seed float64) *RNG {
	r := &RNG{}
	r.SetSeed(seed)
	return r
}

// Seed returns the effective seed (after the zero and sub-unity adjustments).
func (r *RNG) Seed() float64 {
	return r.seed
}

// SetSeed (re)initialises the generator. Zero is replaced by 1 and seeds
// below 1 are inverted, so any finite number yields a usable state.
func (r *RNG) SetSeed(seed float64) *RNG {
	if seed == 0 || math.IsNaN(seed) || math.IsInf(seed, 0) {
		seed = 1
	}
	if seed < 1 {
		seed = 1 / seed
	}
	r.seed = seed

	r.s0 = float64(toUint32(seed)) * frac
	next := toUint32(seed*69069 + 1)
	r.s1 = float64(next) * frac
	next = toUint32(float64(next)*69069 + 1)
	r.s2 = float64(next) * frac
	r.c = 1
	return r
}

// GetUniform returns a value in [0, 1).
func (r *RNG) GetUniform() float64 {
	t := 2091639*r.s0 + r.c*frac
	r.s0 = r.s1
	r.s1 = r.s2
	r.c = math.Trunc(t)
	r.s2 = t - r.c
	return r.s2
}

// GetUniformInt returns an integer in [min(lo,hi), max(lo,hi)], inclusive.
func (r *RNG) GetUniformInt(lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}
	return int(math.Floor(r.GetUniform()*float64(hi-lo+1))) + lo
}

// GetNormal returns a normally distributed value (polar Box-Muller).
func (r *RNG) GetNormal(mean, stddev float64) float64 {
	var u, v, s float64
	for {
		u = 2*r.GetUniform() - 1
		v = 2*r.GetUniform() - 1
		s = u*u + v*v
		if s <= 1 && s != 0 {
			break
		}
	}
	gauss := u * math.Sqrt(-2*math.Log(s)/s)
	return mean + gauss*stddev
}

// GetPercentage returns an integer in [1, 100].
func (r *RNG) GetPercentage() int {
	return 1 + int(math.Floor(r.GetUniform()*100))
}

// State returns a copy of the internal registers.
func (r *RNG) State() State {
	return State{r.s0, r.s1, r.s2, r.c}
}

// SetState restores registers previously obtained from State.
func (r *RNG) SetState(st State) *RNG {
	r.s0 = st[0]
	r.s1 = st[1]
	r.s2 = st[2]
	r.c = st[3]
	return r
}

// Clone returns an independent generator with identical seed and state.
func (r *RNG) Clone() *RNG {
	c := *r
	return &c
}

// toUint32 mirrors the ECMAScript ToUint32 conversion: truncate, then wrap
// modulo 2^32. Non-finite values map to 0.
func toUint32(f float64) uint32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	m := math.Mod(math.Trunc(f), 4294967296)
	if m < 0 {
		m += 4294967296
	}
	return uint32(m)
}
