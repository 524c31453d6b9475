// Package depth maps a dungeon depth to the way its level is built: which
// generator runs, how large the map is and how its options scale. The player
// never sees the total; they discover the bottom by reaching it.
package depth

import (
	"github.com/leonelquinteros/gotext"

	"deepdelve/pkg/engine/rng"
	"deepdelve/pkg/game/feature"
	"deepdelve/pkg/game/generator"
)

// Deepest is the fixed number of depths (never shown to player)
const Deepest = 10

// cycle is the generator order for depths above the deepest one. Depths
// cycle through it so each gets an identity.
var cycle = []generator.Kind{
	generator.KindDigger,
	generator.KindUniform,
	generator.KindBSP,
	generator.KindMiner,
	generator.KindDividedMaze,
	generator.KindMountain,
	generator.KindWallMaze,
}

// IsDeepest returns true if the given depth (1-based) is the last one
func IsDeepest(d int) bool {
	return d >= Deepest
}

// Next returns the depth below d, or 0 if d is the deepest
func Next(d int) int {
	if d <= 0 || d >= Deepest {
		return 0
	}
	return d + 1
}

// Kind returns the generator for the given depth (1-based). The deepest
// depth is a single arena.
func Kind(d int) generator.Kind {
	if IsDeepest(d) {
		return generator.KindArena
	}
	if d <= 0 {
		return cycle[0]
	}
	return cycle[(d-1)%len(cycle)]
}

// Size returns the map size for the given depth. Maps grow with depth up to
// a cap; the deepest depth uses a small fixed arena.
func Size(d int) (width, height int) {
	if IsDeepest(d) {
		return 24, 12
	}
	d = max(d, 1)
	width = min(40+d*6, 100)
	height = min(20+d*3, 40)
	// mazes want odd sizes so their walls line up with the outer ring
	if k := Kind(d); k == generator.KindDividedMaze || k == generator.KindWallMaze {
		width |= 1
		height |= 1
	}
	return width, height
}

// Options returns generator options scaled for the given depth: deeper
// levels are more open and have larger rooms.
func Options(d int) generator.Options {
	d = max(d, 1)
	o := generator.DefaultOptions(Kind(d))
	grow := (d - 1) / 3
	o.RoomWidth = feature.Range{Min: o.RoomWidth.Min, Max: o.RoomWidth.Max + grow}
	o.RoomHeight = feature.Range{Min: o.RoomHeight.Min, Max: o.RoomHeight.Max + grow}
	if o.DugPercentage > 0 {
		o.DugPercentage = min(o.DugPercentage+0.02*float64(d-1), 0.45)
	}
	if o.RoomDugPercentage > 0 {
		o.RoomDugPercentage = min(o.RoomDugPercentage+0.01*float64(d-1), 0.3)
	}
	return o
}

// Profile bundles everything needed to build one depth
type Profile struct {
	Depth   int
	Kind    generator.Kind
	Width   int
	Height  int
	Options generator.Options
}

// ProfileFor returns the profile for the given depth
func ProfileFor(d int) Profile {
	w, h := Size(d)
	return Profile{
		Depth:   d,
		Kind:    Kind(d),
		Width:   w,
		Height:  h,
		Options: Options(d),
	}
}

// Generator creates the generator for this profile
func (p Profile) Generator(r *rng.RNG) (generator.Generator, error) {
	return generator.New(p.Kind, p.Width, p.Height, r, p.Options)
}

// Title returns the translated name of the place a generator builds. Uses
// gotext.Get with constant keys to satisfy vet.
func Title(k generator.Kind) string {
	switch k {
	case generator.KindArena:
		return gotext.Get("TITLE_ARENA")
	case generator.KindDigger:
		return gotext.Get("TITLE_DIGGER")
	case generator.KindUniform:
		return gotext.Get("TITLE_UNIFORM")
	case generator.KindDividedMaze:
		return gotext.Get("TITLE_DIVIDEDMAZE")
	case generator.KindBSP:
		return gotext.Get("TITLE_BSP")
	case generator.KindMiner:
		return gotext.Get("TITLE_MINER")
	case generator.KindWallMaze:
		return gotext.Get("TITLE_WALLMAZE")
	case generator.KindMountain:
		return gotext.Get("TITLE_MOUNTAIN")
	default:
		return gotext.Get("TITLE_UNKNOWN")
	}
}

// FlavourKey returns the gettext message key for the line shown on arrival
// at the given depth. Deeper bands get bleaker lines.
func FlavourKey(d int) string {
	// Bands: shallow (1-3), middle (4-6), deep (7-9), bottom (10)
	switch {
	case d <= 3:
		return "FLAVOUR_SHALLOW"
	case d <= 6:
		return "FLAVOUR_MIDDLE"
	case d < Deepest:
		return "FLAVOUR_DEEP"
	default:
		return "FLAVOUR_BOTTOM"
	}
}

// FlavourText returns the translated arrival line for the given depth
func FlavourText(d int) string {
	switch FlavourKey(d) {
	case "FLAVOUR_MIDDLE":
		return gotext.Get("FLAVOUR_MIDDLE")
	case "FLAVOUR_DEEP":
		return gotext.Get("FLAVOUR_DEEP")
	case "FLAVOUR_BOTTOM":
		return gotext.Get("FLAVOUR_BOTTOM")
	default:
		return gotext.Get("FLAVOUR_SHALLOW")
	}
}
