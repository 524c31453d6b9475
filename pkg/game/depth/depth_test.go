package depth

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/leonelquinteros/gotext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deepdelve/pkg/engine/rng"
	"deepdelve/pkg/game/generator"
)

func TestKindCycles(t *testing.T) {
	assert.Equal(t, generator.KindDigger, Kind(0))
	assert.Equal(t, generator.KindDigger, Kind(1))
	assert.Equal(t, generator.KindUniform, Kind(2))
	assert.Equal(t, generator.KindDigger, Kind(1+len(cycle)))
	assert.Equal(t, generator.KindArena, Kind(Deepest))
	assert.Equal(t, generator.KindArena, Kind(Deepest+3))
}

func TestNext(t *testing.T) {
	assert.Equal(t, 2, Next(1))
	assert.Equal(t, Deepest, Next(Deepest-1))
	assert.Equal(t, 0, Next(Deepest))
	assert.Equal(t, 0, Next(0))
	assert.True(t, IsDeepest(Deepest))
	assert.False(t, IsDeepest(Deepest-1))
}

func TestSizeGrowsAndCaps(t *testing.T) {
	w1, h1 := Size(1)
	w5, h5 := Size(5)
	assert.Greater(t, w5, w1)
	assert.Greater(t, h5, h1)
	for d := 1; d < Deepest; d++ {
		w, h := Size(d)
		assert.LessOrEqual(t, w, 101, "depth %d", d)
		assert.LessOrEqual(t, h, 41, "depth %d", d)
		if k := Kind(d); k == generator.KindDividedMaze || k == generator.KindWallMaze {
			assert.Equal(t, 1, w%2, "maze width at depth %d", d)
			assert.Equal(t, 1, h%2, "maze height at depth %d", d)
		}
	}
}

func TestDeepestIsMinimal(t *testing.T) {
	// the bottom is smaller than any depth above it
	wf, hf := Size(Deepest)
	for d := 1; d < Deepest; d++ {
		w, h := Size(d)
		assert.Less(t, wf, w)
		assert.Less(t, hf, h)
	}
}

func TestOptionsScale(t *testing.T) {
	shallow := Options(1)
	deep := Options(8)
	assert.Equal(t, generator.DefaultOptions(Kind(1)).DugPercentage, shallow.DugPercentage)
	assert.GreaterOrEqual(t, deep.RoomWidth.Max, shallow.RoomWidth.Max)
	for d := 1; d <= Deepest; d++ {
		assert.LessOrEqual(t, Options(d).DugPercentage, 0.45)
	}
}

func TestEveryProfileGenerates(t *testing.T) {
	for d := 1; d <= Deepest; d++ {
		p := ProfileFor(d)
		p.Options.Logger = log.New(io.Discard, "", 0)
		g, err := p.Generator(rng.New(float64(d)))
		require.NoError(t, err, "depth %d", d)
		l, err := g.Generate(context.Background())
		require.NoError(t, err, "depth %d", d)
		assert.Equal(t, p.Kind, l.Generator)
		assert.Equal(t, p.Width, l.Width)
		assert.Equal(t, p.Height, l.Height)
	}
}

func TestTitlesAreTranslated(t *testing.T) {
	gotext.Configure("../../../locales", "en_US", "default")
	assert.Equal(t, "Warrens", Title(generator.KindDigger))
	assert.Equal(t, "The Pit", Title(generator.KindArena))
	assert.Equal(t, "Unknown Depths", Title("cave"))
	for _, k := range generator.Kinds() {
		assert.NotEqual(t, "TITLE_UNKNOWN", Title(k))
		assert.NotEmpty(t, Title(k))
	}
}

func TestFlavourBands(t *testing.T) {
	assert.Equal(t, "FLAVOUR_SHALLOW", FlavourKey(1))
	assert.Equal(t, "FLAVOUR_MIDDLE", FlavourKey(4))
	assert.Equal(t, "FLAVOUR_DEEP", FlavourKey(Deepest-1))
	assert.Equal(t, "FLAVOUR_BOTTOM", FlavourKey(Deepest))
	assert.NotEmpty(t, FlavourText(5))
}
