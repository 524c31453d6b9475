package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deepdelve/pkg/game/feature"
)

func TestRunDeliversOneResult(t *testing.T) {
	results := Run(context.Background(), Request{
		Kind:    KindArena,
		Width:   10,
		Height:  8,
		Seed:    5,
		Options: quietOptions(),
	})
	res, ok := <-results
	require.True(t, ok)
	require.NoError(t, res.Err)
	assert.Equal(t, "arena", res.Level.Generator)
	assert.True(t, res.Level.Complete)
	assert.Len(t, res.Level.Cells, 8)
	assert.Equal(t, 5.0, res.Snapshot.Seed)

	_, ok = <-results
	assert.False(t, ok, "channel closed after the result")
}

func TestRunIsReproducible(t *testing.T) {
	req := Request{Kind: KindDigger, Width: 40, Height: 25, Seed: 21, Options: quietOptions(), Retries: 2}

	counters := feature.Counters()
	first := <-Run(context.Background(), req)
	feature.RestoreCounters(counters)
	second := <-Run(context.Background(), req)

	require.NoError(t, first.Err)
	require.NoError(t, second.Err)
	assert.Equal(t, first.Level.Cells, second.Level.Cells)
	assert.Equal(t, first.Level.Rooms, second.Level.Rooms)
	assert.Equal(t, first.Snapshot.RNG, second.Snapshot.RNG)
}

func TestRunReportsErrors(t *testing.T) {
	res := <-Run(context.Background(), Request{Kind: "cave", Width: 10, Height: 10})
	assert.ErrorIs(t, res.Err, ErrUnknownKind)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res = <-Run(ctx, Request{Kind: KindUniform, Width: 40, Height: 20, Options: quietOptions()})
	assert.ErrorIs(t, res.Err, context.Canceled)
}

func TestRunNegativeRetriesStillGenerates(t *testing.T) {
	res := <-Run(context.Background(), Request{
		Kind:    KindArena,
		Width:   8,
		Height:  6,
		Seed:    1,
		Options: quietOptions(),
		Retries: -3,
	})
	require.NoError(t, res.Err)
	assert.True(t, res.Level.Complete)
	assert.Len(t, res.Level.Cells, 6)
}
