package generator

import (
	"context"

	"deepdelve/pkg/engine/rng"
	"deepdelve/pkg/game/state"
)

// Request asks the background worker for one level
type Request struct {
	Kind    Kind
	Width   int
	Height  int
	Seed    float64
	Options Options
	// Retries is how many extra passes to run when a pass comes back
	// incomplete. Every retry continues from the RNG state the last one
	// left behind. Negative values count as zero.
	Retries int
}

// Result is what the worker sends back. Level is only meaningful when Err
// is nil.
type Result struct {
	Level    state.LevelData
	Snapshot state.Snapshot
	Err      error
}

// Run generates a level on its own goroutine with a private RNG seeded from
// the request, so it never touches rng.Default. The channel receives exactly
// one Result and is then closed.
func Run(ctx context.Context, req Request) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		out <- runRequest(ctx, req)
	}()
	return out
}

func runRequest(ctx context.Context, req Request) Result {
	r := rng.New(req.Seed)
	g, err := New(req.Kind, req.Width, req.Height, r, req.Options)
	if err != nil {
		return Result{Err: err}
	}

	var level *Level
	for attempt := 0; attempt <= max(req.Retries, 0); attempt++ {
		if level, err = g.Generate(ctx); err != nil {
			return Result{Err: err}
		}
		if level.Complete {
			break
		}
	}
	return Result{
		Level:    level.Data(),
		Snapshot: state.Capture(r),
	}
}
