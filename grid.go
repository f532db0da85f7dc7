/*
Copyright © 2024 the paleobath authors.
This file is part of paleobath.

paleobath is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

paleobath is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with paleobath.  If not, see <http://www.gnu.org/licenses/>.
*/

package paleobath

import (
	"context"
	"runtime"
	"sync"
)

// GridPoint is one present-day location to run through the backtrack
// driver as part of a paleobathymetry gridding pass.
type GridPoint struct {
	Well *Well
	S0   float64 // present-day subsidence reference

	// Config, when non-nil, replaces the Gridder's shared config for this
	// point only. Oceanic sites need it to carry a per-site anomalous
	// -crust offset while still sharing the underlying models.
	Config *BacktrackConfig
}

// GridResult pairs a GridPoint's index with its driver output, or an
// error if that point's computation failed.
type GridResult struct {
	Index  int
	Points []BacktrackPoint
	Diag   Diagnostics
	Err    error
}

// Gridder applies the backtrack driver to many present-day points
// concurrently. Each worker holds its own immutable reference to
// cfg; no shared mutable state is touched across workers, and there is
// no ordering guarantee between their results. Cancellation is
// cooperative: a worker checks ctx between points and abandons the
// remainder of its share, discarding no partial per-point results (each
// point either completes in full or not at all).
type Gridder struct {
	Config BacktrackConfig
}

// NewGridder builds a Gridder sharing one BacktrackConfig across all
// points it runs.
func NewGridder(cfg BacktrackConfig) *Gridder {
	return &Gridder{Config: cfg}
}

// Run partitions points across runtime.GOMAXPROCS(0) workers and applies
// the backtrack driver to each, returning results in the same order as
// points regardless of completion order. The pattern (a channel of
// point indices consumed by a fixed worker pool, synchronized with a
// WaitGroup) is the standard fixed-pool fan-out/fan-in shape.
func (g *Gridder) Run(ctx context.Context, points []GridPoint) []GridResult {
	results := make([]GridResult, len(points))
	nprocs := runtime.GOMAXPROCS(0)
	if nprocs > len(points) {
		nprocs = len(points)
	}
	if nprocs < 1 {
		return results
	}

	indices := make(chan int, len(points))
	for i := range points {
		indices <- i
	}
	close(indices)

	var wg sync.WaitGroup
	wg.Add(nprocs)
	for p := 0; p < nprocs; p++ {
		go g.worker(ctx, points, results, indices, &wg)
	}
	wg.Wait()
	return results
}

func (g *Gridder) worker(ctx context.Context, points []GridPoint, results []GridResult, indices <-chan int, wg *sync.WaitGroup) {
	defer wg.Done()
	for i := range indices {
		select {
		case <-ctx.Done():
			results[i] = GridResult{Index: i, Err: ctx.Err()}
			continue
		default:
		}

		cfg := g.Config
		if points[i].Config != nil {
			cfg = *points[i].Config
		}
		pts, diag, err := Backtrack(points[i].Well, cfg, points[i].S0)
		results[i] = GridResult{Index: i, Points: pts, Diag: diag, Err: err}
	}
}
