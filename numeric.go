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
	"fmt"
	"math"
	"sort"
)

// Default convergence tolerances for Bisect: the argument tolerance is
// relative, the function tolerance absolute.
const (
	defaultArgTolerance = 1e-6
	defaultFTolerance   = 1e-3
)

// BisectResult is the outcome of a Bisect call.
type BisectResult struct {
	X         float64
	FX        float64
	Converged bool
	Iters     int
}

// Bisect finds a root of f within [lo, hi] by bracketing bisection,
// requiring f(lo) and f(hi) to have opposite signs. It stops when either
// the bracket width relative to |x| falls below argTol, or |f(x)| falls
// below fTol. maxIters bounds the number of bisections performed
// regardless of convergence.
func Bisect(f func(float64) float64, lo, hi, argTol, fTol float64, maxIters int) BisectResult {
	if argTol <= 0 {
		argTol = defaultArgTolerance
	}
	if fTol <= 0 {
		fTol = defaultFTolerance
	}
	flo, fhi := f(lo), f(hi)
	if flo == 0 {
		return BisectResult{X: lo, FX: flo, Converged: true}
	}
	if fhi == 0 {
		return BisectResult{X: hi, FX: fhi, Converged: true}
	}
	if sameSign(flo, fhi) {
		// Not bracketed: return the endpoint with the smaller residual
		// rather than panicking, so callers can decide how to handle it
		// (e.g. InfeasibleStretchingErr clamping in the rift model).
		x, fx := lo, flo
		if math.Abs(fhi) < math.Abs(flo) {
			x, fx = hi, fhi
		}
		return BisectResult{X: x, FX: fx, Converged: false}
	}
	for i := 0; i < maxIters; i++ {
		mid := 0.5 * (lo + hi)
		fmid := f(mid)
		if math.Abs(fmid) <= fTol || 0.5*(hi-lo) <= argTol*math.Max(1, math.Abs(mid)) {
			return BisectResult{X: mid, FX: fmid, Converged: true, Iters: i + 1}
		}
		if sameSign(fmid, flo) {
			lo, flo = mid, fmid
		} else {
			hi, fhi = mid, fmid
		}
	}
	mid := 0.5 * (lo + hi)
	return BisectResult{X: mid, FX: f(mid), Converged: false, Iters: maxIters}
}

func sameSign(a, b float64) bool {
	return (a > 0 && b > 0) || (a < 0 && b < 0)
}

// Table is a piecewise-linear lookup table of (x, y) pairs. It is used for
// user-supplied age-to-depth curves and sea-level curves. Points need not
// be pre-sorted; NewTable sorts them by x.
type Table struct {
	x, y []float64
}

// NewTable builds a Table from parallel x/y slices, which must be the same
// length and non-empty. The slices are copied and sorted by x.
func NewTable(x, y []float64) (*Table, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, fmt.Errorf("paleobath: table requires equal non-empty x/y slices, got %d/%d", len(x), len(y))
	}
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return x[idx[i]] < x[idx[j]] })
	t := &Table{x: make([]float64, len(x)), y: make([]float64, len(y))}
	for i, j := range idx {
		t.x[i] = x[j]
		t.y[i] = y[j]
	}
	return t, nil
}

// At returns the piecewise-linear interpolated value at xq, clamping to
// the endpoint values for out-of-range queries. The dynamic-topography
// sampler applies its own out-of-range rule instead; see dyntopo.go.
func (t *Table) At(xq float64) float64 {
	n := len(t.x)
	if xq <= t.x[0] {
		return t.y[0]
	}
	if xq >= t.x[n-1] {
		return t.y[n-1]
	}
	// Binary search for the bracketing segment.
	i := sort.Search(n, func(i int) bool { return t.x[i] >= xq })
	if t.x[i] == xq {
		return t.y[i]
	}
	x0, x1 := t.x[i-1], t.x[i]
	y0, y1 := t.y[i-1], t.y[i]
	frac := (xq - x0) / (x1 - x0)
	return y0 + frac*(y1-y0)
}

// Bounds returns the minimum and maximum x values in the table.
func (t *Table) Bounds() (min, max float64) {
	return t.x[0], t.x[len(t.x)-1]
}
