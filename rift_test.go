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
	"errors"
	"math"
	"testing"

	"github.com/earthbyte-go/paleobath/internal/raster"
)

// A continental site, S0=1500 m, y_c_present=30 km,
// y_L=125 km, t_rs=150 Ma, t_re=100 Ma. Expected beta lands in [1.2, 2.0]
// and the model reproduces the observed subsidence to within 1 m.
func TestEstimateBetaContinentalSite(t *testing.T) {
	rc := RiftConstants{E: DefaultRiftConstants.E, TauThermal: DefaultRiftConstants.TauThermal, YcPresent: 30_000, YL: 125_000}
	riftDuration := 100.0 // t_re - present

	est := EstimateBeta(rc, 1500, riftDuration)
	if est.Err != nil {
		t.Fatalf("EstimateBeta: %v", est.Err)
	}
	if est.BetaClamped < 1.2 || est.BetaClamped > 2.0 {
		t.Errorf("beta = %g, want in [1.2, 2.0]", est.BetaClamped)
	}
	modeled := rc.TotalSubsidence(est.BetaClamped, riftDuration)
	if math.Abs(modeled-1500) > 1 {
		t.Errorf("S_model(beta, 0) = %g, want 1500 +/- 1", modeled)
	}
}

func TestBetaMax(t *testing.T) {
	rc := RiftConstants{YcPresent: 30_000, YL: 125_000}
	if got, want := rc.BetaMax(), 125_000.0/30_000.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("BetaMax = %g, want %g", got, want)
	}
	if got := (RiftConstants{}).BetaMax(); !math.IsInf(got, 1) {
		t.Errorf("BetaMax with YcPresent=0 should be +Inf, got %g", got)
	}
}

func TestSynRiftZeroAtBetaOne(t *testing.T) {
	rc := RiftConstants{YcPresent: 30_000, YL: 125_000}
	if got := rc.SynRift(1); math.Abs(got) > 1e-9 {
		t.Errorf("SynRift(1) = %g, want 0 (no stretching means no syn-rift subsidence)", got)
	}
}

func TestPostRiftClampsNegativeTau(t *testing.T) {
	rc := DefaultRiftConstants
	rc.YcPresent, rc.YL = 30_000, 125_000
	if got, want := rc.PostRift(-10, 1.5), rc.PostRift(0, 1.5); got != want {
		t.Errorf("PostRift with negative tau = %g, want PostRift(0, beta) = %g", got, want)
	}
}

func TestBetaOfTimeEndpointsAndClamp(t *testing.T) {
	tests := []struct {
		name                        string
		t, riftStart, riftEnd, beta float64
		want                        float64
	}{
		{"before rifting begins", 160, 150, 100, 1.5, 1},
		{"at rift start", 150, 150, 100, 1.5, 1},
		{"at rift end", 100, 150, 100, 1.5, 1.5},
		{"after rifting ends", 50, 150, 100, 1.5, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BetaOfTime(tt.t, tt.riftStart, tt.riftEnd, tt.beta); got != tt.want {
				t.Errorf("BetaOfTime = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestBetaOfTimeMidpointIsGeometricInterpolation(t *testing.T) {
	// Halfway through rifting, ln(beta(t)) should be half of ln(beta).
	got := BetaOfTime(125, 150, 100, 2.0)
	want := math.Exp(0.5 * math.Log(2.0))
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("BetaOfTime midpoint = %g, want %g", got, want)
	}
}

// twoCellGrid builds a 2x1 grid whose first cell is nodata and second
// carries v, so a query at (0,0) lands exactly on the nodata cell while
// NearestValid can still recover v from its neighbor.
func twoCellGrid(t *testing.T, v float64) *raster.Grid {
	t.Helper()
	g, err := raster.NewGrid(0, 0, 1, 1, 2, 1, []float64{raster.NoData, v})
	if err != nil {
		t.Fatalf("raster.NewGrid: %v", err)
	}
	return g
}

func TestRiftGridPeriodStrictFailsOutsideCoverage(t *testing.T) {
	grid := RiftGrid{Start: twoCellGrid(t, 150), End: twoCellGrid(t, 100), Policy: RiftPeriodStrict}
	_, _, err := grid.Period(0, 0)
	var target LocationOutOfGridErr
	if !errors.As(err, &target) {
		t.Fatalf("Period err = %v, want LocationOutOfGridErr", err)
	}
}

func TestRiftGridPeriodOnOceanicCrustFallsBackToNearestValid(t *testing.T) {
	grid := RiftGrid{Start: twoCellGrid(t, 150), End: twoCellGrid(t, 100), Policy: OnOceanicCrust}
	start, end, err := grid.Period(0, 0)
	if err != nil {
		t.Fatalf("Period: %v", err)
	}
	if start != 150 || end != 100 {
		t.Errorf("Period = (%g, %g), want (150, 100)", start, end)
	}
}

func TestResolveRiftPeriodFillsFromGrid(t *testing.T) {
	grid := &RiftGrid{Start: twoCellGrid(t, 150), End: twoCellGrid(t, 100), Policy: OnOceanicCrust}
	w := &Well{Crust: Continental}
	if err := w.ResolveRiftPeriod(grid); err != nil {
		t.Fatalf("ResolveRiftPeriod: %v", err)
	}
	if w.RiftStart == nil || *w.RiftStart != 150 {
		t.Errorf("RiftStart = %v, want 150", w.RiftStart)
	}
	if w.RiftEnd == nil || *w.RiftEnd != 100 {
		t.Errorf("RiftEnd = %v, want 100", w.RiftEnd)
	}
}

func TestResolveRiftPeriodMissingWithoutGrid(t *testing.T) {
	w := &Well{Crust: Continental}
	var target RiftParametersMissingErr
	if err := w.ResolveRiftPeriod(nil); !errors.As(err, &target) {
		t.Fatalf("ResolveRiftPeriod err = %v, want RiftParametersMissingErr", err)
	}
}

func TestResolveRiftPeriodLeavesExplicitPeriodAlone(t *testing.T) {
	start, end := 160.0, 110.0
	w := &Well{Crust: Continental, RiftStart: &start, RiftEnd: &end}
	if err := w.ResolveRiftPeriod(nil); err != nil {
		t.Fatalf("ResolveRiftPeriod: %v", err)
	}
	if *w.RiftStart != 160 || *w.RiftEnd != 110 {
		t.Errorf("ResolveRiftPeriod modified an already-specified period")
	}
}
