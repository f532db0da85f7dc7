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
	"math"
	"testing"
)

// W_min=200, W_max=400, decompacted thickness 1500 m,
// average density 2400 kg/m^3. Average tectonic subsidence should be
// 300 + (3330-2400)/(3330-1030)*1500 = 300 + 606.5 ~= 906.5 m.
func TestSubsidenceFromWaterDepthLiteralValues(t *testing.T) {
	sMin := subsidenceFromWaterDepth(200, 1500, 2400, 0)
	sMax := subsidenceFromWaterDepth(400, 1500, 2400, 0)
	avg := (sMin + sMax) / 2
	if math.Abs(avg-906.5) > 0.1 {
		t.Errorf("average tectonic subsidence = %g, want ~906.5", avg)
	}
}

func TestBackstripIntegration(t *testing.T) {
	minW, maxW := 200.0, 400.0
	lith := mudComposite(t)
	w := &Well{
		Units: []StratUnit{
			{TopAge: 0, BottomAge: 20, TopDepth: 0, BottomDepth: 100, Lithology: lith, MinWaterDepth: &minW, MaxWaterDepth: &maxW},
		},
	}

	points, diag, err := Backstrip(w, BackstripConfig{})
	if err != nil {
		t.Fatalf("Backstrip: %v", err)
	}
	if len(diag.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", diag.Warnings)
	}
	// One point for the unit's top age, one for the final bottom age.
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	last := points[len(points)-1]
	if last.Age != 20 {
		t.Errorf("last point age = %g, want 20", last.Age)
	}
	if last.SubsidenceMin > last.SubsidenceMax {
		t.Errorf("SubsidenceMin (%g) > SubsidenceMax (%g)", last.SubsidenceMin, last.SubsidenceMax)
	}
	if math.Abs(last.SubsidenceAvg-(last.SubsidenceMin+last.SubsidenceMax)/2) > 1e-9 {
		t.Errorf("SubsidenceAvg inconsistent with min/max")
	}
}

func TestWaterDepthRangeAtDefaultsToZero(t *testing.T) {
	w := &Well{Units: []StratUnit{{TopAge: 0, BottomAge: 10, TopDepth: 0, BottomDepth: 50}}}
	minD, maxD := waterDepthRangeAt(w, 0)
	if minD != 0 || maxD != 0 {
		t.Errorf("unconstrained unit should default both bounds to 0, got (%g, %g)", minD, maxD)
	}
}
