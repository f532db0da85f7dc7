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

func TestGDH1ZeroAgeIsRidgeDepth(t *testing.T) {
	if got := GDH1.Depth(0); got != 2600 {
		t.Errorf("GDH1.Depth(0) = %g, want 2600", got)
	}
}

func TestGDH1Monotonic(t *testing.T) {
	ages := []float64{0, 5, 15, 20, 40, 80, 150}
	for i := 1; i < len(ages); i++ {
		prev, cur := GDH1.Depth(ages[i-1]), GDH1.Depth(ages[i])
		if cur < prev {
			t.Errorf("GDH1 depth decreased from age %g (%g) to age %g (%g)", ages[i-1], prev, ages[i], cur)
		}
	}
}

func TestCrosby2007PiecewiseContinuity(t *testing.T) {
	// The three branches should agree closely at their shared boundaries.
	const tol = 5.0
	left := crosby2007Func{}.Depth(17.3999)
	right := crosby2007Func{}.Depth(17.4001)
	if math.Abs(left-right) > tol {
		t.Errorf("discontinuity at 17.4 Ma boundary: %g vs %g", left, right)
	}
}

func TestRHCW18ZeroAgeIsRidgeDepth(t *testing.T) {
	got := RHCW18.Depth(0)
	if math.Abs(got-2500) > 1e-6 {
		t.Errorf("RHCW18.Depth(0) = %g, want 2500", got)
	}
}

func TestRHCW18Monotonic(t *testing.T) {
	ages := []float64{0, 10, 30, 60, 100, 160}
	for i := 1; i < len(ages); i++ {
		prev, cur := RHCW18.Depth(ages[i-1]), RHCW18.Depth(ages[i])
		if cur < prev {
			t.Errorf("RHCW18 depth decreased from age %g (%g) to age %g (%g)", ages[i-1], prev, ages[i], cur)
		}
	}
}

func TestUserAgeDepthTable(t *testing.T) {
	u, err := NewUserAgeDepthTable([]float64{0, 50, 100}, []float64{2600, 4000, 5500})
	if err != nil {
		t.Fatalf("NewUserAgeDepthTable: %v", err)
	}
	if got := u.Depth(25); got != 3300 {
		t.Errorf("Depth(25) = %g, want 3300", got)
	}
}

func TestAnomalousCrustOffsetAndOffsetModel(t *testing.T) {
	delta := AnomalousCrustOffset(GDH1, 50, 4000)
	want := 4000 - GDH1.Depth(50)
	if delta != want {
		t.Errorf("AnomalousCrustOffset = %g, want %g", delta, want)
	}

	offset := OffsetModel{Base: GDH1, Delta: delta}
	if got := offset.Depth(50); math.Abs(got-4000) > 1e-9 {
		t.Errorf("offset model does not reproduce s0 at agePresent: got %g, want 4000", got)
	}
}
