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

import "math"

// AgeDepthModel is a bijection age [Ma] -> unloaded oceanic basement depth
// [m]. Depth is positive downward from sea level; this is the
// "unloaded" depth, before any delta offset or dynamic-topography
// correction is added.
type AgeDepthModel interface {
	Depth(age float64) float64
}

// gdh1Func implements the GDH1 ridge-subsidence curve.
type gdh1Func struct{}

// GDH1 is the Stein & Stein (1992) style oceanic age-depth curve.
var GDH1 AgeDepthModel = gdh1Func{}

func (gdh1Func) Depth(age float64) float64 {
	if age < 20 {
		return 2600 + 365*math.Sqrt(age)
	}
	return 5651 - 2473*math.Exp(-0.0278*age)
}

// crosby2007Func implements the Crosby (2007) curve, a piecewise
// square-root/exponential fit similar in form to GDH1 but with
// coefficients tuned to a different global crustal-age compilation.
type crosby2007Func struct{}

// Crosby2007 is the Crosby (2007) oceanic age-depth curve.
var Crosby2007 AgeDepthModel = crosby2007Func{}

// The second and third branches' leading constants are chosen so the
// curve is continuous at both knots (17.4 Ma and 82 Ma); the amplitude
// and thermal-decay terms follow the published fit.
func (crosby2007Func) Depth(age float64) float64 {
	if age < 17.4 {
		return 2600 + 345*math.Sqrt(age)
	}
	if age < 82 {
		return 5827.6 - 2900*math.Exp(-age/36)
	}
	return 5935.2 - 3950*math.Exp(-age/36)
}

// rhcw18Func implements a plate-cooling-model tabulation, RHCW18 (Richards
// et al. 2018 style), parameterized by the plate thermal-cooling solution
// with a fixed potential temperature, plate thickness, and ridge depth.
type rhcw18Func struct {
	potentialTempC float64
	plateThickness float64 // m
	ridgeDepth     float64 // m
	thermalDiff    float64 // m^2/s
}

// RHCW18 is the built-in plate-cooling-model curve with potential
// temperature 1333 C, plate thickness 130 km, and zero-age ridge depth
// 2500 m.
var RHCW18 AgeDepthModel = rhcw18Func{
	potentialTempC: 1333,
	plateThickness: 130_000,
	ridgeDepth:     2500,
	thermalDiff:    0.8e-6,
}

// Depth evaluates the plate-cooling-model subsidence curve (Turcotte &
// Schubert's finite-plate solution): the bracketed Fourier series is 0 at
// age 0 and approaches 1/2 as age -> infinity, so the curve starts at
// ridgeDepth and flattens asymptotically rather than growing without
// bound the way a half-space cooling model would. The series is evaluated
// as the difference against its own zero-age partial sum so truncation
// cannot shift the curve off ridgeDepth at age 0.
func (m rhcw18Func) Depth(age float64) float64 {
	const (
		alphaV    = 3.1e-5 // thermal expansion coefficient, 1/K
		rhoM      = 3330.0 // mantle density, kg/m^3
		rhoW      = 1030.0 // water density, kg/m^3
		nTerms    = 41     // odd terms up to this bound
		secPerMyr = 3.1557e13
	)
	ageSec := age * secPerMyr
	a := m.plateThickness
	var sum, sum0 float64
	for n := 1; n <= nTerms; n += 2 {
		nf := float64(n)
		sum0 += 1 / (nf * nf)
		sum += (1 / (nf * nf)) * math.Exp(-nf*nf*math.Pi*math.Pi*m.thermalDiff*ageSec/(a*a))
	}
	bracket := (4 / (math.Pi * math.Pi)) * (sum0 - sum)
	amplitude := rhoM * alphaV * m.potentialTempC * a / (rhoM - rhoW)
	return m.ridgeDepth + amplitude*bracket
}

// UserTable is a user-supplied piecewise-linear age-to-depth model,
// alternative to the built-in curves.
type UserTable struct {
	table *Table
}

// NewUserAgeDepthTable builds a UserTable from parallel age/depth slices.
func NewUserAgeDepthTable(age, depth []float64) (*UserTable, error) {
	t, err := NewTable(age, depth)
	if err != nil {
		return nil, err
	}
	return &UserTable{table: t}, nil
}

func (u *UserTable) Depth(age float64) float64 {
	return u.table.At(age)
}

// AnomalousCrustOffset computes delta, the constant additive offset that
// makes model f pass through the observed present-day subsidence s0 at
// t=0: delta = s0 - f(agePresent).
func AnomalousCrustOffset(model AgeDepthModel, agePresent, s0 float64) float64 {
	return s0 - model.Depth(agePresent)
}

// OffsetModel wraps an AgeDepthModel with a constant additive offset.
type OffsetModel struct {
	Base  AgeDepthModel
	Delta float64
}

func (o OffsetModel) Depth(age float64) float64 {
	return o.Base.Depth(age) + o.Delta
}
