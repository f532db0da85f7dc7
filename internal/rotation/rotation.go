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

// Package rotation implements plate reconstruction: assigning a
// reconstruction plate ID to a present-day location by point-in-polygon
// test, and reconstructing that location to an arbitrary past time via a
// finite rotation. Point-in-polygon membership uses
// geom.Point.Within(geom.Polygon) the same way grid-cell membership tests
// do elsewhere; the finite-rotation math itself is ordinary spherical
// geometry built on gonum/mat.
package rotation

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"
	"gonum.org/v1/gonum/mat"
)

// Model is the plate-reconstruction capability:
//
//	(i)   assign a reconstruction plate ID to a lon/lat
//	(ii)  reconstruct a lon/lat from time 0 to time t given a plate ID
//	(iii) rotation-file lifecycle
type Model interface {
	AssignPlate(lon, lat float64) (plateID int, err error)
	Reconstruct(lon, lat float64, plateID int, timeMa float64) (lon2, lat2 float64, err error)
	Close() error
}

// StaticPolygon associates a reconstruction plate ID with a present-day
// region, as used for plate assignment.
type StaticPolygon struct {
	PlateID int
	Polygon geom.Polygon
}

// Pole is a finite Euler rotation: an axis (lon, lat) and an angle in
// degrees, describing the rotation of a plate from present day (0 Ma) to
// a given reconstruction time.
type Pole struct {
	AxisLon, AxisLat float64
	AngleDeg         float64
}

// Stage holds, for one plate, the finite rotation pole to apply at each of
// a set of reconstruction times. Times need not match the dynamic
// topography grid's times; Stage.poleAt interpolates linearly between
// the two bracketing stage poles when one isn't listed exactly (see
// interpolatePole).
type Stage struct {
	Times []float64
	Poles []Pole
}

// StageRotationModel is a Model built from a set of static polygons (for
// plate assignment) plus one Stage of finite-rotation poles per plate ID
// (for reconstruction). It has no external file lifecycle of its own —
// Close is a no-op — but satisfies the Model interface's "rotation-file
// lifecycle" requirement for implementations that do hold open file
// handles.
type StageRotationModel struct {
	Polygons []StaticPolygon
	Stages   map[int]Stage
}

// NewStageRotationModel builds a Model from static polygons and per-plate
// rotation stages.
func NewStageRotationModel(polygons []StaticPolygon, stages map[int]Stage) *StageRotationModel {
	return &StageRotationModel{Polygons: polygons, Stages: stages}
}

// AssignPlate tests lon/lat against each static polygon in turn and
// returns the plate ID of the first polygon containing the point (on an
// edge counts as contained).
func (m *StageRotationModel) AssignPlate(lon, lat float64) (int, error) {
	p := geom.Point{X: lon, Y: lat}
	for _, sp := range m.Polygons {
		if w := p.Within(sp.Polygon); w == geom.Inside || w == geom.OnEdge {
			return sp.PlateID, nil
		}
	}
	return 0, fmt.Errorf("rotation: no static polygon contains (%g, %g)", lon, lat)
}

// Reconstruct rotates (lon, lat) from present day to timeMa using the
// finite rotation pole for plateID, interpolating linearly between
// bracketing stage poles when timeMa doesn't match one exactly.
func (m *StageRotationModel) Reconstruct(lon, lat float64, plateID int, timeMa float64) (float64, float64, error) {
	stage, ok := m.Stages[plateID]
	if !ok {
		return 0, 0, fmt.Errorf("rotation: no rotation stage for plate %d", plateID)
	}
	pole, err := stage.poleAt(timeMa)
	if err != nil {
		return 0, 0, err
	}
	lon2, lat2 := ApplyPole(lon, lat, pole)
	return lon2, lat2, nil
}

func (s Stage) poleAt(t float64) (Pole, error) {
	n := len(s.Times)
	if n == 0 {
		return Pole{}, fmt.Errorf("rotation: empty rotation stage")
	}
	if t <= s.Times[0] {
		return s.Poles[0], nil
	}
	if t >= s.Times[n-1] {
		return s.Poles[n-1], nil
	}
	for i := 1; i < n; i++ {
		if t <= s.Times[i] {
			frac := (t - s.Times[i-1]) / (s.Times[i] - s.Times[i-1])
			return interpolatePole(s.Poles[i-1], s.Poles[i], frac), nil
		}
	}
	return s.Poles[n-1], nil
}

// interpolatePole linearly interpolates axis and angle between two poles.
// This is an approximation (true finite-rotation interpolation composes
// quaternions along the rotation path); it is adequate for the modest
// time steps used between dynamic-topography grid ages.
func interpolatePole(a, b Pole, frac float64) Pole {
	return Pole{
		AxisLon:  a.AxisLon + frac*(b.AxisLon-a.AxisLon),
		AxisLat:  a.AxisLat + frac*(b.AxisLat-a.AxisLat),
		AngleDeg: a.AngleDeg + frac*(b.AngleDeg-a.AngleDeg),
	}
}

// ApplyPole rotates the point (lon, lat) by the finite rotation pole p
// using Rodrigues' rotation formula, expressed as a 3x3 rotation matrix
// applied to the point's unit Cartesian vector via gonum/mat:
//
//	R = I + sin(theta)*K + (1-cos(theta))*K^2
//
// where K is the skew-symmetric cross-product matrix of the rotation
// axis's unit vector.
func ApplyPole(lon, lat float64, p Pole) (lon2, lat2 float64) {
	axis := toCartesian(p.AxisLon, p.AxisLat)
	theta := deg2rad(p.AngleDeg)

	kx, ky, kz := axis.AtVec(0), axis.AtVec(1), axis.AtVec(2)
	k := mat.NewDense(3, 3, []float64{
		0, -kz, ky,
		kz, 0, -kx,
		-ky, kx, 0,
	})
	var k2 mat.Dense
	k2.Mul(k, k)

	var r mat.Dense
	r.Scale(math.Sin(theta), k)
	var kSquaredTerm mat.Dense
	kSquaredTerm.Scale(1-math.Cos(theta), &k2)
	r.Add(&r, &kSquaredTerm)
	r.Add(&r, mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}))

	v := toCartesian(lon, lat)
	var rotated mat.VecDense
	rotated.MulVec(&r, v)
	return fromCartesian(&rotated)
}

func (*StageRotationModel) Close() error { return nil }

func toCartesian(lon, lat float64) *mat.VecDense {
	lonR, latR := deg2rad(lon), deg2rad(lat)
	return mat.NewVecDense(3, []float64{
		math.Cos(latR) * math.Cos(lonR),
		math.Cos(latR) * math.Sin(lonR),
		math.Sin(latR),
	})
}

func fromCartesian(v *mat.VecDense) (lon, lat float64) {
	x, y, z := v.AtVec(0), v.AtVec(1), v.AtVec(2)
	lat = rad2deg(math.Asin(clamp(z, -1, 1)))
	lon = rad2deg(math.Atan2(y, x))
	return lon, lat
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
func rad2deg(r float64) float64 { return r * 180 / math.Pi }

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
