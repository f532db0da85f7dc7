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

// SeaLevelModel is a piecewise-linear age [Ma] -> eustatic level [m]
// table. A nil *SeaLevelModel is valid and behaves as identically zero:
// omitting the sea-level term and supplying an all-zero curve produce
// identical output.
type SeaLevelModel struct {
	table *Table
}

// NewSeaLevelModel builds a SeaLevelModel from parallel age/level slices.
func NewSeaLevelModel(age, level []float64) (*SeaLevelModel, error) {
	t, err := NewTable(age, level)
	if err != nil {
		return nil, err
	}
	return &SeaLevelModel{table: t}, nil
}

// Level returns the instantaneous eustatic level at age t, or 0 if m is
// nil.
func (m *SeaLevelModel) Level(t float64) float64 {
	if m == nil {
		return 0
	}
	return m.table.At(t)
}

// MeanLevel returns the time-averaged eustatic level over [tTop, tBot]
// (tTop <= tBot), or 0 if m is nil. The average is computed by Simpson's
// rule over 64 equal subdivisions; it is exact when every table knot
// inside the interval falls on an even-numbered subdivision point, and an
// approximation otherwise.
func (m *SeaLevelModel) MeanLevel(tTop, tBot float64) float64 {
	if m == nil || tBot <= tTop {
		return m.Level(tTop)
	}
	const n = 64 // even number of subdivisions for Simpson's rule
	h := (tBot - tTop) / n
	sum := m.Level(tTop) + m.Level(tBot)
	for i := 1; i < n; i++ {
		x := tTop + float64(i)*h
		if i%2 == 0 {
			sum += 2 * m.Level(x)
		} else {
			sum += 4 * m.Level(x)
		}
	}
	return sum * h / 3 / (tBot - tTop)
}
