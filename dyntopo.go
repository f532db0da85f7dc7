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
	"sort"
	"sync"

	"github.com/earthbyte-go/paleobath/internal/cachekey"
	"github.com/earthbyte-go/paleobath/internal/raster"
	"github.com/earthbyte-go/paleobath/internal/rotation"
)

// DynamicTopographyGrid is one (age, raster) pair in a dynamic-topography
// model's mantle frame.
type DynamicTopographyGrid struct {
	Age    float64
	Raster raster.Sampler
}

// DynamicTopographyModel holds a set of mantle-frame grids (kept sorted
// by age), a plate-reconstruction model, and tracks whether the one-shot
// out-of-range warning has already fired.
type DynamicTopographyModel struct {
	Grids    []DynamicTopographyGrid
	Rotation rotation.Model

	cacheMu sync.Mutex
	cache   map[string]sampleResult

	warnMu sync.Mutex
	warned bool
}

type sampleResult struct {
	value float64
	ok    bool
}

// NewDynamicTopographyModel builds a model from grids and a
// plate-reconstruction model, sorting the grids by age.
func NewDynamicTopographyModel(grids []DynamicTopographyGrid, rot rotation.Model) *DynamicTopographyModel {
	sorted := make([]DynamicTopographyGrid, len(grids))
	copy(sorted, grids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Age < sorted[j].Age })
	return &DynamicTopographyModel{
		Grids:    sorted,
		Rotation: rot,
		cache:    make(map[string]sampleResult),
	}
}

// Elevation samples the model at a present-day location and past time:
//  1. assign a plate ID by point-in-polygon test
//  2. reconstruct the location to time t
//  3. locate the bracketing grid times and sample each at the
//     reconstructed location
//  4. interpolate linearly in time between the two samples
//
// If t lies outside the grid ages (older than the oldest grid, or younger
// than the youngest, negative t included), it is clamped to the nearest
// grid age and a one-shot warning (DynamicTopographyOutOfRangeErr) is
// returned the first time either clamp happens. If the reconstructed
// location falls in nodata, the nearest valid node is used.
func (m *DynamicTopographyModel) Elevation(lon, lat, timeMa float64) (elevation float64, warn error, err error) {
	if len(m.Grids) == 0 {
		return 0, nil, nil
	}

	oldest := m.Grids[len(m.Grids)-1].Age
	youngest := m.Grids[0].Age
	clamped := timeMa
	if timeMa > oldest {
		clamped = oldest
	} else if timeMa < youngest {
		clamped = youngest
	}
	if clamped != timeMa {
		if w := m.fireWarningOnce(); w {
			warn = DynamicTopographyOutOfRangeErr{Requested: timeMa, Clamped: clamped}
		}
		timeMa = clamped
	}

	v, err := m.sampleAtTime(lon, lat, timeMa)
	return v, warn, err
}

// Contribution returns h(t) - h(0), the "dynamic topography contribution"
// used by the backtrack driver.
func (m *DynamicTopographyModel) Contribution(lon, lat, timeMa float64) (float64, error) {
	hT, _, err := m.Elevation(lon, lat, timeMa)
	if err != nil {
		return 0, err
	}
	h0, _, err := m.Elevation(lon, lat, 0)
	if err != nil {
		return 0, err
	}
	return hT - h0, nil
}

func (m *DynamicTopographyModel) fireWarningOnce() bool {
	m.warnMu.Lock()
	defer m.warnMu.Unlock()
	if m.warned {
		return false
	}
	m.warned = true
	return true
}

func (m *DynamicTopographyModel) sampleAtTime(lon, lat, timeMa float64) (float64, error) {
	key := cachekey.Key(lon, lat, timeMa)
	m.cacheMu.Lock()
	if r, ok := m.cache[key]; ok {
		m.cacheMu.Unlock()
		if !r.ok {
			return 0, LocationOutOfGridErr{Raster: "dynamic topography", Lon: lon, Lat: lat}
		}
		return r.value, nil
	}
	m.cacheMu.Unlock()

	v, ok, err := m.computeSample(lon, lat, timeMa)
	m.cacheMu.Lock()
	m.cache[key] = sampleResult{value: v, ok: ok}
	m.cacheMu.Unlock()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, LocationOutOfGridErr{Raster: "dynamic topography", Lon: lon, Lat: lat}
	}
	return v, nil
}

func (m *DynamicTopographyModel) computeSample(lon, lat, timeMa float64) (float64, bool, error) {
	plateID, err := m.Rotation.AssignPlate(lon, lat)
	if err != nil {
		return 0, false, err
	}
	rLon, rLat, err := m.Rotation.Reconstruct(lon, lat, plateID, timeMa)
	if err != nil {
		return 0, false, err
	}

	i := sort.Search(len(m.Grids), func(i int) bool { return m.Grids[i].Age >= timeMa })
	if i >= len(m.Grids) {
		i = len(m.Grids) - 1
	}
	if m.Grids[i].Age == timeMa || i == 0 {
		return sampleOrNearest(m.Grids[i].Raster, rLon, rLat)
	}
	lo, hi := m.Grids[i-1], m.Grids[i]
	vLo, ok, err := sampleOrNearest(lo.Raster, rLon, rLat)
	if err != nil || !ok {
		return vLo, ok, err
	}
	vHi, ok, err := sampleOrNearest(hi.Raster, rLon, rLat)
	if err != nil || !ok {
		return vHi, ok, err
	}
	frac := (timeMa - lo.Age) / (hi.Age - lo.Age)
	return vLo + frac*(vHi-vLo), true, nil
}

func sampleOrNearest(s raster.Sampler, lon, lat float64) (float64, bool, error) {
	if v, ok := s.Sample(lon, lat); ok {
		return v, true, nil
	}
	if g, ok := s.(interface {
		NearestValid(lon, lat float64) (float64, bool)
	}); ok {
		if v, ok := g.NearestValid(lon, lat); ok {
			return v, true, nil
		}
	}
	return 0, false, nil
}
