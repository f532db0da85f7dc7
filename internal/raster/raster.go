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

// Package raster samples regular lat-lon grids (bathymetry, total sediment
// thickness, crustal thickness, oceanic age, mantle-frame dynamic
// topography) with bilinear interpolation and nodata propagation. Follows
// the common pattern of reading flat NetCDF variables and reshaping them
// against header-declared dimensions.
package raster

import "math"

// NoData marks a grid cell with no valid value. Sample propagates it: any
// bilinear stencil touching a NoData cell returns (0, false).
const NoData = math.MaxFloat64

// Grid is a regular lat-lon raster: Values is row-major with Nlat rows of
// Nlon columns, the first row at Lat0 and the first column at Lon0,
// advancing by DLat/DLon per step.
type Grid struct {
	Lon0, Lat0 float64
	DLon, DLat float64
	Nlon, Nlat int
	Values     []float64 // len == Nlon*Nlat, row-major (row = lat index)
}

// NewGrid validates and constructs a Grid.
func NewGrid(lon0, lat0, dlon, dlat float64, nlon, nlat int, values []float64) (*Grid, error) {
	if len(values) != nlon*nlat {
		return nil, &DimensionErr{Want: nlon * nlat, Got: len(values)}
	}
	return &Grid{Lon0: lon0, Lat0: lat0, DLon: dlon, DLat: dlat, Nlon: nlon, Nlat: nlat, Values: values}, nil
}

// DimensionErr is returned when a Grid's flat value slice doesn't match
// its declared dimensions.
type DimensionErr struct {
	Want, Got int
}

func (e *DimensionErr) Error() string {
	return "raster: grid dimension mismatch"
}

func (g *Grid) at(i, j int) float64 {
	if i < 0 {
		i = 0
	}
	if i >= g.Nlat {
		i = g.Nlat - 1
	}
	if j < 0 {
		j = 0
	}
	if j >= g.Nlon {
		j = g.Nlon - 1
	}
	return g.Values[i*g.Nlon+j]
}

// Sample bilinearly interpolates the grid value at (lon, lat). ok is false
// if the query falls outside the grid's coverage or any of the four
// surrounding nodes is NoData.
func (g *Grid) Sample(lon, lat float64) (value float64, ok bool) {
	fi := (lat - g.Lat0) / g.DLat
	fj := (lon - g.Lon0) / g.DLon
	if fi < 0 || fj < 0 || fi > float64(g.Nlat-1) || fj > float64(g.Nlon-1) {
		return 0, false
	}
	i0 := int(math.Floor(fi))
	j0 := int(math.Floor(fj))
	i1, j1 := i0+1, j0+1
	if i1 >= g.Nlat {
		i1 = i0
	}
	if j1 >= g.Nlon {
		j1 = j0
	}
	di := fi - float64(i0)
	dj := fj - float64(j0)

	v00, v01 := g.at(i0, j0), g.at(i0, j1)
	v10, v11 := g.at(i1, j0), g.at(i1, j1)
	for _, v := range []float64{v00, v01, v10, v11} {
		if v == NoData {
			return 0, false
		}
	}
	top := v00 + dj*(v01-v00)
	bot := v10 + dj*(v11-v10)
	return top + di*(bot-top), true
}

// NearestValid returns the value of the grid node nearest (lon, lat) that
// is not NoData, searching outward in a ring. It backs the dynamic-
// topography sampler's nodata fallback rule of sampling the nearest
// valid node.
func (g *Grid) NearestValid(lon, lat float64) (value float64, ok bool) {
	i0 := int(math.Round((lat - g.Lat0) / g.DLat))
	j0 := int(math.Round((lon - g.Lon0) / g.DLon))
	maxRadius := g.Nlon
	if g.Nlat > maxRadius {
		maxRadius = g.Nlat
	}
	for r := 0; r <= maxRadius; r++ {
		for i := i0 - r; i <= i0+r; i++ {
			if i < 0 || i >= g.Nlat {
				continue
			}
			for j := j0 - r; j <= j0+r; j++ {
				if j < 0 || j >= g.Nlon {
					continue
				}
				// Only examine the ring boundary, not the interior
				// already covered by smaller r.
				if r > 0 && i > i0-r && i < i0+r && j > j0-r && j < j0+r {
					continue
				}
				if v := g.Values[i*g.Nlon+j]; v != NoData {
					return v, true
				}
			}
		}
	}
	return 0, false
}

// Sampler is the abstract raster-sampling capability,
// sample(lon, lat) -> value or nodata, behind which raster readers are
// swappable.
type Sampler interface {
	Sample(lon, lat float64) (value float64, ok bool)
}
