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

package raster

import (
	"fmt"

	"github.com/ctessum/cdf"
)

// LoadNetCDF reads a regular lat-lon raster from a NetCDF-formatted
// file. varName names the 2-D (lat, lon) data variable; lonVar/latVar
// name the 1-D coordinate variables used to derive the grid origin and
// spacing. This mirrors sr/srreader.go's readFullVar64 pattern of reading
// a flat variable and reshaping it against the file's declared
// dimensions.
func LoadNetCDF(r cdf.ReaderWriterAt, varName, lonVar, latVar string) (*Grid, error) {
	f, err := cdf.Open(r)
	if err != nil {
		return nil, fmt.Errorf("raster: opening netcdf file: %w", err)
	}

	lons, err := readFullVar64(f, lonVar)
	if err != nil {
		return nil, fmt.Errorf("raster: reading %s: %w", lonVar, err)
	}
	lats, err := readFullVar64(f, latVar)
	if err != nil {
		return nil, fmt.Errorf("raster: reading %s: %w", latVar, err)
	}
	values, err := readFullVar64(f, varName)
	if err != nil {
		return nil, fmt.Errorf("raster: reading %s: %w", varName, err)
	}
	if len(lons) < 2 || len(lats) < 2 {
		return nil, fmt.Errorf("raster: %s/%s must have at least 2 points each", lonVar, latVar)
	}
	nlon, nlat := len(lons), len(lats)
	return NewGrid(lons[0], lats[0], lons[1]-lons[0], lats[1]-lats[0], nlon, nlat, values)
}

func readFullVar64(f *cdf.File, name string) ([]float64, error) {
	r := f.Reader(name, nil, nil)
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil {
		return nil, err
	}
	switch v := buf.(type) {
	case []float64:
		return v, nil
	case []float32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("raster: unsupported variable type for %s", name)
	}
}
