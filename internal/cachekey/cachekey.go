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

// Package cachekey builds the lookup key for the dynamic-topography
// sampler's per-point cache (see dyntopo.go's sampleAtTime).
package cachekey

import "fmt"

// Key returns the cache key for a sample at (lon, lat, timeMa). %v renders
// NaN and Inf the same on every call, so an out-of-range sample still
// hashes deterministically rather than needing special-casing.
func Key(lon, lat, timeMa float64) string {
	return fmt.Sprintf("%v,%v,%v", lon, lat, timeMa)
}
