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

import "fmt"

// BadInputFormatErr is returned when a drill-site, lithology, age-depth, or
// sea-level textual file fails to parse. It is fatal.
type BadInputFormatErr struct {
	Source string // file or stream the error came from
	Reason string
}

func (e BadInputFormatErr) Error() string {
	return fmt.Sprintf("paleobath: bad input format in %s: %s", e.Source, e.Reason)
}

// UnknownLithologyErr is returned when a stratigraphic unit references a
// lithology name that is not present in the registry. It is fatal.
type UnknownLithologyErr struct {
	Name string
}

func (e UnknownLithologyErr) Error() string {
	return fmt.Sprintf("paleobath: unknown lithology %q", e.Name)
}

// LocationOutOfGridErr is returned when a raster sample at a site's
// location lands on nodata. It is fatal only when the raster is essential
// to the requested computation.
type LocationOutOfGridErr struct {
	Raster   string
	Lon, Lat float64
}

func (e LocationOutOfGridErr) Error() string {
	return fmt.Sprintf("paleobath: location (%g, %g) is out of grid for raster %s", e.Lon, e.Lat, e.Raster)
}

// BasementShallowerThanDrillSiteErr is emitted when the recorded drill-site
// depth exceeds the total sediment thickness sampled at the site. It is
// recoverable: no base sediment layer is synthesized and the warning is
// surfaced to the caller.
type BasementShallowerThanDrillSiteErr struct {
	DrillDepth, TotalThickness float64
}

func (e BasementShallowerThanDrillSiteErr) Error() string {
	return fmt.Sprintf("paleobath: recorded drill-site depth (%g m) exceeds total sediment thickness (%g m); no base layer added",
		e.DrillDepth, e.TotalThickness)
}

// RiftParametersMissingErr is returned when a continental site has no
// RiftEndAge and no rift grid is available to supply one. It is fatal.
type RiftParametersMissingErr struct {
	Site string
}

func (e RiftParametersMissingErr) Error() string {
	return fmt.Sprintf("paleobath: continental site %q is missing rift parameters (no RiftEndAge, no rift grid)", e.Site)
}

// InfeasibleStretchingErr is emitted when the beta root-find cannot
// converge within the beta_max limit with residual <= 100 m. It is
// recoverable: beta is clamped to beta_max and the warning surfaced,
// unless it recurs after the clamp retry, in which case it is fatal.
type InfeasibleStretchingErr struct {
	Residual, BetaMax float64
	Fatal             bool
}

func (e InfeasibleStretchingErr) Error() string {
	verb := "clamping beta"
	if e.Fatal {
		verb = "failed even after clamping beta"
	}
	return fmt.Sprintf("paleobath: beta estimation did not converge (residual %g m > 100 m), %s to %g",
		e.Residual, verb, e.BetaMax)
}

// DynamicTopographyOutOfRangeErr is emitted when a requested time is
// younger than the model's age-0 grid or older than its oldest grid. It is
// recoverable: the nearest grid value is used and the warning is emitted
// once per model.
type DynamicTopographyOutOfRangeErr struct {
	Requested, Clamped float64
}

func (e DynamicTopographyOutOfRangeErr) Error() string {
	return fmt.Sprintf("paleobath: requested dynamic-topography time %g Ma is out of range, clamped to %g Ma",
		e.Requested, e.Clamped)
}
