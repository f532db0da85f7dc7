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

// CrustType selects which tectonic-subsidence model applies at a site.
type CrustType int

const (
	// Oceanic crust uses the age-to-depth model.
	Oceanic CrustType = iota
	// Continental crust uses the rift model.
	Continental
)

// StratUnit is one stratigraphic layer. TopAge/BottomAge are in Ma,
// TopDepth/BottomDepth are present-day compacted depths in m below
// sediment surface. MinWaterDepth/MaxWaterDepth are only meaningful for
// backstripping and are nil when unset: whether a site file carried the
// optional columns is part of the record, not defaulted away.
type StratUnit struct {
	TopAge, BottomAge     float64
	TopDepth, BottomDepth float64
	Lithology             *CompositeLithology
	MinWaterDepth         *float64
	MaxWaterDepth         *float64
}

// Thickness returns the present-day compacted thickness of the unit.
func (u StratUnit) Thickness() float64 {
	return u.BottomDepth - u.TopDepth
}

// Well is a drill site: location, surface age, rift timing (continental
// sites only), and the ordered stratigraphic column.
type Well struct {
	Lon, Lat   float64
	SurfaceAge float64 // age of the sediment surface, default 0

	Crust     CrustType
	CrustAge  float64 // oceanic sites: age of the underlying crust, Ma
	RiftStart *float64
	RiftEnd   *float64

	// PresentDayWaterDepth is the observed present-day water depth at the
	// site (m, positive down), typically sampled from a bathymetry raster
	// with the sign flipped. It is nil when the site record doesn't carry
	// one, in which case the caller must supply the observation itself.
	PresentDayWaterDepth *float64

	Units []StratUnit
}

// Validate checks the column invariants: each unit's bottom age and bottom
// depth strictly greater than its top, consecutive units contiguous in
// depth (no gaps), the first unit starting at SurfaceAge and depth 0, and
// a rift end age for continental sites. Ages are not compared across
// units.
func (w *Well) Validate() error {
	if len(w.Units) == 0 {
		return BadInputFormatErr{Source: "well", Reason: "stratigraphic column has no units"}
	}
	first := w.Units[0]
	if first.TopAge != w.SurfaceAge {
		return BadInputFormatErr{
			Source: "well",
			Reason: fmt.Sprintf("first unit top age %g != surface age %g", first.TopAge, w.SurfaceAge),
		}
	}
	if first.TopDepth != 0 {
		return BadInputFormatErr{Source: "well", Reason: fmt.Sprintf("first unit top depth %g != 0", first.TopDepth)}
	}
	for i, u := range w.Units {
		if u.BottomAge <= u.TopAge {
			return BadInputFormatErr{
				Source: "well",
				Reason: fmt.Sprintf("unit %d: bottom age %g <= top age %g", i, u.BottomAge, u.TopAge),
			}
		}
		if u.BottomDepth <= u.TopDepth {
			return BadInputFormatErr{
				Source: "well",
				Reason: fmt.Sprintf("unit %d: bottom depth %g <= top depth %g", i, u.BottomDepth, u.TopDepth),
			}
		}
		if i > 0 && u.TopDepth != w.Units[i-1].BottomDepth {
			return BadInputFormatErr{
				Source: "well",
				Reason: fmt.Sprintf("unit %d: top depth %g does not match unit %d's bottom depth %g", i, u.TopDepth, i-1, w.Units[i-1].BottomDepth),
			}
		}
	}
	if w.Crust == Continental {
		if w.RiftEnd == nil {
			return RiftParametersMissingErr{Site: fmt.Sprintf("(%g, %g)", w.Lon, w.Lat)}
		}
	}
	return nil
}

// ResolveLithologies resolves every unit's composite lithology against
// reg, failing fast with UnknownLithologyErr on the first missing name.
func (w *Well) ResolveLithologies(reg *Registry) error {
	for i := range w.Units {
		if err := w.Units[i].Lithology.Resolve(reg); err != nil {
			return err
		}
	}
	return nil
}

// TotalThickness returns the present-day compacted thickness of the full
// column (the bottom depth of the deepest unit).
func (w *Well) TotalThickness() float64 {
	if len(w.Units) == 0 {
		return 0
	}
	return w.Units[len(w.Units)-1].BottomDepth
}

// AddBaseLayer appends a synthesized base sediment layer of lith when the
// recorded column is shallower than totalThickness sampled from a
// present-day total-sediment-thickness raster. bottomAge is the
// caller-supplied bottom age for the new layer (crust age for backtrack,
// rift-start age for continental backtrack, or the deepest unit's bottom
// age for backstrip). If the recorded thickness already meets or exceeds
// totalThickness, no layer is added and BasementShallowerThanDrillSiteErr
// is returned as a non-fatal warning value (the caller decides whether to
// log it).
func (w *Well) AddBaseLayer(totalThickness, bottomAge float64, lith *CompositeLithology) error {
	recorded := w.TotalThickness()
	if recorded >= totalThickness {
		return BasementShallowerThanDrillSiteErr{DrillDepth: recorded, TotalThickness: totalThickness}
	}
	last := w.Units[len(w.Units)-1]
	unit := StratUnit{
		TopAge:      last.BottomAge,
		BottomAge:   bottomAge,
		TopDepth:    last.BottomDepth,
		BottomDepth: totalThickness,
		Lithology:   lith,
	}
	if last.MinWaterDepth != nil {
		unit.MinWaterDepth = last.MinWaterDepth
	}
	if last.MaxWaterDepth != nil {
		unit.MaxWaterDepth = last.MaxWaterDepth
	}
	w.Units = append(w.Units, unit)
	return nil
}

// Amend returns a copy of w with a synthesized base sediment layer
// appended when the recorded column is shallower than totalThickness,
// leaving w itself untouched: a pure transform over the in-memory model,
// so a caller can write the amended column back out (iofmt.WriteSiteFile)
// without losing the originally parsed one. The returned error is
// BasementShallowerThanDrillSiteErr, exactly as AddBaseLayer, when the
// recorded column already reaches totalThickness; the copy is still
// returned unchanged in that case.
func (w *Well) Amend(totalThickness, bottomAge float64, lith *CompositeLithology) (*Well, error) {
	amended := &Well{
		Lon:                  w.Lon,
		Lat:                  w.Lat,
		SurfaceAge:           w.SurfaceAge,
		Crust:                w.Crust,
		CrustAge:             w.CrustAge,
		RiftStart:            w.RiftStart,
		RiftEnd:              w.RiftEnd,
		PresentDayWaterDepth: w.PresentDayWaterDepth,
		Units:                append([]StratUnit(nil), w.Units...),
	}
	err := amended.AddBaseLayer(totalThickness, bottomAge, lith)
	return amended, err
}
