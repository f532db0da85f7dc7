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

// BackstripPoint is one row of a backstrip run's output: the
// tectonic subsidence bracket implied by a layer's recorded paleo water
// depth range.
type BackstripPoint struct {
	Age                  float64
	DecompactedThickness float64
	DecompactedDensity   float64
	SubsidenceMin        float64
	SubsidenceMax        float64
	SubsidenceAvg        float64
}

// BackstripConfig bundles the optional models a backstrip run may use.
// Unlike Backtrack, no subsidence model or dynamic-topography model is
// consulted: backstrip inverts the isostatic equation for S directly
// from the recorded min/max water depths.
type BackstripConfig struct {
	SeaLevel *SeaLevelModel // nil is treated as identically zero
}

// Backstrip computes the bracket of tectonic subsidence implied by each
// layer's recorded min/max paleo water depth. A unit with no
// recorded water-depth range is treated as deposited at sea level: both
// bounds default to 0 and the bracket collapses to the sediment-load
// term alone.
func Backstrip(w *Well, cfg BackstripConfig) ([]BackstripPoint, Diagnostics, error) {
	var diag Diagnostics

	points := make([]BackstripPoint, 0, len(w.Units)+1)
	for i, u := range w.Units {
		t := u.TopAge
		col := decompactAt(w, t)
		deltaSL := cfg.SeaLevel.MeanLevel(w.SurfaceAge, t)

		minD, maxD := waterDepthRangeAt(w, i)
		sMin := subsidenceFromWaterDepth(minD, col.TotalThickness, col.AverageDensity, deltaSL)
		sMax := subsidenceFromWaterDepth(maxD, col.TotalThickness, col.AverageDensity, deltaSL)
		if sMin > sMax {
			sMin, sMax = sMax, sMin
		}

		points = append(points, BackstripPoint{
			Age:                  t,
			DecompactedThickness: col.TotalThickness,
			DecompactedDensity:   col.AverageDensity,
			SubsidenceMin:        sMin,
			SubsidenceMax:        sMax,
			SubsidenceAvg:        (sMin + sMax) / 2,
		})
	}

	if len(w.Units) > 0 {
		last := w.Units[len(w.Units)-1]
		t := last.BottomAge
		col := decompactAt(w, t)
		deltaSL := cfg.SeaLevel.MeanLevel(w.SurfaceAge, t)
		minD, maxD := 0.0, 0.0
		if last.MinWaterDepth != nil {
			minD = *last.MinWaterDepth
		}
		if last.MaxWaterDepth != nil {
			maxD = *last.MaxWaterDepth
		}
		sMin := subsidenceFromWaterDepth(minD, col.TotalThickness, col.AverageDensity, deltaSL)
		sMax := subsidenceFromWaterDepth(maxD, col.TotalThickness, col.AverageDensity, deltaSL)
		if sMin > sMax {
			sMin, sMax = sMax, sMin
		}
		points = append(points, BackstripPoint{
			Age:                  t,
			DecompactedThickness: col.TotalThickness,
			DecompactedDensity:   col.AverageDensity,
			SubsidenceMin:        sMin,
			SubsidenceMax:        sMax,
			SubsidenceAvg:        (sMin + sMax) / 2,
		})
	}

	return points, diag, nil
}

// waterDepthRangeAt returns the min/max recorded paleo water depth for
// the unit at index i, defaulting to 0 (sea level) on either bound when
// the unit records none.
func waterDepthRangeAt(w *Well, i int) (minD, maxD float64) {
	u := w.Units[i]
	if u.MinWaterDepth != nil {
		minD = *u.MinWaterDepth
	}
	if u.MaxWaterDepth != nil {
		maxD = *u.MaxWaterDepth
	}
	return minD, maxD
}

// subsidenceFromWaterDepth inverts the isostatic load balance for
// S given a known water depth W:
//
//	S = W + (rhoM-rhoBar)/(rhoM-rhoW)*T - deltaSL*rhoM/(rhoM-rhoW)
func subsidenceFromWaterDepth(waterDepth, thickness, avgDensity, deltaSL float64) float64 {
	return waterDepth + (MantleDensity-avgDensity)/(MantleDensity-WaterDensity)*thickness -
		deltaSL*MantleDensity/(MantleDensity-WaterDensity)
}
