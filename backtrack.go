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

// BacktrackPoint is one row of a backtrack run's output: the values
// at one surviving layer's top age.
type BacktrackPoint struct {
	Age                  float64
	DecompactedThickness float64
	DecompactedDensity   float64
	TectonicSubsidence   float64
	DynamicTopography    float64
	WaterDepth           float64
}

// Diagnostics carries the non-primary-output information a backtrack or
// backstrip run accumulates: warnings as typed error-kind values (never
// strings), and, for continental sites, both the unclamped and clamped
// beta estimates, so callers can inspect the raw root-find result as well
// as the value actually used.
type Diagnostics struct {
	Warnings []error
	Beta     *BetaEstimate
}

// BacktrackConfig bundles the optional models a backtrack run may use.
type BacktrackConfig struct {
	AgeDepth          AgeDepthModel // oceanic sites only
	RiftConstants     RiftConstants // continental sites only
	DynamicTopography *DynamicTopographyModel
	SeaLevel          *SeaLevelModel // nil is treated as identically zero
}

// Backtrack computes the time series of paleo water depth for well w,
// given cfg. Oceanic sites use cfg.AgeDepth plus the anomalous
// -crust offset baked into it (via OffsetModel); continental sites use
// cfg.RiftConstants and estimate beta from the well's present-day
// subsidence. ages is the set of layer top ages (plus the deepest unit's
// bottom age) to evaluate, youngest to oldest.
func Backtrack(w *Well, cfg BacktrackConfig, s0 float64) ([]BacktrackPoint, Diagnostics, error) {
	var diag Diagnostics

	ages := backtrackAges(w)

	var beta float64
	if w.Crust == Continental {
		if w.RiftEnd == nil {
			return nil, diag, RiftParametersMissingErr{}
		}
		riftEnd := *w.RiftEnd
		dynAdj := 0.0
		if cfg.DynamicTopography != nil {
			c, err := cfg.DynamicTopography.Contribution(w.Lon, w.Lat, riftEnd)
			if err != nil {
				diag.Warnings = append(diag.Warnings, err)
			} else {
				dynAdj = c
			}
		}
		est := EstimateBeta(cfg.RiftConstants, s0-dynAdj, riftEnd)
		diag.Beta = &est
		if est.Err != nil {
			diag.Warnings = append(diag.Warnings, est.Err)
			if ie, ok := est.Err.(InfeasibleStretchingErr); ok && ie.Fatal {
				return nil, diag, est.Err
			}
		}
		beta = est.BetaClamped
	}

	points := make([]BacktrackPoint, 0, len(ages))
	for _, t := range ages {
		col := decompactAt(w, t)

		var subsidence, dynTopo float64
		var err error
		switch w.Crust {
		case Oceanic:
			subsidence, dynTopo, err = oceanicSubsidence(w, cfg, t)
		case Continental:
			riftEnd := *w.RiftEnd
			riftStart := riftEnd // stretching is thermally instantaneous when no start age is recorded
			if w.RiftStart != nil {
				riftStart = *w.RiftStart
			}
			subsidence, dynTopo, err = continentalSubsidence(w, cfg, t, riftStart, riftEnd, beta)
		}
		if err != nil {
			diag.Warnings = append(diag.Warnings, err)
		}

		deltaSL := cfg.SeaLevel.MeanLevel(w.SurfaceAge, t)
		wd := waterDepthFromSubsidence(subsidence, col.TotalThickness, col.AverageDensity, deltaSL)

		points = append(points, BacktrackPoint{
			Age:                  t,
			DecompactedThickness: col.TotalThickness,
			DecompactedDensity:   col.AverageDensity,
			TectonicSubsidence:   subsidence,
			DynamicTopography:    dynTopo,
			WaterDepth:           wd,
		})
	}
	return points, diag, nil
}

// backtrackAges returns the layer top ages plus the bottom age of the
// deepest (base sediment) layer.
func backtrackAges(w *Well) []float64 {
	ages := make([]float64, 0, len(w.Units)+1)
	for _, u := range w.Units {
		ages = append(ages, u.TopAge)
	}
	if len(w.Units) > 0 {
		ages = append(ages, w.Units[len(w.Units)-1].BottomAge)
	}
	return ages
}

// decompactAt computes the decompacted column at age t. Decompact treats
// any unit with TopAge >= t as surviving in full; the ages queried by the
// drivers are exact layer top/bottom ages, where the topmost surviving
// unit's top age already equals t, so the trim-to-t step degenerates to
// the identity and no separate trimming pass is needed.
func decompactAt(w *Well, t float64) DecompactedColumn {
	return Decompact(w, t)
}

// waterDepthFromSubsidence implements the isostatic load balance:
//
//	W = S - (rhoM-rhoBar)/(rhoM-rhoW)*T + deltaSL*rhoM/(rhoM-rhoW)
func waterDepthFromSubsidence(subsidence, thickness, avgDensity, deltaSL float64) float64 {
	return subsidence - (MantleDensity-avgDensity)/(MantleDensity-WaterDensity)*thickness +
		deltaSL*MantleDensity/(MantleDensity-WaterDensity)
}

// IsostaticCorrection returns the sediment-load term of the isostatic
// balance for a decompacted column: the extra subsidence the column's
// weight induces relative to a water-filled basin.
func IsostaticCorrection(col DecompactedColumn) float64 {
	return (MantleDensity - col.AverageDensity) / (MantleDensity - WaterDensity) * col.TotalThickness
}

// PresentDaySubsidence computes the observed present-day tectonic
// subsidence S0 from the observed present-day water depth (positive
// downward, i.e. a bathymetry value with the sign flipped): the water
// depth plus the isostatic correction of the present-day decompacted
// column. S0 anchors the anomalous-crust offset on oceanic sites and the
// beta estimation on continental ones.
func PresentDaySubsidence(w *Well, waterDepth float64) float64 {
	return waterDepth + IsostaticCorrection(Decompact(w, w.SurfaceAge))
}

func oceanicSubsidence(w *Well, cfg BacktrackConfig, t float64) (subsidence, dynTopo float64, err error) {
	f := cfg.AgeDepth.Depth(w.CrustAge - t)
	if cfg.DynamicTopography != nil {
		c, e := cfg.DynamicTopography.Contribution(w.Lon, w.Lat, t)
		if e != nil {
			return f, 0, e
		}
		dynTopo = c
	}
	return f + dynTopo, dynTopo, nil
}

func continentalSubsidence(w *Well, cfg BacktrackConfig, t, riftStart, riftEnd, beta float64) (subsidence, dynTopo float64, err error) {
	betaT := BetaOfTime(t, riftStart, riftEnd, beta)
	syn := cfg.RiftConstants.SynRift(betaT)

	var s float64
	if t <= riftEnd {
		tau := riftEnd - t
		s = syn + cfg.RiftConstants.PostRift(tau, betaT)
	} else {
		s = syn
	}

	if cfg.DynamicTopography != nil {
		hT, _, e1 := cfg.DynamicTopography.Elevation(w.Lon, w.Lat, t)
		hRef, _, e2 := cfg.DynamicTopography.Elevation(w.Lon, w.Lat, riftStart)
		if e1 != nil {
			return s, 0, e1
		}
		if e2 != nil {
			return s, 0, e2
		}
		dynTopo = hT - hRef
	}
	return s + dynTopo, dynTopo, nil
}
