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

import "math"

// WaterDensity and MantleDensity are the standard densities (kg/m^3) used
// throughout the isostatic load balance.
const (
	WaterDensity  = 1030.0
	MantleDensity = 3330.0
)

// grainVolume computes G, the grain volume per unit area between zTop and
// zBot for a porosity profile phi(z) = phi0*exp(-z/c). G is
// invariant under decompaction: it is the quantity that decompaction
// preserves while solving for a new bottom depth.
func grainVolume(zTop, zBot, phi0, c float64) float64 {
	if c == 0 {
		return zBot - zTop
	}
	return (zBot - zTop) - phi0*c*(math.Exp(-zTop/c)-math.Exp(-zBot/c))
}

// solveBottomDepth finds z'Bot such that grainVolume(zTop, z'Bot, phi0, c)
// == g, given the new top depth zTop. grainVolume is strictly
// increasing in zBot, so this is a well-posed monotone bisection: the
// bracket starts at [zTop, zTop+thicknessGuess] and is doubled until it
// contains a sign change.
func solveBottomDepth(zTop, g, phi0, c float64) float64 {
	f := func(zBot float64) float64 { return grainVolume(zTop, zBot, phi0, c) - g }

	lo := zTop
	hi := zTop + math.Max(g, 1) // g is a lower bound on the undecompacted thickness
	for f(hi) < 0 {
		hi = zTop + 2*(hi-zTop)
	}
	res := Bisect(f, lo, hi, 1e-9, 1e-6, 200)
	return res.X
}

// DecompactedLayer is the result of decompacting one surviving
// stratigraphic unit to a given age.
type DecompactedLayer struct {
	Unit                  *StratUnit
	TopDepth, BottomDepth float64
	Thickness             float64
	Density               float64 // kg/m^3, average over the decompacted thickness
	Porosity              float64 // average over the decompacted thickness
}

// DecompactedColumn is the decompaction result for an entire stratigraphic
// column at a given age: the surviving layers plus the aggregate
// thickness and density.
type DecompactedColumn struct {
	Layers         []DecompactedLayer
	TotalThickness float64
	AverageDensity float64
}

// layerAverages integrates density and porosity over [zTop, zBot] for a
// lithology with parameters phi0, c, analytically (no numerical
// quadrature is needed since phi(z) is a pure exponential):
//
//	mean porosity   = (1/(zBot-zTop)) * integral phi(z) dz
//	mean density    = (1-meanPhi)*rhoS + meanPhi*rhoW
func layerAverages(zTop, zBot, phi0, c, rhoS, rhoW float64) (meanPhi, meanRho float64) {
	thickness := zBot - zTop
	if thickness <= 0 {
		return 0, rhoS
	}
	var intPhi float64
	if c == 0 {
		intPhi = 0
	} else {
		intPhi = phi0 * c * (math.Exp(-zTop/c) - math.Exp(-zBot/c))
	}
	meanPhi = intPhi / thickness
	meanRho = (1-meanPhi)*rhoS + meanPhi*rhoW
	return meanPhi, meanRho
}

// Decompact computes the decompacted column at age t: every unit
// whose TopAge >= t survives (it was already deposited by time t) and is
// placed top-down from the surface, each unit's decompacted bottom depth
// solved from its own preserved grain volume G.
func Decompact(w *Well, t float64) DecompactedColumn {
	var col DecompactedColumn
	z := 0.0
	for i := range w.Units {
		u := &w.Units[i]
		if u.TopAge < t {
			continue // not yet deposited at time t
		}
		lith := u.Lithology.Effective
		g := grainVolume(u.TopDepth, u.BottomDepth, lith.Phi0, lith.C)
		zBot := solveBottomDepth(z, g, lith.Phi0, lith.C)
		meanPhi, meanRho := layerAverages(z, zBot, lith.Phi0, lith.C, lith.RhoS, WaterDensity)
		col.Layers = append(col.Layers, DecompactedLayer{
			Unit:        u,
			TopDepth:    z,
			BottomDepth: zBot,
			Thickness:   zBot - z,
			Density:     meanRho,
			Porosity:    meanPhi,
		})
		z = zBot
	}
	col.TotalThickness = z
	if z > 0 {
		var massSum float64
		for _, l := range col.Layers {
			massSum += l.Density * l.Thickness
		}
		col.AverageDensity = massSum / z
	}
	return col
}
