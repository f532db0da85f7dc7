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
	"fmt"
	"math"

	"github.com/earthbyte-go/paleobath/internal/raster"
)

// RiftConstants are the amplitude and thermal-diffusion-time constants of
// the post-rift thermal-subsidence term.
type RiftConstants struct {
	E          float64 // amplitude, m (source value ~3160 m)
	TauThermal float64 // thermal diffusion time, Myr (source value ~62.8 Myr)
	YcPresent  float64 // present-day (post-rift) continental crustal thickness, m
	YL         float64 // lithospheric thickness, m
}

// DefaultRiftConstants are the literal amplitude/thermal-time values from
// the source reference. YcPresent and YL are site-specific (sampled from a
// crustal-thickness raster or supplied by the caller) and are left zero
// here; callers must set them before use.
var DefaultRiftConstants = RiftConstants{E: 3160, TauThermal: 62.8}

// BetaMax is the largest stretching factor for which pre-rift crustal
// thickness (beta * YcPresent) does not exceed lithospheric thickness
// YL. Beyond this, the pre-rift crust would be thicker than the
// lithosphere itself, which is unphysical, so beta is clamped here.
func (rc RiftConstants) BetaMax() float64 {
	if rc.YcPresent == 0 {
		return math.Inf(1)
	}
	return rc.YL / rc.YcPresent
}

// SynRift returns the analytical uniform-extension (McKenzie 1978)
// syn-rift subsidence at stretching factor beta: the isostatic difference
// between the pre-rift reference column and the instantaneously
// stretched column, before any post-rift thermal relaxation.
func (rc RiftConstants) SynRift(beta float64) float64 {
	const (
		alphaV = 3.28e-5 // thermal expansion coefficient, 1/K
		rhoM   = 3330.0  // mantle density, kg/m^3
		rhoW   = 1030.0  // water density, kg/m^3
		rhoC   = 2800.0  // crustal density, kg/m^3
		tm     = 1333.0  // mantle potential temperature, C
	)
	yc := rc.YcPresent
	yL := rc.YL
	stretch := 1 - 1/beta
	crustalTerm := yc * (rhoM - rhoC) * stretch
	thermalTerm := (alphaV * tm * rhoM / 2) * (yL*stretch - yc*stretch*stretch)
	return (crustalTerm - thermalTerm) / (rhoM - rhoW)
}

// PostRift returns the thermal (post-rift) subsidence at time tau since
// the end of rifting, at stretching factor beta:
//
//	S_post(tau, beta) = E*(beta/pi)*sin(pi/beta)*(1 - exp(-tau/tauThermal))
func (rc RiftConstants) PostRift(tau, beta float64) float64 {
	if tau < 0 {
		tau = 0
	}
	return rc.E * (beta / math.Pi) * math.Sin(math.Pi/beta) * (1 - math.Exp(-tau/rc.TauThermal))
}

// TotalSubsidence returns the model's total subsidence at beta:
// S_syn(beta) + S_post(riftDuration, beta), where riftDuration is the
// time elapsed since rift end (t_re for present day).
func (rc RiftConstants) TotalSubsidence(beta, riftDuration float64) float64 {
	return rc.SynRift(beta) + rc.PostRift(riftDuration, beta)
}

// BetaOfTime interpolates the stretching factor between 1 at riftStart and
// beta at riftEnd under a constant strain-rate assumption:
//
//	ln(beta(t)) = ln(beta) * (riftStart - t) / (riftStart - riftEnd)
//
// For t outside [riftEnd, riftStart] the value is clamped to the nearer
// endpoint (1 before rifting begins, beta after rifting ends).
func BetaOfTime(t, riftStart, riftEnd, beta float64) float64 {
	if t >= riftStart {
		return 1
	}
	if t <= riftEnd {
		return beta
	}
	if riftStart == riftEnd {
		return beta
	}
	frac := (riftStart - t) / (riftStart - riftEnd)
	return math.Exp(math.Log(beta) * frac)
}

// RiftPeriodPolicy controls RiftGrid.Period's behavior when (lon, lat)
// falls outside the start/end rasters' continental-crust coverage.
type RiftPeriodPolicy int

const (
	// RiftPeriodStrict fails with LocationOutOfGridErr when either raster
	// is nodata at the sampled location.
	RiftPeriodStrict RiftPeriodPolicy = iota
	// OnOceanicCrust falls back to each raster's nearest valid node
	// instead of failing, the same nodata rule the dynamic-topography
	// sampler uses, so a site just off the continental-crust boundary
	// still gets a usable (if approximate) rift period.
	OnOceanicCrust
)

// RiftGrid supplies RiftStart/RiftEnd for a continental site whose
// drill-site file omits them, by sampling a pair of present-day rasters.
type RiftGrid struct {
	Start, End raster.Sampler
	Policy     RiftPeriodPolicy
}

// Period samples the rift start/end age at (lon, lat).
func (g RiftGrid) Period(lon, lat float64) (start, end float64, err error) {
	start, ok, err := g.sample(g.Start, lon, lat)
	if err != nil {
		return 0, 0, err
	}
	if !ok {
		return 0, 0, LocationOutOfGridErr{Raster: "rift start age", Lon: lon, Lat: lat}
	}
	end, ok, err = g.sample(g.End, lon, lat)
	if err != nil {
		return 0, 0, err
	}
	if !ok {
		return 0, 0, LocationOutOfGridErr{Raster: "rift end age", Lon: lon, Lat: lat}
	}
	return start, end, nil
}

func (g RiftGrid) sample(s raster.Sampler, lon, lat float64) (float64, bool, error) {
	if v, ok := s.Sample(lon, lat); ok {
		return v, true, nil
	}
	if g.Policy == OnOceanicCrust {
		if nv, ok := s.(interface {
			NearestValid(lon, lat float64) (float64, bool)
		}); ok {
			if v, ok := nv.NearestValid(lon, lat); ok {
				return v, true, nil
			}
		}
	}
	return 0, false, nil
}

// ResolveRiftPeriod fills in w.RiftStart/RiftEnd from grid when the
// drill-site file didn't supply RiftEndAge, leaving an already-specified
// period untouched. Returns RiftParametersMissingErr if grid is nil and
// the period is still unset.
func (w *Well) ResolveRiftPeriod(grid *RiftGrid) error {
	if w.RiftEnd != nil {
		return nil
	}
	if grid == nil {
		return RiftParametersMissingErr{Site: fmt.Sprintf("(%g, %g)", w.Lon, w.Lat)}
	}
	start, end, err := grid.Period(w.Lon, w.Lat)
	if err != nil {
		return err
	}
	w.RiftStart, w.RiftEnd = &start, &end
	return nil
}

// BetaEstimate is the result of estimating beta from observed subsidence:
// both the raw (possibly out-of-bracket) root-find result and the value
// actually used downstream (clamped to BetaMax when necessary) are
// retained, so callers can inspect both rather than only the clamped
// value.
type BetaEstimate struct {
	BetaRaw     float64
	BetaClamped float64
	Residual    float64
	Clamped     bool
	Err         error // non-nil (InfeasibleStretchingErr) if residual exceeds 100 m after any clamp retry
}

// residualTolerance is the maximum acceptable |S_model - S_observed| for a
// beta estimate to be accepted without a warning.
const residualTolerance = 100.0

// EstimateBeta finds beta such that
//
//	S_syn(beta) + S_post(riftDuration, beta) == target
//
// by bracketing search over [1, betaMax] (bracketing is used instead of
// Newton's method specifically so the betaMax clamp behavior is natural
// rather than a special case). If the unclamped root exceeds
// betaMax, the clamped value is retried and, if its residual is still
// above 100 m, InfeasibleStretchingErr is set as fatal.
func EstimateBeta(rc RiftConstants, target, riftDuration float64) BetaEstimate {
	betaMax := rc.BetaMax()
	f := func(beta float64) float64 { return rc.TotalSubsidence(beta, riftDuration) - target }

	res := Bisect(f, 1, betaMax, 1e-6, 1e-3, 200)
	est := BetaEstimate{BetaRaw: res.X, BetaClamped: res.X, Residual: math.Abs(res.FX)}

	if !res.Converged || res.X >= betaMax {
		// Widen the bracket past betaMax so BetaRaw reports the unclamped
		// root when one exists.
		if hi := betaMax; !math.IsInf(betaMax, 1) && f(betaMax) < 0 {
			for i := 0; i < 64 && f(hi) < 0; i++ {
				hi *= 2
			}
			if raw := Bisect(f, betaMax, hi, 1e-6, 1e-3, 200); raw.Converged {
				est.BetaRaw = raw.X
			}
		}
		est.BetaClamped = betaMax
		est.Clamped = true
		clampedResidual := math.Abs(f(betaMax))
		est.Residual = clampedResidual
		if clampedResidual > residualTolerance {
			est.Err = InfeasibleStretchingErr{Residual: clampedResidual, BetaMax: betaMax, Fatal: true}
		}
	} else if est.Residual > residualTolerance {
		est.Err = InfeasibleStretchingErr{Residual: est.Residual, BetaMax: betaMax, Fatal: false}
	}
	return est
}
