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

	"gonum.org/v1/gonum/floats"
)

// Lithology is an immutable basic rock type: grain density, surface
// porosity, and the exponential porosity decay length.
type Lithology struct {
	Name string
	RhoS float64 // grain density, kg/m^3
	Phi0 float64 // surface porosity, (0,1)
	C    float64 // porosity decay length, m
}

// DefaultShale is the fallback lithology used when synthesizing a base
// sediment layer and no other default is configured.
var DefaultShale = Lithology{Name: "Shale", RhoS: 2700, Phi0: 0.63, C: 1960}

// Registry maps lithology name to its parameters. It is built by loading
// one or more textual sources; a later source's definitions override an
// earlier source's on name collision, the same way repeated keys across
// layered configuration sources are resolved.
type Registry struct {
	byName map[string]Lithology
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Lithology)}
}

// Add inserts or overwrites the entry for lith.Name.
func (r *Registry) Add(lith Lithology) {
	r.byName[lith.Name] = lith
}

// Merge adds every entry of other into r, with other's definitions
// overriding any existing entries of the same name. This is how multiple
// lithology files are combined: load the primary set first, then merge in
// an "extended" set so the extended definitions win.
func (r *Registry) Merge(other *Registry) {
	for name, lith := range other.byName {
		r.byName[name] = lith
	}
}

// Lookup returns the lithology registered under name, or
// UnknownLithologyErr if none is registered.
func (r *Registry) Lookup(name string) (Lithology, error) {
	lith, ok := r.byName[name]
	if !ok {
		return Lithology{}, UnknownLithologyErr{Name: name}
	}
	return lith, nil
}

// Names returns the registered lithology names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	return names
}

// fractionTolerance bounds how far a unit's lithology fractions may
// deviate from summing to 1.0.
const fractionTolerance = 1e-3

// Component is one basic lithology and its fractional weight within a
// composite lithology.
type Component struct {
	Name     string
	Fraction float64
}

// CompositeLithology is a weighted mixture of basic lithologies. Its
// effective parameters are the weighted averages of the constituents'
// parameters.
type CompositeLithology struct {
	Components []Component

	// Effective holds the mixture-averaged parameters, populated by
	// Resolve.
	Effective Lithology
}

// NewComposite validates that the component fractions sum to 1 +/-
// fractionTolerance and returns a CompositeLithology that still needs
// Resolve to populate Effective.
func NewComposite(components []Component) (*CompositeLithology, error) {
	sum := 0.0
	for _, c := range components {
		sum += c.Fraction
	}
	if diff := sum - 1.0; diff > fractionTolerance || diff < -fractionTolerance {
		return nil, BadInputFormatErr{
			Source: "stratigraphic column",
			Reason: fmt.Sprintf("lithology fractions sum to %g, want 1.0 +/- %g", sum, fractionTolerance),
		}
	}
	return &CompositeLithology{Components: components}, nil
}

// Resolve looks up every component in reg and computes the mixture-averaged
// effective parameters, failing with UnknownLithologyErr if any component
// name is missing from the registry.
func (cl *CompositeLithology) Resolve(reg *Registry) error {
	rhoS := make([]float64, len(cl.Components))
	phi0 := make([]float64, len(cl.Components))
	c := make([]float64, len(cl.Components))
	weights := make([]float64, len(cl.Components))

	for i, comp := range cl.Components {
		lith, err := reg.Lookup(comp.Name)
		if err != nil {
			return err
		}
		rhoS[i] = lith.RhoS * comp.Fraction
		phi0[i] = lith.Phi0 * comp.Fraction
		c[i] = lith.C * comp.Fraction
		weights[i] = comp.Fraction
	}
	wsum := floats.Sum(weights)
	if wsum == 0 {
		wsum = 1
	}
	cl.Effective = Lithology{
		RhoS: floats.Sum(rhoS) / wsum,
		Phi0: floats.Sum(phi0) / wsum,
		C:    floats.Sum(c) / wsum,
	}
	return nil
}
