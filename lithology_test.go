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

import "testing"

func TestRegistryMergeOverridesOnCollision(t *testing.T) {
	primary := NewRegistry()
	primary.Add(Lithology{Name: "Shale", RhoS: 2700, Phi0: 0.63, C: 1960})

	extended := NewRegistry()
	extended.Add(Lithology{Name: "Shale", RhoS: 2650, Phi0: 0.5, C: 1500})

	primary.Merge(extended)

	lith, err := primary.Lookup("Shale")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if lith.RhoS != 2650 {
		t.Errorf("extended registry should override primary; RhoS = %g, want 2650", lith.RhoS)
	}
}

func TestRegistryLookupUnknown(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Lookup("Granite"); err == nil {
		t.Fatalf("expected UnknownLithologyErr")
	} else if _, ok := err.(UnknownLithologyErr); !ok {
		t.Errorf("expected UnknownLithologyErr, got %T", err)
	}
}

func TestNewCompositeFractionValidation(t *testing.T) {
	tests := []struct {
		name    string
		sum     float64
		wantErr bool
	}{
		{name: "exact", sum: 1.0, wantErr: false},
		{name: "within tolerance", sum: 1.0009, wantErr: false},
		{name: "outside tolerance", sum: 1.1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewComposite([]Component{{Name: "Shale", Fraction: tt.sum}})
			if (err != nil) != tt.wantErr {
				t.Errorf("sum %g: err = %v, wantErr %v", tt.sum, err, tt.wantErr)
			}
		})
	}
}

func TestCompositeResolveMixesParameters(t *testing.T) {
	reg := NewRegistry()
	reg.Add(Lithology{Name: "Shale", RhoS: 2700, Phi0: 0.63, C: 1960})
	reg.Add(Lithology{Name: "Sand", RhoS: 2650, Phi0: 0.49, C: 2500})

	cl, err := NewComposite([]Component{
		{Name: "Shale", Fraction: 0.5},
		{Name: "Sand", Fraction: 0.5},
	})
	if err != nil {
		t.Fatalf("NewComposite: %v", err)
	}
	if err := cl.Resolve(reg); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	wantRhoS := 0.5*2700 + 0.5*2650
	if diff := cl.Effective.RhoS - wantRhoS; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("effective RhoS = %g, want %g", cl.Effective.RhoS, wantRhoS)
	}
}

func TestCompositeResolveUnknownLithology(t *testing.T) {
	reg := NewRegistry()
	cl, err := NewComposite([]Component{{Name: "Basalt", Fraction: 1.0}})
	if err != nil {
		t.Fatalf("NewComposite: %v", err)
	}
	if err := cl.Resolve(reg); err == nil {
		t.Fatalf("expected UnknownLithologyErr")
	}
}
