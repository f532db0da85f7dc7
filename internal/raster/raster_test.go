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
	"math"
	"testing"
)

func TestNewGridDimensionMismatch(t *testing.T) {
	if _, err := NewGrid(0, 0, 1, 1, 2, 2, []float64{1, 2, 3}); err == nil {
		t.Fatalf("expected a dimension mismatch error")
	}
}

func TestSampleBilinearInterpolation(t *testing.T) {
	// 2x2 grid: (lat0,lon0)=0, corners 0,10,10,20 going right/down.
	g, err := NewGrid(0, 0, 1, 1, 2, 2, []float64{
		0, 10, // row 0 (lat 0): lon 0, lon 1
		10, 20, // row 1 (lat 1): lon 0, lon 1
	})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	v, ok := g.Sample(0.5, 0.5)
	if !ok {
		t.Fatalf("expected ok=true for an in-bounds sample")
	}
	if math.Abs(v-10) > 1e-9 {
		t.Errorf("Sample(0.5, 0.5) = %g, want 10", v)
	}
}

func TestSampleExactNode(t *testing.T) {
	g, err := NewGrid(0, 0, 1, 1, 2, 2, []float64{0, 10, 10, 20})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if v, ok := g.Sample(0, 0); !ok || v != 0 {
		t.Errorf("Sample(0,0) = (%g, %v), want (0, true)", v, ok)
	}
	if v, ok := g.Sample(1, 1); !ok || v != 20 {
		t.Errorf("Sample(1,1) = (%g, %v), want (20, true)", v, ok)
	}
}

func TestSampleOutOfBounds(t *testing.T) {
	g, err := NewGrid(0, 0, 1, 1, 2, 2, []float64{0, 10, 10, 20})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if _, ok := g.Sample(-1, 0); ok {
		t.Errorf("expected ok=false for a longitude outside coverage")
	}
	if _, ok := g.Sample(0, 5); ok {
		t.Errorf("expected ok=false for a latitude outside coverage")
	}
}

func TestSampleNodataPropagates(t *testing.T) {
	g, err := NewGrid(0, 0, 1, 1, 2, 2, []float64{0, NoData, 10, 20})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if _, ok := g.Sample(0.5, 0.5); ok {
		t.Errorf("expected ok=false when the bilinear stencil touches a NoData node")
	}
}

func TestNearestValidFindsClosestNonNodata(t *testing.T) {
	g, err := NewGrid(0, 0, 1, 1, 3, 3, []float64{
		NoData, NoData, NoData,
		NoData, NoData, NoData,
		NoData, 42, NoData,
	})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	v, ok := g.NearestValid(1, 1)
	if !ok {
		t.Fatalf("expected to find a valid node")
	}
	if v != 42 {
		t.Errorf("NearestValid = %g, want 42", v)
	}
}

func TestNearestValidAllNodata(t *testing.T) {
	g, err := NewGrid(0, 0, 1, 1, 2, 2, []float64{NoData, NoData, NoData, NoData})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if _, ok := g.NearestValid(0, 0); ok {
		t.Errorf("expected ok=false when every node is NoData")
	}
}
