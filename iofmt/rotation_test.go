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

package iofmt

import (
	"strings"
	"testing"
)

func TestReadStaticPolygonsFile(t *testing.T) {
	src := `# plateID lon lat lon lat lon lat lon lat
7	-10 -10	10 -10	10 10	-10 10
`
	polys, err := ReadStaticPolygonsFile(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadStaticPolygonsFile: %v", err)
	}
	if len(polys) != 1 {
		t.Fatalf("expected 1 polygon, got %d", len(polys))
	}
	if polys[0].PlateID != 7 {
		t.Errorf("PlateID = %d, want 7", polys[0].PlateID)
	}
	if len(polys[0].Polygon[0]) != 4 {
		t.Errorf("vertex count = %d, want 4", len(polys[0].Polygon[0]))
	}
}

func TestReadStaticPolygonsFileTooFewVertices(t *testing.T) {
	src := "7\t0 0\t1 0\n"
	if _, err := ReadStaticPolygonsFile(strings.NewReader(src)); err == nil {
		t.Fatalf("expected an error for fewer than 3 vertices")
	}
}

func TestReadRotationFiles(t *testing.T) {
	src := `! total reconstruction poles
1	10.0	90.0	0.0	45.0	0 ! plate 1 at 10 Ma
1	0.0	90.0	0.0	0.0	0
2	5.0	30.0	-40.0	12.5	0
`
	stages, err := ReadRotationFiles(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadRotationFiles: %v", err)
	}
	s1, ok := stages[1]
	if !ok {
		t.Fatalf("expected a stage for plate 1")
	}
	// Poles come back sorted by time regardless of file order.
	if len(s1.Times) != 2 || s1.Times[0] != 0 || s1.Times[1] != 10 {
		t.Errorf("plate 1 times = %v, want [0 10]", s1.Times)
	}
	if s1.Poles[1].AxisLat != 90 || s1.Poles[1].AngleDeg != 45 {
		t.Errorf("plate 1 pole at 10 Ma = %+v, want AxisLat=90 AngleDeg=45", s1.Poles[1])
	}
	s2 := stages[2]
	if len(s2.Times) != 1 || s2.Poles[0].AxisLon != -40 {
		t.Errorf("plate 2 stage = %+v, want one pole with AxisLon=-40", s2)
	}
}

func TestReadRotationFilesMergesAcrossFiles(t *testing.T) {
	a := "1\t0.0\t90.0\t0.0\t0.0\t0\n"
	b := "1\t10.0\t90.0\t0.0\t45.0\t0\n"
	stages, err := ReadRotationFiles(strings.NewReader(a), strings.NewReader(b))
	if err != nil {
		t.Fatalf("ReadRotationFiles: %v", err)
	}
	if len(stages[1].Times) != 2 {
		t.Errorf("expected poles from both files to merge, got %v", stages[1].Times)
	}
}

func TestReadRotationFilesBadPlateID(t *testing.T) {
	src := "notaplate\t0.0\t90.0\t0.0\t0.0\t0\n"
	if _, err := ReadRotationFiles(strings.NewReader(src)); err == nil {
		t.Fatalf("expected an error for a non-integer plate ID")
	}
}
