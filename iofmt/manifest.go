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
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/earthbyte-go/paleobath"
)

// AgedGridFile is one mantle-frame grid file and the reconstruction age it
// represents.
type AgedGridFile struct {
	Age  float64
	Path string
}

// DynamicTopographyManifest describes a dynamic-topography model on disk:
// the mantle-frame grid files with their ages, the static-polygons file
// used for plate assignment, and the rotation file(s). The manifest only
// names the files; loading the rasters and rotations is the caller's
// concern.
type DynamicTopographyManifest struct {
	GridFiles          []AgedGridFile // sorted by age
	StaticPolygonsFile string
	RotationFiles      []string
}

// ReadDynamicTopographyManifest parses a model descriptor: header lines
// "# StaticPolygons = path" and "# RotationFile = path" (the latter may
// repeat), and data lines of the form "age grid_path". Grid entries are
// sorted by age on return.
func ReadDynamicTopographyManifest(r io.Reader) (*DynamicTopographyManifest, error) {
	m := &DynamicTopographyManifest{}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			key, val, ok := parseHeaderLine(line)
			if !ok {
				continue
			}
			switch key {
			case "StaticPolygons":
				m.StaticPolygonsFile = val
			case "RotationFile":
				m.RotationFiles = append(m.RotationFiles, val)
			}
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, paleobath.BadInputFormatErr{
				Source: "dynamic-topography manifest",
				Reason: fmt.Sprintf("line %d: want 2 fields (age grid_path), got %d", lineNo, len(fields)),
			}
		}
		age, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, paleobath.BadInputFormatErr{
				Source: "dynamic-topography manifest",
				Reason: fmt.Sprintf("line %d: non-numeric age %q", lineNo, fields[0]),
			}
		}
		m.GridFiles = append(m.GridFiles, AgedGridFile{Age: age, Path: fields[1]})
	}
	if err := sc.Err(); err != nil {
		return nil, paleobath.BadInputFormatErr{Source: "dynamic-topography manifest", Reason: err.Error()}
	}
	if len(m.GridFiles) == 0 {
		return nil, paleobath.BadInputFormatErr{Source: "dynamic-topography manifest", Reason: "no grid entries"}
	}
	sort.Slice(m.GridFiles, func(i, j int) bool { return m.GridFiles[i].Age < m.GridFiles[j].Age })
	return m, nil
}
