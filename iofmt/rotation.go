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

	"github.com/ctessum/geom"
	"github.com/earthbyte-go/paleobath"
	"github.com/earthbyte-go/paleobath/internal/rotation"
)

// ReadStaticPolygonsFile parses a static-polygons file: one polygon per
// line, a reconstruction plate ID followed by lon/lat vertex pairs
// (at least three vertices). Blank lines and "#" comments are skipped.
func ReadStaticPolygonsFile(r io.Reader) ([]rotation.StaticPolygon, error) {
	var polys []rotation.StaticPolygon
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 7 || len(fields)%2 == 0 {
			return nil, paleobath.BadInputFormatErr{
				Source: "static-polygons file",
				Reason: fmt.Sprintf("line %d: want plate ID plus at least 3 lon/lat pairs, got %d fields", lineNo, len(fields)),
			}
		}
		plateID, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, paleobath.BadInputFormatErr{
				Source: "static-polygons file",
				Reason: fmt.Sprintf("line %d: non-integer plate ID %q", lineNo, fields[0]),
			}
		}
		ring := make([]geom.Point, 0, (len(fields)-1)/2)
		for i := 1; i < len(fields); i += 2 {
			lon, err1 := strconv.ParseFloat(fields[i], 64)
			lat, err2 := strconv.ParseFloat(fields[i+1], 64)
			if err1 != nil || err2 != nil {
				return nil, paleobath.BadInputFormatErr{
					Source: "static-polygons file",
					Reason: fmt.Sprintf("line %d: non-numeric vertex %q/%q", lineNo, fields[i], fields[i+1]),
				}
			}
			ring = append(ring, geom.Point{X: lon, Y: lat})
		}
		polys = append(polys, rotation.StaticPolygon{PlateID: plateID, Polygon: geom.Polygon{ring}})
	}
	if err := sc.Err(); err != nil {
		return nil, paleobath.BadInputFormatErr{Source: "static-polygons file", Reason: err.Error()}
	}
	if len(polys) == 0 {
		return nil, paleobath.BadInputFormatErr{Source: "static-polygons file", Reason: "no polygons"}
	}
	return polys, nil
}

// ReadRotationFiles parses one or more rotation files into per-plate
// rotation stages. Each data line follows the conventional total-
// reconstruction-pole layout: plate ID, time [Ma], pole latitude, pole
// longitude, angle [degrees], fixed plate ID, with anything after a "!"
// treated as a trailing comment. Lines beginning with "#" or "!" are
// skipped. Later files append to the same per-plate stages; each stage's
// poles are sorted by time on return.
func ReadRotationFiles(readers ...io.Reader) (map[int]rotation.Stage, error) {
	stages := make(map[int]rotation.Stage)
	for ri, r := range readers {
		sc := bufio.NewScanner(r)
		lineNo := 0
		for sc.Scan() {
			lineNo++
			line := strings.TrimSpace(sc.Text())
			if i := strings.Index(line, "!"); i >= 0 {
				line = strings.TrimSpace(line[:i])
			}
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			fields := strings.Fields(line)
			if len(fields) < 5 {
				return nil, paleobath.BadInputFormatErr{
					Source: "rotation file",
					Reason: fmt.Sprintf("file %d line %d: want at least 5 fields (plate time lat lon angle), got %d", ri+1, lineNo, len(fields)),
				}
			}
			plateID, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, paleobath.BadInputFormatErr{
					Source: "rotation file",
					Reason: fmt.Sprintf("file %d line %d: non-integer plate ID %q", ri+1, lineNo, fields[0]),
				}
			}
			vals := make([]float64, 4)
			for i := 0; i < 4; i++ {
				v, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, paleobath.BadInputFormatErr{
						Source: "rotation file",
						Reason: fmt.Sprintf("file %d line %d: non-numeric field %q", ri+1, lineNo, fields[i+1]),
					}
				}
				vals[i] = v
			}
			stage := stages[plateID]
			stage.Times = append(stage.Times, vals[0])
			stage.Poles = append(stage.Poles, rotation.Pole{AxisLat: vals[1], AxisLon: vals[2], AngleDeg: vals[3]})
			stages[plateID] = stage
		}
		if err := sc.Err(); err != nil {
			return nil, paleobath.BadInputFormatErr{Source: "rotation file", Reason: err.Error()}
		}
	}
	if len(stages) == 0 {
		return nil, paleobath.BadInputFormatErr{Source: "rotation file", Reason: "no rotation poles"}
	}
	for plateID, stage := range stages {
		idx := make([]int, len(stage.Times))
		for i := range idx {
			idx[i] = i
		}
		sort.Slice(idx, func(i, j int) bool { return stage.Times[idx[i]] < stage.Times[idx[j]] })
		sorted := rotation.Stage{
			Times: make([]float64, len(idx)),
			Poles: make([]rotation.Pole, len(idx)),
		}
		for i, j := range idx {
			sorted.Times[i] = stage.Times[j]
			sorted.Poles[i] = stage.Poles[j]
		}
		stages[plateID] = sorted
	}
	return stages, nil
}
