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
	"strconv"
	"strings"

	"github.com/earthbyte-go/paleobath"
)

// readTwoColumnFile reads whitespace-separated two-column numeric rows,
// skipping blank lines and "#" comments, selecting xCol/yCol (0-indexed)
// out of however many fields a row has. It underlies the user age-depth
// table reader (configurable column indices) and the sea-level reader
// (fixed two columns).
func readTwoColumnFile(r io.Reader, source string, xCol, yCol int) (x, y []float64, err error) {
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		need := xCol
		if yCol > need {
			need = yCol
		}
		if len(fields) <= need {
			return nil, nil, paleobath.BadInputFormatErr{
				Source: source,
				Reason: fmt.Sprintf("line %d: need at least %d columns, got %d", lineNo, need+1, len(fields)),
			}
		}
		xv, err1 := strconv.ParseFloat(fields[xCol], 64)
		yv, err2 := strconv.ParseFloat(fields[yCol], 64)
		if err1 != nil || err2 != nil {
			return nil, nil, paleobath.BadInputFormatErr{
				Source: source,
				Reason: fmt.Sprintf("line %d: non-numeric columns", lineNo),
			}
		}
		x = append(x, xv)
		y = append(y, yv)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, paleobath.BadInputFormatErr{Source: source, Reason: err.Error()}
	}
	if len(x) == 0 {
		return nil, nil, paleobath.BadInputFormatErr{Source: source, Reason: "no data rows"}
	}
	return x, y, nil
}

// ReadAgeDepthTable parses a user-supplied piecewise-linear age-to-depth
// file, with configurable age/depth column indices (0-indexed).
func ReadAgeDepthTable(r io.Reader, ageCol, depthCol int) (*paleobath.UserTable, error) {
	age, depth, err := readTwoColumnFile(r, "age-depth table", ageCol, depthCol)
	if err != nil {
		return nil, err
	}
	return paleobath.NewUserAgeDepthTable(age, depth)
}

// ReadSeaLevelFile parses a two-column (age, level) sea-level file.
func ReadSeaLevelFile(r io.Reader) (*paleobath.SeaLevelModel, error) {
	age, level, err := readTwoColumnFile(r, "sea-level file", 0, 1)
	if err != nil {
		return nil, err
	}
	return paleobath.NewSeaLevelModel(age, level)
}
