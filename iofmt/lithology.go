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

// ReadLithologyFile parses a lithology registry file: one record per
// line, columns name rhoS phi0 c. Lines beginning with "#" and blank lines
// are skipped.
func ReadLithologyFile(r io.Reader) (*paleobath.Registry, error) {
	reg := paleobath.NewRegistry()
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, paleobath.BadInputFormatErr{
				Source: "lithology file",
				Reason: fmt.Sprintf("line %d: want 4 fields (name rhoS phi0 c), got %d", lineNo, len(fields)),
			}
		}
		rhoS, err1 := strconv.ParseFloat(fields[1], 64)
		phi0, err2 := strconv.ParseFloat(fields[2], 64)
		c, err3 := strconv.ParseFloat(fields[3], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, paleobath.BadInputFormatErr{
				Source: "lithology file",
				Reason: fmt.Sprintf("line %d: non-numeric rhoS/phi0/c", lineNo),
			}
		}
		reg.Add(paleobath.Lithology{Name: fields[0], RhoS: rhoS, Phi0: phi0, C: c})
	}
	if err := sc.Err(); err != nil {
		return nil, paleobath.BadInputFormatErr{Source: "lithology file", Reason: err.Error()}
	}
	return reg, nil
}

// LoadLithologyFiles reads each of readers in order and merges them into a
// single registry, later files overriding earlier ones on name collision.
func LoadLithologyFiles(readers ...io.Reader) (*paleobath.Registry, error) {
	reg := paleobath.NewRegistry()
	for _, r := range readers {
		other, err := ReadLithologyFile(r)
		if err != nil {
			return nil, err
		}
		reg.Merge(other)
	}
	return reg, nil
}
