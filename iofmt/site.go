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

// Package iofmt implements the plain-text external interfaces: drill-site
// files, lithology files, age-depth and sea-level tables, and the
// decompacted/amended-site outputs. The line-oriented
// bufio.Scanner-plus-strings.Fields parsing style follows the general
// convention for record-oriented text files used elsewhere in this module.
package iofmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/earthbyte-go/paleobath"
)

// ReadSiteFile parses a drill-site file: header lines of the form
// "# Key = value" supply SiteLongitude/SiteLatitude/SurfaceAge/
// RiftStartAge/RiftEndAge; data lines carry bottom_age, bottom_depth, a
// run of (lithology name, fraction) pairs, and an optional trailing
// min_water_depth/max_water_depth pair.
func ReadSiteFile(r io.Reader) (*paleobath.Well, error) {
	w := &paleobath.Well{}
	haveLon, haveLat := false, false

	sc := bufio.NewScanner(r)
	lineNo := 0
	topDepth := 0.0
	prevBottomAge := 0.0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			key, val, ok := parseHeaderLine(line)
			if !ok {
				continue // a plain comment, not a "# Key = value" header
			}
			f, err := strconv.ParseFloat(val, 64)
			switch key {
			case "SiteLongitude":
				if err != nil {
					return nil, siteErr(lineNo, "SiteLongitude", err)
				}
				w.Lon, haveLon = f, true
			case "SiteLatitude":
				if err != nil {
					return nil, siteErr(lineNo, "SiteLatitude", err)
				}
				w.Lat, haveLat = f, true
			case "SurfaceAge":
				if err != nil {
					return nil, siteErr(lineNo, "SurfaceAge", err)
				}
				w.SurfaceAge = f
			case "RiftStartAge":
				if err != nil {
					return nil, siteErr(lineNo, "RiftStartAge", err)
				}
				w.RiftStart = &f
				w.Crust = paleobath.Continental
			case "RiftEndAge":
				if err != nil {
					return nil, siteErr(lineNo, "RiftEndAge", err)
				}
				w.RiftEnd = &f
				w.Crust = paleobath.Continental
			case "CrustAge":
				// Not one of the standard header keys but required by the
				// oceanic branch; accepted as a supplemental header so an
				// oceanic site file is fully self-describing.
				if err != nil {
					return nil, siteErr(lineNo, "CrustAge", err)
				}
				w.CrustAge = f
			case "PresentDayWaterDepth":
				// Supplemental, like CrustAge: lets a site record carry its
				// observed water depth so batch (grid) runs don't need a
				// single shared value.
				if err != nil {
					return nil, siteErr(lineNo, "PresentDayWaterDepth", err)
				}
				w.PresentDayWaterDepth = &f
			}
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, siteErr(lineNo, "data row", fmt.Errorf("need at least bottom_age and bottom_depth, got %d fields", len(fields)))
		}
		bottomAge, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, siteErr(lineNo, "bottom_age", err)
		}
		bottomDepth, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, siteErr(lineNo, "bottom_depth", err)
		}
		comps, minW, maxW, err := parseLithologyTokens(fields[2:])
		if err != nil {
			return nil, siteErr(lineNo, "lithology tokens", err)
		}
		cl, err := paleobath.NewComposite(comps)
		if err != nil {
			return nil, err
		}

		topAge := prevBottomAge
		if len(w.Units) == 0 {
			topAge = w.SurfaceAge
		}
		unit := paleobath.StratUnit{
			TopAge:      topAge,
			BottomAge:   bottomAge,
			TopDepth:    topDepth,
			BottomDepth: bottomDepth,
			Lithology:   cl,
		}
		if minW != nil {
			unit.MinWaterDepth = minW
		}
		if maxW != nil {
			unit.MaxWaterDepth = maxW
		}
		w.Units = append(w.Units, unit)
		topDepth = bottomDepth
		prevBottomAge = bottomAge
	}
	if err := sc.Err(); err != nil {
		return nil, paleobath.BadInputFormatErr{Source: "site file", Reason: err.Error()}
	}
	if !haveLon || !haveLat {
		return nil, paleobath.BadInputFormatErr{Source: "site file", Reason: "missing SiteLongitude/SiteLatitude header"}
	}
	return w, nil
}

func parseHeaderLine(line string) (key, val string, ok bool) {
	body := strings.TrimSpace(strings.TrimPrefix(line, "#"))
	parts := strings.SplitN(body, "=", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

// parseLithologyTokens consumes leading (name, fraction) pairs greedily
// for as long as the token in the name position fails to parse as a
// float, then treats any 0 or 2 remaining tokens as min/max water depth.
func parseLithologyTokens(tokens []string) (comps []paleobath.Component, minW, maxW *float64, err error) {
	i := 0
	for i+1 < len(tokens) {
		if _, ferr := strconv.ParseFloat(tokens[i], 64); ferr == nil {
			break // reached the water-depth columns
		}
		frac, ferr := strconv.ParseFloat(tokens[i+1], 64)
		if ferr != nil {
			return nil, nil, nil, fmt.Errorf("lithology fraction %q: %w", tokens[i+1], ferr)
		}
		comps = append(comps, paleobath.Component{Name: tokens[i], Fraction: frac})
		i += 2
	}
	rest := tokens[i:]
	switch len(rest) {
	case 0:
	case 2:
		lo, err1 := strconv.ParseFloat(rest[0], 64)
		hi, err2 := strconv.ParseFloat(rest[1], 64)
		if err1 != nil || err2 != nil {
			return nil, nil, nil, fmt.Errorf("min/max water depth %q/%q not numeric", rest[0], rest[1])
		}
		minW, maxW = &lo, &hi
	default:
		return nil, nil, nil, fmt.Errorf("unexpected %d trailing tokens after lithology components", len(rest))
	}
	if len(comps) == 0 {
		return nil, nil, nil, fmt.Errorf("no lithology components given")
	}
	return comps, minW, maxW, nil
}

func siteErr(lineNo int, field string, err error) error {
	return paleobath.BadInputFormatErr{Source: "site file", Reason: fmt.Sprintf("line %d, %s: %v", lineNo, field, err)}
}

// WriteSiteFile encodes w back to the textual drill-site format, used both
// to echo an amended site (with any synthesized base layer) and to
// round-trip a parsed site back to disk.
func WriteSiteFile(out io.Writer, w *paleobath.Well) error {
	bw := bufio.NewWriter(out)
	fmt.Fprintf(bw, "# SiteLongitude = %g\n", w.Lon)
	fmt.Fprintf(bw, "# SiteLatitude = %g\n", w.Lat)
	fmt.Fprintf(bw, "# SurfaceAge = %g\n", w.SurfaceAge)
	if w.RiftStart != nil {
		fmt.Fprintf(bw, "# RiftStartAge = %g\n", *w.RiftStart)
	}
	if w.RiftEnd != nil {
		fmt.Fprintf(bw, "# RiftEndAge = %g\n", *w.RiftEnd)
	}
	if w.Crust == paleobath.Oceanic {
		fmt.Fprintf(bw, "# CrustAge = %g\n", w.CrustAge)
	}
	if w.PresentDayWaterDepth != nil {
		fmt.Fprintf(bw, "# PresentDayWaterDepth = %g\n", *w.PresentDayWaterDepth)
	}
	for _, u := range w.Units {
		fmt.Fprintf(bw, "%g\t%g", u.BottomAge, u.BottomDepth)
		if u.Lithology != nil {
			for _, c := range u.Lithology.Components {
				fmt.Fprintf(bw, "\t%s\t%g", c.Name, c.Fraction)
			}
		}
		if u.MinWaterDepth != nil && u.MaxWaterDepth != nil {
			fmt.Fprintf(bw, "\t%g\t%g", *u.MinWaterDepth, *u.MaxWaterDepth)
		}
		fmt.Fprint(bw, "\n")
	}
	return bw.Flush()
}
