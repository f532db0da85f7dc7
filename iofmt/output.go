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
	"strings"

	"github.com/earthbyte-go/paleobath"
)

// Column names one of the selectable output columns. Unknown names are
// rejected by ParseColumns so a caller-specified column order can be
// validated up front, before any row is computed.
type Column string

const (
	ColAge                       Column = "age"
	ColCompactedDepth            Column = "compacted_depth"
	ColCompactedThickness        Column = "compacted_thickness"
	ColDecompactedThickness      Column = "decompacted_thickness"
	ColDecompactedDensity        Column = "decompacted_density"
	ColDecompactedSedimentRate   Column = "decompacted_sediment_rate"
	ColDecompactedDepth          Column = "decompacted_depth"
	ColDynamicTopography         Column = "dynamic_topography"
	ColTectonicSubsidence        Column = "tectonic_subsidence"
	ColWaterDepth                Column = "water_depth"
	ColMinTectonicSubsidence     Column = "min_tectonic_subsidence"
	ColMaxTectonicSubsidence     Column = "max_tectonic_subsidence"
	ColAverageTectonicSubsidence Column = "average_tectonic_subsidence"
	ColMinWaterDepth             Column = "min_water_depth"
	ColMaxWaterDepth             Column = "max_water_depth"
	ColAverageWaterDepth         Column = "average_water_depth"
	ColLithology                 Column = "lithology"
)

var knownColumns = map[Column]bool{
	ColAge: true, ColCompactedDepth: true, ColCompactedThickness: true,
	ColDecompactedThickness: true, ColDecompactedDensity: true,
	ColDecompactedSedimentRate: true, ColDecompactedDepth: true,
	ColDynamicTopography: true, ColTectonicSubsidence: true, ColWaterDepth: true,
	ColMinTectonicSubsidence: true, ColMaxTectonicSubsidence: true,
	ColAverageTectonicSubsidence: true, ColMinWaterDepth: true,
	ColMaxWaterDepth: true, ColAverageWaterDepth: true, ColLithology: true,
}

// ParseColumns validates a caller-specified column order; the output row
// preserves that order rather than a fixed canonical one.
func ParseColumns(names []string) ([]Column, error) {
	cols := make([]Column, len(names))
	for i, n := range names {
		c := Column(strings.TrimSpace(n))
		if !knownColumns[c] {
			return nil, fmt.Errorf("iofmt: unknown output column %q", n)
		}
		cols[i] = c
	}
	return cols, nil
}

// unitAt returns the stratigraphic unit whose top age equals age, for
// filling the compacted_depth/compacted_thickness/lithology columns that
// describe the present-day (compacted) geometry rather than a decompacted
// quantity.
func unitAt(w *paleobath.Well, age float64) (paleobath.StratUnit, bool) {
	for _, u := range w.Units {
		if u.TopAge == age {
			return u, true
		}
	}
	if len(w.Units) > 0 {
		last := w.Units[len(w.Units)-1]
		if last.BottomAge == age {
			return last, true
		}
	}
	return paleobath.StratUnit{}, false
}

func lithologyLabel(u paleobath.StratUnit, ok bool) string {
	if !ok || u.Lithology == nil {
		return ""
	}
	parts := make([]string, len(u.Lithology.Components))
	for i, c := range u.Lithology.Components {
		parts[i] = fmt.Sprintf("%s:%g", c.Name, c.Fraction)
	}
	return strings.Join(parts, "+")
}

// EncodeBacktrack writes a backtrack run's points as a column-selectable
// table. decompacted_sediment_rate (m/Myr) is derived from each point and
// the one before it, without a model method of its own.
func EncodeBacktrack(out io.Writer, w *paleobath.Well, points []paleobath.BacktrackPoint, cols []Column) error {
	bw := bufio.NewWriter(out)
	writeHeader(bw, cols)
	for i, p := range points {
		u, ok := unitAt(w, p.Age)
		rate := 0.0
		if i > 0 {
			dAge := points[i-1].Age - p.Age // row order may run young-to-old or old-to-young
			if dAge < 0 {
				dAge = -dAge
			}
			if dAge > 0 {
				rate = (p.DecompactedThickness - points[i-1].DecompactedThickness) / dAge
			}
		}
		row := map[Column]string{
			ColAge:                     fmtF(p.Age),
			ColCompactedDepth:          fmtF(u.TopDepth),
			ColCompactedThickness:      fmtF(u.Thickness()),
			ColDecompactedThickness:    fmtF(p.DecompactedThickness),
			ColDecompactedDensity:      fmtF(p.DecompactedDensity),
			ColDecompactedSedimentRate: fmtF(rate),
			ColDecompactedDepth:        fmtF(p.DecompactedThickness),
			ColDynamicTopography:       fmtF(p.DynamicTopography),
			ColTectonicSubsidence:      fmtF(p.TectonicSubsidence),
			ColWaterDepth:              fmtF(p.WaterDepth),
			ColLithology:               lithologyLabel(u, ok),
		}
		writeRow(bw, cols, row)
	}
	return bw.Flush()
}

// EncodeBackstrip writes a backstrip run's points as a column-selectable
// table.
func EncodeBackstrip(out io.Writer, w *paleobath.Well, points []paleobath.BackstripPoint, cols []Column) error {
	bw := bufio.NewWriter(out)
	writeHeader(bw, cols)
	for _, p := range points {
		u, ok := unitAt(w, p.Age)
		minW, maxW := 0.0, 0.0
		if ok {
			if u.MinWaterDepth != nil {
				minW = *u.MinWaterDepth
			}
			if u.MaxWaterDepth != nil {
				maxW = *u.MaxWaterDepth
			}
		}
		row := map[Column]string{
			ColAge:                       fmtF(p.Age),
			ColCompactedDepth:            fmtF(u.TopDepth),
			ColCompactedThickness:        fmtF(u.Thickness()),
			ColDecompactedThickness:      fmtF(p.DecompactedThickness),
			ColDecompactedDensity:        fmtF(p.DecompactedDensity),
			ColDecompactedDepth:          fmtF(p.DecompactedThickness),
			ColMinTectonicSubsidence:     fmtF(p.SubsidenceMin),
			ColMaxTectonicSubsidence:     fmtF(p.SubsidenceMax),
			ColAverageTectonicSubsidence: fmtF(p.SubsidenceAvg),
			ColMinWaterDepth:             fmtF(minW),
			ColMaxWaterDepth:             fmtF(maxW),
			ColAverageWaterDepth:         fmtF((minW + maxW) / 2),
			ColLithology:                 lithologyLabel(u, ok),
		}
		writeRow(bw, cols, row)
	}
	return bw.Flush()
}

func writeHeader(bw *bufio.Writer, cols []Column) {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = string(c)
	}
	fmt.Fprintln(bw, strings.Join(names, "\t"))
}

func writeRow(bw *bufio.Writer, cols []Column, row map[Column]string) {
	vals := make([]string, len(cols))
	for i, c := range cols {
		vals[i] = row[c] // empty string for any column the run doesn't produce
	}
	fmt.Fprintln(bw, strings.Join(vals, "\t"))
}

func fmtF(v float64) string {
	return fmt.Sprintf("%g", v)
}
