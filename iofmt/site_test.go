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
	"bytes"
	"strings"
	"testing"

	"github.com/earthbyte-go/paleobath"
)

const sampleOceanicSite = `# SiteLongitude = 10.5
# SiteLatitude = -20.25
# SurfaceAge = 0
# CrustAge = 50
10	500	Shale	1.0
20	1000	Mud	0.5	Shale	0.5	200	400
`

func TestReadSiteFileBasic(t *testing.T) {
	w, err := ReadSiteFile(strings.NewReader(sampleOceanicSite))
	if err != nil {
		t.Fatalf("ReadSiteFile: %v", err)
	}
	if w.Lon != 10.5 || w.Lat != -20.25 {
		t.Errorf("Lon/Lat = (%g, %g), want (10.5, -20.25)", w.Lon, w.Lat)
	}
	if w.CrustAge != 50 {
		t.Errorf("CrustAge = %g, want 50", w.CrustAge)
	}
	if len(w.Units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(w.Units))
	}

	u0 := w.Units[0]
	if u0.TopAge != 0 || u0.BottomAge != 10 {
		t.Errorf("unit 0 ages = [%g, %g], want [0, 10]", u0.TopAge, u0.BottomAge)
	}
	if u0.TopDepth != 0 || u0.BottomDepth != 500 {
		t.Errorf("unit 0 depths = [%g, %g], want [0, 500]", u0.TopDepth, u0.BottomDepth)
	}
	if len(u0.Lithology.Components) != 1 || u0.Lithology.Components[0].Name != "Shale" {
		t.Errorf("unit 0 lithology = %+v, want single Shale component", u0.Lithology.Components)
	}

	u1 := w.Units[1]
	if u1.TopAge != 10 || u1.BottomAge != 20 {
		t.Errorf("unit 1 ages = [%g, %g], want [10, 20]", u1.TopAge, u1.BottomAge)
	}
	if u1.TopDepth != 500 || u1.BottomDepth != 1000 {
		t.Errorf("unit 1 depths = [%g, %g], want [500, 1000]", u1.TopDepth, u1.BottomDepth)
	}
	if len(u1.Lithology.Components) != 2 {
		t.Fatalf("unit 1 should have 2 lithology components, got %d", len(u1.Lithology.Components))
	}
	if u1.MinWaterDepth == nil || *u1.MinWaterDepth != 200 {
		t.Errorf("unit 1 MinWaterDepth = %v, want 200", u1.MinWaterDepth)
	}
	if u1.MaxWaterDepth == nil || *u1.MaxWaterDepth != 400 {
		t.Errorf("unit 1 MaxWaterDepth = %v, want 400", u1.MaxWaterDepth)
	}
}

func TestReadSiteFileContinental(t *testing.T) {
	src := `# SiteLongitude = 0
# SiteLatitude = 0
# SurfaceAge = 0
# RiftStartAge = 150
# RiftEndAge = 100
50	300	Shale	1.0
`
	w, err := ReadSiteFile(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadSiteFile: %v", err)
	}
	if w.Crust != paleobath.Continental {
		t.Errorf("crust type = %v, want Continental", w.Crust)
	}
	if w.RiftStart == nil || *w.RiftStart != 150 {
		t.Errorf("RiftStart = %v, want 150", w.RiftStart)
	}
	if w.RiftEnd == nil || *w.RiftEnd != 100 {
		t.Errorf("RiftEnd = %v, want 100", w.RiftEnd)
	}
}

func TestReadSiteFilePresentDayWaterDepthHeader(t *testing.T) {
	src := `# SiteLongitude = 0
# SiteLatitude = 0
# PresentDayWaterDepth = 2000
10	500	Shale	1.0
`
	w, err := ReadSiteFile(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadSiteFile: %v", err)
	}
	if w.PresentDayWaterDepth == nil || *w.PresentDayWaterDepth != 2000 {
		t.Errorf("PresentDayWaterDepth = %v, want 2000", w.PresentDayWaterDepth)
	}

	var buf bytes.Buffer
	if err := WriteSiteFile(&buf, w); err != nil {
		t.Fatalf("WriteSiteFile: %v", err)
	}
	w2, err := ReadSiteFile(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("re-reading the written site file: %v", err)
	}
	if w2.PresentDayWaterDepth == nil || *w2.PresentDayWaterDepth != 2000 {
		t.Errorf("round-tripped PresentDayWaterDepth = %v, want 2000", w2.PresentDayWaterDepth)
	}
}

func TestReadSiteFileMissingLonLat(t *testing.T) {
	src := "10\t500\tShale\t1.0\n"
	if _, err := ReadSiteFile(strings.NewReader(src)); err == nil {
		t.Fatalf("expected an error for missing SiteLongitude/SiteLatitude")
	}
}

func TestReadSiteFileBadBottomAge(t *testing.T) {
	src := `# SiteLongitude = 0
# SiteLatitude = 0
notanumber	500	Shale	1.0
`
	if _, err := ReadSiteFile(strings.NewReader(src)); err == nil {
		t.Fatalf("expected a BadInputFormatErr for a non-numeric bottom age")
	}
}

func TestWriteSiteFileRoundTrip(t *testing.T) {
	w, err := ReadSiteFile(strings.NewReader(sampleOceanicSite))
	if err != nil {
		t.Fatalf("ReadSiteFile: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteSiteFile(&buf, w); err != nil {
		t.Fatalf("WriteSiteFile: %v", err)
	}

	w2, err := ReadSiteFile(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("re-reading the written site file: %v", err)
	}
	if w2.Lon != w.Lon || w2.Lat != w.Lat {
		t.Errorf("round-tripped Lon/Lat = (%g, %g), want (%g, %g)", w2.Lon, w2.Lat, w.Lon, w.Lat)
	}
	if len(w2.Units) != len(w.Units) {
		t.Fatalf("round-tripped unit count = %d, want %d", len(w2.Units), len(w.Units))
	}
	for i := range w.Units {
		if w2.Units[i].BottomDepth != w.Units[i].BottomDepth {
			t.Errorf("unit %d round-tripped BottomDepth = %g, want %g", i, w2.Units[i].BottomDepth, w.Units[i].BottomDepth)
		}
	}
}

func TestParsedBadFractionSumRejectedByNewComposite(t *testing.T) {
	comps, _, _, err := parseLithologyTokens([]string{"Shale", "0.9"})
	if err != nil {
		t.Fatalf("parseLithologyTokens: %v", err)
	}
	if _, err := paleobath.NewComposite(comps); err == nil {
		t.Errorf("expected NewComposite to reject a fraction sum of 0.9")
	}
}

func TestParseLithologyTokensNoComponents(t *testing.T) {
	if _, _, _, err := parseLithologyTokens(nil); err == nil {
		t.Errorf("expected an error when no lithology components are given")
	}
}
