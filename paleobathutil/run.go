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

package paleobathutil

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/earthbyte-go/paleobath"
	"github.com/earthbyte-go/paleobath/internal/raster"
	"github.com/earthbyte-go/paleobath/internal/rotation"
	"github.com/earthbyte-go/paleobath/iofmt"
)

// loadRegistry opens LithologyFile and, if set, ExtendedLithologyFile,
// merging the extended set in last so its entries win on collision.
func loadRegistry(cfg *Cfg) (*paleobath.Registry, error) {
	litPath := cfg.GetString("LithologyFile")
	if litPath == "" {
		return nil, fmt.Errorf("paleobath: LithologyFile must be specified")
	}
	f, err := os.Open(litPath)
	if err != nil {
		return nil, fmt.Errorf("paleobath: opening LithologyFile: %w", err)
	}
	defer f.Close()
	reg, err := iofmt.ReadLithologyFile(f)
	if err != nil {
		return nil, err
	}
	if ext := cfg.GetString("ExtendedLithologyFile"); ext != "" {
		ef, err := os.Open(ext)
		if err != nil {
			return nil, fmt.Errorf("paleobath: opening ExtendedLithologyFile: %w", err)
		}
		defer ef.Close()
		extReg, err := iofmt.ReadLithologyFile(ef)
		if err != nil {
			return nil, err
		}
		reg.Merge(extReg)
	}
	return reg, nil
}

func loadWell(cfg *Cfg, reg *paleobath.Registry) (*paleobath.Well, error) {
	sitePath := cfg.GetString("SiteFile")
	if sitePath == "" {
		return nil, fmt.Errorf("paleobath: SiteFile must be specified")
	}
	f, err := os.Open(sitePath)
	if err != nil {
		return nil, fmt.Errorf("paleobath: opening SiteFile: %w", err)
	}
	defer f.Close()
	w, err := iofmt.ReadSiteFile(f)
	if err != nil {
		return nil, err
	}
	if err := w.ResolveLithologies(reg); err != nil {
		return nil, err
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

func loadSeaLevel(cfg *Cfg) (*paleobath.SeaLevelModel, error) {
	path := cfg.GetString("SeaLevelFile")
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("paleobath: opening SeaLevelFile: %w", err)
	}
	defer f.Close()
	return iofmt.ReadSeaLevelFile(f)
}

func ageDepthModel(cfg *Cfg) (paleobath.AgeDepthModel, error) {
	switch cfg.GetString("AgeDepthModel") {
	case "", "GDH1":
		return paleobath.GDH1, nil
	case "CROSBY_2007":
		return paleobath.Crosby2007, nil
	case "RHCW18":
		return paleobath.RHCW18, nil
	case "USER":
		path := cfg.GetString("AgeDepthTableFile")
		if path == "" {
			return nil, fmt.Errorf("paleobath: AgeDepthModel=USER requires AgeDepthTableFile")
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("paleobath: opening AgeDepthTableFile: %w", err)
		}
		defer f.Close()
		return iofmt.ReadAgeDepthTable(f, 0, 1)
	default:
		return nil, fmt.Errorf("paleobath: unknown AgeDepthModel %q", cfg.GetString("AgeDepthModel"))
	}
}

// loadDynamicTopography builds the dynamic-topography model named by the
// DynamicTopographyManifest option: each listed grid file is read as a
// NetCDF raster, the static-polygons and rotation files become the
// plate-reconstruction model, and the assembled model is shared by every
// site of the run. Returns (nil, nil) when no manifest is configured.
func loadDynamicTopography(cfg *Cfg) (*paleobath.DynamicTopographyModel, error) {
	path := cfg.GetString("DynamicTopographyManifest")
	if path == "" {
		return nil, nil
	}
	mf, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("paleobath: opening DynamicTopographyManifest: %w", err)
	}
	defer mf.Close()
	man, err := iofmt.ReadDynamicTopographyManifest(mf)
	if err != nil {
		return nil, err
	}

	pf, err := os.Open(man.StaticPolygonsFile)
	if err != nil {
		return nil, fmt.Errorf("paleobath: opening static-polygons file: %w", err)
	}
	defer pf.Close()
	polys, err := iofmt.ReadStaticPolygonsFile(pf)
	if err != nil {
		return nil, err
	}

	rotReaders := make([]*os.File, 0, len(man.RotationFiles))
	defer func() {
		for _, r := range rotReaders {
			r.Close()
		}
	}()
	readers := make([]io.Reader, 0, len(man.RotationFiles))
	for _, rp := range man.RotationFiles {
		rf, err := os.Open(rp)
		if err != nil {
			return nil, fmt.Errorf("paleobath: opening rotation file %s: %w", rp, err)
		}
		rotReaders = append(rotReaders, rf)
		readers = append(readers, rf)
	}
	stages, err := iofmt.ReadRotationFiles(readers...)
	if err != nil {
		return nil, err
	}

	varName := cfg.GetString("DynamicTopographyVariable")
	grids := make([]paleobath.DynamicTopographyGrid, 0, len(man.GridFiles))
	for _, gfEntry := range man.GridFiles {
		gf, err := os.Open(gfEntry.Path)
		if err != nil {
			return nil, fmt.Errorf("paleobath: opening dynamic-topography grid %s: %w", gfEntry.Path, err)
		}
		g, err := raster.LoadNetCDF(gf, varName, "lon", "lat")
		gf.Close()
		if err != nil {
			return nil, err
		}
		grids = append(grids, paleobath.DynamicTopographyGrid{Age: gfEntry.Age, Raster: g})
	}
	return paleobath.NewDynamicTopographyModel(grids, rotation.NewStageRotationModel(polys, stages)), nil
}

// presentDaySubsidence computes S0 for one well from its observed
// present-day water depth, preferring a per-site value carried in the
// site file over the run-wide PresentDayWaterDepth option.
func presentDaySubsidence(cfg *Cfg, w *paleobath.Well) float64 {
	waterDepth := cfg.GetFloat64("PresentDayWaterDepth")
	if w.PresentDayWaterDepth != nil {
		waterDepth = *w.PresentDayWaterDepth
	}
	return paleobath.PresentDaySubsidence(w, waterDepth)
}

func openOutput(cfg *Cfg) (*os.File, error) {
	path := cfg.GetString("OutputFile")
	if path == "" {
		return os.Stdout, nil
	}
	return os.Create(path)
}

func logWarnings(diag paleobath.Diagnostics) {
	for _, w := range diag.Warnings {
		log.Println("paleobath warning:", w)
	}
}

// amendBaseLayerAge picks AddBaseLayer/Amend's bottomAge argument per its
// doc comment: crust age for oceanic backtrack, rift-start age for
// continental backtrack, or the deepest recorded unit's bottom age
// otherwise (backstrip, or a continental site with no RiftStart).
func amendBaseLayerAge(w *paleobath.Well, backtrack bool) float64 {
	if backtrack {
		if w.Crust == paleobath.Oceanic {
			return w.CrustAge
		}
		if w.RiftStart != nil {
			return *w.RiftStart
		}
	}
	if len(w.Units) == 0 {
		return 0
	}
	return w.Units[len(w.Units)-1].BottomAge
}

// amendAndWrite implements the amended drill-site round trip: if
// AmendedSiteFile is configured, optionally synthesize a base layer (when
// TotalSedimentThickness is configured) via the pure-transform Well.Amend,
// then write the result with iofmt.WriteSiteFile. w is never mutated.
func amendAndWrite(cfg *Cfg, w *paleobath.Well, reg *paleobath.Registry, backtrack bool) error {
	path := cfg.GetString("AmendedSiteFile")
	if path == "" {
		return nil
	}

	amended := w
	if total := cfg.GetFloat64("TotalSedimentThickness"); total > 0 {
		lith := paleobath.DefaultShale
		if name := cfg.GetString("BaseLithology"); name != "" {
			l, err := reg.Lookup(name)
			if err != nil {
				return err
			}
			lith = l
		}
		cl := &paleobath.CompositeLithology{
			Components: []paleobath.Component{{Name: lith.Name, Fraction: 1}},
			Effective:  lith,
		}
		a, warn := w.Amend(total, amendBaseLayerAge(w, backtrack), cl)
		if warn != nil {
			log.Println("paleobath warning:", warn)
		}
		amended = a
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("paleobath: creating AmendedSiteFile: %w", err)
	}
	defer f.Close()
	return iofmt.WriteSiteFile(f, amended)
}

// runBacktrack drives the backtrack subcommand: load registry, site, and
// optional sea-level/age-depth models, run Backtrack, and write the
// column-selectable output table.
func runBacktrack(cfg *Cfg) error {
	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}
	w, err := loadWell(cfg, reg)
	if err != nil {
		return err
	}
	seaLevel, err := loadSeaLevel(cfg)
	if err != nil {
		return err
	}
	if err := amendAndWrite(cfg, w, reg, true); err != nil {
		return err
	}

	dynTopo, err := loadDynamicTopography(cfg)
	if err != nil {
		return err
	}

	s0 := presentDaySubsidence(cfg, w)
	btCfg, err := backtrackConfig(cfg, w, s0, seaLevel, dynTopo)
	if err != nil {
		return err
	}

	points, diag, err := paleobath.Backtrack(w, btCfg, s0)
	if err != nil {
		return err
	}
	logWarnings(diag)

	cols, err := iofmt.ParseColumns(cfg.GetStringSlice("OutputColumns"))
	if err != nil {
		return err
	}
	out, err := openOutput(cfg)
	if err != nil {
		return err
	}
	if out != os.Stdout {
		defer out.Close()
	}
	return iofmt.EncodeBacktrack(out, w, points, cols)
}

// backtrackConfig assembles the per-site BacktrackConfig: the oceanic
// branch bakes the site's anomalous-crust offset into the age-depth
// model, the continental branch carries the rift constants; the sea-level
// and dynamic-topography models are shared across sites.
func backtrackConfig(cfg *Cfg, w *paleobath.Well, s0 float64, seaLevel *paleobath.SeaLevelModel, dynTopo *paleobath.DynamicTopographyModel) (paleobath.BacktrackConfig, error) {
	btCfg := paleobath.BacktrackConfig{SeaLevel: seaLevel, DynamicTopography: dynTopo}
	if w.Crust == paleobath.Oceanic {
		model, err := ageDepthModel(cfg)
		if err != nil {
			return btCfg, err
		}
		delta := paleobath.AnomalousCrustOffset(model, w.CrustAge, s0)
		btCfg.AgeDepth = paleobath.OffsetModel{Base: model, Delta: delta}
	} else {
		rc := paleobath.DefaultRiftConstants
		rc.YcPresent = cfg.GetFloat64("CrustalThickness")
		rc.YL = cfg.GetFloat64("LithosphereThickness")
		btCfg.RiftConstants = rc
	}
	return btCfg, nil
}

// readSiteList reads a file listing one drill-site file path per line,
// skipping blanks and "#" comments.
func readSiteList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("paleobath: opening SiteListFile: %w", err)
	}
	defer f.Close()
	var paths []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := sc.Err(); err != nil {
		return nil, paleobath.BadInputFormatErr{Source: "site list", Reason: err.Error()}
	}
	if len(paths) == 0 {
		return nil, paleobath.BadInputFormatErr{Source: "site list", Reason: "no site files listed"}
	}
	return paths, nil
}

// runGrid drives the grid subcommand: load the shared registry and
// models once, backtrack every listed drill site concurrently, and write
// the results in input order, one "# Site = path" block per site.
func runGrid(cfg *Cfg) error {
	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}
	seaLevel, err := loadSeaLevel(cfg)
	if err != nil {
		return err
	}
	dynTopo, err := loadDynamicTopography(cfg)
	if err != nil {
		return err
	}

	listPath := cfg.GetString("SiteListFile")
	if listPath == "" {
		return fmt.Errorf("paleobath: SiteListFile must be specified")
	}
	paths, err := readSiteList(listPath)
	if err != nil {
		return err
	}

	points := make([]paleobath.GridPoint, 0, len(paths))
	wells := make([]*paleobath.Well, 0, len(paths))
	for _, sitePath := range paths {
		f, err := os.Open(sitePath)
		if err != nil {
			return fmt.Errorf("paleobath: opening site file %s: %w", sitePath, err)
		}
		w, err := iofmt.ReadSiteFile(f)
		f.Close()
		if err != nil {
			return err
		}
		if err := w.ResolveLithologies(reg); err != nil {
			return err
		}
		if err := w.Validate(); err != nil {
			return err
		}
		s0 := presentDaySubsidence(cfg, w)
		siteCfg, err := backtrackConfig(cfg, w, s0, seaLevel, dynTopo)
		if err != nil {
			return err
		}
		points = append(points, paleobath.GridPoint{Well: w, S0: s0, Config: &siteCfg})
		wells = append(wells, w)
	}

	gridder := paleobath.NewGridder(paleobath.BacktrackConfig{SeaLevel: seaLevel, DynamicTopography: dynTopo})
	results := gridder.Run(context.Background(), points)

	cols, err := iofmt.ParseColumns(cfg.GetStringSlice("OutputColumns"))
	if err != nil {
		return err
	}
	out, err := openOutput(cfg)
	if err != nil {
		return err
	}
	if out != os.Stdout {
		defer out.Close()
	}
	for i, res := range results {
		fmt.Fprintf(out, "# Site = %s\n", paths[i])
		if res.Err != nil {
			log.Println("paleobath warning: site", paths[i], "failed:", res.Err)
			continue
		}
		logWarnings(res.Diag)
		if err := iofmt.EncodeBacktrack(out, wells[i], res.Points, cols); err != nil {
			return err
		}
	}
	return nil
}

// runBackstrip drives the backstrip subcommand.
func runBackstrip(cfg *Cfg) error {
	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}
	w, err := loadWell(cfg, reg)
	if err != nil {
		return err
	}
	seaLevel, err := loadSeaLevel(cfg)
	if err != nil {
		return err
	}
	if err := amendAndWrite(cfg, w, reg, false); err != nil {
		return err
	}

	points, diag, err := paleobath.Backstrip(w, paleobath.BackstripConfig{SeaLevel: seaLevel})
	if err != nil {
		return err
	}
	logWarnings(diag)

	cols, err := iofmt.ParseColumns(cfg.GetStringSlice("OutputColumns"))
	if err != nil {
		return err
	}
	out, err := openOutput(cfg)
	if err != nil {
		return err
	}
	if out != os.Stdout {
		defer out.Close()
	}
	return iofmt.EncodeBackstrip(out, w, points, cols)
}
