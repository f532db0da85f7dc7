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

// Package paleobathutil wires the cobra/viper command-line front end to
// the paleobath core: backtrack, backstrip, grid, and version.
package paleobathutil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Version is the build version reported by the version subcommand.
var Version = "dev"

// Cfg holds configuration information: a *viper.Viper embedded so
// flag/config-file/environment-variable values are all retrievable
// through one accessor, plus the command tree itself.
type Cfg struct {
	*viper.Viper

	Root, backtrackCmd, backstripCmd, gridCmd, versionCmd *cobra.Command
}

// option describes one configuration variable and which command(s) it is
// registered on, via an options-table-plus-registration loop rather than
// one ad hoc pflag call per variable.
type option struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

// Root is the root command of the configuration that NewCfg builds once
// at package init; cmd/paleobath calls its Execute.
var Root *cobra.Command

func init() {
	cfg := NewCfg()
	Root = cfg.Root
}

// NewCfg builds the command tree and registers every configuration option
// against the command(s) it applies to.
func NewCfg() *Cfg {
	cfg := &Cfg{Viper: viper.New()}
	cfg.SetEnvPrefix("PALEOBATH")
	cfg.AutomaticEnv()

	cfg.Root = &cobra.Command{
		Use:   "paleobath",
		Short: "Reconstructs paleo water depth and tectonic subsidence at a drill site.",
		Long: `paleobath reconstructs the history of water depth (or tectonic subsidence)
at a drill site by combining porosity-driven sediment decompaction with a
tectonic subsidence model for oceanic or continental crust, with optional
corrections for dynamic topography and eustatic sea level.

Configuration can be set via a configuration file (--config), command-line
flags, or environment variables in the form 'PALEOBATH_var'.`,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return setConfig(cfg)
		},
	}

	cfg.versionCmd = &cobra.Command{
		Use:               "version",
		Short:             "Print the version number",
		DisableAutoGenTag: true,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("paleobath v%s\n", Version)
		},
	}

	cfg.backtrackCmd = &cobra.Command{
		Use:               "backtrack",
		Short:             "Backtrack a drill site: solve for paleo water depth from a subsidence model.",
		Long:              `backtrack reads a drill-site and lithology file and writes a decompacted-column table with paleo water depth at each stratigraphic age.`,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBacktrack(cfg)
		},
	}

	cfg.backstripCmd = &cobra.Command{
		Use:               "backstrip",
		Short:             "Backstrip a drill site: solve for tectonic subsidence from recorded paleo water depths.",
		Long:              `backstrip reads a drill-site file carrying recorded min/max paleo water depths and writes the tectonic subsidence bracket implied at each stratigraphic age.`,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackstrip(cfg)
		},
	}

	cfg.gridCmd = &cobra.Command{
		Use:               "grid",
		Short:             "Backtrack many drill sites concurrently, one result block per site.",
		Long:              `grid reads a list of drill-site files and runs the backtrack reconstruction for each concurrently, sharing the lithology registry, sea-level curve, and dynamic-topography model across workers.`,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrid(cfg)
		},
	}

	cfg.Root.AddCommand(cfg.versionCmd, cfg.backtrackCmd, cfg.backstripCmd, cfg.gridCmd)

	registerOptions(cfg)
	return cfg
}

// registerOptions registers every configuration variable paleobath
// accepts on the command flag set(s) it is bound to, and returns the list.
func registerOptions(cfg *Cfg) []option {
	common := []*pflag.FlagSet{cfg.backtrackCmd.Flags(), cfg.backstripCmd.Flags(), cfg.gridCmd.Flags()}
	backtracking := []*pflag.FlagSet{cfg.backtrackCmd.Flags(), cfg.gridCmd.Flags()}
	siteOnly := []*pflag.FlagSet{cfg.backtrackCmd.Flags(), cfg.backstripCmd.Flags()}
	gridOnly := []*pflag.FlagSet{cfg.gridCmd.Flags()}

	opts := []option{
		{
			name:       "config",
			usage:      "config specifies the configuration file location.",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cfg.Root.PersistentFlags()},
		},
		{
			name:       "SiteFile",
			usage:      "SiteFile is the path to the drill-site input file.",
			defaultVal: "",
			flagsets:   siteOnly,
		},
		{
			name:       "SiteListFile",
			usage:      "SiteListFile is a file listing one drill-site file path per line, all of which the grid command backtracks concurrently.",
			defaultVal: "",
			flagsets:   gridOnly,
		},
		{
			name:       "LithologyFile",
			usage:      "LithologyFile is the path to the primary lithology registry file.",
			defaultVal: "",
			flagsets:   common,
		},
		{
			name:       "ExtendedLithologyFile",
			usage:      "ExtendedLithologyFile is an optional additional lithology file whose entries override LithologyFile's on name collision.",
			defaultVal: "",
			flagsets:   common,
		},
		{
			name:       "OutputFile",
			usage:      "OutputFile is the path to write the decompacted-column output table to.",
			defaultVal: "",
			flagsets:   common,
		},
		{
			name:       "OutputColumns",
			usage:      "OutputColumns selects and orders the output table's columns.",
			defaultVal: []string{"age", "water_depth", "tectonic_subsidence", "decompacted_thickness"},
			flagsets:   common,
		},
		{
			name:       "SeaLevelFile",
			usage:      "SeaLevelFile is an optional two-column (age, level) eustatic sea-level file.",
			defaultVal: "",
			flagsets:   common,
		},
		{
			name:       "AgeDepthModel",
			usage:      "AgeDepthModel selects the oceanic age-to-depth curve: GDH1, CROSBY_2007, RHCW18, or USER.",
			defaultVal: "GDH1",
			flagsets:   backtracking,
		},
		{
			name:       "AgeDepthTableFile",
			usage:      "AgeDepthTableFile is the user-supplied piecewise-linear age-depth table, required when AgeDepthModel=USER.",
			defaultVal: "",
			flagsets:   backtracking,
		},
		{
			name:       "PresentDayWaterDepth",
			usage:      "PresentDayWaterDepth is the observed present-day water depth at the site (m, positive down); together with the column's isostatic correction it yields the present-day subsidence S0 anchoring the anomalous-crust offset (oceanic) or beta estimation (continental). A PresentDayWaterDepth site-file header overrides it per site.",
			defaultVal: 0.0,
			flagsets:   backtracking,
		},
		{
			name:       "DynamicTopographyManifest",
			usage:      "DynamicTopographyManifest is an optional dynamic-topography model descriptor: mantle-frame grid files with ages, a static-polygons file, and rotation file(s).",
			defaultVal: "",
			flagsets:   backtracking,
		},
		{
			name:       "DynamicTopographyVariable",
			usage:      "DynamicTopographyVariable names the 2-D data variable in each dynamic-topography grid file.",
			defaultVal: "z",
			flagsets:   backtracking,
		},
		{
			name:       "TotalSedimentThickness",
			usage:      "TotalSedimentThickness is the present-day total sediment thickness at the site (m); when greater than the recorded column's thickness, a base layer of BaseLithology is synthesized down to it in the amended site output.",
			defaultVal: 0.0,
			flagsets:   common,
		},
		{
			name:       "BaseLithology",
			usage:      "BaseLithology names the lithology used for the synthesized base layer; falls back to the built-in default shale if unset.",
			defaultVal: "",
			flagsets:   common,
		},
		{
			name:       "AmendedSiteFile",
			usage:      "AmendedSiteFile is an optional path to write the amended drill-site file (recorded column plus any synthesized base layer) to.",
			defaultVal: "",
			flagsets:   common,
		},
		{
			name:       "CrustalThickness",
			usage:      "CrustalThickness is the present-day (post-rift) continental crustal thickness y_c (m), continental sites only.",
			defaultVal: 30000.0,
			flagsets:   backtracking,
		},
		{
			name:       "LithosphereThickness",
			usage:      "LithosphereThickness is the continental lithospheric thickness y_L (m), continental sites only.",
			defaultVal: 125000.0,
			flagsets:   backtracking,
		},
	}

	for _, opt := range opts {
		registerOption(cfg, opt)
	}
	return opts
}

func registerOption(cfg *Cfg, opt option) {
	for _, set := range opt.flagsets {
		switch v := opt.defaultVal.(type) {
		case string:
			set.String(opt.name, v, opt.usage)
		case []string:
			set.StringSlice(opt.name, v, opt.usage)
		case float64:
			set.Float64(opt.name, v, opt.usage)
		case bool:
			set.Bool(opt.name, v, opt.usage)
		default:
			panic(fmt.Errorf("paleobathutil: invalid default type %T for option %s", v, opt.name))
		}
		cfg.BindPFlag(opt.name, set.Lookup(opt.name))
	}
}

// setConfig finds and reads in the configuration file, if one was
// specified.
func setConfig(cfg *Cfg) error {
	if cfgpath := cfg.GetString("config"); cfgpath != "" {
		cfg.SetConfigFile(cfgpath)
		if err := cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("paleobath: problem reading configuration file: %v", err)
		}
	}
	return nil
}
