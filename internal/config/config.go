/*
Copyright © 2026 the IsoCor authors.
This file is part of IsoCor.

IsoCor is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

IsoCor is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with IsoCor.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package config wires the IsoCor command-line flags, environment
// variables, and an optional TOML configuration file together through
// viper, the same layering inmaputil.Cfg gives InMAP's commands.
package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/isocor-dev/isocor"
)

// Cfg holds the resolved configuration for a single invocation of the
// isocor command.
type Cfg struct {
	*viper.Viper

	inputFiles  []string
	outputFiles []string

	Root, CorrectCmd, BatchCmd, VersionCmd *cobra.Command
}

// InputFiles returns the names of the configuration options that hold
// input file paths.
func (cfg *Cfg) InputFiles() []string { return cfg.inputFiles }

// OutputFiles returns the names of the configuration options that hold
// output file paths.
func (cfg *Cfg) OutputFiles() []string { return cfg.outputFiles }

type option struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
	isInputFile            bool
	isOutputFile           bool
}

// New builds the command tree and binds every configuration option to
// the appropriate subcommands' flags. The returned Cfg's Root command has
// not yet been executed; callers run cfg.Root.Execute().
func New() *Cfg {
	cfg := &Cfg{Viper: viper.New()}

	cfg.Root = &cobra.Command{
		Use:   "isocor",
		Short: "Corrects mass-spectrometry isotopologue measurements for natural abundance and tracer purity.",
		Long: `isocor corrects raw mass isotopologue distributions for the distorting
effects of naturally occurring isotopes and imperfect tracer purity.
Use the subcommands below to run a single correction or a batch of them.

Configuration can be set with command-line flags, a TOML configuration
file (--config), or environment variables prefixed with ISOCOR_. Refer
to https://github.com/lnashier/viper for the full layering rules.`,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return setConfig(cfg)
		},
	}

	cfg.VersionCmd = &cobra.Command{
		Use:               "version",
		Short:             "Print the version number",
		DisableAutoGenTag: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("isocor v%s\n", isocor.Version)
		},
	}

	cfg.CorrectCmd = &cobra.Command{
		Use:               "correct",
		Short:             "Run a single correction from flags.",
		Long:              "correct reads one measurement vector from flags and writes the corrected result to standard output or --output.",
		DisableAutoGenTag: true,
	}

	cfg.BatchCmd = &cobra.Command{
		Use:               "batch",
		Short:             "Correct every row of a measurement file in parallel.",
		Long:              "batch reads a measurement TSV, resolves each row against the metabolite/derivative databases, and writes a result TSV.",
		DisableAutoGenTag: true,
	}

	cfg.Root.AddCommand(cfg.VersionCmd, cfg.CorrectCmd, cfg.BatchCmd)

	options := []option{
		{
			name:        "config",
			usage:       "config specifies the path to a TOML configuration file.",
			defaultVal:  "",
			isInputFile: true,
			flagsets:    []*pflag.FlagSet{cfg.Root.PersistentFlags()},
		},
		{
			name:        "isotope-table",
			usage:       "isotope-table specifies the path to the isotope abundance TSV (spec.md §6).",
			defaultVal:  "",
			isInputFile: true,
			flagsets:    []*pflag.FlagSet{cfg.CorrectCmd.Flags(), cfg.BatchCmd.Flags()},
		},
		{
			name:        "metabolite-db",
			usage:       "metabolite-db specifies the path to the metabolite formula database.",
			defaultVal:  "",
			isInputFile: true,
			flagsets:    []*pflag.FlagSet{cfg.BatchCmd.Flags()},
		},
		{
			name:        "derivative-db",
			usage:       "derivative-db specifies the path to the derivative formula database.",
			defaultVal:  "",
			isInputFile: true,
			flagsets:    []*pflag.FlagSet{cfg.BatchCmd.Flags()},
		},
		{
			name:        "measurements",
			usage:       "measurements specifies the path to the measurement TSV for batch mode.",
			defaultVal:  "",
			isInputFile: true,
			flagsets:    []*pflag.FlagSet{cfg.BatchCmd.Flags()},
		},
		{
			name:       "metabolite",
			usage:      "metabolite specifies the elemental formula of the metabolite for a single correction.",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cfg.CorrectCmd.Flags()},
		},
		{
			name:       "derivative",
			usage:      "derivative specifies the elemental formula of the derivatization moiety, if any.",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cfg.CorrectCmd.Flags()},
		},
		{
			name:       "values",
			usage:      "values specifies the raw mass-fraction intensities as a comma-separated list for a single correction.",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cfg.CorrectCmd.Flags()},
		},
		{
			name:       "tracer",
			usage:      "tracer specifies the tracer element symbol (spec.md §3 Tracer configuration).",
			defaultVal: "C",
			flagsets:   []*pflag.FlagSet{cfg.CorrectCmd.Flags(), cfg.BatchCmd.Flags()},
		},
		{
			name:       "purity",
			usage:      "purity specifies the tracer purity vector as a comma-separated list summing to 1.",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cfg.CorrectCmd.Flags(), cfg.BatchCmd.Flags()},
		},
		{
			name:       "exclude-tracer-natab",
			usage:      "exclude-tracer-natab excludes the tracer element's natural abundance from the correction matrix (spec.md §4.3).",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{cfg.CorrectCmd.Flags(), cfg.BatchCmd.Flags()},
		},
		{
			name:       "mean-enrichment",
			usage:      "mean-enrichment requests the mean tracer enrichment in the post-processed result (spec.md §4.5).",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{cfg.CorrectCmd.Flags(), cfg.BatchCmd.Flags()},
		},
		{
			name:         "output",
			usage:        "output specifies where to write the result. If unset, correct writes to standard output and batch writes results.tsv.",
			defaultVal:   "",
			isOutputFile: true,
			flagsets:     []*pflag.FlagSet{cfg.CorrectCmd.Flags(), cfg.BatchCmd.Flags()},
		},
		{
			name:       "workers",
			usage:      "workers caps the number of goroutines used by batch. A value <= 0 uses runtime.GOMAXPROCS(0).",
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{cfg.BatchCmd.Flags()},
		},
	}

	cfg.SetEnvPrefix("ISOCOR")
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()

	for _, opt := range options {
		if opt.isInputFile {
			cfg.inputFiles = append(cfg.inputFiles, opt.name)
		}
		if opt.isOutputFile {
			cfg.outputFiles = append(cfg.outputFiles, opt.name)
		}
		for i, set := range opt.flagsets {
			if i != 0 {
				set.AddFlag(opt.flagsets[0].Lookup(opt.name))
				continue
			}
			switch v := opt.defaultVal.(type) {
			case string:
				if opt.shorthand == "" {
					set.String(opt.name, v, opt.usage)
				} else {
					set.StringP(opt.name, opt.shorthand, v, opt.usage)
				}
			case bool:
				if opt.shorthand == "" {
					set.Bool(opt.name, v, opt.usage)
				} else {
					set.BoolP(opt.name, opt.shorthand, v, opt.usage)
				}
			case int:
				if opt.shorthand == "" {
					set.Int(opt.name, v, opt.usage)
				} else {
					set.IntP(opt.name, opt.shorthand, v, opt.usage)
				}
			default:
				panic(fmt.Errorf("isocor: invalid default type for option %s: %T", opt.name, opt.defaultVal))
			}
			cfg.BindPFlag(opt.name, set.Lookup(opt.name))
		}
	}

	return cfg
}

// setConfig reads the configuration file named by the "config" option, if
// any was set.
func setConfig(cfg *Cfg) error {
	if path := cfg.GetString("config"); path != "" {
		cfg.SetConfigFile(path)
		if err := cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("isocor: reading configuration file: %w", err)
		}
	}
	return nil
}

// Dump renders the options named in keys, read from cfg, as TOML, so the
// flags and environment variables in effect can be saved as a reusable
// config file. No subcommand or flag of the isocor command calls it.
func Dump(cfg *Cfg, keys []string) (string, error) {
	values := make(map[string]interface{}, len(keys))
	for _, k := range keys {
		values[k] = cfg.Get(k)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(values); err != nil {
		return "", fmt.Errorf("isocor: encoding configuration as TOML: %w", err)
	}
	return buf.String(), nil
}
