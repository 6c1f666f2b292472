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

// Command isocor is a command-line interface for correcting mass-spectrometry
// isotopologue measurements for natural abundance and tracer purity.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/isocor-dev/isocor"
	"github.com/isocor-dev/isocor/internal/batch"
	"github.com/isocor-dev/isocor/internal/config"
	"github.com/isocor-dev/isocor/internal/tables"
)

func main() {
	cfg := config.New()
	cfg.CorrectCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCorrect(cmd, cfg)
	}
	cfg.BatchCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd, cfg)
	}

	if err := cfg.Root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCorrect(cmd *cobra.Command, cfg *config.Cfg) error {
	table, err := tables.LoadIsotopes(cfg.GetString("isotope-table"))
	if err != nil {
		return err
	}
	values, err := parseFloatList(cfg.GetString("values"))
	if err != nil {
		return fmt.Errorf("isocor: parsing --values: %w", err)
	}
	purity, err := parseFloatList(cfg.GetString("purity"))
	if err != nil {
		return fmt.Errorf("isocor: parsing --purity: %w", err)
	}

	req := isocor.Request{
		Table:             table,
		MetaboliteFormula: cfg.GetString("metabolite"),
		DerivativeFormula: cfg.GetString("derivative"),
		Measured:          values,
		Tracer: isocor.TracerConfig{
			Element:            cfg.GetString("tracer"),
			Purity:             purity,
			ExcludeTracerNatab: cfg.GetBool("exclude-tracer-natab"),
		},
		WantMeanEnrichment: cfg.GetBool("mean-enrichment"),
	}

	result, err := isocor.Correct(cmd.Context(), req)
	if err != nil {
		if result == nil {
			return err
		}
		logrus.WithError(err).Warn("correction completed with a warning")
	}

	return writeRow(cfg.GetString("output"), tables.ResultRow{Name: "correct", Result: result, Err: nil})
}

func runBatch(cmd *cobra.Command, cfg *config.Cfg) error {
	table, err := tables.LoadIsotopes(cfg.GetString("isotope-table"))
	if err != nil {
		return err
	}
	measurements, err := tables.LoadMeasurements(cfg.GetString("measurements"))
	if err != nil {
		return err
	}

	db := make(tables.Database)
	if path := cfg.GetString("metabolite-db"); path != "" {
		metaboliteDB, err := tables.LoadDatabase(path)
		if err != nil {
			return err
		}
		for k, v := range metaboliteDB {
			db[k] = v
		}
	}
	if path := cfg.GetString("derivative-db"); path != "" {
		derivativeDB, err := tables.LoadDatabase(path)
		if err != nil {
			return err
		}
		for k, v := range derivativeDB {
			db[k] = v
		}
	}

	purity, err := parseFloatList(cfg.GetString("purity"))
	if err != nil {
		return fmt.Errorf("isocor: parsing --purity: %w", err)
	}

	batchCfg := batch.Config{
		Tracer: isocor.TracerConfig{
			Element:            cfg.GetString("tracer"),
			Purity:             purity,
			ExcludeTracerNatab: cfg.GetBool("exclude-tracer-natab"),
		},
		WantMeanEnrichment: cfg.GetBool("mean-enrichment"),
		Workers:            cfg.GetInt("workers"),
	}

	rows := batch.Run(cmd.Context(), table, db, measurements, batchCfg)

	out := cfg.GetString("output")
	if out == "" {
		out = "results.tsv"
	}
	return tables.WriteResults(out, rows)
}

func writeRow(path string, row tables.ResultRow) error {
	if path == "" {
		return tables.WriteResultsTo(os.Stdout, []tables.ResultRow{row})
	}
	return tables.WriteResults(path, []tables.ResultRow{row})
}

func parseFloatList(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", f, err)
		}
		out[i] = v
	}
	return out, nil
}
