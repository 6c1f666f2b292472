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

// Package batch drives many independent isocor.Correct calls over a
// measurement file, resolving each row's formulas against loaded
// metabolite/derivative databases. It is the concurrency-bearing
// collaborator spec.md §5 describes ("multiple correct calls may be
// executed in parallel by independent workers... the isotope table may
// be shared read-only without synchronization").
package batch

import (
	"context"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/isocor-dev/isocor"
	"github.com/isocor-dev/isocor/internal/tables"
)

// Config bundles the inputs to Run beyond the isotope table and
// measurement rows: which tracer to use and whether the front-end wants
// mean enrichment computed.
type Config struct {
	Tracer             isocor.TracerConfig
	WantMeanEnrichment bool
	// Workers caps the number of concurrent isocor.Correct calls. A
	// value <= 0 uses runtime.GOMAXPROCS(0), mirroring run.go's
	// Calculations worker-pool sizing.
	Workers int
}

// Run corrects every row in measurements, resolving each row's
// metabolite/derivative names against db (formulas are used directly if
// a row's Metabolite/Derivative field is not a registered name). Rows
// are processed by a bounded pool of goroutines, the same strided
// work-assignment shape as run.go's Calculations: each worker claims
// every Workers-th row so no row is ever touched by two goroutines.
func Run(ctx context.Context, table isocor.IsotopeTable, db tables.Database, measurements []tables.Measurement, cfg Config) []tables.ResultRow {
	nWorkers := cfg.Workers
	if nWorkers <= 0 {
		nWorkers = runtime.GOMAXPROCS(0)
	}
	if nWorkers > len(measurements) && len(measurements) > 0 {
		nWorkers = len(measurements)
	}

	results := make([]tables.ResultRow, len(measurements))
	var wg sync.WaitGroup
	wg.Add(nWorkers)
	for worker := 0; worker < nWorkers; worker++ {
		go func(worker int) {
			defer wg.Done()
			for i := worker; i < len(measurements); i += nWorkers {
				results[i] = correctOne(ctx, table, db, measurements[i], cfg)
			}
		}(worker)
	}
	wg.Wait()
	return results
}

func correctOne(ctx context.Context, table isocor.IsotopeTable, db tables.Database, m tables.Measurement, cfg Config) tables.ResultRow {
	metabolite := resolveFormula(db, m.Metabolite)
	derivative := resolveFormula(db, m.Derivative)

	logEntry := logrus.WithFields(logrus.Fields{"sample": m.Name})
	for _, v := range m.Values {
		if v < 0 {
			logEntry.Warn("measurement contains a negative intensity")
			break
		}
	}
	sum := 0.0
	for _, v := range m.Values {
		sum += v
	}
	if sum == 0 {
		logEntry.Warn("measurement sums to zero; solver will not be invoked")
	}

	res, err := isocor.Correct(ctx, isocor.Request{
		Table:              table,
		MetaboliteFormula:  metabolite,
		DerivativeFormula:  derivative,
		Measured:           m.Values,
		Tracer:             cfg.Tracer,
		WantMeanEnrichment: cfg.WantMeanEnrichment,
	})
	if err != nil {
		var cerr *isocor.CorrectionError
		if ce, ok := err.(*isocor.CorrectionError); ok {
			cerr = ce
		}
		if cerr != nil && cerr.Kind == isocor.SolverDidNotConverge {
			logEntry.Warn("solver did not converge; reporting best-effort result")
		} else {
			logEntry.WithError(err).Error("correction failed")
		}
	}
	return tables.ResultRow{Name: m.Name, Result: res, Err: err}
}

// resolveFormula returns db[name].Formula if name is a registered
// database entry, otherwise treats name as a literal formula string
// (including the empty string for "no derivative").
func resolveFormula(db tables.Database, name string) string {
	if name == "" {
		return ""
	}
	if f, err := db.Lookup(name); err == nil {
		return f
	}
	return name
}
