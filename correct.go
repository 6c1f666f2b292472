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

// Package isocor corrects raw mass-spectrometry isotopologue intensities
// for natural isotopic abundance and imperfect tracer purity. See
// spec.md for the full specification; Correct is the single entry point.
package isocor

import (
	"context"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Version identifies this implementation of the correction core.
const Version = "1.0.0"

// TracerConfig bundles the tracer-specific inputs to Correct: which
// element is the tracer, its purity vector, and whether the tracer's own
// natural abundance should be excluded from correction. See spec.md §3
// "Tracer configuration".
type TracerConfig struct {
	Element            string
	Purity             []float64
	ExcludeTracerNatab bool
}

// Request bundles every input to a single Correct call. Requests are
// immutable for the duration of the call and own no state shared with
// the result (spec.md §3 "Lifecycle").
type Request struct {
	Table              IsotopeTable
	MetaboliteFormula  string
	DerivativeFormula  string
	Measured           []float64
	Tracer             TracerConfig
	WantMeanEnrichment bool
}

// Correct runs the full pipeline of spec.md §2 against req: parse
// formulas, validate the tracer is present, build the natural-abundance
// MDV and correction matrix, solve the non-negative least squares fit,
// and post-process the result. It is a pure, stateless function of its
// inputs (spec.md §4.6 "State machine") safe to call concurrently from
// independent goroutines provided each holds its own Request.
//
// Checks run in the order spec.md §4.6 specifies: element/formula
// validity, tracer presence, measurement length, purity shape/sum,
// MDV, matrix, solve, post-process. Errors short-circuit deterministically.
func Correct(ctx context.Context, req Request) (*Result, error) {
	if err := req.Table.Validate(); err != nil {
		return nil, err
	}

	metabolite, err := ParseFormula(req.MetaboliteFormula, req.Table)
	if err != nil {
		return nil, err
	}
	var derivative Formula
	if req.DerivativeFormula != "" {
		derivative, err = ParseFormula(req.DerivativeFormula, req.Table)
		if err != nil {
			return nil, err
		}
	} else {
		derivative = Formula{}
	}

	n, err := metabolite.TracerCount(req.Tracer.Element)
	if err != nil {
		return nil, err
	}

	if err := validateMeasurement(req.Measured); err != nil {
		return nil, err
	}
	m := len(req.Measured)

	tracerAbundance, err := req.Table.Lookup(req.Tracer.Element)
	if err != nil {
		return nil, err
	}

	// BuildCorrectionMatrix checks the measurement length before it
	// validates the purity vector, which keeps the check order above.
	naturalMDV, err := BuildNaturalAbundanceMDV(req.Table, metabolite, derivative, req.Tracer.Element, req.Tracer.ExcludeTracerNatab)
	if err != nil {
		return nil, err
	}

	a, err := BuildCorrectionMatrix(naturalMDV, tracerAbundance, req.Tracer.Purity, n, m, req.Tracer.ExcludeTracerNatab)
	if err != nil {
		return nil, err
	}

	sumV := floats.Sum(req.Measured)
	if sumV == 0 {
		// spec.md §4.4: zero-signal short-circuits to x=0 without
		// invoking the solver.
		x := make([]float64, n+1)
		return postProcess(x, req.Measured, make([]float64, m), req.WantMeanEnrichment)
	}

	solved, err := solveNNLS(ctx, a, req.Measured)
	if err != nil {
		return nil, err
	}

	ax := mat.NewVecDense(m, nil)
	ax.MulVec(a, mat.NewVecDense(n+1, solved.X))
	axSlice := make([]float64, m)
	for i := 0; i < m; i++ {
		axSlice[i] = ax.AtVec(i)
	}

	result, err := postProcess(solved.X, req.Measured, axSlice, req.WantMeanEnrichment)
	if err != nil {
		return nil, err
	}

	if !solved.Converged {
		return result, wrapError(SolverDidNotConverge, nil,
			"solver did not converge within %d iterations", MaxSolverIterations)
	}
	return result, nil
}

// validateMeasurement enforces spec.md §3's "no NaN, no missing values"
// invariant. Negative entries are tolerated per spec (a warning is the
// caller's responsibility, e.g. internal/batch, not the core's).
func validateMeasurement(v []float64) error {
	if len(v) == 0 {
		return newError(MeasurementTooShort, "measurement vector is empty")
	}
	for _, x := range v {
		if x != x { // NaN
			return newError(InternalInvariant, "measurement vector contains NaN")
		}
	}
	return nil
}
