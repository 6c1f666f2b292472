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

package isocor

import "gonum.org/v1/gonum/floats"

// sumTolerance is the tolerance used everywhere an abundance or purity
// vector is checked for summing to 1, per spec.md §3 and the Open
// Questions note in §9 recommending 1e-9 over the source's brittle exact
// equality check.
const sumTolerance = 1e-9

// IsotopeTable maps an element symbol to its natural-abundance vector,
// ordered by ascending nominal mass-shift step, summing to 1. It is
// treated as immutable for the duration of a correction (spec.md §3) and
// may be shared across concurrent Correct calls without synchronization.
type IsotopeTable map[string][]float64

// Validate checks every entry in t for the invariants spec.md §3
// requires: non-empty, non-negative, summing to 1 within sumTolerance.
// It returns IsotopeTableInvalid naming the first offending element.
func (t IsotopeTable) Validate() error {
	for elem, abund := range t {
		if len(abund) == 0 {
			return newError(IsotopeTableInvalid, "element %q has an empty abundance vector", elem)
		}
		sum := 0.0
		for _, a := range abund {
			if a < 0 {
				return newError(IsotopeTableInvalid, "element %q has a negative abundance entry", elem)
			}
			sum += a
		}
		if diff := sum - 1; diff > sumTolerance || diff < -sumTolerance {
			return newError(IsotopeTableInvalid, "element %q abundances sum to %g, not 1", elem, sum)
		}
	}
	return nil
}

// Lookup returns the abundance vector for element, wrapped as
// IsotopeTableInvalid if absent.
func (t IsotopeTable) Lookup(element string) ([]float64, error) {
	v, ok := t[element]
	if !ok {
		return nil, newError(IsotopeTableInvalid, "element %q not present in isotope table", element)
	}
	return v, nil
}

// TracerDelta returns k_e - 1 for the named tracer element, the maximum
// nominal mass shift per substituted atom (spec.md §3's "Delta").
func (t IsotopeTable) TracerDelta(tracer string) (int, error) {
	v, err := t.Lookup(tracer)
	if err != nil {
		return 0, err
	}
	if len(v) < 2 {
		return 0, newError(IsotopeTableInvalid,
			"tracer element %q must have at least 2 isotopes, has %d", tracer, len(v))
	}
	return len(v) - 1, nil
}

// ValidatePurity checks a purity vector p against the tracer's natural
// abundance vector shape and sums it to 1 within tolerance, per spec.md
// §4.3's PurityShapeMismatch / PuritySumInvalid errors.
func ValidatePurity(p []float64, tracerIsotopeCount int) error {
	if len(p) != tracerIsotopeCount {
		return newError(PurityShapeMismatch,
			"purity vector has length %d, want %d", len(p), tracerIsotopeCount)
	}
	for _, v := range p {
		if v < 0 {
			return newError(PuritySumInvalid, "purity vector has a negative entry")
		}
	}
	sum := floats.Sum(p)
	if diff := sum - 1; diff > sumTolerance || diff < -sumTolerance {
		return newError(PuritySumInvalid, "purity vector sums to %g, not 1", sum)
	}
	return nil
}
