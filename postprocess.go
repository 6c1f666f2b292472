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

// Result is the output of a single Correct call: the corrected
// isotopologue distribution, the normalized fit residuum, and an
// optional mean enrichment. See spec.md §3 "Result".
type Result struct {
	Distribution   []float64
	Residuum       []float64
	MeanEnrichment float64
	HasEnrichment  bool
}

// postProcess implements spec.md §4.5: normalize the raw solver output x
// to a probability distribution, scale the residual to a fraction of
// measured signal, and optionally compute mean enrichment.
func postProcess(x, measured, ax []float64, wantMeanEnrichment bool) (*Result, error) {
	sumX := floats.Sum(x)
	sumV := floats.Sum(measured)

	d := make([]float64, len(x))
	if sumX > 0 {
		for i, xi := range x {
			if xi < 0 {
				xi = 0
			}
			d[i] = xi / sumX
		}
	}

	residuum := make([]float64, len(measured))
	for i := range measured {
		e := measured[i] - ax[i]
		if sumV > 0 {
			residuum[i] = e / sumV
		} else {
			residuum[i] = e
		}
	}

	res := &Result{Distribution: d, Residuum: residuum}

	if sumX > 0 {
		dSum := floats.Sum(d)
		if diff := dSum - 1; diff > 1e-6 || diff < -1e-6 {
			return nil, newError(InternalInvariant, "normalized distribution sums to %g, not 1", dSum)
		}
	}

	if wantMeanEnrichment && sumX > 0 {
		n := len(d) - 1
		if n > 0 {
			me := 0.0
			for i, di := range d {
				me += float64(i) * di
			}
			me /= float64(n)
			res.MeanEnrichment = me
			res.HasEnrichment = true
		}
	}
	return res, nil
}
