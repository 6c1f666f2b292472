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

import "gonum.org/v1/gonum/mat"

// BuildCorrectionMatrix implements spec.md §4.3. It returns an M x (n+1)
// dense matrix whose column j encodes the expected mass-fraction pattern
// when exactly j of the n tracer positions carry the tracer isotope
// (distributed per purity p, convolved j times) and n-j carry the tracer
// element at natural abundance t (convolved n-j times, unless
// excludeTracerNatab is set, in which case that factor is omitted because
// the base MDV already excludes the tracer element per §4.2).
//
// base (the natural-abundance MDV of the non-tracer atoms) is the same
// *mat.Dense construction style emissions/slca/bea/matrix.go uses to
// assemble an economic input-output matrix column by column from
// independently computed vectors.
func BuildCorrectionMatrix(naturalMDV []float64, tracerAbundance []float64, purity []float64, n, m int, excludeTracerNatab bool) (*mat.Dense, error) {
	delta := len(tracerAbundance) - 1
	if n*delta+1 > m {
		return nil, newError(MeasurementTooShort,
			"n*Delta+1 = %d exceeds measurement length %d", n*delta+1, m)
	}
	if m > len(naturalMDV)+n*delta {
		return nil, newError(FragmentTooSmall,
			"measurement length %d exceeds len(mdv)+n*Delta = %d", m, len(naturalMDV)+n*delta)
	}
	if err := ValidatePurity(purity, len(tracerAbundance)); err != nil {
		return nil, err
	}

	base := truncateOrPad(naturalMDV, m)
	a := mat.NewDense(m, n+1, nil)

	for j := 0; j <= n; j++ {
		col := make([]float64, m)
		copy(col, base)

		for k := 0; k < j; k++ {
			col = truncateOrPad(convolve(col, purity), m)
		}
		if !excludeTracerNatab {
			for k := 0; k < n-j; k++ {
				col = truncateOrPad(convolve(col, tracerAbundance), m)
			}
		}
		a.SetCol(j, col)
	}
	return a, nil
}
