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

// convolve computes the full discrete convolution of u and v:
// out[k] = sum_{i+j=k} u[i]*v[j], with len(out) == len(u)+len(v)-1.
// This is the "full convolution" of spec.md §4.2, kept at full length;
// truncation is the caller's responsibility (spec.md §4.3).
func convolve(u, v []float64) []float64 {
	if len(u) == 0 || len(v) == 0 {
		return nil
	}
	out := make([]float64, len(u)+len(v)-1)
	for i, ui := range u {
		if ui == 0 {
			continue
		}
		for j, vj := range v {
			out[i+j] += ui * vj
		}
	}
	return out
}

// convolveRepeated applies convolve(mdv, abund) n times in succession,
// matching "n_e successive full discrete convolutions" from spec.md §4.2.
func convolveRepeated(mdv []float64, abund []float64, n int) []float64 {
	for i := 0; i < n; i++ {
		mdv = convolve(mdv, abund)
	}
	return mdv
}

// BuildNaturalAbundanceMDV implements spec.md §4.2: it convolves the
// per-element natural-abundance vectors of the metabolite atom counts
// (skipping the tracer element when excludeTracerNatab is true — note
// the tracer element is *always* skipped from the metabolite side; the
// flag's role is to also skip it, which is the same condition per the
// spec's step 2) with those of the derivative atom counts (which always
// include every element, tracer included), in any iteration order.
//
// Traversal order over map keys is intentionally not fixed: convolution
// is commutative and associative (spec.md §8 "Exchangeability"), so the
// result is invariant (to floating point round-off) regardless of Go's
// randomized map iteration order.
func BuildNaturalAbundanceMDV(table IsotopeTable, metabolite, derivative Formula, tracer string, excludeTracerNatab bool) ([]float64, error) {
	mdv := []float64{1.0}

	for elem, count := range metabolite {
		if count <= 0 {
			continue
		}
		if elem == tracer {
			// Per spec.md §4.2 step 2, the tracer element is excluded from
			// the metabolite's natural-abundance MDV regardless of the
			// excludeTracerNatab flag's literal value, since both branches
			// of the documented condition (e = e*, or excludeTracerNatab
			// && e = e*) reduce to the same skip.
			continue
		}
		abund, err := table.Lookup(elem)
		if err != nil {
			return nil, err
		}
		mdv = convolveRepeated(mdv, abund, count)
	}

	for elem, count := range derivative {
		if count <= 0 {
			continue
		}
		abund, err := table.Lookup(elem)
		if err != nil {
			return nil, err
		}
		mdv = convolveRepeated(mdv, abund, count)
	}

	sum := floats.Sum(mdv)
	if sum <= 0 {
		return nil, newError(InternalInvariant, "natural abundance MDV sums to %g", sum)
	}
	if diff := sum - 1; diff > 1e-6 || diff < -1e-6 {
		return nil, newError(InternalInvariant, "natural abundance MDV sums to %g, not 1", sum)
	}
	return mdv, nil
}

// truncateOrPad returns v right-padded with zeros or truncated to exactly
// length m, as used throughout spec.md §4.3.
func truncateOrPad(v []float64, m int) []float64 {
	out := make([]float64, m)
	copy(out, v)
	return out
}
