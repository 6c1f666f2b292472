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

import (
	"math"
	"testing"
)

const testTolerance = 1e-9

func TestConvolve(t *testing.T) {
	got := convolve([]float64{1, 2}, []float64{1, 1})
	want := []float64{1, 3, 2}
	if len(got) != len(want) {
		t.Fatalf("convolve length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > testTolerance {
			t.Errorf("convolve()[%d] = %g, want %g", i, got[i], want[i])
		}
	}
}

func TestBuildNaturalAbundanceMDVSumsToOne(t *testing.T) {
	table := testTable()
	metabolite, _ := ParseFormula("C3H4O3", table)
	mdv, err := BuildNaturalAbundanceMDV(table, metabolite, Formula{}, "C", true)
	if err != nil {
		t.Fatalf("BuildNaturalAbundanceMDV returned %v", err)
	}
	sum := 0.0
	for _, v := range mdv {
		if v < 0 {
			t.Errorf("MDV has a negative entry: %v", mdv)
		}
		sum += v
	}
	if math.Abs(sum-1) > 1e-6 {
		t.Errorf("MDV sums to %g, want 1", sum)
	}
}

// TestTracerExclusionEquivalence verifies spec.md §8's "Tracer exclusion
// flag" property: the §4.2 MDV equals that computed by explicitly
// removing the tracer element from the metabolite formula.
func TestTracerExclusionEquivalence(t *testing.T) {
	table := testTable()
	metabolite, _ := ParseFormula("C3H4O3", table)

	withFlag, err := BuildNaturalAbundanceMDV(table, metabolite, Formula{}, "C", true)
	if err != nil {
		t.Fatalf("BuildNaturalAbundanceMDV returned %v", err)
	}
	withoutTracer, err := BuildNaturalAbundanceMDV(table, metabolite.WithoutElement("C"), Formula{}, "C", true)
	if err != nil {
		t.Fatalf("BuildNaturalAbundanceMDV returned %v", err)
	}
	if len(withFlag) != len(withoutTracer) {
		t.Fatalf("length mismatch: %d vs %d", len(withFlag), len(withoutTracer))
	}
	for i := range withFlag {
		if math.Abs(withFlag[i]-withoutTracer[i]) > 1e-12 {
			t.Errorf("MDV[%d] = %g, want %g", i, withFlag[i], withoutTracer[i])
		}
	}
}

// TestExchangeability verifies spec.md §8: permuting element iteration
// order yields bitwise-identical (to round-off) MDVs. Go's map iteration
// is already randomized per run, so repeated calls exercise distinct
// traversal orders.
func TestExchangeability(t *testing.T) {
	table := testTable()
	metabolite, _ := ParseFormula("C3H5O2N", table)
	derivative, _ := ParseFormula("H4", table)

	var first []float64
	for i := 0; i < 20; i++ {
		mdv, err := BuildNaturalAbundanceMDV(table, metabolite, derivative, "C", false)
		if err != nil {
			t.Fatalf("BuildNaturalAbundanceMDV returned %v", err)
		}
		if first == nil {
			first = mdv
			continue
		}
		if len(mdv) != len(first) {
			t.Fatalf("MDV length varies across calls: %d vs %d", len(mdv), len(first))
		}
		for j := range mdv {
			if math.Abs(mdv[j]-first[j]) > 1e-12 {
				t.Errorf("MDV[%d] = %g on a later call, want %g (order should not matter)", j, mdv[j], first[j])
			}
		}
	}
}

func TestBuildNaturalAbundanceMDVUnknownElement(t *testing.T) {
	table := testTable()
	_, err := BuildNaturalAbundanceMDV(table, Formula{"Si": 2}, Formula{}, "C", true)
	if err == nil {
		t.Errorf("BuildNaturalAbundanceMDV with an element absent from the table should fail")
	}
}
