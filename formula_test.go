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
	"errors"
	"reflect"
	"testing"
)

func testTable() IsotopeTable {
	return IsotopeTable{
		"C": {0.9893, 0.0107},
		"H": {1.0},
		"O": {1.0},
		"N": {1.0},
	}
}

func TestParseFormula(t *testing.T) {
	cases := []struct {
		in   string
		want Formula
	}{
		{"", Formula{}},
		{"C3H4O3", Formula{"C": 3, "H": 4, "O": 3}},
		{"C2", Formula{"C": 2}},
		{"C3H5O2N", Formula{"C": 3, "H": 5, "O": 2, "N": 1}},
		{" C3 H4 O3 ", Formula{"C": 3, "H": 4, "O": 3}},
		{"CC", Formula{"C": 2}}, // repeated symbols accumulate
	}
	for _, c := range cases {
		got, err := ParseFormula(c.in, testTable())
		if err != nil {
			t.Errorf("ParseFormula(%q) returned error: %v", c.in, err)
			continue
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("ParseFormula(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseFormulaUnknownElement(t *testing.T) {
	_, err := ParseFormula("Xx2", testTable())
	var cerr *CorrectionError
	if !errors.As(err, &cerr) || cerr.Kind != UnknownElement {
		t.Errorf("ParseFormula(%q) error = %v, want UnknownElement", "Xx2", err)
	}
}

func TestParseFormulaMalformed(t *testing.T) {
	_, err := ParseFormula("3C", testTable())
	var cerr *CorrectionError
	if !errors.As(err, &cerr) || cerr.Kind != MalformedFormula {
		t.Errorf("ParseFormula(%q) error = %v, want MalformedFormula", "3C", err)
	}
}

func TestTracerCount(t *testing.T) {
	f, _ := ParseFormula("C3H4O3", testTable())
	n, err := f.TracerCount("C")
	if err != nil || n != 3 {
		t.Errorf("TracerCount(C) = %d, %v, want 3, nil", n, err)
	}

	_, err = f.TracerCount("S")
	var cerr *CorrectionError
	if !errors.As(err, &cerr) || cerr.Kind != TracerAbsent {
		t.Errorf("TracerCount(S) error = %v, want TracerAbsent", err)
	}
}

func TestWithoutElement(t *testing.T) {
	f, _ := ParseFormula("C3H4O3", testTable())
	g := f.WithoutElement("C")
	if _, ok := g["C"]; ok {
		t.Errorf("WithoutElement(C) still has C: %v", g)
	}
	if g["H"] != 4 || g["O"] != 3 {
		t.Errorf("WithoutElement(C) = %v, want H:4 O:3 preserved", g)
	}
	if _, ok := f["C"]; !ok {
		t.Errorf("WithoutElement mutated the receiver")
	}
}
