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

package tables

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/isocor-dev/isocor"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return path
}

func TestLoadIsotopes(t *testing.T) {
	path := writeTempFile(t, "isotopes.tsv", "C\t0.9893\t0.0107\n\nH\t1.0\nO\t1.0\n")
	table, err := LoadIsotopes(path)
	if err != nil {
		t.Fatalf("LoadIsotopes returned %v", err)
	}
	if len(table) != 3 {
		t.Fatalf("LoadIsotopes loaded %d elements, want 3", len(table))
	}
	if table["C"][0] != 0.9893 || table["C"][1] != 0.0107 {
		t.Errorf("table[C] = %v, want [0.9893 0.0107]", table["C"])
	}
}

func TestLoadIsotopesRejectsBadSum(t *testing.T) {
	path := writeTempFile(t, "isotopes.tsv", "C\t0.5\t0.4\n")
	if _, err := LoadIsotopes(path); err == nil {
		t.Errorf("LoadIsotopes should reject a non-normalized abundance vector")
	}
}

func TestLoadDatabaseOverride(t *testing.T) {
	path := writeTempFile(t, "db.tsv", "glucose\tC6H12O6\nglucose\tC6H12O6\t0\tInChI=1\n")
	db, err := LoadDatabase(path)
	if err != nil {
		t.Fatalf("LoadDatabase returned %v", err)
	}
	f, err := db.Lookup("glucose")
	if err != nil {
		t.Fatalf("Lookup returned %v", err)
	}
	if f != "C6H12O6" {
		t.Errorf("Lookup(glucose) = %q, want C6H12O6", f)
	}
	if db["glucose"].InChI != "InChI=1" {
		t.Errorf("later row should override: InChI = %q, want InChI=1", db["glucose"].InChI)
	}
}

func TestLoadMeasurements(t *testing.T) {
	path := writeTempFile(t, "measurements.tsv", "sample1\tC3H4O3\t\t1\t0\t0\t0\n")
	ms, err := LoadMeasurements(path)
	if err != nil {
		t.Fatalf("LoadMeasurements returned %v", err)
	}
	if len(ms) != 1 {
		t.Fatalf("LoadMeasurements loaded %d rows, want 1", len(ms))
	}
	if ms[0].Name != "sample1" || ms[0].Metabolite != "C3H4O3" {
		t.Errorf("measurement = %+v", ms[0])
	}
	want := []float64{1, 0, 0, 0}
	for i, v := range want {
		if ms[0].Values[i] != v {
			t.Errorf("Values[%d] = %g, want %g", i, ms[0].Values[i], v)
		}
	}
}

func TestWriteResultsRoundTrip(t *testing.T) {
	rows := []ResultRow{
		{Name: "sample1", Result: &isocor.Result{
			Distribution:   []float64{1, 0, 0, 0},
			Residuum:       []float64{0, 0, 0, 0},
			MeanEnrichment: 0,
			HasEnrichment:  true,
		}},
		{Name: "sample2", Err: errExample},
	}
	path := filepath.Join(t.TempDir(), "results.tsv")
	if err := WriteResults(path, rows); err != nil {
		t.Fatalf("WriteResults returned %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading results: %v", err)
	}
	if len(data) == 0 {
		t.Errorf("WriteResults produced an empty file")
	}
}

var errExample = &testError{"boom"}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }
