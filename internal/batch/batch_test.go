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

package batch

import (
	"context"
	"testing"

	"github.com/isocor-dev/isocor"
	"github.com/isocor-dev/isocor/internal/tables"
)

func testTable() isocor.IsotopeTable {
	return isocor.IsotopeTable{
		"C": {0.9893, 0.0107},
		"H": {0.999885, 0.000115},
		"O": {0.99757, 0.00038, 0.00205},
		"N": {0.99636, 0.00364},
	}
}

func TestRunResolvesFormulasAndParallelizes(t *testing.T) {
	db := tables.Database{
		"alanine": {Name: "alanine", Formula: "C3H7NO2"},
	}
	measurements := []tables.Measurement{
		{Name: "s1", Metabolite: "alanine", Values: []float64{1, 0, 0, 0}},
		{Name: "s2", Metabolite: "C3H7NO2", Values: []float64{1, 0, 0, 0}},
		{Name: "s3", Metabolite: "alanine", Values: []float64{0, 0, 0, 0}},
	}
	cfg := Config{
		Tracer:  isocor.TracerConfig{Element: "C", Purity: []float64{0, 1}},
		Workers: 2,
	}

	results := Run(context.Background(), testTable(), db, measurements, cfg)
	if len(results) != 3 {
		t.Fatalf("Run returned %d rows, want 3", len(results))
	}
	for _, r := range results {
		if r.Result == nil {
			t.Errorf("row %s: Result is nil, err = %v", r.Name, r.Err)
			continue
		}
		if len(r.Distribution) != 4 {
			t.Errorf("row %s: Distribution has %d entries, want 4", r.Name, len(r.Distribution))
		}
	}
	if results[0].Name != "s1" || results[1].Name != "s2" || results[2].Name != "s3" {
		t.Errorf("Run must preserve input order: got %s, %s, %s", results[0].Name, results[1].Name, results[2].Name)
	}
}

func TestRunUnknownMetaboliteTreatedAsFormula(t *testing.T) {
	db := tables.Database{}
	measurements := []tables.Measurement{
		{Name: "s1", Metabolite: "C2H6O", Values: []float64{1, 0, 0}},
	}
	cfg := Config{Tracer: isocor.TracerConfig{Element: "C", Purity: []float64{0, 1}}}

	results := Run(context.Background(), testTable(), db, measurements, cfg)
	if results[0].Err != nil {
		t.Fatalf("Run returned error for a literal formula: %v", results[0].Err)
	}
}

func TestRunSurfacesPerRowErrors(t *testing.T) {
	db := tables.Database{}
	measurements := []tables.Measurement{
		{Name: "bad", Metabolite: "NotAFormula!", Values: []float64{1, 0}},
	}
	cfg := Config{Tracer: isocor.TracerConfig{Element: "C", Purity: []float64{0, 1}}}

	results := Run(context.Background(), testTable(), db, measurements, cfg)
	if results[0].Err == nil {
		t.Fatalf("Run should surface the per-row parse error instead of aborting the batch")
	}
}

func TestRunDefaultsWorkerCount(t *testing.T) {
	db := tables.Database{}
	measurements := make([]tables.Measurement, 5)
	for i := range measurements {
		measurements[i] = tables.Measurement{Name: "s", Metabolite: "C2H6O", Values: []float64{1, 0, 0}}
	}
	cfg := Config{Tracer: isocor.TracerConfig{Element: "C", Purity: []float64{0, 1}}}

	results := Run(context.Background(), testTable(), db, measurements, cfg)
	if len(results) != 5 {
		t.Fatalf("Run returned %d rows, want 5", len(results))
	}
}
