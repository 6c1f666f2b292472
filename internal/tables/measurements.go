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
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Measurement is one row of a measurement TSV: the metabolite/derivative
// to look up, and the raw mass-fraction intensities (spec.md §6
// "Measurement record"). A missing entry is a hard error per spec.md §3
// ("no missing values") — a short row cannot be silently zero-padded.
type Measurement struct {
	Name       string
	Metabolite string
	Derivative string
	Values     []float64
}

// LoadMeasurements reads a tab-separated file with columns
// name, metabolite_formula, derivative_formula, v0, v1, ..., vM-1.
// derivative_formula may be the empty string.
func LoadMeasurements(path string) ([]Measurement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tables: opening measurements %s: %w", path, err)
	}
	defer f.Close()

	rows, err := readTSVLines(f)
	if err != nil {
		return nil, fmt.Errorf("tables: reading measurements %s: %w", path, err)
	}

	out := make([]Measurement, 0, len(rows))
	for i, row := range rows {
		if len(row) < 4 {
			return nil, fmt.Errorf("tables: measurements %s line %d: expected name, metabolite, derivative, and at least one value, got %q",
				path, i+1, strings.Join(row, "\t"))
		}
		values := make([]float64, len(row)-3)
		for j, field := range row[3:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("tables: measurements %s line %d: parsing value %q: %w", path, i+1, field, err)
			}
			values[j] = v
		}
		out = append(out, Measurement{
			Name:       row[0],
			Metabolite: row[1],
			Derivative: row[2],
			Values:     values,
		})
	}
	return out, nil
}
