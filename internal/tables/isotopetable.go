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

// Package tables holds the flat-file readers and writers that sit
// outside the isocor correction core: the isotope table, the
// metabolite/derivative databases, and measurement/result TSVs. None of
// this is part of the numerical core (isocor.Correct); it is the
// external collaborator spec.md §1 and §6 describe contracts for.
package tables

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/isocor-dev/isocor"
)

// LoadIsotopes reads the tab-separated isotope table format of spec.md
// §6: one line per element, first field the symbol, remaining fields
// the abundance vector in ascending mass-shift order. Blank lines are
// ignored. The table is validated before being returned.
func LoadIsotopes(path string) (isocor.IsotopeTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tables: opening isotope table %s: %w", path, err)
	}
	defer f.Close()

	table := make(isocor.IsotopeTable)
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("tables: isotope table %s line %d: expected symbol and at least one abundance, got %q", path, lineNum, line)
		}
		symbol := strings.TrimSpace(fields[0])
		abund := make([]float64, len(fields)-1)
		for i, field := range fields[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("tables: isotope table %s line %d: parsing abundance %q: %w", path, lineNum, field, err)
			}
			abund[i] = v
		}
		table[symbol] = abund
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("tables: reading isotope table %s: %w", path, err)
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("tables: validating isotope table %s: %w", path, err)
	}
	return table, nil
}

// readTSVLines is the shared line-splitting helper for the database and
// measurement readers below.
func readTSVLines(r io.Reader) ([][]string, error) {
	var rows [][]string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, strings.Split(line, "\t"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
