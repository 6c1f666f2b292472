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
	"strings"
)

// Entry is one row of a metabolite or derivative database: a formula and
// optional identifying metadata, per spec.md §6.
type Entry struct {
	Name    string
	Formula string
	Charge  string
	InChI   string
}

// Database is a name-indexed metabolite/derivative lookup table. Lookups
// are case-sensitive; later rows in the source file override earlier
// ones with the same name (spec.md §6).
type Database map[string]Entry

// LoadDatabase reads a tab-separated database file with fields
// name, formula, and optionally charge, inchi.
func LoadDatabase(path string) (Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tables: opening database %s: %w", path, err)
	}
	defer f.Close()

	rows, err := readTSVLines(f)
	if err != nil {
		return nil, fmt.Errorf("tables: reading database %s: %w", path, err)
	}

	db := make(Database)
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("tables: database %s line %d: expected at least name and formula, got %q", path, i+1, strings.Join(row, "\t"))
		}
		e := Entry{Name: row[0], Formula: row[1]}
		if len(row) > 2 {
			e.Charge = row[2]
		}
		if len(row) > 3 {
			e.InChI = row[3]
		}
		db[e.Name] = e // later rows override earlier ones, per spec.md §6
	}
	return db, nil
}

// Lookup returns the formula registered under name, or an error if name
// is not present. Lookup is case-sensitive per spec.md §6.
func (d Database) Lookup(name string) (string, error) {
	e, ok := d[name]
	if !ok {
		return "", fmt.Errorf("tables: %q not found in database", name)
	}
	return e.Formula, nil
}
