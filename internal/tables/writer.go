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
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/isocor-dev/isocor"
)

// ResultRow pairs a Measurement's name with its correction outcome
// (or the error that short-circuited it, per spec.md §4.6).
type ResultRow struct {
	Name string
	*isocor.Result
	Err error
}

// WriteResults writes one TSV row per ResultRow: name, distribution
// entries, residuum entries, mean_enrichment (blank if absent), error
// (blank if nil).
func WriteResults(path string, rows []ResultRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("tables: creating results file %s: %w", path, err)
	}
	defer f.Close()
	return writeResults(f, rows)
}

// WriteResultsTo writes the same TSV format as WriteResults directly to w,
// for callers (such as the correct subcommand) that want to stream a
// single result to standard output instead of a named file.
func WriteResultsTo(w io.Writer, rows []ResultRow) error {
	return writeResults(w, rows)
}

func writeResults(w io.Writer, rows []ResultRow) error {
	for _, row := range rows {
		var fields []string
		fields = append(fields, row.Name)

		if row.Result != nil {
			for _, d := range row.Distribution {
				fields = append(fields, strconv.FormatFloat(d, 'g', -1, 64))
			}
			for _, r := range row.Residuum {
				fields = append(fields, strconv.FormatFloat(r, 'g', -1, 64))
			}
			if row.HasEnrichment {
				fields = append(fields, strconv.FormatFloat(row.MeanEnrichment, 'g', -1, 64))
			} else {
				fields = append(fields, "")
			}
		}

		if row.Err != nil {
			fields = append(fields, row.Err.Error())
		} else {
			fields = append(fields, "")
		}

		if _, err := io.WriteString(w, strings.Join(fields, "\t")+"\n"); err != nil {
			return fmt.Errorf("tables: writing results: %w", err)
		}
	}
	return nil
}
