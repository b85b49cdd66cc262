// SPDX-License-Identifier: MPL-2.0

package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Row is one line of the hydrogen report. Runner fills Stats.Rows with them
// when Options.CollectRows is set.
type Row struct {
	Formula   string
	Hydrogens uint32
}

// WriteCSV writes rows under a "Formula,Hydrogen_Count" header and closes the
// table with a TOTAL row.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Formula", "Hydrogen_Count"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	var total uint64
	for _, row := range rows {
		total += uint64(row.Hydrogens)
		if err := cw.Write([]string{row.Formula, strconv.FormatUint(uint64(row.Hydrogens), 10)}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	if err := cw.Write([]string{"TOTAL", strconv.FormatUint(total, 10)}); err != nil {
		return fmt.Errorf("failed to write CSV total: %w", err)
	}

	cw.Flush()
	return cw.Error()
}
