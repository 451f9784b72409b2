package tablescrub

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// maxCleanPasses bounds the fix-until-stable loop. In practice the second
// pass already finds nothing to fix; further passes only exist for the rare
// case where an applied fix manufactures a new duplicate.
const maxCleanPasses = 5

// Clean runs the full pipeline on a table: sniff the schema once per pass,
// run every enabled detector, resolve the findings into actions, and apply
// them. It returns the cleaned table and a report recording every finding's
// outcome. The input table is never mutated.
//
// The cleaned table is a fixed point: running Clean on it again with the
// same configuration applies zero fixes. Cells that cannot be repaired are
// flagged in the report and left in place, never silently dropped.
func Clean(t *Table, cfg Config) (*Table, *CleaningReport, error) {
	if t == nil {
		return nil, nil, newMalformedInputError("nil table")
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	for i, row := range t.rows {
		if len(row) != len(t.header) {
			return nil, nil, newMalformedInputError(
				fmt.Sprintf("row %d has %d cells, header has %d columns", i, len(row), len(t.header)))
		}
	}

	work := &Table{name: t.name, header: t.header.clone(), rows: cloneRows(t.rows)}
	report := &CleaningReport{}
	detectors := detectorsFor(cfg)

	for pass := 0; pass < maxCleanPasses; pass++ {
		profiles := sniffSchema(work, cfg)

		var findings []Finding
		for _, d := range detectors {
			findings = append(findings, d.Scan(work, profiles)...)
		}
		if len(findings) == 0 {
			break
		}

		actions := resolveFindings(findings)
		next, entries, fixed := applyActions(work, actions)

		// Flag and skip outcomes recur verbatim on later passes; the first
		// pass records them all, later passes record only what they fix.
		for _, e := range entries {
			if pass > 0 && e.Status != ActionFixed {
				continue
			}
			report.Entries = append(report.Entries, e)
		}

		if err := next.verifyStructure(); err != nil {
			return nil, nil, err
		}
		work = next

		if fixed == 0 {
			break
		}
	}

	return work, report, nil
}

// cloneRows deep-copies table rows.
func cloneRows(rows []Record) []Record {
	cloned := make([]Record, len(rows))
	for i, r := range rows {
		cloned[i] = r.clone()
	}
	return cloned
}

// applyActions rewrites and removes cells and rows per the resolved actions,
// producing a new table and the report entries for this pass. The count of
// applied fixes is returned so the engine can detect the fixed point.
func applyActions(t *Table, actions []Action) (*Table, []ReportEntry, int) {
	removedRows := make(map[int]bool)
	rewrites := make(map[cellRef]string)
	fixed := 0

	entries := make([]ReportEntry, 0, len(actions))
	for _, a := range actions {
		entry := ReportEntry{Finding: a.Finding, Status: a.Status}

		switch {
		case a.Status == ActionFixed && a.Finding.Fix.Kind == FixRemoveRow:
			if a.Finding.Row < len(t.rows) {
				entry.Before = renderRow(t.rows[a.Finding.Row])
			}
			removedRows[a.Finding.Row] = true
			fixed++

		case a.Status == ActionFixed && a.Finding.Fix.Kind == FixRewrite:
			entry.Before = cellValue(t, a.Finding.Row, a.Finding.Column)
			entry.After = a.Finding.Fix.Value
			rewrites[cellRef{a.Finding.Row, a.Finding.Column}] = a.Finding.Fix.Value
			fixed++

		default:
			entry.Before = cellValue(t, a.Finding.Row, a.Finding.Column)
		}

		entries = append(entries, entry)
	}

	columnIndex := make(map[string]int, len(t.header))
	for i, name := range t.header {
		columnIndex[name] = i
	}

	rows := make([]Record, 0, len(t.rows))
	for i, row := range t.rows {
		if removedRows[i] {
			continue
		}
		next := row.clone()
		for ref, value := range rewrites {
			if ref.row != i {
				continue
			}
			if col, ok := columnIndex[ref.column]; ok && col < len(next) {
				next[col] = value
			}
		}
		rows = append(rows, next)
	}

	return &Table{name: t.name, header: t.header.clone(), rows: rows}, entries, fixed
}

// renderRow renders a removed row for the report as a single CSV line, so
// cells containing separators stay unambiguous.
func renderRow(row Record) string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write(row) // a strings.Builder never errors
	w.Flush()
	return strings.TrimSuffix(b.String(), "\n")
}

// cellValue reads a cell by row index and column name; empty when the
// location does not resolve (whole-row findings have no column).
func cellValue(t *Table, row int, column string) string {
	if column == "" || row < 0 || row >= len(t.rows) {
		return ""
	}
	col := t.columnIndex(column)
	if col < 0 || col >= len(t.rows[row]) {
		return ""
	}
	return t.rows[row][col]
}
