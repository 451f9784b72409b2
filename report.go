package tablescrub

import "strings"

// ReportEntry records the outcome of one finding. Row indexes refer to the
// table as it was when the finding was produced.
type ReportEntry struct {
	// Finding is the detector finding this entry resolves
	Finding Finding
	// Status is the action taken
	Status ActionStatus
	// Before is the cell (or rendered row) value before the action
	Before string
	// After is the value after the action; empty for removals and flags
	After string
}

// CleaningReport is the ordered record of every finding's outcome for one
// cleaning run. It is read-only once Clean returns.
type CleaningReport struct {
	// Entries lists outcomes in resolution order
	Entries []ReportEntry
}

// Fixed returns the number of applied fixes, row removals included.
func (r *CleaningReport) Fixed() int {
	return r.countStatus(ActionFixed)
}

// Flagged returns the number of findings recorded without a fix.
func (r *CleaningReport) Flagged() int {
	return r.countStatus(ActionFlagged)
}

// Skipped returns the number of findings superseded by other actions.
func (r *CleaningReport) Skipped() int {
	return r.countStatus(ActionSkippedRowRemoved) + r.countStatus(ActionSkippedResolved)
}

// RowsRemoved returns the number of rows dropped as duplicates.
func (r *CleaningReport) RowsRemoved() int {
	n := 0
	for _, e := range r.Entries {
		if e.Status == ActionFixed && e.Finding.Fix.Kind == FixRemoveRow {
			n++
		}
	}
	return n
}

// CellsFixed returns the number of cell rewrites applied.
func (r *CleaningReport) CellsFixed() int {
	n := 0
	for _, e := range r.Entries {
		if e.Status == ActionFixed && e.Finding.Fix.Kind == FixRewrite {
			n++
		}
	}
	return n
}

func (r *CleaningReport) countStatus(status ActionStatus) int {
	n := 0
	for _, e := range r.Entries {
		if e.Status == status {
			n++
		}
	}
	return n
}

// Analysis summarizes a table's data-quality state without changing it.
type Analysis struct {
	// EmptyCells counts cells that are empty after trimming
	EmptyCells int
	// DuplicateRows counts rows that exactly duplicate an earlier row
	DuplicateRows int
	// TotalRows is the data row count
	TotalRows int
	// TotalColumns is the column count
	TotalColumns int
}

// Analyze scans a table and reports issue counts. It is read-only and is
// typically used to preview what a cleaning run would address.
func Analyze(t *Table) Analysis {
	a := Analysis{
		TotalRows:    len(t.rows),
		TotalColumns: len(t.header),
	}

	seen := make(map[string]bool, len(t.rows))
	for _, row := range t.rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) == "" {
				a.EmptyCells++
			}
		}
		key := rowKey(row)
		if seen[key] {
			a.DuplicateRows++
			continue
		}
		seen[key] = true
	}
	return a
}
