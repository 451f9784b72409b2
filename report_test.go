package tablescrub

import "testing"

func TestCleaningReportCounts(t *testing.T) {
	t.Parallel()

	report := &CleaningReport{Entries: []ReportEntry{
		{
			Finding: Finding{Detector: DetectorDuplicateRow, Fix: Fix{Kind: FixRemoveRow}},
			Status:  ActionFixed,
		},
		{
			Finding: Finding{Detector: DetectorEmptyCell, Fix: Fix{Kind: FixRewrite, Value: "30"}},
			Status:  ActionFixed,
		},
		{
			Finding: Finding{Detector: DetectorFormatMismatch, Fix: Fix{Kind: FixFlag}},
			Status:  ActionFlagged,
		},
		{
			Finding: Finding{Detector: DetectorWhitespace, Fix: Fix{Kind: FixRewrite, Value: "x"}},
			Status:  ActionSkippedRowRemoved,
		},
		{
			Finding: Finding{Detector: DetectorEmptyCell, Fix: Fix{Kind: FixRewrite, Value: "1"}},
			Status:  ActionSkippedResolved,
		},
	}}

	if got := report.Fixed(); got != 2 {
		t.Errorf("Fixed() = %d, want 2", got)
	}
	if got := report.Flagged(); got != 1 {
		t.Errorf("Flagged() = %d, want 1", got)
	}
	if got := report.Skipped(); got != 2 {
		t.Errorf("Skipped() = %d, want 2", got)
	}
	if got := report.RowsRemoved(); got != 1 {
		t.Errorf("RowsRemoved() = %d, want 1", got)
	}
	if got := report.CellsFixed(); got != 1 {
		t.Errorf("CellsFixed() = %d, want 1", got)
	}
}
