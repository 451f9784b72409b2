package tablescrub

// ActionStatus is the resolved outcome for one finding.
type ActionStatus int

const (
	// ActionFixed means the suggested fix was applied
	ActionFixed ActionStatus = iota
	// ActionFlagged means the finding was recorded without changing the table
	ActionFlagged
	// ActionSkippedRowRemoved means a row-removal superseded this cell fix
	ActionSkippedRowRemoved
	// ActionSkippedResolved means an earlier detector already fixed the cell
	ActionSkippedResolved
)

// String returns the report wording for the status.
func (s ActionStatus) String() string {
	switch s {
	case ActionFixed:
		return "fixed"
	case ActionFlagged:
		return "flagged"
	case ActionSkippedRowRemoved:
		return "skipped (row removed)"
	case ActionSkippedResolved:
		return "skipped (already resolved)"
	default:
		return "flagged"
	}
}

// Action pairs a finding with its resolved outcome.
type Action struct {
	// Finding is the original detector finding
	Finding Finding
	// Status is the resolved outcome
	Status ActionStatus
}

// cellRef identifies one cell for conflict tracking.
type cellRef struct {
	row    int
	column string
}

// resolveFindings turns the complete finding set into one action per
// finding, resolving overlaps deterministically:
//
//   - Row removals take precedence: cell-level findings on a removed row are
//     skipped rather than applied.
//   - Cell-level findings on the same cell apply in detector-declaration
//     order; later findings on an already-fixed cell are skipped.
//   - Flag-only findings never mark a cell as resolved.
//
// The function is pure: identical inputs always yield identical actions.
func resolveFindings(findings []Finding) []Action {
	removedRows := make(map[int]bool)
	for _, f := range findings {
		if f.Fix.Kind == FixRemoveRow {
			removedRows[f.Row] = true
		}
	}

	actions := make([]Action, 0, len(findings))
	resolvedCells := make(map[cellRef]bool)

	for _, f := range findings {
		switch {
		case f.Fix.Kind == FixRemoveRow:
			actions = append(actions, Action{Finding: f, Status: ActionFixed})

		case removedRows[f.Row]:
			actions = append(actions, Action{Finding: f, Status: ActionSkippedRowRemoved})

		case resolvedCells[cellRef{f.Row, f.Column}]:
			actions = append(actions, Action{Finding: f, Status: ActionSkippedResolved})

		case f.Fix.Kind == FixFlag:
			actions = append(actions, Action{Finding: f, Status: ActionFlagged})

		case f.Fix.Kind == FixRewrite:
			resolvedCells[cellRef{f.Row, f.Column}] = true
			actions = append(actions, Action{Finding: f, Status: ActionFixed})

		default:
			actions = append(actions, Action{Finding: f, Status: ActionFlagged})
		}
	}
	return actions
}
