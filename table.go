package tablescrub

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Table represents tabular data as an ordered header plus ordered rows of
// string cells. Every row holds exactly one cell per header column.
type Table struct {
	// name is the table name, typically derived from a file path.
	name string
	// header is the ordered list of column names.
	header header
	// rows is the ordered table data.
	rows []Record
}

// NewTable creates a new Table after validating the structural invariants:
// column names must be unique and every row must have exactly as many cells
// as the header. Violations return ErrMalformedInput.
func NewTable(name string, columns []string, rows [][]string) (*Table, error) {
	if len(columns) == 0 {
		return nil, newMalformedInputError("table has no columns")
	}
	if err := validateColumnNames(columns); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, newMalformedInputError(
				fmt.Sprintf("row %d has %d cells, header has %d columns", i, len(row), len(columns)))
		}
		records = append(records, newRecord(row).clone())
	}

	return &Table{
		name:   name,
		header: newHeader(columns).clone(),
		rows:   records,
	}, nil
}

// clone returns a header copy so callers cannot mutate table state.
func (h header) clone() header {
	c := make(header, len(h))
	copy(c, h)
	return c
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// Header returns the ordered column names.
func (t *Table) Header() []string {
	return t.header.clone()
}

// Rows returns the table rows. Each row is an independent copy.
func (t *Table) Rows() [][]string {
	rows := make([][]string, len(t.rows))
	for i, r := range t.rows {
		rows[i] = r.clone()
	}
	return rows
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.header)
}

// Head returns a table containing the first n rows, for previews.
// If n exceeds the row count the whole table is returned.
func (t *Table) Head(n int) *Table {
	if n < 0 {
		n = 0
	}
	if n > len(t.rows) {
		n = len(t.rows)
	}
	rows := make([]Record, n)
	for i := range n {
		rows[i] = t.rows[i].clone()
	}
	return &Table{name: t.name, header: t.header.clone(), rows: rows}
}

// Equal compares two tables by name, header, and cell values.
func (t *Table) Equal(t2 *Table) bool {
	if t.Name() != t2.Name() {
		return false
	}
	if !t.header.equal(t2.header) {
		return false
	}
	if len(t.rows) != len(t2.rows) {
		return false
	}
	for i, r := range t.rows {
		if !r.equal(t2.rows[i]) {
			return false
		}
	}
	return true
}

// columnIndex returns the index of the named column, or -1.
func (t *Table) columnIndex(name string) int {
	for i, col := range t.header {
		if col == name {
			return i
		}
	}
	return -1
}

// columnValues collects all cell values for one column, in row order.
func (t *Table) columnValues(col int) []string {
	values := make([]string, 0, len(t.rows))
	for _, row := range t.rows {
		if col < len(row) {
			values = append(values, row[col])
		}
	}
	return values
}

// rowKey renders a row for exact-duplicate comparison. Each cell is
// length-prefixed so the key is collision-free for arbitrary cell bytes.
func rowKey(row Record) string {
	var b strings.Builder
	for _, cell := range row {
		b.WriteString(strconv.Itoa(len(cell)))
		b.WriteByte(':')
		b.WriteString(cell)
	}
	return b.String()
}

// verifyStructure checks the all-rows-same-width invariant after actions
// have been applied.
func (t *Table) verifyStructure() error {
	for i, row := range t.rows {
		if len(row) != len(t.header) {
			return newStructuralIntegrityError(
				fmt.Sprintf("row %d has %d cells, header has %d columns", i, len(row), len(t.header)))
		}
	}
	return nil
}

// TableNameFromPath derives a table name from a file path, stripping any
// compression extension before the format extension.
func TableNameFromPath(path string) string {
	fileName := filepath.Base(path)
	for _, ext := range []string{extGZ, extBZ2, extXZ, extZSTD} {
		if strings.HasSuffix(strings.ToLower(fileName), ext) {
			fileName = fileName[:len(fileName)-len(ext)]
			break
		}
	}
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}
