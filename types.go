package tablescrub

import (
	"strconv"
	"strings"
)

// File format delimiters
const (
	// csvDelimiter is the delimiter for CSV files
	csvDelimiter = ','
	// tsvDelimiter is the delimiter for TSV files
	tsvDelimiter = '\t'
)

// Type inference constants
const (
	// DefaultTypeThreshold is the fraction of non-empty sampled values that
	// must parse under a candidate type for the column to adopt it
	DefaultTypeThreshold = 0.95
	// DefaultFillConfidenceThreshold is the minimum confidence required
	// before a statistical fill value is trusted for an empty cell
	DefaultFillConfidenceThreshold = 0.5
	// MaxSampleSize is the recommended sampling bound for type inference on
	// very large tables, for use with Config.WithSampleSize. By default
	// every row is inspected.
	MaxSampleSize = 1000
	// MinDatetimeLength is the minimum reasonable length for datetime values
	MinDatetimeLength = 4
	// MaxDatetimeLength is the maximum reasonable length for datetime values
	MaxDatetimeLength = 35
	// samplingSections is the number of table sections stratified sampling
	// draws from
	samplingSections = 3
)

// header is table header.
type header []string

// newHeader create new header.
func newHeader(h []string) header {
	return header(h)
}

// equal compare header.
func (h header) equal(h2 header) bool {
	if len(h) != len(h2) {
		return false
	}
	for i, v := range h {
		if v != h2[i] {
			return false
		}
	}
	return true
}

// Record represents one table row as a slice of string cells.
type Record []string

// newRecord create new record.
func newRecord(r []string) Record {
	return Record(r)
}

// equal compare record.
func (r Record) equal(r2 Record) bool {
	if len(r) != len(r2) {
		return false
	}
	for i, v := range r {
		if v != r2[i] {
			return false
		}
	}
	return true
}

// clone returns an independent copy of the record.
func (r Record) clone() Record {
	c := make(Record, len(r))
	copy(c, r)
	return c
}

// ColumnType represents the inferred type of a column.
type ColumnType int

const (
	// ColumnTypeText represents free-form text (the fallback type)
	ColumnTypeText ColumnType = iota
	// ColumnTypeBoolean represents boolean values
	ColumnTypeBoolean
	// ColumnTypeInteger represents integer values
	ColumnTypeInteger
	// ColumnTypeReal represents decimal values
	ColumnTypeReal
	// ColumnTypeDatetime represents date or datetime values
	ColumnTypeDatetime
)

// String returns the column type name.
func (ct ColumnType) String() string {
	switch ct {
	case ColumnTypeText:
		return "text"
	case ColumnTypeBoolean:
		return "boolean"
	case ColumnTypeInteger:
		return "integer"
	case ColumnTypeReal:
		return "real"
	case ColumnTypeDatetime:
		return "datetime"
	default:
		return "text"
	}
}

// booleanTokens are the accepted boolean spellings, compared case-insensitively.
// Numeric spellings (0/1) are excluded so integer columns never shadow
// boolean ones.
var booleanTokens = map[string]bool{
	"true":  true,
	"false": true,
	"yes":   true,
	"no":    true,
}

// isBoolean checks if a value is a recognized boolean token.
func isBoolean(value string) bool {
	return booleanTokens[strings.ToLower(value)]
}

// isInteger checks if a value is an integer with optimized parsing.
func isInteger(value string) bool {
	// Quick pre-check: must start with digit or sign
	if len(value) == 0 {
		return false
	}
	first := value[0]
	if first != '+' && first != '-' && (first < '0' || first > '9') {
		return false
	}

	_, err := strconv.ParseInt(value, 10, 64)
	return err == nil
}

// isReal checks if a value is a decimal number with optimized parsing.
func isReal(value string) bool {
	// Quick pre-check: must contain digits
	hasDigit := false
	for _, r := range value {
		if r >= '0' && r <= '9' {
			hasDigit = true
			break
		}
	}
	if !hasDigit {
		return false
	}

	_, err := strconv.ParseFloat(value, 64)
	return err == nil
}

// validateColumnNames checks for duplicate column names and returns error if found.
// Column name comparison is case-sensitive.
func validateColumnNames(columns []string) error {
	columnsSeen := make(map[string]bool, len(columns))
	for _, col := range columns {
		trimmedCol := strings.TrimSpace(col)
		if columnsSeen[trimmedCol] {
			return newMalformedInputError("duplicate column name: " + col)
		}
		columnsSeen[trimmedCol] = true
	}
	return nil
}
