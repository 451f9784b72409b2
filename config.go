package tablescrub

import (
	"fmt"
	"time"
)

// Detector identifiers accepted by Config.WithDetectors.
const (
	// DetectorEmptyCell flags empty cells in non-nullable columns
	DetectorEmptyCell = "empty_cell"
	// DetectorDuplicateRow flags exact duplicates of earlier rows
	DetectorDuplicateRow = "duplicate_row"
	// DetectorWhitespace flags text cells with leading or trailing whitespace
	DetectorWhitespace = "whitespace"
	// DetectorFormatMismatch flags typed cells that fail their column parser
	DetectorFormatMismatch = "format_mismatch"
)

// detectorOrder is the declaration order of all registered detectors.
// Cell-level conflicts between detectors resolve in this order, so
// whitespace trims land before format reparses.
var detectorOrder = []string{
	DetectorEmptyCell,
	DetectorDuplicateRow,
	DetectorWhitespace,
	DetectorFormatMismatch,
}

// defaultDateFormats are the datetime layouts tried during schema sniffing,
// in priority order.
var defaultDateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
	"02.01.2006",
	"15:04:05",
}

// Config controls one cleaning run. Values are passed explicitly into Clean;
// there is no process-wide state.
//
// Example:
//
//	cfg := tablescrub.NewConfig().
//		WithDetectors(tablescrub.DetectorEmptyCell, tablescrub.DetectorDuplicateRow).
//		WithFillConfidenceThreshold(0.6)
type Config struct {
	// EnabledDetectors lists the active detector ids
	EnabledDetectors []string
	// TypeThreshold is the parse-rate a candidate type needs during sniffing
	TypeThreshold float64
	// FillConfidenceThreshold gates statistical fills for empty cells
	FillConfidenceThreshold float64
	// DateFormats is the ordered list of datetime layouts to negotiate
	DateFormats []string
	// SampleSize bounds sniffing samples per column; 0 means all rows
	SampleSize int
	// NullableColumns lists columns where empty cells are acceptable
	NullableColumns []string
}

// NewConfig creates a Config with all detectors enabled and default
// thresholds (type threshold 0.95, fill confidence 0.5, sample all rows).
func NewConfig() Config {
	return Config{
		EnabledDetectors:        append([]string(nil), detectorOrder...),
		TypeThreshold:           DefaultTypeThreshold,
		FillConfidenceThreshold: DefaultFillConfidenceThreshold,
		DateFormats:             append([]string(nil), defaultDateFormats...),
		SampleSize:              0,
		NullableColumns:         nil,
	}
}

// WithDetectors sets the enabled detectors.
func (c Config) WithDetectors(ids ...string) Config {
	c.EnabledDetectors = append([]string(nil), ids...)
	return c
}

// WithTypeThreshold sets the sniffing parse-rate threshold.
func (c Config) WithTypeThreshold(threshold float64) Config {
	c.TypeThreshold = threshold
	return c
}

// WithFillConfidenceThreshold sets the fill confidence threshold.
func (c Config) WithFillConfidenceThreshold(threshold float64) Config {
	c.FillConfidenceThreshold = threshold
	return c
}

// WithDateFormats sets the ordered datetime layouts (Go reference layouts).
func (c Config) WithDateFormats(layouts ...string) Config {
	c.DateFormats = append([]string(nil), layouts...)
	return c
}

// WithSampleSize bounds the sniffing sample per column. 0 samples all rows;
// MaxSampleSize is a reasonable bound for very large tables.
func (c Config) WithSampleSize(n int) Config {
	c.SampleSize = n
	return c
}

// WithNullableColumns marks columns where empty cells are not findings.
func (c Config) WithNullableColumns(columns ...string) Config {
	c.NullableColumns = append([]string(nil), columns...)
	return c
}

// Validate checks the configuration before any scanning happens.
// Unknown detector ids return ErrUnknownDetector.
func (c Config) Validate() error {
	known := make(map[string]bool, len(detectorOrder))
	for _, id := range detectorOrder {
		known[id] = true
	}
	for _, id := range c.EnabledDetectors {
		if !known[id] {
			return fmt.Errorf("%w: %q", ErrUnknownDetector, id)
		}
	}
	if c.TypeThreshold < 0 || c.TypeThreshold > 1 {
		return fmt.Errorf("%w: type threshold %v outside [0,1]", ErrInvalidConfig, c.TypeThreshold)
	}
	if c.FillConfidenceThreshold < 0 || c.FillConfidenceThreshold > 1 {
		return fmt.Errorf("%w: fill confidence threshold %v outside [0,1]", ErrInvalidConfig, c.FillConfidenceThreshold)
	}
	if c.SampleSize < 0 {
		return fmt.Errorf("%w: sample size %d is negative", ErrInvalidConfig, c.SampleSize)
	}
	return nil
}

// enabled reports whether the detector id is active.
func (c Config) enabled(id string) bool {
	for _, d := range c.EnabledDetectors {
		if d == id {
			return true
		}
	}
	return false
}

// isNullable reports whether empty cells are acceptable in the column.
func (c Config) isNullable(column string) bool {
	for _, col := range c.NullableColumns {
		if col == column {
			return true
		}
	}
	return false
}
