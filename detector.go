package tablescrub

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Severity indicates how serious a finding is.
type Severity int

const (
	// SeverityInfo marks cosmetic issues such as stray whitespace
	SeverityInfo Severity = iota
	// SeverityWarning marks issues that affect data semantics
	SeverityWarning
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// FixKind classifies a suggested fix.
type FixKind int

const (
	// FixFlag records the finding without changing the table
	FixFlag FixKind = iota
	// FixRewrite replaces the cell value with Fix.Value
	FixRewrite
	// FixRemoveRow removes the whole row
	FixRemoveRow
)

// Fix is the suggested remediation attached to a finding.
type Fix struct {
	// Kind selects between rewrite, row removal, and flag-only
	Kind FixKind
	// Value is the replacement cell value for FixRewrite
	Value string
}

// Finding is a detected data-quality issue at a specific location.
type Finding struct {
	// Detector is the id of the detector that produced the finding
	Detector string
	// Row is the zero-based row index at scan time
	Row int
	// Column is the column name; empty for whole-row findings
	Column string
	// Severity classifies the finding
	Severity Severity
	// Fix is the suggested remediation
	Fix Fix
}

// Detector scans a table against its column profiles and reports findings.
// Implementations must not mutate the table and must not depend on other
// detectors' output.
type Detector interface {
	// ID returns the stable detector identifier
	ID() string
	// Scan returns all findings for the table, in row order
	Scan(t *Table, profiles []ColumnProfile) []Finding
}

// detectorsFor instantiates the enabled detectors in declaration order.
// Unknown ids are rejected earlier by Config.Validate.
func detectorsFor(cfg Config) []Detector {
	detectors := make([]Detector, 0, len(detectorOrder))
	for _, id := range detectorOrder {
		if !cfg.enabled(id) {
			continue
		}
		switch id {
		case DetectorEmptyCell:
			detectors = append(detectors, &emptyCellDetector{cfg: cfg})
		case DetectorDuplicateRow:
			detectors = append(detectors, &duplicateRowDetector{})
		case DetectorWhitespace:
			detectors = append(detectors, &whitespaceDetector{})
		case DetectorFormatMismatch:
			detectors = append(detectors, &formatMismatchDetector{cfg: cfg})
		}
	}
	return detectors
}

// emptyCellDetector flags cells whose trimmed value is empty in columns not
// marked nullable. The suggested fix is the column's statistical fill value,
// or flag-only when the fill confidence is below the configured threshold.
type emptyCellDetector struct {
	cfg Config
}

// ID returns the detector identifier.
func (d *emptyCellDetector) ID() string { return DetectorEmptyCell }

// Scan implements Detector.
func (d *emptyCellDetector) Scan(t *Table, profiles []ColumnProfile) []Finding {
	var findings []Finding
	for col, profile := range profiles {
		if d.cfg.isNullable(profile.Name) {
			continue
		}

		fillComputed := false
		var fill string
		var confidence float64

		for row, record := range t.rows {
			if col >= len(record) || strings.TrimSpace(record[col]) != "" {
				continue
			}
			if !fillComputed {
				fill, confidence = columnFillValue(t, profile, col)
				fillComputed = true
			}

			fix := Fix{Kind: FixFlag}
			if confidence >= d.cfg.FillConfidenceThreshold && fill != "" {
				fix = Fix{Kind: FixRewrite, Value: fill}
			}
			findings = append(findings, Finding{
				Detector: DetectorEmptyCell,
				Row:      row,
				Column:   profile.Name,
				Severity: SeverityWarning,
				Fix:      fix,
			})
		}
	}
	return findings
}

// columnFillValue computes the statistical fill for a column: mode for text,
// boolean, and datetime columns, median for numeric ones. The confidence is
// the mode's share of non-empty values, or the parse rate for medians.
func columnFillValue(t *Table, profile ColumnProfile, col int) (string, float64) {
	var nonEmpty []string
	for _, row := range t.rows {
		if col >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[col])
		if v != "" {
			nonEmpty = append(nonEmpty, v)
		}
	}
	if len(nonEmpty) == 0 {
		return "", 0
	}

	switch profile.Type {
	case ColumnTypeInteger:
		return integerMedian(nonEmpty)
	case ColumnTypeReal:
		return realMedian(nonEmpty)
	default:
		return modeValue(nonEmpty)
	}
}

// modeValue returns the most frequent value; ties resolve to the value seen
// first so results stay deterministic.
func modeValue(values []string) (string, float64) {
	counts := make(map[string]int, len(values))
	best := ""
	bestCount := 0
	for _, v := range values {
		counts[v]++
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best, float64(bestCount) / float64(len(values))
}

// integerMedian returns the median of the parseable integers. The lower
// middle is used for even counts so the fill stays integer-parseable.
func integerMedian(values []string) (string, float64) {
	var parsed []int64
	for _, v := range values {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			parsed = append(parsed, n)
		}
	}
	if len(parsed) == 0 {
		return "", 0
	}
	sort.Slice(parsed, func(i, j int) bool { return parsed[i] < parsed[j] })
	median := parsed[(len(parsed)-1)/2]
	return strconv.FormatInt(median, 10), float64(len(parsed)) / float64(len(values))
}

// realMedian returns the median of the parseable decimals, averaging the two
// middles for even counts.
func realMedian(values []string) (string, float64) {
	var parsed []float64
	for _, v := range values {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			parsed = append(parsed, f)
		}
	}
	if len(parsed) == 0 {
		return "", 0
	}
	sort.Float64s(parsed)
	var median float64
	if len(parsed)%2 == 1 {
		median = parsed[len(parsed)/2]
	} else {
		median = (parsed[len(parsed)/2-1] + parsed[len(parsed)/2]) / 2
	}
	return strconv.FormatFloat(median, 'g', -1, 64), float64(len(parsed)) / float64(len(values))
}

// duplicateRowDetector flags rows that are exact duplicates of an earlier
// row across all columns. The first occurrence is always retained.
type duplicateRowDetector struct{}

// ID returns the detector identifier.
func (d *duplicateRowDetector) ID() string { return DetectorDuplicateRow }

// Scan implements Detector.
func (d *duplicateRowDetector) Scan(t *Table, _ []ColumnProfile) []Finding {
	var findings []Finding
	seen := make(map[string]bool, len(t.rows))
	for row, record := range t.rows {
		key := rowKey(record)
		if seen[key] {
			findings = append(findings, Finding{
				Detector: DetectorDuplicateRow,
				Row:      row,
				Severity: SeverityWarning,
				Fix:      Fix{Kind: FixRemoveRow},
			})
			continue
		}
		seen[key] = true
	}
	return findings
}

// whitespaceDetector flags text-column cells carrying leading or trailing
// whitespace. Cells that are empty after trimming belong to the empty-cell
// detector and are skipped here.
type whitespaceDetector struct{}

// ID returns the detector identifier.
func (d *whitespaceDetector) ID() string { return DetectorWhitespace }

// Scan implements Detector.
func (d *whitespaceDetector) Scan(t *Table, profiles []ColumnProfile) []Finding {
	var findings []Finding
	for col, profile := range profiles {
		if profile.Type != ColumnTypeText {
			continue
		}
		for row, record := range t.rows {
			if col >= len(record) {
				continue
			}
			trimmed := strings.TrimSpace(record[col])
			if trimmed == record[col] || trimmed == "" {
				continue
			}
			findings = append(findings, Finding{
				Detector: DetectorWhitespace,
				Row:      row,
				Column:   profile.Name,
				Severity: SeverityInfo,
				Fix:      Fix{Kind: FixRewrite, Value: trimmed},
			})
		}
	}
	return findings
}

// formatMismatchDetector flags cells in typed (non-text) columns whose raw
// value fails the column's parser. The suggested fix is a best-effort
// reparse: trim, then for datetimes a retry against the declared layouts
// with separator normalization, rewriting into the column's dominant layout.
// Unparseable cells are flagged, never dropped.
type formatMismatchDetector struct {
	cfg Config
}

// ID returns the detector identifier.
func (d *formatMismatchDetector) ID() string { return DetectorFormatMismatch }

// Scan implements Detector.
func (d *formatMismatchDetector) Scan(t *Table, profiles []ColumnProfile) []Finding {
	var findings []Finding
	for col, profile := range profiles {
		if profile.Type == ColumnTypeText {
			continue
		}
		for row, record := range t.rows {
			if col >= len(record) {
				continue
			}
			value := record[col]
			if strings.TrimSpace(value) == "" {
				continue
			}
			if parsesAs(profile, value) {
				continue
			}

			fix := Fix{Kind: FixFlag}
			if repaired, ok := repairValue(profile, value, d.cfg); ok {
				fix = Fix{Kind: FixRewrite, Value: repaired}
			}
			findings = append(findings, Finding{
				Detector: DetectorFormatMismatch,
				Row:      row,
				Column:   profile.Name,
				Severity: SeverityWarning,
				Fix:      fix,
			})
		}
	}
	return findings
}

// parsesAs checks a raw cell value against the column's parser.
func parsesAs(profile ColumnProfile, value string) bool {
	switch profile.Type {
	case ColumnTypeBoolean:
		return isBoolean(value)
	case ColumnTypeInteger:
		return isInteger(value)
	case ColumnTypeReal:
		return isReal(value)
	case ColumnTypeDatetime:
		_, err := time.Parse(profile.Layout, value)
		return err == nil
	default:
		return true
	}
}

// repairValue attempts a best-effort reparse of a mismatched cell. Datetime
// repairs are canonicalized into the column's dominant layout so the
// rewritten value parses on subsequent runs.
func repairValue(profile ColumnProfile, value string, cfg Config) (string, bool) {
	trimmed := strings.TrimSpace(value)

	switch profile.Type {
	case ColumnTypeBoolean:
		if isBoolean(trimmed) {
			return trimmed, true
		}
	case ColumnTypeInteger:
		if isInteger(trimmed) {
			return trimmed, true
		}
	case ColumnTypeReal:
		if isReal(trimmed) {
			return trimmed, true
		}
	case ColumnTypeDatetime:
		if parsed, err := time.Parse(profile.Layout, trimmed); err == nil {
			return parsed.Format(profile.Layout), true
		}
		for _, layout := range cfg.DateFormats {
			if parsed, err := time.Parse(layout, trimmed); err == nil {
				return parsed.Format(profile.Layout), true
			}
		}
		normalized := normalizeDateSeparators(trimmed)
		for _, layout := range cfg.DateFormats {
			if parsed, err := time.Parse(normalizeDateSeparators(layout), normalized); err == nil {
				return parsed.Format(profile.Layout), true
			}
		}
	}
	return "", false
}

// normalizeDateSeparators maps slash and dot date separators to dashes so a
// value written with a foreign separator can be retried against the declared
// layouts.
func normalizeDateSeparators(s string) string {
	s = strings.ReplaceAll(s, "/", "-")
	return strings.ReplaceAll(s, ".", "-")
}
