package tablescrub

import (
	"strings"
	"time"
)

// ColumnProfile holds the inferred type metadata for one column. Profiles are
// computed once per cleaning run and are immutable afterwards.
type ColumnProfile struct {
	// Name is the column name from the table header
	Name string
	// Type is the most specific type that met the configured parse-rate
	Type ColumnType
	// Layout is the dominant datetime layout when Type is ColumnTypeDatetime
	Layout string
	// Confidence is the parse rate of the chosen type over the sampled
	// non-empty values
	Confidence float64
}

// sniffSchema produces one ColumnProfile per column by sampling non-empty
// cell values and testing candidate parsers in fixed priority order:
// boolean, integer, real, datetime, then text as the fallback. The scan is
// read-only and never fails.
func sniffSchema(t *Table, cfg Config) []ColumnProfile {
	profiles := make([]ColumnProfile, len(t.header))
	for i, name := range t.header {
		profiles[i] = inferColumnProfile(name, t.columnValues(i), cfg)
	}
	return profiles
}

// inferColumnProfile infers a single column's profile from its raw values.
func inferColumnProfile(name string, values []string, cfg Config) ColumnProfile {
	// SampleSize 0 means every row is inspected; sampling is opt-in.
	sample := values
	if cfg.SampleSize > 0 {
		sample = sampleColumnValues(values, cfg.SampleSize)
	}

	var (
		nonEmpty     int
		boolCount    int
		integerCount int
		realCount    int
		dateCount    int
	)
	layoutCounts := make(map[string]int)

	for _, value := range sample {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		nonEmpty++

		if isBoolean(value) {
			boolCount++
		}
		if isInteger(value) {
			integerCount++
		}
		// Integers are also valid decimals, so real counts subsume them.
		if isReal(value) {
			realCount++
		}
		if layout, ok := matchDatetimeLayout(value, cfg.DateFormats); ok {
			dateCount++
			layoutCounts[layout]++
		}
	}

	if nonEmpty == 0 {
		return ColumnProfile{Name: name, Type: ColumnTypeText, Confidence: 0}
	}

	total := float64(nonEmpty)
	candidates := []struct {
		columnType ColumnType
		confidence float64
	}{
		{ColumnTypeBoolean, float64(boolCount) / total},
		{ColumnTypeInteger, float64(integerCount) / total},
		{ColumnTypeReal, float64(realCount) / total},
		{ColumnTypeDatetime, float64(dateCount) / total},
	}

	for _, c := range candidates {
		if c.confidence < cfg.TypeThreshold {
			continue
		}
		profile := ColumnProfile{Name: name, Type: c.columnType, Confidence: c.confidence}
		if c.columnType == ColumnTypeDatetime {
			profile.Layout = dominantLayout(layoutCounts, cfg.DateFormats)
		}
		return profile
	}

	// Text always parses.
	return ColumnProfile{Name: name, Type: ColumnTypeText, Confidence: 1}
}

// dominantLayout picks the layout that matched the most sampled values,
// breaking ties by the declared layout order for determinism.
func dominantLayout(counts map[string]int, layouts []string) string {
	best := ""
	bestCount := 0
	for _, layout := range layouts {
		if counts[layout] > bestCount {
			best = layout
			bestCount = counts[layout]
		}
	}
	return best
}

// matchDatetimeLayout returns the first declared layout that parses the
// value, with cheap pre-checks to avoid time.Parse on obvious non-datetimes.
func matchDatetimeLayout(value string, layouts []string) (string, bool) {
	if !looksLikeDatetime(value) {
		return "", false
	}
	for _, layout := range layouts {
		if _, err := time.Parse(layout, value); err == nil {
			return layout, true
		}
	}
	return "", false
}

// looksLikeDatetime filters values by length and character shape before any
// layout is tried. A datetime needs at least one digit and one separator.
func looksLikeDatetime(value string) bool {
	if len(value) < MinDatetimeLength || len(value) > MaxDatetimeLength {
		return false
	}

	hasDigit := false
	hasSeparator := false
	for _, r := range value {
		if r >= '0' && r <= '9' {
			hasDigit = true
		} else if r == '-' || r == '/' || r == '.' || r == ':' || r == 'T' || r == ' ' {
			hasSeparator = true
		}
		if hasDigit && hasSeparator {
			return true
		}
	}
	return false
}

// sampleColumnValues bounds the values used for inference. Small columns are
// used whole; larger ones are sampled in three evenly stepped sections so the
// sample represents the beginning, middle, and end of the table.
func sampleColumnValues(values []string, limit int) []string {
	if limit <= 0 || len(values) <= limit {
		return values
	}

	samples := make([]string, 0, limit)
	sectionSize := len(values) / samplingSections
	perSection := limit / samplingSections
	if sectionSize == 0 || perSection == 0 {
		step := max(1, len(values)/limit)
		for i := 0; i < len(values) && len(samples) < limit; i += step {
			samples = append(samples, values[i])
		}
		return samples
	}

	for section := range samplingSections {
		start := section * sectionSize
		end := start + sectionSize
		if section == samplingSections-1 {
			end = len(values)
		}
		step := max(1, (end-start)/perSection)
		taken := 0
		for i := start; i < end && taken < perSection && len(samples) < limit; i += step {
			samples = append(samples, values[i])
			taken++
		}
	}
	return samples
}
