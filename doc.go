// Package tablescrub provides a deterministic, idempotent cleaning pipeline
// for tabular data (CSV, TSV, Excel XLSX, Parquet).
//
// tablescrub loads a file into an in-memory Table, infers a schema for each
// column, detects common data-quality issues, applies the suggested fixes, and
// returns the cleaned table together with a structured report of every
// finding and its outcome.
//
// # Features
//
//   - Schema sniffing: boolean, integer, real, and datetime columns are
//     inferred from raw cell values with a configurable confidence threshold
//   - Issue detectors: empty cells, duplicate rows, stray whitespace, and
//     format mismatches, each independent and read-only
//   - Deterministic conflict resolution: row removals beat cell fixes,
//     overlapping cell fixes apply in detector-declaration order
//   - Idempotence: cleaning an already-cleaned table applies zero fixes
//   - Automatic handling of compressed files (gzip, bzip2, xz, zstandard)
//   - Optional job history persisted to a local SQLite database
//
// # Basic Usage
//
//	table, err := tablescrub.LoadFile("data.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cleaned, report, err := tablescrub.Clean(table, tablescrub.NewConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("fixed %d issues, flagged %d\n", report.Fixed(), report.Flagged())
//	if err := tablescrub.SaveTable(cleaned, "cleaned.csv"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Configuration
//
// Clean takes an explicit Config value; there is no process-wide state:
//
//	cfg := tablescrub.NewConfig().
//	    WithDetectors(tablescrub.DetectorEmptyCell, tablescrub.DetectorDuplicateRow).
//	    WithDateFormats("2006-01-02").
//	    WithNullableColumns("notes")
//
// # Reports
//
// Every finding ends up in the CleaningReport exactly once, with the action
// taken (fixed, flagged, or skipped with the reason) and the before/after
// values. Cells that cannot be repaired are flagged and left in place; the
// pipeline never silently drops data.
//
// # Error Handling
//
// Structural problems in the input (rows with the wrong number of cells,
// duplicate column names) surface as ErrMalformedInput before any cleaning
// happens. ErrStructuralIntegrity after applying actions indicates a defect
// in a detector or the resolution policy and is never expected in normal
// operation. Configuration referencing an unknown detector id fails
// validation with ErrUnknownDetector before any scanning.
package tablescrub
