package tablescrub

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"
)

// OutputFormat represents the output file format.
type OutputFormat int

const (
	// OutputFormatCSV represents CSV output format
	OutputFormatCSV OutputFormat = iota
	// OutputFormatTSV represents TSV output format
	OutputFormatTSV
	// OutputFormatXLSX represents Excel XLSX output format
	OutputFormatXLSX
)

// String returns the string representation of OutputFormat.
func (f OutputFormat) String() string {
	switch f {
	case OutputFormatCSV:
		return "csv"
	case OutputFormatTSV:
		return "tsv"
	case OutputFormatXLSX:
		return "xlsx"
	default:
		return "csv"
	}
}

// Extension returns the file extension for the format.
func (f OutputFormat) Extension() string {
	switch f {
	case OutputFormatCSV:
		return extCSV
	case OutputFormatTSV:
		return extTSV
	case OutputFormatXLSX:
		return extXLSX
	default:
		return extCSV
	}
}

// SaveOptions configures how a table is written back to a file.
//
// Example:
//
//	options := NewSaveOptions().
//		WithFormat(OutputFormatTSV).
//		WithCompression(CompressionGZ)
//
//	err := SaveTable(cleaned, "./out/data.tsv.gz", options)
type SaveOptions struct {
	// Format specifies the output file format
	Format OutputFormat
	// Compression specifies the compression type
	Compression CompressionType
}

// NewSaveOptions creates default save options (CSV, no compression).
func NewSaveOptions() SaveOptions {
	return SaveOptions{
		Format:      OutputFormatCSV,
		Compression: CompressionNone,
	}
}

// WithFormat sets the output file format.
func (o SaveOptions) WithFormat(format OutputFormat) SaveOptions {
	o.Format = format
	return o
}

// WithCompression sets the compression type. Bzip2 is read-only and is
// rejected at write time.
func (o SaveOptions) WithCompression(compression CompressionType) SaveOptions {
	o.Compression = compression
	return o
}

// FileExtension returns the complete file extension including compression.
func (o SaveOptions) FileExtension() string {
	return o.Format.Extension() + o.Compression.Extension()
}

// SaveTable writes a table to the given path. When no options are passed the
// defaults from NewSaveOptions apply.
func SaveTable(t *Table, path string, opts ...SaveOptions) error {
	if t == nil {
		return newMalformedInputError("nil table")
	}
	options := NewSaveOptions()
	if len(opts) > 0 {
		options = opts[0]
	}

	f, err := os.Create(path) //nolint:gosec // User-provided path is necessary for file operations
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	writer, cleanup, err := options.Compression.newWriter(f)
	if err != nil {
		_ = f.Close()
		return err
	}

	switch options.Format {
	case OutputFormatCSV:
		err = writeDelimited(writer, t, csvDelimiter)
	case OutputFormatTSV:
		err = writeDelimited(writer, t, tsvDelimiter)
	case OutputFormatXLSX:
		err = writeXLSX(writer, t)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, options.Format)
	}
	if err != nil {
		_ = cleanup()
		_ = f.Close()
		return err
	}

	if err := cleanup(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to finalize compression: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

// writeDelimited writes the table as CSV or TSV.
func writeDelimited(w io.Writer, t *Table, delimiter rune) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter

	if err := csvWriter.Write(t.header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range t.rows {
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// writeXLSX writes the table as a single-sheet XLSX workbook.
func writeXLSX(w io.Writer, t *Table) error {
	xlsxFile := excelize.NewFile()
	defer func() {
		_ = xlsxFile.Close() // Ignore close error
	}()

	sheet := xlsxFile.GetSheetName(xlsxFile.GetActiveSheetIndex())

	if err := setSheetRow(xlsxFile, sheet, 1, t.header); err != nil {
		return err
	}
	for i, row := range t.rows {
		if err := setSheetRow(xlsxFile, sheet, i+2, row); err != nil {
			return err
		}
	}

	if err := xlsxFile.Write(w); err != nil {
		return fmt.Errorf("failed to write XLSX: %w", err)
	}
	return nil
}

// setSheetRow writes one row of string cells at the given 1-based row number.
func setSheetRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", rowNum, err)
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}
