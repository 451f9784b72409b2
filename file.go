package tablescrub

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow/go/v18/arrow/array"
	pqfile "github.com/apache/arrow/go/v18/parquet/file"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/xuri/excelize/v2"
)

// FileType represents a supported base file format. Compression is detected
// separately from the trailing extension.
type FileType int

const (
	// FileTypeCSV represents CSV files
	FileTypeCSV FileType = iota
	// FileTypeTSV represents TSV files
	FileTypeTSV
	// FileTypeXLSX represents Excel XLSX files
	FileTypeXLSX
	// FileTypeParquet represents Parquet files
	FileTypeParquet
	// FileTypeUnsupported represents unsupported file types
	FileTypeUnsupported
)

// Format extensions
const (
	// extCSV is the CSV file extension
	extCSV = ".csv"
	// extTSV is the TSV file extension
	extTSV = ".tsv"
	// extXLSX is the Excel XLSX file extension
	extXLSX = ".xlsx"
	// extParquet is the Parquet file extension
	extParquet = ".parquet"
)

// detectFileType detects the base file type from a path, ignoring any
// compression extension.
func detectFileType(path string) FileType {
	ext := strings.ToLower(filepath.Ext(removeCompressionExtension(path)))
	switch ext {
	case extCSV:
		return FileTypeCSV
	case extTSV:
		return FileTypeTSV
	case extXLSX:
		return FileTypeXLSX
	case extParquet:
		return FileTypeParquet
	default:
		return FileTypeUnsupported
	}
}

// isSupportedFile checks if the file has a supported extension, with or
// without a compression suffix.
func isSupportedFile(path string) bool {
	return detectFileType(path) != FileTypeUnsupported
}

// LoadFile reads a tabular file into a Table. Supported formats are CSV,
// TSV, XLSX, and Parquet; CSV and TSV may additionally be compressed with
// gzip, bzip2, xz, or zstd (XLSX and Parquet too, at the cost of buffering).
// The table name is derived from the file name.
func LoadFile(path string) (*Table, error) {
	fileType := detectFileType(path)
	if fileType == FileTypeUnsupported {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path) //nolint:gosec // User-provided path is necessary for file operations
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = f.Close() // Ignore close error on read path
	}()

	reader, cleanup, err := detectCompressionType(path).newReader(f)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cleanup()
	}()

	name := TableNameFromPath(path)
	switch fileType {
	case FileTypeCSV:
		return parseDelimited(reader, csvDelimiter, name, path)
	case FileTypeTSV:
		return parseDelimited(reader, tsvDelimiter, name, path)
	case FileTypeXLSX:
		return parseXLSX(reader, name, path)
	case FileTypeParquet:
		return parseParquet(reader, name)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// parseDelimited parses CSV or TSV content with the given delimiter.
func parseDelimited(reader io.Reader, delimiter rune, name, path string) (*Table, error) {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedInput, path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyData, path)
	}

	return NewTable(name, records[0], records[1:])
}

// parseXLSX parses XLSX content. Only the first sheet is read; the first row
// becomes the header and shorter rows are padded with empty cells.
func parseXLSX(reader io.Reader, name, path string) (*Table, error) {
	xlsxFile, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer func() {
		_ = xlsxFile.Close() // Ignore close error
	}()

	sheetNames := xlsxFile.GetSheetList()
	if len(sheetNames) == 0 {
		return nil, fmt.Errorf("%w: no sheets in %s", ErrEmptyData, path)
	}

	rows, err := xlsxFile.GetRows(sheetNames[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheetNames[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %s in %s", ErrEmptyData, sheetNames[0], path)
	}

	columns := rows[0]
	padded := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]string, len(columns))
		copy(cells, row)
		padded = append(padded, cells)
	}

	return NewTable(name, columns, padded)
}

// parseParquet parses Parquet content. Parquet requires random access, so
// the whole stream is buffered before reading.
func parseParquet(reader io.Reader, name string) (*Table, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty parquet file", ErrEmptyData)
	}

	pqReader, err := pqfile.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pqReader.Close()

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	arrowTable, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet table: %w", err)
	}
	defer arrowTable.Release()

	schema := arrowTable.Schema()
	columns := make([]string, schema.NumFields())
	for i, field := range schema.Fields() {
		columns[i] = field.Name
	}

	tableReader := array.NewTableReader(arrowTable, 0)
	defer tableReader.Release()

	var rows [][]string
	for tableReader.Next() {
		batch := tableReader.Record()
		numRows := batch.NumRows()
		for i := range numRows {
			row := make([]string, batch.NumCols())
			for j, col := range batch.Columns() {
				if col.IsNull(int(i)) {
					continue
				}
				row[j] = col.ValueStr(int(i))
			}
			rows = append(rows, row)
		}
	}
	if err := tableReader.Err(); err != nil {
		return nil, fmt.Errorf("error reading parquet records: %w", err)
	}

	return NewTable(name, columns, rows)
}
