package tablescrub

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFileType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want FileType
	}{
		{"data.csv", FileTypeCSV},
		{"data.tsv", FileTypeTSV},
		{"data.xlsx", FileTypeXLSX},
		{"data.parquet", FileTypeParquet},
		{"data.csv.gz", FileTypeCSV},
		{"data.tsv.zst", FileTypeTSV},
		{"DATA.CSV", FileTypeCSV},
		{"data.json", FileTypeUnsupported},
		{"data", FileTypeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := detectFileType(tt.path); got != tt.want {
				t.Errorf("detectFileType(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}

	if isSupportedFile("data.json") || !isSupportedFile("data.csv.xz") {
		t.Error("isSupportedFile disagrees with detectFileType")
	}
}

func TestLoadFileCSV(t *testing.T) {
	t.Parallel()

	t.Run("plain CSV", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "people.csv")
		require.NoError(t, os.WriteFile(path, []byte("name,age\nAl,30\nBo,41\n"), 0600))

		table, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "people", table.Name())
		assert.Equal(t, []string{"name", "age"}, table.Header())
		assert.Equal(t, [][]string{{"Al", "30"}, {"Bo", "41"}}, table.Rows())
	})

	t.Run("header only", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.csv")
		require.NoError(t, os.WriteFile(path, []byte("name,age\n"), 0600))

		table, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 0, table.NumRows())
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.csv")
		require.NoError(t, os.WriteFile(path, nil, 0600))

		_, err := LoadFile(path)
		assert.ErrorIs(t, err, ErrEmptyData)
	})

	t.Run("ragged rows", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ragged.csv")
		require.NoError(t, os.WriteFile(path, []byte("name,age\nAl\n"), 0600))

		_, err := LoadFile(path)
		assert.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("quoted cells keep embedded delimiters", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "quoted.csv")
		require.NoError(t, os.WriteFile(path, []byte("name,note\nAl,\"a, b\"\n"), 0600))

		table, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"Al", "a, b"}}, table.Rows())
	})
}

func TestLoadFileTSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "people.tsv")
	require.NoError(t, os.WriteFile(path, []byte("name\tage\nAl\t30\n"), 0600))

	table, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Al", "30"}}, table.Rows())
}

func TestLoadFileCompressed(t *testing.T) {
	t.Parallel()

	content := []byte("name,age\nAl,30\nBo,41\n")

	for _, tt := range []struct {
		ext         string
		compression CompressionType
	}{
		{".gz", CompressionGZ},
		{".xz", CompressionXZ},
		{".zst", CompressionZSTD},
	} {
		t.Run(tt.ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "people.csv"+tt.ext)
			f, err := os.Create(path)
			require.NoError(t, err)
			writer, closeWriter, err := tt.compression.newWriter(f)
			require.NoError(t, err)
			_, err = writer.Write(content)
			require.NoError(t, err)
			require.NoError(t, closeWriter())
			require.NoError(t, f.Close())

			table, err := LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "people", table.Name())
			assert.Equal(t, [][]string{{"Al", "30"}, {"Bo", "41"}}, table.Rows())
		})
	}

	t.Run(".bz2", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "people.csv.bz2")
		require.NoError(t, os.WriteFile(path, bzip2Fixture, 0600))

		table, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"Al", "30"}, {"Bo", "41"}}, table.Rows())
	})
}

func TestLoadFileUnsupported(t *testing.T) {
	t.Parallel()

	_, err := LoadFile("data.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestLoadFileParquet(t *testing.T) {
	t.Parallel()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "name", Type: arrow.BinaryTypes.String},
		{Name: "age", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
	}, nil)

	builder := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer builder.Release()
	builder.Field(0).(*array.StringBuilder).AppendValues([]string{"Al", "Bo", "Cy"}, nil)
	builder.Field(1).(*array.Int64Builder).AppendValues([]int64{30, 41, 0}, []bool{true, true, false})

	record := builder.NewRecord()
	defer record.Release()
	arrowTable := array.NewTableFromRecords(schema, []arrow.Record{record})
	defer arrowTable.Release()

	var buf bytes.Buffer
	require.NoError(t, pqarrow.WriteTable(
		arrowTable, &buf, 1024, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps()))

	path := filepath.Join(t.TempDir(), "people.parquet")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0600))

	table, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "people", table.Name())
	assert.Equal(t, []string{"name", "age"}, table.Header())
	// Null cells load as empty strings.
	assert.Equal(t, [][]string{{"Al", "30"}, {"Bo", "41"}, {"Cy", ""}}, table.Rows())
}
