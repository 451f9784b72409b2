package tablescrub

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveOptions(t *testing.T) {
	t.Parallel()

	defaults := NewSaveOptions()
	assert.Equal(t, OutputFormatCSV, defaults.Format)
	assert.Equal(t, CompressionNone, defaults.Compression)
	assert.Equal(t, ".csv", defaults.FileExtension())

	options := NewSaveOptions().
		WithFormat(OutputFormatTSV).
		WithCompression(CompressionGZ)
	assert.Equal(t, ".tsv.gz", options.FileExtension())

	// The original options value is unchanged by With chaining.
	assert.Equal(t, ".csv", defaults.FileExtension())
}

func TestSaveTable(t *testing.T) {
	t.Parallel()

	table := mustTable(t, []string{"name", "age"}, [][]string{
		{"Al", "30"},
		{"Bo", "41"},
	})

	t.Run("CSV", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")
		require.NoError(t, SaveTable(table, path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "name,age\nAl,30\nBo,41\n", string(data))
	})

	t.Run("TSV", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.tsv")
		require.NoError(t, SaveTable(table, path, NewSaveOptions().WithFormat(OutputFormatTSV)))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "name\tage\nAl\t30\nBo\t41\n", string(data))
	})

	t.Run("cells with embedded delimiters are quoted", func(t *testing.T) {
		quoted := mustTable(t, []string{"name", "note"}, [][]string{{"Al", "a, b"}})
		path := filepath.Join(t.TempDir(), "quoted.csv")
		require.NoError(t, SaveTable(quoted, path))

		loaded, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, quoted.Rows(), loaded.Rows())
	})

	t.Run("nil table", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")
		assert.ErrorIs(t, SaveTable(nil, path), ErrMalformedInput)
	})

	t.Run("bzip2 compression is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv.bz2")
		err := SaveTable(table, path, NewSaveOptions().WithCompression(CompressionBZ2))
		assert.Error(t, err)
	})
}

func TestSaveTableRoundTrip(t *testing.T) {
	t.Parallel()

	table := mustTable(t, []string{"name", "age", "note"}, [][]string{
		{"Al", "30", "ok"},
		{"Bo", "41", ""},
	})

	tests := []struct {
		name    string
		file    string
		options SaveOptions
	}{
		{"CSV", "out.csv", NewSaveOptions()},
		{"TSV", "out.tsv", NewSaveOptions().WithFormat(OutputFormatTSV)},
		{"XLSX", "out.xlsx", NewSaveOptions().WithFormat(OutputFormatXLSX)},
		{"CSV gzip", "out.csv.gz", NewSaveOptions().WithCompression(CompressionGZ)},
		{"CSV xz", "out.csv.xz", NewSaveOptions().WithCompression(CompressionXZ)},
		{"CSV zstd", "out.csv.zst", NewSaveOptions().WithCompression(CompressionZSTD)},
		{
			"TSV zstd",
			"out.tsv.zst",
			NewSaveOptions().WithFormat(OutputFormatTSV).WithCompression(CompressionZSTD),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, SaveTable(table, path, tt.options))

			loaded, err := LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, table.Header(), loaded.Header())
			assert.Equal(t, table.Rows(), loaded.Rows())
		})
	}
}

func TestCleanedTableSurvivesRoundTrip(t *testing.T) {
	t.Parallel()

	dirty := mustTable(t, []string{"name", "age"}, [][]string{
		{" Al ", "30"},
		{"Al", "30"},
		{"Bo", ""},
	})
	cleaned, _, err := Clean(dirty, NewConfig())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "cleaned.csv")
	require.NoError(t, SaveTable(cleaned, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cleaned.Rows(), loaded.Rows())

	// Cleaning the reloaded table again finds nothing to fix.
	_, report, err := Clean(loaded, NewConfig())
	require.NoError(t, err)
	assert.Zero(t, report.Fixed())
}
