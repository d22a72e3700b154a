package lineimport

import "context"

// Record is one subscriber line: the row's cells keyed by column header.
type Record struct {
	// Row is the 1-based row number in the source file, header included.
	Row int

	// Fields maps column header to cell value.
	Fields map[string]string
}

// Get returns the value of field name, or "" when the column is absent.
func (r Record) Get(name string) string {
	return r.Fields[name]
}

// Reader produces the ordered line records of one input.
type Reader interface {
	Read(ctx context.Context) ([]Record, error)
}

// Format names a supported input encoding.
type Format string

// Supported input formats.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FileOptions tune ReadFile.
type FileOptions struct {
	// Format overrides extension-based detection when non-empty.
	Format Format

	// Sheet names the XLSX worksheet to read.
	Sheet string
}
