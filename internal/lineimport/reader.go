package lineimport

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
)

const utf8BOM = "\ufeff"

// CSVReader reads records from comma-separated text.
type CSVReader struct {
	r io.Reader
}

// NewCSVReader creates a Reader over CSV text whose first row is the header.
func NewCSVReader(r io.Reader) *CSVReader {
	return &CSVReader{r: r}
}

// Read parses every data row into a Record. Rows shorter than the header are
// padded with empty values; cells beyond the header are ignored.
func (c *CSVReader) Read(ctx context.Context) ([]Record, error) {
	cr := csv.NewReader(c.r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	columns, err := normaliseHeader(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if rec, ok := buildRecord(columns, row, line); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// XLSXReader reads records from one worksheet of an Excel workbook.
type XLSXReader struct {
	path  string
	sheet string
}

// NewXLSXReader creates a Reader for the named sheet of the workbook at path.
// An empty sheet selects the first worksheet.
func NewXLSXReader(path, sheet string) *XLSXReader {
	return &XLSXReader{path: path, sheet: sheet}
}

// Read loads the worksheet and converts every data row into a Record.
func (x *XLSXReader) Read(ctx context.Context) ([]Record, error) {
	f, err := excelize.OpenFile(x.path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := x.sheet
	sheets := f.GetSheetList()
	if sheet == "" {
		if len(sheets) == 0 {
			return nil, ErrNoHeader
		}
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	columns, err := normaliseHeader(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// rows[0] is spreadsheet row 1.
		if rec, ok := buildRecord(columns, row, i+2); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// ReadFile reads all records from path, choosing the reader from
// opts.Format or, when unset, the file extension.
func ReadFile(ctx context.Context, path string, opts FileOptions) ([]Record, error) {
	format := opts.Format
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv", ".txt":
			format = FormatCSV
		case ".xlsx", ".xlsm":
			format = FormatXLSX
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
		}
	}

	switch format {
	case FormatCSV:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening line file: %w", err)
		}
		defer f.Close()
		return NewCSVReader(f).Read(ctx)
	case FormatXLSX:
		return NewXLSXReader(path, opts.Sheet).Read(ctx)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// Validate checks that every record carries a non-blank value for each
// required column.
func Validate(records []Record, required ...string) error {
	for _, rec := range records {
		for _, col := range required {
			if strings.TrimSpace(rec.Fields[col]) == "" {
				return fmt.Errorf("%w: %q on row %d", ErrMissingColumn, col, rec.Row)
			}
		}
	}
	return nil
}

// normaliseHeader trims header cells, drops a leading BOM and rejects
// duplicate names.
func normaliseHeader(header []string) ([]string, error) {
	if len(header) == 0 {
		return nil, ErrNoHeader
	}
	columns := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if i == 0 {
			name = strings.TrimSpace(strings.TrimPrefix(name, utf8BOM))
		}
		if name == "" {
			continue
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		seen[name] = true
		columns[i] = name
	}
	if len(seen) == 0 {
		return nil, ErrNoHeader
	}
	return columns, nil
}

// buildRecord maps row cells onto columns. Rows with no non-blank cell are
// skipped.
func buildRecord(columns, row []string, line int) (Record, bool) {
	fields := make(map[string]string, len(columns))
	blank := true
	for i, name := range columns {
		if name == "" {
			continue
		}
		var value string
		if i < len(row) {
			value = row[i]
		}
		if strings.TrimSpace(value) != "" {
			blank = false
		}
		fields[name] = value
	}
	if blank {
		return Record{}, false
	}
	return Record{Row: line, Fields: fields}, true
}

// CheckColumns reports ErrMissingColumn when the input's header lacks any of
// columns. Values may be blank. An input with no records passes.
func CheckColumns(records []Record, columns ...string) error {
	if len(records) == 0 {
		return nil
	}
	for _, col := range columns {
		if _, ok := records[0].Fields[col]; !ok {
			return fmt.Errorf("%w: no %q column in header", ErrMissingColumn, col)
		}
	}
	return nil
}
