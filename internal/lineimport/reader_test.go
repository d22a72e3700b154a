package lineimport

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func TestCSVReader_Read(t *testing.T) {
	input := "SUBSCRIBER_ID,LOCATION_ID,PHONE_NUMBER,NAME\n" +
		"S1,L1,5551000,Front Desk\n" +
		"S1,,5551001\n" +
		",,,\n" +
		"S2,L9,5552000,\"Smith, J\"\n"

	records, err := NewCSVReader(strings.NewReader(input)).Read(context.Background())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	want := []Record{
		{Row: 2, Fields: map[string]string{"SUBSCRIBER_ID": "S1", "LOCATION_ID": "L1", "PHONE_NUMBER": "5551000", "NAME": "Front Desk"}},
		{Row: 3, Fields: map[string]string{"SUBSCRIBER_ID": "S1", "LOCATION_ID": "", "PHONE_NUMBER": "5551001", "NAME": ""}},
		{Row: 5, Fields: map[string]string{"SUBSCRIBER_ID": "S2", "LOCATION_ID": "L9", "PHONE_NUMBER": "5552000", "NAME": "Smith, J"}},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestCSVReader_HeaderNormalisation(t *testing.T) {
	input := "\ufeff SUBSCRIBER_ID , NAME\nS1,x\n"

	records, err := NewCSVReader(strings.NewReader(input)).Read(context.Background())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if got := records[0].Get("SUBSCRIBER_ID"); got != "S1" {
		t.Errorf("SUBSCRIBER_ID = %q, want S1", got)
	}
	if got := records[0].Get("NAME"); got != "x" {
		t.Errorf("NAME = %q, want x", got)
	}
}

func TestCSVReader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty input", "", ErrNoHeader},
		{"blank header", " , \nS1,x\n", ErrNoHeader},
		{"duplicate column", "A,B,A\n1,2,3\n", ErrDuplicateColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCSVReader(strings.NewReader(tt.input)).Read(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Read() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCSVReader_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCSVReader(strings.NewReader("A\n1\n")).Read(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Read() error = %v, want context.Canceled", err)
	}
}

func TestXLSXReader_Read(t *testing.T) {
	path := writeWorkbook(t, "Lines", [][]string{
		{"SUBSCRIBER_ID", "PHONE_NUMBER"},
		{"S1", "5551000"},
		{"", ""},
		{"S1", "5551001"},
	})

	records, err := NewXLSXReader(path, "").Read(context.Background())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	want := []Record{
		{Row: 2, Fields: map[string]string{"SUBSCRIBER_ID": "S1", "PHONE_NUMBER": "5551000"}},
		{Row: 4, Fields: map[string]string{"SUBSCRIBER_ID": "S1", "PHONE_NUMBER": "5551001"}},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestXLSXReader_SheetNotFound(t *testing.T) {
	path := writeWorkbook(t, "Lines", [][]string{{"SUBSCRIBER_ID"}, {"S1"}})

	_, err := NewXLSXReader(path, "Missing").Read(context.Background())
	if !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("Read() error = %v, want ErrSheetNotFound", err)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "lines.csv")
	if err := os.WriteFile(csvPath, []byte("SUBSCRIBER_ID\nS1\nS2\n"), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	xlsxPath := writeWorkbook(t, "Sheet1", [][]string{{"SUBSCRIBER_ID"}, {"S3"}})

	tests := []struct {
		name    string
		path    string
		opts    FileOptions
		want    int
		wantErr error
	}{
		{name: "csv by extension", path: csvPath, want: 2},
		{name: "xlsx by extension", path: xlsxPath, want: 1},
		{name: "forced csv format", path: csvPath, opts: FileOptions{Format: FormatCSV}, want: 2},
		{name: "unknown extension", path: filepath.Join(dir, "lines.ods"), wantErr: ErrUnsupportedFormat},
		{name: "unknown format", path: csvPath, opts: FileOptions{Format: "ods"}, wantErr: ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ReadFile(context.Background(), tt.path, tt.opts)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ReadFile() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}
			if len(records) != tt.want {
				t.Errorf("len(records) = %d, want %d", len(records), tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	records := []Record{
		{Row: 2, Fields: map[string]string{"SUBSCRIBER_ID": "S1", "LOCATION_ID": "L1"}},
		{Row: 3, Fields: map[string]string{"SUBSCRIBER_ID": "  ", "LOCATION_ID": "L1"}},
	}

	if err := Validate(records[:1], "SUBSCRIBER_ID", "LOCATION_ID"); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}

	err := Validate(records, "SUBSCRIBER_ID")
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("Validate() error = %v, want ErrMissingColumn", err)
	}
	if !strings.Contains(err.Error(), "row 3") {
		t.Errorf("Validate() error = %q, want row number", err)
	}
}

// writeWorkbook saves rows into a single-sheet workbook and returns its path.
func writeWorkbook(t *testing.T, sheet string, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatalf("rename sheet: %v", err)
		}
	}
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellStr(sheet, cell, value); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "lines.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestCheckColumns(t *testing.T) {
	records := []Record{{Row: 2, Fields: map[string]string{"SUBSCRIBER_ID": "S1", "LOCATION_ID": ""}}}

	if err := CheckColumns(records, "SUBSCRIBER_ID", "LOCATION_ID"); err != nil {
		t.Errorf("CheckColumns() error = %v, want nil for blank value", err)
	}
	if err := CheckColumns(records, "SITE"); !errors.Is(err, ErrMissingColumn) {
		t.Errorf("CheckColumns() error = %v, want ErrMissingColumn", err)
	}
	if err := CheckColumns(nil, "SITE"); err != nil {
		t.Errorf("CheckColumns(nil) error = %v, want nil", err)
	}
}
