// Package lineimport reads subscriber line records from spreadsheet exports.
//
// Each data row of the input becomes one Record: a read-only mapping from
// column header to cell value. The first row of the file names the fields.
//
// # Supported Formats
//
//   - .csv: comma-separated export (UTF-8, optional BOM)
//   - .xlsx: Excel workbook; the first sheet is read unless one is named
//
// # Usage
//
//	records, err := lineimport.ReadFile(ctx, "lines.csv", lineimport.FileOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := lineimport.Validate(records, "SUBSCRIBER_ID"); err != nil {
//	    log.Fatal(err)
//	}
//
// Records are shared by reference with the provisioning and template
// packages; nothing downstream mutates them.
package lineimport
