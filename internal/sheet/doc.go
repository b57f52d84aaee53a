// Package sheet reads named sheets of a spreadsheet workbook into
// column-addressable tables.
//
// Column names are compared case-insensitively after trimming. Missing
// required columns are resolved through a per-sheet alias table; columns that
// are still missing fail the load with ErrMissingColumns.
package sheet
