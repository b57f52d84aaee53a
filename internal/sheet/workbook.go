package sheet

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound is returned when a workbook has no sheet with the requested name.
var ErrSheetNotFound = errors.New("sheet not found")

// Workbook yields the raw rows of a named sheet.
type Workbook interface {
	Rows(sheet string) ([][]string, error)
	SheetNames() []string
}

// ExcelWorkbook is a Workbook backed by an xlsx document.
type ExcelWorkbook struct {
	f *excelize.File
}

// OpenWorkbook parses xlsx content.
func OpenWorkbook(data []byte) (*ExcelWorkbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}

	return &ExcelWorkbook{f: f}, nil
}

// Rows returns every row of the sheet with cell values formatted as displayed.
func (w *ExcelWorkbook) Rows(sheet string) ([][]string, error) {
	idx, err := w.f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}

	rows, err := w.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	return rows, nil
}

// SheetNames lists the sheets of the workbook in order.
func (w *ExcelWorkbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// Close releases the workbook.
func (w *ExcelWorkbook) Close() error {
	return w.f.Close()
}

// MemoryWorkbook is a Workbook held in memory, keyed by sheet name.
type MemoryWorkbook map[string][][]string

// Rows returns the rows of the named sheet.
func (m MemoryWorkbook) Rows(sheet string) ([][]string, error) {
	rows, ok := m[sheet]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}

	return rows, nil
}

// SheetNames lists the sheets in name order.
func (m MemoryWorkbook) SheetNames() []string {
	return slices.Sorted(maps.Keys(m))
}
