package sheet

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"rdv-generator/internal/match"
)

const (
	suggestMaxDistance = 3
	suggestLimit       = 3
)

// ErrMissingColumns is returned when required columns are absent after alias resolution.
var ErrMissingColumns = errors.New("required columns not found")

// MissingColumnsError lists the columns that could not be resolved on a sheet.
type MissingColumnsError struct {
	Sheet   string
	Missing []string
	Allowed []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("sheet %q: columns %s not found (allowed: %s)",
		e.Sheet, strings.Join(e.Missing, ", "), strings.Join(e.Allowed, ", "))
}

func (e *MissingColumnsError) Unwrap() error {
	return ErrMissingColumns
}

// TableSpec describes how to load one sheet.
type TableSpec struct {
	Sheet string
	// HeaderRow is the zero-based index of the header row; data starts below it.
	HeaderRow int
	// Columns are the required column names. Empty keeps every column.
	Columns []string
	// Aliases maps a required column name to the name used on the sheet.
	Aliases map[string]string
}

// Table is a loaded sheet.
type Table struct {
	Sheet string
	// Aliased maps sheet column names to the required names they were renamed to.
	Aliased map[string]string

	columns []string
	// index maps a column to its position on the sheet.
	index map[string]int
	rows  []Row
}

// Row is a single data row of a table.
type Row struct {
	table *Table
	cells []string
	// Line is the 1-based row number on the sheet.
	Line int
}

// NormalizeColumn lower-cases and trims a column name.
func NormalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// LoadTable reads a sheet from the workbook according to spec.
func LoadTable(wb Workbook, spec TableSpec) (*Table, error) {
	raw, err := wb.Rows(spec.Sheet)
	if errors.Is(err, ErrSheetNotFound) {
		if near := match.Suggest(spec.Sheet, wb.SheetNames(), suggestMaxDistance, suggestLimit); len(near) > 0 {
			return nil, fmt.Errorf("%w; did you mean %s?", err, quoteAll(near))
		}
	}

	if err != nil {
		return nil, err
	}

	if spec.HeaderRow >= len(raw) {
		return nil, fmt.Errorf("sheet %q: header row %d not found", spec.Sheet, spec.HeaderRow+1)
	}

	header := raw[spec.HeaderRow]
	present := make(map[string]int, len(header))

	for i, name := range header {
		n := NormalizeColumn(name)
		if n == "" {
			continue
		}

		if _, dup := present[n]; !dup {
			present[n] = i
		}
	}

	t := &Table{Sheet: spec.Sheet, Aliased: map[string]string{}, index: map[string]int{}}

	required := make([]string, 0, len(spec.Columns))
	for _, c := range spec.Columns {
		required = append(required, NormalizeColumn(c))
	}

	if len(required) == 0 {
		for _, name := range header {
			n := NormalizeColumn(name)
			if n != "" && !slices.Contains(required, n) {
				required = append(required, n)
			}
		}
	}

	aliases := make(map[string]string, len(spec.Aliases))
	for k, v := range spec.Aliases {
		aliases[NormalizeColumn(k)] = NormalizeColumn(v)
	}

	var missing []string

	for _, col := range required {
		if t.HasColumn(col) {
			continue
		}

		if pos, ok := present[col]; ok {
			t.addColumn(col, pos)
			continue
		}

		if alias, ok := aliases[col]; ok && alias != "" {
			if pos, ok := present[alias]; ok {
				t.addColumn(col, pos)
				t.Aliased[alias] = col

				continue
			}
		}

		missing = append(missing, col)
	}

	if len(missing) > 0 {
		return nil, &MissingColumnsError{Sheet: spec.Sheet, Missing: missing, Allowed: required}
	}

	for i := spec.HeaderRow + 1; i < len(raw); i++ {
		row := Row{table: t, Line: i + 1}

		row.cells = make([]string, len(t.columns))
		for c, col := range t.columns {
			pos := t.index[col]
			if pos < len(raw[i]) {
				row.cells[c] = raw[i][pos]
			}
		}

		if row.blank() {
			continue
		}

		t.rows = append(t.rows, row)
	}

	return t, nil
}

// addColumn registers a required column found at sheet position pos.
func (t *Table) addColumn(name string, pos int) {
	t.columns = append(t.columns, name)
	t.index[name] = pos
}

// Columns returns the table's column names in required order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Rows returns the data rows, skipping rows whose cells are all empty.
func (t *Table) Rows() []Row {
	return t.rows
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// HasColumn reports whether the table has the column.
func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.columns, NormalizeColumn(name))
}

// Get returns the raw cell value of a column, or "" if the column is absent.
func (r Row) Get(column string) string {
	col := NormalizeColumn(column)
	for i, c := range r.table.columns {
		if c == col {
			return r.cells[i]
		}
	}

	return ""
}

func (r Row) blank() bool {
	for _, c := range r.cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = strconv.Quote(n)
	}

	return strings.Join(quoted, ", ")
}
