// Package sheettest builds xlsx workbooks in memory for tests.
package sheettest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// Sheet is a named sheet with its rows, header rows included.
type Sheet struct {
	Name string
	Rows [][]any
}

// Build writes the sheets into a new xlsx document and returns its bytes.
func Build(t testing.TB, sheets ...Sheet) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for _, s := range sheets {
		_, err := f.NewSheet(s.Name)
		require.NoError(t, err)

		for i, row := range s.Rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)

			r := row
			require.NoError(t, f.SetSheetRow(s.Name, cell, &r))
		}
	}

	require.NoError(t, f.DeleteSheet("Sheet1"))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	return buf.Bytes()
}
