package sheet

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rdv-generator/internal/sheet/sheettest"
)

func TestLoadTable_HeaderOffsetAndCaseInsensitiveColumns(t *testing.T) {
	wb := MemoryWorkbook{
		"flows": {
			{"Flow list for ledger"},
			{" Flow_Name ", "TGT_TABLE", "Comment"},
			{"wf_a", "rdv.mart_a", "first"},
			{"", "", ""},
			{"wf_b", "rdv.mart_b"},
		},
	}

	tbl, err := LoadTable(wb, TableSpec{Sheet: "flows", HeaderRow: 1, Columns: []string{"flow_name", "tgt_table", "comment"}})
	require.NoError(t, err)

	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, []string{"flow_name", "tgt_table", "comment"}, tbl.Columns())

	rows := tbl.Rows()
	assert.Equal(t, "wf_a", rows[0].Get("flow_name"))
	assert.Equal(t, "first", rows[0].Get("COMMENT"))
	assert.Equal(t, 3, rows[0].Line)
	assert.Equal(t, "", rows[1].Get("comment"))
	assert.Equal(t, 5, rows[1].Line)
	assert.Equal(t, "", rows[1].Get("absent"))
}

func TestLoadTable_Alias(t *testing.T) {
	wb := MemoryWorkbook{
		"details": {
			{},
			{"tgt_table", "Целевое поле"},
			{"rdv.mart_a", "col_a"},
		},
	}

	tbl, err := LoadTable(wb, TableSpec{
		Sheet:     "details",
		HeaderRow: 1,
		Columns:   []string{"tgt_table", "tgt_attribute"},
		Aliases:   map[string]string{"TGT_ATTRIBUTE": " целевое поле "},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"целевое поле": "tgt_attribute"}, tbl.Aliased)
	assert.Equal(t, "col_a", tbl.Rows()[0].Get("tgt_attribute"))
	assert.True(t, tbl.HasColumn("Tgt_Attribute"))
}

func TestLoadTable_MissingColumns(t *testing.T) {
	wb := MemoryWorkbook{"s": {{}, {"a"}, {"1"}}}

	_, err := LoadTable(wb, TableSpec{Sheet: "s", HeaderRow: 1, Columns: []string{"a", "b", "c"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumns))

	var mce *MissingColumnsError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, []string{"b", "c"}, mce.Missing)
}

func TestLoadTable_NoColumnsKeepsHeader(t *testing.T) {
	wb := MemoryWorkbook{"s": {{}, {"a", "b", "a"}, {"1", "2", "3"}}}

	tbl, err := LoadTable(wb, TableSpec{Sheet: "s", HeaderRow: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, tbl.Columns())
	assert.Equal(t, "1", tbl.Rows()[0].Get("a"))
}

func TestLoadTable_SheetNotFound(t *testing.T) {
	_, err := LoadTable(MemoryWorkbook{}, TableSpec{Sheet: "absent"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSheetNotFound))
}

func TestLoadTable_SheetNotFoundSuggestsNames(t *testing.T) {
	wb := MemoryWorkbook{"Details": {{"a"}}, "Flows": {{"a"}}, "Archive 2023": {{"a"}}}

	tests := []struct {
		name  string
		sheet string
		want  string
	}{
		{name: "singular", sheet: "Detail", want: `did you mean "Details"?`},
		{name: "missing letter", sheet: "Flow", want: `did you mean "Flows"?`},
		{name: "nothing close", sheet: "Summary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTable(wb, TableSpec{Sheet: tt.sheet})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSheetNotFound))

			if tt.want == "" {
				assert.NotContains(t, err.Error(), "did you mean")
				return
			}

			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadTable_RepeatedRequiredColumn(t *testing.T) {
	wb := MemoryWorkbook{"s": {{"A", "b"}, {"1", "2"}}}

	tbl, err := LoadTable(wb, TableSpec{Sheet: "s", Columns: []string{"a", "b", "A"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, tbl.Columns())
	assert.Equal(t, "1", tbl.Rows()[0].Get("a"))
}

func TestMemoryWorkbook_SheetNames(t *testing.T) {
	wb := MemoryWorkbook{"b": nil, "a": nil}

	assert.Equal(t, []string{"a", "b"}, wb.SheetNames())
}

func TestLoadTable_HeaderRowOutOfRange(t *testing.T) {
	_, err := LoadTable(MemoryWorkbook{"s": {{"a"}}}, TableSpec{Sheet: "s", HeaderRow: 1})
	require.Error(t, err)
}

func TestOpenWorkbook(t *testing.T) {
	data := sheettest.Build(t, sheettest.Sheet{
		Name: "Перечень загрузок Src-RDV",
		Rows: [][]any{
			{"title"},
			{"flow_name", "subalgorithm_uid"},
			{"wf_a", 12},
		},
	})

	wb, err := OpenWorkbook(data)
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()

	assert.Equal(t, []string{"Перечень загрузок Src-RDV"}, wb.SheetNames())

	tbl, err := LoadTable(wb, TableSpec{Sheet: "Перечень загрузок Src-RDV", HeaderRow: 1, Columns: []string{"flow_name", "subalgorithm_uid"}})
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, "12", tbl.Rows()[0].Get("subalgorithm_uid"))

	_, err = wb.Rows("absent")
	assert.True(t, errors.Is(err, ErrSheetNotFound))
}

func TestOpenWorkbook_Garbage(t *testing.T) {
	_, err := OpenWorkbook([]byte("not a workbook"))
	require.Error(t, err)
}
