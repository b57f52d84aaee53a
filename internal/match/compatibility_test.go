package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompatibilityTable_Check(t *testing.T) {
	table := CompatibilityTable{
		"text":    {"text", "timestamp", "date", "int8"},
		"numeric": {"decimal"},
	}

	tests := []struct {
		src, tgt string
		want     Verdict
	}{
		{"text", "timestamp", VerdictCompatible},
		{"numeric", "decimal", VerdictCompatible},
		{"numeric", "text", VerdictIncompatible},
		{"jsonb", "text", VerdictUnknownSource},
	}

	for _, tt := range tests {
		t.Run(tt.src+"->"+tt.tgt, func(t *testing.T) {
			got := table.Check(tt.src, tt.tgt)
			assert.Equal(t, tt.want, got, got.String())
		})
	}

	assert.Equal(t, VerdictUnchecked, CompatibilityTable(nil).Check("text", "text"))
}

func TestNormalizeDatatype(t *testing.T) {
	aliases := map[string]string{"varchar": "text", "int": "int4"}

	assert.Equal(t, "text", NormalizeDatatype(" VARCHAR ", aliases))
	assert.Equal(t, "int4", NormalizeDatatype("int", aliases))
	assert.Equal(t, "integer", NormalizeDatatype("Integer", aliases))
	assert.Equal(t, "varchar(10)", NormalizeDatatype("varchar(10)", aliases))
	assert.Equal(t, "text", NormalizeDatatype("text", nil))
}

func TestStripSpaces(t *testing.T) {
	assert.Equal(t, "='SRC'", StripSpaces(" = 'SRC' \t"))
	assert.Equal(t, "123", StripSpaces("1 2 3"))
	assert.Equal(t, "", StripSpaces(" \n "))
}
