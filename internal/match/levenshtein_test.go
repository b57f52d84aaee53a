package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"", "", 0},
		{"text", "text", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"int4", "int8", 1},
		{"timestamp", "timestmp", 1},
		{"varchar", "varchar2", 1},
		{"kitten", "sitting", 3},
		{"numeric", "decimal", 7},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a), "symmetry")
		})
	}
}

func TestSuggest(t *testing.T) {
	allowed := []string{"text", "timestamp", "date", "int4", "int8", "bool"}

	assert.Equal(t, []string{"timestamp"}, Suggest("timestmp", allowed, 2, 3))
	assert.Equal(t, []string{"int4", "int8"}, Suggest("int2", allowed, 1, 3))
	assert.Equal(t, []string{"int4"}, Suggest("int2", allowed, 1, 1))
	assert.Empty(t, Suggest("jsonb", allowed, 1, 3))
	assert.Empty(t, Suggest("text", allowed, 2, 3), "exact match is not a suggestion")
}
