package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDuplicates(t *testing.T) {
	in := []string{"a", "b", "", "a", "", "c", "b", "a"}

	assert.Equal(t, []string{"a", "b"}, Duplicates(in, func(s string) bool { return s == "" }))
	assert.Equal(t, []string{"a", "", "b"}, Duplicates(in, nil))
	assert.Empty(t, Duplicates([]int{1, 2, 3}, nil))
}

func TestUniqueBy(t *testing.T) {
	type kv struct{ k, v string }

	in := []kv{{"a", "1"}, {"b", "2"}, {"a", "3"}}
	out := UniqueBy(in, func(e kv) string { return e.k })

	assert.Equal(t, []kv{{"a", "1"}, {"b", "2"}}, out)
}
