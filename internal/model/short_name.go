package model

import (
	"math/rand/v2"
	"strings"
)

// ShortNameCharset is the alphabet of random short-name suffixes.
const ShortNameCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// ShortNamer builds bounded-length lower-case names.
// Names longer than Length are cut to Length-RandomLength characters and
// completed with a random suffix drawn from CharSet.
type ShortNamer struct {
	Length       int
	RandomLength int
	CharSet      string
	// AlwaysExpand appends the random suffix even to short names.
	AlwaysExpand bool
	// IntN returns a random number in [0, n); nil uses math/rand/v2.
	IntN func(n int) int
}

// DefaultShortNamer returns the 22/6 rule used for sources, targets and hubs.
func DefaultShortNamer() ShortNamer {
	return ShortNamer{Length: 22, RandomLength: 6, CharSet: ShortNameCharset}
}

// Name returns the short name for name.
func (s ShortNamer) Name(name string) string {
	runes := []rune(name)
	if len(runes) <= s.Length && !s.AlwaysExpand {
		return strings.ToLower(name)
	}

	keep := min(max(s.Length-s.RandomLength, 0), len(runes))

	intN := s.IntN
	if intN == nil {
		intN = rand.IntN
	}

	charset := []rune(s.CharSet)
	if len(charset) == 0 {
		charset = []rune(ShortNameCharset)
	}

	var b strings.Builder

	b.WriteString(string(runes[:keep]))

	for range s.RandomLength {
		b.WriteRune(charset[intN(len(charset))])
	}

	return strings.ToLower(b.String())
}

// CreateShortName applies the short-name rule with the default character set.
func CreateShortName(name string, length, randomLength int) string {
	return ShortNamer{Length: length, RandomLength: randomLength, CharSet: ShortNameCharset}.Name(name)
}

// ActualDttmName returns the name of the actuality timestamp field of a source code.
func ActualDttmName(srcCd string) string {
	return strings.ToLower(srcCd) + "_actual_dttm"
}
