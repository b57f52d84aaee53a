package mapping

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/spf13/cast"

	"rdv-generator/internal/match"
)

// PKToken is the tgt_pk token that marks a primary key column.
const PKToken = "pk"

// maxExactFloat is the largest integer a float64 holds exactly.
const maxExactFloat = 1 << 53

// nbsp is a non-breaking space. Spreadsheets leave it in otherwise empty cells.
const nbsp = "\u00a0"

func normalizeTable(s string) string {
	return strings.ToLower(match.StripSpaces(s))
}

// NormalizeUID strips whitespace and the ".0" tail a spreadsheet adds to numeric cells.
func NormalizeUID(s string) string {
	s = match.StripSpaces(s)
	if !strings.Contains(s, ".") {
		return s
	}

	f, err := cast.ToFloat64E(s)
	if err != nil || f != math.Trunc(f) || math.Abs(f) >= maxExactFloat {
		return s
	}

	return cast.ToString(int64(f))
}

// ParsePKFlag parses a src_pk cell: empty is false, the "pk" marker is true,
// and boolean literals keep their value. Anything else is false with an error.
func ParsePKFlag(raw string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(raw))

	switch v {
	case "":
		return false, nil
	case PKToken:
		return true, nil
	}

	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, fmt.Errorf("unrecognized primary key flag %q", raw)
	}

	return b, nil
}

// SplitPKTokens splits a composite tgt_pk value into lower-case tokens.
func SplitPKTokens(raw string) []string {
	v := strings.ToLower(match.StripSpaces(raw))
	if v == "" {
		return nil
	}

	return strings.Split(v, ",")
}

// UnknownPKTokens returns the tokens that are not in allowed.
func UnknownPKTokens(tokens, allowed []string) []string {
	var unknown []string

	for _, t := range tokens {
		if !slices.Contains(allowed, t) {
			unknown = append(unknown, t)
		}
	}

	return unknown
}

// NormalizeMandatory lower-cases a mandatory flag and maps empty and
// non-breaking-space cells to "null".
func NormalizeMandatory(raw string) string {
	if raw == "" || raw == nbsp {
		return MandatoryNull
	}

	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return MandatoryNull
	}

	return v
}
