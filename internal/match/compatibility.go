package match

import (
	"slices"
)

// Verdict is the result of checking a source/target datatype pair.
type Verdict int

const (
	// VerdictUnchecked means no compatibility table is configured.
	VerdictUnchecked Verdict = iota
	// VerdictCompatible means the pair is listed.
	VerdictCompatible
	// VerdictUnknownSource means the source datatype has no entry in the table.
	VerdictUnknownSource
	// VerdictIncompatible means the target datatype is not listed for the source.
	VerdictIncompatible
)

// String returns a human-readable name for the verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictUnchecked:
		return "unchecked"
	case VerdictCompatible:
		return "compatible"
	case VerdictUnknownSource:
		return "unknown_source"
	case VerdictIncompatible:
		return "incompatible"
	default:
		return "unknown"
	}
}

// CompatibilityTable lists, per source datatype, the target datatypes it may load into.
type CompatibilityTable map[string][]string

// Enabled reports whether the table has any entry.
func (t CompatibilityTable) Enabled() bool {
	return len(t) > 0
}

// Check returns the verdict for loading a src datatype into a tgt datatype.
func (t CompatibilityTable) Check(src, tgt string) Verdict {
	if !t.Enabled() {
		return VerdictUnchecked
	}

	allowed, ok := t[src]
	if !ok {
		return VerdictUnknownSource
	}

	if slices.Contains(allowed, tgt) {
		return VerdictCompatible
	}

	return VerdictIncompatible
}
