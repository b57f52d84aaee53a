// Package common holds small generic helpers shared by the generator packages.
package common

// Duplicates returns the values that occur more than once, each reported once,
// in order of their second occurrence. Values for which skip returns true are ignored.
func Duplicates[S ~[]E, E comparable](s S, skip func(E) bool) []E {
	seen := make(map[E]int, len(s))

	var dups []E

	for _, v := range s {
		if skip != nil && skip(v) {
			continue
		}

		seen[v]++
		if seen[v] == 2 {
			dups = append(dups, v)
		}
	}

	return dups
}

// UniqueBy keeps the first element for every key, preserving order.
func UniqueBy[S ~[]E, E any, K comparable](s S, key func(E) K) S {
	seen := make(map[K]struct{}, len(s))
	out := make(S, 0, len(s))

	for _, v := range s {
		k := key(v)
		if _, ok := seen[k]; ok {
			continue
		}

		seen[k] = struct{}{}
		out = append(out, v)
	}

	return out
}
