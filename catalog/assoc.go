package catalog

import "strings"

// DedupeAssocProducts splits a semicolon-delimited list and removes repeats,
// keeping the order of first appearance. Entries compare as exact substrings,
// so "A" and " A" are distinct. Empty entries are dropped.
func DedupeAssocProducts(assoc string) []string {
	parts := strings.Split(assoc, ";")
	seen := make(map[string]struct{}, len(parts))
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		result = append(result, part)
	}
	return result
}
