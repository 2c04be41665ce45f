package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeQuery prepares free-text search input:
//   - applies NFKC, the same form the store compares against, so full-width
//     ASCII becomes half-width and half-width katakana becomes composed
//     full-width kana
//   - trims leading/trailing whitespace
//   - compresses runs of whitespace into one space
//
// Case is left alone; matching is case-insensitive in the store.
func NormalizeQuery(q string) string {
	q = strings.TrimSpace(norm.NFKC.String(q))
	if q == "" {
		return ""
	}
	return strings.Join(strings.Fields(q), " ")
}
