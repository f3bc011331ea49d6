package repositories

import "strings"

// lowered folds search input for the case-insensitive LIKE clauses; the
// columns are folded with LOWER() so the behavior matches on postgres and
// sqlite without ILIKE.
func lowered(s string) string {
	return strings.ToLower(s)
}
