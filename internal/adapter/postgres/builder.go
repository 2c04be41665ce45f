package postgres

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Builder returns a squirrel statement builder using $N placeholders.
func Builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern turns user input into an ILIKE pattern matching it as a
// literal substring.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// FoldedILike matches column against pattern after NFKC normalisation, so
// full-width and half-width forms compare equal.
func FoldedILike(column, pattern string) sq.Sqlizer {
	return sq.Expr("normalize("+column+", NFKC) ILIKE ?", pattern)
}
