package projection

import "strings"

// LikeEscape must follow every LIKE comparison fed by ContainsPattern.
const LikeEscape = `ESCAPE '\'`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern turns a search term into a lowercase LIKE pattern matching it anywhere.
// Wildcards typed by the caller match literally. ok is false for a blank term.
func ContainsPattern(term string) (pattern string, ok bool) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return "", false
	}
	return "%" + likeEscaper.Replace(term) + "%", true
}

// ContainsAny builds a case-insensitive OR of escaped LIKE comparisons, one
// placeholder per column, for use with a ContainsPattern value.
func ContainsAny(columns ...string) string {
	parts := make([]string, 0, len(columns))
	for _, column := range columns {
		parts = append(parts, "LOWER("+column+") LIKE ? "+LikeEscape)
	}
	return strings.Join(parts, " OR ")
}
