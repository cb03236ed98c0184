package schema

import "strings"

// GenerateAlias derives a short alias from a table name. Single-word
// names longer than three characters get their first two characters;
// shorter single-word names get just the first character. Names with
// underscores get the initials of each non-empty word. The result is
// always lowercase.
//
// The alias is advisory: it is the fallback when a table declares no
// alias of its own, and distinct tables can legitimately produce the
// same alias (e.g. "users" and "user_settings" both yield "us").
func GenerateAlias(tableName string) string {
	words := strings.Split(tableName, "_")

	if len(words) == 1 {
		if len(tableName) > 3 {
			return strings.ToLower(tableName[:2])
		}
		if tableName == "" {
			return ""
		}
		return strings.ToLower(tableName[:1])
	}

	var b strings.Builder
	for _, word := range words {
		if word != "" {
			b.WriteByte(word[0])
		}
	}
	return strings.ToLower(b.String())
}
