package dataprocessing

import (
	"regexp"
	"strings"
)

// parenthetical matches one parenthesized group: shortest span between an
// opening parenthesis and the next closing one. Content may be arbitrary
// multi-byte text. Nested parentheses are not specially handled, so a stray
// closing character can survive cleaning.
var parenthetical = regexp.MustCompile(`\([^)]*\)`)

// CleanColumnName strips parenthetical annotations, surrounding whitespace,
// and a single trailing comma from a raw column name. It is total over any
// input and idempotent.
//
// "PM2.5(细颗粒物), " becomes "PM2.5".
func CleanColumnName(raw string) string {
	cleaned := parenthetical.ReplaceAllString(raw, "")
	cleaned = strings.TrimSpace(cleaned)
	if strings.HasSuffix(cleaned, ",") {
		cleaned = strings.TrimSpace(strings.TrimSuffix(cleaned, ","))
	}
	return cleaned
}

// CleanHeaderFields applies CleanColumnName to every field of an
// already-parsed header row. Column count and order are preserved
// unconditionally; fields that clean to the empty string stay in place.
func CleanHeaderFields(fields []string) []string {
	cleaned := make([]string, len(fields))
	for i, field := range fields {
		cleaned[i] = CleanColumnName(field)
	}
	return cleaned
}

// RewriteHeaderLine rewrites a raw header line without any quote awareness:
// it splits on every comma, cleans each token, discards tokens that clean to
// the empty string, and rejoins the survivors with ", ". Dropping empty
// tokens means the output can have fewer columns than the input line.
func RewriteHeaderLine(line string) string {
	var cleaned []string
	for _, token := range strings.Split(line, ",") {
		if name := CleanColumnName(token); name != "" {
			cleaned = append(cleaned, name)
		}
	}
	return strings.Join(cleaned, ", ")
}
