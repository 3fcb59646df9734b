package tui

import (
	"strings"
	"unicode"
)

// splitShellWords splits a $VISUAL/$EDITOR value into argv. Single quotes,
// double quotes and backslash escapes (outside single quotes) are honored.
func splitShellWords(s string) []string {
	var out []string
	var cur strings.Builder
	started := false
	var quote rune
	escaped := false

	flush := func() {
		if started {
			out = append(out, cur.String())
		}
		cur.Reset()
		started = false
	}

	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			started = true
		case (r == '\'' || r == '"') && (quote == 0 || quote == r):
			if quote == 0 {
				quote = r
			} else {
				quote = 0
			}
			started = true
		case quote == 0 && unicode.IsSpace(r):
			flush()
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	flush()
	return out
}
