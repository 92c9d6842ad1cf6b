package cpu

import (
	"strings"
	"unicode"
)

// ParseMessage splits the arguments of a msg instruction into fragments.
//
// A single quote opens and closes literal text. Outside quotes, commas and
// whitespace separate arguments, and every other character is an operand
// of its own. An unterminated literal is dropped.
func ParseMessage(text string) (frags []Fragment) {
	var span strings.Builder
	quoted := false

	for _, ch := range text {
		switch {
		case ch == '\'':
			if quoted {
				frags = append(frags, Fragment{Text: span.String()})
				span.Reset()
			}
			quoted = !quoted
		case quoted:
			span.WriteRune(ch)
		case ch == ',' || unicode.IsSpace(ch):
			// separator
		default:
			arg := ParseOperand(string(ch))
			frags = append(frags, Fragment{Operand: &arg})
		}
	}

	return
}

// cutMessageComment removes a trailing comment from a msg line, leaving
// any ';' inside quoted text in place.
func cutMessageComment(line string) string {
	quoted := false
	for n := range len(line) {
		switch line[n] {
		case '\'':
			quoted = !quoted
		case ';':
			if !quoted {
				return line[:n]
			}
		}
	}

	return line
}
