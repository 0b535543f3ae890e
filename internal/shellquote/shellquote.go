// Package shellquote quotes and splits POSIX shell words.
package shellquote

import (
	"errors"
	"strings"
)

// ErrUnterminated is returned by Split for an unclosed quote or a trailing
// backslash.
var ErrUnterminated = errors.New("unterminated quote or escape")

// Quote wraps s in single quotes, escaping any internal single quotes.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// QuoteIfNeeded quotes strings that are likely to be interpreted by a shell.
func QuoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n#[]()|!\"'$&;<>*?`\\") {
		return Quote(s)
	}
	return s
}

// Split breaks a command line into words the way a POSIX shell would, without
// expansions: whitespace separates words, single quotes are literal, double
// quotes allow \" \\ \$ and \` escapes, and a backslash outside quotes escapes
// the next character.
func Split(line string) ([]string, error) {
	var words []string
	var cur strings.Builder
	inWord := false

	const (
		plain = iota
		single
		double
	)
	state := plain

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch state {
		case single:
			if r == '\'' {
				state = plain
				continue
			}
			cur.WriteRune(r)

		case double:
			switch r {
			case '"':
				state = plain
			case '\\':
				if i+1 >= len(runes) {
					return nil, ErrUnterminated
				}
				next := runes[i+1]
				if strings.ContainsRune("\"\\$`", next) {
					cur.WriteRune(next)
					i++
				} else if next == '\n' {
					i++
				} else {
					cur.WriteRune(r)
				}
			default:
				cur.WriteRune(r)
			}

		default:
			switch r {
			case ' ', '\t', '\n':
				if inWord {
					words = append(words, cur.String())
					cur.Reset()
					inWord = false
				}
			case '\'':
				state = single
				inWord = true
			case '"':
				state = double
				inWord = true
			case '\\':
				if i+1 >= len(runes) {
					return nil, ErrUnterminated
				}
				i++
				if runes[i] != '\n' {
					cur.WriteRune(runes[i])
					inWord = true
				}
			default:
				cur.WriteRune(r)
				inWord = true
			}
		}
	}

	if state != plain {
		return nil, ErrUnterminated
	}
	if inWord {
		words = append(words, cur.String())
	}
	return words, nil
}
