package parser

import (
	"regexp"
	"strings"
)

// corruptedPattern matches the artifacts left behind by an old export that
// dumped language objects as tagged YAML and re-read UTF-8 text as Latin-1.
var corruptedPattern = regexp.MustCompile(`!!python/|\x{FFFD}|â€|â˜|Ã[\x{0080}-\x{00BF}]`)

// IsCorrupted reports whether s contains a corrupted serialization fragment.
func IsCorrupted(s string) bool {
	if s == "" {
		return false
	}
	return corruptedPattern.MatchString(s)
}

func anyCorrupted(values ...string) bool {
	for _, v := range values {
		if IsCorrupted(v) {
			return true
		}
	}
	return false
}

// cleanText trims surrounding whitespace and the trailing newline block
// scalars carry.
func cleanText(s string) string {
	return strings.TrimSpace(s)
}
