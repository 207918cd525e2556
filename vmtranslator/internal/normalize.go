package internal

import (
	"strings"

	"github.com/xiaobogaga/hackvm/util"
)

// Line is a normalized, non-empty source line and its 1-based line number.
type Line struct {
	Number int
	Text   string
}

// NormalizeLine removes a trailing // comment, reduces runs of the same
// whitespace character to one and trims the result.
func NormalizeLine(raw string) string {
	if index := strings.Index(raw, "//"); index != -1 {
		raw = raw[:index]
	}
	var builder strings.Builder
	builder.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if i > 0 && util.IsWhiteSpace(c) && raw[i-1] == c {
			continue
		}
		builder.WriteByte(c)
	}
	return strings.TrimSpace(builder.String())
}

// Normalize splits source into lines and keeps those with content left after
// normalization.
func Normalize(source string) []Line {
	var lines []Line
	for i, raw := range strings.Split(source, "\n") {
		text := NormalizeLine(raw)
		if len(text) == 0 {
			continue
		}
		lines = append(lines, Line{Number: i + 1, Text: text})
	}
	return lines
}
