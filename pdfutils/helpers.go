package pdfutils

import (
	"regexp"
	"strings"
	"unicode"
)

func RemoveNul(str string) string {
	return strings.Map(func(r rune) rune {
		if r == unicode.ReplacementChar {
			return -1
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, str)
}

var lineBreaks = regexp.MustCompile(`\r\n|\r|\n`)

// SplitLines splits annotation text into drawable lines. Control characters
// other than line breaks are removed.
func SplitLines(str string) []string {
	lines := lineBreaks.Split(str, -1)

	for i, line := range lines {
		lines[i] = RemoveNul(line)
	}

	return lines
}
