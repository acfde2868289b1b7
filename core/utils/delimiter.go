package utils

import (
	"fmt"
	"unicode/utf8"
)

// DelimiterRune returns the first rune of d as a column delimiter, ',' when d is
// empty. Quotes and line breaks are rejected since they cannot separate columns
// in a delimited file.
func DelimiterRune(d string) (rune, error) {
	if d == "" {
		return ',', nil
	}
	r, _ := utf8.DecodeRuneInString(d)
	if r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("invalid delimiter %q", d)
	}
	return r, nil
}
