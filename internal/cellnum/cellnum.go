// Package cellnum turns raw table cell strings into numbers.
package cellnum

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// currencyRe matches a leading rupee abbreviation, keeping an opening
// parenthesis.
var currencyRe = regexp.MustCompile(`(?i)^(\(?)\s*rs\.?\s*`)

// Normalize converts a printed financial figure to a signed number.
//
// Commas and whitespace are dropped, a value wrapped in parentheses is
// negative, and any character other than an ASCII digit, '.' or '-' is
// discarded. A leading currency abbreviation such as "Rs." is removed first
// so its point is never read as the decimal point.
// Blank and degenerate cells ("-", ".", "-.") are absent, never zero.
func Normalize(raw string) (float64, bool) {
	s := currencyRe.ReplaceAllString(strings.TrimSpace(raw), "$1")
	if s == "" {
		return 0, false
	}

	s = strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	if strings.Contains(s, "(") && strings.Contains(s, ")") {
		s = "-" + strings.NewReplacer("(", "", ")", "").Replace(s)
	}

	s = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)

	switch s {
	case "", "-", ".", "-.":
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Value is Normalize returning nil for an absent cell.
func Value(raw string) *float64 {
	v, ok := Normalize(raw)
	if !ok {
		return nil
	}
	return &v
}

// ParsePlain is the strict reading used for detail tables: surrounding space
// and thousands separators are removed and the rest must parse as a number.
func ParsePlain(raw string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
