package grading

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// leadingNumber matches a decimal number at the start of the text. Hex
// prefixes and digit separators are not part of it, so "0x4C" reads as 0.
var leadingNumber = regexp.MustCompile(`^[+-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?`)

// ParseNumber reads the leading decimal number of s, ignoring leading
// whitespace and anything after the number: "76%" is 76 and "0.5cr" is 0.5.
// A leading "Infinity" reads as an infinite value. It reports false when s
// does not start with a number.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	unsigned := strings.TrimLeft(s[:1], "+-") + s[1:]
	if strings.HasPrefix(unsigned, "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}
	m := leadingNumber.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// Exponent overflow still yields ±Inf with a range error.
		if !math.IsInf(v, 0) {
			return 0, false
		}
	}
	return v, true
}
