package record

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultDisplayWidth is the cell width used by the record browser.
	DefaultDisplayWidth = 50

	ellipsis = "..."

	// Shortest-decimal output switches to exponent form outside this range.
	minPlainFloat = 1e-5
	maxPlainFloat = 1e21
)

// TypeLabel names the type of v: null, boolean, number, string, object,
// "array (empty)" or "array of <type of first element>".
func TypeLabel(v Value) string {
	switch v.kind {
	case KindArray:
		if len(v.arr) == 0 {
			return "array (empty)"
		}

		return "array of " + TypeLabel(v.arr[0])
	default:
		return v.kind.String()
	}
}

// Text returns the plain text form of a scalar: the string itself, the
// decimal form of a number, or true/false. Null, arrays and objects give "".
func Text(v Value) string {
	switch v.kind {
	case KindString:
		return v.s
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return numberText(v.s)
	default:
		return ""
	}
}

// SearchText flattens v into the text searched by the browser filter.
// Containers join their children with a single space; object members are
// visited in key order.
func SearchText(v Value) string {
	switch v.kind {
	case KindArray:
		parts := make([]string, 0, len(v.arr))
		for _, item := range v.arr {
			parts = append(parts, SearchText(item))
		}

		return strings.Join(parts, " ")
	case KindObject:
		keys := v.Keys()
		parts := make([]string, 0, len(keys))

		for _, key := range keys {
			parts = append(parts, SearchText(v.obj[key]))
		}

		return strings.Join(parts, " ")
	default:
		return Text(v)
	}
}

// DisplayText renders v for a table cell, truncated to maxLen characters
// with a trailing "..." when it does not fit.
func DisplayText(v Value, maxLen int) string {
	var full string

	switch v.kind {
	case KindNull:
		full = "null"
	case KindArray:
		if len(v.arr) == 0 {
			full = "[]"
		} else {
			full = "[" + strconv.Itoa(len(v.arr)) + " items]"
		}
	case KindObject:
		full = "{...}"
	default:
		full = Text(v)
	}

	return Truncate(full, maxLen)
}

// Truncate cuts s to maxLen runes and appends "..." when it was longer.
// A non-positive maxLen leaves s untouched.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	runes := []rune(s)

	return string(runes[:maxLen]) + ellipsis
}

// numberText normalizes a JSON number literal: integers keep their digits,
// other values use the shortest decimal that round-trips.
func numberText(literal string) string {
	if n, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}

	if n, err := strconv.ParseUint(literal, 10, 64); err == nil {
		return strconv.FormatUint(n, 10)
	}

	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return literal
	}

	return formatFloat(f)
}

func formatFloat(f float64) string {
	abs := math.Abs(f)

	if f == math.Trunc(f) && abs < maxPlainFloat {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}

	if abs != 0 && (abs < minPlainFloat || abs >= maxPlainFloat) {
		return trimExponent(strconv.FormatFloat(f, 'e', -1, 64))
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

// trimExponent rewrites 1e+21 as 1e21 and 1e-07 as 1e-7.
func trimExponent(s string) string {
	mantissa, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}

	sign := ""
	switch exp[0] {
	case '-':
		sign = "-"
		exp = exp[1:]
	case '+':
		exp = exp[1:]
	}

	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}

	return mantissa + "e" + sign + exp
}
