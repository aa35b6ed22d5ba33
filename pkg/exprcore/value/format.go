package value

import (
	"math"
	"strconv"
	"strings"
)

// displayDigits is the number of significant digits shown for approximate numbers.
const displayDigits = 12

func formatApprox(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "INFINITY"
	case math.IsInf(f, -1):
		return "-INFINITY"
	case math.IsNaN(f):
		return "NaN"
	case math.Abs(f) < epsilon:
		if f < 0 {
			return "-0"
		}
		return "0"
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	neg := s[0] == '-'
	if neg {
		s = s[1:]
	}
	mant, expPart, _ := strings.Cut(s, "e")
	exp, _ := strconv.Atoi(expPart)
	digits := strings.Replace(mant, ".", "", 1)

	digits, exp = roundHalfEven(digits, exp, displayDigits)
	digits = strings.TrimRight(digits, "0")
	if digits == "" {
		digits = "0"
	}

	out := plainString(digits, exp)
	if neg {
		return "-" + out
	}
	return out
}

// roundHalfEven rounds the significand d1.d2d3...×10^exp to n digits.
func roundHalfEven(digits string, exp, n int) (string, int) {
	if len(digits) <= n {
		return digits, exp
	}
	keep, rest := []byte(digits[:n]), digits[n:]

	up := false
	switch {
	case rest[0] > '5':
		up = true
	case rest[0] == '5':
		if strings.TrimRight(rest[1:], "0") != "" {
			up = true
		} else {
			up = (keep[n-1]-'0')%2 == 1
		}
	}
	if !up {
		return string(keep), exp
	}

	for i := n - 1; i >= 0; i-- {
		if keep[i] < '9' {
			keep[i]++
			return string(keep), exp
		}
		keep[i] = '0'
	}
	// every digit carried: 99.9 -> 100
	return "1" + string(keep[:n-1]), exp + 1
}

// plainString renders d1.d2d3...×10^exp without an exponent.
func plainString(digits string, exp int) string {
	switch {
	case exp < 0:
		return "0." + strings.Repeat("0", -exp-1) + digits
	case exp+1 >= len(digits):
		return digits + strings.Repeat("0", exp+1-len(digits))
	default:
		return digits[:exp+1] + "." + digits[exp+1:]
	}
}
