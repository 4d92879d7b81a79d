package calculator

import (
	"fmt"
	"strings"
)

// FormatDate converts an ISO date ("2024-03-05") into its display form
// ("2024年3月5日").
//
// The year is kept as written. Month and day are read up to the first
// non-digit and lose their leading zeros; a part that is missing or has no
// digits renders as "NaN". Malformed input is never rejected.
func FormatDate(date string) string {
	parts := strings.Split(date, "-")
	number := func(i int) string {
		if i >= len(parts) {
			return "NaN"
		}
		return leadingInt(parts[i])
	}
	return fmt.Sprintf("%s年%s月%s日", parts[0], number(1), number(2))
}

// leadingInt returns the integer prefix of s in canonical form: optional
// leading whitespace and sign, then digits with leading zeros removed.
func leadingInt(s string) string {
	s = strings.TrimLeft(s, " \t\n\r\v\f")

	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return "NaN"
	}

	digits := strings.TrimLeft(s[:end], "0")
	if digits == "" {
		return "0"
	}
	if negative {
		return "-" + digits
	}
	return digits
}
