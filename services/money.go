package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseMoney converts heterogeneous monetary text into a signed amount.
// Supplier price lists arrive with currency symbols, thousands separators
// in either locale convention, and accountant-style parenthesized
// negatives ("(500)" means -500). It returns NaN on anything it cannot
// parse so callers can filter invalid rows without error handling.
func ParseMoney(input any) float64 {
	if input == nil {
		return math.NaN()
	}

	var s string
	switch v := input.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		s = v
	default:
		s = fmt.Sprintf("%v", v)
	}

	// Keep only digits, separators, minus and parentheses.
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-', r == '(', r == ')':
			b.WriteRune(r)
		}
	}
	s = b.String()
	if s == "" {
		return math.NaN()
	}

	negative := false
	if strings.Contains(s, "(") && strings.Contains(s, ")") {
		negative = true
	}
	s = strings.ReplaceAll(s, "(", "")
	s = strings.ReplaceAll(s, ")", "")

	hasComma := strings.Contains(s, ",")
	hasPeriod := strings.Contains(s, ".")
	switch {
	case hasComma && hasPeriod:
		// Both separators present: whichever occurs last is the decimal
		// point. "1,234.56" and "1.234,56" both mean 1234.56.
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		// Comma only: "1,000" groups thousands, "12,5" is a European
		// decimal.
		if commaIsThousands(s) {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(n, 0) {
		return math.NaN()
	}
	if negative {
		n = -n
	}
	return n
}

// commaIsThousands reports whether the commas in a comma-only amount
// group thousands rather than mark a decimal: more than one comma, or
// a single comma followed by exactly three digits.
func commaIsThousands(s string) bool {
	if strings.Count(s, ",") > 1 {
		return true
	}
	rest := s[strings.Index(s, ",")+1:]
	return len(rest) == 3 && !strings.ContainsAny(rest, ",.-")
}

// Round2 rounds to 2 decimal places, half away from zero. Suggested unit
// prices and line totals are stored rounded so that displayed sums match
// the displayed lines exactly.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatRand formats an amount in South African Rand notation with
// standard 3-digit grouping, e.g. R 1,234,567.89. Always two decimals.
func FormatRand(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := "R " + groupThousands(intPart) + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas every 3 digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "," + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "," + result
}
