package pkg

import (
	"math"
	"strconv"
	"strings"
)

type NumberFormat struct {
	Grouping string
	Decimal  string
}

// KoreanNumberFormat is the ko-KR decimal style the API uses, e.g. "1,234".
var KoreanNumberFormat = NumberFormat{Grouping: ",", Decimal: "."}

// Parse converts s to a float64, returning 0 when s is not a decimal number
// in this format. Grouping separators must split the integer part into
// groups of three.
func (f NumberFormat) Parse(s string) float64 {
	s = strings.TrimSpace(s)
	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
	}

	integer, fraction := s, ""
	if f.Decimal != "" {
		if i := strings.Index(s, f.Decimal); i >= 0 {
			integer, fraction = s[:i], s[i+len(f.Decimal):]
			if fraction == "" || !isDigits(fraction) {
				return 0
			}
		}
	}
	integer, ok := f.ungroup(integer)
	if !ok {
		return 0
	}

	normalized := sign + integer
	if fraction != "" {
		normalized += "." + fraction
	}
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

// ungroup strips grouping separators from integer, reporting false unless
// every group after the first has exactly three digits.
func (f NumberFormat) ungroup(integer string) (string, bool) {
	if f.Grouping == "" || !strings.Contains(integer, f.Grouping) {
		return integer, isDigits(integer)
	}
	groups := strings.Split(integer, f.Grouping)
	if len(groups[0]) < 1 || len(groups[0]) > 3 || !isDigits(groups[0]) {
		return "", false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 || !isDigits(g) {
			return "", false
		}
	}
	return strings.Join(groups, ""), true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ToNumber parses a ko-KR formatted count. Unparseable input yields 0 so a
// chart can still render with partial data.
func ToNumber(s string) float64 {
	return KoreanNumberFormat.Parse(s)
}
