package report

import (
	"math"
	"strconv"
	"strings"
)

// FormatCount renders a count for tables and tooltips: whole numbers get
// thousands separators, fractional ones keep a single decimal after the
// grouped integer part.
func FormatCount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "- -"
	}
	digits := strconv.FormatFloat(math.Abs(v), 'f', 1, 64)
	digits = strings.TrimSuffix(digits, ".0")
	whole, frac, _ := strings.Cut(digits, ".")

	out := groupThousands(whole)
	if frac != "" {
		out += "." + frac
	}
	if v < 0 && out != "0" {
		out = "-" + out
	}
	return out
}

// groupThousands inserts a comma before every third digit counted from the
// right of an unsigned digit string.
func groupThousands(digits string) string {
	commas := (len(digits) - 1) / 3
	if commas <= 0 {
		return digits
	}
	buf := make([]byte, len(digits)+commas)
	j := len(buf) - 1
	for i := len(digits) - 1; i >= 0; i-- {
		buf[j] = digits[i]
		j--
		if n := len(digits) - i; n%3 == 0 && i > 0 {
			buf[j] = ','
			j--
		}
	}
	return string(buf)
}

// compactUnits is ordered from the largest scale down.
var compactUnits = []struct {
	scale    float64
	suffix   string
	decimals int
}{
	{1e6, "M", 1},
	{1e3, "k", 0},
}

// FormatCompact renders axis values as 950, 12k or 1.5M.
func FormatCompact(v float64) string {
	for _, u := range compactUnits {
		if math.Abs(v) >= u.scale {
			return strconv.FormatFloat(v/u.scale, 'f', u.decimals, 64) + u.suffix
		}
	}
	return strconv.FormatFloat(v, 'f', 0, 64)
}

// formatRaw is the shortest exact form, used by machine-readable exports.
func formatRaw(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
