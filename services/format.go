package services

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var displayPrinter = message.NewPrinter(language.English)

// FormatCompact abbreviates a total for display ("1.2k", "3.4m"). It is derived
// from the integer total and must never be parsed back into a number — the
// integer stays the single source of truth for sorting and level math.
func FormatCompact(n int64) string {
	switch {
	case n >= 1_000_000:
		return trimCompact(float64(n)/1_000_000) + "m"
	case n >= 1_000:
		return trimCompact(float64(n)/1_000) + "k"
	default:
		return strconv.FormatInt(n, 10)
	}
}

func trimCompact(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}

// FormatGrouped renders a total with digit grouping ("12,345") for
// currency-style display of coin balances.
func FormatGrouped(n int64) string {
	return displayPrinter.Sprintf("%d", n)
}
