package services

import (
	"fmt"
	"strings"
)

// FormatTRY formats an amount in Turkish lira notation: thousands separated
// with dots, a comma before the 2 decimal places, and a trailing lira sign
// (e.g. "1.234.567,89 ₺"). Used only by document exports; API payloads carry
// raw numbers.
func FormatTRY(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := groupThousands(intPart) + "," + decPart + " ₺"
	if negative {
		result = "-" + result
	}
	return result
}

// FormatTRYShort renders large amounts compactly: "1.2M ₺", "150K ₺",
// otherwise the plain integer amount.
func FormatTRYShort(amount float64) string {
	switch {
	case amount >= 1000000:
		return fmt.Sprintf("%.1fM ₺", amount/1000000)
	case amount >= 1000:
		return fmt.Sprintf("%.0fK ₺", amount/1000)
	default:
		return fmt.Sprintf("%.0f ₺", amount)
	}
}

// groupThousands inserts dots between 3-digit groups, from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "." + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "." + result
}

// FormatPercent renders a percentage with one decimal and a sign for
// positive deviations (e.g. "+4.2%", "-10.0%").
func FormatPercent(p float64) string {
	if p > 0 {
		return fmt.Sprintf("+%.1f%%", p)
	}
	return fmt.Sprintf("%.1f%%", p)
}
