// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// currencySymbols maps ISO currency codes to display symbols.
var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// Symbol returns the display symbol for a currency code, falling back to
// "<code> " for unknown codes.
func Symbol(currency string) string {
	if s, ok := currencySymbols[currency]; ok {
		return s
	}
	return currency + " "
}

// FormatAmount formats a currency amount with two decimals and Indian digit
// grouping: 123456.7 -> "₹1,23,456.70".
func FormatAmount(d decimal.Decimal, currency string) string {
	return Symbol(currency) + groupIndian(d.Abs().StringFixed(2))
}

// FormatSignedAmount renders an amount with an explicit sign,
// e.g. "+₹50.00" or "-₹50.00".
func FormatSignedAmount(d decimal.Decimal, currency string) string {
	switch d.Sign() {
	case 1:
		return "+" + FormatAmount(d, currency)
	case -1:
		return "-" + FormatAmount(d, currency)
	default:
		return Symbol(currency) + "0.00"
	}
}

// groupIndian inserts Indian-system separators into a fixed-point string:
// the last three integer digits form one group, then pairs of two.
// e.g. "1234567.00" -> "12,34,567.00"
func groupIndian(s string) string {
	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	if len(intPart) <= 3 {
		return intPart + fracPart
	}

	var b strings.Builder
	head := intPart[:len(intPart)-3]
	tail := intPart[len(intPart)-3:]

	// Head splits into groups of two, right to left.
	remainder := len(head) % 2
	if remainder > 0 {
		b.WriteString(head[:remainder])
	}
	for i := remainder; i < len(head); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	b.WriteString(fracPart)
	return b.String()
}

// FormatRelativeTime formats how long ago t was, e.g. "2m ago".
func FormatRelativeTime(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// FormatDate formats a timestamp for table output.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("02 Jan 2006")
}

// Truncate shortens s to max runes, appending an ellipsis when cut.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}
