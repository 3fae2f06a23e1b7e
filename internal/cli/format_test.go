package cli

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatAmount_IndianGrouping(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "₹0.00"},
		{"50", "₹50.00"},
		{"999", "₹999.00"},
		{"1000", "₹1,000.00"},
		{"123456.7", "₹1,23,456.70"},
		{"1234567", "₹12,34,567.00"},
		{"12345678.99", "₹1,23,45,678.99"},
		{"-50", "₹50.00"}, // magnitude only; sign handled separately
	}

	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.in, err)
		}
		if got := FormatAmount(d, "INR"); got != tt.want {
			t.Errorf("FormatAmount(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSignedAmount(t *testing.T) {
	if got := FormatSignedAmount(decimal.NewFromInt(50), "INR"); got != "+₹50.00" {
		t.Errorf("positive = %q", got)
	}
	if got := FormatSignedAmount(decimal.NewFromInt(-50), "INR"); got != "-₹50.00" {
		t.Errorf("negative = %q", got)
	}
	if got := FormatSignedAmount(decimal.Zero, "INR"); got != "₹0.00" {
		t.Errorf("zero = %q", got)
	}
}

func TestSymbol_UnknownCurrency(t *testing.T) {
	if got := Symbol("JPY"); got != "JPY " {
		t.Errorf("Symbol(JPY) = %q", got)
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Time{}, "never"},
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-49 * time.Hour), "2d ago"},
	}
	for _, tt := range tests {
		if got := FormatRelativeTime(tt.t, now); got != tt.want {
			t.Errorf("FormatRelativeTime(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("Dinner at Karim's", 10); got != "Dinner at…" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate short = %q", got)
	}
}
