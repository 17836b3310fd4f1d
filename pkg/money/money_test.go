package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"10", "$10.00"},
		{"109.95", "$109.95"},
		{"1234.5", "$1,234.50"},
		{"1234567.891", "$1,234,567.89"},
		{"-42.1", "-$42.10"},
	}

	for _, tc := range cases {
		amount, err := decimal.NewFromString(tc.in)
		if err != nil {
			t.Fatalf("bad fixture %q: %v", tc.in, err)
		}
		if got := FormatPrice(amount); got != tc.want {
			t.Fatalf("FormatPrice(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatRating(t *testing.T) {
	if got := FormatRating(4.666); got != "4.7" {
		t.Fatalf("FormatRating(4.666) = %q, want 4.7", got)
	}
	if got := FormatRating(3); got != "3.0" {
		t.Fatalf("FormatRating(3) = %q, want 3.0", got)
	}
}
