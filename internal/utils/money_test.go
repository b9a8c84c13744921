package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"12500", "12500.00", false},
		{"12,500.00", "12500.00", false},
		{"  99.9 ", "99.90", false},
		{"-40.25", "-40.25", false},
		{"0.125", "", true},
		{"", "", true},
		{"abc", "", true},
	}

	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseAmount(%q) expected error, got %s", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseAmount(%q) unexpected error: %v", tc.in, err)
		}
		if FormatMoney(got) != tc.want {
			t.Fatalf("ParseAmount(%q) = %s, want %s", tc.in, FormatMoney(got), tc.want)
		}
	}
}

func TestFormatMoneyTwoDigits(t *testing.T) {
	d := decimal.RequireFromString("3.5")
	if got := FormatMoney(d); got != "3.50" {
		t.Fatalf("got %s want 3.50", got)
	}
}

func TestSumAmountsSkipsNil(t *testing.T) {
	a := decimal.RequireFromString("0.10")
	b := decimal.RequireFromString("0.20")

	got := SumAmounts(&a, nil, &b)
	if !got.Equal(decimal.RequireFromString("0.30")) {
		t.Fatalf("got %s want 0.30", got)
	}

	if !SumAmounts(nil, nil).IsZero() {
		t.Fatalf("all-nil sum must be zero")
	}
}
