package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
)

func TestParseMoney(t *testing.T) {
	m, err := ParseMoney("123.45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.String() != "123.45" {
		t.Fatalf("display mismatch: got %s", m.String())
	}
	if _, err := ParseMoney("not-a-number"); err == nil {
		t.Fatalf("expected error for invalid string")
	}

	d := stddec.NewFromFloat(10.125)
	if got := NewMoneyFromDecimal(d); !got.Decimal.Equal(d) {
		t.Fatalf("NewMoneyFromDecimal rounded: got %s want %s", got.Decimal, d)
	}
}

func TestRoundingHalfEven(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"2.344", "2.34"},
		{"2.345", "2.34"},
		{"2.355", "2.36"},
		{"2.365", "2.36"},
		{"2.3651", "2.37"},
		{"-2.345", "-2.34"},
		{"2500", "2500.00"},
	}
	for _, c := range cases {
		m, err := ParseMoney(c.in)
		if err != nil {
			t.Fatalf("parse %s: %v", c.in, err)
		}
		if got := m.Round().String(); got != c.out {
			t.Fatalf("round(%s) got %s want %s", c.in, got, c.out)
		}
		if got := RoundCents(m.Decimal).StringFixed(2); got != c.out {
			t.Fatalf("RoundCents(%s) got %s want %s", c.in, got, c.out)
		}
	}
}

func TestSplit(t *testing.T) {
	m, _ := ParseMoney("100000")
	if got := m.Split(360).String(); got != "277.78" {
		t.Fatalf("Split got %s", got)
	}
	one, _ := ParseMoney("1")
	if got := one.Split(8).String(); got != "0.12" {
		t.Fatalf("Split half-even got %s", got)
	}
	if got := one.Split(0).String(); got != "0.00" {
		t.Fatalf("Split by zero got %s", got)
	}
}
