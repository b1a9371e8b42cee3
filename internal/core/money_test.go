package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"5", 500, true},
		{"0.5", 50, true},
		{".5", 50, true},
		{"1.2", 120, true},
		{"1.239", 124, true}, // third decimal rounds half-up
		{"1.234", 123, true},
		{"0.01", 1, true},
		{" 7.00 ", 700, true},
		{"", 0, false},
		{"0", 0, false},
		{"0.00", 0, false},
		{"-1", 0, false},
		{"+1", 0, false},
		{"1.2.3", 0, false},
		{"abc", 0, false},
		{"12a", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseDecimalToCents(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseDecimalToCents(%q) expected error, got %d", tc.in, got)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := Money{Cents: 1050}
	b := Money{Cents: 250}
	if got := a.Add(b); got.Cents != 1300 {
		t.Fatalf("Add = %d, want 1300", got.Cents)
	}
	if got := a.Sub(b); got.Cents != 800 {
		t.Fatalf("Sub = %d, want 800", got.Cents)
	}
	if got := b.Sub(a); got.Cents != -800 {
		t.Fatalf("Sub should go negative, got %d", got.Cents)
	}
}

func TestMoneyFloat(t *testing.T) {
	if got := (Money{Cents: 1234}).Float(); got != 12.34 {
		t.Fatalf("Float = %v, want 12.34", got)
	}
	if got := (Money{}).Float(); got != 0 {
		t.Fatalf("zero Float = %v", got)
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		m    Money
		want string
	}{
		{Money{Cents: 1234}, "12.34"},
		{Money{Cents: 5}, "0.05"},
		{Money{Cents: 100}, "1.00"},
		{Money{Cents: 0}, "0.00"},
		{Money{Cents: -1234}, "-12.34"},
	}
	for _, tc := range cases {
		if got := tc.m.String(); got != tc.want {
			t.Fatalf("Money{%d}.String() = %q, want %q", tc.m.Cents, got, tc.want)
		}
	}
}
