package core

import (
	"errors"
	"testing"
)

func TestParseMillilitres(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"200", 200, false},
		{"50", 50, false},
		{"1000", 1000, false},
		{"050", 50, false},
		{"0", 0, true},
		{"0000", 0, true},
		{"", 0, true},
		{"-200", 0, true},
		{"+200", 0, true},
		{"12.5", 0, true},
		{"abc", 0, true},
		{"2o0", 0, true},
		{"99999999999999999999", 0, true}, // overflow
	}

	for _, tc := range cases {
		got, err := ParseMillilitres(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseMillilitres(%q) expected error, got %v", tc.in, got)
			} else if !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("ParseMillilitres(%q) error = %v, want ErrInvalidAmount", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMillilitres(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got.Millilitres != tc.want {
			t.Errorf("ParseMillilitres(%q) = %d, want %d", tc.in, got.Millilitres, tc.want)
		}
	}
}

func TestQuantityValidate(t *testing.T) {
	if err := (Quantity{Millilitres: 200}).Validate(); err != nil {
		t.Errorf("valid quantity rejected: %v", err)
	}
	if err := (Quantity{}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero quantity should be invalid, got %v", err)
	}
	if err := (Quantity{Millilitres: -5}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative quantity should be invalid, got %v", err)
	}
}

func TestQuantityLitres(t *testing.T) {
	q := Quantity{Millilitres: 1500}
	if q.Litres() != 1.5 {
		t.Errorf("Litres() = %v, want 1.5", q.Litres())
	}
	if q.String() != "1500 ml" {
		t.Errorf("String() = %q, want %q", q.String(), "1500 ml")
	}
}
