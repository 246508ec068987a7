// Package core holds the domain model for volume tracking.
//
// This file contains the millilitre quantity type and parsing of raw
// amount tokens coming from chat messages.
package core

import (
	"fmt"
	"strconv"
	"unicode"
)

// Quantity is a consumed volume in whole millilitres.
// Millilitres are used for all arithmetic; litres exist only for display.
type Quantity struct {
	Millilitres int64
}

func (q Quantity) Validate() error {
	if q.Millilitres <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Litres returns the volume as litres for display purposes.
// Use millilitres for calculations to avoid floating-point drift.
func (q Quantity) Litres() float64 {
	return float64(q.Millilitres) / 1000.0
}

func (q Quantity) String() string {
	return fmt.Sprintf("%d ml", q.Millilitres)
}

// ParseMillilitres converts a raw amount token to millilitres.
//
// The token must consist solely of ASCII digits and parse to a positive
// value. Leading zeros are accepted ("050" -> 50). Signs, decimal
// separators and whitespace are rejected: the classifier only forwards
// bare digit tokens, and anything else reaching this point is treated
// as a validation failure, not a panic.
func ParseMillilitres(s string) (Quantity, error) {
	if s == "" {
		return Quantity{}, ErrInvalidAmount
	}
	for _, r := range s {
		if !unicode.IsDigit(r) || r > '9' {
			return Quantity{}, ErrInvalidAmount
		}
	}
	ml, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Quantity{}, ErrInvalidAmount
	}
	if ml <= 0 {
		return Quantity{}, ErrInvalidAmount
	}
	return Quantity{Millilitres: ml}, nil
}
