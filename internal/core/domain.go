package core

import (
	"errors"
	"time"
)

type (
	// Volume is a single consumption event reported by a user.
	// Records are append-only: once stored they are never mutated.
	Volume struct {
		ID         int64 // assigned by the store on creation
		UserID     int64
		Amount     Quantity
		RecordedAt time.Time
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidUser   = errors.New("invalid user id")
	ErrZeroTime      = errors.New("recorded time cannot be zero")
)

func (v Volume) Validate() error {
	if v.UserID == 0 {
		return ErrInvalidUser
	}
	if err := v.Amount.Validate(); err != nil {
		return err
	}
	if v.RecordedAt.IsZero() {
		return ErrZeroTime
	}
	return nil
}
