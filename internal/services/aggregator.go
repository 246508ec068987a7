package services

import (
	"context"
	"fmt"
	"time"

	"waterlog/internal/core"
)

// Aggregator answers "how much since local midnight" for one user.
// It holds the process-wide timezone; per-user timezones are out of
// scope.
type Aggregator struct {
	store VolumeStore
	loc   *time.Location
}

func NewAggregator(store VolumeStore, loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.Local
	}
	return &Aggregator{store: store, loc: loc}
}

// SumToday computes the half-open window [local midnight, now) and
// delegates to the store. Store errors propagate as-is: no retries, no
// fallback value.
func (a *Aggregator) SumToday(ctx context.Context, userID int64, now time.Time) (core.Quantity, error) {
	w := core.DayWindowAt(now, a.loc)
	total, err := a.store.SumVolumeSince(ctx, userID, w.Start, w.End)
	if err != nil {
		return core.Quantity{}, fmt.Errorf("sum volumes for today: %w", err)
	}
	return core.Quantity{Millilitres: total}, nil
}
