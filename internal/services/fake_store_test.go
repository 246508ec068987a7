package services

import (
	"context"
	"sync"
	"time"
)

// fakeStore is an in-memory VolumeStore with the same half-open window
// semantics as the SQLite repository.
type fakeStore struct {
	mu     sync.Mutex
	nextID int64
	rows   []fakeRow

	insertErr error
	sumErr    error
}

type fakeRow struct {
	id         int64
	userID     int64
	amountML   int64
	recordedAt time.Time
}

func (f *fakeStore) InsertVolume(_ context.Context, userID, amountML int64, recordedAt time.Time) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.rows = append(f.rows, fakeRow{
		id:         f.nextID,
		userID:     userID,
		amountML:   amountML,
		recordedAt: recordedAt,
	})
	return f.nextID, nil
}

func (f *fakeStore) SumVolumeSince(_ context.Context, userID int64, start, end time.Time) (int64, error) {
	if f.sumErr != nil {
		return 0, f.sumErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var total int64
	for _, r := range f.rows {
		if r.userID != userID {
			continue
		}
		if r.recordedAt.Before(start) || !r.recordedAt.Before(end) {
			continue
		}
		total += r.amountML
	}
	return total, nil
}

// fakePublisher records published sync messages.
type fakePublisher struct {
	mu         sync.Mutex
	published  []int64
	publishErr error
}

func (f *fakePublisher) PublishVolumeSync(_ context.Context, id, _ int64) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, id)
	return nil
}
