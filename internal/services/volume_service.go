package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"waterlog/internal/core"
)

// VolumeStore is the persistence port for volume records. The SQLite
// repository implements it; tests substitute an in-memory fake.
type VolumeStore interface {
	InsertVolume(ctx context.Context, userID, amountML int64, recordedAt time.Time) (int64, error)
	SumVolumeSince(ctx context.Context, userID int64, start, end time.Time) (int64, error)
}

// SyncPublisher publishes a lightweight notification after a record is
// durably written, so the export worker can pick it up.
type SyncPublisher interface {
	PublishVolumeSync(ctx context.Context, id, version int64) error
}

// VolumeService orchestrates record creation: write to SQLite first,
// then publish the sync message. A publish failure never fails the
// user's request; the record is already durable and the periodic sweep
// will export it.
type VolumeService struct {
	store     VolumeStore
	publisher SyncPublisher
}

func NewVolumeService(store VolumeStore, publisher SyncPublisher) *VolumeService {
	return &VolumeService{
		store:     store,
		publisher: publisher,
	}
}

// Record validates and persists one consumption event, returning the
// assigned record id.
func (s *VolumeService) Record(ctx context.Context, userID int64, amount core.Quantity, recordedAt time.Time) (int64, error) {
	v := core.Volume{
		UserID:     userID,
		Amount:     amount,
		RecordedAt: recordedAt,
	}
	if err := v.Validate(); err != nil {
		return 0, fmt.Errorf("validate volume: %w", err)
	}

	id, err := s.store.InsertVolume(ctx, userID, amount.Millilitres, recordedAt)
	if err != nil {
		return 0, fmt.Errorf("save volume: %w", err)
	}

	if s.publisher == nil {
		slog.DebugContext(ctx, "No sync publisher configured, skipping sync message", "id", id)
		return id, nil
	}

	if err := s.publisher.PublishVolumeSync(ctx, id, 1); err != nil {
		slog.ErrorContext(ctx, "Failed to publish volume sync message",
			"id", id, "error", err)
	}

	return id, nil
}
