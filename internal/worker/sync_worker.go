// Package worker exports recorded volumes to an external sheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"waterlog/internal/amqp"
	"waterlog/internal/core"
	"waterlog/internal/sheets"
	"waterlog/internal/storage"
)

// VolumeSource is the slice of the repository the worker needs.
type VolumeSource interface {
	GetVolume(ctx context.Context, id int64) (*storage.VolumeRow, error)
	GetPendingSyncVolumes(ctx context.Context, limit int) ([]storage.PendingSyncVolume, error)
	MarkSynced(ctx context.Context, id int64) error
	MarkSyncError(ctx context.Context, id int64) error
}

// SyncWorker moves volume records from SQLite to the export sheet. It
// is driven two ways: AMQP sync messages for the fast path, and a
// periodic sweep over pending rows as backup for lost messages.
type SyncWorker struct {
	source    VolumeSource
	sheet     sheets.VolumeAppender
	batchSize int
}

func NewSyncWorker(source VolumeSource, sheet sheets.VolumeAppender, batchSize int) *SyncWorker {
	return &SyncWorker{
		source:    source,
		sheet:     sheet,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.VolumeSyncMessage) error {
	slog.InfoContext(ctx, "Processing volume sync message",
		"id", msg.ID,
		"version", msg.Version)

	row, err := w.source.GetVolume(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get volume from storage: %w", err)
	}

	if err := w.exportVolume(ctx, row); err != nil {
		return fmt.Errorf("export volume: %w", err)
	}

	return nil
}

// ProcessPendingVolumes exports any rows the fast path missed.
func (w *SyncWorker) ProcessPendingVolumes(ctx context.Context) error {
	pending, err := w.source.GetPendingSyncVolumes(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending volumes: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending volumes", "count", len(pending))

	for _, p := range pending {
		row, err := w.source.GetVolume(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to get volume", "id", p.ID, "error", err)
			if err := w.source.MarkSyncError(ctx, p.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", p.ID, "error", err)
			}
			continue
		}

		if err := w.exportVolume(ctx, row); err != nil {
			slog.ErrorContext(ctx, "Failed to export volume", "id", p.ID, "error", err)
			continue
		}
	}

	return nil
}

// StartupSyncCheck exports rows left pending by downtime or missed
// messages. It uses a larger batch than the periodic sweep.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.source.GetPendingSyncVolumes(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending volumes for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending volumes found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending volumes on startup", "count", len(pending))

	synced := 0
	failed := 0
	for _, p := range pending {
		row, err := w.source.GetVolume(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to get volume for startup sync",
				"id", p.ID, "error", err)
			if err := w.source.MarkSyncError(ctx, p.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", p.ID, "error", err)
			}
			failed++
			continue
		}

		if err := w.exportVolume(ctx, row); err != nil {
			slog.ErrorContext(ctx, "Failed to export volume during startup",
				"id", p.ID, "error", err)
			failed++
			continue
		}
		synced++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", synced,
		"errors", failed)

	return nil
}

func (w *SyncWorker) exportVolume(ctx context.Context, row *storage.VolumeRow) error {
	v := core.Volume{
		ID:         row.ID,
		UserID:     row.UserID,
		Amount:     core.Quantity{Millilitres: row.AmountML},
		RecordedAt: row.RecordedAt,
	}

	ref, err := w.sheet.Append(ctx, v)
	if err != nil {
		if markErr := w.source.MarkSyncError(ctx, row.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", row.ID, "error", markErr)
		}
		return fmt.Errorf("append to sheet: %w", err)
	}

	if err := w.source.MarkSynced(ctx, row.ID); err != nil {
		// The export itself worked; only the bookkeeping failed.
		slog.ErrorContext(ctx, "Failed to mark as synced", "id", row.ID, "error", err)
	}

	slog.InfoContext(ctx, "Volume exported",
		"id", row.ID,
		"user_id", row.UserID,
		"amount_ml", row.AmountML,
		"sheets_ref", ref)

	return nil
}
