package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRepository owns all reads and writes of volume records. Every
// operation runs on its own pooled connection, so a session never
// outlives the call that acquired it regardless of the exit path.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// VolumeRow is a persisted volume record as read back from the store.
type VolumeRow struct {
	ID         int64
	UserID     int64
	AmountML   int64
	RecordedAt time.Time
}

// PendingSyncVolume carries the minimal data the export worker needs to
// pick up a row that has not reached the sheet yet.
type PendingSyncVolume struct {
	ID       int64
	UserID   int64
	AmountML int64
}

// InsertVolume persists a new record and returns its assigned id.
// The write is atomic at single-record granularity.
func (r *SQLiteRepository) InsertVolume(ctx context.Context, userID, amountML int64, recordedAt time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO volume (volume_amount, volume_ts, user_tg_id) VALUES (?, ?, ?)`,
		amountML, recordedAt.UTC().UnixNano(), userID)
	if err != nil {
		return 0, fmt.Errorf("insert volume: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("volume insert id: %w", err)
	}

	slog.InfoContext(ctx, "Volume saved to SQLite",
		"id", id,
		"user_id", userID,
		"amount_ml", amountML)

	return id, nil
}

// SumVolumeSince returns the sum of amounts for the user's records with
// volume_ts in the half-open interval [start, end). No matching rows is
// a zero sum, not an error; the store does not distinguish "no data"
// from "zero consumed".
func (r *SQLiteRepository) SumVolumeSince(ctx context.Context, userID int64, start, end time.Time) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(volume_amount), 0) FROM volume
		 WHERE user_tg_id = ? AND volume_ts >= ? AND volume_ts < ?`,
		userID, start.UTC().UnixNano(), end.UTC().UnixNano()).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum volumes: %w", err)
	}
	return total, nil
}

// GetVolume retrieves a single record by id.
func (r *SQLiteRepository) GetVolume(ctx context.Context, id int64) (*VolumeRow, error) {
	var (
		row    VolumeRow
		tsNano int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT volume_id, user_tg_id, volume_amount, volume_ts FROM volume WHERE volume_id = ?`,
		id).Scan(&row.ID, &row.UserID, &row.AmountML, &tsNano)
	if err != nil {
		return nil, fmt.Errorf("get volume by id: %w", err)
	}
	row.RecordedAt = time.Unix(0, tsNano).UTC()
	return &row, nil
}

// GetPendingSyncVolumes returns records that have not been exported yet,
// oldest first.
func (r *SQLiteRepository) GetPendingSyncVolumes(ctx context.Context, limit int) ([]PendingSyncVolume, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT volume_id, user_tg_id, volume_amount FROM volume
		 WHERE synced = 0 AND sync_error = 0
		 ORDER BY volume_id ASC LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync volumes: %w", err)
	}
	defer rows.Close()

	var pending []PendingSyncVolume
	for rows.Next() {
		var p PendingSyncVolume
		if err := rows.Scan(&p.ID, &p.UserID, &p.AmountML); err != nil {
			return nil, fmt.Errorf("scan pending sync volume: %w", err)
		}
		pending = append(pending, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending sync volumes: %w", err)
	}

	return pending, nil
}

// MarkSynced flags a record as successfully exported.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE volume SET synced = 1, sync_error = 0 WHERE volume_id = ?`, id); err != nil {
		return fmt.Errorf("mark volume synced: %w", err)
	}
	slog.InfoContext(ctx, "Volume marked as synced", "id", id)
	return nil
}

// MarkSyncError flags a record as failed to export so the periodic
// sweep stops retrying it until an operator intervenes.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE volume SET sync_error = 1 WHERE volume_id = ?`, id); err != nil {
		return fmt.Errorf("mark volume sync error: %w", err)
	}
	slog.WarnContext(ctx, "Volume marked with sync error", "id", id)
	return nil
}
