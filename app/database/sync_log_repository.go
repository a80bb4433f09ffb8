package database

import (
	"context"
	"fmt"
)

var _ SyncLogRepository = (*SyncLogRepo)(nil)

// SyncLogRepo handles database operations for sync run records.
type SyncLogRepo struct {
	db *DB
}

func NewSyncLogRepository(db *DB) *SyncLogRepo {
	return &SyncLogRepo{db: db}
}

// AppendLog inserts one run record. Records are never mutated afterwards.
func (r *SyncLogRepo) AppendLog(ctx context.Context, entry SyncLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sync_logs (
			team_id, type, status, message,
			matches_created, matches_updated, matches_skipped
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, entry.TeamID, entry.Type, entry.Status, entry.Message,
		entry.MatchesCreated, entry.MatchesUpdated, entry.MatchesSkipped)

	if err != nil {
		return fmt.Errorf("failed to append sync log: %w", err)
	}

	return nil
}

// GetRecentLogs returns the latest run records, newest first.
func (r *SyncLogRepo) GetRecentLogs(ctx context.Context, limit int) ([]SyncLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, team_id, type, status, message,
		       matches_created, matches_updated, matches_skipped, created_at
		FROM sync_logs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent sync logs: %w", err)
	}
	defer rows.Close()

	var logs []SyncLog
	for rows.Next() {
		var entry SyncLog
		err := rows.Scan(
			&entry.ID, &entry.TeamID, &entry.Type, &entry.Status, &entry.Message,
			&entry.MatchesCreated, &entry.MatchesUpdated, &entry.MatchesSkipped,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sync log row: %w", err)
		}
		logs = append(logs, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sync log rows: %w", err)
	}

	return logs, nil
}
