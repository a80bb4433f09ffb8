package database

import (
	"context"
	"fmt"
)

var _ TeamRepository = (*TeamRepo)(nil)

// TeamRepo handles database operations for teams.
type TeamRepo struct {
	db *DB
}

func NewTeamRepository(db *DB) *TeamRepo {
	return &TeamRepo{db: db}
}

// GetTeamsWithSourceURL returns the teams that have a federation pool URL
// configured, in id order. Teams without a URL are not synced.
func (r *TeamRepo) GetTeamsWithSourceURL(ctx context.Context) ([]Team, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, source_url, created_at, updated_at
		FROM teams
		WHERE source_url IS NOT NULL AND source_url <> ''
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get teams with source URL: %w", err)
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var team Team
		err := rows.Scan(&team.ID, &team.Name, &team.SourceURL, &team.CreatedAt, &team.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		teams = append(teams, team)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team rows: %w", err)
	}

	return teams, nil
}

// GetTeamCount returns the total number of teams.
func (r *TeamRepo) GetTeamCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM teams").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get team count: %w", err)
	}
	return count, nil
}
