package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

var _ MatchRepository = (*MatchRepo)(nil)

// MatchRepo handles database operations for matches.
type MatchRepo struct {
	db *DB
}

func NewMatchRepository(db *DB) *MatchRepo {
	return &MatchRepo{db: db}
}

// GetMatchByNaturalKey retrieves a match by (team, adversary, kickoff).
// Exact match only, no fuzzy date tolerance. Returns nil when absent.
func (r *MatchRepo) GetMatchByNaturalKey(ctx context.Context, teamID int, adversary string, kickoff time.Time) (*Match, error) {
	var match Match
	err := r.db.QueryRowContext(ctx, `
		SELECT id, team_id, adversary, kickoff, venue, home, competition,
		       finished, score_ours, score_adversary, adversary_logo,
		       published, created_at, updated_at
		FROM matches
		WHERE team_id = $1 AND adversary = $2 AND kickoff = $3
	`, teamID, adversary, kickoff).Scan(
		&match.ID, &match.TeamID, &match.Adversary, &match.Kickoff, &match.Venue,
		&match.Home, &match.Competition, &match.Finished, &match.ScoreOurs,
		&match.ScoreAdversary, &match.AdversaryLogo, &match.Published,
		&match.CreatedAt, &match.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match by natural key: %w", err)
	}

	return &match, nil
}

// CreateMatch inserts a new match row and returns it with its id.
func (r *MatchRepo) CreateMatch(ctx context.Context, match Match) (*Match, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO matches (
			team_id, adversary, kickoff, venue, home, competition,
			finished, score_ours, score_adversary, adversary_logo, published
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`, match.TeamID, match.Adversary, match.Kickoff, match.Venue, match.Home,
		match.Competition, match.Finished, match.ScoreOurs, match.ScoreAdversary,
		match.AdversaryLogo, match.Published,
	).Scan(&match.ID, &match.CreatedAt, &match.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	return &match, nil
}

// UpdateMatchResult updates the result fields of an existing match. The id
// and admin-set fields (published) are left untouched.
func (r *MatchRepo) UpdateMatchResult(ctx context.Context, id int, upd MatchResultUpdate) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE matches
		SET finished = $2, score_ours = $3, score_adversary = $4,
		    adversary_logo = $5, venue = $6, updated_at = NOW()
		WHERE id = $1
	`, id, upd.Finished, upd.ScoreOurs, upd.ScoreAdversary, upd.AdversaryLogo, upd.Venue)

	if err != nil {
		return fmt.Errorf("failed to update match result: %w", err)
	}

	return nil
}

// GetMatchCount returns the total number of stored matches.
func (r *MatchRepo) GetMatchCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM matches").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get match count: %w", err)
	}
	return count, nil
}
