package database

import (
	"context"
	"time"
)

type TeamRepository interface {
	GetTeamsWithSourceURL(ctx context.Context) ([]Team, error)
	GetTeamCount(ctx context.Context) (int, error)
}

type MatchRepository interface {
	GetMatchByNaturalKey(ctx context.Context, teamID int, adversary string, kickoff time.Time) (*Match, error)
	CreateMatch(ctx context.Context, match Match) (*Match, error)
	UpdateMatchResult(ctx context.Context, id int, upd MatchResultUpdate) error
	GetMatchCount(ctx context.Context) (int, error)
}

type SyncLogRepository interface {
	AppendLog(ctx context.Context, entry SyncLog) error
	GetRecentLogs(ctx context.Context, limit int) ([]SyncLog, error)
}
