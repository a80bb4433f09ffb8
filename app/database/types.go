package database

import (
	"time"
)

// Team is owned by the content-management subsystem; the sync pipeline only
// reads id, name and the optional federation pool URL.
type Team struct {
	ID        int
	Name      string
	SourceURL *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Match is a stored match. The natural key for reconciliation is
// (TeamID, Adversary, Kickoff): the federation site exposes no stable
// per-match identifier.
type Match struct {
	ID             int
	TeamID         int
	Adversary      string
	Kickoff        time.Time
	Venue          string
	Home           bool
	Competition    string
	Finished       bool
	ScoreOurs      *int
	ScoreAdversary *int
	AdversaryLogo  *string
	Published      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// MatchResultUpdate carries the fields the reconciler is allowed to touch on
// an existing row. Admin-set fields (Published) stay untouched.
type MatchResultUpdate struct {
	Finished       bool
	ScoreOurs      *int
	ScoreAdversary *int
	AdversaryLogo  *string
	Venue          string
}

// SyncLog is an append-only run record, one per team per orchestrator pass.
type SyncLog struct {
	ID             int
	TeamID         int
	Type           string
	Status         string
	Message        string
	MatchesCreated int
	MatchesUpdated int
	MatchesSkipped int
	CreatedAt      time.Time
}

const (
	SyncLogTypeMatches = "matches"

	SyncStatusSuccess = "success"
	SyncStatusError   = "error"
)
