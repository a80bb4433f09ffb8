package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/antgrillet/hbcaix-sync/app/database"
	"github.com/antgrillet/hbcaix-sync/app/scrape"
)

// MatchFetcher produces the scraped candidates for one pool URL.
type MatchFetcher interface {
	FetchMatches(ctx context.Context, poolURL string) ([]scrape.MatchCandidate, error)
}

var _ MatchFetcher = (*scrape.Extractor)(nil)

// TeamResult is the outcome of one team's sync within a pass.
type TeamResult struct {
	TeamID         int    `json:"team_id"`
	TeamName       string `json:"team_name"`
	Status         string `json:"status"`
	Message        string `json:"message"`
	MatchesCreated int    `json:"matches_created"`
	MatchesUpdated int    `json:"matches_updated"`
	MatchesSkipped int    `json:"matches_skipped"`
}

// RunSummary aggregates one full orchestrator pass.
type RunSummary struct {
	Results      []TeamResult `json:"results"`
	TotalCreated int          `json:"total_created"`
	TotalUpdated int          `json:"total_updated"`
	TotalSkipped int          `json:"total_skipped"`
	ErroredTeams []string     `json:"errored_teams,omitempty"`
	Duration     string       `json:"duration"`
}

// Orchestrator runs the scrape-and-reconcile pipeline for every team with a
// configured pool URL, sequentially, with per-team failure isolation and a
// cooldown between teams to spare the source site.
type Orchestrator struct {
	teamRepo   database.TeamRepository
	logRepo    database.SyncLogRepository
	fetcher    MatchFetcher
	reconciler *Reconciler
	cooldown   time.Duration
}

func NewOrchestrator(teamRepo database.TeamRepository, logRepo database.SyncLogRepository,
	fetcher MatchFetcher, reconciler *Reconciler, cooldown time.Duration) *Orchestrator {
	return &Orchestrator{
		teamRepo:   teamRepo,
		logRepo:    logRepo,
		fetcher:    fetcher,
		reconciler: reconciler,
		cooldown:   cooldown,
	}
}

// SyncAll processes every syncable team. One team's failure never aborts the
// batch: it is recorded as an error result and the pass continues. Only a
// failure to load the team list at all is fatal. Exactly one SyncLog row is
// appended per team per pass.
func (o *Orchestrator) SyncAll(ctx context.Context) (*RunSummary, error) {
	teams, err := o.teamRepo.GetTeamsWithSourceURL(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}

	slog.Info("Sync pass started", "teams", len(teams))
	started := time.Now()

	summary := &RunSummary{Results: make([]TeamResult, 0, len(teams))}
	for i, team := range teams {
		if i > 0 {
			if err := o.cooldownWait(ctx); err != nil {
				return nil, err
			}
		}

		result := o.syncTeam(ctx, team)
		o.appendRunLog(ctx, result)

		summary.Results = append(summary.Results, result)
		summary.TotalCreated += result.MatchesCreated
		summary.TotalUpdated += result.MatchesUpdated
		summary.TotalSkipped += result.MatchesSkipped
		if result.Status == database.SyncStatusError {
			summary.ErroredTeams = append(summary.ErroredTeams, team.Name)
		}
	}

	summary.Duration = time.Since(started).Round(time.Millisecond).String()
	slog.Info("Sync pass completed",
		"teams", len(teams),
		"created", summary.TotalCreated,
		"updated", summary.TotalUpdated,
		"skipped", summary.TotalSkipped,
		"errored", len(summary.ErroredTeams),
		"duration", summary.Duration)

	return summary, nil
}

// syncTeam runs extraction and reconciliation for one team behind an
// isolation boundary: errors and panics become an error result, never a
// batch abort.
func (o *Orchestrator) syncTeam(ctx context.Context, team database.Team) (result TeamResult) {
	result = TeamResult{
		TeamID:   team.ID,
		TeamName: team.Name,
		Status:   database.SyncStatusSuccess,
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Team sync panicked", "team", team.Name, "panic", r)
			result = TeamResult{
				TeamID:   team.ID,
				TeamName: team.Name,
				Status:   database.SyncStatusError,
				Message:  fmt.Sprintf("panic: %v", r),
			}
		}
	}()

	if team.SourceURL == nil || *team.SourceURL == "" {
		result.Status = database.SyncStatusError
		result.Message = "no source URL configured"
		return result
	}

	slog.Info("Team sync started", "team", team.Name, "url", *team.SourceURL)

	candidates, err := o.fetcher.FetchMatches(ctx, *team.SourceURL)
	if err != nil {
		slog.Error("Team scrape failed", "team", team.Name, "error", err)
		result.Status = database.SyncStatusError
		result.Message = err.Error()
		return result
	}

	counts, err := o.reconciler.Reconcile(ctx, team.ID, candidates)
	result.MatchesCreated = counts.Created
	result.MatchesUpdated = counts.Updated
	result.MatchesSkipped = counts.Skipped
	if err != nil {
		slog.Error("Team reconciliation failed", "team", team.Name, "error", err)
		result.Status = database.SyncStatusError
		result.Message = err.Error()
		return result
	}

	result.Message = fmt.Sprintf("%d candidates: %d created, %d updated, %d skipped",
		len(candidates), counts.Created, counts.Updated, counts.Skipped)
	slog.Info("Team sync completed", "team", team.Name, "message", result.Message)
	return result
}

// appendRunLog writes the per-team run record. A log write failure is
// reported but never aborts the pass: the run itself already happened.
func (o *Orchestrator) appendRunLog(ctx context.Context, result TeamResult) {
	entry := database.SyncLog{
		TeamID:         result.TeamID,
		Type:           database.SyncLogTypeMatches,
		Status:         result.Status,
		Message:        result.Message,
		MatchesCreated: result.MatchesCreated,
		MatchesUpdated: result.MatchesUpdated,
		MatchesSkipped: result.MatchesSkipped,
	}
	if err := o.logRepo.AppendLog(ctx, entry); err != nil {
		slog.Error("Failed to append sync log", "team", result.TeamName, "error", err)
	}
}

func (o *Orchestrator) cooldownWait(ctx context.Context) error {
	if o.cooldown <= 0 {
		return nil
	}
	timer := time.NewTimer(o.cooldown)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
