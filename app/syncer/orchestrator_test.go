package syncer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/antgrillet/hbcaix-sync/app/database"
	"github.com/antgrillet/hbcaix-sync/app/scrape"
)

type stubTeamRepo struct {
	teams []database.Team
	err   error
}

func (s *stubTeamRepo) GetTeamsWithSourceURL(ctx context.Context) ([]database.Team, error) {
	return s.teams, s.err
}

func (s *stubTeamRepo) GetTeamCount(ctx context.Context) (int, error) {
	return len(s.teams), nil
}

type recordingLogRepo struct {
	entries []database.SyncLog
	err     error
}

func (r *recordingLogRepo) AppendLog(ctx context.Context, entry database.SyncLog) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *recordingLogRepo) GetRecentLogs(ctx context.Context, limit int) ([]database.SyncLog, error) {
	return r.entries, nil
}

type stubFetcher struct {
	byURL  map[string][]scrape.MatchCandidate
	errs   map[string]error
	panics map[string]bool
}

func (s *stubFetcher) FetchMatches(ctx context.Context, poolURL string) ([]scrape.MatchCandidate, error) {
	if s.panics[poolURL] {
		panic("browser driver crashed")
	}
	if err := s.errs[poolURL]; err != nil {
		return nil, err
	}
	return s.byURL[poolURL], nil
}

func strPtr(v string) *string { return &v }

func threeTeams() []database.Team {
	return []database.Team{
		{ID: 1, Name: "Seniors M1", SourceURL: strPtr("https://example.org/poule-1")},
		{ID: 2, Name: "Seniors F1", SourceURL: strPtr("https://example.org/poule-2")},
		{ID: 3, Name: "U18 M", SourceURL: strPtr("https://example.org/poule-3")},
	}
}

func newTestOrchestrator(teams *stubTeamRepo, logs *recordingLogRepo, fetcher MatchFetcher) *Orchestrator {
	return NewOrchestrator(teams, logs, fetcher, NewReconciler(newMemoryMatchRepo()), 0)
}

func TestSyncAllIsolatesTeamFailures(t *testing.T) {
	kickoff := time.Date(2025, 12, 12, 20, 45, 0, 0, time.UTC)
	logs := &recordingLogRepo{}
	fetcher := &stubFetcher{
		byURL: map[string][]scrape.MatchCandidate{
			"https://example.org/poule-1": {upcomingCandidate("VAL DE LEYSSE", kickoff)},
			"https://example.org/poule-3": {finishedCandidate("ANNECY CSAV", kickoff, 30, 22)},
		},
		errs: map[string]error{
			"https://example.org/poule-2": errors.New("navigation timeout"),
		},
	}
	o := newTestOrchestrator(&stubTeamRepo{teams: threeTeams()}, logs, fetcher)

	summary, err := o.SyncAll(context.Background())
	if err != nil {
		t.Fatalf("SyncAll failed: %v", err)
	}

	if len(summary.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(summary.Results))
	}
	if summary.Results[0].Status != database.SyncStatusSuccess ||
		summary.Results[1].Status != database.SyncStatusError ||
		summary.Results[2].Status != database.SyncStatusSuccess {
		t.Errorf("unexpected statuses: %+v", summary.Results)
	}
	if summary.TotalCreated != 2 {
		t.Errorf("expected 2 total created, got %d", summary.TotalCreated)
	}
	if len(summary.ErroredTeams) != 1 || summary.ErroredTeams[0] != "Seniors F1" {
		t.Errorf("unexpected errored teams: %v", summary.ErroredTeams)
	}
}

func TestSyncAllAppendsOneLogPerTeam(t *testing.T) {
	logs := &recordingLogRepo{}
	fetcher := &stubFetcher{
		errs: map[string]error{
			"https://example.org/poule-2": errors.New("navigation timeout"),
		},
	}
	o := newTestOrchestrator(&stubTeamRepo{teams: threeTeams()}, logs, fetcher)

	if _, err := o.SyncAll(context.Background()); err != nil {
		t.Fatalf("SyncAll failed: %v", err)
	}

	if len(logs.entries) != 3 {
		t.Fatalf("expected 3 log entries, got %d", len(logs.entries))
	}
	for i, entry := range logs.entries {
		if entry.TeamID != i+1 {
			t.Errorf("entry %d has team id %d", i, entry.TeamID)
		}
		if entry.Type != database.SyncLogTypeMatches {
			t.Errorf("entry %d has type %q", i, entry.Type)
		}
	}
	if logs.entries[1].Status != database.SyncStatusError {
		t.Errorf("failed team must be logged as error, got %q", logs.entries[1].Status)
	}
}

func TestSyncAllRecoversFromPanic(t *testing.T) {
	logs := &recordingLogRepo{}
	fetcher := &stubFetcher{
		panics: map[string]bool{"https://example.org/poule-2": true},
	}
	o := newTestOrchestrator(&stubTeamRepo{teams: threeTeams()}, logs, fetcher)

	summary, err := o.SyncAll(context.Background())
	if err != nil {
		t.Fatalf("SyncAll failed: %v", err)
	}

	if len(summary.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(summary.Results))
	}
	if summary.Results[1].Status != database.SyncStatusError {
		t.Errorf("panicked team must yield an error result: %+v", summary.Results[1])
	}
}

func TestSyncAllSkipsTeamWithoutSourceURL(t *testing.T) {
	empty := ""
	teams := []database.Team{
		{ID: 1, Name: "Seniors M1", SourceURL: &empty},
	}
	logs := &recordingLogRepo{}
	o := newTestOrchestrator(&stubTeamRepo{teams: teams}, logs, &stubFetcher{})

	summary, err := o.SyncAll(context.Background())
	if err != nil {
		t.Fatalf("SyncAll failed: %v", err)
	}
	if summary.Results[0].Status != database.SyncStatusError {
		t.Errorf("expected error result, got %+v", summary.Results[0])
	}
}

func TestSyncAllFatalOnTeamListFailure(t *testing.T) {
	o := newTestOrchestrator(&stubTeamRepo{err: errors.New("connection refused")}, &recordingLogRepo{}, &stubFetcher{})

	if _, err := o.SyncAll(context.Background()); err == nil {
		t.Fatal("expected team list failure to be fatal")
	}
}

func TestSyncAllLogWriteFailureDoesNotAbort(t *testing.T) {
	kickoff := time.Date(2025, 12, 12, 20, 45, 0, 0, time.UTC)
	logs := &recordingLogRepo{err: errors.New("disk full")}
	fetcher := &stubFetcher{
		byURL: map[string][]scrape.MatchCandidate{
			"https://example.org/poule-1": {upcomingCandidate("VAL DE LEYSSE", kickoff)},
		},
	}
	teams := []database.Team{
		{ID: 1, Name: "Seniors M1", SourceURL: strPtr("https://example.org/poule-1")},
	}
	o := newTestOrchestrator(&stubTeamRepo{teams: teams}, logs, fetcher)

	summary, err := o.SyncAll(context.Background())
	if err != nil {
		t.Fatalf("SyncAll failed: %v", err)
	}
	if summary.Results[0].Status != database.SyncStatusSuccess {
		t.Errorf("sync outcome must not depend on log writes: %+v", summary.Results[0])
	}
}
