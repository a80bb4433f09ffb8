package syncer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/antgrillet/hbcaix-sync/app/database"
	"github.com/antgrillet/hbcaix-sync/app/scrape"
)

type memoryMatchRepo struct {
	matches    []database.Match
	nextID     int
	failCreate map[string]error
	updates    int
}

func newMemoryMatchRepo() *memoryMatchRepo {
	return &memoryMatchRepo{nextID: 1, failCreate: make(map[string]error)}
}

func (m *memoryMatchRepo) GetMatchByNaturalKey(ctx context.Context, teamID int, adversary string, kickoff time.Time) (*database.Match, error) {
	for i := range m.matches {
		match := &m.matches[i]
		if match.TeamID == teamID && match.Adversary == adversary && match.Kickoff.Equal(kickoff) {
			found := *match
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memoryMatchRepo) CreateMatch(ctx context.Context, match database.Match) (*database.Match, error) {
	if err := m.failCreate[match.Adversary]; err != nil {
		return nil, err
	}
	match.ID = m.nextID
	m.nextID++
	m.matches = append(m.matches, match)
	return &match, nil
}

func (m *memoryMatchRepo) UpdateMatchResult(ctx context.Context, id int, upd database.MatchResultUpdate) error {
	for i := range m.matches {
		if m.matches[i].ID == id {
			m.matches[i].Finished = upd.Finished
			m.matches[i].ScoreOurs = upd.ScoreOurs
			m.matches[i].ScoreAdversary = upd.ScoreAdversary
			m.matches[i].AdversaryLogo = upd.AdversaryLogo
			m.matches[i].Venue = upd.Venue
			m.updates++
			return nil
		}
	}
	return fmt.Errorf("match %d not found", id)
}

func (m *memoryMatchRepo) GetMatchCount(ctx context.Context) (int, error) {
	return len(m.matches), nil
}

var _ database.MatchRepository = (*memoryMatchRepo)(nil)

func intPtr(v int) *int { return &v }

func upcomingCandidate(adversary string, kickoff time.Time) scrape.MatchCandidate {
	return scrape.MatchCandidate{
		Adversary:   adversary,
		Kickoff:     kickoff,
		Venue:       "Lieu à définir",
		Home:        true,
		Competition: "Championnat",
	}
}

func finishedCandidate(adversary string, kickoff time.Time, ours, theirs int) scrape.MatchCandidate {
	c := upcomingCandidate(adversary, kickoff)
	c.Finished = true
	c.ScoreOurs = intPtr(ours)
	c.ScoreAdversary = intPtr(theirs)
	return c
}

func TestReconcileCreatesUnknownMatches(t *testing.T) {
	repo := newMemoryMatchRepo()
	r := NewReconciler(repo)
	kickoff := time.Date(2025, 12, 12, 20, 45, 0, 0, time.UTC)

	counts, err := r.Reconcile(context.Background(), 7, []scrape.MatchCandidate{
		upcomingCandidate("VAL DE LEYSSE", kickoff),
	})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if counts.Created != 1 || counts.Updated != 0 || counts.Skipped != 0 {
		t.Errorf("unexpected counts: %+v", counts)
	}

	stored := repo.matches[0]
	if stored.TeamID != 7 || stored.Adversary != "VAL DE LEYSSE" {
		t.Errorf("unexpected stored match: %+v", stored)
	}
	if !stored.Published {
		t.Error("created matches must be published")
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	repo := newMemoryMatchRepo()
	r := NewReconciler(repo)
	kickoff := time.Date(2025, 12, 12, 20, 45, 0, 0, time.UTC)
	candidates := []scrape.MatchCandidate{
		finishedCandidate("VAL DE LEYSSE", kickoff, 26, 41),
		upcomingCandidate("ANNECY CSAV", kickoff.AddDate(0, 0, 7)),
	}

	if _, err := r.Reconcile(context.Background(), 7, candidates); err != nil {
		t.Fatalf("first pass failed: %v", err)
	}
	counts, err := r.Reconcile(context.Background(), 7, candidates)
	if err != nil {
		t.Fatalf("second pass failed: %v", err)
	}
	if counts.Created != 0 || counts.Updated != 0 || counts.Skipped != 2 {
		t.Errorf("second pass must be all skips, got %+v", counts)
	}
	if len(repo.matches) != 2 {
		t.Errorf("expected 2 stored matches, got %d", len(repo.matches))
	}
}

func TestReconcileUpdatesWhenMatchFinishes(t *testing.T) {
	repo := newMemoryMatchRepo()
	r := NewReconciler(repo)
	kickoff := time.Date(2025, 12, 12, 20, 45, 0, 0, time.UTC)

	if _, err := r.Reconcile(context.Background(), 7, []scrape.MatchCandidate{
		upcomingCandidate("VAL DE LEYSSE", kickoff),
	}); err != nil {
		t.Fatalf("seed pass failed: %v", err)
	}

	counts, err := r.Reconcile(context.Background(), 7, []scrape.MatchCandidate{
		finishedCandidate("VAL DE LEYSSE", kickoff, 26, 41),
	})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if counts.Updated != 1 || counts.Created != 0 {
		t.Errorf("unexpected counts: %+v", counts)
	}

	stored := repo.matches[0]
	if !stored.Finished || stored.ScoreOurs == nil || *stored.ScoreOurs != 26 || *stored.ScoreAdversary != 41 {
		t.Errorf("result not persisted: %+v", stored)
	}
}

func TestReconcileNeverDowngradesFinishedMatch(t *testing.T) {
	repo := newMemoryMatchRepo()
	r := NewReconciler(repo)
	kickoff := time.Date(2025, 12, 12, 20, 45, 0, 0, time.UTC)

	if _, err := r.Reconcile(context.Background(), 7, []scrape.MatchCandidate{
		finishedCandidate("VAL DE LEYSSE", kickoff, 26, 41),
	}); err != nil {
		t.Fatalf("seed pass failed: %v", err)
	}

	// A stale listing without the result must not erase the stored score.
	counts, err := r.Reconcile(context.Background(), 7, []scrape.MatchCandidate{
		upcomingCandidate("VAL DE LEYSSE", kickoff),
	})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if counts.Skipped != 1 || counts.Updated != 0 {
		t.Errorf("unexpected counts: %+v", counts)
	}
	if stored := repo.matches[0]; !stored.Finished || *stored.ScoreOurs != 26 {
		t.Errorf("finished match was downgraded: %+v", stored)
	}
}

func TestReconcileUpdatesCorrectedScore(t *testing.T) {
	repo := newMemoryMatchRepo()
	r := NewReconciler(repo)
	kickoff := time.Date(2025, 12, 12, 20, 45, 0, 0, time.UTC)

	if _, err := r.Reconcile(context.Background(), 7, []scrape.MatchCandidate{
		finishedCandidate("VAL DE LEYSSE", kickoff, 26, 41),
	}); err != nil {
		t.Fatalf("seed pass failed: %v", err)
	}

	counts, err := r.Reconcile(context.Background(), 7, []scrape.MatchCandidate{
		finishedCandidate("VAL DE LEYSSE", kickoff, 27, 41),
	})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if counts.Updated != 1 {
		t.Errorf("corrected score must update, got %+v", counts)
	}
	if *repo.matches[0].ScoreOurs != 27 {
		t.Errorf("corrected score not persisted: %+v", repo.matches[0])
	}
}

func TestReconcileDistinguishesNaturalKeys(t *testing.T) {
	repo := newMemoryMatchRepo()
	r := NewReconciler(repo)
	kickoff := time.Date(2025, 12, 12, 20, 45, 0, 0, time.UTC)

	// Same adversary, different kickoff: home and away legs are distinct rows.
	counts, err := r.Reconcile(context.Background(), 7, []scrape.MatchCandidate{
		upcomingCandidate("VAL DE LEYSSE", kickoff),
		upcomingCandidate("VAL DE LEYSSE", kickoff.AddDate(0, 2, 0)),
	})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if counts.Created != 2 {
		t.Errorf("expected 2 creates, got %+v", counts)
	}
}

func TestReconcileContinuesPastPersistenceFailures(t *testing.T) {
	repo := newMemoryMatchRepo()
	repo.failCreate["ANNECY CSAV"] = errors.New("connection reset")
	r := NewReconciler(repo)
	kickoff := time.Date(2025, 12, 12, 20, 45, 0, 0, time.UTC)

	counts, err := r.Reconcile(context.Background(), 7, []scrape.MatchCandidate{
		upcomingCandidate("ANNECY CSAV", kickoff),
		upcomingCandidate("VAL DE LEYSSE", kickoff.AddDate(0, 0, 7)),
	})
	if err == nil {
		t.Fatal("expected aggregate error")
	}
	if counts.Created != 1 {
		t.Errorf("remaining candidates must still be processed, got %+v", counts)
	}
	if len(repo.matches) != 1 || repo.matches[0].Adversary != "VAL DE LEYSSE" {
		t.Errorf("unexpected store contents: %+v", repo.matches)
	}
}
