package syncer

import (
	"context"
	"errors"
	"fmt"

	"github.com/antgrillet/hbcaix-sync/app/database"
	"github.com/antgrillet/hbcaix-sync/app/scrape"
)

// Counts summarizes one reconciliation pass.
type Counts struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// Reconciler compares scraped candidates against the stored matches of a
// team and decides create, update or skip per candidate. The natural key is
// (team, adversary, kickoff): the source site has no stable match id.
type Reconciler struct {
	matchRepo database.MatchRepository
}

func NewReconciler(matchRepo database.MatchRepository) *Reconciler {
	return &Reconciler{matchRepo: matchRepo}
}

// Reconcile upserts the candidates for one team. A persistence failure on
// one candidate does not abort the rest; failures are collected and surfaced
// as one aggregate error at the end. Running the same candidates twice
// leaves the store unchanged on the second pass.
func (r *Reconciler) Reconcile(ctx context.Context, teamID int, candidates []scrape.MatchCandidate) (Counts, error) {
	var counts Counts
	var errs []error

	for _, candidate := range candidates {
		existing, err := r.matchRepo.GetMatchByNaturalKey(ctx, teamID, candidate.Adversary, candidate.Kickoff)
		if err != nil {
			errs = append(errs, fmt.Errorf("lookup %s at %s: %w", candidate.Adversary, candidate.Kickoff, err))
			continue
		}

		if existing == nil {
			if _, err := r.matchRepo.CreateMatch(ctx, matchFromCandidate(teamID, candidate)); err != nil {
				errs = append(errs, fmt.Errorf("create %s at %s: %w", candidate.Adversary, candidate.Kickoff, err))
				continue
			}
			counts.Created++
			continue
		}

		if !needsUpdate(existing, candidate) {
			// Covers the finished-flag monotonicity: an upcoming candidate
			// never downgrades a finished row.
			counts.Skipped++
			continue
		}

		upd := database.MatchResultUpdate{
			Finished:       candidate.Finished,
			ScoreOurs:      candidate.ScoreOurs,
			ScoreAdversary: candidate.ScoreAdversary,
			AdversaryLogo:  candidate.AdversaryLogo,
			Venue:          candidate.Venue,
		}
		if err := r.matchRepo.UpdateMatchResult(ctx, existing.ID, upd); err != nil {
			errs = append(errs, fmt.Errorf("update %s at %s: %w", candidate.Adversary, candidate.Kickoff, err))
			continue
		}
		counts.Updated++
	}

	if len(errs) > 0 {
		return counts, fmt.Errorf("%d of %d candidates failed: %w", len(errs), len(candidates), errors.Join(errs...))
	}

	return counts, nil
}

// needsUpdate is deliberately asymmetric: only a finished candidate with new
// information touches an existing row. Everything else, including an
// upcoming candidate against an already finished match, is a no-op.
func needsUpdate(existing *database.Match, candidate scrape.MatchCandidate) bool {
	if !candidate.Finished {
		return false
	}
	if !existing.Finished {
		return true
	}
	return scoreChanged(existing.ScoreOurs, candidate.ScoreOurs) ||
		scoreChanged(existing.ScoreAdversary, candidate.ScoreAdversary)
}

func scoreChanged(stored, scraped *int) bool {
	if stored == nil || scraped == nil {
		return stored != nil || scraped != nil
	}
	return *stored != *scraped
}

func matchFromCandidate(teamID int, candidate scrape.MatchCandidate) database.Match {
	return database.Match{
		TeamID:         teamID,
		Adversary:      candidate.Adversary,
		Kickoff:        candidate.Kickoff,
		Venue:          candidate.Venue,
		Home:           candidate.Home,
		Competition:    candidate.Competition,
		Finished:       candidate.Finished,
		ScoreOurs:      candidate.ScoreOurs,
		ScoreAdversary: candidate.ScoreAdversary,
		AdversaryLogo:  candidate.AdversaryLogo,
		Published:      true,
	}
}
