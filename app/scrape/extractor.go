package scrape

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/antgrillet/hbcaix-sync/app/club"
)

// maxConsecutiveEmptyDays stops the day scan once this many days in a row
// yield no match of ours. The pool's day list interleaves many unrelated
// teams; once our matches run out near the end of the range, further days
// bring nothing new. A heuristic early exit, not a correctness requirement.
const maxConsecutiveEmptyDays = 2

// Extractor walks the match days of a pool page and produces the candidate
// matches involving our team.
type Extractor struct {
	opener     PoolOpener
	classifier *Classifier
	resolver   *Resolver
	settings   *club.Settings
}

func NewExtractor(opener PoolOpener, classifier *Classifier, resolver *Resolver, settings *club.Settings) *Extractor {
	return &Extractor{
		opener:     opener,
		classifier: classifier,
		resolver:   resolver,
		settings:   settings,
	}
}

// dayAccumulator carries the fold state across the ordered day labels.
type dayAccumulator struct {
	candidates       []MatchCandidate
	consecutiveEmpty int
}

// FetchMatches opens the pool page behind poolURL and folds over its day
// labels in site order, stopping early after maxConsecutiveEmptyDays days
// without a match of ours. A failure to open the pool is fatal for the
// team's run; a failure on one day is logged and counts as an empty day.
func (e *Extractor) FetchMatches(ctx context.Context, poolURL string) ([]MatchCandidate, error) {
	page, err := e.opener.Open(ctx, poolURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open pool page: %w", err)
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			slog.Warn("Failed to release pool page", "error", cerr)
		}
	}()

	acc := dayAccumulator{}
	for _, label := range page.DayLabels() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if acc.consecutiveEmpty >= maxConsecutiveEmptyDays {
			slog.Debug("Stopping day scan", "after", label, "consecutive_empty", acc.consecutiveEmpty)
			break
		}

		dayCandidates := e.extractDay(page, label)
		if len(dayCandidates) == 0 {
			acc.consecutiveEmpty++
			continue
		}
		acc.consecutiveEmpty = 0
		acc.candidates = append(acc.candidates, dayCandidates...)
	}

	return acc.candidates, nil
}

func (e *Extractor) extractDay(page PoolPage, label string) []MatchCandidate {
	elements, err := page.OpenDay(label)
	if err != nil {
		slog.Warn("Match day failed, treated as empty", "day", label, "error", err)
		return nil
	}

	var candidates []MatchCandidate
	for _, element := range elements {
		if candidate, ok := e.candidateFromElement(element); ok {
			candidates = append(candidates, candidate)
		}
	}

	slog.Debug("Match day scanned", "day", label, "elements", len(elements), "ours", len(candidates))
	return candidates
}

func (e *Extractor) candidateFromElement(element MatchElement) (MatchCandidate, bool) {
	parsed, ok := e.classifier.ParseLine(element.Text)
	if !ok {
		return MatchCandidate{}, false
	}

	home, adversary, ok := e.resolver.Side(parsed.TeamA, parsed.TeamB)
	if !ok {
		// Not our match: the pool lists every team of the bracket.
		return MatchCandidate{}, false
	}

	candidate := MatchCandidate{
		Adversary:   adversary,
		Kickoff:     parsed.Kickoff,
		Venue:       e.settings.VenuePlaceholder,
		Home:        home,
		Competition: e.settings.Competition,
		Finished:    parsed.Finished,
	}

	if parsed.Finished {
		ours, theirs := parsed.ScoreA, parsed.ScoreB
		if !home {
			ours, theirs = parsed.ScoreB, parsed.ScoreA
		}
		candidate.ScoreOurs = &ours
		candidate.ScoreAdversary = &theirs
	}

	if logo := e.resolver.AdversaryLogo(element.Images); logo != "" {
		candidate.AdversaryLogo = &logo
	}

	return candidate, true
}
