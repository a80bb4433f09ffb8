package scrape

import (
	"context"
	"time"
)

// ImageRef is one image embedded in a match element, with its optional
// title attribute.
type ImageRef struct {
	Src   string
	Title string
}

// MatchElement is the raw content of one match link collected from a
// match-day panel.
type MatchElement struct {
	Text   string
	Images []ImageRef
}

// MatchCandidate is one match of our team as scraped from the federation
// site. Candidates are ephemeral, produced per run, never persisted
// directly.
type MatchCandidate struct {
	Adversary      string
	Kickoff        time.Time
	Venue          string
	Home           bool
	Competition    string
	Finished       bool
	ScoreOurs      *int
	ScoreAdversary *int
	AdversaryLogo  *string
}

// PoolPage is an open competition-pool page. Day labels are returned in the
// order the site exposes them; OpenDay drives the browser to a day's panel
// and collects its match elements. Close must be called on every exit path.
type PoolPage interface {
	DayLabels() []string
	OpenDay(label string) ([]MatchElement, error)
	Close() error
}

// PoolOpener opens the pool page behind a team's configured URL.
type PoolOpener interface {
	Open(ctx context.Context, poolURL string) (PoolPage, error)
}
