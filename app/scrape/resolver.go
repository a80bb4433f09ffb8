package scrape

import (
	"strings"
)

// Resolver decides which side of a match line is our club, and picks the
// adversary's badge among the images of a match element. The federation
// pages list every team of the pool, so a line matching no keyword simply
// does not involve us.
type Resolver struct {
	keywords []string // folded comparison form
}

func NewResolver(keywords []string) *Resolver {
	folded := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		if k := foldKey(keyword); k != "" {
			folded = append(folded, k)
		}
	}
	return &Resolver{keywords: folded}
}

// Side resolves which team name is ours. home is true when our club is the
// listed team A. ok is false when neither name matches a keyword: the match
// does not involve our team and the caller must discard it.
func (r *Resolver) Side(teamA, teamB string) (home bool, adversary string, ok bool) {
	switch {
	case r.isOurs(teamA):
		return true, teamB, true
	case r.isOurs(teamB):
		return false, teamA, true
	default:
		return false, "", false
	}
}

// AdversaryLogo returns the source URL of the first image whose title does
// not name our club, assuming that one pictures the adversary's badge. When
// no title is informative the first image wins; without images there is no
// logo. Missing or empty title attributes are tolerated.
func (r *Resolver) AdversaryLogo(images []ImageRef) string {
	for _, image := range images {
		if image.Title != "" && !r.isOurs(image.Title) {
			return image.Src
		}
	}
	if len(images) > 0 {
		return images[0].Src
	}
	return ""
}

func (r *Resolver) isOurs(name string) bool {
	folded := foldKey(name)
	for _, keyword := range r.keywords {
		if strings.Contains(folded, keyword) {
			return true
		}
	}
	return false
}
