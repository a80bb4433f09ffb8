package club

// Settings describes the club as seen by the scrape pipeline. The federation
// pages list every team of a pool, so the keywords are the only way to tell
// which side of a match line is ours.
type Settings struct {
	// Keywords are case- and accent-insensitive substrings identifying the
	// club in team names as printed by the federation site. Several spellings
	// coexist on the source pages.
	Keywords []string `yaml:"keywords"`

	// Competition is the label attached to every scraped match. It is not
	// parsed from the page.
	Competition string `yaml:"competition"`

	// VenuePlaceholder is stored when the source does not publish a venue.
	VenuePlaceholder string `yaml:"venue_placeholder"`

	// ConsentLabels are button captions tried when dismissing the
	// cookie-consent dialog.
	ConsentLabels []string `yaml:"consent_labels"`
}
