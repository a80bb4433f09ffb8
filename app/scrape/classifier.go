package scrape

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParsedLine is the structured form of one match-listing line.
type ParsedLine struct {
	Kickoff  time.Time
	TeamA    string
	TeamB    string
	Finished bool
	ScoreA   int // textual order, team A first
	ScoreB   int
}

// Classifier turns one raw line of scraped match text into a ParsedLine.
// Lines that do not encode a match are dropped silently: the pool pages mix
// match lines with navigation chrome and formatting noise.
type Classifier struct {
	loc *time.Location
}

func NewClassifier(loc *time.Location) *Classifier {
	if loc == nil {
		loc = time.Local
	}
	return &Classifier{loc: loc}
}

// navigationSuffixes are link captions glued to the match text by the
// rendered DOM.
var navigationSuffixes = []string{"Voir détail", "Voir detail", "Rejouer"}

// datePattern matches the line prefix: optional weekday, day, month name,
// year, "à", hour H minute.
var datePattern = regexp.MustCompile(`^(?i)(?:\p{L}+\.?\s+)?(\d{1,2})(?:er)?\s+(\p{L}+)\s+(\d{4})\s+à\s+(\d{1,2})H(\d{2})`)

// months maps folded French month names to their number.
var months = map[string]time.Month{
	"JANVIER":   time.January,
	"FEVRIER":   time.February,
	"MARS":      time.March,
	"AVRIL":     time.April,
	"MAI":       time.May,
	"JUIN":      time.June,
	"JUILLET":   time.July,
	"AOUT":      time.August,
	"SEPTEMBRE": time.September,
	"OCTOBRE":   time.October,
	"NOVEMBRE":  time.November,
	"DECEMBRE":  time.December,
}

// scorelinePatterns are tried in order; the first match wins. Each pattern
// captures team A, the two 2-digit scores in textual order, and team B.
// Adding a future encoding is appending an entry here.
var scorelinePatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	// youth format: a team-number marker digit precedes the four score digits
	// and is discarded
	{"5-digit", regexp.MustCompile(`^(.+?\D)\d(\d{2})(\d{2})(\D.+)$`)},
	// adult format: the four score digits sit directly between the names
	{"4-digit", regexp.MustCompile(`^(.+?\D)(\d{2})(\d{2})(\D.+)$`)},
}

var leadingPositionPattern = regexp.MustCompile(`^\d+\s*`)

// ParseLine classifies one raw match line. The second return value is false
// for anything that is not a dated match record: undated lines, unrelated
// text, unrecognized encodings. Such lines are expected and never an error.
func (c *Classifier) ParseLine(line string) (*ParsedLine, bool) {
	line = stripNavigationChrome(line)

	m := datePattern.FindStringSubmatch(line)
	if m == nil {
		slog.Debug("Line has no date prefix, dropped", "line", line)
		return nil, false
	}

	month, ok := months[foldKey(m[2])]
	if !ok {
		slog.Debug("Unknown month name, dropped", "month", m[2], "line", line)
		return nil, false
	}

	day, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	kickoff := time.Date(year, month, day, hour, minute, 0, 0, c.loc)

	rest := strings.TrimSpace(line[len(m[0]):])

	// Upcoming shape: the two names are separated by a double dash and no
	// score digits.
	if i := strings.Index(rest, "--"); i >= 0 {
		teamA := cleanTeamName(rest[:i])
		teamB := cleanTeamName(rest[i+2:])
		if teamA == "" || teamB == "" {
			slog.Debug("Upcoming line with empty team name, dropped", "line", line)
			return nil, false
		}
		return &ParsedLine{Kickoff: kickoff, TeamA: teamA, TeamB: teamB}, true
	}

	// Finished shapes: score digits embedded directly between the names.
	for _, pattern := range scorelinePatterns {
		sm := pattern.re.FindStringSubmatch(rest)
		if sm == nil {
			continue
		}
		teamA := cleanTeamName(sm[1])
		teamB := cleanTeamName(sm[4])
		if teamA == "" || teamB == "" {
			continue
		}
		scoreA, _ := strconv.Atoi(sm[2])
		scoreB, _ := strconv.Atoi(sm[3])
		slog.Debug("Scoreline matched", "pattern", pattern.name, "teamA", teamA, "teamB", teamB)
		return &ParsedLine{
			Kickoff:  kickoff,
			TeamA:    teamA,
			TeamB:    teamB,
			Finished: true,
			ScoreA:   scoreA,
			ScoreB:   scoreB,
		}, true
	}

	slog.Debug("Line matched no known shape, dropped", "line", line)
	return nil, false
}

func stripNavigationChrome(line string) string {
	for _, suffix := range navigationSuffixes {
		line = strings.ReplaceAll(line, suffix, "")
	}
	return strings.TrimSpace(line)
}

// cleanTeamName drops the numeric classification-position prefix the site
// prepends to some names and collapses whitespace.
func cleanTeamName(name string) string {
	name = strings.TrimSpace(name)
	name = leadingPositionPattern.ReplaceAllString(name, "")
	return collapseWhitespace(name)
}
