package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Scoreline formats tried in order; the first match wins. Group order
// is always home, home goals, away goals, away.
var scoreRegexes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(.+?)\s+(\d+)\s*x\s*(\d+)\s+(.+)$`),
	regexp.MustCompile(`(?i)^(.+?)\s+(\d+)\s*-\s*(\d+)\s+(.+)$`),
	regexp.MustCompile(`(?i)^(.+?)\s+(\d+)\s*:\s*(\d+)\s+(.+)$`),
	regexp.MustCompile(`(?i)^(.+?)\s*\(\s*(\d+)\s*\)\s*x\s*\(\s*(\d+)\s*\)\s*(.+)$`),
}

// Round markers tried in order over the whole text; the first matcher
// with an in-range hit wins, regardless of position.
var roundRegexes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)[ªº°]?\s*rodada`),
	regexp.MustCompile(`(?i)rodada\s*:?\s*(\d+)`),
	regexp.MustCompile(`(?i)\br\s*(\d+)\b`),
	regexp.MustCompile(`(?i)\bround\s*:?\s*(\d+)\b`),
	regexp.MustCompile(`(?i)(\d+)[ªº°]?\s*jornada`),
	regexp.MustCompile(`(?i)jornada\s*:?\s*(\d+)`),
}

// Round headers for splitting multi-round texts. Matched against a line
// stripped of surrounding decoration, whole line only.
var headerRegexes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(?:rodada|round|jornada)\s*:?\s*(\d+)$`),
	regexp.MustCompile(`(?i)^(\d+)[ªº°]?\s*(?:rodada|jornada)$`),
}

var (
	bettorLabelRegex  = regexp.MustCompile(`(?i)^\s*(?:apostador|nome|participante)\s*:\s*(.+)$`)
	roundHintRegex    = regexp.MustCompile(`(?i)rodada|jornada|round|jogo|\d+\s*[x:\-]\s*\d+`)
	plainNameRegex    = regexp.MustCompile(`^[\p{L}][\p{L} .'-]*$`)
	extraSectionRegex = regexp.MustCompile(`(?i)^\s*(?:apostas?\s+extras?|jogos?\s+extras?|extras?|adiciona(?:l|is))\s*:?\s*$`)
	extraGameRegex    = regexp.MustCompile(`(?i)^\s*jogo\s*(\d+)\s*:\s*(.+)$`)
	sectionEndRegex   = regexp.MustCompile(`(?i)^\s*(?:\d+[ªº°]?\s*(?:rodada|jornada)|(?:rodada|jornada|round)\s*:?\s*\d+)`)
	metadataRegex     = regexp.MustCompile(`(?i)apostador\s*:|nome\s*:|participante\s*:|rodada|jornada|\bround\b|apostas?\s+extras?`)
	scorelikeRegex    = regexp.MustCompile(`\p{L}.*\d+\s*[x:\-]\s*\d+.*\p{L}`)
)

// extractBettor finds the bettor name in the first three non-empty
// lines. Explicit labels win over the bare-name heuristic on the first
// line, so a stray heading between the name label and the scorelines
// does not get mistaken for the bettor.
func extractBettor(lines []string) string {
	seen := 0
	first := ""
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		seen++
		if seen > 3 {
			break
		}
		if m := bettorLabelRegex.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1])
		}
		if first == "" {
			first = line
		}
	}

	if first != "" && !roundHintRegex.MatchString(first) && plainNameRegex.MatchString(first) {
		return first
	}
	return ""
}

// extractRound scans the text for an explicit round marker between 1
// and max. Out-of-range hits fall through to the next marker form.
func extractRound(text string, max int) (int, bool) {
	for _, re := range roundRegexes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > max {
			continue
		}
		return n, true
	}
	return 0, false
}
