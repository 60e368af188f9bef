// Package parser extracts bettors, rounds and scorelines from the
// free-form prediction messages participants paste out of chat apps.
// Matching is a fixed table of patterns tried in order, so every
// accepted form is enumerable and testable on its own.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/palpiteria/bolao/internal/domain/championship"
	"github.com/palpiteria/bolao/internal/normalize"
)

const (
	// DefaultMaxGoals caps a single team's goals in one scoreline.
	DefaultMaxGoals = 20
	// DefaultMaxRound caps accepted round numbers.
	DefaultMaxRound = 50
)

// Prediction is one parsed scoreline. Teams read as written, or as the
// scheduled names once resolved against a table. Line is the 1-based
// source line the prediction came from.
type Prediction struct {
	HomeTeam  string
	AwayTeam  string
	HomeGoals int
	AwayGoals int
	Line      int
}

// Extra is a prediction outside the mandatory fixtures. Identifier is
// the stable key used to deduplicate re-imports: "jogo-extra-N" for
// labelled bets, "extra-N" for bare scorelines inside an extras block.
type Extra struct {
	Prediction
	Identifier string
}

// ParsedSheet is everything extracted from one bettor's message for
// one round. Bettor is the resolved participant when a registry was
// supplied, otherwise it repeats RawBettor.
type ParsedSheet struct {
	Bettor      string
	RawBettor   string
	Round       int
	Inferred    bool
	Predictions []Prediction
	Extras      []Extra
}

// Parser turns prediction texts into ParsedSheets. The zero limits are
// replaced by the defaults in New.
type Parser struct {
	matcher  *normalize.Matcher
	MaxGoals int
	MaxRound int
}

func New(matcher *normalize.Matcher) *Parser {
	if matcher == nil {
		matcher = normalize.NewMatcher(3, 0.34)
	}
	return &Parser{matcher: matcher, MaxGoals: DefaultMaxGoals, MaxRound: DefaultMaxRound}
}

// Parse reads text as a single sheet. The round comes from an explicit
// marker anywhere in the text, or is inferred from the mentioned teams
// when a table is given. A nil table skips team resolution and
// inference; empty participants skip bettor resolution. Multi-round
// texts belong to ParseAll.
func (p *Parser) Parse(text string, table *championship.Table, participants []string) (*ParsedSheet, error) {
	sec := Section{Bettor: extractBettor(strings.Split(text, "\n")), Text: text, Line: 1}
	return p.parseSection(sec, table, participants)
}

func (p *Parser) parseSection(sec Section, table *championship.Table, participants []string) (*ParsedSheet, error) {
	sheet := &ParsedSheet{RawBettor: sec.Bettor, Bettor: sec.Bettor, Round: sec.Round}

	if len(participants) > 0 {
		resolved, ok := normalize.MatchParticipant(sec.Bettor, participants)
		if !ok {
			return nil, &UnknownBettorError{Name: sec.Bettor}
		}
		sheet.Bettor = resolved
	}

	if err := p.parseLines(sheet, sec); err != nil {
		return nil, err
	}

	if sheet.Round == 0 {
		if n, ok := extractRound(sec.Text, p.MaxRound); ok {
			sheet.Round = n
		}
	}

	if table != nil {
		if err := p.resolveTeams(sheet, table); err != nil {
			return nil, err
		}
		if sheet.Round == 0 && len(sheet.Predictions) > 0 {
			n, err := p.InferRound(regularTeams(sheet), table)
			if err != nil {
				return nil, err
			}
			sheet.Round = n
			sheet.Inferred = true
		}
	}

	return sheet, nil
}

// parseLines walks the section body once, classifying each line in a
// fixed order: round header, extras marker, labelled extra, metadata,
// scoreline, then junk. Scorelines inside an extras block become
// unlabelled extras.
func (p *Parser) parseLines(sheet *ParsedSheet, sec Section) error {
	inExtras := false
	unlabeled := 0

	for i, raw := range strings.Split(sec.Text, "\n") {
		line := strings.TrimSpace(raw)
		num := sec.Line + i
		if line == "" {
			continue
		}

		if sectionEndRegex.MatchString(line) {
			inExtras = false
			continue
		}
		if extraSectionRegex.MatchString(line) {
			inExtras = true
			continue
		}

		if m := extraGameRegex.FindStringSubmatch(line); m != nil {
			pred, ok, err := p.matchScore(m[2], num)
			if err != nil {
				return err
			}
			if !ok {
				return &MalformedLineError{Line: num, Text: line}
			}
			n, _ := strconv.Atoi(m[1])
			sheet.Extras = append(sheet.Extras, Extra{
				Prediction: pred,
				Identifier: fmt.Sprintf("jogo-extra-%d", n),
			})
			continue
		}

		if metadataRegex.MatchString(line) {
			continue
		}

		pred, ok, err := p.matchScore(line, num)
		if err != nil {
			return err
		}
		if ok {
			if inExtras {
				unlabeled++
				sheet.Extras = append(sheet.Extras, Extra{
					Prediction: pred,
					Identifier: fmt.Sprintf("extra-%d", unlabeled),
				})
			} else {
				sheet.Predictions = append(sheet.Predictions, pred)
			}
			continue
		}

		if scorelikeRegex.MatchString(line) {
			return &MalformedLineError{Line: num, Text: line}
		}
	}

	return nil
}

// matchScore tries the scoreline formats in order. ok is false when no
// format matches; goal counts outside 0..MaxGoals are an error rather
// than a miss.
func (p *Parser) matchScore(line string, num int) (Prediction, bool, error) {
	line = strings.TrimSpace(line)
	for _, re := range scoreRegexes {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		home := cleanTeam(m[1])
		away := cleanTeam(m[4])
		if home == "" || away == "" {
			continue
		}

		hg, errH := strconv.Atoi(m[2])
		ag, errA := strconv.Atoi(m[3])
		if errH != nil || errA != nil || hg < 0 || hg > p.MaxGoals || ag < 0 || ag > p.MaxGoals {
			return Prediction{}, false, &InvalidScoreError{Line: num, Text: line}
		}

		return Prediction{HomeTeam: home, AwayTeam: away, HomeGoals: hg, AwayGoals: ag, Line: num}, true, nil
	}
	return Prediction{}, false, nil
}

// resolveTeams rewrites every team mention to its scheduled spelling.
func (p *Parser) resolveTeams(sheet *ParsedSheet, table *championship.Table) error {
	known := championship.KnownTeams(*table)

	resolve := func(name string, line int) (string, error) {
		match, ok := p.matcher.FindSimilar(name, known)
		if !ok {
			return "", &UnknownTeamError{Name: name, Line: line}
		}
		return match, nil
	}

	for i := range sheet.Predictions {
		pred := &sheet.Predictions[i]
		home, err := resolve(pred.HomeTeam, pred.Line)
		if err != nil {
			return err
		}
		away, err := resolve(pred.AwayTeam, pred.Line)
		if err != nil {
			return err
		}
		pred.HomeTeam, pred.AwayTeam = home, away
	}
	for i := range sheet.Extras {
		extra := &sheet.Extras[i]
		home, err := resolve(extra.HomeTeam, extra.Line)
		if err != nil {
			return err
		}
		away, err := resolve(extra.AwayTeam, extra.Line)
		if err != nil {
			return err
		}
		extra.HomeTeam, extra.AwayTeam = home, away
	}
	return nil
}

func regularTeams(sheet *ParsedSheet) []string {
	teams := make([]string, 0, len(sheet.Predictions)*2)
	for _, pred := range sheet.Predictions {
		teams = append(teams, pred.HomeTeam, pred.AwayTeam)
	}
	return teams
}

// cleanTeam drops bracket characters and collapses whitespace runs.
func cleanTeam(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '(', ')', '[', ']', '{', '}':
			return -1
		}
		return r
	}, name)
	return strings.Join(strings.Fields(name), " ")
}
