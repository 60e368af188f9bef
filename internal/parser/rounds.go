package parser

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/palpiteria/bolao/internal/domain/championship"
)

// Section is one per-round slice of a multi-round message. Bettor
// carries the name found before the first round header into every
// section. Line is the 1-based source line the section body starts on.
type Section struct {
	Round  int
	Bettor string
	Text   string
	Line   int
}

// SplitRounds cuts a message into per-round sections on lines that are
// nothing but a round header, decoration tolerated ("RODADA 3",
// "3ª Rodada:", emoji-wrapped variants). A text without headers comes
// back as a single section with Round 0.
func (p *Parser) SplitRounds(text string) []Section {
	lines := strings.Split(text, "\n")

	type headerAt struct {
		index int
		round int
	}
	var headers []headerAt
	for i, line := range lines {
		if n, ok := p.headerRound(line); ok {
			headers = append(headers, headerAt{index: i, round: n})
		}
	}

	if len(headers) == 0 {
		return []Section{{Bettor: extractBettor(lines), Text: text, Line: 1}}
	}

	bettor := extractBettor(lines[:headers[0].index])

	sections := make([]Section, 0, len(headers))
	for i, h := range headers {
		end := len(lines)
		if i+1 < len(headers) {
			end = headers[i+1].index
		}
		sections = append(sections, Section{
			Round:  h.round,
			Bettor: bettor,
			Text:   strings.Join(lines[h.index+1:end], "\n"),
			Line:   h.index + 2,
		})
	}
	return sections
}

// ParseAll parses a possibly multi-round message into one sheet per
// section, dropping sections that carried no predictions at all.
func (p *Parser) ParseAll(text string, table *championship.Table, participants []string) ([]*ParsedSheet, error) {
	return p.parseAll(text, table, participants, 0)
}

// ParseAllInRound parses a message whose round is already known. Sections
// without their own marker take the given round instead of going through
// marker extraction or team inference.
func (p *Parser) ParseAllInRound(text string, table *championship.Table, participants []string, round int) ([]*ParsedSheet, error) {
	return p.parseAll(text, table, participants, round)
}

func (p *Parser) parseAll(text string, table *championship.Table, participants []string, round int) ([]*ParsedSheet, error) {
	sheets := make([]*ParsedSheet, 0, 1)
	for _, sec := range p.SplitRounds(text) {
		if sec.Round == 0 && round > 0 {
			sec.Round = round
		}
		sheet, err := p.parseSection(sec, table, participants)
		if err != nil {
			return nil, err
		}
		if len(sheet.Predictions) == 0 && len(sheet.Extras) == 0 {
			continue
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

func (p *Parser) headerRound(line string) (int, bool) {
	return HeaderRound(line, p.MaxRound)
}

// HeaderRound reports whether the line is a standalone round header,
// after stripping any non-alphanumeric decoration from both ends. The
// schedule importer shares this grammar so "Rodada 3" means the same
// thing in a fixture file and in a prediction message.
func HeaderRound(line string, maxRound int) (int, bool) {
	stripped := strings.TrimFunc(line, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if stripped == "" {
		return 0, false
	}
	for _, re := range headerRegexes {
		m := re.FindStringSubmatch(stripped)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > maxRound {
			continue
		}
		return n, true
	}
	return 0, false
}
