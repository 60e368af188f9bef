package championship

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	StatusScheduled = "agendado"
	StatusFinalized = "finalizado"
)

// DefaultVenue is recorded when a schedule line carries no venue.
const DefaultVenue = "A definir"

const matchIDPrefix = "jogo-"

var (
	ErrDuplicateRound = errors.New("duplicate round number")
	ErrDuplicateMatch = errors.New("duplicate match id")
)

// Match is one game inside a round. Goals stay nil until the final
// score is recorded and the status flips to finalized.
type Match struct {
	ID        string
	HomeTeam  string
	AwayTeam  string
	KickoffAt time.Time
	Venue     string
	HomeGoals *int
	AwayGoals *int
	Status    string
	Mandatory bool
}

// Round groups the matches played under one ordinal.
type Round struct {
	Number  int
	Matches []Match
}

// Table is the full championship schedule document.
type Table struct {
	Championship string
	Season       string
	Code         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CurrentRound int
	Rounds       []Round
}

func NormalizeStatus(value string) string {
	status := strings.ToLower(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsFinalizedStatus(status string) bool {
	return NormalizeStatus(status) == StatusFinalized
}

// FormatMatchID renders the zero-padded match identifier for n.
func FormatMatchID(n int) string {
	return fmt.Sprintf("%s%03d", matchIDPrefix, n)
}

// MatchNumber extracts the trailing number of a match id ("jogo-017" -> 17).
func MatchNumber(id string) (int, bool) {
	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}
	if i == len(id) {
		return 0, false
	}
	n, err := strconv.Atoi(id[i:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// NextMatchID returns the next free match id, continuing from the highest
// trailing number present anywhere in the table.
func NextMatchID(t Table) string {
	highest := 0
	for _, round := range t.Rounds {
		for _, match := range round.Matches {
			if n, ok := MatchNumber(match.ID); ok && n > highest {
				highest = n
			}
		}
	}
	return FormatMatchID(highest + 1)
}

// RoundByNumber finds a round in the table.
func RoundByNumber(t *Table, number int) (*Round, bool) {
	for i := range t.Rounds {
		if t.Rounds[i].Number == number {
			return &t.Rounds[i], true
		}
	}
	return nil, false
}

// MatchByID finds a match inside a round.
func MatchByID(r *Round, id string) (*Match, bool) {
	for i := range r.Matches {
		if r.Matches[i].ID == id {
			return &r.Matches[i], true
		}
	}
	return nil, false
}

// EnsureRound returns the round with the given number, appending an empty
// one when missing. Rounds keep ascending order.
func EnsureRound(t *Table, number int) *Round {
	if round, ok := RoundByNumber(t, number); ok {
		return round
	}
	t.Rounds = append(t.Rounds, Round{Number: number})
	SortRounds(t)
	round, _ := RoundByNumber(t, number)
	return round
}

// SortRounds orders rounds ascending by number.
func SortRounds(t *Table) {
	sort.Slice(t.Rounds, func(i, j int) bool {
		return t.Rounds[i].Number < t.Rounds[j].Number
	})
}

// KnownTeams lists every distinct team in the table in first-appearance
// order.
func KnownTeams(t Table) []string {
	seen := make(map[string]struct{})
	var teams []string
	for _, round := range t.Rounds {
		for _, match := range round.Matches {
			for _, team := range []string{match.HomeTeam, match.AwayTeam} {
				if team == "" {
					continue
				}
				if _, ok := seen[team]; ok {
					continue
				}
				seen[team] = struct{}{}
				teams = append(teams, team)
			}
		}
	}
	return teams
}

// PendingMandatory lists the round's mandatory matches that are not yet
// finalized.
func PendingMandatory(r Round) []Match {
	var pending []Match
	for _, match := range r.Matches {
		if match.Mandatory && !IsFinalizedStatus(match.Status) {
			pending = append(pending, match)
		}
	}
	return pending
}

// Validate checks table-level uniqueness invariants.
func Validate(t Table) error {
	rounds := make(map[int]struct{}, len(t.Rounds))
	matches := make(map[string]struct{})
	for _, round := range t.Rounds {
		if round.Number < 1 {
			return fmt.Errorf("round number must be positive: %d", round.Number)
		}
		if _, dup := rounds[round.Number]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateRound, round.Number)
		}
		rounds[round.Number] = struct{}{}

		for _, match := range round.Matches {
			if match.ID == "" {
				return fmt.Errorf("match id is required in round %d", round.Number)
			}
			if _, dup := matches[match.ID]; dup {
				return fmt.Errorf("%w: %s", ErrDuplicateMatch, match.ID)
			}
			matches[match.ID] = struct{}{}
		}
	}
	return nil
}
