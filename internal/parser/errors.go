package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownBettor  = errors.New("unknown bettor")
	ErrUnknownTeam    = errors.New("unknown team")
	ErrAmbiguousRound = errors.New("ambiguous round")
	ErrInvalidScore   = errors.New("invalid score")
	ErrMalformedLine  = errors.New("malformed line")
)

// UnknownBettorError reports a bettor that could not be matched against
// the participant registry. Name keeps the raw text so the caller can
// show it back to the operator.
type UnknownBettorError struct {
	Name string
}

func (e *UnknownBettorError) Error() string {
	if e.Name == "" {
		return "unknown bettor: no name found in text"
	}
	return fmt.Sprintf("unknown bettor %q", e.Name)
}

func (e *UnknownBettorError) Unwrap() error { return ErrUnknownBettor }

// UnknownTeamError reports a team mention that resolved against no
// scheduled team.
type UnknownTeamError struct {
	Name string
	Line int
}

func (e *UnknownTeamError) Error() string {
	return fmt.Sprintf("unknown team %q on line %d", e.Name, e.Line)
}

func (e *UnknownTeamError) Unwrap() error { return ErrUnknownTeam }

// AmbiguousRoundError reports a round inference that did not land on
// exactly one candidate. Candidates is empty when no round contains
// every mentioned team.
type AmbiguousRoundError struct {
	Candidates []int
}

func (e *AmbiguousRoundError) Error() string {
	if len(e.Candidates) == 0 {
		return "ambiguous round: no round contains every mentioned team"
	}
	parts := make([]string, len(e.Candidates))
	for i, n := range e.Candidates {
		parts[i] = strconv.Itoa(n)
	}
	return "ambiguous round: candidates " + strings.Join(parts, ", ")
}

func (e *AmbiguousRoundError) Unwrap() error { return ErrAmbiguousRound }

// InvalidScoreError reports a scoreline whose goal counts fall outside
// the accepted range.
type InvalidScoreError struct {
	Line int
	Text string
}

func (e *InvalidScoreError) Error() string {
	return fmt.Sprintf("invalid score on line %d: %q", e.Line, e.Text)
}

func (e *InvalidScoreError) Unwrap() error { return ErrInvalidScore }

// MalformedLineError reports a line that looks like a scoreline but
// does not decompose under any known format.
type MalformedLineError struct {
	Line int
	Text string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed line %d: %q", e.Line, e.Text)
}

func (e *MalformedLineError) Unwrap() error { return ErrMalformedLine }
