package parser

import (
	"github.com/palpiteria/bolao/internal/domain/championship"
	"github.com/palpiteria/bolao/internal/normalize"
)

// InferRound finds the single round whose fixtures involve every given
// team. Zero or several qualifying rounds fail with AmbiguousRoundError
// rather than guessing; the caller is expected to ask for an explicit
// round number instead.
func (p *Parser) InferRound(teams []string, table *championship.Table) (int, error) {
	if table == nil || len(teams) == 0 {
		return 0, &AmbiguousRoundError{}
	}

	mentioned := make(map[string]struct{}, len(teams))
	for _, team := range teams {
		if key := normalize.Team(team); key != "" {
			mentioned[key] = struct{}{}
		}
	}
	if len(mentioned) == 0 {
		return 0, &AmbiguousRoundError{}
	}

	var candidates []int
	for _, round := range table.Rounds {
		inRound := make(map[string]struct{}, len(round.Matches)*2)
		for _, match := range round.Matches {
			inRound[normalize.Team(match.HomeTeam)] = struct{}{}
			inRound[normalize.Team(match.AwayTeam)] = struct{}{}
		}

		covered := true
		for key := range mentioned {
			if _, ok := inRound[key]; !ok {
				covered = false
				break
			}
		}
		if covered {
			candidates = append(candidates, round.Number)
		}
	}

	if len(candidates) == 1 {
		return candidates[0], nil
	}
	return 0, &AmbiguousRoundError{Candidates: candidates}
}
