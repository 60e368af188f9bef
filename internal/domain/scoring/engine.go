package scoring

import (
	"fmt"

	"github.com/palpiteria/bolao/internal/domain/championship"
	"github.com/palpiteria/bolao/internal/domain/prediction"
)

// outcome reports 1 for a home win, -1 for an away win and 0 for a draw.
func outcome(home, away int) int {
	switch {
	case home > away:
		return 1
	case home < away:
		return -1
	default:
		return 0
	}
}

func exactScore(ph, pa, rh, ra int) bool {
	return ph == rh && pa == ra
}

func sameOutcome(ph, pa, rh, ra int) bool {
	return outcome(ph, pa) == outcome(rh, ra)
}

// winnerCorrect requires a strict win on the same side in both scorelines.
func winnerCorrect(ph, pa, rh, ra int) bool {
	return (ph > pa && rh > ra) || (ph < pa && rh < ra)
}

// oneGoalCorrect reports whether exactly one side's goal count matches.
func oneGoalCorrect(ph, pa, rh, ra int) bool {
	return (ph == rh) != (pa == ra)
}

// reversedScore reports a home/away swap of the actual score. A double
// draw is the same scoreline, not a reversal.
func reversedScore(ph, pa, rh, ra int) bool {
	return ph == ra && pa == rh && ph != pa
}

func exactBonus(hits int) float64 {
	if hits <= 0 {
		return 0
	}
	return 1 / float64(hits)
}

// matchRule walks the rule hierarchy in priority order and names the first
// predicate that holds. Reversed scorelines always match the goal sum, so
// the sum rule excludes them and they fall to the reversal penalty.
func matchRule(ph, pa, rh, ra int) string {
	switch {
	case exactScore(ph, pa, rh, ra):
		return RuleExactScore
	case winnerCorrect(ph, pa, rh, ra) && oneGoalCorrect(ph, pa, rh, ra):
		return RuleWinnerGoals
	case winnerCorrect(ph, pa, rh, ra) && ph-pa == rh-ra:
		return RuleWinnerDiff
	case winnerCorrect(ph, pa, rh, ra) && ph+pa == rh+ra:
		return RuleWinnerSum
	case winnerCorrect(ph, pa, rh, ra):
		return RuleWinnerOnly
	case ph == pa && rh == ra:
		return RuleDrawOnly
	case oneGoalCorrect(ph, pa, rh, ra) && !sameOutcome(ph, pa, rh, ra):
		return RuleGoalsOneSide
	case ph+pa == rh+ra && !sameOutcome(ph, pa, rh, ra) &&
		ph != rh && pa != ra && !reversedScore(ph, pa, rh, ra):
		return RuleGoalsSum
	case reversedScore(ph, pa, rh, ra):
		return RuleReversed
	default:
		return ""
	}
}

// ScoreMatch resolves the single rule a prediction fires against a final
// score, first match wins. exactHits is how many participants predicted
// the exact scoreline on this match and splits the exact-score bonus.
func ScoreMatch(predHome, predAway, resultHome, resultAway, exactHits int, set RuleSet) (string, float64, error) {
	name := matchRule(predHome, predAway, resultHome, resultAway)
	if name == "" {
		return CodeNoHit, 0, nil
	}
	rule, err := ruleFor(set, name)
	if err != nil {
		return "", 0, err
	}
	points := rule.Points
	if rule.HasBonus {
		points += exactBonus(exactHits)
	}
	return rule.Code, points, nil
}

// CountExactHits counts per finalized match how many participants hit the
// exact scoreline. A participant counts once even when both a regular and
// an extra entry hit.
func CountExactHits(round championship.Round, entries []ParticipantEntry) map[string]int {
	hits := make(map[string]int)
	for _, match := range round.Matches {
		if !championship.IsFinalizedStatus(match.Status) || match.HomeGoals == nil || match.AwayGoals == nil {
			continue
		}
		count := 0
		for _, entry := range entries {
			for _, p := range entry.Predictions {
				if p.MatchID != match.ID {
					continue
				}
				if exactScore(p.HomeGoals, p.AwayGoals, *match.HomeGoals, *match.AwayGoals) {
					count++
					break
				}
			}
		}
		hits[match.ID] = count
	}
	return hits
}

// ScoreRound scores every participant against one round with the shared
// two-pass exact count. Only finalized matches are evaluated: a mandatory
// match without a prediction draws the absence penalty, an optional one is
// skipped. Extra entries are scored after the regular trail.
func ScoreRound(round championship.Round, entries []ParticipantEntry, set RuleSet) ([]RoundScore, error) {
	if err := ValidateRules(set); err != nil {
		return nil, err
	}

	hits := CountExactHits(round, entries)
	scores := make([]RoundScore, 0, len(entries))
	for _, entry := range entries {
		score, err := scoreParticipant(round, entry, hits, set)
		if err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, nil
}

func scoreParticipant(round championship.Round, entry ParticipantEntry, hits map[string]int, set RuleSet) (RoundScore, error) {
	score := RoundScore{Participant: entry.Participant}

	regular := make(map[string]prediction.Prediction)
	var extras []prediction.Prediction
	for _, p := range entry.Predictions {
		if prediction.IsExtra(p) {
			extras = append(extras, p)
		} else {
			regular[p.MatchID] = p
		}
	}

	finalized := make(map[string]championship.Match)
	for _, match := range round.Matches {
		if !championship.IsFinalizedStatus(match.Status) {
			continue
		}
		if match.HomeGoals == nil || match.AwayGoals == nil {
			return RoundScore{}, fmt.Errorf("finalized match %s has no recorded score", match.ID)
		}
		finalized[match.ID] = match

		p, ok := regular[match.ID]
		if !ok {
			if !match.Mandatory {
				continue
			}
			rule, err := ruleFor(set, RuleNoPrediction)
			if err != nil {
				return RoundScore{}, err
			}
			score.Evaluations = append(score.Evaluations, Evaluation{
				MatchID:  match.ID,
				HomeTeam: match.HomeTeam,
				AwayTeam: match.AwayTeam,
				Code:     rule.Code,
				Points:   rule.Points,
			})
			score.Total += rule.Points
			continue
		}

		code, points, err := ScoreMatch(p.HomeGoals, p.AwayGoals, *match.HomeGoals, *match.AwayGoals, hits[match.ID], set)
		if err != nil {
			return RoundScore{}, err
		}
		score.Evaluations = append(score.Evaluations, Evaluation{
			MatchID:  match.ID,
			HomeTeam: match.HomeTeam,
			AwayTeam: match.AwayTeam,
			Code:     code,
			Points:   points,
		})
		score.Total += points
		score.Played++
		if exactScore(p.HomeGoals, p.AwayGoals, *match.HomeGoals, *match.AwayGoals) {
			score.Exact++
		}
	}

	for _, p := range extras {
		match, ok := finalized[p.MatchID]
		if !ok {
			continue
		}
		code, points, err := ScoreMatch(p.HomeGoals, p.AwayGoals, *match.HomeGoals, *match.AwayGoals, hits[p.MatchID], set)
		if err != nil {
			return RoundScore{}, err
		}
		score.Evaluations = append(score.Evaluations, Evaluation{
			MatchID:  p.MatchID,
			HomeTeam: match.HomeTeam,
			AwayTeam: match.AwayTeam,
			Code:     code,
			Points:   points,
			Extra:    true,
		})
		score.Total += points
		if exactScore(p.HomeGoals, p.AwayGoals, *match.HomeGoals, *match.AwayGoals) {
			score.Exact++
		}
	}

	return score, nil
}
