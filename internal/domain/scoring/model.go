package scoring

import (
	"time"

	"github.com/palpiteria/bolao/internal/domain/prediction"
)

// Rule names key the configuration document. They are stable identifiers
// independent of the display codes, which stay configurable.
const (
	RuleExactScore   = "resultado_exato"
	RuleWinnerGoals  = "vitoria_gols_um_time"
	RuleWinnerDiff   = "vitoria_diferenca_gols"
	RuleWinnerSum    = "vitoria_soma_gols"
	RuleWinnerOnly   = "apenas_vitoria"
	RuleDrawOnly     = "apenas_empate"
	RuleGoalsOneSide = "gols_um_time"
	RuleGoalsSum     = "soma_gols"
	RuleReversed     = "resultado_inverso"
	RuleNoPrediction = "palpite_ausente"
)

// Default display codes, one per rule.
const (
	CodeExactScore   = "AR"
	CodeWinnerGoals  = "VG"
	CodeWinnerDiff   = "VD"
	CodeWinnerSum    = "VS"
	CodeWinnerOnly   = "AV"
	CodeDrawOnly     = "AE"
	CodeGoalsOneSide = "AG"
	CodeGoalsSum     = "AS"
	CodeReversed     = "RI"
	CodeNoPrediction = "SP"

	// CodeNoHit marks a prediction that satisfied no rule. It is reserved,
	// never configured, and always scores zero.
	CodeNoHit = "NP"
)

// RuleNames lists every configurable rule in priority order.
var RuleNames = []string{
	RuleExactScore,
	RuleWinnerGoals,
	RuleWinnerDiff,
	RuleWinnerSum,
	RuleWinnerOnly,
	RuleDrawOnly,
	RuleGoalsOneSide,
	RuleGoalsSum,
	RuleReversed,
	RuleNoPrediction,
}

// Rule is one configured scoring tier. Points is the base value when
// HasBonus is set.
type Rule struct {
	Code        string
	Description string
	Points      float64
	HasBonus    bool
}

// RuleSet is the scoring configuration document of a championship.
type RuleSet struct {
	Championship string
	Season       string
	Version      string
	CreatedAt    time.Time
	Rules        map[string]Rule
	Notes        []string
}

// Evaluation is the outcome of scoring one entry against one match.
type Evaluation struct {
	MatchID  string
	HomeTeam string
	AwayTeam string
	Code     string
	Points   float64
	Extra    bool
}

// ParticipantEntry pairs a participant with the entries under evaluation
// for one round.
type ParticipantEntry struct {
	Participant string
	Predictions []prediction.Prediction
}

// RoundScore is one participant's scored round. Played counts the round
// matches the participant sent a regular prediction for; Exact counts the
// entries that hit the exact scoreline, extras included.
type RoundScore struct {
	Participant string
	Evaluations []Evaluation
	Total       float64
	Played      int
	Exact       int
}

// Codes returns the fired-rule trail in evaluation order.
func (s RoundScore) Codes() []string {
	codes := make([]string, 0, len(s.Evaluations))
	for _, ev := range s.Evaluations {
		codes = append(codes, ev.Code)
	}
	return codes
}
