package scoring

import (
	"errors"
	"fmt"
	"strings"
)

var ErrIncompleteRuleSet = errors.New("incomplete rule set")

// DefaultRules returns the standard ten-tier configuration. Championship
// metadata is filled by the caller.
func DefaultRules() RuleSet {
	return RuleSet{
		Version: "1.0",
		Rules: map[string]Rule{
			RuleExactScore:   {Code: CodeExactScore, Description: "Resultado exato (placar idêntico)", Points: 12, HasBonus: true},
			RuleWinnerGoals:  {Code: CodeWinnerGoals, Description: "Vencedor + gols de uma equipe", Points: 7},
			RuleWinnerDiff:   {Code: CodeWinnerDiff, Description: "Vencedor + diferença de gols", Points: 6},
			RuleWinnerSum:    {Code: CodeWinnerSum, Description: "Vencedor + soma total de gols", Points: 6},
			RuleWinnerOnly:   {Code: CodeWinnerOnly, Description: "Apenas vencedor", Points: 5},
			RuleDrawOnly:     {Code: CodeDrawOnly, Description: "Apenas empate", Points: 5},
			RuleGoalsOneSide: {Code: CodeGoalsOneSide, Description: "Gols de um time (sem resultado)", Points: 2},
			RuleGoalsSum:     {Code: CodeGoalsSum, Description: "Apenas soma total de gols", Points: 1},
			RuleReversed:     {Code: CodeReversed, Description: "Resultado invertido (penalidade)", Points: -3},
			RuleNoPrediction: {Code: CodeNoPrediction, Description: "Palpite não enviado (jogo obrigatório)", Points: -1},
		},
		Notes: []string{
			"Hierarquia: a regra de maior prioridade aplicável é atribuída",
			"Bônus para resultado exato: 1/N onde N = número de acertos exatos no jogo",
			"Jogos obrigatórios sem palpite recebem penalidade",
		},
	}
}

// ValidateRules checks that every configurable rule is present and carries
// a display code.
func ValidateRules(set RuleSet) error {
	var missing []string
	for _, name := range RuleNames {
		rule, ok := set.Rules[name]
		if !ok || rule.Code == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteRuleSet, strings.Join(missing, ", "))
	}
	return nil
}

func ruleFor(set RuleSet, name string) (Rule, error) {
	rule, ok := set.Rules[name]
	if !ok || rule.Code == "" {
		return Rule{}, fmt.Errorf("%w: missing %s", ErrIncompleteRuleSet, name)
	}
	return rule, nil
}
