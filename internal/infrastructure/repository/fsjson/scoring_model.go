package fsjson

import (
	"github.com/palpiteria/bolao/internal/domain/scoring"
)

// regraDocument carries either a flat pontos value or a pontos_base plus
// bonus_divisor pair for tiers that split a bonus across exact hits.
type regraDocument struct {
	Pontos       *float64 `json:"pontos,omitempty"`
	PontosBase   *float64 `json:"pontos_base,omitempty"`
	BonusDivisor bool     `json:"bonus_divisor,omitempty"`
	Descricao    string   `json:"descricao"`
	Codigo       string   `json:"codigo" validate:"required"`
}

type regrasDocument struct {
	Campeonato  string                   `json:"campeonato" validate:"required"`
	Temporada   string                   `json:"temporada"`
	Versao      string                   `json:"versao"`
	DataCriacao string                   `json:"data_criacao"`
	Regras      map[string]regraDocument `json:"regras" validate:"required,dive"`
	Observacoes []string                 `json:"observacoes"`
}

func regrasFromDomain(set scoring.RuleSet) regrasDocument {
	regras := make(map[string]regraDocument, len(set.Rules))
	for name, rule := range set.Rules {
		doc := regraDocument{
			Descricao: rule.Description,
			Codigo:    rule.Code,
		}
		points := rule.Points
		if rule.HasBonus {
			doc.PontosBase = &points
			doc.BonusDivisor = true
		} else {
			doc.Pontos = &points
		}
		regras[name] = doc
	}

	notes := set.Notes
	if notes == nil {
		notes = []string{}
	}
	return regrasDocument{
		Campeonato:  set.Championship,
		Temporada:   set.Season,
		Versao:      set.Version,
		DataCriacao: formatDocTime(set.CreatedAt),
		Regras:      regras,
		Observacoes: notes,
	}
}

func regrasToDomain(doc regrasDocument) scoring.RuleSet {
	rules := make(map[string]scoring.Rule, len(doc.Regras))
	for name, regra := range doc.Regras {
		rule := scoring.Rule{
			Code:        regra.Codigo,
			Description: regra.Descricao,
		}
		switch {
		case regra.PontosBase != nil:
			rule.Points = *regra.PontosBase
			rule.HasBonus = true
		case regra.Pontos != nil:
			rule.Points = *regra.Pontos
			rule.HasBonus = regra.BonusDivisor
		default:
			rule.HasBonus = regra.BonusDivisor
		}
		rules[name] = rule
	}
	return scoring.RuleSet{
		Championship: doc.Campeonato,
		Season:       doc.Temporada,
		Version:      doc.Versao,
		CreatedAt:    parseDocTime(doc.DataCriacao),
		Rules:        rules,
		Notes:        doc.Observacoes,
	}
}
