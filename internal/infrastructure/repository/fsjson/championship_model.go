package fsjson

import (
	"github.com/palpiteria/bolao/internal/domain/championship"
)

// jogoDocument stores goals as plain zeros until the game is finalized;
// the status column gates their meaning.
type jogoDocument struct {
	ID            string `json:"id" validate:"required"`
	Mandante      string `json:"mandante" validate:"required"`
	Visitante     string `json:"visitante" validate:"required"`
	Data          string `json:"data,omitempty"`
	Local         string `json:"local,omitempty"`
	GolsMandante  int    `json:"gols_mandante" validate:"min=0,max=20"`
	GolsVisitante int    `json:"gols_visitante" validate:"min=0,max=20"`
	Status        string `json:"status"`
	Obrigatorio   bool   `json:"obrigatorio"`
}

type rodadaDocument struct {
	Numero int            `json:"numero" validate:"min=1"`
	Jogos  []jogoDocument `json:"jogos" validate:"dive"`
}

type tabelaDocument struct {
	Campeonato       string           `json:"campeonato" validate:"required"`
	Temporada        string           `json:"temporada"`
	RodadaAtual      int              `json:"rodada_atual" validate:"min=0"`
	DataCriacao      string           `json:"data_criacao,omitempty"`
	DataAtualizacao  string           `json:"data_atualizacao"`
	CodigoCampeonato string           `json:"codigo_campeonato"`
	Rodadas          []rodadaDocument `json:"rodadas" validate:"dive"`
}

func tabelaFromDomain(t championship.Table) tabelaDocument {
	rodadas := make([]rodadaDocument, 0, len(t.Rounds))
	for _, round := range t.Rounds {
		jogos := make([]jogoDocument, 0, len(round.Matches))
		for _, match := range round.Matches {
			jogos = append(jogos, jogoFromDomain(match))
		}
		rodadas = append(rodadas, rodadaDocument{Numero: round.Number, Jogos: jogos})
	}
	return tabelaDocument{
		Campeonato:       t.Championship,
		Temporada:        t.Season,
		RodadaAtual:      t.CurrentRound,
		DataCriacao:      formatDocTime(t.CreatedAt),
		DataAtualizacao:  formatDocTime(t.UpdatedAt),
		CodigoCampeonato: t.Code,
		Rodadas:          rodadas,
	}
}

func jogoFromDomain(m championship.Match) jogoDocument {
	doc := jogoDocument{
		ID:          m.ID,
		Mandante:    m.HomeTeam,
		Visitante:   m.AwayTeam,
		Data:        formatDocTime(m.KickoffAt),
		Local:       m.Venue,
		Status:      championship.NormalizeStatus(m.Status),
		Obrigatorio: m.Mandatory,
	}
	if m.HomeGoals != nil {
		doc.GolsMandante = *m.HomeGoals
	}
	if m.AwayGoals != nil {
		doc.GolsVisitante = *m.AwayGoals
	}
	return doc
}

func tabelaToDomain(doc tabelaDocument) championship.Table {
	table := championship.Table{
		Championship: doc.Campeonato,
		Season:       doc.Temporada,
		Code:         doc.CodigoCampeonato,
		CreatedAt:    parseDocTime(doc.DataCriacao),
		UpdatedAt:    parseDocTime(doc.DataAtualizacao),
		CurrentRound: doc.RodadaAtual,
	}
	for _, rodada := range doc.Rodadas {
		round := championship.Round{Number: rodada.Numero}
		for _, jogo := range rodada.Jogos {
			round.Matches = append(round.Matches, jogoToDomain(jogo))
		}
		table.Rounds = append(table.Rounds, round)
	}
	return table
}

func jogoToDomain(doc jogoDocument) championship.Match {
	match := championship.Match{
		ID:        doc.ID,
		HomeTeam:  doc.Mandante,
		AwayTeam:  doc.Visitante,
		KickoffAt: parseDocTime(doc.Data),
		Venue:     doc.Local,
		Status:    championship.NormalizeStatus(doc.Status),
		Mandatory: doc.Obrigatorio,
	}
	if championship.IsFinalizedStatus(doc.Status) {
		home, away := doc.GolsMandante, doc.GolsVisitante
		match.HomeGoals, match.AwayGoals = &home, &away
	}
	return match
}
