package fsjson

import (
	"github.com/palpiteria/bolao/internal/domain/prediction"
)

type palpiteDocument struct {
	ID               string `json:"id" validate:"required"`
	Mandante         string `json:"mandante" validate:"required"`
	Visitante        string `json:"visitante" validate:"required"`
	PalpiteMandante  int    `json:"palpite_mandante" validate:"min=0,max=20"`
	PalpiteVisitante int    `json:"palpite_visitante" validate:"min=0,max=20"`
	RegistradoEm     string `json:"registrado_em,omitempty"`
	Tipo             string `json:"tipo,omitempty"`
	Identificador    string `json:"identificador,omitempty"`
}

type palpitesDocument struct {
	Apostador       string            `json:"apostador" validate:"required"`
	CodigoApostador string            `json:"codigo_apostador"`
	Campeonato      string            `json:"campeonato"`
	Temporada       string            `json:"temporada"`
	CriadoEm        string            `json:"criado_em,omitempty"`
	Palpites        []palpiteDocument `json:"palpites" validate:"dive"`
}

func palpitesFromDomain(sheet prediction.Sheet) palpitesDocument {
	palpites := make([]palpiteDocument, 0, len(sheet.Predictions))
	for _, p := range sheet.Predictions {
		palpites = append(palpites, palpiteDocument{
			ID:               p.MatchID,
			Mandante:         p.HomeTeam,
			Visitante:        p.AwayTeam,
			PalpiteMandante:  p.HomeGoals,
			PalpiteVisitante: p.AwayGoals,
			RegistradoEm:     formatDocTime(p.RecordedAt),
			Tipo:             p.Kind,
			Identificador:    p.Identifier,
		})
	}
	return palpitesDocument{
		Apostador:       sheet.Participant,
		CodigoApostador: sheet.Code,
		Campeonato:      sheet.Championship,
		Temporada:       sheet.Season,
		CriadoEm:        formatDocTime(sheet.CreatedAt),
		Palpites:        palpites,
	}
}

func palpitesToDomain(doc palpitesDocument) prediction.Sheet {
	sheet := prediction.Sheet{
		Participant:  doc.Apostador,
		Code:         doc.CodigoApostador,
		Championship: doc.Campeonato,
		Season:       doc.Temporada,
		CreatedAt:    parseDocTime(doc.CriadoEm),
	}
	for _, palpite := range doc.Palpites {
		sheet.Predictions = append(sheet.Predictions, prediction.Prediction{
			MatchID:    palpite.ID,
			HomeTeam:   palpite.Mandante,
			AwayTeam:   palpite.Visitante,
			HomeGoals:  palpite.PalpiteMandante,
			AwayGoals:  palpite.PalpiteVisitante,
			Kind:       palpite.Tipo,
			Identifier: palpite.Identificador,
			RecordedAt: parseDocTime(palpite.RegistradoEm),
		})
	}
	return sheet
}
