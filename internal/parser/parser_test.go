package parser

import (
	"errors"
	"testing"

	"github.com/palpiteria/bolao/internal/domain/championship"
)

func testTable() *championship.Table {
	return &championship.Table{
		Championship: "Brasileirao",
		Season:       "2025",
		Rounds: []championship.Round{
			{Number: 1, Matches: []championship.Match{
				{ID: "jogo-001", HomeTeam: "Flamengo", AwayTeam: "Palmeiras"},
				{ID: "jogo-002", HomeTeam: "São Paulo", AwayTeam: "Corinthians"},
			}},
			{Number: 2, Matches: []championship.Match{
				{ID: "jogo-003", HomeTeam: "Santos", AwayTeam: "Grêmio"},
				{ID: "jogo-004", HomeTeam: "Botafogo", AwayTeam: "Vasco"},
			}},
		},
	}
}

func TestParse_WorkedExample(t *testing.T) {
	text := `Mario Silva
1ª Rodada:
Flamengo 2x1 Palmeiras
São Paulo 0x2 Corinthians

Aposta Extra:
Jogo 15: Santos 2x0 Grêmio`

	sheet, err := New(nil).Parse(text, nil, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if sheet.RawBettor != "Mario Silva" {
		t.Fatalf("bettor = %q, want Mario Silva", sheet.RawBettor)
	}
	if sheet.Round != 1 || sheet.Inferred {
		t.Fatalf("round = %d (inferred %v), want explicit 1", sheet.Round, sheet.Inferred)
	}
	if len(sheet.Predictions) != 2 {
		t.Fatalf("got %d predictions, want 2", len(sheet.Predictions))
	}

	first := sheet.Predictions[0]
	if first.HomeTeam != "Flamengo" || first.AwayTeam != "Palmeiras" || first.HomeGoals != 2 || first.AwayGoals != 1 {
		t.Fatalf("unexpected first prediction %+v", first)
	}
	if first.Line != 3 {
		t.Fatalf("first prediction line = %d, want 3", first.Line)
	}
	second := sheet.Predictions[1]
	if second.HomeTeam != "São Paulo" || second.HomeGoals != 0 || second.AwayGoals != 2 {
		t.Fatalf("unexpected second prediction %+v", second)
	}

	if len(sheet.Extras) != 1 {
		t.Fatalf("got %d extras, want 1", len(sheet.Extras))
	}
	extra := sheet.Extras[0]
	if extra.Identifier != "jogo-extra-15" {
		t.Fatalf("extra identifier = %q, want jogo-extra-15", extra.Identifier)
	}
	if extra.HomeTeam != "Santos" || extra.AwayTeam != "Grêmio" || extra.HomeGoals != 2 || extra.AwayGoals != 0 {
		t.Fatalf("unexpected extra %+v", extra)
	}
}

func TestParse_BettorForms(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "apostador label",
			text: "Apostador: Mario Silva\n1ª Rodada\nFlamengo 2x1 Palmeiras",
			want: "Mario Silva",
		},
		{
			name: "nome label",
			text: "Nome: João da Silva\nRodada 1\nSão Paulo 1x0 Corinthians",
			want: "João da Silva",
		},
		{
			name: "participante label",
			text: "Participante: Ana Paula\nRodada 2\nSantos 1x1 Grêmio",
			want: "Ana Paula",
		},
		{
			name: "bare first line",
			text: "João da Silva\n1ª Rodada\nFlamengo 2x1 Palmeiras",
			want: "João da Silva",
		},
		{
			name: "label on second line wins over heading",
			text: "Palpites da galera\nApostador: Zico\nRodada 1\nFlamengo 1x0 Vasco",
			want: "Zico",
		},
		{
			name: "round marker is not a name",
			text: "1ª Rodada\nFlamengo 2x1 Palmeiras",
			want: "",
		},
		{
			name: "digits disqualify the bare heuristic",
			text: "Fulano 123\nRodada 1\nFlamengo 2x1 Palmeiras",
			want: "",
		},
	}

	p := New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := p.Parse(tt.text, nil, nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if sheet.RawBettor != tt.want {
				t.Fatalf("bettor = %q, want %q", sheet.RawBettor, tt.want)
			}
		})
	}
}

func TestParse_RoundForms(t *testing.T) {
	tests := []struct {
		marker string
		want   int
	}{
		{marker: "1ª Rodada", want: 1},
		{marker: "2º Rodada", want: 2},
		{marker: "Rodada 5", want: 5},
		{marker: "Rodada: 6", want: 6},
		{marker: "R10", want: 10},
		{marker: "r 3", want: 3},
		{marker: "Round 7", want: 7},
		{marker: "2ª Jornada", want: 2},
		{marker: "Jornada 4", want: 4},
		{marker: "🔥 RODADA 12 🔥", want: 12},
		{marker: "Rodada 99", want: 0},
		{marker: "Sem marcador", want: 0},
	}

	p := New(nil)
	for _, tt := range tests {
		t.Run(tt.marker, func(t *testing.T) {
			text := "Tester\n" + tt.marker + "\nFlamengo 2x1 Palmeiras"
			sheet, err := p.Parse(text, nil, nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if sheet.Round != tt.want {
				t.Fatalf("round = %d, want %d", sheet.Round, tt.want)
			}
			if sheet.Inferred {
				t.Fatal("round should never be inferred without a table")
			}
		})
	}
}

func TestParse_ScoreFormats(t *testing.T) {
	text := `Tester
Rodada 1
Flamengo 2x1 Palmeiras
São Paulo 0 x 2 Corinthians
Botafogo 1-1 Vasco
Santos 2:0 Grêmio
Cruzeiro (3) x (1) Bahia
Fortaleza 1X0 Sport`

	sheet, err := New(nil).Parse(text, nil, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(sheet.Predictions) != 6 {
		t.Fatalf("got %d predictions, want 6", len(sheet.Predictions))
	}

	want := []Prediction{
		{HomeTeam: "Flamengo", AwayTeam: "Palmeiras", HomeGoals: 2, AwayGoals: 1, Line: 3},
		{HomeTeam: "São Paulo", AwayTeam: "Corinthians", HomeGoals: 0, AwayGoals: 2, Line: 4},
		{HomeTeam: "Botafogo", AwayTeam: "Vasco", HomeGoals: 1, AwayGoals: 1, Line: 5},
		{HomeTeam: "Santos", AwayTeam: "Grêmio", HomeGoals: 2, AwayGoals: 0, Line: 6},
		{HomeTeam: "Cruzeiro", AwayTeam: "Bahia", HomeGoals: 3, AwayGoals: 1, Line: 7},
		{HomeTeam: "Fortaleza", AwayTeam: "Sport", HomeGoals: 1, AwayGoals: 0, Line: 8},
	}
	for i, w := range want {
		if sheet.Predictions[i] != w {
			t.Fatalf("prediction %d = %+v, want %+v", i, sheet.Predictions[i], w)
		}
	}
}

func TestParse_InvalidScore(t *testing.T) {
	text := "Tester\nRodada 1\nFlamengo 25x1 Palmeiras"

	_, err := New(nil).Parse(text, nil, nil)
	if !errors.Is(err, ErrInvalidScore) {
		t.Fatalf("expected ErrInvalidScore, got %v", err)
	}

	var invalid *InvalidScoreError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidScoreError, got %T", err)
	}
	if invalid.Line != 3 {
		t.Fatalf("line = %d, want 3", invalid.Line)
	}
}

func TestParse_MalformedLine(t *testing.T) {
	tests := []struct {
		name string
		text string
		line int
	}{
		{
			name: "double separator",
			text: "Tester\nRodada 1\nFlamengo 2x1x2 Palmeiras",
			line: 3,
		},
		{
			name: "labelled extra without scoreline",
			text: "Tester\nRodada 1\nJogo 5: Botafogo contra Vasco",
			line: 3,
		},
	}

	p := New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(tt.text, nil, nil)
			if !errors.Is(err, ErrMalformedLine) {
				t.Fatalf("expected ErrMalformedLine, got %v", err)
			}
			var malformed *MalformedLineError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedLineError, got %T", err)
			}
			if malformed.Line != tt.line {
				t.Fatalf("line = %d, want %d", malformed.Line, tt.line)
			}
		})
	}
}

func TestParse_IgnoresChatter(t *testing.T) {
	text := `Tester
Rodada 1
Bom dia pessoal
Flamengo 2x1 Palmeiras
Valeu, bom fim de semana`

	sheet, err := New(nil).Parse(text, nil, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(sheet.Predictions) != 1 {
		t.Fatalf("got %d predictions, want 1", len(sheet.Predictions))
	}
}

func TestParse_ExtrasSection(t *testing.T) {
	text := `Tester
Rodada 1
Aposta Extra:
Jogo 5: Botafogo 2x2 Vasco
Jogo 10: Santos 1x0 Grêmio`

	sheet, err := New(nil).Parse(text, nil, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(sheet.Predictions) != 0 {
		t.Fatalf("got %d regular predictions, want 0", len(sheet.Predictions))
	}
	if len(sheet.Extras) != 2 {
		t.Fatalf("got %d extras, want 2", len(sheet.Extras))
	}

	if sheet.Extras[0].Identifier != "jogo-extra-5" || sheet.Extras[0].HomeTeam != "Botafogo" {
		t.Fatalf("unexpected first extra %+v", sheet.Extras[0])
	}
	if sheet.Extras[1].Identifier != "jogo-extra-10" || sheet.Extras[1].AwayTeam != "Grêmio" {
		t.Fatalf("unexpected second extra %+v", sheet.Extras[1])
	}
}

func TestParse_UnlabeledExtraInsideSection(t *testing.T) {
	text := `Tester
Rodada 1
Flamengo 2x1 Palmeiras
Apostas Extras
Botafogo 3x1 Vasco`

	sheet, err := New(nil).Parse(text, nil, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(sheet.Predictions) != 1 {
		t.Fatalf("got %d regular predictions, want 1", len(sheet.Predictions))
	}
	if len(sheet.Extras) != 1 {
		t.Fatalf("got %d extras, want 1", len(sheet.Extras))
	}
	if sheet.Extras[0].Identifier != "extra-1" || sheet.Extras[0].HomeGoals != 3 {
		t.Fatalf("unexpected extra %+v", sheet.Extras[0])
	}
}

func TestParse_InlineExtraOutsideSection(t *testing.T) {
	text := `Tester
Rodada 1
Flamengo 2x1 Palmeiras
Jogo 7: Santos 2x0 Grêmio`

	sheet, err := New(nil).Parse(text, nil, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(sheet.Predictions) != 1 || len(sheet.Extras) != 1 {
		t.Fatalf("got %d predictions and %d extras, want 1 and 1", len(sheet.Predictions), len(sheet.Extras))
	}
	if sheet.Extras[0].Identifier != "jogo-extra-7" {
		t.Fatalf("extra identifier = %q, want jogo-extra-7", sheet.Extras[0].Identifier)
	}
}

func TestParse_RoundMarkerEndsExtrasSection(t *testing.T) {
	text := `Tester
Rodada 1
Aposta Extra:
Jogo 5: Botafogo 2x2 Vasco
Rodada 2
Flamengo 1x0 Vasco`

	sheet, err := New(nil).Parse(text, nil, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(sheet.Extras) != 1 {
		t.Fatalf("got %d extras, want 1", len(sheet.Extras))
	}
	if len(sheet.Predictions) != 1 || sheet.Predictions[0].HomeTeam != "Flamengo" {
		t.Fatalf("scoreline after a new round marker should be regular, got %+v", sheet.Predictions)
	}
}

func TestParse_ResolvesTeamsAndInfersRound(t *testing.T) {
	text := "Tester\nFlamego 2x1 palmeiras"

	sheet, err := New(nil).Parse(text, testTable(), nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if sheet.Round != 1 || !sheet.Inferred {
		t.Fatalf("round = %d (inferred %v), want inferred 1", sheet.Round, sheet.Inferred)
	}
	pred := sheet.Predictions[0]
	if pred.HomeTeam != "Flamengo" || pred.AwayTeam != "Palmeiras" {
		t.Fatalf("teams not resolved to scheduled spelling: %+v", pred)
	}
}

func TestParse_UnknownTeam(t *testing.T) {
	text := "Tester\nRodada 1\nBarcelona 2x1 Real Madrid"

	_, err := New(nil).Parse(text, testTable(), nil)
	if !errors.Is(err, ErrUnknownTeam) {
		t.Fatalf("expected ErrUnknownTeam, got %v", err)
	}

	var unknown *UnknownTeamError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownTeamError, got %T", err)
	}
	if unknown.Name != "Barcelona" || unknown.Line != 3 {
		t.Fatalf("unexpected error detail %+v", unknown)
	}
}

func TestParse_AmbiguousRound(t *testing.T) {
	t.Run("several candidate rounds", func(t *testing.T) {
		table := &championship.Table{Rounds: []championship.Round{
			{Number: 1, Matches: []championship.Match{{ID: "jogo-001", HomeTeam: "Flamengo", AwayTeam: "Palmeiras"}}},
			{Number: 3, Matches: []championship.Match{{ID: "jogo-005", HomeTeam: "Palmeiras", AwayTeam: "Flamengo"}}},
		}}

		_, err := New(nil).Parse("Tester\nFlamengo 2x1 Palmeiras", table, nil)
		if !errors.Is(err, ErrAmbiguousRound) {
			t.Fatalf("expected ErrAmbiguousRound, got %v", err)
		}

		var ambiguous *AmbiguousRoundError
		if !errors.As(err, &ambiguous) {
			t.Fatalf("expected AmbiguousRoundError, got %T", err)
		}
		if len(ambiguous.Candidates) != 2 || ambiguous.Candidates[0] != 1 || ambiguous.Candidates[1] != 3 {
			t.Fatalf("candidates = %v, want [1 3]", ambiguous.Candidates)
		}
	})

	t.Run("no candidate round", func(t *testing.T) {
		text := "Tester\nFlamengo 2x1 Palmeiras\nSantos 1x0 Grêmio"

		_, err := New(nil).Parse(text, testTable(), nil)
		if !errors.Is(err, ErrAmbiguousRound) {
			t.Fatalf("expected ErrAmbiguousRound, got %v", err)
		}
		var ambiguous *AmbiguousRoundError
		if !errors.As(err, &ambiguous) {
			t.Fatalf("expected AmbiguousRoundError, got %T", err)
		}
		if len(ambiguous.Candidates) != 0 {
			t.Fatalf("candidates = %v, want none", ambiguous.Candidates)
		}
	})
}

func TestParse_BettorResolution(t *testing.T) {
	participants := []string{"MarioSilva", "JoaoPedro", "AnaPaula"}

	sheet, err := New(nil).Parse("Apostador: mario silva\nRodada 1\nFlamengo 2x1 Palmeiras", nil, participants)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sheet.Bettor != "MarioSilva" || sheet.RawBettor != "mario silva" {
		t.Fatalf("bettor = %q (raw %q), want MarioSilva", sheet.Bettor, sheet.RawBettor)
	}

	_, err = New(nil).Parse("Apostador: Roberto\nRodada 1\nFlamengo 2x1 Palmeiras", nil, participants)
	if !errors.Is(err, ErrUnknownBettor) {
		t.Fatalf("expected ErrUnknownBettor, got %v", err)
	}
	var unknown *UnknownBettorError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownBettorError, got %T", err)
	}
	if unknown.Name != "Roberto" {
		t.Fatalf("raw bettor = %q, want Roberto", unknown.Name)
	}

	_, err = New(nil).Parse("1ª Rodada\nFlamengo 2x1 Palmeiras", nil, participants)
	if !errors.Is(err, ErrUnknownBettor) {
		t.Fatalf("expected ErrUnknownBettor for a nameless text, got %v", err)
	}
}
