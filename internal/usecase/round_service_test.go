package usecase

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/palpiteria/bolao/internal/domain/championship"
	"github.com/palpiteria/bolao/internal/domain/prediction"
	"github.com/palpiteria/bolao/internal/infrastructure/repository/memory"
)

func TestRoundService_RecordResults(t *testing.T) {
	tables, rules, sheets := seedBolao(t)
	service := NewRoundService(tables, rules, sheets, tables, 2)
	service.now = func() time.Time { return time.Date(2025, 8, 10, 20, 0, 0, 0, time.UTC) }

	round, err := service.RecordResults(t.Context(), memory.SlugBrasileirao, 2, []MatchResult{
		{MatchID: "jogo-003", HomeGoals: 1, AwayGoals: 0},
		{MatchID: "jogo-004", HomeGoals: 2, AwayGoals: 2},
	})
	if err != nil {
		t.Fatalf("record results: %v", err)
	}
	if round.Matches[0].HomeGoals == nil || *round.Matches[0].HomeGoals != 1 {
		t.Fatalf("first match = %+v", round.Matches[0])
	}

	table, _, err := tables.Load(t.Context(), memory.SlugBrasileirao)
	if err != nil {
		t.Fatalf("load table: %v", err)
	}
	stored := table.Rounds[1].Matches[1]
	if stored.HomeGoals == nil || *stored.HomeGoals != 2 || *stored.AwayGoals != 2 {
		t.Fatalf("stored second match = %+v", stored)
	}
	if stored.Status != championship.StatusFinalized {
		t.Fatalf("stored status = %q", stored.Status)
	}
}

func TestRoundService_RecordResultsRejections(t *testing.T) {
	tables, rules, sheets := seedBolao(t)
	service := NewRoundService(tables, rules, sheets, tables, 2)

	_, err := service.RecordResults(t.Context(), memory.SlugBrasileirao, 2, nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty batch: %v", err)
	}

	_, err = service.RecordResults(t.Context(), memory.SlugBrasileirao, 9, []MatchResult{{MatchID: "jogo-003"}})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("unscheduled round: %v", err)
	}

	_, err = service.RecordResults(t.Context(), memory.SlugBrasileirao, 2, []MatchResult{
		{MatchID: "jogo-003", HomeGoals: 21, AwayGoals: 0},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("out-of-range score: %v", err)
	}

	// A bad id anywhere in the batch keeps the whole batch out.
	_, err = service.RecordResults(t.Context(), memory.SlugBrasileirao, 2, []MatchResult{
		{MatchID: "jogo-003", HomeGoals: 1, AwayGoals: 0},
		{MatchID: "jogo-999", HomeGoals: 1, AwayGoals: 0},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown match: %v", err)
	}
	table, _, _ := tables.Load(t.Context(), memory.SlugBrasileirao)
	if table.Rounds[1].Matches[0].HomeGoals != nil {
		t.Fatalf("failed batch still wrote a result: %+v", table.Rounds[1].Matches[0])
	}
}

func TestRoundService_ProcessPreview(t *testing.T) {
	tables, rules, sheets := seedBolao(t)
	service := NewRoundService(tables, rules, sheets, tables, 2)
	service.now = func() time.Time { return time.Date(2025, 8, 3, 10, 0, 0, 0, time.UTC) }

	result, err := service.Process(t.Context(), memory.SlugBrasileirao, 1, ProcessOptions{})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if result.Final || result.BackupPath != "" || result.ReportPath != "" {
		t.Fatalf("preview must not close the round: %+v", result)
	}
	if len(result.Pending) != 0 {
		t.Fatalf("pending = %+v", result.Pending)
	}
	if len(result.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(result.Rows))
	}

	first := result.Rows[0]
	if first.Participant != "Ana Maria" || first.Rank != 1 || first.RoundTotal != 26.0 || first.Cumulative != 26.0 {
		t.Fatalf("first row = %+v", first)
	}
	if first.Delta != nil || first.Played != 2 || first.ExactHits != 2 {
		t.Fatalf("first row = %+v", first)
	}
	if strings.Join(first.Codes, " ") != "AR AR" {
		t.Fatalf("first codes = %v", first.Codes)
	}

	second := result.Rows[1]
	if second.Participant != "Zé Carlos" || second.Rank != 2 || second.RoundTotal != 6.0 {
		t.Fatalf("second row = %+v", second)
	}
	if strings.Join(second.Codes, " ") != "VG SP" {
		t.Fatalf("second codes = %v", second.Codes)
	}

	third := result.Rows[2]
	if third.Participant != "Bruno" || third.Rank != 3 || third.RoundTotal != 2.0 {
		t.Fatalf("third row = %+v", third)
	}
	if strings.Join(third.Codes, " ") != "RI AE" {
		t.Fatalf("third codes = %v", third.Codes)
	}

	if !strings.Contains(result.Report, "RELATÓRIO DE CLASSIFICAÇÃO - RODADA 01") {
		t.Fatalf("report header missing:\n%s", result.Report)
	}
	if !strings.Contains(result.Summary, "Maior pontuação: 26.0 (Ana Maria)") {
		t.Fatalf("summary = %q", result.Summary)
	}

	if tables.BackupCount(memory.SlugBrasileirao) != 0 {
		t.Fatalf("preview took a backup")
	}
	if _, ok := tables.Report(memory.SlugBrasileirao, 1); ok {
		t.Fatalf("preview archived a report")
	}
	table, _, _ := tables.Load(t.Context(), memory.SlugBrasileirao)
	if table.CurrentRound != 2 {
		t.Fatalf("preview advanced the current round to %d", table.CurrentRound)
	}
}

func TestRoundService_ProcessFinal(t *testing.T) {
	tables, rules, sheets := seedBolao(t)
	service := NewRoundService(tables, rules, sheets, tables, 2)
	recordedAt := time.Date(2025, 8, 9, 21, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return recordedAt }

	if _, err := service.RecordResults(t.Context(), memory.SlugBrasileirao, 2, []MatchResult{
		{MatchID: "jogo-003", HomeGoals: 1, AwayGoals: 0},
		{MatchID: "jogo-004", HomeGoals: 2, AwayGoals: 2},
	}); err != nil {
		t.Fatalf("record results: %v", err)
	}

	addPredictions := func(dir string, preds ...prediction.Prediction) {
		t.Helper()
		sheet, found, err := sheets.Load(t.Context(), memory.SlugBrasileirao, dir)
		if err != nil || !found {
			t.Fatalf("load sheet %s: found=%v err=%v", dir, found, err)
		}
		sheet.Predictions = append(sheet.Predictions, preds...)
		if err := sheets.Save(t.Context(), memory.SlugBrasileirao, dir, sheet); err != nil {
			t.Fatalf("save sheet %s: %v", dir, err)
		}
	}
	addPredictions("AnaMaria",
		prediction.Prediction{MatchID: "jogo-003", HomeTeam: "Palmeiras", AwayTeam: "Santos", HomeGoals: 1, AwayGoals: 0, RecordedAt: recordedAt},
		prediction.Prediction{MatchID: "jogo-004", HomeTeam: "Grêmio", AwayTeam: "Flamengo", HomeGoals: 2, AwayGoals: 2, RecordedAt: recordedAt},
	)
	addPredictions("Bruno",
		prediction.Prediction{MatchID: "jogo-003", HomeTeam: "Palmeiras", AwayTeam: "Santos", HomeGoals: 2, AwayGoals: 1, RecordedAt: recordedAt},
		prediction.Prediction{MatchID: "jogo-004", HomeTeam: "Grêmio", AwayTeam: "Flamengo", HomeGoals: 1, AwayGoals: 1, RecordedAt: recordedAt},
	)
	addPredictions("ZeCarlos",
		prediction.Prediction{MatchID: "jogo-003", HomeTeam: "Palmeiras", AwayTeam: "Santos", HomeGoals: 0, AwayGoals: 0, RecordedAt: recordedAt},
	)

	result, err := service.Process(t.Context(), memory.SlugBrasileirao, 2, ProcessOptions{Final: true})
	if err != nil {
		t.Fatalf("process final: %v", err)
	}
	if !result.Final || result.Round != 2 {
		t.Fatalf("result = %+v", result)
	}

	first := result.Rows[0]
	if first.Participant != "Ana Maria" || first.Rank != 1 || first.RoundTotal != 26.0 || first.Cumulative != 52.0 {
		t.Fatalf("first row = %+v", first)
	}
	if first.Delta == nil || *first.Delta != 0 {
		t.Fatalf("first delta = %v", first.Delta)
	}

	second := result.Rows[1]
	if second.Participant != "Bruno" || second.Rank != 2 || second.RoundTotal != 11.0 || second.Cumulative != 13.0 {
		t.Fatalf("second row = %+v", second)
	}
	if second.Delta == nil || *second.Delta != 1 {
		t.Fatalf("second delta = %v", second.Delta)
	}

	third := result.Rows[2]
	if third.Participant != "Zé Carlos" || third.Rank != 3 || third.RoundTotal != 1.0 || third.Cumulative != 7.0 {
		t.Fatalf("third row = %+v", third)
	}
	if third.Delta == nil || *third.Delta != -1 {
		t.Fatalf("third delta = %v", third.Delta)
	}

	if result.BackupPath == "" || tables.BackupCount(memory.SlugBrasileirao) != 1 {
		t.Fatalf("closing must back up the table, got %q", result.BackupPath)
	}
	if result.ReportPath != "Brasileirao-Serie-A/resultados/rodada02.txt" {
		t.Fatalf("report path = %q", result.ReportPath)
	}

	table, _, err := tables.Load(t.Context(), memory.SlugBrasileirao)
	if err != nil {
		t.Fatalf("load table: %v", err)
	}
	if table.CurrentRound != 3 {
		t.Fatalf("current round = %d, want 3", table.CurrentRound)
	}
	if !table.UpdatedAt.Equal(recordedAt) {
		t.Fatalf("updated at = %v", table.UpdatedAt)
	}

	content, ok := tables.Report(memory.SlugBrasileirao, 2)
	if !ok {
		t.Fatalf("round report not archived")
	}
	archived := string(content)
	if !strings.Contains(archived, "RELATÓRIO DA RODADA 2") {
		t.Fatalf("archived report header missing:\n%s", archived)
	}
	if !strings.Contains(archived, "↑1") || !strings.Contains(archived, "↓1") {
		t.Fatalf("archived report misses movement markers:\n%s", archived)
	}
}

func TestRoundService_ProcessFinalRequiresResults(t *testing.T) {
	tables, rules, sheets := seedBolao(t)
	service := NewRoundService(tables, rules, sheets, tables, 2)

	_, err := service.Process(t.Context(), memory.SlugBrasileirao, 2, ProcessOptions{Final: true})
	var pending *MandatoryPendingError
	if !errors.As(err, &pending) {
		t.Fatalf("expected MandatoryPendingError, got %v", err)
	}
	if pending.Round != 2 || len(pending.Pending) != 2 || pending.Pending[0].ID != "jogo-003" {
		t.Fatalf("pending = %+v", pending)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	// The same round previews fine, reporting what is still open.
	result, err := service.Process(t.Context(), memory.SlugBrasileirao, 2, ProcessOptions{})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if len(result.Pending) != 2 {
		t.Fatalf("preview pending = %+v", result.Pending)
	}
}

func TestRoundService_ProcessRejections(t *testing.T) {
	tables, rules, sheets := seedBolao(t)

	service := NewRoundService(tables, rules, sheets, tables, 2)
	if _, err := service.Process(t.Context(), memory.SlugBrasileirao, 9, ProcessOptions{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unscheduled round: %v", err)
	}
	if _, err := service.Process(t.Context(), "Nao-Existe", 1, ProcessOptions{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing championship: %v", err)
	}

	unruled := NewRoundService(tables, memory.NewScoringRepository(), sheets, tables, 2)
	if _, err := unruled.Process(t.Context(), memory.SlugBrasileirao, 1, ProcessOptions{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing rules: %v", err)
	}

	deserted := NewRoundService(tables, rules, memory.NewPredictionRepository(), tables, 2)
	if _, err := deserted.Process(t.Context(), memory.SlugBrasileirao, 1, ProcessOptions{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("no participants: %v", err)
	}
}
