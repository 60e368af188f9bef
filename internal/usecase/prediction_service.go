package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/palpiteria/bolao/internal/domain/championship"
	"github.com/palpiteria/bolao/internal/domain/prediction"
	"github.com/palpiteria/bolao/internal/normalize"
	"github.com/palpiteria/bolao/internal/parser"
)

// PredictionService imports parsed prediction texts into participant
// sheets.
type PredictionService struct {
	tables championship.Repository
	sheets prediction.Repository
	parser *parser.Parser
	now    func() time.Time
}

func NewPredictionService(tables championship.Repository, sheets prediction.Repository, p *parser.Parser) *PredictionService {
	if p == nil {
		p = parser.New(nil)
	}
	return &PredictionService{
		tables: tables,
		sheets: sheets,
		parser: p,
		now:    time.Now,
	}
}

// PredictionImportOptions control a prediction import.
type PredictionImportOptions struct {
	// Round overrides any round marker found in the text.
	Round int
	// AcceptInferred takes a round inferred from team mentions without
	// further confirmation.
	AcceptInferred bool
	// Force replaces predictions already stored for the round.
	Force bool
	// DryRun parses and pairs without saving.
	DryRun bool
}

// PredictionImportResult reports one participant's imported round
// section.
type PredictionImportResult struct {
	Participant string
	Round       int
	Inferred    bool
	Imported    int
	Extras      int
	Replaced    int
	DryRun      bool
}

// Import parses a prediction text and stores its entries on the bettor's
// sheet. A text with several round sections imports each one; with an
// explicit opts.Round the text must carry a single section. Against the
// schedule, every pair must match a fixture of its round in the written
// home/away orientation.
func (s *PredictionService) Import(ctx context.Context, slug, text string, opts PredictionImportOptions) ([]PredictionImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Import")
	defer span.End()

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: prediction text is empty", ErrInvalidInput)
	}

	table, found, err := s.tables.Load(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("load table: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: championship %s", ErrNotFound, slug)
	}

	all, err := s.sheets.LoadAll(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("load prediction sheets: %w", err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: championship %s has no registered participants", ErrInvalidInput, slug)
	}
	names := make([]string, 0, len(all))
	byName := make(map[string]prediction.Sheet, len(all))
	for _, sheet := range all {
		names = append(names, sheet.Participant)
		byName[sheet.Participant] = sheet
	}

	// An explicit round suppresses marker extraction and team inference
	// for sections that carry no header of their own.
	parsed, err := s.parser.ParseAllInRound(text, &table, names, opts.Round)
	if err != nil {
		return nil, fmt.Errorf("parse predictions: %w", err)
	}
	if len(parsed) == 0 {
		return nil, fmt.Errorf("%w: no predictions found in text", ErrInvalidInput)
	}
	if opts.Round > 0 && len(parsed) > 1 {
		return nil, fmt.Errorf("%w: an explicit round cannot apply to a text with %d round sections", ErrInvalidInput, len(parsed))
	}

	results := make([]PredictionImportResult, 0, len(parsed))
	for _, sheet := range parsed {
		stored := byName[sheet.Bettor]
		result, updated, err := s.importSection(ctx, slug, &table, stored, sheet, opts)
		if err != nil {
			return nil, err
		}
		byName[sheet.Bettor] = updated
		results = append(results, *result)
	}
	return results, nil
}

func (s *PredictionService) importSection(ctx context.Context, slug string, table *championship.Table, stored prediction.Sheet, parsed *parser.ParsedSheet, opts PredictionImportOptions) (*PredictionImportResult, prediction.Sheet, error) {
	round := parsed.Round
	inferred := parsed.Inferred
	if opts.Round > 0 {
		round = opts.Round
		inferred = false
	}
	if round == 0 {
		return nil, stored, fmt.Errorf("%w: no round found for %s, pass the round explicitly", ErrInvalidInput, parsed.Bettor)
	}
	if inferred && !opts.AcceptInferred {
		return nil, stored, &InferredRoundError{Participant: parsed.Bettor, Round: round}
	}

	target, ok := championship.RoundByNumber(table, round)
	if !ok {
		return nil, stored, fmt.Errorf("%w: round %d", ErrNotFound, round)
	}

	index := make(map[string]championship.Match, len(target.Matches))
	roundIDs := make(map[string]struct{}, len(target.Matches))
	for _, match := range target.Matches {
		index[pairKey(match.HomeTeam, match.AwayTeam)] = match
		roundIDs[match.ID] = struct{}{}
	}

	recordedAt := s.now()
	entries := make([]prediction.Prediction, 0, len(parsed.Predictions)+len(parsed.Extras))
	for _, pred := range parsed.Predictions {
		match, ok := index[pairKey(pred.HomeTeam, pred.AwayTeam)]
		if !ok {
			return nil, stored, fmt.Errorf("%w: game %s x %s is not in round %d", ErrNotFound, pred.HomeTeam, pred.AwayTeam, round)
		}
		entries = append(entries, prediction.Prediction{
			MatchID:    match.ID,
			HomeTeam:   match.HomeTeam,
			AwayTeam:   match.AwayTeam,
			HomeGoals:  pred.HomeGoals,
			AwayGoals:  pred.AwayGoals,
			RecordedAt: recordedAt,
		})
	}
	for _, extra := range parsed.Extras {
		entry := prediction.Prediction{
			HomeTeam:   extra.HomeTeam,
			AwayTeam:   extra.AwayTeam,
			HomeGoals:  extra.HomeGoals,
			AwayGoals:  extra.AwayGoals,
			Kind:       prediction.KindExtra,
			Identifier: extra.Identifier,
			RecordedAt: recordedAt,
		}
		if match, ok := index[pairKey(extra.HomeTeam, extra.AwayTeam)]; ok {
			entry.MatchID = match.ID
			entry.HomeTeam = match.HomeTeam
			entry.AwayTeam = match.AwayTeam
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return nil, stored, fmt.Errorf("%w: no predictions for %s", ErrInvalidInput, parsed.Bettor)
	}

	existing := 0
	for _, p := range stored.Predictions {
		if prediction.IsExtra(p) {
			continue
		}
		if _, ok := roundIDs[p.MatchID]; ok {
			existing++
		}
	}
	if existing > 0 && !opts.Force {
		return nil, stored, &OverwriteError{Participant: parsed.Bettor, Round: round, Existing: existing}
	}

	replaced := 0
	extras := 0
	for _, entry := range entries {
		if prediction.IsExtra(entry) {
			extras++
		}
		if prediction.Upsert(&stored, entry) {
			replaced++
		}
	}

	result := &PredictionImportResult{
		Participant: parsed.Bettor,
		Round:       round,
		Inferred:    inferred,
		Imported:    len(entries) - extras,
		Extras:      extras,
		Replaced:    replaced,
		DryRun:      opts.DryRun,
	}
	if opts.DryRun {
		return result, stored, nil
	}

	dir := normalize.Participant(stored.Participant)
	if err := s.sheets.Save(ctx, slug, dir, stored); err != nil {
		return nil, stored, fmt.Errorf("save sheet for %s: %w", stored.Participant, err)
	}
	return result, stored, nil
}

// pairKey identifies a fixture by its oriented team pair.
func pairKey(home, away string) string {
	return normalize.Team(home) + "|" + normalize.Team(away)
}
