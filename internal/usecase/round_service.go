package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/palpiteria/bolao/internal/domain/championship"
	"github.com/palpiteria/bolao/internal/domain/prediction"
	"github.com/palpiteria/bolao/internal/domain/scoring"
	"github.com/palpiteria/bolao/internal/domain/standings"
	"github.com/palpiteria/bolao/internal/parser"
	"github.com/palpiteria/bolao/internal/report"
)

// RoundService records results and turns a finished round into the
// classification report.
type RoundService struct {
	tables  championship.Repository
	rules   scoring.Repository
	sheets  prediction.Repository
	reports championship.ReportArchive
	workers int
	// MaxGoals caps a recorded score for a single team.
	MaxGoals int
	now      func() time.Time
}

func NewRoundService(tables championship.Repository, rules scoring.Repository, sheets prediction.Repository, reports championship.ReportArchive, workers int) *RoundService {
	if workers < 1 {
		workers = 1
	}
	return &RoundService{
		tables:   tables,
		rules:    rules,
		sheets:   sheets,
		reports:  reports,
		workers:  workers,
		MaxGoals: parser.DefaultMaxGoals,
		now:      time.Now,
	}
}

// MatchResult is one final score keyed by match id.
type MatchResult struct {
	MatchID   string
	HomeGoals int
	AwayGoals int
}

// RecordResults stores final scores in the given round and finalizes
// their matches.
func (s *RoundService) RecordResults(ctx context.Context, slug string, round int, results []MatchResult) (*championship.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.RecordResults")
	defer span.End()

	if len(results) == 0 {
		return nil, fmt.Errorf("%w: no results given", ErrInvalidInput)
	}

	table, found, err := s.tables.Load(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("load table: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: championship %s", ErrNotFound, slug)
	}

	target, ok := championship.RoundByNumber(&table, round)
	if !ok {
		return nil, fmt.Errorf("%w: round %d", ErrNotFound, round)
	}

	for _, res := range results {
		if res.HomeGoals < 0 || res.HomeGoals > s.MaxGoals || res.AwayGoals < 0 || res.AwayGoals > s.MaxGoals {
			return nil, fmt.Errorf("%w: score %dx%d for %s is out of range", ErrInvalidInput, res.HomeGoals, res.AwayGoals, res.MatchID)
		}
		match, ok := championship.MatchByID(target, res.MatchID)
		if !ok {
			return nil, fmt.Errorf("%w: match %s in round %d", ErrNotFound, res.MatchID, round)
		}
		hg, ag := res.HomeGoals, res.AwayGoals
		match.HomeGoals = &hg
		match.AwayGoals = &ag
		match.Status = championship.StatusFinalized
	}

	table.UpdatedAt = s.now()
	if err := s.tables.Save(ctx, slug, table); err != nil {
		return nil, fmt.Errorf("save table: %w", err)
	}
	return target, nil
}

// ProcessOptions control round processing.
type ProcessOptions struct {
	// Final closes the round: backup, current-round advance and report
	// archive. Without it Process is a preview and writes nothing.
	Final bool
}

// ProcessResult is one processed round: the ordered classification plus
// its rendered report. Pending lists mandatory games still without a
// result, tolerated only in preview mode.
type ProcessResult struct {
	Round      int
	Rows       []standings.Row
	Report     string
	Summary    string
	Pending    []championship.Match
	Final      bool
	BackupPath string
	ReportPath string
}

// Process scores the round for every participant and builds the
// classification. Cumulative points and position deltas come from
// rescoring every earlier round, so a corrected old result is always
// reflected.
func (s *RoundService) Process(ctx context.Context, slug string, round int, opts ProcessOptions) (*ProcessResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.Process")
	defer span.End()

	table, found, err := s.tables.Load(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("load table: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: championship %s", ErrNotFound, slug)
	}

	target, ok := championship.RoundByNumber(&table, round)
	if !ok {
		return nil, fmt.Errorf("%w: round %d", ErrNotFound, round)
	}

	pending := championship.PendingMandatory(*target)
	if opts.Final && len(pending) > 0 {
		return nil, &MandatoryPendingError{Round: round, Pending: pending}
	}

	set, found, err := s.rules.Load(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: scoring rules for %s", ErrNotFound, slug)
	}
	if err := scoring.ValidateRules(set); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	allSheets, err := s.sheets.LoadAll(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("load prediction sheets: %w", err)
	}
	if len(allSheets) == 0 {
		return nil, fmt.Errorf("%w: championship %s has no registered participants", ErrInvalidInput, slug)
	}

	prevTotals, prevRanks, err := s.history(table, allSheets, set, round)
	if err != nil {
		return nil, err
	}

	scores, err := scoring.ScoreRound(*target, roundEntries(*target, allSheets), set)
	if err != nil {
		return nil, fmt.Errorf("score round %d: %w", round, err)
	}
	rows := standings.Aggregate(scores, prevTotals, prevRanks)

	generatedAt := s.now()
	classification := report.Classification(rows, set, report.Options{
		Championship: table.Championship,
		Season:       table.Season,
		Round:        round,
		GeneratedAt:  generatedAt,
	})
	summary := report.Summary(rows, round)

	result := &ProcessResult{
		Round:   round,
		Rows:    rows,
		Report:  classification,
		Summary: summary,
		Pending: pending,
		Final:   opts.Final,
	}
	if !opts.Final {
		return result, nil
	}

	backupPath, err := s.tables.Backup(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("backup table: %w", err)
	}
	result.BackupPath = backupPath

	table.CurrentRound = round + 1
	table.UpdatedAt = generatedAt
	if err := s.tables.Save(ctx, slug, table); err != nil {
		return nil, fmt.Errorf("save table: %w", err)
	}

	reportPath, err := s.reports.SaveReport(ctx, slug, round, []byte(report.RoundFile(round, generatedAt, classification, summary)))
	if err != nil {
		return nil, fmt.Errorf("archive report: %w", err)
	}
	result.ReportPath = reportPath

	return result, nil
}

// history rebuilds the cumulative totals and the classification standing
// before the target round. Earlier rounds score concurrently and fold in
// ascending order, so the deltas always compare against the round right
// before the target.
func (s *RoundService) history(table championship.Table, sheets []prediction.Sheet, set scoring.RuleSet, round int) (map[string]float64, map[string]int, error) {
	var prior []championship.Round
	for _, r := range table.Rounds {
		if r.Number < round {
			prior = append(prior, r)
		}
	}
	if len(prior) == 0 {
		return nil, nil, nil
	}

	type roundOutcome struct {
		number int
		scores []scoring.RoundScore
		err    error
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan roundOutcome, len(prior))
	var workers sync.WaitGroup
	for _, prev := range prior {
		prev := prev
		workers.Add(1)
		submitErr := pool.Submit(func() {
			defer workers.Done()
			scores, err := scoring.ScoreRound(prev, roundEntries(prev, sheets), set)
			results <- roundOutcome{number: prev.Number, scores: scores, err: err}
		})
		if submitErr != nil {
			workers.Done()
			results <- roundOutcome{number: prev.Number, err: fmt.Errorf("submit task: %w", submitErr)}
		}
	}
	workers.Wait()
	close(results)

	outcomes := make([]roundOutcome, 0, len(prior))
	for outcome := range results {
		if outcome.err != nil {
			return nil, nil, fmt.Errorf("score round %d: %w", outcome.number, outcome.err)
		}
		outcomes = append(outcomes, outcome)
	}
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].number < outcomes[j].number })

	var totals map[string]float64
	var ranks map[string]int
	for _, outcome := range outcomes {
		rows := standings.Aggregate(outcome.scores, totals, ranks)
		totals = standings.Totals(rows)
		ranks = standings.Ranks(rows)
	}
	return totals, ranks, nil
}

// roundEntries restricts every sheet to the round's matches.
func roundEntries(round championship.Round, sheets []prediction.Sheet) []scoring.ParticipantEntry {
	ids := make(map[string]struct{}, len(round.Matches))
	for _, match := range round.Matches {
		ids[match.ID] = struct{}{}
	}
	entries := make([]scoring.ParticipantEntry, 0, len(sheets))
	for _, sheet := range sheets {
		entries = append(entries, scoring.ParticipantEntry{
			Participant: sheet.Participant,
			Predictions: prediction.ForMatches(sheet, ids),
		})
	}
	return entries
}
