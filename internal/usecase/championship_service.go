package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/palpiteria/bolao/internal/domain/championship"
	"github.com/palpiteria/bolao/internal/domain/prediction"
	"github.com/palpiteria/bolao/internal/domain/scoring"
	"github.com/palpiteria/bolao/internal/normalize"
	"github.com/palpiteria/bolao/internal/platform/id"
)

// ChampionshipService registers championships, their scoring rules and
// their participants.
type ChampionshipService struct {
	tables championship.Repository
	rules  scoring.Repository
	sheets prediction.Repository
	codes  id.Generator
	now    func() time.Time
}

func NewChampionshipService(tables championship.Repository, rules scoring.Repository, sheets prediction.Repository, codes id.Generator) *ChampionshipService {
	return &ChampionshipService{
		tables: tables,
		rules:  rules,
		sheets: sheets,
		codes:  codes,
		now:    time.Now,
	}
}

type CreateChampionshipInput struct {
	Name   string
	Season string
}

type CreateChampionshipResult struct {
	Slug  string
	Code  string
	Table championship.Table
}

// Create registers a championship: an empty schedule stamped with a join
// code, plus a placeholder rule document that GenerateRules replaces.
func (s *ChampionshipService) Create(ctx context.Context, input CreateChampionshipInput) (*CreateChampionshipResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChampionshipService.Create")
	defer span.End()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: championship name is required", ErrInvalidInput)
	}
	slug := normalize.Championship(name)
	if slug == "" {
		return nil, fmt.Errorf("%w: championship name %q has no usable characters", ErrInvalidInput, name)
	}

	if _, found, err := s.tables.Load(ctx, slug); err != nil {
		return nil, fmt.Errorf("load table: %w", err)
	} else if found {
		return nil, fmt.Errorf("%w: championship %s", ErrAlreadyExists, slug)
	}

	code, err := s.codes.NewChampionshipCode()
	if err != nil {
		return nil, fmt.Errorf("generate championship code: %w", err)
	}

	createdAt := s.now()
	table := championship.Table{
		Championship: name,
		Season:       strings.TrimSpace(input.Season),
		Code:         code,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	if err := s.tables.Save(ctx, slug, table); err != nil {
		return nil, fmt.Errorf("save table: %w", err)
	}

	placeholder := scoring.RuleSet{
		Championship: name,
		Season:       table.Season,
		Version:      "0",
		CreatedAt:    createdAt,
		Rules: map[string]scoring.Rule{
			"placeholder": {Code: "TEMP", Description: "Regras ainda não geradas"},
		},
		Notes: []string{"Gerar as regras oficiais antes de processar rodadas"},
	}
	if err := s.rules.Save(ctx, slug, placeholder); err != nil {
		return nil, fmt.Errorf("save placeholder rules: %w", err)
	}

	return &CreateChampionshipResult{Slug: slug, Code: code, Table: table}, nil
}

// GenerateRules writes the standard ten-tier rule document, stamped with
// the championship metadata.
func (s *ChampionshipService) GenerateRules(ctx context.Context, slug string) (*scoring.RuleSet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChampionshipService.GenerateRules")
	defer span.End()

	table, found, err := s.tables.Load(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("load table: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: championship %s", ErrNotFound, slug)
	}

	set := scoring.DefaultRules()
	set.Championship = table.Championship
	set.Season = table.Season
	set.CreatedAt = s.now()
	if err := s.rules.Save(ctx, slug, set); err != nil {
		return nil, fmt.Errorf("save rules: %w", err)
	}
	return &set, nil
}

type SkippedParticipant struct {
	Name   string
	Reason string
}

type AddParticipantsResult struct {
	Added   []string
	Skipped []SkippedParticipant
}

// AddParticipants registers the named participants, one empty prediction
// sheet each. Names already registered or repeated in the batch land in
// Skipped; blank names are dropped.
func (s *ChampionshipService) AddParticipants(ctx context.Context, slug string, names []string) (*AddParticipantsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChampionshipService.AddParticipants")
	defer span.End()

	table, found, err := s.tables.Load(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("load table: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: championship %s", ErrNotFound, slug)
	}

	registered, err := s.sheets.ListParticipants(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	taken := make(map[string]struct{}, len(registered))
	for _, dir := range registered {
		taken[strings.ToLower(dir)] = struct{}{}
	}

	result := &AddParticipantsResult{}
	seen := make(map[string]struct{}, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		dir := normalize.Participant(name)
		if dir == "" {
			result.Skipped = append(result.Skipped, SkippedParticipant{Name: name, Reason: "no usable characters"})
			continue
		}
		// Case folds so "ana maria" cannot register beside "Ana Maria".
		key := strings.ToLower(dir)
		if _, dup := seen[key]; dup {
			result.Skipped = append(result.Skipped, SkippedParticipant{Name: name, Reason: "repeated in batch"})
			continue
		}
		seen[key] = struct{}{}

		if _, exists := taken[key]; exists {
			result.Skipped = append(result.Skipped, SkippedParticipant{Name: name, Reason: "already registered"})
			continue
		}

		code, err := s.codes.NewParticipantCode()
		if err != nil {
			return nil, fmt.Errorf("generate participant code: %w", err)
		}
		sheet := prediction.Sheet{
			Participant:  name,
			Code:         code,
			Championship: table.Championship,
			Season:       table.Season,
			CreatedAt:    s.now(),
			Predictions:  []prediction.Prediction{},
		}
		if err := s.sheets.Save(ctx, slug, dir, sheet); err != nil {
			return nil, fmt.Errorf("save sheet for %s: %w", name, err)
		}
		result.Added = append(result.Added, name)
	}

	if len(result.Added) == 0 && len(result.Skipped) == 0 {
		return nil, fmt.Errorf("%w: no participant names given", ErrInvalidInput)
	}
	return result, nil
}

// Table loads a championship schedule.
func (s *ChampionshipService) Table(ctx context.Context, slug string) (championship.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChampionshipService.Table")
	defer span.End()

	table, found, err := s.tables.Load(ctx, slug)
	if err != nil {
		return championship.Table{}, fmt.Errorf("load table: %w", err)
	}
	if !found {
		return championship.Table{}, fmt.Errorf("%w: championship %s", ErrNotFound, slug)
	}
	return table, nil
}

// List names the registered championships by slug.
func (s *ChampionshipService) List(ctx context.Context) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChampionshipService.List")
	defer span.End()

	slugs, err := s.tables.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list championships: %w", err)
	}
	return slugs, nil
}

// Participants loads every registered prediction sheet.
func (s *ChampionshipService) Participants(ctx context.Context, slug string) ([]prediction.Sheet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChampionshipService.Participants")
	defer span.End()

	sheets, err := s.sheets.LoadAll(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("load prediction sheets: %w", err)
	}
	return sheets, nil
}
