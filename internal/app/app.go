package app

import (
	"fmt"

	"github.com/palpiteria/bolao/internal/config"
	"github.com/palpiteria/bolao/internal/infrastructure/repository/fsjson"
	"github.com/palpiteria/bolao/internal/infrastructure/spreadsheet"
	"github.com/palpiteria/bolao/internal/normalize"
	"github.com/palpiteria/bolao/internal/parser"
	idgen "github.com/palpiteria/bolao/internal/platform/id"
	"github.com/palpiteria/bolao/internal/usecase"
)

// App holds the wired use case services the CLI commands run against.
type App struct {
	Championships *usecase.ChampionshipService
	Schedules     *usecase.ScheduleService
	Predictions   *usecase.PredictionService
	Rounds        *usecase.RoundService
	Sheets        *spreadsheet.Reader
}

// New wires repositories, matcher and parser from cfg. Documents live
// under cfg.DataDir; directories are created on first write.
func New(cfg config.Config) (*App, error) {
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("data dir cannot be empty")
	}

	store := fsjson.NewStore(cfg.DataDir)
	tables := fsjson.NewChampionshipRepository(store)
	rules := fsjson.NewScoringRepository(store)
	sheets := fsjson.NewPredictionRepository(store)

	matcher := normalize.NewMatcher(cfg.SimilarityMaxDistance, cfg.SimilarityMaxRatio)

	lineParser := parser.New(matcher)
	lineParser.MaxGoals = cfg.MaxGoals
	lineParser.MaxRound = cfg.MaxRounds

	reader := spreadsheet.NewReader()

	roundSvc := usecase.NewRoundService(tables, rules, sheets, tables, cfg.Workers)
	roundSvc.MaxGoals = cfg.MaxGoals

	return &App{
		Championships: usecase.NewChampionshipService(tables, rules, sheets, idgen.NewRandomGenerator()),
		Schedules:     usecase.NewScheduleService(tables, reader, matcher),
		Predictions:   usecase.NewPredictionService(tables, sheets, lineParser),
		Rounds:        roundSvc,
		Sheets:        reader,
	}, nil
}
