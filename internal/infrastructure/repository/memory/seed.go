package memory

import (
	"time"

	"github.com/palpiteria/bolao/internal/domain/championship"
	"github.com/palpiteria/bolao/internal/domain/prediction"
	"github.com/palpiteria/bolao/internal/domain/scoring"
)

// SlugBrasileirao keys the seeded championship across the repositories.
const SlugBrasileirao = "Brasileirao-Serie-A"

var seedCreatedAt = time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)

// SeedTable returns a two-round schedule with round 1 finalized
// (Flamengo 2x1 Palmeiras, São Paulo 1x1 Corinthians) and round 2 still
// open. Santos and Grêmio appear only in round 2, so team mentions can
// tell the rounds apart.
func SeedTable() championship.Table {
	return championship.Table{
		Championship: "Brasileirão Série A",
		Season:       "2025",
		Code:         "BR25A",
		CreatedAt:    seedCreatedAt,
		UpdatedAt:    seedCreatedAt,
		CurrentRound: 2,
		Rounds: []championship.Round{
			{Number: 1, Matches: []championship.Match{
				{
					ID:        "jogo-001",
					HomeTeam:  "Flamengo",
					AwayTeam:  "Palmeiras",
					KickoffAt: time.Date(2025, 8, 2, 16, 0, 0, 0, time.UTC),
					Venue:     "Maracanã",
					HomeGoals: seedGoals(2),
					AwayGoals: seedGoals(1),
					Status:    championship.StatusFinalized,
					Mandatory: true,
				},
				{
					ID:        "jogo-002",
					HomeTeam:  "São Paulo",
					AwayTeam:  "Corinthians",
					KickoffAt: time.Date(2025, 8, 2, 18, 30, 0, 0, time.UTC),
					Venue:     "Morumbi",
					HomeGoals: seedGoals(1),
					AwayGoals: seedGoals(1),
					Status:    championship.StatusFinalized,
					Mandatory: true,
				},
			}},
			{Number: 2, Matches: []championship.Match{
				{
					ID:        "jogo-003",
					HomeTeam:  "Palmeiras",
					AwayTeam:  "Santos",
					KickoffAt: time.Date(2025, 8, 9, 16, 0, 0, 0, time.UTC),
					Venue:     "Allianz Parque",
					Status:    championship.StatusScheduled,
					Mandatory: true,
				},
				{
					ID:        "jogo-004",
					HomeTeam:  "Grêmio",
					AwayTeam:  "Flamengo",
					KickoffAt: time.Date(2025, 8, 9, 18, 30, 0, 0, time.UTC),
					Venue:     "Arena do Grêmio",
					Status:    championship.StatusScheduled,
					Mandatory: true,
				},
			}},
		},
	}
}

// SeedRules returns the standard tiers stamped for the seeded
// championship.
func SeedRules() scoring.RuleSet {
	set := scoring.DefaultRules()
	set.Championship = "Brasileirão Série A"
	set.Season = "2025"
	set.CreatedAt = seedCreatedAt
	return set
}

// SeedSheets returns three participants with round-1 predictions. Over
// the seeded results: Ana Maria hits both exact scores, Zé Carlos takes
// the winner with one goal count plus an absence penalty, Bruno reversed
// one game and called the other draw.
func SeedSheets() []prediction.Sheet {
	recordedAt := time.Date(2025, 8, 1, 20, 0, 0, 0, time.UTC)
	return []prediction.Sheet{
		{
			Participant:  "Ana Maria",
			Code:         "AN01",
			Championship: "Brasileirão Série A",
			Season:       "2025",
			CreatedAt:    seedCreatedAt,
			Predictions: []prediction.Prediction{
				{MatchID: "jogo-001", HomeTeam: "Flamengo", AwayTeam: "Palmeiras", HomeGoals: 2, AwayGoals: 1, RecordedAt: recordedAt},
				{MatchID: "jogo-002", HomeTeam: "São Paulo", AwayTeam: "Corinthians", HomeGoals: 1, AwayGoals: 1, RecordedAt: recordedAt},
			},
		},
		{
			Participant:  "Bruno",
			Code:         "BR02",
			Championship: "Brasileirão Série A",
			Season:       "2025",
			CreatedAt:    seedCreatedAt,
			Predictions: []prediction.Prediction{
				{MatchID: "jogo-001", HomeTeam: "Flamengo", AwayTeam: "Palmeiras", HomeGoals: 1, AwayGoals: 2, RecordedAt: recordedAt},
				{MatchID: "jogo-002", HomeTeam: "São Paulo", AwayTeam: "Corinthians", HomeGoals: 0, AwayGoals: 0, RecordedAt: recordedAt},
			},
		},
		{
			Participant:  "Zé Carlos",
			Code:         "ZE03",
			Championship: "Brasileirão Série A",
			Season:       "2025",
			CreatedAt:    seedCreatedAt,
			Predictions: []prediction.Prediction{
				{MatchID: "jogo-001", HomeTeam: "Flamengo", AwayTeam: "Palmeiras", HomeGoals: 2, AwayGoals: 0, RecordedAt: recordedAt},
			},
		},
	}
}

func seedGoals(n int) *int { return &n }
