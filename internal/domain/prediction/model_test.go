package prediction

import (
	"testing"
	"time"
)

func TestUpsert(t *testing.T) {
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	sheet := Sheet{Participant: "MarioSilva"}

	if replaced := Upsert(&sheet, Prediction{MatchID: "jogo-001", HomeGoals: 2, AwayGoals: 1, RecordedAt: now}); replaced {
		t.Fatalf("first insert must not report a replacement")
	}
	if replaced := Upsert(&sheet, Prediction{MatchID: "jogo-002", HomeGoals: 0, AwayGoals: 0, RecordedAt: now}); replaced {
		t.Fatalf("second insert must not report a replacement")
	}

	// Same match again overwrites in place.
	if replaced := Upsert(&sheet, Prediction{MatchID: "jogo-001", HomeGoals: 3, AwayGoals: 0, RecordedAt: now}); !replaced {
		t.Fatalf("same-match insert must replace")
	}
	if len(sheet.Predictions) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(sheet.Predictions))
	}
	if sheet.Predictions[0].HomeGoals != 3 {
		t.Fatalf("replacement must keep position, got %+v", sheet.Predictions[0])
	}

	// An extra on the same match coexists with the regular entry.
	extra := Prediction{MatchID: "jogo-001", HomeGoals: 1, AwayGoals: 1, Kind: KindExtra, Identifier: "jogo-extra-1"}
	if replaced := Upsert(&sheet, extra); replaced {
		t.Fatalf("extra must not replace the regular entry")
	}
	if len(sheet.Predictions) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(sheet.Predictions))
	}

	// Same identifier replaces the extra.
	extra.AwayGoals = 2
	if replaced := Upsert(&sheet, extra); !replaced {
		t.Fatalf("same-identifier extra must replace")
	}
	if len(sheet.Predictions) != 3 {
		t.Fatalf("expected 3 entries after extra replacement, got %d", len(sheet.Predictions))
	}
}

func TestRegularAndExtras(t *testing.T) {
	sheet := Sheet{
		Predictions: []Prediction{
			{MatchID: "jogo-001", HomeGoals: 2, AwayGoals: 1},
			{MatchID: "jogo-002", HomeGoals: 1, AwayGoals: 1},
			{MatchID: "jogo-002", HomeGoals: 2, AwayGoals: 0, Kind: KindExtra, Identifier: "jogo-extra-1"},
		},
	}

	regular := Regular(sheet)
	if len(regular) != 2 {
		t.Fatalf("expected 2 regular entries, got %d", len(regular))
	}
	if p, ok := regular["jogo-002"]; !ok || p.HomeGoals != 1 {
		t.Fatalf("regular lookup must skip the extra, got %+v", p)
	}

	extras := Extras(sheet)
	if len(extras) != 1 || extras[0].Identifier != "jogo-extra-1" {
		t.Fatalf("unexpected extras: %+v", extras)
	}
}

func TestForMatches(t *testing.T) {
	sheet := Sheet{
		Predictions: []Prediction{
			{MatchID: "jogo-001"},
			{MatchID: "jogo-005"},
			{MatchID: "jogo-002", Kind: KindExtra, Identifier: "jogo-extra-1"},
		},
	}
	ids := map[string]struct{}{"jogo-001": {}, "jogo-002": {}}

	filtered := ForMatches(sheet, ids)
	if len(filtered) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(filtered))
	}
	if filtered[0].MatchID != "jogo-001" || filtered[1].MatchID != "jogo-002" {
		t.Fatalf("stored order must be kept: %+v", filtered)
	}
}
