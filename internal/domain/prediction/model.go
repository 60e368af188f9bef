package prediction

import "time"

// KindExtra marks an entry imported from an extra-bet section.
const KindExtra = "extra"

// Prediction is one guess a participant registered for a match.
type Prediction struct {
	MatchID    string
	HomeTeam   string
	AwayTeam   string
	HomeGoals  int
	AwayGoals  int
	Kind       string
	Identifier string
	RecordedAt time.Time
}

// Sheet is one participant's stored prediction document.
type Sheet struct {
	Participant  string
	Code         string
	Championship string
	Season       string
	CreatedAt    time.Time
	Predictions  []Prediction
}

func IsExtra(p Prediction) bool {
	return p.Kind == KindExtra
}

// Regular returns the non-extra predictions keyed by match id.
func Regular(s Sheet) map[string]Prediction {
	regular := make(map[string]Prediction)
	for _, p := range s.Predictions {
		if !IsExtra(p) {
			regular[p.MatchID] = p
		}
	}
	return regular
}

// Extras returns the extra-bet entries in stored order.
func Extras(s Sheet) []Prediction {
	var extras []Prediction
	for _, p := range s.Predictions {
		if IsExtra(p) {
			extras = append(extras, p)
		}
	}
	return extras
}

// ForMatches returns the sheet entries whose match id is in ids, keeping
// stored order.
func ForMatches(s Sheet, ids map[string]struct{}) []Prediction {
	var filtered []Prediction
	for _, p := range s.Predictions {
		if _, ok := ids[p.MatchID]; ok {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Upsert stores p in the sheet, replacing any previous entry for the same
// match (regular) or the same identifier (extra). An extra never replaces
// a regular entry on the same match. Reports whether an existing entry was
// replaced.
func Upsert(s *Sheet, p Prediction) bool {
	for i := range s.Predictions {
		existing := &s.Predictions[i]
		if IsExtra(p) != IsExtra(*existing) {
			continue
		}
		if IsExtra(p) {
			if existing.Identifier != p.Identifier {
				continue
			}
		} else if existing.MatchID != p.MatchID {
			continue
		}
		*existing = p
		return true
	}
	s.Predictions = append(s.Predictions, p)
	return false
}
