package memory

import (
	"context"
	"sync"

	"github.com/palpiteria/bolao/internal/domain/scoring"
)

// ScoringRepository keeps rule sets in process memory.
type ScoringRepository struct {
	mu   sync.RWMutex
	sets map[string]scoring.RuleSet
}

func NewScoringRepository() *ScoringRepository {
	return &ScoringRepository{sets: make(map[string]scoring.RuleSet)}
}

func (r *ScoringRepository) Load(_ context.Context, slug string) (scoring.RuleSet, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.sets[slug]
	if !ok {
		return scoring.RuleSet{}, false, nil
	}
	return cloneRules(set), true, nil
}

func (r *ScoringRepository) Save(_ context.Context, slug string, set scoring.RuleSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sets[slug] = cloneRules(set)
	return nil
}

func cloneRules(set scoring.RuleSet) scoring.RuleSet {
	out := set
	out.Rules = make(map[string]scoring.Rule, len(set.Rules))
	for name, rule := range set.Rules {
		out.Rules[name] = rule
	}
	out.Notes = append([]string(nil), set.Notes...)
	return out
}
