package fsjson

import (
	"context"

	"github.com/palpiteria/bolao/internal/domain/scoring"
)

// ScoringRepository persists regras.json documents.
type ScoringRepository struct {
	store *Store
}

func NewScoringRepository(store *Store) *ScoringRepository {
	return &ScoringRepository{store: store}
}

func (r *ScoringRepository) Load(ctx context.Context, slug string) (scoring.RuleSet, bool, error) {
	var doc regrasDocument
	found, err := r.store.readDocument(r.store.rulesPath(slug), &doc)
	if err != nil || !found {
		return scoring.RuleSet{}, false, err
	}
	return regrasToDomain(doc), true, nil
}

func (r *ScoringRepository) Save(ctx context.Context, slug string, set scoring.RuleSet) error {
	doc := regrasFromDomain(set)
	return r.store.writeDocument(r.store.rulesPath(slug), &doc)
}
