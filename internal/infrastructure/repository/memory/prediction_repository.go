package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/palpiteria/bolao/internal/domain/prediction"
)

// PredictionRepository keeps prediction sheets in process memory, keyed
// by championship slug and participant directory name.
type PredictionRepository struct {
	mu     sync.RWMutex
	sheets map[string]map[string]prediction.Sheet
}

func NewPredictionRepository() *PredictionRepository {
	return &PredictionRepository{sheets: make(map[string]map[string]prediction.Sheet)}
}

// ListParticipants returns participant names in lexical order, matching
// the directory listing of the flat-file store.
func (r *PredictionRepository) ListParticipants(_ context.Context, slug string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byParticipant := r.sheets[slug]
	if len(byParticipant) == 0 {
		return nil, nil
	}
	participants := make([]string, 0, len(byParticipant))
	for participant := range byParticipant {
		participants = append(participants, participant)
	}
	sort.Strings(participants)
	return participants, nil
}

func (r *PredictionRepository) Load(_ context.Context, slug, participant string) (prediction.Sheet, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sheet, ok := r.sheets[slug][participant]
	if !ok {
		return prediction.Sheet{}, false, nil
	}
	return cloneSheet(sheet), true, nil
}

func (r *PredictionRepository) Save(_ context.Context, slug, participant string, sheet prediction.Sheet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sheets[slug] == nil {
		r.sheets[slug] = make(map[string]prediction.Sheet)
	}
	r.sheets[slug][participant] = cloneSheet(sheet)
	return nil
}

func (r *PredictionRepository) LoadAll(ctx context.Context, slug string) ([]prediction.Sheet, error) {
	participants, err := r.ListParticipants(ctx, slug)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	sheets := make([]prediction.Sheet, 0, len(participants))
	for _, participant := range participants {
		if sheet, ok := r.sheets[slug][participant]; ok {
			sheets = append(sheets, cloneSheet(sheet))
		}
	}
	if len(sheets) == 0 {
		return nil, nil
	}
	return sheets, nil
}

func cloneSheet(s prediction.Sheet) prediction.Sheet {
	out := s
	out.Predictions = append([]prediction.Prediction(nil), s.Predictions...)
	return out
}
