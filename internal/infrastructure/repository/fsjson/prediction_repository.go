package fsjson

import (
	"context"
	"os"

	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"

	"github.com/palpiteria/bolao/internal/domain/prediction"
)

// loadWorkers bounds the concurrent palpites.json readers in LoadAll.
const loadWorkers = 8

// PredictionRepository persists one palpites.json per participant under
// the championship's participantes/ directory.
type PredictionRepository struct {
	store *Store
}

func NewPredictionRepository(store *Store) *PredictionRepository {
	return &PredictionRepository{store: store}
}

// ListParticipants returns the participant directory names in lexical
// order.
func (r *PredictionRepository) ListParticipants(ctx context.Context, slug string) ([]string, error) {
	dir := r.store.participantsDir(slug)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, crerr.Wrapf(err, "read %s", dir)
	}

	var participants []string
	for _, entry := range entries {
		if entry.IsDir() {
			participants = append(participants, entry.Name())
		}
	}
	return participants, nil
}

func (r *PredictionRepository) Load(ctx context.Context, slug, participant string) (prediction.Sheet, bool, error) {
	var doc palpitesDocument
	found, err := r.store.readDocument(r.store.predictionsPath(slug, participant), &doc)
	if err != nil || !found {
		return prediction.Sheet{}, false, err
	}
	return palpitesToDomain(doc), true, nil
}

func (r *PredictionRepository) Save(ctx context.Context, slug, participant string, sheet prediction.Sheet) error {
	doc := palpitesFromDomain(sheet)
	return r.store.writeDocument(r.store.predictionsPath(slug, participant), &doc)
}

// LoadAll reads every participant's sheet through a bounded worker pool.
// Results keep the participant listing order regardless of which loads
// finish first; participants without a palpites.json yet are skipped.
func (r *PredictionRepository) LoadAll(ctx context.Context, slug string) ([]prediction.Sheet, error) {
	participants, err := r.ListParticipants(ctx, slug)
	if err != nil {
		return nil, err
	}
	if len(participants) == 0 {
		return nil, nil
	}

	loaded := make([]*prediction.Sheet, len(participants))
	workers := pool.New().WithMaxGoroutines(loadWorkers).WithErrors()
	for i, participant := range participants {
		workers.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sheet, found, err := r.Load(ctx, slug, participant)
			if err != nil {
				return err
			}
			if found {
				loaded[i] = &sheet
			}
			return nil
		})
	}
	if err := workers.Wait(); err != nil {
		return nil, err
	}

	sheets := make([]prediction.Sheet, 0, len(loaded))
	for _, sheet := range loaded {
		if sheet != nil {
			sheets = append(sheets, *sheet)
		}
	}
	return sheets, nil
}
