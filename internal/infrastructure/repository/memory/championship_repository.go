package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	crerr "github.com/cockroachdb/errors"

	"github.com/palpiteria/bolao/internal/domain/championship"
)

// ChampionshipRepository keeps tables in process memory. It backs unit
// tests and dry runs with the same contract as the flat-file store.
type ChampionshipRepository struct {
	mu      sync.RWMutex
	tables  map[string]championship.Table
	backups map[string][]championship.Table
	reports map[string]map[int][]byte
}

func NewChampionshipRepository() *ChampionshipRepository {
	return &ChampionshipRepository{
		tables:  make(map[string]championship.Table),
		backups: make(map[string][]championship.Table),
		reports: make(map[string]map[int][]byte),
	}
}

func (r *ChampionshipRepository) Load(_ context.Context, slug string) (championship.Table, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	table, ok := r.tables[slug]
	if !ok {
		return championship.Table{}, false, nil
	}
	return cloneTable(table), true, nil
}

func (r *ChampionshipRepository) Save(_ context.Context, slug string, table championship.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tables[slug] = cloneTable(table)
	return nil
}

func (r *ChampionshipRepository) Backup(_ context.Context, slug string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	table, ok := r.tables[slug]
	if !ok {
		return "", crerr.Newf("back up table for %s: not found", slug)
	}
	r.backups[slug] = append(r.backups[slug], cloneTable(table))
	return fmt.Sprintf("%s/backups/tabela_backup_%03d.json", slug, len(r.backups[slug])), nil
}

func (r *ChampionshipRepository) List(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slugs := make([]string, 0, len(r.tables))
	for slug := range r.tables {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs, nil
}

func (r *ChampionshipRepository) SaveReport(_ context.Context, slug string, round int, content []byte) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.reports[slug] == nil {
		r.reports[slug] = make(map[int][]byte)
	}
	r.reports[slug][round] = append([]byte(nil), content...)
	return fmt.Sprintf("%s/resultados/rodada%02d.txt", slug, round), nil
}

// Report returns the stored round report, for assertions in tests.
func (r *ChampionshipRepository) Report(slug string, round int) ([]byte, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	content, ok := r.reports[slug][round]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), content...), true
}

// BackupCount reports how many backups were taken for slug.
func (r *ChampionshipRepository) BackupCount(slug string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.backups[slug])
}

func cloneTable(t championship.Table) championship.Table {
	out := t
	out.Rounds = make([]championship.Round, len(t.Rounds))
	for i, round := range t.Rounds {
		cloned := round
		cloned.Matches = make([]championship.Match, len(round.Matches))
		for j, match := range round.Matches {
			cloned.Matches[j] = cloneMatch(match)
		}
		out.Rounds[i] = cloned
	}
	return out
}

func cloneMatch(m championship.Match) championship.Match {
	out := m
	if m.HomeGoals != nil {
		home := *m.HomeGoals
		out.HomeGoals = &home
	}
	if m.AwayGoals != nil {
		away := *m.AwayGoals
		out.AwayGoals = &away
	}
	return out
}
