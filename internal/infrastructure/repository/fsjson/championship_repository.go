package fsjson

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/palpiteria/bolao/internal/domain/championship"
)

// ChampionshipRepository persists tabela.json documents plus their
// backups and rendered round reports.
type ChampionshipRepository struct {
	store *Store
}

func NewChampionshipRepository(store *Store) *ChampionshipRepository {
	return &ChampionshipRepository{store: store}
}

func (r *ChampionshipRepository) Load(ctx context.Context, slug string) (championship.Table, bool, error) {
	var doc tabelaDocument
	found, err := r.store.readDocument(r.store.tablePath(slug), &doc)
	if err != nil || !found {
		return championship.Table{}, false, err
	}
	return tabelaToDomain(doc), true, nil
}

func (r *ChampionshipRepository) Save(ctx context.Context, slug string, table championship.Table) error {
	doc := tabelaFromDomain(table)
	return r.store.writeDocument(r.store.tablePath(slug), &doc)
}

// Backup copies the current tabela.json byte for byte into backups/
// under a timestamped name and returns the created path.
func (r *ChampionshipRepository) Backup(ctx context.Context, slug string) (string, error) {
	raw, err := os.ReadFile(r.store.tablePath(slug))
	if err != nil {
		return "", crerr.Wrapf(err, "back up table for %s", slug)
	}

	dir := r.store.backupsDir(slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", crerr.Wrapf(err, "create %s", dir)
	}

	name := fmt.Sprintf("tabela_backup_%s.json", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", crerr.Wrapf(err, "write %s", path)
	}
	return path, nil
}

// List returns the slugs of every championship under the data directory,
// in lexical order. A directory without a table document is not a
// championship.
func (r *ChampionshipRepository) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.store.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, crerr.Wrapf(err, "read %s", r.store.root)
	}

	var slugs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(r.store.tablePath(entry.Name())); err != nil {
			continue
		}
		slugs = append(slugs, entry.Name())
	}
	return slugs, nil
}

// SaveReport writes the rendered round report to resultados/rodadaNN.txt
// and returns the created path.
func (r *ChampionshipRepository) SaveReport(ctx context.Context, slug string, round int, content []byte) (string, error) {
	dir := r.store.reportsDir(slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", crerr.Wrapf(err, "create %s", dir)
	}

	path := filepath.Join(dir, fmt.Sprintf("rodada%02d.txt", round))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", crerr.Wrapf(err, "write %s", path)
	}
	return path, nil
}
