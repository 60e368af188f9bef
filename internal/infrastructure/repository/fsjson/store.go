package fsjson

import (
	"os"
	"path/filepath"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

const (
	tableFile       = "tabela.json"
	rulesFile       = "regras.json"
	predictionsFile = "palpites.json"

	participantsDirName = "participantes"
	reportsDirName      = "resultados"
	backupsDirName      = "backups"
)

// docTimeLayout is how stored documents carry timestamps, UTC with
// second precision.
const docTimeLayout = "2006-01-02T15:04:05Z"

// Store resolves document paths under one flat-file data directory and
// holds the shared structure validator. Every repository in this package
// reads and writes through the same Store.
type Store struct {
	root     string
	validate *validator.Validate
}

func NewStore(root string) *Store {
	return &Store{
		root:     root,
		validate: validator.New(),
	}
}

// Root returns the data directory the store was opened on.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) championshipDir(slug string) string {
	return filepath.Join(s.root, slug)
}

func (s *Store) tablePath(slug string) string {
	return filepath.Join(s.root, slug, tableFile)
}

func (s *Store) rulesPath(slug string) string {
	return filepath.Join(s.root, slug, rulesFile)
}

func (s *Store) participantsDir(slug string) string {
	return filepath.Join(s.root, slug, participantsDirName)
}

func (s *Store) predictionsPath(slug, participant string) string {
	return filepath.Join(s.root, slug, participantsDirName, participant, predictionsFile)
}

func (s *Store) reportsDir(slug string) string {
	return filepath.Join(s.root, slug, reportsDirName)
}

func (s *Store) backupsDir(slug string) string {
	return filepath.Join(s.root, slug, backupsDirName)
}

// readDocument loads and validates one JSON document into out. A missing
// file is not an error; it reports found=false.
func (s *Store) readDocument(path string, out any) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, crerr.Wrapf(err, "read %s", path)
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		return false, crerr.Wrapf(err, "decode %s", path)
	}
	if err := s.validate.Struct(out); err != nil {
		return false, crerr.Wrapf(err, "invalid document %s", path)
	}
	return true, nil
}

// writeDocument validates and writes one indented JSON document, creating
// parent directories as needed. ConfigStd keeps map keys sorted, so
// saving the same document twice produces identical bytes.
func (s *Store) writeDocument(path string, doc any) error {
	if err := s.validate.Struct(doc); err != nil {
		return crerr.Wrapf(err, "invalid document %s", path)
	}
	data, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	if err != nil {
		return crerr.Wrapf(err, "encode %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return crerr.Wrapf(err, "create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return crerr.Wrapf(err, "write %s", path)
	}
	return nil
}

func formatDocTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(docTimeLayout)
}

// parseDocTime accepts RFC3339 values and the fraction-bearing local
// timestamps older documents carry. Anything else reads as the zero time.
func parseDocTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.999999"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
