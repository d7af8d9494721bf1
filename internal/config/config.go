// Package config handles the two configuration surfaces of the bot: the
// per-strategy persisted document (strategy settings plus action state,
// rewritten at the end of every cycle) and the operator-provided application
// config listing strategy instances.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/solbo-lab/solbo/internal/types"
	"github.com/solbo-lab/solbo/pkg/errors"
)

// Document is the persisted state of one strategy instance.
type Document struct {
	Strategy types.StrategyConfig `json:"strategy"`
	Actions  types.ActionState    `json:"actions"`
}

// Store reads and writes strategy documents by instance name.
type Store interface {
	// Read loads the document for the named instance.
	Read(name string) (*Document, error)
	// Write persists the document for the named instance.
	Write(name string, doc *Document) error
}

// FileStore keeps one JSON document per strategy instance in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeConfigReadFailed, err, "failed to create config directory %s", dir)
	}

	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Read implements Store. The document is parsed but not semantically
// validated; the validation rule battery owns field-level checks so each
// misconfiguration is reported through the rule chain.
func (s *FileStore) Read(name string) (*Document, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeConfigReadFailed, err, "failed to read config for %s", name)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeConfigParseFailed, err, "failed to parse config for %s", name)
	}

	return &doc, nil
}

// Write implements Store. The file is replaced atomically so a crash mid-write
// never leaves a truncated document behind.
func (s *FileStore) Write(name string, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrapf(errors.ErrCodeConfigWriteFailed, err, "failed to encode config for %s", name)
	}

	tmp := s.path(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(errors.ErrCodeConfigWriteFailed, err, "failed to write config for %s", name)
	}

	if err := os.Rename(tmp, s.path(name)); err != nil {
		return errors.Wrapf(errors.ErrCodeConfigWriteFailed, err, "failed to replace config for %s", name)
	}

	return nil
}
