// Package tokenstore persists the session credential across process
// restarts. It is the only shared mutable state in the client core:
// one JSON file holding the serialized credential, mirrored in memory.
package tokenstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/vantagecrm/crm-client-go/internal/domain"

	"go.uber.org/zap"
)

// FileStore is a durable credential store backed by a single JSON file.
// A malformed file is treated as "logged out" and removed.
type FileStore struct {
	mu     sync.Mutex
	path   string
	cred   *domain.Credential
	loaded bool
	logger *zap.Logger
}

// New creates a FileStore persisting to path. The file is read lazily
// on first Get.
func New(path string, logger *zap.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Set replaces the stored credential wholesale and persists it.
func (s *FileStore) Set(cred *domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cred = cred
	s.loaded = true

	data, err := json.Marshal(cred)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		s.logger.Error("tokenstore: failed to persist credential",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Get returns the current credential, loading from disk on first
// access if memory is empty. Returns nil when unauthenticated.
func (s *FileStore) Get() *domain.Credential {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.load()
	}
	return s.cred
}

// Clear removes the credential from memory and disk.
func (s *FileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// load reads the persisted credential. Caller must hold the mutex.
func (s *FileStore) load() {
	s.loaded = true

	data, err := os.ReadFile(s.path)
	if err != nil {
		return // absent file means logged out
	}

	var cred domain.Credential
	if err := json.Unmarshal(data, &cred); err != nil || cred.AccessToken == "" {
		s.logger.Warn("tokenstore: corrupt credential file, clearing",
			zap.String("path", s.path),
		)
		s.clearLocked()
		return
	}
	s.cred = &cred
}

func (s *FileStore) clearLocked() {
	s.cred = nil
	s.loaded = true
	_ = os.Remove(s.path)
}
