package jsonfile

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"

	"tester-quiz-service/internal/domain"
)

// Store keeps a full in-memory copy of all records of one entity type and
// rewrites the complete set to a single aggregate file on every mutation.
// The file layout is { "<rootName>": [ <records...> ] }.
//
// Concurrency: reads run concurrently, any write excludes everything else on
// this instance. The cache is only updated after a write succeeds, so a
// failed write never desyncs the cache from the last durably written state.
type Store[T any] struct {
	path     string
	rootName string
	sf       singleflight.Group

	mu     sync.RWMutex
	cache  []T
	loaded bool
}

// NewStore returns a store over the aggregate file at path. The file is read
// lazily on first access; a missing file means an empty store.
func NewStore[T any](path, rootName string) *Store[T] {
	return &Store[T]{path: path, rootName: rootName}
}

// FindAll returns a snapshot copy of the current record set, populating the
// cache from the aggregate file on cold start.
func (s *Store[T]) FindAll() ([]T, error) {
	s.mu.RLock()
	if s.loaded {
		out := snapshot(s.cache)
		s.mu.RUnlock()
		return out, nil
	}
	s.mu.RUnlock()

	// Cold start: load the file once even under concurrent readers.
	_, err, _ := s.sf.Do(s.rootName, func() (interface{}, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.loaded {
			return nil, nil
		}
		return nil, s.loadLocked()
	})
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.cache), nil
}

// Add appends one record and rewrites the aggregate file.
func (s *Store[T]) Add(record T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		if err := s.loadLocked(); err != nil {
			return err
		}
	}
	next := append(snapshot(s.cache), record)
	if err := s.writeLocked(next); err != nil {
		return err
	}
	s.cache = next
	return nil
}

// WriteAll replaces the full record set and rewrites the aggregate file.
func (s *Store[T]) WriteAll(records []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := snapshot(records)
	if err := s.writeLocked(next); err != nil {
		return err
	}
	s.cache = next
	s.loaded = true
	return nil
}

// SaveToUniqueFile writes a single record to its own file <dir>/<name>.json,
// creating dir if absent, and returns the written path. Used for auditable
// per-record snapshots independent of the aggregate file.
func (s *Store[T]) SaveToUniqueFile(record T, dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", domain.NewDataAccessError("create snapshot dir", err)
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", domain.NewDataAccessError("marshal "+s.rootName+" snapshot", err)
	}
	path := filepath.Join(dir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", domain.NewDataAccessError("write snapshot "+path, err)
	}
	return path, nil
}

// DeleteUniqueFile removes a snapshot file. A missing file is not an error.
func (s *Store[T]) DeleteUniqueFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return domain.NewDataAccessError("delete snapshot "+path, err)
	}
	return nil
}

func (s *Store[T]) loadLocked() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		// First initialization: persist an empty root container.
		if err := s.writeLocked(nil); err != nil {
			return err
		}
		s.cache = nil
		s.loaded = true
		return nil
	}
	if err != nil {
		return domain.NewDataAccessError("read "+s.rootName, err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.NewDataAccessError("decode "+s.rootName, err)
	}
	var records []T
	if raw, ok := doc[s.rootName]; ok && len(raw) > 0 {
		if err := json.Unmarshal(raw, &records); err != nil {
			return domain.NewDataAccessError("decode "+s.rootName, err)
		}
	}
	s.cache = records
	s.loaded = true
	return nil
}

func (s *Store[T]) writeLocked(records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(map[string][]T{s.rootName: records}, "", "  ")
	if err != nil {
		return domain.NewDataAccessError("marshal "+s.rootName, err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return domain.NewDataAccessError("create data dir", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return domain.NewDataAccessError("write "+s.rootName, err)
	}
	return nil
}

func snapshot[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
