package jsonfile

import (
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"tester-quiz-service/internal/domain"
)

// TestCatalog specializes Store[Test] with an id index and per-test snapshot
// files written next to the aggregate for auditing.
type TestCatalog struct {
	store       *Store[domain.Test]
	snapshotDir string

	mu   sync.RWMutex
	byID map[uuid.UUID]domain.Test
}

// NewTestCatalog opens (or initializes) the tests aggregate file at path.
// Snapshot files land in snapshotDir as <testId>.json.
func NewTestCatalog(path, snapshotDir string) (*TestCatalog, error) {
	store := NewStore[domain.Test](path, "tests")
	all, err := store.FindAll()
	if err != nil {
		return nil, err
	}
	index := make(map[uuid.UUID]domain.Test, len(all))
	for _, t := range all {
		index[t.ID] = t
	}
	return &TestCatalog{store: store, snapshotDir: snapshotDir, byID: index}, nil
}

// FindAll returns all stored tests.
func (c *TestCatalog) FindAll() ([]domain.Test, error) {
	return c.store.FindAll()
}

// FindByID looks a test up by id.
func (c *TestCatalog) FindByID(id uuid.UUID) (domain.Test, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.byID[id]
	return t, ok
}

// ExistsByTitle reports whether any stored test carries exactly this title.
func (c *TestCatalog) ExistsByTitle(title string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.byID {
		if t.Title == title {
			return true
		}
	}
	return false
}

// SaveUnique writes the test into the aggregate (overwriting any record with
// the same id) and additionally snapshots it to <snapshotDir>/<id>.json.
func (c *TestCatalog) SaveUnique(test domain.Test) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	all, err := c.store.FindAll()
	if err != nil {
		return err
	}
	replaced := false
	for i := range all {
		if all[i].ID == test.ID {
			all[i] = test
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, test)
	}
	if err := c.store.WriteAll(all); err != nil {
		return err
	}
	c.byID[test.ID] = test

	_, err = c.store.SaveToUniqueFile(test, c.snapshotDir, test.ID.String())
	return err
}

// DeleteByID removes both the snapshot file and the aggregate entry. The
// snapshot goes first: if its removal fails, the aggregate stays untouched.
func (c *TestCatalog) DeleteByID(id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byID[id]; !ok {
		return domain.ErrTestNotFound
	}
	if err := c.store.DeleteUniqueFile(c.SnapshotPath(id)); err != nil {
		return err
	}

	all, err := c.store.FindAll()
	if err != nil {
		return err
	}
	kept := make([]domain.Test, 0, len(all))
	for _, t := range all {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if err := c.store.WriteAll(kept); err != nil {
		return err
	}
	delete(c.byID, id)
	return nil
}

// SnapshotPath returns where the per-test snapshot for id lives.
func (c *TestCatalog) SnapshotPath(id uuid.UUID) string {
	return filepath.Join(c.snapshotDir, id.String()+".json")
}
