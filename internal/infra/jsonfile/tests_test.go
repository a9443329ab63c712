package jsonfile

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"tester-quiz-service/internal/domain"
)

func newTestCatalog(t *testing.T) *TestCatalog {
	t.Helper()
	dir := t.TempDir()
	catalog, err := NewTestCatalog(filepath.Join(dir, "tests.json"), filepath.Join(dir, "tests"))
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	return catalog
}

func sampleTest(title string) domain.Test {
	return domain.Test{
		ID:        uuid.New(),
		Title:     title,
		Topic:     "go",
		CreatorID: uuid.New(),
		Questions: []domain.Question{
			{
				ID:             uuid.New(),
				QuestionNumber: 1,
				Text:           "What is 2 + 2?",
				Answers: []domain.Answer{
					{ID: uuid.New(), Text: "4", Correct: true},
					{ID: uuid.New(), Text: "5"},
				},
			},
		},
	}
}

func TestSaveUniqueWritesAggregateAndSnapshot(t *testing.T) {
	catalog := newTestCatalog(t)
	test := sampleTest("Go basics")

	if err := catalog.SaveUnique(test); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok := catalog.FindByID(test.ID); !ok {
		t.Fatalf("expected test findable by id")
	}
	if _, err := os.Stat(catalog.SnapshotPath(test.ID)); err != nil {
		t.Fatalf("expected snapshot file: %v", err)
	}
}

func TestSaveUniqueOverwritesSameID(t *testing.T) {
	catalog := newTestCatalog(t)
	test := sampleTest("Go basics")
	if err := catalog.SaveUnique(test); err != nil {
		t.Fatalf("save v1: %v", err)
	}

	test.Title = "Go basics, second edition"
	if err := catalog.SaveUnique(test); err != nil {
		t.Fatalf("save v2: %v", err)
	}

	got, ok := catalog.FindByID(test.ID)
	if !ok || got.Title != "Go basics, second edition" {
		t.Fatalf("expected second version, got %+v", got)
	}
	all, _ := catalog.FindAll()
	if len(all) != 1 {
		t.Fatalf("expected one aggregate entry, got %d", len(all))
	}

	data, err := os.ReadFile(catalog.SnapshotPath(test.ID))
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	var snap domain.Test
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.Title != "Go basics, second edition" {
		t.Fatalf("expected snapshot overwritten, got %q", snap.Title)
	}
}

func TestExistsByTitle(t *testing.T) {
	catalog := newTestCatalog(t)
	if catalog.ExistsByTitle("Go basics") {
		t.Fatalf("empty catalog should not match")
	}
	if err := catalog.SaveUnique(sampleTest("Go basics")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !catalog.ExistsByTitle("Go basics") {
		t.Fatalf("expected exact title match")
	}
	if catalog.ExistsByTitle("go basics") {
		t.Fatalf("match must be exact, not case-folded")
	}
}

func TestDeleteByIDRemovesBoth(t *testing.T) {
	catalog := newTestCatalog(t)
	test := sampleTest("Go basics")
	if err := catalog.SaveUnique(test); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := catalog.DeleteByID(test.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := catalog.FindByID(test.ID); ok {
		t.Fatalf("expected aggregate entry removed")
	}
	if _, err := os.Stat(catalog.SnapshotPath(test.ID)); !os.IsNotExist(err) {
		t.Fatalf("expected snapshot removed")
	}
	if err := catalog.DeleteByID(test.ID); !errors.Is(err, domain.ErrTestNotFound) {
		t.Fatalf("expected ErrTestNotFound on second delete, got %v", err)
	}
}

func TestDeleteByIDAbortsWhenSnapshotRemovalFails(t *testing.T) {
	catalog := newTestCatalog(t)
	test := sampleTest("Go basics")
	if err := catalog.SaveUnique(test); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Replace the snapshot with a non-empty directory so os.Remove fails.
	snap := catalog.SnapshotPath(test.ID)
	if err := os.Remove(snap); err != nil {
		t.Fatalf("remove snapshot: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(snap, "blocker"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	err := catalog.DeleteByID(test.ID)
	if !domain.IsDataAccess(err) {
		t.Fatalf("expected DataAccess failure, got %v", err)
	}
	// No partial delete: the aggregate entry must survive.
	if _, ok := catalog.FindByID(test.ID); !ok {
		t.Fatalf("aggregate entry must be untouched after failed snapshot delete")
	}
}
