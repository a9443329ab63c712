package app

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"tester-quiz-service/internal/domain"
	"tester-quiz-service/internal/infra/jsonfile"
)

func newTestService(t *testing.T) *TestService {
	t.Helper()
	dir := t.TempDir()
	catalog, err := jsonfile.NewTestCatalog(filepath.Join(dir, "tests.json"), filepath.Join(dir, "tests"))
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	return NewTestService(catalog)
}

func TestCreateRejectsDuplicateTitle(t *testing.T) {
	svc := newTestService(t)
	req := CreateTestRequest{Title: "Go basics", Topic: "go", CreatorID: uuid.New()}

	if _, err := svc.Create(req); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(req); !errors.Is(err, domain.ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}
}

func TestCreateValidatesTitleLength(t *testing.T) {
	svc := newTestService(t)
	req := CreateTestRequest{
		Title:     strings.Repeat("x", 101),
		Topic:     "go",
		CreatorID: uuid.New(),
	}
	if _, err := svc.Create(req); err == nil {
		t.Fatalf("expected validation failure for 101-char title")
	}
}

func TestAddQuestionAssignsContiguousNumbers(t *testing.T) {
	svc := newTestService(t)
	test, err := svc.Create(CreateTestRequest{Title: "Go basics", Topic: "go", CreatorID: uuid.New()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 0; i < 3; i++ {
		test, err = svc.AddQuestion(AddQuestionRequest{
			TestID: test.ID,
			Text:   "Select the right option",
			Answers: []AnswerInput{
				{Text: "Right", Correct: true},
				{Text: "Wrong"},
			},
		})
		if err != nil {
			t.Fatalf("add question %d: %v", i+1, err)
		}
	}

	if len(test.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(test.Questions))
	}
	for i, q := range test.Questions {
		if q.QuestionNumber != i+1 {
			t.Fatalf("expected question number %d, got %d", i+1, q.QuestionNumber)
		}
	}

	// Numbering must also be durable.
	stored, err := svc.Get(test.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(stored.Questions) != 3 {
		t.Fatalf("expected persisted questions, got %d", len(stored.Questions))
	}
}

func TestAddQuestionRequiresCorrectAnswer(t *testing.T) {
	svc := newTestService(t)
	test, err := svc.Create(CreateTestRequest{Title: "Go basics", Topic: "go", CreatorID: uuid.New()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.AddQuestion(AddQuestionRequest{
		TestID:  test.ID,
		Text:    "Trick question",
		Answers: []AnswerInput{{Text: "Wrong"}, {Text: "Also wrong"}},
	})
	if !errors.Is(err, domain.ErrNoCorrectAnswer) {
		t.Fatalf("expected ErrNoCorrectAnswer, got %v", err)
	}

	stored, _ := svc.Get(test.ID)
	if len(stored.Questions) != 0 {
		t.Fatalf("rejected question must not be persisted")
	}
}

func TestAddQuestionUnknownTest(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.AddQuestion(AddQuestionRequest{
		TestID:  uuid.New(),
		Text:    "Where am I?",
		Answers: []AnswerInput{{Text: "Here", Correct: true}},
	})
	if !errors.Is(err, domain.ErrTestNotFound) {
		t.Fatalf("expected ErrTestNotFound, got %v", err)
	}
}

func TestDeleteRemovesTest(t *testing.T) {
	svc := newTestService(t)
	test, err := svc.Create(CreateTestRequest{Title: "Go basics", Topic: "go", CreatorID: uuid.New()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(test.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(test.ID); !errors.Is(err, domain.ErrTestNotFound) {
		t.Fatalf("expected ErrTestNotFound after delete, got %v", err)
	}
}
