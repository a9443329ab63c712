package app

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"tester-quiz-service/internal/domain"
	"tester-quiz-service/internal/infra/jsonfile"
)

// TestService covers test authoring: creating tests, appending questions
// with contiguous numbering, and deletion. Input DTOs are shape-validated
// before any semantic check runs.
type TestService struct {
	catalog  *jsonfile.TestCatalog
	validate *validator.Validate
}

// CreateTestRequest is the shape-validated authoring input.
type CreateTestRequest struct {
	Title     string    `validate:"required,max=100"`
	Topic     string    `validate:"required"`
	CreatorID uuid.UUID `validate:"required"`
}

// AnswerInput is one answer option of a new question.
type AnswerInput struct {
	Text    string `validate:"required"`
	Correct bool
}

// AddQuestionRequest appends one question to an existing test.
type AddQuestionRequest struct {
	TestID  uuid.UUID     `validate:"required"`
	Text    string        `validate:"required"`
	Answers []AnswerInput `validate:"required,min=1,dive"`
}

func NewTestService(catalog *jsonfile.TestCatalog) *TestService {
	return &TestService{catalog: catalog, validate: validator.New()}
}

// Create persists a new, question-less test under a unique title.
func (s *TestService) Create(req CreateTestRequest) (domain.Test, error) {
	if err := s.validate.Struct(req); err != nil {
		return domain.Test{}, err
	}
	if s.catalog.ExistsByTitle(req.Title) {
		return domain.Test{}, domain.ErrDuplicateTitle
	}
	test := domain.Test{
		ID:        uuid.New(),
		Title:     req.Title,
		Topic:     req.Topic,
		CreatorID: req.CreatorID,
	}
	if err := s.catalog.SaveUnique(test); err != nil {
		return domain.Test{}, err
	}
	return test, nil
}

// AddQuestion appends a question with the next question number. At least one
// answer must be flagged correct before anything is persisted.
func (s *TestService) AddQuestion(req AddQuestionRequest) (domain.Test, error) {
	if err := s.validate.Struct(req); err != nil {
		return domain.Test{}, err
	}
	test, ok := s.catalog.FindByID(req.TestID)
	if !ok {
		return domain.Test{}, domain.ErrTestNotFound
	}

	hasCorrect := false
	answers := make([]domain.Answer, 0, len(req.Answers))
	for _, in := range req.Answers {
		if in.Correct {
			hasCorrect = true
		}
		answers = append(answers, domain.Answer{ID: uuid.New(), Text: in.Text, Correct: in.Correct})
	}
	if !hasCorrect {
		return domain.Test{}, domain.ErrNoCorrectAnswer
	}

	test.Questions = append(test.Questions, domain.Question{
		ID:             uuid.New(),
		QuestionNumber: len(test.Questions) + 1,
		Text:           req.Text,
		Answers:        answers,
	})
	if err := s.catalog.SaveUnique(test); err != nil {
		return domain.Test{}, err
	}
	return test, nil
}

// Get resolves a test by id.
func (s *TestService) Get(id uuid.UUID) (domain.Test, error) {
	test, ok := s.catalog.FindByID(id)
	if !ok {
		return domain.Test{}, domain.ErrTestNotFound
	}
	return test, nil
}

// List returns all stored tests.
func (s *TestService) List() ([]domain.Test, error) {
	return s.catalog.FindAll()
}

// Delete removes a test and its audit snapshot.
func (s *TestService) Delete(id uuid.UUID) error {
	return s.catalog.DeleteByID(id)
}
