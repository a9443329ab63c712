package app

import (
	"time"

	"github.com/google/uuid"

	"tester-quiz-service/internal/domain"
)

// TestResolver is the slice of the catalog the session engine needs.
type TestResolver interface {
	FindByID(id uuid.UUID) (domain.Test, bool)
}

// SessionEngine walks one user through one test under a deadline. The engine
// is stateless across calls: the caller holds the TestProgress value (and the
// deadline) between Start and each Advance, and exactly one caller owns a
// progress value at a time.
type SessionEngine struct {
	tests    TestResolver
	duration time.Duration
	clock    func() time.Time
}

// NewSessionEngine builds an engine handing out sessions of the given
// duration.
func NewSessionEngine(tests TestResolver, duration time.Duration) *SessionEngine {
	return NewSessionEngineWithClock(tests, duration, time.Now)
}

// NewSessionEngineWithClock allows deterministic deadlines in tests.
func NewSessionEngineWithClock(tests TestResolver, duration time.Duration, now func() time.Time) *SessionEngine {
	return &SessionEngine{tests: tests, duration: duration, clock: now}
}

// Start begins a session on the given test: it returns progress positioned
// at question 1 holding an in-progress result (score unset), plus the
// deadline the caller must persist and check before every Advance.
func (e *SessionEngine) Start(testID, userID uuid.UUID) (domain.TestProgress, time.Time, error) {
	test, ok := e.tests.FindByID(testID)
	if !ok {
		return domain.TestProgress{}, time.Time{}, domain.ErrTestNotFound
	}
	if len(test.Questions) == 0 {
		return domain.TestProgress{}, time.Time{}, domain.ErrEmptyTest
	}
	first, ok := test.QuestionByNumber(1)
	if !ok {
		return domain.TestProgress{}, time.Time{}, domain.ErrQuestionNotFound
	}

	now := e.clock()
	progress := domain.TestProgress{
		Result: domain.Result{
			ID:        uuid.New(),
			UserID:    userID,
			TestID:    test.ID,
			TestTitle: test.Title,
			Date:      now,
		},
		CurrentQuestion: first,
	}
	return progress, now.Add(e.duration), nil
}

// IsExpired reports whether the session deadline has passed. The deadline is
// cooperative: callers must check it before every Advance and refuse to
// advance an expired session.
func (e *SessionEngine) IsExpired(deadline time.Time) bool {
	return e.clock().After(deadline)
}

// Advance records the submitted answers against the current question and
// moves to the next one. Submitted ids that do not belong to the current
// question are dropped, which tolerates stale or forged ids. On the last
// question the result is scored and finalized and progress comes back with
// Finished set and no current question; persisting the result is the
// caller's job.
func (e *SessionEngine) Advance(progress domain.TestProgress, submittedAnswerIDs []uuid.UUID) (domain.TestProgress, error) {
	if len(submittedAnswerIDs) == 0 {
		return progress, domain.ErrEmptySubmission
	}
	test, ok := e.tests.FindByID(progress.Result.TestID)
	if !ok {
		return progress, domain.ErrTestNotFound
	}

	current := progress.CurrentQuestion
	seen := make(map[uuid.UUID]struct{}, len(submittedAnswerIDs))
	selected := make([]domain.Answer, 0, len(submittedAnswerIDs))
	for _, id := range submittedAnswerIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		for _, a := range current.Answers {
			if a.ID == id {
				selected = append(selected, a)
				break
			}
		}
	}

	// Copy before appending: the caller still holds the previous progress
	// value and its slice must not be aliased.
	answered := make([]domain.AnsweredQuestion, len(progress.Result.AnsweredQuestions), len(progress.Result.AnsweredQuestions)+1)
	copy(answered, progress.Result.AnsweredQuestions)
	progress.Result.AnsweredQuestions = append(answered, domain.AnsweredQuestion{
		Question:        current,
		SelectedAnswers: selected,
	})
	progress.SubmittedAnswerIDs = submittedAnswerIDs

	if next, ok := test.QuestionByNumber(current.QuestionNumber + 1); ok {
		progress.CurrentQuestion = next
		return progress, nil
	}

	score := ScoreResult(progress.Result.AnsweredQuestions)
	progress.Result.Score = &score
	progress.CurrentQuestion = domain.Question{}
	progress.Finished = true
	return progress, nil
}
