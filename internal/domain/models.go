package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role distinguishes plain test takers from administrators.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is a registered account. The id never changes after registration;
// username uniqueness is enforced by the user directory at write time.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	Role         Role      `json:"role"`
}

// Answer is one selectable option of a question.
type Answer struct {
	ID      uuid.UUID `json:"id"`
	Text    string    `json:"text"`
	Correct bool      `json:"correct"`
}

// Question models an MCQ question. QuestionNumber is 1-based and contiguous
// within a test; the catalog assigns the next number on append.
type Question struct {
	ID             uuid.UUID `json:"id"`
	QuestionNumber int       `json:"questionNumber"`
	Text           string    `json:"text"`
	Answers        []Answer  `json:"answers"`
}

// CorrectAnswerIDs returns the ids of every answer flagged correct.
func (q Question) CorrectAnswerIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(q.Answers))
	for _, a := range q.Answers {
		if a.Correct {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// Test is an ordered collection of questions under a unique title.
type Test struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Topic     string     `json:"topic"`
	CreatorID uuid.UUID  `json:"creatorId"`
	Questions []Question `json:"questions"`
}

// QuestionByNumber looks up the question with the given 1-based number.
func (t Test) QuestionByNumber(n int) (Question, bool) {
	for _, q := range t.Questions {
		if q.QuestionNumber == n {
			return q, true
		}
	}
	return Question{}, false
}

// AnsweredQuestion snapshots one question together with the answers the
// user selected for it.
type AnsweredQuestion struct {
	Question        Question `json:"question"`
	SelectedAnswers []Answer `json:"selectedAnswers"`
}

// Result is one user's attempt at one test. Score stays nil while the
// attempt is in progress and is assigned exactly once on finalization;
// a finalized result is never mutated again.
type Result struct {
	ID                uuid.UUID          `json:"id"`
	UserID            uuid.UUID          `json:"userId"`
	TestID            uuid.UUID          `json:"testId"`
	TestTitle         string             `json:"testTitle"`
	Date              time.Time          `json:"date"`
	Score             *int               `json:"score"`
	AnsweredQuestions []AnsweredQuestion `json:"answeredQuestions"`
}

// TestProgress is the caller-held state of one test-taking session. It is
// never persisted standalone; the host layer stores it between engine calls
// and exactly one caller owns it at a time.
type TestProgress struct {
	Result             Result      `json:"result"`
	CurrentQuestion    Question    `json:"currentQuestion"`
	SubmittedAnswerIDs []uuid.UUID `json:"submittedAnswerIds"`
	Finished           bool        `json:"finished"`
}
