package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTestNotFound indicates the referenced test does not exist.
	ErrTestNotFound = errors.New("test not found")
	// ErrUserNotFound indicates the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrQuestionNotFound indicates a question number could not be resolved.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrEmptyTest rejects starting a session on a test with no questions.
	ErrEmptyTest = errors.New("test has no questions")
	// ErrEmptySubmission rejects an advance call with no answer ids.
	ErrEmptySubmission = errors.New("no answers submitted")
	// ErrNoCorrectAnswer rejects persisting a question whose answer set has
	// no answer flagged correct.
	ErrNoCorrectAnswer = errors.New("question has no correct answer")
	// ErrResultNotFinalized rejects saving a result that is still in progress.
	ErrResultNotFinalized = errors.New("result is not finalized")
	// ErrDuplicateTitle is returned when a test title is already taken.
	ErrDuplicateTitle = errors.New("test title already exists")
	// ErrDuplicateUsername is returned when a username is already taken.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUserBlocked is returned while a lockout window is active.
	ErrUserBlocked = errors.New("user temporarily blocked")
	// ErrSessionExpired is surfaced when the session deadline has passed.
	ErrSessionExpired = errors.New("test session expired")
)

// DataAccessError reports an I/O failure against a backing store. Callers
// must treat it as non-retryable for the failing call.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access: %s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }

// NewDataAccessError wraps err with the store operation that failed.
func NewDataAccessError(op string, err error) error {
	return &DataAccessError{Op: op, Err: err}
}

// IsDataAccess reports whether err is (or wraps) a DataAccessError.
func IsDataAccess(err error) bool {
	var dae *DataAccessError
	return errors.As(err, &dae)
}
