package app

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"tester-quiz-service/internal/domain"
	"tester-quiz-service/internal/infra/jsonfile"
)

// PasswordHasher is the hashing collaborator consumed by the login path.
type PasswordHasher interface {
	Encode(plain string) (string, error)
	Matches(plain, hash string) bool
}

// AuthService implements registration and login over the user directory,
// including the failed-login lockout.
type AuthService struct {
	users    *jsonfile.UserDirectory
	hasher   PasswordHasher
	validate *validator.Validate
}

// RegisterRequest is the shape-validated registration input.
type RegisterRequest struct {
	Username string      `validate:"required,min=3,max=50"`
	Password string      `validate:"required,min=6"`
	Role     domain.Role `validate:"omitempty,oneof=USER ADMIN"`
}

func NewAuthService(users *jsonfile.UserDirectory, hasher PasswordHasher) *AuthService {
	return &AuthService{users: users, hasher: hasher, validate: validator.New()}
}

// Register hashes the password and inserts the user. Username uniqueness is
// enforced atomically by the directory.
func (s *AuthService) Register(req RegisterRequest) (domain.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return domain.User{}, err
	}
	hash, err := s.hasher.Encode(req.Password)
	if err != nil {
		return domain.User{}, err
	}
	role := req.Role
	if role == "" {
		role = domain.RoleUser
	}
	user := domain.User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.TryAdd(user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Login authenticates a username/password pair. A blocked username is
// rejected before the password is even checked; a failed attempt feeds the
// lockout ledger and a successful one resets it.
func (s *AuthService) Login(username, password string) (domain.User, error) {
	if s.users.IsBlocked(username) {
		return domain.User{}, domain.ErrUserBlocked
	}
	user, ok := s.users.FindByUsername(username)
	if !ok {
		s.users.RecordFailedAttempt(username)
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if !s.hasher.Matches(password, user.PasswordHash) {
		s.users.RecordFailedAttempt(username)
		return domain.User{}, domain.ErrInvalidCredentials
	}
	s.users.ResetAttempts(username)
	return user, nil
}
