package identity

import (
	"errors"
	"fmt"

	"github.com/branchapp/branch/internal/auth"
	"github.com/branchapp/branch/internal/models"
	"github.com/branchapp/branch/internal/store"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials deliberately covers both "no such user" and
	// "wrong password" so login failures cannot enumerate usernames.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

const bcryptCost = 10

type Service struct {
	store  store.Store
	tokens *auth.Manager
}

func New(s store.Store, tokens *auth.Manager) *Service {
	return &Service{store: s, tokens: tokens}
}

func (s *Service) Register(username, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.store.CreateUser(user); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

// Authenticate verifies the credentials and issues a session token.
func (s *Service) Authenticate(username, password string) (*models.User, string, error) {
	user, err := s.store.GetUserByUsername(username)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}
