package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/fajshah/faj-todo-phase2/domain/user"
	"github.com/fajshah/faj-todo-phase2/pkg/validate"
	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned for any failed login. Unknown email and
// wrong password produce the same error so accounts cannot be enumerated.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService handles authentication business logic.
type AuthService struct {
	repo   *UserRepository
	hasher *PasswordHasher
	jwt    *JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *UserRepository, hasher *PasswordHasher, jwt *JWTManager) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		jwt:    jwt,
	}
}

// Register creates a new user account and returns the user plus an issued token.
func (s *AuthService) Register(_ context.Context, username, email, password string) (*domain.User, string, error) {
	if err := validate.Registration(username, email, password); err != nil {
		return nil, "", err
	}

	exists, err := s.repo.Exists(username, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check user existence: %w", err)
	}
	if exists {
		return nil, "", ErrUserExists
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.jwt.Generate(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and returns the user plus an issued token.
func (s *AuthService) Login(_ context.Context, email, password string) (*domain.User, string, error) {
	if err := validate.Login(email, password); err != nil {
		return nil, "", err
	}

	user, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.Generate(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// TokenTTL returns the lifetime of issued tokens in seconds, surfaced to
// clients as expires_in alongside every issued token.
func (s *AuthService) TokenTTL() int64 {
	return s.jwt.TokenDuration()
}

// ValidateToken validates a bearer token and returns the identity it carries.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*domain.Claims, error) {
	claims, err := s.jwt.Validate(token)
	if err != nil {
		return nil, err
	}

	return &domain.Claims{
		UserID:   claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
	}, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(_ context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(userID)
}
