package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/example/task-manager/domain/apperr"
	"github.com/example/task-manager/domain/user"
)

// AuthService implements registration, login and session tokens.
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

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, username, password string) (*user.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperr.Validation("username is required")
	}
	if password == "" {
		return nil, apperr.Validation("password is required")
	}
	// Checked before the lookup so an overlong password never reaches the store.
	if len(password) > MaxPasswordBytes {
		return nil, apperr.Validation("password must be at most %d bytes", MaxPasswordBytes)
	}

	exists, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.ErrDuplicateUsername
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		Username:     username,
		PasswordHash: hash,
	}
	// Create maps a concurrent duplicate insert to ErrDuplicateUsername.
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and returns the session identity with tokens.
func (s *AuthService) Login(ctx context.Context, username, password string) (user.Session, *user.TokenPair, error) {
	u, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return user.Session{}, nil, err
	}

	if err := s.hasher.Verify(password, u.PasswordHash); err != nil {
		return user.Session{}, nil, err
	}

	session := user.Session{UserID: u.ID, Username: u.Username}
	tokens, err := s.jwt.IssuePair(session)
	if err != nil {
		return user.Session{}, nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	return session, tokens, nil
}

// RefreshTokens rotates the token pair for a still-existing user.
func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*user.TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrUnauthorized, err)
	}

	u, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperr.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", apperr.ErrUnauthorized)
		}
		return nil, err
	}

	tokens, err := s.jwt.IssuePair(user.Session{UserID: u.ID, Username: u.Username})
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	return tokens, nil
}

// ValidateToken validates an access token and returns its session.
func (s *AuthService) ValidateToken(_ context.Context, token string) (user.Session, error) {
	claims, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return user.Session{}, err
	}
	return claims.Session(), nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, userID int64) (*user.User, error) {
	return s.repo.FindByID(ctx, userID)
}
