package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/task-manager/domain/apperr"
	"github.com/example/task-manager/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthPort is what other modules use to reach the identity store.
type AuthPort interface {
	Register(ctx context.Context, username, password string) (*user.User, error)
	Login(ctx context.Context, username, password string) (user.Session, *user.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*user.TokenPair, error)
	ValidateToken(ctx context.Context, token string) (user.Session, error)
	GetUser(ctx context.Context, userID int64) (*user.User, error)
}

// AuthAdapter implements AuthPort using the service container.
type AuthAdapter struct {
	container mono.ServiceContainer
}

var _ AuthPort = (*AuthAdapter)(nil)

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	return &AuthAdapter{
		container: container,
	}
}

// call invokes a request-reply service on container with typed request and response.
func call[Req, Resp any](ctx context.Context, container mono.ServiceContainer, service string, req *Req, resp *Resp) error {
	if err := helper.CallRequestReplyService(
		ctx,
		container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return fmt.Errorf("%s request failed: %w", service, err)
	}
	return nil
}

// Register creates a user account.
func (a *AuthAdapter) Register(ctx context.Context, username, password string) (*user.User, error) {
	req := RegisterRequest{Username: username, Password: password}
	var resp RegisterResponse
	if err := call(ctx, a.container, "register", &req, &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return &user.User{ID: resp.ID, Username: resp.Username, CreatedAt: resp.CreatedAt}, nil
}

// Login verifies credentials and returns the session with its tokens.
func (a *AuthAdapter) Login(ctx context.Context, username, password string) (user.Session, *user.TokenPair, error) {
	req := LoginRequest{Username: username, Password: password}
	var resp LoginResponse
	if err := call(ctx, a.container, "login", &req, &resp); err != nil {
		return user.Session{}, nil, err
	}
	if err := resp.Err(); err != nil {
		return user.Session{}, nil, err
	}
	return user.Session{UserID: resp.UserID, Username: resp.Username}, &user.TokenPair{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		TokenType:    resp.TokenType,
	}, nil
}

// Refresh exchanges a refresh token for a new token pair.
func (a *AuthAdapter) Refresh(ctx context.Context, refreshToken string) (*user.TokenPair, error) {
	req := RefreshRequest{RefreshToken: refreshToken}
	var resp RefreshResponse
	if err := call(ctx, a.container, "refresh-token", &req, &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return &user.TokenPair{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		TokenType:    resp.TokenType,
	}, nil
}

// ValidateToken validates an access token and returns its session.
func (a *AuthAdapter) ValidateToken(ctx context.Context, token string) (user.Session, error) {
	req := ValidateTokenRequest{Token: token}
	var resp ValidateTokenResponse
	if err := call(ctx, a.container, "validate-token", &req, &resp); err != nil {
		return user.Session{}, err
	}
	if !resp.Valid {
		return user.Session{}, fmt.Errorf("%w: %s", apperr.ErrUnauthorized, resp.Error)
	}
	return user.Session{UserID: resp.UserID, Username: resp.Username}, nil
}

// GetUser retrieves a user by ID.
func (a *AuthAdapter) GetUser(ctx context.Context, userID int64) (*user.User, error) {
	req := GetUserRequest{UserID: userID}
	var resp GetUserResponse
	if err := call(ctx, a.container, "get-user", &req, &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return &user.User{ID: resp.ID, Username: resp.Username, CreatedAt: resp.CreatedAt}, nil
}
