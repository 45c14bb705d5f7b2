package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/task-manager/database"
	"github.com/example/task-manager/domain/apperr"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"gorm.io/gorm"
)

// Options configures the auth module.
type Options struct {
	BcryptCost int
	JWT        JWTConfig
}

// AuthModule is the identity store: it owns the users table and issues
// session tokens.
type AuthModule struct {
	db      *gorm.DB
	opts    Options
	service *AuthService
	logger  types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*AuthModule)(nil)
var _ mono.ServiceProviderModule = (*AuthModule)(nil)
var _ mono.HealthCheckableModule = (*AuthModule)(nil)

// NewModule creates a new AuthModule backed by db.
func NewModule(db *gorm.DB, opts Options, logger types.Logger) *AuthModule {
	return &AuthModule{
		db:     db,
		opts:   opts,
		logger: logger.WithModule("auth"),
	}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// Start wires the repository, hasher and token manager.
func (m *AuthModule) Start(_ context.Context) error {
	if m.db == nil {
		return fmt.Errorf("auth: database not configured")
	}

	hasher := NewPasswordHasher(m.opts.BcryptCost)
	m.service = NewAuthService(NewUserRepository(m.db), hasher, NewJWTManager(m.opts.JWT))

	m.logger.Info("Auth module started", "bcrypt_cost", hasher.Cost(), "issuer", m.opts.JWT.Issuer)
	return nil
}

// Stop shuts down the module. The database is owned by the caller.
func (m *AuthModule) Stop(_ context.Context) error {
	m.logger.Info("Auth module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *AuthModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}
	if err := database.Ping(ctx, m.db); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "register", json.Unmarshal, json.Marshal, m.handleRegister,
	); err != nil {
		return fmt.Errorf("failed to register register service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "login", json.Unmarshal, json.Marshal, m.handleLogin,
	); err != nil {
		return fmt.Errorf("failed to register login service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "refresh-token", json.Unmarshal, json.Marshal, m.handleRefresh,
	); err != nil {
		return fmt.Errorf("failed to register refresh-token service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "validate-token", json.Unmarshal, json.Marshal, m.handleValidateToken,
	); err != nil {
		return fmt.Errorf("failed to register validate-token service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-user", json.Unmarshal, json.Marshal, m.handleGetUser,
	); err != nil {
		return fmt.Errorf("failed to register get-user service: %w", err)
	}

	m.logger.Info("Registered auth services",
		"services", []string{"register", "login", "refresh-token", "validate-token", "get-user"})
	return nil
}

// Store failures are reported in the Result, so handlers only return an
// error for transport-level problems.

func (m *AuthModule) handleRegister(ctx context.Context, req RegisterRequest, _ *mono.Msg) (RegisterResponse, error) {
	u, err := m.service.Register(ctx, req.Username, req.Password)
	if err != nil {
		m.logFailure("register", err, "username", req.Username)
		return RegisterResponse{Result: apperr.ResultOf(err, "")}, nil
	}

	m.logger.Info("User registered", "user_id", u.ID, "username", u.Username)
	return RegisterResponse{
		Result:    apperr.OK("user registered"),
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}, nil
}

func (m *AuthModule) handleLogin(ctx context.Context, req LoginRequest, _ *mono.Msg) (LoginResponse, error) {
	session, tokens, err := m.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		m.logFailure("login", err, "username", req.Username)
		return LoginResponse{Result: apperr.ResultOf(err, "")}, nil
	}

	return LoginResponse{
		Result:       apperr.OK("login successful"),
		UserID:       session.UserID,
		Username:     session.Username,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		TokenType:    tokens.TokenType,
	}, nil
}

func (m *AuthModule) handleRefresh(ctx context.Context, req RefreshRequest, _ *mono.Msg) (RefreshResponse, error) {
	tokens, err := m.service.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		m.logFailure("refresh", err)
		return RefreshResponse{Result: apperr.ResultOf(err, "")}, nil
	}

	return RefreshResponse{
		Result:       apperr.OK("tokens refreshed"),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		TokenType:    tokens.TokenType,
	}, nil
}

func (m *AuthModule) handleValidateToken(ctx context.Context, req ValidateTokenRequest, _ *mono.Msg) (ValidateTokenResponse, error) {
	session, err := m.service.ValidateToken(ctx, req.Token)
	if err != nil {
		errMsg := "invalid token"
		if errors.Is(err, ErrExpiredToken) {
			errMsg = "token expired"
		}
		return ValidateTokenResponse{Valid: false, Error: errMsg}, nil
	}

	return ValidateTokenResponse{
		Valid:    true,
		UserID:   session.UserID,
		Username: session.Username,
	}, nil
}

func (m *AuthModule) handleGetUser(ctx context.Context, req GetUserRequest, _ *mono.Msg) (GetUserResponse, error) {
	u, err := m.service.GetUser(ctx, req.UserID)
	if err != nil {
		m.logFailure("get-user", err, "user_id", req.UserID)
		return GetUserResponse{Result: apperr.ResultOf(err, "")}, nil
	}

	return GetUserResponse{
		Result:    apperr.OK("user found"),
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}, nil
}

// logFailure logs store failures at error level and expected rejections at debug.
func (m *AuthModule) logFailure(op string, err error, args ...any) {
	args = append([]any{"op", op, "code", apperr.CodeOf(err)}, args...)
	if errors.Is(err, apperr.ErrPersistence) || apperr.CodeOf(err) == apperr.CodeInternal {
		m.logger.WithError(err).Error("Auth operation failed", args...)
		return
	}
	m.logger.Debug("Auth request rejected", args...)
}
