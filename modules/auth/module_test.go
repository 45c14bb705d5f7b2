package auth

import (
	"context"
	"testing"

	"github.com/example/task-manager/domain/apperr"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(_ string, _ ...any) {}
func (m *mockLogger) Info(_ string, _ ...any)  {}
func (m *mockLogger) Warn(_ string, _ ...any)  {}
func (m *mockLogger) Error(_ string, _ ...any) {}
func (m *mockLogger) With(_ ...any) types.Logger {
	return m
}
func (m *mockLogger) WithModule(_ string) types.Logger {
	return m
}
func (m *mockLogger) WithError(_ error) types.Logger {
	return m
}

func newStartedModule(t *testing.T) *AuthModule {
	t.Helper()
	m := NewModule(setupTestDB(t), Options{BcryptCost: bcrypt.MinCost, JWT: testJWTConfig()}, &mockLogger{})
	require.NoError(t, m.Start(context.Background()))
	t.Cleanup(func() { _ = m.Stop(context.Background()) })
	return m
}

func TestModule_StartWithoutDatabase(t *testing.T) {
	m := NewModule(nil, Options{}, &mockLogger{})
	assert.Equal(t, "auth", m.Name())
	assert.Error(t, m.Start(context.Background()))
	assert.False(t, m.Health(context.Background()).Healthy)
}

func TestModule_Health(t *testing.T) {
	m := newStartedModule(t)
	assert.True(t, m.Health(context.Background()).Healthy)
}

func TestModule_RegisterAndLoginHandlers(t *testing.T) {
	m := newStartedModule(t)
	ctx := context.Background()

	reg, err := m.handleRegister(ctx, RegisterRequest{Username: "frank", Password: "pw"}, nil)
	require.NoError(t, err)
	require.True(t, reg.Success)
	assert.Positive(t, reg.ID)

	dup, err := m.handleRegister(ctx, RegisterRequest{Username: "frank", Password: "other"}, nil)
	require.NoError(t, err)
	assert.False(t, dup.Success)
	assert.Equal(t, apperr.CodeDuplicateUsername, dup.Code)
	assert.ErrorIs(t, dup.Err(), apperr.ErrDuplicateUsername)

	login, err := m.handleLogin(ctx, LoginRequest{Username: "frank", Password: "pw"}, nil)
	require.NoError(t, err)
	require.True(t, login.Success)
	assert.Equal(t, reg.ID, login.UserID)
	assert.NotEmpty(t, login.AccessToken)

	bad, err := m.handleLogin(ctx, LoginRequest{Username: "frank", Password: "nope"}, nil)
	require.NoError(t, err)
	assert.Equal(t, apperr.CodeInvalidCredentials, bad.Code)

	missing, err := m.handleLogin(ctx, LoginRequest{Username: "ghost", Password: "pw"}, nil)
	require.NoError(t, err)
	assert.Equal(t, apperr.CodeUserNotFound, missing.Code)

	valid, err := m.handleValidateToken(ctx, ValidateTokenRequest{Token: login.AccessToken}, nil)
	require.NoError(t, err)
	assert.True(t, valid.Valid)
	assert.Equal(t, "frank", valid.Username)

	invalid, err := m.handleValidateToken(ctx, ValidateTokenRequest{Token: login.RefreshToken}, nil)
	require.NoError(t, err)
	assert.False(t, invalid.Valid)
	assert.Equal(t, "invalid token", invalid.Error)

	refreshed, err := m.handleRefresh(ctx, RefreshRequest{RefreshToken: login.RefreshToken}, nil)
	require.NoError(t, err)
	assert.True(t, refreshed.Success)

	got, err := m.handleGetUser(ctx, GetUserRequest{UserID: reg.ID}, nil)
	require.NoError(t, err)
	assert.Equal(t, "frank", got.Username)

	unknown, err := m.handleGetUser(ctx, GetUserRequest{UserID: reg.ID + 100}, nil)
	require.NoError(t, err)
	assert.Equal(t, apperr.CodeUserNotFound, unknown.Code)
}
