package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/example/task-manager/domain/user"
	"github.com/golang-jwt/jwt/v5"
)

func testJWTConfig() JWTConfig {
	return JWTConfig{
		SecretKey:            "test-secret-key",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 24 * time.Hour,
		Issuer:               "task-manager-test",
	}
}

func TestJWTManager_IssuePair(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())
	session := user.Session{UserID: 7, Username: "alice"}

	pair, err := manager.IssuePair(session)
	if err != nil {
		t.Fatalf("IssuePair() error = %v", err)
	}
	if pair.TokenType != "Bearer" {
		t.Errorf("TokenType = %q, want Bearer", pair.TokenType)
	}
	if pair.ExpiresIn != 900 {
		t.Errorf("ExpiresIn = %d, want 900", pair.ExpiresIn)
	}

	access, err := manager.ValidateAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}
	if access.Session() != session {
		t.Errorf("access session = %+v, want %+v", access.Session(), session)
	}
	if access.Subject != "7" {
		t.Errorf("Subject = %q, want 7", access.Subject)
	}

	refresh, err := manager.ValidateRefreshToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("ValidateRefreshToken() error = %v", err)
	}
	if refresh.Session() != session {
		t.Errorf("refresh session = %+v, want %+v", refresh.Session(), session)
	}
}

func TestJWTManager_RejectsWrongTokenType(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())
	pair, err := manager.IssuePair(user.Session{UserID: 1, Username: "bob"})
	if err != nil {
		t.Fatalf("IssuePair() error = %v", err)
	}

	if _, err := manager.ValidateAccessToken(pair.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("refresh token accepted as access token: err = %v", err)
	}
	if _, err := manager.ValidateRefreshToken(pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("access token accepted as refresh token: err = %v", err)
	}
}

func TestJWTManager_InvalidTokens(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	otherSecret := testJWTConfig()
	otherSecret.SecretKey = "another-secret"
	forged, _ := NewJWTManager(otherSecret).IssuePair(user.Session{UserID: 1, Username: "mallory"})

	otherIssuer := testJWTConfig()
	otherIssuer.Issuer = "someone-else"
	foreign, _ := NewJWTManager(otherIssuer).IssuePair(user.Session{UserID: 1, Username: "mallory"})

	none := jwt.NewWithClaims(jwt.SigningMethodNone, SessionClaims{UserID: 1, TokenType: tokenTypeAccess})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.token"},
		{name: "wrong secret", token: forged.AccessToken},
		{name: "wrong issuer", token: foreign.AccessToken},
		{name: "alg none", token: unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.ValidateAccessToken(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ValidateAccessToken() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	config := testJWTConfig()
	config.AccessTokenDuration = -time.Minute
	manager := NewJWTManager(config)

	pair, err := manager.IssuePair(user.Session{UserID: 3, Username: "carol"})
	if err != nil {
		t.Fatalf("IssuePair() error = %v", err)
	}

	if _, err := manager.ValidateAccessToken(pair.AccessToken); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("ValidateAccessToken() error = %v, want ErrExpiredToken", err)
	}
}
