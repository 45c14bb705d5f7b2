package user

import (
	"time"
)

// User represents a registered account.
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null;type:text" json:"username"`
	PasswordHash string    `gorm:"column:password;not null;type:text" json:"-"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Session is the identity a client holds after logging in.
// It is rebuilt from the access token on every request and never persisted.
type Session struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// TokenPair represents access and refresh tokens.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}
