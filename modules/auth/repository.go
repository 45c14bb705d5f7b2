package auth

import (
	"context"
	"errors"

	"github.com/example/task-manager/domain/apperr"
	"github.com/example/task-manager/domain/user"
	"gorm.io/gorm"
)

// UserRepository handles user persistence using GORM.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Create inserts a new user. A unique-constraint violation on username
// is reported as apperr.ErrDuplicateUsername.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	result := r.db.WithContext(ctx).Create(u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return apperr.ErrDuplicateUsername
		}
		return apperr.Persistence("create user", result.Error)
	}
	return nil
}

// FindByID finds a user by ID.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	return r.first(ctx, "id", id)
}

// FindByUsername finds a user by username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.first(ctx, "username", username)
}

func (r *UserRepository) first(ctx context.Context, column string, value any) (*user.User, error) {
	var u user.User
	result := r.db.WithContext(ctx).Where(column+" = ?", value).Take(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, apperr.Persistence("find user by "+column, result.Error)
	}
	return &u, nil
}

// UsernameExists checks if a user with the given username exists.
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&user.User{}).Where("username = ?", username).Count(&count)
	if result.Error != nil {
		return false, apperr.Persistence("check username", result.Error)
	}
	return count > 0, nil
}
