package api

import (
	"context"
	"errors"

	"github.com/example/task-manager/domain/task"
	"github.com/example/task-manager/domain/user"
	"github.com/example/task-manager/modules/activity"
	"github.com/go-monolith/mono/pkg/types"
)

var errNotImplemented = errors.New("not implemented")

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

// mockAuthPort implements auth.AuthPort for testing
type mockAuthPort struct {
	registerFunc      func(ctx context.Context, username, password string) (*user.User, error)
	loginFunc         func(ctx context.Context, username, password string) (user.Session, *user.TokenPair, error)
	refreshFunc       func(ctx context.Context, token string) (*user.TokenPair, error)
	validateTokenFunc func(ctx context.Context, token string) (user.Session, error)
	getUserFunc       func(ctx context.Context, userID int64) (*user.User, error)
}

func (m *mockAuthPort) Register(ctx context.Context, username, password string) (*user.User, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, username, password)
	}
	return nil, errNotImplemented
}

func (m *mockAuthPort) Login(ctx context.Context, username, password string) (user.Session, *user.TokenPair, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, username, password)
	}
	return user.Session{}, nil, errNotImplemented
}

func (m *mockAuthPort) Refresh(ctx context.Context, token string) (*user.TokenPair, error) {
	if m.refreshFunc != nil {
		return m.refreshFunc(ctx, token)
	}
	return nil, errNotImplemented
}

func (m *mockAuthPort) ValidateToken(ctx context.Context, token string) (user.Session, error) {
	if m.validateTokenFunc != nil {
		return m.validateTokenFunc(ctx, token)
	}
	return user.Session{}, errNotImplemented
}

func (m *mockAuthPort) GetUser(ctx context.Context, userID int64) (*user.User, error) {
	if m.getUserFunc != nil {
		return m.getUserFunc(ctx, userID)
	}
	return nil, errNotImplemented
}

// mockTaskPort implements task.TaskPort for testing
type mockTaskPort struct {
	addFunc        func(ctx context.Context, userID int64, in task.NewTask) (*task.Task, error)
	listFunc       func(ctx context.Context, userID int64, f task.Filter) ([]task.Task, error)
	getFunc        func(ctx context.Context, taskID, userID int64) (*task.Task, bool, error)
	updateFunc     func(ctx context.Context, taskID, userID int64, c task.Changes) error
	deleteFunc     func(ctx context.Context, taskID, userID int64) error
	categoriesFunc func(ctx context.Context, userID int64) ([]string, error)
	statsFunc      func(ctx context.Context, userID int64) (*task.Stats, error)
}

func (m *mockTaskPort) Add(ctx context.Context, userID int64, in task.NewTask) (*task.Task, error) {
	if m.addFunc != nil {
		return m.addFunc(ctx, userID, in)
	}
	return nil, errNotImplemented
}

func (m *mockTaskPort) List(ctx context.Context, userID int64, f task.Filter) ([]task.Task, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, f)
	}
	return nil, errNotImplemented
}

func (m *mockTaskPort) Get(ctx context.Context, taskID, userID int64) (*task.Task, bool, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, taskID, userID)
	}
	return nil, false, errNotImplemented
}

func (m *mockTaskPort) Update(ctx context.Context, taskID, userID int64, c task.Changes) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, taskID, userID, c)
	}
	return errNotImplemented
}

func (m *mockTaskPort) Delete(ctx context.Context, taskID, userID int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, taskID, userID)
	}
	return errNotImplemented
}

func (m *mockTaskPort) Categories(ctx context.Context, userID int64) ([]string, error) {
	if m.categoriesFunc != nil {
		return m.categoriesFunc(ctx, userID)
	}
	return nil, errNotImplemented
}

func (m *mockTaskPort) Stats(ctx context.Context, userID int64) (*task.Stats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx, userID)
	}
	return nil, errNotImplemented
}

// mockActivityPort implements activity.ActivityPort for testing
type mockActivityPort struct {
	listFunc func(ctx context.Context, userID int64, limit int) ([]activity.Entry, error)
}

func (m *mockActivityPort) List(ctx context.Context, userID int64, limit int) ([]activity.Entry, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, limit)
	}
	return nil, errNotImplemented
}

// validSession accepts the token "valid-token" for user 42.
func validSession(_ context.Context, token string) (user.Session, error) {
	if token != "valid-token" {
		return user.Session{}, errors.New("invalid token")
	}
	return user.Session{UserID: 42, Username: "alice"}, nil
}
