package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/task-manager/config"
	"github.com/example/task-manager/domain/task"
	"github.com/example/task-manager/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) config.Database {
	t.Helper()
	return config.Database{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "nested", "tasks.db"),
	}
}

func TestOpenAndMigrate(t *testing.T) {
	cfg := openTestDB(t)

	db, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db))
	require.NoError(t, Ping(context.Background(), db))

	assert.True(t, db.Migrator().HasTable("users"))
	assert.True(t, db.Migrator().HasTable("tasks"))
	assert.True(t, db.Migrator().HasColumn(&user.User{}, "password"))
	assert.True(t, db.Migrator().HasColumn(&task.Task{}, "due_date"))
}

func TestMigrateIsRepeatable(t *testing.T) {
	db, err := Open(openTestDB(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestColumnDefaults(t *testing.T) {
	db, err := Open(openTestDB(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	require.NoError(t, Migrate(db))

	require.NoError(t, db.Exec("INSERT INTO users (username, password) VALUES (?, ?)", "alice", "hash").Error)
	require.NoError(t, db.Exec("INSERT INTO tasks (user_id, title) VALUES (?, ?)", 1, "raw insert").Error)

	var got task.Task
	require.NoError(t, db.First(&got).Error)
	assert.Equal(t, task.StatusNotStarted, got.Status)
	assert.Equal(t, task.PriorityMedium, got.Priority)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestForeignKeyEnforced(t *testing.T) {
	db, err := Open(openTestDB(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	require.NoError(t, Migrate(db))

	err = db.Create(&task.Task{UserID: 42, Title: "orphan"}).Error
	assert.Error(t, err)
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(config.Database{Driver: "oracle"})
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	dsn, err := sqliteDSN(":memory:")
	require.NoError(t, err)
	assert.Equal(t, ":memory:?_foreign_keys=on&_busy_timeout=5000", dsn)

	_, err = sqliteDSN("")
	assert.Error(t, err)
}
