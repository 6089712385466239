package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaidjonAlixon/qr-kodbot/config"
	"github.com/SaidjonAlixon/qr-kodbot/internal/repository"
)

func newMockDatabase(t *testing.T) (*config.Database, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &config.Database{DB: sqlx.NewDb(db, "sqlite3")}, mock
}

func TestUserRepository_Upsert(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		execErr     error
		expectError bool
	}{
		{name: "success"},
		{name: "db error", execErr: errors.New("db error"), expectError: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDatabase(t)
			repo := repository.NewUserRepository(db)

			exec := mock.ExpectExec("INSERT INTO users").
				WithArgs(int64(42), "saidjon", "Saidjon A")
			if tt.execErr != nil {
				exec.WillReturnError(tt.execErr)
			} else {
				exec.WillReturnResult(sqlmock.NewResult(1, 1))
			}

			err := repo.Upsert(ctx, 42, "saidjon", "Saidjon A")

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// Upsert не должен трогать флаг доступа уже существующего пользователя
func TestUserRepository_UpsertKeepsPermission(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(db)

	mock.ExpectExec("ON CONFLICT\\(user_id\\) DO UPDATE SET").
		WithArgs(int64(7), "updated", "Updated Name").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), 7, "updated", "Updated Name")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByID(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(db)

	createdAt := time.Now()
	rows := sqlmock.NewRows([]string{"user_id", "username", "full_name", "is_allowed", "created_at"}).
		AddRow(int64(42), "saidjon", "Saidjon A", true, createdAt)
	mock.ExpectQuery("SELECT user_id, username, full_name, is_allowed, created_at FROM users").
		WithArgs(int64(42)).
		WillReturnRows(rows)

	user, err := repo.FindByID(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "saidjon", user.Username)
	assert.True(t, user.IsAllowed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_IsAllowed(t *testing.T) {
	tests := []struct {
		name        string
		rows        *sqlmock.Rows
		expected    bool
		expectError bool
	}{
		{
			name:     "allowed",
			rows:     sqlmock.NewRows([]string{"is_allowed"}).AddRow(true),
			expected: true,
		},
		{
			name:     "denied",
			rows:     sqlmock.NewRows([]string{"is_allowed"}).AddRow(false),
			expected: false,
		},
		{
			// неизвестный пользователь не ошибка, просто нет доступа
			name:     "unknown user",
			rows:     sqlmock.NewRows([]string{"is_allowed"}),
			expected: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDatabase(t)
			repo := repository.NewUserRepository(db)

			mock.ExpectQuery("SELECT is_allowed FROM users").
				WithArgs(int64(42)).
				WillReturnRows(tt.rows)

			allowed, err := repo.IsAllowed(context.Background(), 42)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, allowed)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_SetPermission(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(db)

	mock.ExpectExec("UPDATE users SET is_allowed").
		WithArgs(1, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetPermission(context.Background(), 42, true)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ListUsers(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"user_id", "username", "full_name", "is_allowed", "created_at"}).
		AddRow(int64(2), "second", "Second User", false, now).
		AddRow(int64(1), "first", "First User", true, now.Add(-time.Hour))
	mock.ExpectQuery("ORDER BY created_at DESC").WillReturnRows(rows)

	users, err := repo.ListUsers(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, int64(2), users[0].ID)
	assert.False(t, users[0].IsAllowed)
	assert.Equal(t, int64(1), users[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
