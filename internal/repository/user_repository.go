package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SaidjonAlixon/qr-kodbot/config"
	"github.com/SaidjonAlixon/qr-kodbot/internal/model"
	"github.com/SaidjonAlixon/qr-kodbot/internal/util"
)

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// Upsert : создаёт пользователя (по умолчанию не допущен) либо обновляет
// username/full_name; флаг is_allowed здесь не трогается никогда
func (r *UserRepository) Upsert(ctx context.Context, id int64, username string, fullName string) error {
	query := `
	INSERT INTO users (user_id, username, full_name)
	VALUES (?, ?, ?)
	ON CONFLICT(user_id) DO UPDATE SET
		username = excluded.username,
		full_name = excluded.full_name
	`

	_, err := r.DB.ExecContext(ctx, query, id, username, fullName)
	if err != nil {
		return util.LogError("[UserRepo] ошибка сохранения пользователя", err)
	}
	return nil
}

// FindByID : ищет пользователя по telegram id
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT user_id, username, full_name, is_allowed, created_at FROM users WHERE user_id = ?`
	var user model.User
	err := r.DB.GetContext(ctx, &user, query, id)
	if err != nil {
		return nil, util.LogError("[UserRepo] не удалось найти пользователя в БД", err)
	}
	return &user, nil
}

// IsAllowed : возвращает флаг из БД; неизвестный пользователь — false
func (r *UserRepository) IsAllowed(ctx context.Context, id int64) (bool, error) {
	var allowed bool
	query := `SELECT is_allowed FROM users WHERE user_id = ?`
	err := r.DB.GetContext(ctx, &allowed, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, util.LogError("[UserRepo] ошибка проверки доступа", err)
	}
	return allowed, nil
}

// SetPermission : выставляет флаг доступа
func (r *UserRepository) SetPermission(ctx context.Context, id int64, allowed bool) error {
	query := `UPDATE users SET is_allowed = ? WHERE user_id = ?`
	value := 0
	if allowed {
		value = 1
	}
	_, err := r.DB.ExecContext(ctx, query, value, id)
	if err != nil {
		return util.LogError("[UserRepo] не удалось обновить доступ пользователя", err)
	}
	return nil
}

// ListUsers : все пользователи, новые первыми
func (r *UserRepository) ListUsers(ctx context.Context) ([]*model.User, error) {
	query := `
	SELECT user_id, username, full_name, is_allowed, created_at
	FROM users
	ORDER BY created_at DESC
	`

	var users []*model.User
	err := r.DB.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, util.LogError("[UserRepo] не удалось получить список пользователей", err)
	}
	return users, nil
}
