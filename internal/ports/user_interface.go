package ports

import (
	"context"

	"github.com/SaidjonAlixon/qr-kodbot/internal/model"
)

// UserRepository : SQL слой таблицы users
type UserRepository interface {
	Upsert(ctx context.Context, id int64, username string, fullName string) error
	FindByID(ctx context.Context, id int64) (*model.User, error)
	IsAllowed(ctx context.Context, id int64) (bool, error)
	SetPermission(ctx context.Context, id int64, allowed bool) error
	ListUsers(ctx context.Context) ([]*model.User, error)
}

// PermissionService : правила доступа поверх UserRepository;
// администратор всегда допущен независимо от флага в БД
type PermissionService interface {
	EnsureUser(ctx context.Context, id int64, username string, fullName string) error
	IsAllowed(ctx context.Context, id int64) (bool, error)
	IsAdmin(id int64) bool
	SetPermission(ctx context.Context, id int64, allowed bool) (changed bool, err error)
	ListUsers(ctx context.Context) ([]*model.User, error)
}
