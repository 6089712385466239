package service

import (
	"context"
	"log"

	"github.com/SaidjonAlixon/qr-kodbot/internal/model"
	"github.com/SaidjonAlixon/qr-kodbot/internal/ports"
	"github.com/SaidjonAlixon/qr-kodbot/internal/util"
)

type PermissionService struct {
	userRepository ports.UserRepository
	adminID        int64
}

func NewPermissionService(userRepository ports.UserRepository, adminID int64) *PermissionService {
	return &PermissionService{
		userRepository: userRepository,
		adminID:        adminID,
	}
}

// EnsureUser : регистрирует личность пользователя при каждом обращении;
// флаг доступа при этом не меняется
func (s *PermissionService) EnsureUser(ctx context.Context, id int64, username string, fullName string) error {
	if err := s.userRepository.Upsert(ctx, id, username, fullName); err != nil {
		return util.LogError("[PermissionService] не удалось сохранить пользователя", err)
	}
	return nil
}

// IsAdmin : ноль означает «админ не настроен», доступ закрыт
func (s *PermissionService) IsAdmin(id int64) bool {
	return s.adminID != 0 && id == s.adminID
}

// IsAllowed : админ допущен всегда, независимо от флага в БД
func (s *PermissionService) IsAllowed(ctx context.Context, id int64) (bool, error) {
	if s.IsAdmin(id) {
		return true, nil
	}

	allowed, err := s.userRepository.IsAllowed(ctx, id)
	if err != nil {
		return false, util.LogError("[PermissionService] ошибка проверки доступа", err)
	}
	return allowed, nil
}

// SetPermission : идемпотентна; если значение не меняется, возвращает
// changed=false и вызывающий не шлёт уведомление пользователю
func (s *PermissionService) SetPermission(ctx context.Context, id int64, allowed bool) (bool, error) {
	user, err := s.userRepository.FindByID(ctx, id)
	if err != nil {
		return false, util.LogError("[PermissionService] пользователь не найден", err)
	}

	if user.IsAllowed == allowed {
		return false, nil
	}

	if err := s.userRepository.SetPermission(ctx, id, allowed); err != nil {
		return false, util.LogError("[PermissionService] не удалось изменить доступ", err)
	}

	log.Printf("[PermissionService] доступ пользователя %d изменён на %v", id, allowed)
	return true, nil
}

func (s *PermissionService) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepository.ListUsers(ctx)
	if err != nil {
		return nil, util.LogError("[PermissionService] не удалось получить пользователей", err)
	}
	return users, nil
}
