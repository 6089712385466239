package repository

import (
	"context"

	"github.com/SaidjonAlixon/qr-kodbot/config"
	"github.com/SaidjonAlixon/qr-kodbot/internal/model"
	"github.com/SaidjonAlixon/qr-kodbot/internal/util"
)

type FileRepository struct {
	*config.Database
}

func NewFileRepository(database *config.Database) *FileRepository {
	return &FileRepository{database}
}

// Create : добавляет запись о постоянном файле; записи никогда не
// обновляются и не дедуплицируются
func (r *FileRepository) Create(ctx context.Context, record *model.FileRecord) (int64, error) {
	query := `
	INSERT INTO files (user_id, file_name, file_path, file_url, file_type, file_size, service_used)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		record.UserID,
		record.FileName,
		record.FilePath,
		record.FileURL,
		record.FileType,
		record.FileSize,
		record.ServiceUsed,
	)
	if err != nil {
		return 0, util.LogError("[FileRepo] ошибка вставки записи о файле", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, util.LogError("[FileRepo] не удалось получить id записи", err)
	}
	return id, nil
}

// ListAll : все файлы вместе с владельцами, новые первыми
func (r *FileRepository) ListAll(ctx context.Context) ([]model.FileWithOwner, error) {
	query := `
	SELECT f.id, f.user_id, f.file_name, f.file_path, f.file_url, f.file_type,
	       f.file_size, f.service_used, f.uploaded_at, u.username, u.full_name
	FROM files f
	JOIN users u ON f.user_id = u.user_id
	ORDER BY f.uploaded_at DESC
	`

	files := []model.FileWithOwner{}
	err := r.DB.SelectContext(ctx, &files, query)
	if err != nil {
		return nil, util.LogError("[FileRepo] не удалось получить список файлов", err)
	}
	return files, nil
}

// Stats : агрегаты для админ-панели, считаются по запросу без кэша
func (r *FileRepository) Stats(ctx context.Context) (*model.Stats, error) {
	query := `
	SELECT
		(SELECT COUNT(*) FROM users) AS total_users,
		(SELECT COUNT(*) FROM users WHERE is_allowed = 1) AS allowed_users,
		(SELECT COUNT(*) FROM files) AS total_files,
		(SELECT COALESCE(SUM(file_size), 0) FROM files) AS total_size
	`

	var stats model.Stats
	err := r.DB.GetContext(ctx, &stats, query)
	if err != nil {
		return nil, util.LogError("[FileRepo] не удалось получить статистику", err)
	}
	return &stats, nil
}
