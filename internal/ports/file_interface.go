package ports

import (
	"context"

	"github.com/SaidjonAlixon/qr-kodbot/internal/model"
)

// FileRepository : SQL слой таблицы files; записи только добавляются
type FileRepository interface {
	Create(ctx context.Context, record *model.FileRecord) (int64, error)
	ListAll(ctx context.Context) ([]model.FileWithOwner, error)
	Stats(ctx context.Context) (*model.Stats, error)
}

// UploadPlan : заранее выделенное имя хранения и публичный URL;
// нужен до конвертации, чтобы QR-код ссылался на итоговый файл
type UploadPlan struct {
	StorageName string
	URL         string
}

type UploadService interface {
	MaxFileSize() int64
	ValidateSize(size int64) error
	ValidateExtension(fileName string) error
	Plan(ext string) *UploadPlan
	QRCodePNG(url string) ([]byte, error)
	QRCodeFile(url string) (string, error)
	Commit(ctx context.Context, ownerID int64, originalName string, localPath string, plan *UploadPlan, serviceTag string) (*model.FileRecord, error)
}
