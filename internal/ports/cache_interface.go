package ports

import "context"

// CacheRepository : Redis слой для байтов раздаваемых файлов
type CacheRepository interface {
	SetFile(ctx context.Context, name string, data []byte) error
	GetFile(ctx context.Context, name string) ([]byte, error)
	DeleteFile(ctx context.Context, name string) error
}
