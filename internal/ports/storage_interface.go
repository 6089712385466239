package ports

import (
	"context"
	"io"
)

// FileStorage : постоянное хранилище файлов (локальный диск или S3)
type FileStorage interface {
	Save(ctx context.Context, name string, src io.Reader, size int64) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
}
