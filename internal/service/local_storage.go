package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/SaidjonAlixon/qr-kodbot/internal/util"
)

// LocalStorage : хранилище на локальном диске, дефолтный backend
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, util.LogError("[LocalStorage] не удалось создать директорию", err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) Save(ctx context.Context, name string, src io.Reader, size int64) error {
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return util.LogError("[LocalStorage] не удалось создать файл", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return util.LogError("[LocalStorage] ошибка записи файла", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return util.LogError("[LocalStorage] ошибка записи файла", err)
	}
	return nil
}

func (s *LocalStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("[LocalStorage] файл не найден: %w", err)
	}
	return f, nil
}

func (s *LocalStorage) Delete(ctx context.Context, name string) error {
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		return util.LogError("[LocalStorage] не удалось удалить файл", err)
	}
	return nil
}
