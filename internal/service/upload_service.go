package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/SaidjonAlixon/qr-kodbot/config"
	"github.com/SaidjonAlixon/qr-kodbot/internal/model"
	"github.com/SaidjonAlixon/qr-kodbot/internal/ports"
	"github.com/SaidjonAlixon/qr-kodbot/internal/util"
)

var (
	ErrFileTooLarge        = errors.New("файл превышает максимальный размер")
	ErrExtensionNotAllowed = errors.New("недопустимое расширение файла")
)

// Размеры QR-изображений: крупный для ответа в чат, 72pt для встраивания
// в последнюю страницу документа
const (
	qrReplySize = 290
	qrEmbedSize = 72
)

type UploadService struct {
	fileRepository ports.FileRepository
	storage        ports.FileStorage
	baseURL        string
	qrDir          string
	maxFileSize    int64
	allowedExts    map[string]struct{}
}

func NewUploadService(
	fileRepository ports.FileRepository,
	storage ports.FileStorage,
	storageCfg *config.StorageConfig,
	baseURL string,
) *UploadService {
	exts := make(map[string]struct{}, len(storageCfg.AllowedExtensions))
	for _, ext := range storageCfg.AllowedExtensions {
		exts[strings.ToLower(ext)] = struct{}{}
	}

	return &UploadService{
		fileRepository: fileRepository,
		storage:        storage,
		baseURL:        strings.TrimRight(baseURL, "/"),
		qrDir:          storageCfg.QRDir,
		maxFileSize:    storageCfg.MaxFileSize,
		allowedExts:    exts,
	}
}

func (s *UploadService) MaxFileSize() int64 {
	return s.maxFileSize
}

// ValidateSize : файл ровно максимального размера ещё принимается
func (s *UploadService) ValidateSize(size int64) error {
	if size > s.maxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

func (s *UploadService) ValidateExtension(fileName string) error {
	ext := normalizeExt(filepath.Ext(fileName))
	if ext == "" {
		return ErrExtensionNotAllowed
	}
	if _, ok := s.allowedExts[ext]; !ok {
		return ErrExtensionNotAllowed
	}
	return nil
}

// Plan : выделяет случайное имя хранения (никогда не из имени пользователя)
// и публичный URL до того, как файл окажется в хранилище; это позволяет
// встроить QR со ссылкой на итоговый файл ещё до конвертации
func (s *UploadService) Plan(ext string) *ports.UploadPlan {
	name := uuid.New().String()
	if e := normalizeExt(ext); e != "" {
		name = name + "." + e
	}

	return &ports.UploadPlan{
		StorageName: name,
		URL:         fmt.Sprintf("%s/files/%s", s.baseURL, name),
	}
}

// QRCodePNG : кодирует URL в QR-изображение, уровень коррекции Low
func (s *UploadService) QRCodePNG(url string) ([]byte, error) {
	png, err := qrcode.Encode(url, qrcode.Low, qrReplySize)
	if err != nil {
		return nil, util.LogError("[UploadService] ошибка генерации QR-кода", err)
	}
	return png, nil
}

// QRCodeFile : временный PNG для встраивания в документ; удаление — на
// вызывающем
func (s *UploadService) QRCodeFile(url string) (string, error) {
	if err := os.MkdirAll(s.qrDir, 0o755); err != nil {
		return "", util.LogError("[UploadService] не удалось создать каталог QR-кодов", err)
	}

	path := filepath.Join(s.qrDir, fmt.Sprintf("qr-%s.png", uuid.New().String()))
	if err := qrcode.WriteFile(url, qrcode.Low, qrEmbedSize, path); err != nil {
		return "", util.LogError("[UploadService] ошибка записи QR-кода", err)
	}
	return path, nil
}

// Commit : переносит локальный файл в постоянное хранилище под заранее
// выделенным именем и добавляет запись в реестр. Если запись в БД не
// удалась, файл в хранилище не трогаем — он уже доступен по URL
func (s *UploadService) Commit(
	ctx context.Context,
	ownerID int64,
	originalName string,
	localPath string,
	plan *ports.UploadPlan,
	serviceTag string,
) (*model.FileRecord, error) {
	src, err := os.Open(localPath)
	if err != nil {
		return nil, util.LogError("[UploadService] не удалось открыть файл", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return nil, util.LogError("[UploadService] не удалось прочитать размер файла", err)
	}

	if err := s.storage.Save(ctx, plan.StorageName, src, info.Size()); err != nil {
		return nil, util.LogError("[UploadService] ошибка сохранения в хранилище", err)
	}

	record := &model.FileRecord{
		UserID:      ownerID,
		FileName:    originalName,
		FilePath:    plan.StorageName,
		FileURL:     plan.URL,
		FileType:    normalizeExt(filepath.Ext(plan.StorageName)),
		FileSize:    info.Size(),
		ServiceUsed: serviceTag,
		UploadedAt:  time.Now(),
	}

	id, err := s.fileRepository.Create(ctx, record)
	if err != nil {
		return nil, util.LogError("[UploadService] ошибка записи в реестр файлов", err)
	}
	record.ID = id

	log.Printf("[UploadService] файл %s сохранён как %s (%s)", originalName, plan.StorageName, serviceTag)
	return record, nil
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
