package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SaidjonAlixon/qr-kodbot/config"
	"github.com/SaidjonAlixon/qr-kodbot/internal/model"
	"github.com/SaidjonAlixon/qr-kodbot/internal/service"
)

type MockFileRepository struct{ mock.Mock }

func (m *MockFileRepository) Create(ctx context.Context, record *model.FileRecord) (int64, error) {
	args := m.Called(ctx, record)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFileRepository) ListAll(ctx context.Context) ([]model.FileWithOwner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FileWithOwner), args.Error(1)
}

func (m *MockFileRepository) Stats(ctx context.Context) (*model.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stats), args.Error(1)
}

// хранилище в памяти, чтобы не трогать диск в тестах
type memoryStorage struct {
	files map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{files: map[string][]byte{}}
}

func (s *memoryStorage) Save(ctx context.Context, name string, src io.Reader, size int64) error {
	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}
	s.files[name] = data
	return nil
}

func (s *memoryStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	data, ok := s.files[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memoryStorage) Delete(ctx context.Context, name string) error {
	delete(s.files, name)
	return nil
}

func newUploadService(t *testing.T, repo *MockFileRepository, storage *memoryStorage) *service.UploadService {
	t.Helper()

	cfg := &config.StorageConfig{
		UploadDir:         t.TempDir(),
		QRDir:             t.TempDir(),
		MaxFileSize:       20 << 20,
		AllowedExtensions: []string{"pdf", "docx", "doc", "jpg", "png", "txt"},
	}
	return service.NewUploadService(repo, storage, cfg, "https://example.org/")
}

func TestUploadService_ValidateSize(t *testing.T) {
	svc := newUploadService(t, new(MockFileRepository), newMemoryStorage())

	tests := []struct {
		name        string
		size        int64
		expectError bool
	}{
		{name: "small file", size: 1024},
		// файл ровно максимального размера ещё принимается
		{name: "exactly max", size: 20 << 20},
		{name: "one byte over", size: 20<<20 + 1, expectError: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidateSize(tt.size)
			if tt.expectError {
				assert.ErrorIs(t, err, service.ErrFileTooLarge)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUploadService_ValidateExtension(t *testing.T) {
	svc := newUploadService(t, new(MockFileRepository), newMemoryStorage())

	tests := []struct {
		name        string
		fileName    string
		expectError bool
	}{
		{name: "pdf", fileName: "hisobot.pdf"},
		{name: "uppercase extension", fileName: "HISOBOT.PDF"},
		{name: "executable", fileName: "virus.exe", expectError: true},
		{name: "no extension", fileName: "README", expectError: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidateExtension(tt.fileName)
			if tt.expectError {
				assert.ErrorIs(t, err, service.ErrExtensionNotAllowed)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUploadService_Plan(t *testing.T) {
	svc := newUploadService(t, new(MockFileRepository), newMemoryStorage())

	plan := svc.Plan(".PDF")

	// имя хранения не содержит пользовательского имени и нормализовано
	assert.True(t, strings.HasSuffix(plan.StorageName, ".pdf"), plan.StorageName)
	assert.Equal(t, "https://example.org/files/"+plan.StorageName, plan.URL)

	// каждый план получает уникальное имя
	other := svc.Plan("pdf")
	assert.NotEqual(t, plan.StorageName, other.StorageName)
}

func TestUploadService_QRCodePNG(t *testing.T) {
	svc := newUploadService(t, new(MockFileRepository), newMemoryStorage())

	png, err := svc.QRCodePNG("https://example.org/files/abc.pdf")

	require.NoError(t, err)
	require.NotEmpty(t, png)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestUploadService_QRCodeFile(t *testing.T) {
	svc := newUploadService(t, new(MockFileRepository), newMemoryStorage())

	path, err := svc.QRCodeFile("https://example.org/files/abc.pdf")
	require.NoError(t, err)
	defer os.Remove(path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.Equal(t, ".png", filepath.Ext(path))
}

func TestUploadService_Commit(t *testing.T) {
	ctx := context.Background()

	localPath := filepath.Join(t.TempDir(), "hisobot.pdf")
	content := []byte("%PDF-1.7 test content")
	require.NoError(t, os.WriteFile(localPath, content, 0o644))

	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockFileRepository)
		storage := newMemoryStorage()
		svc := newUploadService(t, mockRepo, storage)

		plan := svc.Plan("pdf")
		mockRepo.On("Create", ctx, mock.MatchedBy(func(r *model.FileRecord) bool {
			return r.UserID == 42 &&
				r.FileName == "hisobot.pdf" &&
				r.FilePath == plan.StorageName &&
				r.FileURL == plan.URL &&
				r.FileType == "pdf" &&
				r.FileSize == int64(len(content)) &&
				r.ServiceUsed == model.ServiceFileUpload
		})).Return(int64(7), nil)

		record, err := svc.Commit(ctx, 42, "hisobot.pdf", localPath, plan, model.ServiceFileUpload)

		require.NoError(t, err)
		assert.Equal(t, int64(7), record.ID)
		assert.Equal(t, content, storage.files[plan.StorageName])
		mockRepo.AssertExpectations(t)
	})

	t.Run("repository error keeps stored file", func(t *testing.T) {
		mockRepo := new(MockFileRepository)
		storage := newMemoryStorage()
		svc := newUploadService(t, mockRepo, storage)

		plan := svc.Plan("pdf")
		mockRepo.On("Create", ctx, mock.Anything).Return(int64(0), errors.New("db error"))

		record, err := svc.Commit(ctx, 42, "hisobot.pdf", localPath, plan, model.ServiceFileUpload)

		assert.Error(t, err)
		assert.Nil(t, record)
		// файл уже доступен по ссылке, его не удаляем
		assert.Contains(t, storage.files, plan.StorageName)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing local file", func(t *testing.T) {
		mockRepo := new(MockFileRepository)
		svc := newUploadService(t, mockRepo, newMemoryStorage())

		record, err := svc.Commit(ctx, 42, "yoq.pdf", filepath.Join(t.TempDir(), "yoq.pdf"), svc.Plan("pdf"), model.ServiceFileUpload)

		assert.Error(t, err)
		assert.Nil(t, record)
	})
}
