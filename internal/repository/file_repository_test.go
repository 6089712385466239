package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaidjonAlixon/qr-kodbot/internal/model"
	"github.com/SaidjonAlixon/qr-kodbot/internal/repository"
)

func TestFileRepository_Create(t *testing.T) {
	ctx := context.Background()

	record := &model.FileRecord{
		UserID:      42,
		FileName:    "hisobot.pdf",
		FilePath:    "3f2a6c8e-1d2b-4f5a-9c0d-7e8f6a5b4c3d.pdf",
		FileURL:     "https://example.org/files/3f2a6c8e-1d2b-4f5a-9c0d-7e8f6a5b4c3d.pdf",
		FileType:    "pdf",
		FileSize:    1024,
		ServiceUsed: model.ServiceFileUpload,
	}

	tests := []struct {
		name        string
		execErr     error
		expectedID  int64
		expectError bool
	}{
		{name: "success", expectedID: 7},
		{name: "db error", execErr: errors.New("db error"), expectError: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDatabase(t)
			repo := repository.NewFileRepository(db)

			exec := mock.ExpectExec("INSERT INTO files").
				WithArgs(
					record.UserID,
					record.FileName,
					record.FilePath,
					record.FileURL,
					record.FileType,
					record.FileSize,
					record.ServiceUsed,
				)
			if tt.execErr != nil {
				exec.WillReturnError(tt.execErr)
			} else {
				exec.WillReturnResult(sqlmock.NewResult(tt.expectedID, 1))
			}

			id, err := repo.Create(ctx, record)

			if tt.expectError {
				assert.Error(t, err)
				assert.Zero(t, id)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, id)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFileRepository_ListAll(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewFileRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "file_name", "file_path", "file_url", "file_type",
		"file_size", "service_used", "uploaded_at", "username", "full_name",
	}).
		AddRow(int64(2), int64(42), "taqdimot.docx", "b.docx", "https://example.org/files/b.docx",
			"docx", int64(2048), model.ServicePDFToWord, now, "saidjon", "Saidjon A").
		AddRow(int64(1), int64(42), "hisobot.pdf", "a.pdf", "https://example.org/files/a.pdf",
			"pdf", int64(1024), model.ServiceFileUpload, now.Add(-time.Hour), "saidjon", "Saidjon A")
	mock.ExpectQuery("JOIN users u ON f.user_id = u.user_id").WillReturnRows(rows)

	files, err := repo.ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "taqdimot.docx", files[0].FileName)
	assert.Equal(t, model.ServicePDFToWord, files[0].ServiceUsed)
	assert.Equal(t, "saidjon", files[0].Username)
	assert.Equal(t, "hisobot.pdf", files[1].FileName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFileRepository_Stats(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewFileRepository(db)

	rows := sqlmock.NewRows([]string{"total_users", "allowed_users", "total_files", "total_size"}).
		AddRow(10, 4, 25, int64(52428800))
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	stats, err := repo.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 10, stats.TotalUsers)
	assert.Equal(t, 4, stats.AllowedUsers)
	assert.Equal(t, 25, stats.TotalFiles)
	assert.Equal(t, int64(52428800), stats.TotalSize)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// пустая база отдаёт нулевую сумму, а не NULL
func TestFileRepository_StatsEmpty(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewFileRepository(db)

	rows := sqlmock.NewRows([]string{"total_users", "allowed_users", "total_files", "total_size"}).
		AddRow(0, 0, 0, int64(0))
	mock.ExpectQuery("COALESCE").WillReturnRows(rows)

	stats, err := repo.Stats(context.Background())

	require.NoError(t, err)
	assert.Zero(t, stats.TotalSize)
	assert.NoError(t, mock.ExpectationsWereMet())
}
