package model

import "time"

// Метки сервиса: какой workflow породил запись о файле
const (
	ServiceFileUpload = "file_upload"
	ServicePDFToWord  = "pdf_to_word"
	ServiceWordToPDF  = "word_to_pdf"
	ServiceQRToWord   = "qr_to_word"
	ServiceQRToPDF    = "qr_to_pdf"
)

type FileRecord struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	FileName    string    `db:"file_name" json:"file_name"`
	FilePath    string    `db:"file_path" json:"file_path"`
	FileURL     string    `db:"file_url" json:"file_url"`
	FileType    string    `db:"file_type" json:"file_type"`
	FileSize    int64     `db:"file_size" json:"file_size"`
	ServiceUsed string    `db:"service_used" json:"service_used"`
	UploadedAt  time.Time `db:"uploaded_at" json:"uploaded_at"`
}

// FileWithOwner : запись о файле вместе с данными владельца (для админ-панели)
type FileWithOwner struct {
	FileRecord
	Username string `db:"username" json:"username"`
	FullName string `db:"full_name" json:"full_name"`
}

type Stats struct {
	TotalUsers   int   `db:"total_users" json:"total_users"`
	AllowedUsers int   `db:"allowed_users" json:"allowed_users"`
	TotalFiles   int   `db:"total_files" json:"total_files"`
	TotalSize    int64 `db:"total_size" json:"total_size"`
}
