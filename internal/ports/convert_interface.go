package ports

import "context"

// Converter : четыре конвертации документов; каждая возвращает путь к
// результату либо непрозрачную ошибку (ErrConversionFailed/ErrConversionTimeout),
// все временные файлы удаляются на любом пути выхода
type Converter interface {
	PDFToWord(ctx context.Context, inputPath string) (string, error)
	WordToPDF(ctx context.Context, inputPath string) (string, error)
	EmbedQRInWord(ctx context.Context, inputPath string, qrPath string) (string, error)
	EmbedQRInPDF(ctx context.Context, inputPath string, qrPath string) (string, error)
}
