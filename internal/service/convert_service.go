package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	docx "github.com/fumiama/go-docx"
	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/SaidjonAlixon/qr-kodbot/config"
)

// Наружу уходят только эти две ошибки; детали конвертера остаются в логах
var (
	ErrConversionFailed  = errors.New("конвертация не удалась")
	ErrConversionTimeout = errors.New("превышено время конвертации")
)

const footerCaption = "Soliq.uz QR Fayl Xizmati | soliq.uz"

type ConvertService struct {
	sofficePath string
	timeout     time.Duration
}

func NewConvertService(cfg *config.ConvertConfig) *ConvertService {
	return &ConvertService{
		sofficePath: cfg.SofficePath,
		timeout:     time.Duration(cfg.TimeoutSec) * time.Second,
	}
}

// PDFToWord : конвертация через внешний движок, качество best-effort
func (s *ConvertService) PDFToWord(ctx context.Context, inputPath string) (string, error) {
	out, err := s.soffice(ctx, inputPath, "docx")
	if err != nil {
		log.Printf("[ConvertService] ошибка конвертации PDF в Word: %v", err)
		return "", ErrConversionFailed
	}
	return out, nil
}

// WordToPDF : таймаут логируется отдельно от прочих сбоев, но для
// пользователя оба выглядят одинаково
func (s *ConvertService) WordToPDF(ctx context.Context, inputPath string) (string, error) {
	out, err := s.soffice(ctx, inputPath, "pdf")
	if errors.Is(err, context.DeadlineExceeded) {
		log.Printf("[ConvertService] таймаут конвертации Word в PDF: %s", filepath.Base(inputPath))
		return "", ErrConversionTimeout
	}
	if err != nil {
		log.Printf("[ConvertService] ошибка конвертации Word в PDF: %v", err)
		return "", ErrConversionFailed
	}
	return out, nil
}

// EmbedQRInWord : добавляет QR-изображение отдельным абзацем с выравниванием
// вправо после последнего абзаца и подпись внизу; .doc сначала
// нормализуется в docx через тот же движок, промежуточный файл временный
func (s *ConvertService) EmbedQRInWord(ctx context.Context, inputPath string, qrPath string) (string, error) {
	work := inputPath
	if strings.EqualFold(filepath.Ext(inputPath), ".doc") {
		normalized, err := s.soffice(ctx, inputPath, "docx")
		if err != nil {
			log.Printf("[ConvertService] ошибка нормализации .doc: %v", err)
			return "", ErrConversionFailed
		}
		defer os.Remove(normalized)
		work = normalized
	}

	src, err := os.Open(work)
	if err != nil {
		log.Printf("[ConvertService] не удалось открыть документ: %v", err)
		return "", ErrConversionFailed
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		log.Printf("[ConvertService] не удалось прочитать документ: %v", err)
		return "", ErrConversionFailed
	}

	doc, err := docx.Parse(src, info.Size())
	if err != nil {
		log.Printf("[ConvertService] ошибка разбора docx: %v", err)
		return "", ErrConversionFailed
	}

	para := doc.AddParagraph().Justification("right")
	if _, err := para.AddInlineDrawingFrom(qrPath); err != nil {
		log.Printf("[ConvertService] не удалось вставить QR в документ: %v", err)
		return "", ErrConversionFailed
	}
	doc.AddParagraph().Justification("center").AddText(footerCaption).Size("18")

	outPath := tempPath("docx")
	dst, err := os.Create(outPath)
	if err != nil {
		log.Printf("[ConvertService] не удалось создать результат: %v", err)
		return "", ErrConversionFailed
	}

	if _, err := doc.WriteTo(dst); err != nil {
		dst.Close()
		os.Remove(outPath)
		log.Printf("[ConvertService] ошибка записи docx: %v", err)
		return "", ErrConversionFailed
	}
	if err := dst.Close(); err != nil {
		os.Remove(outPath)
		log.Printf("[ConvertService] ошибка записи docx: %v", err)
		return "", ErrConversionFailed
	}

	return outPath, nil
}

// EmbedQRInPDF : QR 72x72pt в правом нижнем углу только последней страницы
// (отступ 10pt) плюс подпись по центру низа той же страницы; количество
// страниц не меняется
func (s *ConvertService) EmbedQRInPDF(ctx context.Context, inputPath string, qrPath string) (string, error) {
	pageCount, err := api.PageCountFile(inputPath)
	if err != nil {
		log.Printf("[ConvertService] не удалось открыть PDF: %v", err)
		return "", ErrConversionFailed
	}

	lastPage := []string{strconv.Itoa(pageCount)}
	outPath := tempPath("pdf")

	if err := api.AddImageWatermarksFile(inputPath, outPath, lastPage, true, qrPath,
		"pos:br, off:-10 10, rot:0, sc:1 abs", nil); err != nil {
		os.Remove(outPath)
		log.Printf("[ConvertService] не удалось наложить QR на PDF: %v", err)
		return "", ErrConversionFailed
	}

	if err := api.AddTextWatermarksFile(outPath, outPath, lastPage, true, footerCaption,
		"pos:bc, off:0 10, rot:0, points:10, fontname:Helvetica", nil); err != nil {
		os.Remove(outPath)
		log.Printf("[ConvertService] не удалось наложить подпись на PDF: %v", err)
		return "", ErrConversionFailed
	}

	return outPath, nil
}

// soffice : вызов внешнего движка с жёстким таймаутом; результат переносится
// из временной директории, директория удаляется на любом пути выхода
func (s *ConvertService) soffice(ctx context.Context, inputPath string, format string) (string, error) {
	outDir, err := os.MkdirTemp("", "soffice-*")
	if err != nil {
		return "", fmt.Errorf("не удалось создать временную директорию: %w", err)
	}
	defer os.RemoveAll(outDir)

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, s.sofficePath,
		"--headless", "--convert-to", format, "--outdir", outDir, inputPath)
	output, err := cmd.CombinedOutput()
	if cctx.Err() != nil {
		return "", cctx.Err()
	}
	if err != nil {
		return "", fmt.Errorf("soffice: %w: %s", err, strings.TrimSpace(string(output)))
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	produced := filepath.Join(outDir, base+"."+format)
	if _, err := os.Stat(produced); err != nil {
		return "", fmt.Errorf("soffice не создал результат: %w", err)
	}

	outPath := tempPath(format)
	if err := os.Rename(produced, outPath); err != nil {
		return "", fmt.Errorf("не удалось перенести результат: %w", err)
	}

	return outPath, nil
}

func tempPath(ext string) string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("conv-%s.%s", uuid.New().String(), ext))
}
