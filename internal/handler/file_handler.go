package handler

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/SaidjonAlixon/qr-kodbot/internal/ports"
	"github.com/SaidjonAlixon/qr-kodbot/internal/util"
	"github.com/go-chi/chi/v5"
)

// имена генерируются через uuid + расширение, всё остальное отклоняем
var fileNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

type FileHandler struct {
	storage ports.FileStorage
	cache   ports.CacheRepository
}

// NewFileHandler : cache может быть nil, тогда раздаём напрямую из хранилища
func NewFileHandler(storage ports.FileStorage, cache ports.CacheRepository) *FileHandler {
	return &FileHandler{storage: storage, cache: cache}
}

// ServeFile : отдаёт сохранённый файл по постоянной ссылке /files/{filename}
func (h *FileHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	name := chi.URLParam(r, "filename")
	// некорректные имена неотличимы от несуществующих
	if !fileNamePattern.MatchString(name) || name != filepath.Base(name) {
		util.HandleError(w, "файл не найден", http.StatusNotFound)
		return
	}

	if h.cache != nil {
		data, err := h.cache.GetFile(ctx, name)
		if err != nil {
			log.Printf("[FileHandler] ошибка чтения из кэша: %v", err)
		}
		if data != nil {
			writeFile(w, name, data)
			return
		}
	}

	src, err := h.storage.Open(ctx, name)
	if err != nil {
		util.HandleError(w, "файл не найден", http.StatusNotFound)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		util.HandleError(w, "не удалось прочитать файл", http.StatusInternalServerError)
		return
	}

	if h.cache != nil {
		if err := h.cache.SetFile(ctx, name, data); err != nil {
			log.Printf("[FileHandler] ошибка записи в кэш: %v", err)
		}
	}

	writeFile(w, name, data)
}

// Index : простая страница, чтобы корень не отдавал 404
func (h *FileHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>QR Fayl Xizmati</title></head>
<body>
<h1>QR Fayl Xizmati</h1>
<p>Fayllar Telegram bot orqali yuklanadi.</p>
</body>
</html>`)
}

func (h *FileHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"status":"ok"}`)
}

func writeFile(w http.ResponseWriter, name string, data []byte) {
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

func contextWithTimeout(r *http.Request) (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(r.Context(), 10*time.Second)
}
