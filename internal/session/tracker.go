package session

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Mode : ожидаемая конвертация для следующего файла пользователя
type Mode string

const (
	ModeNone      Mode = ""
	ModePDFToWord Mode = "pdf_to_word"
	ModeWordToPDF Mode = "word_to_pdf"
	ModeQRToWord  Mode = "add_qr_to_word"
	ModeQRToPDF   Mode = "add_qr_to_pdf"
)

// Accepts : подходит ли расширение входного файла выбранному режиму
func (m Mode) Accepts(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	switch m {
	case ModePDFToWord, ModeQRToPDF:
		return ext == "pdf"
	case ModeWordToPDF, ModeQRToWord:
		return ext == "doc" || ext == "docx"
	default:
		return true
	}
}

const trackerSize = 1024

// Tracker : режим на пользователя в памяти процесса с TTL; слот пишется
// только обработчиками этого же пользователя, одновременные загрузки
// одного пользователя решаются по принципу «последняя запись побеждает»
type Tracker struct {
	modes *expirable.LRU[int64, Mode]
}

func NewTracker(ttl time.Duration) *Tracker {
	return &Tracker{
		modes: expirable.NewLRU[int64, Mode](trackerSize, nil, ttl),
	}
}

func (t *Tracker) Get(userID int64) Mode {
	if mode, ok := t.modes.Get(userID); ok {
		return mode
	}
	return ModeNone
}

func (t *Tracker) Set(userID int64, mode Mode) {
	if mode == ModeNone {
		t.modes.Remove(userID)
		return
	}
	t.modes.Add(userID, mode)
}

// Reset : после завершения конвертации (успех или сбой) и при возврате
// в главное меню
func (t *Tracker) Reset(userID int64) {
	t.modes.Remove(userID)
}
