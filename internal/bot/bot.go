package bot

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/SaidjonAlixon/qr-kodbot/internal/ports"
	"github.com/SaidjonAlixon/qr-kodbot/internal/session"
)

// telegramClient : часть API бота, нужная обработчикам; *tgbotapi.BotAPI
// реализует его, в тестах подставляется фейк
type telegramClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

type Bot struct {
	client      telegramClient
	poller      *tgbotapi.BotAPI
	permissions ports.PermissionService
	uploads     ports.UploadService
	converter   ports.Converter
	files       ports.FileRepository
	sessions    *session.Tracker
	httpClient  *http.Client
}

func New(
	api *tgbotapi.BotAPI,
	permissions ports.PermissionService,
	uploads ports.UploadService,
	converter ports.Converter,
	files ports.FileRepository,
	sessions *session.Tracker,
) *Bot {
	b := newBot(api, permissions, uploads, converter, files, sessions)
	b.poller = api
	return b
}

func newBot(
	client telegramClient,
	permissions ports.PermissionService,
	uploads ports.UploadService,
	converter ports.Converter,
	files ports.FileRepository,
	sessions *session.Tracker,
) *Bot {
	return &Bot{
		client:      client,
		permissions: permissions,
		uploads:     uploads,
		converter:   converter,
		files:       files,
		sessions:    sessions,
		httpClient:  &http.Client{Timeout: 5 * time.Minute},
	}
}

// Run : long polling; каждое обновление обрабатывается в своей горутине,
// паника обработчика не роняет процесс
func (b *Bot) Run(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	updates := b.poller.GetUpdatesChan(updateConfig)
	log.Printf("[Bot] бот запущен: @%s", b.poller.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.poller.StopReceivingUpdates()
			log.Println("[Bot] бот остановлен")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go b.safeHandle(ctx, update)
		}
	}
}

func (b *Bot) safeHandle(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Bot] паника в обработчике: %v", r)
			if chatID := chatIDOf(update); chatID != 0 {
				b.reply(chatID, msgTryAgain)
			}
		}
	}()

	b.handleUpdate(ctx, update)
}

func chatIDOf(update tgbotapi.Update) int64 {
	if update.Message != nil {
		return update.Message.Chat.ID
	}
	if update.CallbackQuery != nil && update.CallbackQuery.Message != nil {
		return update.CallbackQuery.Message.Chat.ID
	}
	return 0
}

func fullName(from *tgbotapi.User) string {
	return strings.TrimSpace(from.FirstName + " " + from.LastName)
}

// reply : обычный текстовый ответ; ошибки отправки только логируются
func (b *Bot) reply(chatID int64, text string) tgbotapi.Message {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	sent, err := b.client.Send(msg)
	if err != nil {
		log.Printf("[Bot] ошибка отправки сообщения: %v", err)
	}
	return sent
}

func (b *Bot) replyWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = keyboard
	if _, err := b.client.Send(msg); err != nil {
		log.Printf("[Bot] ошибка отправки сообщения: %v", err)
	}
}

// editText : правка статусного сообщения (в т.ч. на сообщение об ошибке,
// чтобы не оставлять устаревший статус)
func (b *Bot) editText(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := b.client.Send(edit); err != nil {
		log.Printf("[Bot] ошибка правки сообщения: %v", err)
	}
}

func (b *Bot) editWithKeyboard(chatID int64, messageID int, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, keyboard)
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := b.client.Send(edit); err != nil {
		log.Printf("[Bot] ошибка правки сообщения: %v", err)
	}
}

func (b *Bot) sendQRPhoto(chatID int64, png []byte, keyboard tgbotapi.InlineKeyboardMarkup) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "qr.png", Bytes: png})
	photo.Caption = msgQRCaption
	photo.ReplyMarkup = keyboard
	if _, err := b.client.Send(photo); err != nil {
		log.Printf("[Bot] ошибка отправки QR-кода: %v", err)
	}
}

func (b *Bot) sendDocument(chatID int64, path string, name string) {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("[Bot] не удалось открыть документ для отправки: %v", err)
		return
	}
	defer f.Close()

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileReader{Name: name, Reader: f})
	if _, err := b.client.Send(doc); err != nil {
		log.Printf("[Bot] ошибка отправки документа: %v", err)
	}
}

// downloadTelegramFile : скачивает файл из Telegram во временный файл;
// удаление — на вызывающем
func (b *Bot) downloadTelegramFile(ctx context.Context, fileID string, ext string) (string, error) {
	url, err := b.client.GetFileDirectURL(fileID)
	if err != nil {
		return "", fmt.Errorf("не удалось получить ссылку на файл: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ошибка скачивания файла: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ошибка скачивания файла: статус %d", resp.StatusCode)
	}

	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	name := fmt.Sprintf("tg-%s", uuid.New().String())
	if ext != "" {
		name = name + "." + ext
	}
	path := filepath.Join(os.TempDir(), name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if _, err := dst.ReadFrom(resp.Body); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("ошибка сохранения файла: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", err
	}

	return path, nil
}
