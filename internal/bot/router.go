package bot

import (
	"context"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

// handleMessage : перед любой обработкой регистрируем личность и проверяем
// доступ; без личности отказ по умолчанию
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	from := msg.From
	if from == nil {
		return
	}

	if err := b.permissions.EnsureUser(ctx, from.ID, from.UserName, fullName(from)); err != nil {
		b.reply(msg.Chat.ID, msgTryAgain)
		return
	}

	allowed, err := b.permissions.IsAllowed(ctx, from.ID)
	if err != nil || !allowed {
		b.reply(msg.Chat.ID, msgAccessDenied)
		return
	}

	switch {
	case msg.IsCommand() && msg.Command() == "start":
		b.sessions.Reset(from.ID)
		b.replyWithKeyboard(msg.Chat.ID, msgWelcome, mainKeyboard())
	case msg.IsCommand() && msg.Command() == "admin":
		b.handleAdminCommand(ctx, msg)
	case msg.Document != nil:
		b.handleDocument(ctx, msg)
	case len(msg.Photo) > 0:
		b.handlePhoto(ctx, msg)
	}
}

// handleCallback : admin-префикс обходит allow-list, но требует личность
// администратора; обе проверки закрыты по умолчанию
func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	from := cb.From
	if from == nil || cb.Message == nil {
		return
	}

	if _, err := b.client.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Printf("[Bot] ошибка подтверждения callback: %v", err)
	}

	if err := b.permissions.EnsureUser(ctx, from.ID, from.UserName, fullName(from)); err != nil {
		b.reply(cb.Message.Chat.ID, msgTryAgain)
		return
	}

	if strings.HasPrefix(cb.Data, "admin:") {
		if !b.permissions.IsAdmin(from.ID) {
			b.reply(cb.Message.Chat.ID, msgAdminOnly)
			return
		}
		b.handleAdminCallback(ctx, cb)
		return
	}

	allowed, err := b.permissions.IsAllowed(ctx, from.ID)
	if err != nil || !allowed {
		b.reply(cb.Message.Chat.ID, msgAccessDenied)
		return
	}

	b.handleMenuCallback(cb)
}
