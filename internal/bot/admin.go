package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const adminFilesLimit = 20

func (b *Bot) handleAdminCommand(ctx context.Context, msg *tgbotapi.Message) {
	if !b.permissions.IsAdmin(msg.From.ID) {
		b.reply(msg.Chat.ID, msgAdminOnly)
		return
	}

	text, err := b.statsText(ctx)
	if err != nil {
		b.reply(msg.Chat.ID, msgTryAgain)
		return
	}
	b.replyWithKeyboard(msg.Chat.ID, text, adminKeyboard())
}

func (b *Bot) handleAdminCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	switch {
	case cb.Data == cbAdminStats:
		text, err := b.statsText(ctx)
		if err != nil {
			b.editText(chatID, messageID, msgTryAgain)
			return
		}
		b.editWithKeyboard(chatID, messageID, text, adminKeyboard())

	case cb.Data == cbAdminUsers:
		b.renderUsers(ctx, chatID, messageID)

	case cb.Data == cbAdminFiles:
		text, err := b.filesText(ctx)
		if err != nil {
			b.editText(chatID, messageID, msgTryAgain)
			return
		}
		b.editWithKeyboard(chatID, messageID, text, adminBackKeyboard())

	case strings.HasPrefix(cb.Data, cbAdminAllow):
		b.togglePermission(ctx, chatID, messageID, strings.TrimPrefix(cb.Data, cbAdminAllow), true)

	case strings.HasPrefix(cb.Data, cbAdminDeny):
		b.togglePermission(ctx, chatID, messageID, strings.TrimPrefix(cb.Data, cbAdminDeny), false)

	case cb.Data == cbAdminClose:
		b.editText(chatID, messageID, msgPanelClosed)
	}
}

// togglePermission : идемпотентно; если флаг не изменился, пользователь
// повторного уведомления не получает
func (b *Bot) togglePermission(ctx context.Context, chatID int64, messageID int, rawID string, allow bool) {
	userID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		log.Printf("[Bot] некорректный id пользователя в callback: %q", rawID)
		return
	}

	changed, err := b.permissions.SetPermission(ctx, userID, allow)
	if err != nil {
		b.editText(chatID, messageID, msgTryAgain)
		return
	}

	if changed {
		notification := msgRevoked
		if allow {
			notification = msgGranted
		}
		b.reply(userID, notification)
	}

	b.renderUsers(ctx, chatID, messageID)
}

func (b *Bot) renderUsers(ctx context.Context, chatID int64, messageID int) {
	users, err := b.permissions.ListUsers(ctx)
	if err != nil {
		b.editText(chatID, messageID, msgTryAgain)
		return
	}

	var sb strings.Builder
	sb.WriteString("👥 <b>Foydalanuvchilar</b>\n\n")
	for _, u := range users {
		mark := "🚫"
		if u.IsAllowed {
			mark = "✅"
		}
		fmt.Fprintf(&sb, "%s %s (id: %d)\n", mark, displayName(u), u.ID)
	}
	sb.WriteString("\nRuxsatni o'zgartirish uchun tugmani bosing:")

	b.editWithKeyboard(chatID, messageID, sb.String(), adminUsersKeyboard(users))
}

func (b *Bot) statsText(ctx context.Context) (string, error) {
	stats, err := b.files.Stats(ctx)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"🛠 <b>Admin panel</b>\n\n"+
			"👥 Foydalanuvchilar: %d\n"+
			"✅ Ruxsat berilgan: %d\n"+
			"📂 Fayllar: %d\n"+
			"💾 Umumiy hajm: %.2f MB",
		stats.TotalUsers,
		stats.AllowedUsers,
		stats.TotalFiles,
		float64(stats.TotalSize)/(1024*1024),
	), nil
}

func (b *Bot) filesText(ctx context.Context) (string, error) {
	files, err := b.files.ListAll(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("📂 <b>Fayllar</b>\n\n")
	for i, f := range files {
		if i == adminFilesLimit {
			fmt.Fprintf(&sb, "\n... va yana %d ta fayl", len(files)-adminFilesLimit)
			break
		}
		fmt.Fprintf(&sb, "%d. %s (%s, %.2f KB)\n%s\n",
			i+1, f.FileName, f.ServiceUsed, float64(f.FileSize)/1024, f.FileURL)
	}
	if len(files) == 0 {
		sb.WriteString("Hozircha fayllar yo'q.")
	}

	return sb.String(), nil
}
