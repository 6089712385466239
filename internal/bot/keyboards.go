package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/SaidjonAlixon/qr-kodbot/internal/model"
)

// Данные callback-кнопок; префикс admin: обходит allow-list,
// но требует личность администратора
const (
	cbUpload  = "upload"
	cbConvert = "convert"
	cbAbout   = "about"
	cbContact = "contact"
	cbBack    = "back"

	cbModePDFToWord = "mode:pdf_to_word"
	cbModeWordToPDF = "mode:word_to_pdf"
	cbModeQRToWord  = "mode:qr_to_word"
	cbModeQRToPDF   = "mode:qr_to_pdf"

	cbAdminStats = "admin:stats"
	cbAdminUsers = "admin:users"
	cbAdminFiles = "admin:files"
	cbAdminAllow = "admin:allow:" // + user id
	cbAdminDeny  = "admin:deny:"  // + user id
	cbAdminClose = "admin:close"
)

func mainKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📤 Fayl yuborish", cbUpload),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Konvertatsiya", cbConvert),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧾 Bot haqida", cbAbout),
			tgbotapi.NewInlineKeyboardButtonData("📞 Aloqa", cbContact),
		),
	)
}

func convertKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 PDF → Word", cbModePDFToWord),
			tgbotapi.NewInlineKeyboardButtonData("📄 Word → PDF", cbModeWordToPDF),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📎 QR → Word", cbModeQRToWord),
			tgbotapi.NewInlineKeyboardButtonData("📎 QR → PDF", cbModeQRToPDF),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Orqaga", cbBack),
		),
	)
}

func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Orqaga", cbBack),
		),
	)
}

func adminKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👥 Foydalanuvchilar", cbAdminUsers),
			tgbotapi.NewInlineKeyboardButtonData("📂 Fayllar", cbAdminFiles),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Statistika", cbAdminStats),
			tgbotapi.NewInlineKeyboardButtonData("❌ Yopish", cbAdminClose),
		),
	)
}

// adminUsersKeyboard : по кнопке на пользователя с противоположным действием
func adminUsersKeyboard(users []*model.User) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(users)+1)
	for _, u := range users {
		label := fmt.Sprintf("🚫 %s", displayName(u))
		data := fmt.Sprintf("%s%d", cbAdminDeny, u.ID)
		if !u.IsAllowed {
			label = fmt.Sprintf("✅ %s", displayName(u))
			data = fmt.Sprintf("%s%d", cbAdminAllow, u.ID)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, data),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Orqaga", cbAdminStats),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func adminBackKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Orqaga", cbAdminStats),
		),
	)
}

func displayName(u *model.User) string {
	if u.FullName != "" {
		return u.FullName
	}
	if u.Username != "" {
		return "@" + u.Username
	}
	return fmt.Sprintf("id:%d", u.ID)
}
