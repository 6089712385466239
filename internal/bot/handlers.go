package bot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/SaidjonAlixon/qr-kodbot/internal/model"
	"github.com/SaidjonAlixon/qr-kodbot/internal/service"
	"github.com/SaidjonAlixon/qr-kodbot/internal/session"
)

func (b *Bot) handleMenuCallback(cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	switch cb.Data {
	case cbUpload:
		b.editWithKeyboard(chatID, messageID, msgUploadInfo, backKeyboard())
	case cbConvert:
		b.editWithKeyboard(chatID, messageID, msgConvertMenu, convertKeyboard())
	case cbAbout:
		b.editWithKeyboard(chatID, messageID, msgAbout, backKeyboard())
	case cbContact:
		b.editWithKeyboard(chatID, messageID, msgContact, backKeyboard())
	case cbBack:
		// возврат в главное меню сбрасывает выбранный режим
		b.sessions.Reset(cb.From.ID)
		b.editWithKeyboard(chatID, messageID, msgWelcome, mainKeyboard())
	case cbModePDFToWord:
		b.sessions.Set(cb.From.ID, session.ModePDFToWord)
		b.editWithKeyboard(chatID, messageID, msgPromptPDFToWord, backKeyboard())
	case cbModeWordToPDF:
		b.sessions.Set(cb.From.ID, session.ModeWordToPDF)
		b.editWithKeyboard(chatID, messageID, msgPromptWordToPDF, backKeyboard())
	case cbModeQRToWord:
		b.sessions.Set(cb.From.ID, session.ModeQRToWord)
		b.editWithKeyboard(chatID, messageID, msgPromptQRToWord, backKeyboard())
	case cbModeQRToPDF:
		b.sessions.Set(cb.From.ID, session.ModeQRToPDF)
		b.editWithKeyboard(chatID, messageID, msgPromptQRToPDF, backKeyboard())
	}
}

// handleDocument : размер проверяется до скачивания по заявленному значению;
// файл неподходящего для режима типа не сбрасывает режим
func (b *Bot) handleDocument(ctx context.Context, msg *tgbotapi.Message) {
	doc := msg.Document

	if err := b.uploads.ValidateSize(int64(doc.FileSize)); err != nil {
		b.replyWithKeyboard(msg.Chat.ID, msgFileTooLarge, mainKeyboard())
		return
	}

	mode := b.sessions.Get(msg.From.ID)
	ext := filepath.Ext(doc.FileName)

	if mode == session.ModeNone {
		if err := b.uploads.ValidateExtension(doc.FileName); err != nil {
			b.replyWithKeyboard(msg.Chat.ID, msgBadExtension, mainKeyboard())
			return
		}
		b.processPlainUpload(ctx, msg, doc.FileID, doc.FileName, ext)
		return
	}

	if !mode.Accepts(ext) {
		b.reply(msg.Chat.ID, wrongFormatMessage(mode))
		return
	}

	b.processConversion(ctx, msg, mode)
}

// handlePhoto : фото сохраняются как .jpg и не проходят проверку расширения
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	photo := msg.Photo[len(msg.Photo)-1]

	if err := b.uploads.ValidateSize(int64(photo.FileSize)); err != nil {
		b.replyWithKeyboard(msg.Chat.ID, msgFileTooLarge, mainKeyboard())
		return
	}

	b.processPlainUpload(ctx, msg, photo.FileID, "photo.jpg", ".jpg")
}

func (b *Bot) processPlainUpload(ctx context.Context, msg *tgbotapi.Message, fileID string, originalName string, ext string) {
	status := b.reply(msg.Chat.ID, msgUploading)

	localPath, err := b.downloadTelegramFile(ctx, fileID, ext)
	if err != nil {
		b.editText(msg.Chat.ID, status.MessageID, msgFailed)
		return
	}
	defer os.Remove(localPath)

	plan := b.uploads.Plan(ext)
	record, err := b.uploads.Commit(ctx, msg.From.ID, originalName, localPath, plan, model.ServiceFileUpload)
	if err != nil {
		b.editText(msg.Chat.ID, status.MessageID, msgFailed)
		return
	}

	png, err := b.uploads.QRCodePNG(plan.URL)
	if err != nil {
		b.editText(msg.Chat.ID, status.MessageID, msgFailed)
		return
	}

	b.editText(msg.Chat.ID, status.MessageID, msgUploadDone)
	b.reply(msg.Chat.ID, uploadSuccessText(record))
	b.sendQRPhoto(msg.Chat.ID, png, mainKeyboard())
}

// processConversion : режим сбрасывается при любом исходе конвертации;
// все временные файлы удаляются независимо от пути выхода
func (b *Bot) processConversion(ctx context.Context, msg *tgbotapi.Message, mode session.Mode) {
	defer b.sessions.Reset(msg.From.ID)

	doc := msg.Document
	status := b.reply(msg.Chat.ID, msgProcessing)

	localPath, err := b.downloadTelegramFile(ctx, doc.FileID, filepath.Ext(doc.FileName))
	if err != nil {
		b.editText(msg.Chat.ID, status.MessageID, msgFailed)
		return
	}
	defer os.Remove(localPath)

	outExt, serviceTag := conversionTarget(mode)
	// план выделяется заранее: QR внутри документа должен вести на URL результата
	plan := b.uploads.Plan(outExt)

	var outPath string
	switch mode {
	case session.ModePDFToWord:
		outPath, err = b.converter.PDFToWord(ctx, localPath)
	case session.ModeWordToPDF:
		outPath, err = b.converter.WordToPDF(ctx, localPath)
	case session.ModeQRToWord, session.ModeQRToPDF:
		var qrPath string
		qrPath, err = b.uploads.QRCodeFile(plan.URL)
		if err != nil {
			b.editText(msg.Chat.ID, status.MessageID, msgFailed)
			return
		}
		defer os.Remove(qrPath)

		if mode == session.ModeQRToWord {
			outPath, err = b.converter.EmbedQRInWord(ctx, localPath, qrPath)
		} else {
			outPath, err = b.converter.EmbedQRInPDF(ctx, localPath, qrPath)
		}
	}
	if err != nil {
		// и таймаут, и прочие сбои выглядят для пользователя одинаково
		if !errors.Is(err, service.ErrConversionFailed) && !errors.Is(err, service.ErrConversionTimeout) {
			err = service.ErrConversionFailed
		}
		b.editText(msg.Chat.ID, status.MessageID, msgFailed)
		return
	}
	defer os.Remove(outPath)

	resultName := outputName(doc.FileName, outExt)
	record, err := b.uploads.Commit(ctx, msg.From.ID, resultName, outPath, plan, serviceTag)
	if err != nil {
		b.editText(msg.Chat.ID, status.MessageID, msgFailed)
		return
	}

	png, err := b.uploads.QRCodePNG(plan.URL)
	if err != nil {
		b.editText(msg.Chat.ID, status.MessageID, msgFailed)
		return
	}

	b.editText(msg.Chat.ID, status.MessageID, msgConvertOK)
	b.sendDocument(msg.Chat.ID, outPath, resultName)
	b.reply(msg.Chat.ID, uploadSuccessText(record))
	b.sendQRPhoto(msg.Chat.ID, png, mainKeyboard())
}

func conversionTarget(mode session.Mode) (outExt string, serviceTag string) {
	switch mode {
	case session.ModePDFToWord:
		return "docx", model.ServicePDFToWord
	case session.ModeWordToPDF:
		return "pdf", model.ServiceWordToPDF
	case session.ModeQRToWord:
		return "docx", model.ServiceQRToWord
	case session.ModeQRToPDF:
		return "pdf", model.ServiceQRToPDF
	default:
		return "", model.ServiceFileUpload
	}
}

func wrongFormatMessage(mode session.Mode) string {
	switch mode {
	case session.ModePDFToWord, session.ModeQRToPDF:
		return msgWrongFormatPDF
	default:
		return msgWrongFormatWord
	}
}

func outputName(originalName string, outExt string) string {
	base := strings.TrimSuffix(originalName, filepath.Ext(originalName))
	if base == "" {
		base = "document"
	}
	return base + "." + outExt
}

func uploadSuccessText(record *model.FileRecord) string {
	return fmt.Sprintf(msgUploadSuccess, record.FileName, float64(record.FileSize)/1024, record.FileURL)
}
