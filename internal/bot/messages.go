package bot

// Тексты бота на узбекском, как в продакшене
const (
	msgWelcome = "🌟 <b>Soliq.uz QR Fayl Bot</b>ga xush kelibsiz!\n\n" +
		"Bu bot orqali siz:\n" +
		"✅ Fayllarni yuklab, doimiy havola olishingiz\n" +
		"✅ Faylga QR-kod yaratishingiz\n" +
		"✅ PDF va Word fayllarni o'zaro konvertatsiya qilishingiz\n" +
		"✅ Hujjat ichiga QR-kod joylashtirishingiz mumkin\n\n" +
		"Quyidagi tugmalardan birini tanlang:"

	msgAccessDenied = "🚫 Sizga botdan foydalanishga ruxsat berilmagan.\n" +
		"Administrator ruxsat berishini kuting."

	msgUploadInfo = "📤 <b>Fayl yuklash</b>\n\n" +
		"Quyidagi formatdagi fayllarni yuboring:\n" +
		"📄 Hujjatlar: PDF, DOCX, XLSX, TXT\n" +
		"🖼 Rasmlar: JPG, PNG, GIF, BMP\n" +
		"📦 Arxivlar: ZIP, RAR, 7Z\n" +
		"📊 Taqdimotlar: PPTX, PPT\n\n" +
		"⚠️ Maksimal hajm: 20MB"

	msgConvertMenu = "🔁 <b>Konvertatsiya</b>\n\n" +
		"Kerakli amalni tanlang, so'ng faylni yuboring:"

	msgAbout = "🧾 <b>Bot haqida</b>\n\n" +
		"Soliq.uz QR Fayl Bot - bu fayllaringiz uchun QR-kod yaratuvchi xizmat.\n\n" +
		"Bot fayllaringizni xavfsiz saqlaydi va har bir fayl uchun QR-kod yaratadi. " +
		"QR-kodni skaner qilish orqali faylni osongina yuklab olish mumkin.\n\n" +
		"🔒 Fayllaringiz xavfsiz saqlanadi\n" +
		"⚡ Tez va qulay xizmat\n" +
		"🆓 Bepul foydalanish"

	msgContact = "📞 <b>Aloqa</b>\n\n" +
		"Savollaringiz bo'lsa, biz bilan bog'laning:\n\n" +
		"📧 Email: support@soliq.uz\n" +
		"🌐 Website: https://soliq.uz\n" +
		"📱 Telegram: @soliq_support"

	msgPromptPDFToWord = "📄 <b>PDF → Word</b>\n\nPDF faylni yuboring, men uni DOCX formatiga o'tkazaman."
	msgPromptWordToPDF = "📄 <b>Word → PDF</b>\n\nDOC yoki DOCX faylni yuboring, men uni PDF formatiga o'tkazaman."
	msgPromptQRToWord  = "📎 <b>Word ichiga QR-kod</b>\n\nDOC yoki DOCX faylni yuboring, hujjat oxiriga QR-kod joylashtiraman."
	msgPromptQRToPDF   = "📎 <b>PDF ichiga QR-kod</b>\n\nPDF faylni yuboring, oxirgi sahifaga QR-kod joylashtiraman."

	msgWrongFormatPDF  = "❌ Bu amal uchun PDF fayl kerak. Iltimos, PDF fayl yuboring."
	msgWrongFormatWord = "❌ Bu amal uchun DOC yoki DOCX fayl kerak. Iltimos, Word fayl yuboring."

	msgFileTooLarge = "❌ Xatolik: Fayl hajmi 20MB dan oshmasligi kerak!"
	msgBadExtension = "❌ Xatolik: Bu formatdagi fayllar qo'llab-quvvatlanmaydi!"

	msgUploading  = "⏳ Fayl yuklanmoqda..."
	msgProcessing = "⏳ Fayl qayta ishlanmoqda..."
	msgUploadDone = "✅ Fayl muvaffaqiyatli yuklandi!"
	msgConvertOK  = "✅ Fayl tayyor!"
	msgFailed     = "❌ Xatolik yuz berdi. Iltimos, qaytadan urinib ko'ring."
	msgTryAgain   = "❌ Ichki xatolik. Iltimos, qaytadan urinib ko'ring."

	msgQRCaption = "📱 QR-kodni skaner qilish orqali faylni oching\n🌐 Soliq.uz"

	// fmt-шаблон: имя файла, размер в KB, ссылка
	msgUploadSuccess = "✅ <b>Faylingiz muvaffaqiyatli yuklandi!</b>\n\n" +
		"📄 Fayl nomi: %s\n" +
		"📊 Hajmi: %.2f KB\n\n" +
		"🔗 <b>Faylga havola:</b>\n%s\n\n" +
		"📎 QR-kodni skaner qiling yoki havolani bosing:"

	msgGranted = "✅ Sizga botdan foydalanishga ruxsat berildi! /start buyrug'ini yuboring."
	msgRevoked = "🚫 Sizning botdan foydalanish ruxsatingiz bekor qilindi."

	msgAdminOnly   = "🚫 Bu buyruq faqat administrator uchun."
	msgPanelClosed = "✅ Admin panel yopildi."
)
