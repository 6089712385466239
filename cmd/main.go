package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SaidjonAlixon/qr-kodbot/config"
	"github.com/SaidjonAlixon/qr-kodbot/internal/bot"
	"github.com/SaidjonAlixon/qr-kodbot/internal/handler"
	"github.com/SaidjonAlixon/qr-kodbot/internal/ports"
	"github.com/SaidjonAlixon/qr-kodbot/internal/repository"
	"github.com/SaidjonAlixon/qr-kodbot/internal/service"
	"github.com/SaidjonAlixon/qr-kodbot/internal/session"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.Database.File)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatalf("Ошибка миграции БД: %v", err)
	}

	// Redis опционален, без него файлы раздаются напрямую из хранилища
	var cacheRepo ports.CacheRepository
	if cfg.Redis.Addr != "" {
		redisClient, err := config.SetupRedis(&cfg.Redis)
		if err != nil {
			log.Fatalf("Ошибка подключения к Redis: %v", err)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Printf("Ошибка при закрытии Redis: %v", err)
			}
		}()
		cacheRepo = repository.NewCacheRepository(redisClient, time.Duration(cfg.Redis.TTLSec)*time.Second)
	}

	var storage ports.FileStorage
	if cfg.S3.Enabled {
		storage, err = service.NewS3Storage(ctx, &cfg.S3)
	} else {
		storage, err = service.NewLocalStorage(cfg.Storage.UploadDir)
	}
	if err != nil {
		log.Fatalf("Ошибка создания хранилища файлов: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	fileRepo := repository.NewFileRepository(db)

	permissions := service.NewPermissionService(userRepo, cfg.Bot.AdminID)
	uploads := service.NewUploadService(fileRepo, storage, &cfg.Storage, cfg.Server.BaseURL)
	converter := service.NewConvertService(&cfg.Convert)
	sessions := session.NewTracker(time.Duration(cfg.Session.TTLMin) * time.Minute)

	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		log.Fatalf("Ошибка подключения к Telegram API: %v", err)
	}
	log.Printf("бот авторизован как @%s", api.Self.UserName)

	telegramBot := bot.New(api, permissions, uploads, converter, fileRepo, sessions)

	srv, router := config.SetupServer(cfg.Server.Host + ":" + cfg.Server.Port)
	fileHandler := handler.NewFileHandler(storage, cacheRepo)

	router.Get("/", fileHandler.Index)
	router.Get("/health", fileHandler.Health)
	router.Get("/files/{filename}", fileHandler.ServeFile)

	go telegramBot.Run(ctx)

	runServer(ctx, cancel, srv)
}

func runServer(ctx context.Context, cancel context.CancelFunc, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	cancel()

	shutDownCtx, shutDownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
