package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	_ "github.com/joho/godotenv/autoload"
	"gopkg.in/yaml.v3"
)

const defaultExtensions = "pdf,docx,doc,xlsx,xls,jpg,jpeg,png,gif,bmp,zip,rar,7z,txt,pptx,ppt"

type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Bot      BotConfig      `yaml:"bot"`
	Storage  StorageConfig  `yaml:"storage"`
	S3       S3Config       `yaml:"s3"`
	Redis    RedisConfig    `yaml:"redis"`
	Convert  ConvertConfig  `yaml:"convert"`
	Session  SessionConfig  `yaml:"session"`
}

// LoadConfig : читает config.yaml (если есть), затем переопределяет значения
// переменными окружения; у каждого параметра есть фиксированный дефолт
func LoadConfig(path string) (*AppConfig, error) {
	var cfg AppConfig

	if file, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
		}
	}

	cfg.Bot.Token = envString("TELEGRAM_BOT_TOKEN", cfg.Bot.Token)
	cfg.Bot.AdminID = envInt64("ADMIN_TELEGRAM_ID", cfg.Bot.AdminID)

	cfg.Server.Host = envString("HOST", defaultString(cfg.Server.Host, "0.0.0.0"))
	cfg.Server.Port = envString("PORT", defaultString(cfg.Server.Port, "5000"))
	cfg.Server.BaseURL = resolveBaseURL(cfg.Server.BaseURL, cfg.Server.Port)

	cfg.Database.File = envString("DB_FILE", defaultString(cfg.Database.File, "bot_database.db"))

	cfg.Storage.UploadDir = envString("UPLOAD_FOLDER", defaultString(cfg.Storage.UploadDir, "uploads"))
	cfg.Storage.QRDir = envString("QR_FOLDER", defaultString(cfg.Storage.QRDir, "qr_codes"))
	cfg.Storage.MaxFileSize = envInt64("MAX_FILE_SIZE", cfg.Storage.MaxFileSize)
	if cfg.Storage.MaxFileSize <= 0 {
		cfg.Storage.MaxFileSize = 20 << 20
	}
	if exts := envString("ALLOWED_EXTENSIONS", ""); exts != "" {
		cfg.Storage.AllowedExtensions = splitExtensions(exts)
	} else if len(cfg.Storage.AllowedExtensions) == 0 {
		cfg.Storage.AllowedExtensions = splitExtensions(defaultExtensions)
	}

	cfg.S3.Enabled = envBool("S3_ENABLED", cfg.S3.Enabled)
	cfg.S3.Bucket = envString("S3_BUCKET", cfg.S3.Bucket)
	cfg.S3.Region = envString("S3_REGION", defaultString(cfg.S3.Region, "us-east-1"))
	cfg.S3.Endpoint = envString("S3_ENDPOINT", cfg.S3.Endpoint)
	cfg.S3.Local = envBool("S3_LOCAL", cfg.S3.Local)

	cfg.Redis.Addr = envString("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = envString("REDIS_PASSWORD", cfg.Redis.Password)
	if cfg.Redis.TTLSec <= 0 {
		cfg.Redis.TTLSec = 300
	}

	cfg.Convert.SofficePath = envString("SOFFICE_PATH", defaultString(cfg.Convert.SofficePath, "soffice"))
	cfg.Convert.TimeoutSec = int(envInt64("CONVERT_TIMEOUT", int64(cfg.Convert.TimeoutSec)))
	if cfg.Convert.TimeoutSec <= 0 {
		cfg.Convert.TimeoutSec = 60
	}

	cfg.Session.TTLMin = int(envInt64("SESSION_TTL", int64(cfg.Session.TTLMin)))
	if cfg.Session.TTLMin <= 0 {
		cfg.Session.TTLMin = 30
	}

	return &cfg, nil
}

// resolveBaseURL : публичный адрес берётся из домена платформы (Railway/Replit),
// иначе собираем локальный адрес из порта
func resolveBaseURL(current string, port string) string {
	if v := os.Getenv("BASE_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	if v := os.Getenv("RAILWAY_PUBLIC_DOMAIN"); v != "" {
		return "https://" + v
	}
	if v := os.Getenv("REPLIT_DEV_DOMAIN"); v != "" {
		return "https://" + v
	}
	if current != "" {
		return strings.TrimRight(current, "/")
	}
	return "http://localhost:" + port
}

func SetupServer(serverAddress string) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:    serverAddress,
		Handler: router,
	}

	return server, router
}

func SetupDatabase(file string) (*Database, error) {
	return NewDatabaseConnection("sqlite3", file)
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func splitExtensions(raw string) []string {
	parts := strings.Split(raw, ",")
	exts := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			exts = append(exts, p)
		}
	}
	return exts
}
