package config

type ServerConfig struct {
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	BaseURL string `yaml:"base_url"`
}

type DatabaseConfig struct {
	File string `yaml:"file"`
}

type BotConfig struct {
	Token   string `yaml:"token"`
	AdminID int64  `yaml:"admin_id"`
}

type StorageConfig struct {
	UploadDir         string   `yaml:"upload_dir"`
	QRDir             string   `yaml:"qr_dir"`
	MaxFileSize       int64    `yaml:"max_file_size"`
	AllowedExtensions []string `yaml:"allowed_extensions"`
}

type S3Config struct {
	Enabled  bool   `yaml:"enabled"`
	Bucket   string `yaml:"bucket"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	Local    bool   `yaml:"local"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TTLSec   int    `yaml:"ttl_sec"`
}

type ConvertConfig struct {
	SofficePath string `yaml:"soffice_path"`
	TimeoutSec  int    `yaml:"timeout_sec"`
}

type SessionConfig struct {
	TTLMin int `yaml:"ttl_min"`
}
