package config

import (
	"log"
	"os"

	"github.com/code-100-precent/LingChat/pkg/logger"
	"github.com/code-100-precent/LingChat/pkg/utils"
)

// Config represents the system configuration
type Config struct {
	ServerName    string `env:"SERVER_NAME"`
	ServerUrl     string `env:"SERVER_URL"`
	DBDriver      string `env:"DB_DRIVER"`
	DSN           string `env:"DSN"`
	Log           logger.LogConfig
	Addr          string `env:"ADDR"`
	Mode          string `env:"MODE"`
	APIPrefix     string `env:"API_PREFIX"`
	JWTSecret     string `env:"JWT_SECRET"`
	MailHost      string `env:"MAIL_HOST"`
	MailPort      int64  `env:"MAIL_PORT"`
	MailUsername  string `env:"MAIL_USERNAME"`
	MailPassword  string `env:"MAIL_PASSWORD"`
	MailFrom      string `env:"MAIL_FROM"`
	StorageKind   string `env:"STORAGE_KIND"`
	UploadDir     string `env:"UPLOAD_DIR"`
	MinioEndpoint string `env:"MINIO_ENDPOINT"`
	MinioAccess   string `env:"MINIO_ACCESS_KEY"`
	MinioSecret   string `env:"MINIO_SECRET_KEY"`
	MinioBucket   string `env:"MINIO_BUCKET"`
	MinioSecure   bool   `env:"MINIO_SECURE"`
}

// GlobalConfig is the global configuration instance
var GlobalConfig *Config

// Load loads configuration from environment variables
func Load() error {
	env := os.Getenv("APP_ENV")
	if err := utils.LoadEnv(env); err != nil {
		log.Printf("Note: .env file not found or failed to load: %v (using default values)", err)
	}

	GlobalConfig = &Config{
		ServerName: getStringOrDefault("SERVER_NAME", "LingChat"),
		ServerUrl:  getStringOrDefault("SERVER_URL", "http://localhost:7073"),
		DBDriver:   getStringOrDefault("DB_DRIVER", "sqlite"),
		DSN:        getStringOrDefault("DSN", "./lingchat.db"),
		Addr:       getStringOrDefault("ADDR", ":7073"),
		Mode:       getStringOrDefault("MODE", "development"),
		APIPrefix:  getStringOrDefault("API_PREFIX", "/api"),
		JWTSecret:  getStringOrDefault("JWT_SECRET", utils.RandText(32)),
		Log: logger.LogConfig{
			Level:      getStringOrDefault("LOG_LEVEL", "info"),
			Filename:   getStringOrDefault("LOG_FILENAME", "./logs/app.log"),
			MaxSize:    getIntOrDefault("LOG_MAX_SIZE", 100),
			MaxAge:     getIntOrDefault("LOG_MAX_AGE", 30),
			MaxBackups: getIntOrDefault("LOG_MAX_BACKUPS", 5),
			Daily:      getBoolOrDefault("LOG_DAILY", true),
		},
		MailHost:      getStringOrDefault("MAIL_HOST", ""),
		MailPort:      int64(getIntOrDefault("MAIL_PORT", 465)),
		MailUsername:  getStringOrDefault("MAIL_USERNAME", ""),
		MailPassword:  getStringOrDefault("MAIL_PASSWORD", ""),
		MailFrom:      getStringOrDefault("MAIL_FROM", ""),
		StorageKind:   getStringOrDefault("STORAGE_KIND", "local"),
		UploadDir:     getStringOrDefault("UPLOAD_DIR", "./uploads"),
		MinioEndpoint: getStringOrDefault("MINIO_ENDPOINT", ""),
		MinioAccess:   getStringOrDefault("MINIO_ACCESS_KEY", ""),
		MinioSecret:   getStringOrDefault("MINIO_SECRET_KEY", ""),
		MinioBucket:   getStringOrDefault("MINIO_BUCKET", "lingchat"),
		MinioSecure:   getBoolOrDefault("MINIO_SECURE", false),
	}
	return nil
}

// getStringOrDefault gets environment variable value, returns default if empty
func getStringOrDefault(key, defaultValue string) string {
	value := utils.GetEnv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getBoolOrDefault gets boolean environment variable value, returns default if empty
func getBoolOrDefault(key string, defaultValue bool) bool {
	value := utils.GetEnv(key)
	if value == "" {
		return defaultValue
	}
	return utils.GetBoolEnv(key)
}

// getIntOrDefault gets integer environment variable value, returns default if zero
func getIntOrDefault(key string, defaultValue int) int {
	value := utils.GetIntEnv(key)
	if value == 0 {
		return defaultValue
	}
	return int(value)
}
