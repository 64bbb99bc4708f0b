package utils

import (
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"recipe-book/internal/logging"
)

type Config struct {
	// Server configuration
	AppURL        string `yaml:"APP_URL"`
	AppPort       string `yaml:"APP_PORT"`
	MediaRoot     string `yaml:"MEDIA_ROOT"`
	PageSize      string `yaml:"PAGE_SIZE"`
	SessionCookie string `yaml:"SESSION_COOKIE"`
	CORSOrigins   string `yaml:"CORS_ALLOW_ORIGINS"`

	// Logging configuration
	LogLevel  string `yaml:"LOG_LEVEL"`
	LogFormat string `yaml:"LOG_FORMAT"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT key
	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration, images stay on local disk when the bucket is empty
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Redis session storage, sessions stay in memory when the host is empty
	RedisHost     string `yaml:"REDIS_HOST"`
	RedisPort     string `yaml:"REDIS_PORT"`
	RedisPassword string `yaml:"REDIS_PASSWORD"`
}

var (
	config   Config
	configMu sync.RWMutex
)

var defaults = map[string]string{
	"APP_URL":            "http://localhost:8080",
	"APP_PORT":           "8080",
	"MEDIA_ROOT":         "./media",
	"PAGE_SIZE":          "10",
	"SESSION_COOKIE":     "session_id",
	"CORS_ALLOW_ORIGINS": "*",
	"LOG_LEVEL":          "info",
	"LOG_FORMAT":         "json",
	"DB_HOST":            "localhost",
	"DB_PORT":            "5432",
	"SMTP_PORT":          "587",
	"REDIS_PORT":         "6379",
}

// LoadConfig reads .env and config.yaml. Environment variables win over yaml values.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		logging.Debug().Msg("no .env file found, using system environment variables")
	}

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}

	var cfg Config
	file, err := os.ReadFile(path)
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("error reading YAML file")
	} else if err := yaml.Unmarshal(file, &cfg); err != nil {
		logging.Error().Err(err).Str("path", path).Msg("error parsing YAML file")
	}

	SetConfig(cfg)
}

// SetConfig replaces the active configuration.
func SetConfig(cfg Config) {
	configMu.Lock()
	defer configMu.Unlock()
	config = cfg
}

func GetConfig(key string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	if value := lookupConfig(key); value != "" {
		return value
	}
	return defaults[key]
}

// GetConfigInt returns fallback when the key is missing or not a positive integer.
func GetConfigInt(key string, fallback int) int {
	value, err := strconv.Atoi(GetConfig(key))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

func lookupConfig(key string) string {
	configMu.RLock()
	defer configMu.RUnlock()

	switch key {
	case "APP_URL":
		return config.AppURL
	case "APP_PORT":
		return config.AppPort
	case "MEDIA_ROOT":
		return config.MediaRoot
	case "PAGE_SIZE":
		return config.PageSize
	case "SESSION_COOKIE":
		return config.SessionCookie
	case "CORS_ALLOW_ORIGINS":
		return config.CORSOrigins
	case "LOG_LEVEL":
		return config.LogLevel
	case "LOG_FORMAT":
		return config.LogFormat
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "JWT_SECRET":
		return config.JWTSecret
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "REDIS_HOST":
		return config.RedisHost
	case "REDIS_PORT":
		return config.RedisPort
	case "REDIS_PASSWORD":
		return config.RedisPassword
	default:
		return ""
	}
}
