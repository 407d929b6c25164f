package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	JWT      JWTConfig
	S3       S3Config
	Log      LogConfig
	OCR      OCRConfig
	CORS     CORSConfig
	Queue    QueueConfig
	Email    EmailConfig
	Learning LearningConfig
}

// EmailConfig holds email delivery settings. Moderation alerts go to
// ModerationAddress when the content filter hard-blocks a scan.
type EmailConfig struct {
	Provider          string `mapstructure:"provider"`
	Region            string `mapstructure:"region"`
	FromAddress       string `mapstructure:"from_address"`
	FromName          string `mapstructure:"from_name"`
	ModerationAddress string `mapstructure:"moderation_address"`
}

// LearningConfig holds learning store settings.
type LearningConfig struct {
	// ReloadIntervalSecs is how often the store is rebuilt from stored
	// feedback; 0 disables periodic reloads.
	ReloadIntervalSecs int `mapstructure:"reload_interval_secs"`
}

// QueueConfig holds scan queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	MaxRetries       int `mapstructure:"max_retries"`
	Concurrency      int `mapstructure:"concurrency"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OCRProviderConfig holds settings for a single OCR/LLM provider.
type OCRProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxRetries   int    `mapstructure:"max_retries"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// OCRConfig holds OCR/LLM provider settings with primary/secondary fallback.
type OCRConfig struct {
	Primary   OCRProviderConfig `mapstructure:"primary"`
	Secondary OCRProviderConfig `mapstructure:"secondary"`
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (o *OCRConfig) SecondaryConfig() *OCRProviderConfig {
	if o.Secondary.Provider != "" {
		return &o.Secondary
	}
	return nil
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the MENULENS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MENULENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "menulens")
	v.SetDefault("db.password", "menulens_secret")
	v.SetDefault("db.name", "menulens_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "menulens")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "menulens-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 20)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 10)
	v.SetDefault("queue.max_retries", 5)
	v.SetDefault("queue.concurrency", 5)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@menulens.app")
	v.SetDefault("email.from_name", "MenuLens")
	v.SetDefault("email.moderation_address", "")

	// Learning defaults
	v.SetDefault("learning.reload_interval_secs", 0)

	// OCR provider defaults
	v.SetDefault("ocr.primary.provider", "mistral")
	v.SetDefault("ocr.primary.api_key", "")
	v.SetDefault("ocr.primary.default_model", "mistral-ocr-latest")
	v.SetDefault("ocr.primary.max_retries", 2)
	v.SetDefault("ocr.primary.timeout_secs", 120)
	v.SetDefault("ocr.secondary.provider", "")
	v.SetDefault("ocr.secondary.api_key", "")
	v.SetDefault("ocr.secondary.default_model", "")
	v.SetDefault("ocr.secondary.max_retries", 2)
	v.SetDefault("ocr.secondary.timeout_secs", 120)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                  "MENULENS_SERVER_PORT",
		"server.read_timeout":          "MENULENS_SERVER_READ_TIMEOUT",
		"server.write_timeout":         "MENULENS_SERVER_WRITE_TIMEOUT",
		"server.environment":           "MENULENS_SERVER_ENVIRONMENT",
		"db.host":                      "MENULENS_DB_HOST",
		"db.port":                      "MENULENS_DB_PORT",
		"db.user":                      "MENULENS_DB_USER",
		"db.password":                  "MENULENS_DB_PASSWORD",
		"db.name":                      "MENULENS_DB_NAME",
		"db.sslmode":                   "MENULENS_DB_SSLMODE",
		"db.max_open":                  "MENULENS_DB_MAX_OPEN",
		"db.max_idle":                  "MENULENS_DB_MAX_IDLE",
		"jwt.secret":                   "MENULENS_JWT_SECRET",
		"jwt.access_expiry":            "MENULENS_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":           "MENULENS_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                   "MENULENS_JWT_ISSUER",
		"s3.region":                    "MENULENS_S3_REGION",
		"s3.bucket":                    "MENULENS_S3_BUCKET",
		"s3.endpoint":                  "MENULENS_S3_ENDPOINT",
		"s3.access_key":                "MENULENS_S3_ACCESS_KEY",
		"s3.secret_key":                "MENULENS_S3_SECRET_KEY",
		"s3.max_file_size_mb":          "MENULENS_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":            "MENULENS_S3_PRESIGN_EXPIRY",
		"log.level":                    "MENULENS_LOG_LEVEL",
		"log.format":                   "MENULENS_LOG_FORMAT",
		"cors.allowed_origins":         "MENULENS_CORS_ALLOWED_ORIGINS",
		"queue.poll_interval_secs":     "MENULENS_QUEUE_POLL_INTERVAL_SECS",
		"queue.max_retries":            "MENULENS_QUEUE_MAX_RETRIES",
		"queue.concurrency":            "MENULENS_QUEUE_CONCURRENCY",
		"ocr.primary.provider":         "MENULENS_OCR_PRIMARY_PROVIDER",
		"ocr.primary.api_key":          "MENULENS_OCR_PRIMARY_API_KEY",
		"ocr.primary.default_model":    "MENULENS_OCR_PRIMARY_DEFAULT_MODEL",
		"ocr.primary.max_retries":      "MENULENS_OCR_PRIMARY_MAX_RETRIES",
		"ocr.primary.timeout_secs":     "MENULENS_OCR_PRIMARY_TIMEOUT_SECS",
		"ocr.secondary.provider":       "MENULENS_OCR_SECONDARY_PROVIDER",
		"ocr.secondary.api_key":        "MENULENS_OCR_SECONDARY_API_KEY",
		"ocr.secondary.default_model":  "MENULENS_OCR_SECONDARY_DEFAULT_MODEL",
		"ocr.secondary.max_retries":    "MENULENS_OCR_SECONDARY_MAX_RETRIES",
		"ocr.secondary.timeout_secs":   "MENULENS_OCR_SECONDARY_TIMEOUT_SECS",
		"email.provider":               "MENULENS_EMAIL_PROVIDER",
		"email.region":                 "MENULENS_EMAIL_REGION",
		"email.from_address":           "MENULENS_EMAIL_FROM_ADDRESS",
		"email.from_name":              "MENULENS_EMAIL_FROM_NAME",
		"email.moderation_address":     "MENULENS_EMAIL_MODERATION_ADDRESS",
		"learning.reload_interval_secs": "MENULENS_LEARNING_RELOAD_INTERVAL_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if MENULENS_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("MENULENS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.OCR = OCRConfig{
		Primary: OCRProviderConfig{
			Provider:     v.GetString("ocr.primary.provider"),
			APIKey:       v.GetString("ocr.primary.api_key"),
			DefaultModel: v.GetString("ocr.primary.default_model"),
			MaxRetries:   v.GetInt("ocr.primary.max_retries"),
			TimeoutSecs:  v.GetInt("ocr.primary.timeout_secs"),
		},
		Secondary: OCRProviderConfig{
			Provider:     v.GetString("ocr.secondary.provider"),
			APIKey:       v.GetString("ocr.secondary.api_key"),
			DefaultModel: v.GetString("ocr.secondary.default_model"),
			MaxRetries:   v.GetInt("ocr.secondary.max_retries"),
			TimeoutSecs:  v.GetInt("ocr.secondary.timeout_secs"),
		},
	}

	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		MaxRetries:       v.GetInt("queue.max_retries"),
		Concurrency:      v.GetInt("queue.concurrency"),
	}

	cfg.Email = EmailConfig{
		Provider:          v.GetString("email.provider"),
		Region:            v.GetString("email.region"),
		FromAddress:       v.GetString("email.from_address"),
		FromName:          v.GetString("email.from_name"),
		ModerationAddress: v.GetString("email.moderation_address"),
	}

	cfg.Learning = LearningConfig{
		ReloadIntervalSecs: v.GetInt("learning.reload_interval_secs"),
	}

	return cfg, nil
}
