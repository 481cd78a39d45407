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
	Server    ServerConfig
	DB        DBConfig
	S3        S3Config
	Log       LogConfig
	CORS      CORSConfig
	Queue     QueueConfig
	Email     EmailConfig
	OCR       OCRConfig
	Search    SearchConfig
	Extractor ExtractorConfig
	LocalExt  LocalExtractorConfig `mapstructure:"local_extractor"`
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

// S3Config holds AWS S3 settings for page content storage.
type S3Config struct {
	Region        string        `mapstructure:"region"`
	Bucket        string        `mapstructure:"bucket"`
	Endpoint      string        `mapstructure:"endpoint"`
	AccessKey     string        `mapstructure:"access_key"`
	SecretKey     string        `mapstructure:"secret_key"`
	PresignExpiry time.Duration `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// QueueConfig holds extraction queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	MaxRetries       int `mapstructure:"max_retries"`
	Concurrency      int `mapstructure:"concurrency"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// OCRConfig holds settings for the external OCR collaborator.
type OCRConfig struct {
	Command     string `mapstructure:"command"`
	Languages   string `mapstructure:"languages"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
	Disabled    bool   `mapstructure:"disabled"`
}

// SearchConfig holds settings for the search index collaborator.
type SearchConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	Index       string `mapstructure:"index"`
	APIKey      string `mapstructure:"api_key"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// ExtractorProviderConfig holds settings for a single LLM provider adapter.
// API keys are resolved per job from the credential store, never from config.
type ExtractorProviderConfig struct {
	Model       string `mapstructure:"model"`
	Endpoint    string `mapstructure:"endpoint"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// ExtractorConfig holds the per-provider extraction settings.
type ExtractorConfig struct {
	OpenAI    ExtractorProviderConfig `mapstructure:"openai"`
	Anthropic ExtractorProviderConfig `mapstructure:"anthropic"`
	Google    ExtractorProviderConfig `mapstructure:"google"`
}

// LocalExtractorConfig holds settings for the stdin/stdout extractor protocol.
type LocalExtractorConfig struct {
	Command     string `mapstructure:"command"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// Load reads configuration from environment variables with the SCANVAULT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SCANVAULT")
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
	v.SetDefault("db.user", "scanvault")
	v.SetDefault("db.password", "scanvault_secret")
	v.SetDefault("db.name", "scanvault_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "scanvault-pages")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", "1h")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 10)
	v.SetDefault("queue.max_retries", 3)
	v.SetDefault("queue.concurrency", 5)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@scanvault.io")
	v.SetDefault("email.from_name", "ScanVault")

	// OCR defaults
	v.SetDefault("ocr.command", "tesseract")
	v.SetDefault("ocr.languages", "eng")
	v.SetDefault("ocr.timeout_secs", 60)
	v.SetDefault("ocr.disabled", false)

	// Search defaults (empty endpoint disables indexing)
	v.SetDefault("search.endpoint", "")
	v.SetDefault("search.index", "assets")
	v.SetDefault("search.api_key", "")
	v.SetDefault("search.timeout_secs", 10)

	// Extractor defaults
	v.SetDefault("extractor.openai.model", "gpt-4o")
	v.SetDefault("extractor.openai.timeout_secs", 120)
	v.SetDefault("extractor.anthropic.model", "claude-sonnet-4-20250514")
	v.SetDefault("extractor.anthropic.timeout_secs", 120)
	v.SetDefault("extractor.google.model", "gemini-2.0-flash")
	v.SetDefault("extractor.google.timeout_secs", 120)

	// Local extractor defaults
	v.SetDefault("local_extractor.command", "")
	v.SetDefault("local_extractor.timeout_secs", 120)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Viper does not split env-provided strings into slices.
	if len(cfg.CORS.AllowedOrigins) == 1 && strings.Contains(cfg.CORS.AllowedOrigins[0], ",") {
		cfg.CORS.AllowedOrigins = strings.Split(cfg.CORS.AllowedOrigins[0], ",")
	}

	if env := os.Getenv("SCANVAULT_SERVER_ENVIRONMENT"); env != "" {
		cfg.Server.Environment = env
	}

	return &cfg, nil
}
