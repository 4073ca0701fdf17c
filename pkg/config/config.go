package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingWebhook is returned when WECHAT_WEBHOOK is not set.
// 실행 전체를 중단시키는 유일한 설정 오류
var ErrMissingWebhook = errors.New("WECHAT_WEBHOOK is required")

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	Env string // development, staging, production

	// Notification
	WeCom WeComConfig

	// Screening
	Screening ScreeningConfig

	// Output
	OutputDir string
	CSVExport bool

	// Scheduling
	Schedule string // cron expression with seconds

	// Logging
	LogLevel  string
	LogFormat string
}

// WeComConfig holds the group robot webhook settings
type WeComConfig struct {
	WebhookURL    string
	UploadURL     string
	UploadTimeout time.Duration
	PostTimeout   time.Duration
	RatePerMinute int
}

// ScreeningConfig holds the option screening parameters
type ScreeningConfig struct {
	MinMonthlyYield float64 // percent, e.g. 6.0
	WatchlistPath   string  // empty: built-in watchlist
	ExpiryMinDays   int     // month-end expiry must be at least this far out
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()
	return validated(build())
}

// LoadFrom loads the given .env file before reading the environment.
// A missing file is an error because the caller asked for it explicitly.
func LoadFrom(envFile string) (*Config, error) {
	cfg, err := ReadFrom(envFile)
	if err != nil {
		return nil, err
	}
	return validated(cfg)
}

// ReadFrom is LoadFrom without validation, for commands that never notify
func ReadFrom(envFile string) (*Config, error) {
	if envFile == "" {
		loadEnvFile()
		return build(), nil
	}
	if err := godotenv.Load(envFile); err != nil {
		return nil, fmt.Errorf("load env file %s: %w", envFile, err)
	}
	return build(), nil
}

func validated(cfg *Config) (*Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func build() *Config {
	return &Config{
		Env: getEnv("ENV", "development"),

		WeCom: WeComConfig{
			WebhookURL:    getEnv("WECHAT_WEBHOOK", ""),
			UploadURL:     getEnv("WECOM_UPLOAD_URL", "https://qyapi.weixin.qq.com/cgi-bin/webhook/upload_media"),
			UploadTimeout: getEnvAsDuration("UPLOAD_TIMEOUT", "30s"),
			PostTimeout:   getEnvAsDuration("POST_TIMEOUT", "10s"),
			RatePerMinute: getEnvAsInt("WEBHOOK_RATE_PER_MIN", 20),
		},

		Screening: ScreeningConfig{
			MinMonthlyYield: getEnvAsFloat("MIN_MONTHLY_YIELD", 6.0),
			WatchlistPath:   getEnv("WATCHLIST_PATH", ""),
			ExpiryMinDays:   getEnvAsInt("EXPIRY_MIN_DAYS", 21),
		},

		OutputDir: getEnv("OUTPUT_DIR", "."),
		CSVExport: getEnvAsBool("CSV_EXPORT", false),

		Schedule: getEnv("SCREEN_SCHEDULE", "0 0 21 * * 1-5"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.WeCom.WebhookURL == "" {
		return ErrMissingWebhook
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Screening.MinMonthlyYield < 0 {
		return fmt.Errorf("MIN_MONTHLY_YIELD must not be negative, got %v", c.Screening.MinMonthlyYield)
	}

	if c.Screening.ExpiryMinDays < 1 {
		return fmt.Errorf("EXPIRY_MIN_DAYS must be at least 1, got %d", c.Screening.ExpiryMinDays)
	}

	if c.WeCom.RatePerMinute <= 0 {
		return fmt.Errorf("WEBHOOK_RATE_PER_MIN must be positive, got %d", c.WeCom.RatePerMinute)
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
