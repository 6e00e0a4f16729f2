package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
	"golang.org/x/text/language"
)

// Config holds all application configuration.
// Supports environment variables with sensible defaults.
//
// Environment Variables:
// LLM Configuration:
// - LLM_API_KEY: API key for the LLM provider (required)
// - LLM_API_URL: API endpoint URL (default: https://openrouter.ai/api/v1)
// - LLM_MODEL: Model name to use (default: openai/gpt-3.5-turbo)
// - LLM_MAX_TOKENS: Maximum tokens for responses (default: 8000)
// - LLM_TEMPERATURE: Temperature for responses (default: 0.7)
// - LLM_TIMEOUT: Request timeout in seconds (default: 30)
// - LLM_SITE_URL: Site URL for HTTP referer header (optional)
// - LLM_APP_NAME: Application name for X-Title header (optional)
//
// Translation Configuration:
// - TRANSLATE_MAX_BATCH_TOKENS: Token budget per translation batch (default: 700)
//
// Watch Mode Configuration:
// - WATCH_DIRS: Comma-separated directories to scan for subtitle files
// - WATCH_CRON: Cron expression for scan scheduling (default: @every 1h)
//
// Storage Configuration:
// - CHECKPOINT_DB: Path to the SQLite batch-checkpoint database (empty disables checkpoints)
//
// System Configuration:
// - LOG_LEVEL: debug, info, warn, error or fatal (default: info)
type Config struct {
	LLM       LLMConfig       `json:"llm"`
	Translate TranslateConfig `json:"translate"`
	Watch     WatchConfig     `json:"watch"`
	Storage   StorageConfig   `json:"storage"`
	LogLevel  string          `json:"log_level"`
}

// LLMConfig holds the configuration for the LLM client
type LLMConfig struct {
	APIKey      string  `json:"api_key"`
	APIURL      string  `json:"api_url"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	Timeout     int     `json:"timeout"`
	SiteURL     string  `json:"site_url"`
	AppName     string  `json:"app_name"`
}

// TranslateConfig holds batching configuration for translation runs
type TranslateConfig struct {
	MaxBatchTokens int `json:"max_batch_tokens"`
}

// WatchConfig holds the configuration for cron-driven watch mode
type WatchConfig struct {
	Dirs           []string `json:"dirs"`
	CronExpr       string   `json:"cron_expr"`
	TargetLanguage string   `json:"target_language"`
}

// Validate checks the watch-mode configuration
func (c WatchConfig) Validate() error {
	if len(c.Dirs) == 0 {
		return fmt.Errorf("at least one watch directory is required")
	}
	if _, err := cron.ParseStandard(c.CronExpr); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	if strings.TrimSpace(c.TargetLanguage) == "" {
		return fmt.Errorf("target language is required")
	}
	if _, err := language.Parse(c.TargetLanguage); err != nil {
		return fmt.Errorf("invalid target language: %w", err)
	}
	return nil
}

// StorageConfig holds the configuration for batch-checkpoint persistence
type StorageConfig struct {
	CheckpointDB string `json:"checkpoint_db"`
}

// Option is a function type for configuring Config
type Option func(*Config)

// New creates a new Config instance with values from environment variables
// and options
func New(opts ...Option) (*Config, error) {
	config := &Config{
		LLM: LLMConfig{
			APIKey:      getEnvString("LLM_API_KEY", ""),
			APIURL:      getEnvString("LLM_API_URL", "https://openrouter.ai/api/v1"),
			Model:       getEnvString("LLM_MODEL", "openai/gpt-3.5-turbo"),
			MaxTokens:   getEnvInt("LLM_MAX_TOKENS", 8000),
			Temperature: getEnvFloat("LLM_TEMPERATURE", 0.7),
			Timeout:     getEnvInt("LLM_TIMEOUT", 30),
			SiteURL:     getEnvString("LLM_SITE_URL", ""),
			AppName:     getEnvString("LLM_APP_NAME", ""),
		},
		Translate: TranslateConfig{
			MaxBatchTokens: getEnvInt("TRANSLATE_MAX_BATCH_TOKENS", 700),
		},
		Watch: WatchConfig{
			Dirs:           splitList(getEnvString("WATCH_DIRS", "")),
			CronExpr:       getEnvString("WATCH_CRON", "@every 1h"),
			TargetLanguage: getEnvString("WATCH_TARGET_LANGUAGE", ""),
		},
		Storage: StorageConfig{
			CheckpointDB: getEnvString("CHECKPOINT_DB", ""),
		},
		LogLevel: getEnvString("LOG_LEVEL", "info"),
	}

	for _, opt := range opts {
		opt(config)
	}

	return config, nil
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	ret := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ret = append(ret, trimmed)
		}
	}
	return ret
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
