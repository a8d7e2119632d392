package config

import (
	"fmt"
	"os"
	"strconv"

	"kwbank/normalization"
)

// Config конфигурация приложения kwbank
type Config struct {
	// База данных банка
	DatabasePath string `json:"database_path"`

	// Логирование
	LogLevel string `json:"log_level"`

	// Нормализация и дедупликация
	NormalizationMode    string  `json:"normalization_mode"`
	InteractiveThreshold float64 `json:"interactive_threshold"`
	ImportFuzzyThreshold float64 `json:"import_fuzzy_threshold"`

	// Кампании и экспорт
	BaseBid     float64 `json:"base_bid"`
	DailyBudget float64 `json:"daily_budget"`
	DefaultBid  float64 `json:"default_bid"`
	ExportDir   string  `json:"export_dir"`
}

// LoadConfig загружает конфигурацию из переменных окружения с дефолтами
func LoadConfig() (*Config, error) {
	config := &Config{
		DatabasePath: getEnv("KWBANK_DATABASE_PATH", "data/kwbank.db"),

		LogLevel: getEnv("KWBANK_LOG_LEVEL", "INFO"),

		NormalizationMode:    getEnv("KWBANK_NORMALIZATION_MODE", normalization.ModeBasic),
		InteractiveThreshold: getEnvFloat("KWBANK_INTERACTIVE_THRESHOLD", normalization.DefaultSimilarityThreshold),
		ImportFuzzyThreshold: getEnvFloat("KWBANK_IMPORT_FUZZY_THRESHOLD", normalization.DefaultImportFuzzyThreshold),

		BaseBid:     getEnvFloat("KWBANK_BASE_BID", 1.0),
		DailyBudget: getEnvFloat("KWBANK_DAILY_BUDGET", 10.0),
		DefaultBid:  getEnvFloat("KWBANK_DEFAULT_BID", 0.75),
		ExportDir:   getEnv("KWBANK_EXPORT_DIR", "data/exports"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("database path must not be empty")
	}

	switch c.LogLevel {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("invalid log level %q, must be one of DEBUG, INFO, WARN, ERROR", c.LogLevel)
	}

	if _, err := normalization.OptionsForMode(c.NormalizationMode); err != nil {
		return err
	}

	if c.InteractiveThreshold < 0 || c.InteractiveThreshold > 1 {
		return fmt.Errorf("interactive threshold %v out of range [0, 1]", c.InteractiveThreshold)
	}
	if c.ImportFuzzyThreshold < 0 || c.ImportFuzzyThreshold > 1 {
		return fmt.Errorf("import fuzzy threshold %v out of range [0, 1]", c.ImportFuzzyThreshold)
	}

	if c.BaseBid <= 0 {
		return fmt.Errorf("base bid must be positive, got %v", c.BaseBid)
	}
	if c.DailyBudget <= 0 {
		return fmt.Errorf("daily budget must be positive, got %v", c.DailyBudget)
	}
	if c.DefaultBid <= 0 {
		return fmt.Errorf("default bid must be positive, got %v", c.DefaultBid)
	}

	return nil
}

// getEnv возвращает значение переменной окружения или дефолт
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvFloat возвращает float значение переменной окружения или дефолт
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
