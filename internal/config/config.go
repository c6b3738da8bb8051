package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "ESTOQUE"

var DefaultCategories = []string{
	"Maturado - artesanal",
	"Fresco - artesanal",
}

type Config struct {
	Catalog CatalogConfig
	Log     LogConfig
}

type CatalogConfig struct {
	DataFile   string
	ReportFile string
	Categories []string
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Load reads configuration from the environment (ESTOQUE_ prefix), an
// optional .env file and, when path is not empty, a YAML config file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("DATA_FILE", "produtos.json")
	v.SetDefault("REPORT_FILE", "relatorio_produtos.csv")
	v.SetDefault("CATEGORIES", DefaultCategories)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "estoque.log")
	v.SetDefault("LOG_MAX_SIZE_MB", 10)
	v.SetDefault("LOG_MAX_BACKUPS", 3)
	v.SetDefault("LOG_MAX_AGE_DAYS", 28)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{
		Catalog: CatalogConfig{
			DataFile:   strings.TrimSpace(v.GetString("DATA_FILE")),
			ReportFile: strings.TrimSpace(v.GetString("REPORT_FILE")),
			Categories: categories(v.Get("CATEGORIES")),
		},
		Log: LogConfig{
			Level:      v.GetString("LOG_LEVEL"),
			File:       strings.TrimSpace(v.GetString("LOG_FILE")),
			MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
			MaxAgeDays: v.GetInt("LOG_MAX_AGE_DAYS"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Catalog.DataFile == "" {
		return errors.New("data file path is required")
	}
	if c.Catalog.ReportFile == "" {
		return errors.New("report file path is required")
	}
	if len(c.Catalog.Categories) == 0 {
		return errors.New("at least one category is required")
	}
	return nil
}

// categories accepts a YAML list or a ";"-separated string from the
// environment. Category names may contain spaces, so whitespace splitting
// is not an option.
func categories(raw interface{}) []string {
	var items []string
	switch val := raw.(type) {
	case string:
		items = strings.Split(val, ";")
	case []string:
		items = val
	case []interface{}:
		for _, item := range val {
			items = append(items, fmt.Sprint(item))
		}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
