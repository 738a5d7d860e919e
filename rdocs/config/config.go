package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	internal "github.com/ZanzyTHEbar/recent-documents/rdocs"

	"github.com/spf13/viper"
)

// Source types understood by source.FromConfig.
const (
	SourceGenerator = "generator"
	SourceSearch    = "search"
	SourceLibSQL    = "libsql"
	SourceMerge     = "merge"
	SourceNone      = "none"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Source    SourceConfig    `mapstructure:"source"`
	Generator GeneratorConfig `mapstructure:"generator"`
}

// LogConfig stores logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// EngineConfig stores the list engine start-up state.
type EngineConfig struct {
	SortField      string `mapstructure:"sortField"`
	SortDescending bool   `mapstructure:"sortDescending"`
}

// SourceConfig selects and configures the record source.
type SourceConfig struct {
	Type     string         `mapstructure:"type"`
	Fallback bool           `mapstructure:"fallback"`
	Merge    []string       `mapstructure:"merge"`
	Search   SearchConfig   `mapstructure:"search"`
	Database DatabaseConfig `mapstructure:"database"`
}

// SearchConfig stores search endpoint details.
type SearchConfig struct {
	SiteURL        string `mapstructure:"siteURL"`
	QueryText      string `mapstructure:"queryText"`
	RowLimit       int    `mapstructure:"rowLimit"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
	MaxAttempts    int    `mapstructure:"maxAttempts"`
}

// DatabaseConfig stores database connection details.
type DatabaseConfig struct {
	DSN       string `mapstructure:"dsn"`
	AuthToken string `mapstructure:"authToken"`
	Limit     int    `mapstructure:"limit"`
}

// GeneratorConfig stores settings for the placeholder record generator.
type GeneratorConfig struct {
	Count int    `mapstructure:"count"`
	Seed  uint64 `mapstructure:"seed"`
	Link  string `mapstructure:"link"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("..")
		v.AddConfigPath(filepath.Join("etc", internal.DefaultAppName))
		v.AddConfigPath(internal.DefaultConfigPath)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetDefault("log.level", "info")

	v.SetDefault("engine.sortField", "dateModifiedValue")
	v.SetDefault("engine.sortDescending", true)

	v.SetDefault("source.type", SourceGenerator)
	v.SetDefault("source.fallback", true)
	v.SetDefault("source.merge", []string{SourceLibSQL, SourceSearch})
	v.SetDefault("source.search.siteURL", "")
	v.SetDefault("source.search.queryText", internal.DefaultSearchQueryText)
	v.SetDefault("source.search.rowLimit", internal.DefaultSearchRowLimit)
	v.SetDefault("source.search.timeoutSeconds", 30)
	v.SetDefault("source.search.maxAttempts", 3)
	v.SetDefault("source.database.dsn", internal.DefaultDatabaseDSN)
	v.SetDefault("source.database.authToken", "")
	v.SetDefault("source.database.limit", 100)

	v.SetDefault("generator.count", 10)
	v.SetDefault("generator.seed", 0)
	v.SetDefault("generator.link", "https://google.com")

	v.AutomaticEnv()                                   // Read in environment variables that match
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // source.search.siteURL becomes SOURCE_SEARCH_SITEURL

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found; defaults will be used.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that viper cannot type-check on its own.
func (c *Config) Validate() error {
	switch c.Source.Type {
	case SourceGenerator, SourceSearch, SourceLibSQL, SourceMerge, SourceNone:
	default:
		return fmt.Errorf("unknown source type %q", c.Source.Type)
	}
	if c.Source.Type == SourceSearch && strings.TrimSpace(c.Source.Search.SiteURL) == "" {
		return errors.New("source.search.siteURL is required for the search source")
	}
	if c.Generator.Count < 0 {
		return fmt.Errorf("generator.count must not be negative: %d", c.Generator.Count)
	}
	return nil
}
