package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Wordstat  WordstatConfig
	Embedding EmbeddingConfig
	Cache     CacheConfig
	Ranking   RankingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// WordstatConfig holds keyword-demand API configuration
type WordstatConfig struct {
	Token     string        `mapstructure:"token"`
	BaseURL   string        `mapstructure:"base_url"`
	Devices   []string      `mapstructure:"devices"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateRPS   float64       `mapstructure:"rate_rps"`
	RateBurst int           `mapstructure:"rate_burst"`
}

// EmbeddingConfig holds embedding provider configuration.
// The base URL may point at any OpenAI-compatible server (llama.cpp, vLLM).
type EmbeddingConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	APIKey        string `mapstructure:"api_key"`
	Model         string `mapstructure:"model"`
	QueryPrefix   string `mapstructure:"query_prefix"`
	PassagePrefix string `mapstructure:"passage_prefix"`
}

// CacheConfig holds demand-cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RankingConfig holds ranking pipeline configuration
type RankingConfig struct {
	MaxConcurrentFetches int `mapstructure:"max_concurrent_fetches"`
	DefaultTopK          int `mapstructure:"default_top_k"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/promorank/")

	// Environment variable settings
	v.SetEnvPrefix("PROMORANK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Wordstat defaults
	v.SetDefault("wordstat.base_url", "https://api.wordstat.yandex.net")
	v.SetDefault("wordstat.devices", []string{"phone", "desktop"})
	v.SetDefault("wordstat.timeout", "10s")
	v.SetDefault("wordstat.rate_rps", 5.0)
	v.SetDefault("wordstat.rate_burst", 10)

	// Embedding defaults (local llama.cpp-style server hosting an e5 model)
	v.SetDefault("embedding.base_url", "http://localhost:8081/v1")
	v.SetDefault("embedding.model", "intfloat/multilingual-e5-base")
	v.SetDefault("embedding.query_prefix", "query: ")
	v.SetDefault("embedding.passage_prefix", "passage: ")

	// Cache defaults
	v.SetDefault("cache.ttl", "1h")

	// Ranking defaults
	v.SetDefault("ranking.max_concurrent_fetches", 16)
	v.SetDefault("ranking.default_top_k", 3)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Wordstat.Token == "" {
		return fmt.Errorf("wordstat OAuth token is required (set PROMORANK_WORDSTAT_TOKEN)")
	}

	if config.Wordstat.Timeout <= 0 {
		return fmt.Errorf("wordstat timeout must be positive, got: %s", config.Wordstat.Timeout)
	}

	if config.Embedding.BaseURL == "" {
		return fmt.Errorf("embedding base URL is required (set PROMORANK_EMBEDDING_BASE_URL)")
	}

	if config.Ranking.MaxConcurrentFetches <= 0 {
		return fmt.Errorf("ranking.max_concurrent_fetches must be positive, got: %d",
			config.Ranking.MaxConcurrentFetches)
	}

	if config.Ranking.DefaultTopK <= 0 {
		return fmt.Errorf("ranking.default_top_k must be positive, got: %d",
			config.Ranking.DefaultTopK)
	}

	return nil
}
