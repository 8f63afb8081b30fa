package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the runtime configuration of the admin console. The backend
// base URL is injected into the client from here; nothing global.
type Config struct {
	// BaseURL is the backend API root, including the /api base path.
	BaseURL string `mapstructure:"base_url"`
	// Timeout bounds each backend request.
	Timeout time.Duration `mapstructure:"timeout"`
	// Env selects the logger profile (development or production).
	Env string `mapstructure:"env"`
}

// LoadConfig reads configuration from an optional config file plus
// CATALOG_-prefixed environment variables (a .env file is honoured, same
// as the backend services). Flags > env > file > defaults.
func LoadConfig(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("base_url", "http://localhost:5000/api")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("env", "development")

	v.SetEnvPrefix("CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base_url is required")
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive")
	}
	return cfg, nil
}
