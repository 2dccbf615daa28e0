package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// AppConfig represents the complete configuration
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Engine   EngineConfig   `toml:"engine"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port int `toml:"port"`
}

// DatabaseConfig contains PostgreSQL settings
type DatabaseConfig struct {
	URL string `toml:"url"`
}

// RedisConfig contains cache settings
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// EngineConfig contains the classification defaults
type EngineConfig struct {
	DefaultLowStockThreshold int `toml:"default_low_stock_threshold"`
	ExpiryWarningDays        int `toml:"expiry_warning_days"`
}

// Load reads configuration from an optional TOML file (SHELFLIFE_CONFIG),
// then applies environment overrides and defaults. Environment always wins so
// container deployments can skip the file entirely.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	if path := os.Getenv("SHELFLIFE_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			cfg.Redis.DB = db
		}
	}
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
		}
		cfg.Server.Port = port
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}

	return cfg, nil
}
