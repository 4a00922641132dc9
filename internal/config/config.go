package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const FileName = "ddlview.config.json"

type Config struct {
	Version    string   `json:"version" mapstructure:"version"`
	SchemaPath string   `json:"schema_path" mapstructure:"schema_path"` // .sql file or folder of .sql files
	ExportPath string   `json:"export_path" mapstructure:"export_path"`
	Database   Database `json:"database" mapstructure:"database"`
	Studio     Studio   `json:"studio" mapstructure:"studio"`
	Cache      Cache    `json:"cache" mapstructure:"cache"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
	Schema   string `json:"schema" mapstructure:"schema"`
}

type Studio struct {
	Port int `json:"port" mapstructure:"port"`
}

type Cache struct {
	Size        int    `json:"size" mapstructure:"size"`
	TTL         string `json:"ttl" mapstructure:"ttl"`
	RedisURLEnv string `json:"redis_url_env" mapstructure:"redis_url_env"`
}

// Default returns the configuration written by `ddlview init`.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Version == "" {
		c.Version = "1"
	}
	if c.SchemaPath == "" {
		c.SchemaPath = "db/schema"
	}
	if c.ExportPath == "" {
		c.ExportPath = "db/export"
	}
	if c.Database.Provider == "" {
		c.Database.Provider = "postgresql"
	}
	if c.Database.URLEnv == "" {
		c.Database.URLEnv = "DATABASE_URL"
	}
	if c.Database.Schema == "" {
		c.Database.Schema = "public"
	}
	if c.Studio.Port == 0 {
		c.Studio.Port = 5555
	}
	if c.Cache.Size == 0 {
		c.Cache.Size = 128
	}
	if c.Cache.TTL == "" {
		c.Cache.TTL = "10m"
	}
	if c.Cache.RedisURLEnv == "" {
		c.Cache.RedisURLEnv = "REDIS_URL"
	}
}

func (c *Config) Validate() error {
	switch c.Database.Provider {
	case "postgresql", "postgres":
	default:
		return fmt.Errorf("unsupported database provider: %s. Supported providers: [postgresql postgres]", c.Database.Provider)
	}

	if c.SchemaPath == "" {
		return fmt.Errorf("schema_path cannot be empty")
	}

	if c.ExportPath == "" {
		return fmt.Errorf("export_path cannot be empty")
	}

	if c.Studio.Port < 1 || c.Studio.Port > 65535 {
		return fmt.Errorf("studio.port must be between 1 and 65535, got %d", c.Studio.Port)
	}

	if c.Cache.Size < 0 {
		return fmt.Errorf("cache.size cannot be negative")
	}

	if _, err := c.CacheTTL(); err != nil {
		return err
	}

	return nil
}

func (c *Config) CacheTTL() (time.Duration, error) {
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid cache.ttl %q: %w", c.Cache.TTL, err)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("cache.ttl must be positive, got %s", c.Cache.TTL)
	}
	return ttl, nil
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

// GetRedisURL returns the Redis URL, or "" when the studio should cache in memory.
func (c *Config) GetRedisURL() string {
	return os.Getenv(c.Cache.RedisURLEnv)
}

func (c *Config) EnsureDirectories() error {
	schemaDir := c.SchemaPath
	if filepath.Ext(schemaDir) == ".sql" {
		schemaDir = filepath.Dir(schemaDir)
	}

	for _, dir := range []string{schemaDir, c.ExportPath} {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
