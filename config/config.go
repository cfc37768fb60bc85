package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	cfg := Default()
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when a field is absent from the
// config file. The secrets have no defaults on purpose.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8000,
			BaseURL: "http://localhost:8000",
			// Credentialed CORS cannot use a wildcard origin.
			AllowOrigins: "http://localhost:3000",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "foodgram",
			PoolSize: 10,
		},
		Auth: AuthConfig{
			TokenCacheSize: 1024,
			BcryptCost:     12,
		},
		Pagination: PaginationConfig{
			PageSize:    6,
			MaxPageSize: 100,
		},
	}
}

type Config struct {
	Log        LogConfig        `toml:"log"`
	Server     ServerConfig     `toml:"server"`
	DB         DBConfig         `toml:"db"`
	Storage    StorageConfig    `toml:"storage"`
	Auth       AuthConfig       `toml:"auth"`
	Pagination PaginationConfig `toml:"pagination"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	// BaseURL is the absolute prefix used when building image URLs,
	// pagination links and short links.
	BaseURL string `toml:"base_url"`
	// AllowOrigins is passed to the CORS middleware as-is.
	AllowOrigins string `toml:"allow_origins"`
}

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

// StorageConfig configures the S3-compatible media store (MinIO in
// development, any Spaces-style endpoint in production).
type StorageConfig struct {
	Endpoint  string `toml:"endpoint"`
	Region    string `toml:"region"`
	Bucket    string `toml:"bucket"`
	Key       string `toml:"key"`
	Secret    string `toml:"secret"`
	MediaRoot string `toml:"media_root"`
}

type AuthConfig struct {
	TokenCacheSize int `toml:"token_cache_size"`
	BcryptCost     int `toml:"bcrypt_cost"`
}

type PaginationConfig struct {
	PageSize    int `toml:"page_size"`
	MaxPageSize int `toml:"max_page_size"`
}

func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
