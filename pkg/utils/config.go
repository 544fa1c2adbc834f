package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Catalog  CatalogConfig
	Refresh  RefreshConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type CatalogConfig struct {
	BaseURL         string
	ImageBaseURL    string
	Language        string
	CredentialsFile string
	ConnectTimeout  time.Duration
	ReadTimeout     time.Duration
	RateLimit       float64 // requests per second
	RateBurst       int
}

type RefreshConfig struct {
	Enabled  bool
	Interval time.Duration
}

// LoadConfig reads .env from the working directory.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

// LoadConfigFrom reads an env-style file; a missing file falls back to
// defaults and the process environment.
func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "movie-favorites")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("TMDB_BASE_URL", "https://api.themoviedb.org")
	v.SetDefault("TMDB_IMAGE_BASE_URL", "https://image.tmdb.org/t/p")
	v.SetDefault("TMDB_LANGUAGE", "en-US")
	v.SetDefault("TMDB_CREDENTIALS_FILE", "credentials.properties")
	v.SetDefault("TMDB_CONNECT_TIMEOUT", "3s")
	v.SetDefault("TMDB_READ_TIMEOUT", "3s")
	v.SetDefault("TMDB_RATE_LIMIT", 4.0)
	v.SetDefault("TMDB_RATE_BURST", 4)
	v.SetDefault("REFRESH_ENABLED", true)
	v.SetDefault("REFRESH_INTERVAL", "6h")

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Catalog: CatalogConfig{
			BaseURL:         v.GetString("TMDB_BASE_URL"),
			ImageBaseURL:    v.GetString("TMDB_IMAGE_BASE_URL"),
			Language:        v.GetString("TMDB_LANGUAGE"),
			CredentialsFile: v.GetString("TMDB_CREDENTIALS_FILE"),
			ConnectTimeout:  v.GetDuration("TMDB_CONNECT_TIMEOUT"),
			ReadTimeout:     v.GetDuration("TMDB_READ_TIMEOUT"),
			RateLimit:       v.GetFloat64("TMDB_RATE_LIMIT"),
			RateBurst:       v.GetInt("TMDB_RATE_BURST"),
		},
		Refresh: RefreshConfig{
			Enabled:  v.GetBool("REFRESH_ENABLED"),
			Interval: v.GetDuration("REFRESH_INTERVAL"),
		},
	}

	return config, nil
}
