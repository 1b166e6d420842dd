package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	App       AppConfig
	HTTP      HTTPConfig
	Providers ProvidersConfig
}

type ServerConfig struct {
	Port int `validate:"gt=0,lte=65535"`
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

type AppConfig struct {
	Language     string `validate:"oneof=en es"`
	Units        string `validate:"oneof=metric imperial"`
	Timezone     string // IANA name, or "Local"
	TimezoneMode string `validate:"oneof=viewer location"`
	// DataDir holds the persisted favorites and history. Empty keeps them in memory.
	DataDir string
	// FavoritesRefreshInterval of 0 disables the background refresh.
	FavoritesRefreshInterval time.Duration `validate:"gte=0"`
}

type HTTPConfig struct {
	Timeout    time.Duration `validate:"gt=0"`
	MaxRetries int           `validate:"gte=0"`
}

type ProvidersConfig struct {
	OpenWeatherAPIKey    string
	UnsplashAccessKey    string
	GoogleGeocoderAPIKey string
	NominatimRPS         float64 `validate:"gt=0"`
}

// Load reads an optional .env file, then configuration from config.yaml and
// DASHBOARD_* environment variables on top of defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.weather-dashboard")

	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("app.language", "es")
	v.SetDefault("app.units", "metric")
	v.SetDefault("app.timezone", "Local")
	v.SetDefault("app.timezoneMode", "viewer")
	v.SetDefault("app.dataDir", "")
	v.SetDefault("app.favoritesRefreshInterval", "30m")
	v.SetDefault("http.timeout", "10s")
	v.SetDefault("http.maxRetries", 0)
	v.SetDefault("providers.openWeatherAPIKey", "")
	v.SetDefault("providers.unsplashAccessKey", "")
	v.SetDefault("providers.googleGeocoderAPIKey", "")
	v.SetDefault("providers.nominatimRPS", 1.0)

	v.SetEnvPrefix("DASHBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	fallbackEnv(&cfg.Providers.OpenWeatherAPIKey, "OPENWEATHER_API_KEY")
	fallbackEnv(&cfg.Providers.UnsplashAccessKey, "UNSPLASH_ACCESS_KEY")
	fallbackEnv(&cfg.Providers.GoogleGeocoderAPIKey, "GOOGLE_GEOCODER_API_KEY")

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := cfg.ViewerLocation(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func fallbackEnv(dst *string, key string) {
	if *dst == "" {
		*dst = os.Getenv(key)
	}
}

// GetServerAddr returns the server address in the format ":port".
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// ViewerLocation resolves app.timezone.
func (c *Config) ViewerLocation() (*time.Location, error) {
	if c.App.Timezone == "" || strings.EqualFold(c.App.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("app.timezone: %w", err)
	}
	return loc, nil
}

// NewLogger creates a new slog.Logger based on the configuration.
func (c *Config) NewLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
