package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "NEWSCLF_"

// Config holds the application configuration
type Config struct {
	Server     ServerConfig     `envPrefix:"SERVER_"`
	Classifier ClassifierConfig `envPrefix:"CLASSIFIER_"`
	Session    SessionConfig    `envPrefix:"SESSION_"`
	Log        LogConfig        `envPrefix:"LOG_"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `env:"HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"PORT" envDefault:"8080"`
	Mode            string        `env:"MODE" envDefault:"debug"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// ClassifierConfig holds settings for the remote classification service
type ClassifierConfig struct {
	BaseURL string        `env:"BASE_URL" envDefault:"http://localhost:5000"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// SessionConfig holds per-session limits
type SessionConfig struct {
	TTL            time.Duration `env:"TTL" envDefault:"30m"`
	MaxUploadBytes int64         `env:"MAX_UPLOAD_BYTES" envDefault:"1048576"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
	Output string `env:"OUTPUT" envDefault:"stdout"`
}

// Addr returns the listen address of the HTTP server
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads an optional .env file and then the environment on top of defaults
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that have no safe fallback
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}

	u, err := url.Parse(c.Classifier.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid classifier base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid classifier base url %q: scheme must be http or https", c.Classifier.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid classifier base url %q: missing host", c.Classifier.BaseURL)
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("invalid session ttl %s", c.Session.TTL)
	}
	if c.Session.MaxUploadBytes <= 0 {
		return fmt.Errorf("invalid max upload size %d", c.Session.MaxUploadBytes)
	}

	return nil
}
