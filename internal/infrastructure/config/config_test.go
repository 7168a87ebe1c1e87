package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default configuration", func(t *testing.T) {
		cfg, err := Load()

		require.NoError(t, err)
		assert.NotNil(t, cfg)

		// Check server defaults
		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Server.Mode)
		assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)

		// Check classifier defaults
		assert.Equal(t, "http://localhost:5000", cfg.Classifier.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.Classifier.Timeout)

		// Check session defaults
		assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
		assert.Equal(t, int64(1<<20), cfg.Session.MaxUploadBytes)

		// Check log defaults
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "stdout", cfg.Log.Output)
	})

	t.Run("reads from environment variables", func(t *testing.T) {
		t.Setenv("NEWSCLF_SERVER_PORT", "9090")
		t.Setenv("NEWSCLF_CLASSIFIER_BASE_URL", "https://classifier.example.com")
		t.Setenv("NEWSCLF_CLASSIFIER_TIMEOUT", "5s")
		t.Setenv("NEWSCLF_SESSION_TTL", "10m")
		t.Setenv("NEWSCLF_LOG_LEVEL", "debug")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "https://classifier.example.com", cfg.Classifier.BaseURL)
		assert.Equal(t, 5*time.Second, cfg.Classifier.Timeout)
		assert.Equal(t, 10*time.Minute, cfg.Session.TTL)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		t.Setenv("NEWSCLF_SERVER_PORT", "not-a-number")

		_, err := Load()

		assert.Error(t, err)
	})

	t.Run("rejects base url without scheme", func(t *testing.T) {
		t.Setenv("NEWSCLF_CLASSIFIER_BASE_URL", "localhost:5000")

		_, err := Load()

		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:     ServerConfig{Host: "127.0.0.1", Port: 8080},
			Classifier: ClassifierConfig{BaseURL: "http://localhost:5000", Timeout: time.Second},
			Session:    SessionConfig{TTL: time.Minute, MaxUploadBytes: 1024},
		}
	}

	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}, wantErr: false},
		{name: "zero port", mutate: func(cfg *Config) { cfg.Server.Port = 0 }, wantErr: true},
		{name: "port too large", mutate: func(cfg *Config) { cfg.Server.Port = 70000 }, wantErr: true},
		{name: "ftp scheme", mutate: func(cfg *Config) { cfg.Classifier.BaseURL = "ftp://host" }, wantErr: true},
		{name: "missing host", mutate: func(cfg *Config) { cfg.Classifier.BaseURL = "http://" }, wantErr: true},
		{name: "zero ttl", mutate: func(cfg *Config) { cfg.Session.TTL = 0 }, wantErr: true},
		{name: "zero upload limit", mutate: func(cfg *Config) { cfg.Session.MaxUploadBytes = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestServerConfig_Addr(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", Port: 3000}
	assert.Equal(t, "127.0.0.1:3000", cfg.Addr())
}
