package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/transcribealpha/component"
	"github.com/kbukum/transcribealpha/logger"
	"github.com/kbukum/transcribealpha/storage"
	"github.com/kbukum/transcribealpha/transcription/gemini"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Gemini.APIKey = "test-key"
	cfg.ApplyDefaults()
	return cfg
}

func TestConfigDefaults(t *testing.T) {
	cfg := validConfig()
	if cfg.Name != ServiceName || cfg.Version == "" {
		t.Errorf("name = %q version = %q", cfg.Name, cfg.Version)
	}
	if cfg.Server.Port != 8080 || cfg.Gemini.Model != gemini.DefaultModel {
		t.Errorf("server port = %d model = %q", cfg.Server.Port, cfg.Gemini.Model)
	}
	if cfg.Transcription.Polling.MaxAttempts != 15 {
		t.Errorf("max attempts = %d", cfg.Transcription.Polling.MaxAttempts)
	}
	if cfg.Tracing.Environment != "development" || cfg.Metrics.Interval != 15*time.Second {
		t.Errorf("tracing env = %q metrics interval = %s", cfg.Tracing.Environment, cfg.Metrics.Interval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing api key", func(c *Config) { c.Gemini.APIKey = "" }, "GEMINI_API_KEY"},
		{"bad environment", func(c *Config) { c.Environment = "qa" }, "environment"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"storage without endpoint", func(c *Config) {
			c.Storage.Enabled = true
			c.Storage.AccessKey, c.Storage.SecretKey = "a", "s"
		}, "R2_ENDPOINT"},
		{"sample rate", func(c *Config) { c.Tracing.SampleRate = 2 }, "sample_rate"},
		{"inverted polling bounds", func(c *Config) { c.Transcription.Polling.Max = time.Millisecond }, "max_delay"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigEnvAliases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yml := "name: transcribealpha\nserver:\n  port: 9090\ngemini:\n  upload_timeout: 2m\nstorage:\n  enabled: true\n  presign_expiry: 30m\n"
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("R2_BUCKET_NAME", "recordings")
	t.Setenv("R2_ENDPOINT", "https://acct.r2.cloudflarestorage.com")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Gemini.APIKey != "from-env" || cfg.Gemini.UploadTimeout != 2*time.Minute {
		t.Errorf("gemini = %+v", cfg.Gemini)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if !cfg.Storage.Enabled || cfg.Storage.Bucket != "recordings" || cfg.Storage.Endpoint == "" || cfg.Storage.PresignExpiry != 30*time.Minute {
		t.Errorf("storage = %+v", cfg.Storage)
	}
}

func TestAPIComponentBeforeStart(t *testing.T) {
	cfg := validConfig()
	cfg.Transcription.MaxConcurrent = 3
	log := logger.Nop()
	c := NewAPIComponent(cfg, gemini.NewComponent(cfg.Gemini, log), storage.NewComponent(cfg.Storage, log), gin.New(), nil, log)

	if err := c.Start(context.Background()); err == nil {
		t.Fatal("Start should fail before the gemini client exists")
	}
	if h := c.Health(context.Background()); h.Status != component.StatusUnhealthy {
		t.Errorf("health = %+v", h)
	}
	d := c.Describe()
	if !strings.Contains(d.Details, "max_concurrent=3") || !strings.Contains(d.Details, "polls=15") {
		t.Errorf("details = %q", d.Details)
	}
}

func TestTelemetryDisabled(t *testing.T) {
	cfg := validConfig()
	tel, err := InitTelemetry(context.Background(), cfg)
	if err != nil {
		t.Fatalf("InitTelemetry: %v", err)
	}
	if tel.Metrics == nil {
		t.Error("metrics should be usable with exporters disabled")
	}
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}
