package storage_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/transcribealpha/logger"
	"github.com/kbukum/transcribealpha/storage"
	_ "github.com/kbukum/transcribealpha/storage/local"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     storage.Config
		wantErr bool
	}{
		{"disabled", storage.Config{}, false},
		{"local", storage.Config{Enabled: true, Provider: storage.ProviderLocal}, false},
		{"s3 complete", storage.Config{Enabled: true, Endpoint: "https://r2.example", AccessKey: "a", SecretKey: "b"}, false},
		{"s3 missing keys", storage.Config{Enabled: true, Endpoint: "https://r2.example"}, true},
		{"s3 missing endpoint", storage.Config{Enabled: true, AccessKey: "a", SecretKey: "b"}, true},
		{"unknown provider", storage.Config{Enabled: true, Provider: "ftp"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.ApplyDefaults()
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Defaults(t *testing.T) {
	var cfg storage.Config
	cfg.ApplyDefaults()
	if cfg.Bucket != "transcript" || cfg.Region != "auto" || cfg.PresignExpiry != time.Hour || cfg.Provider != storage.ProviderS3 {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestObjectKey(t *testing.T) {
	now := time.Unix(1700000000, 0)
	tests := map[string]string{
		"deposition.mp3":          "1700000000_deposition.mp3",
		"../../etc/passwd":        "1700000000_passwd",
		`C:\Users\me\hearing.wav`: "1700000000_hearing.wav",
		"":                        "1700000000_upload",
	}
	for in, want := range tests {
		if got := storage.ObjectKey(in, now); got != want {
			t.Errorf("ObjectKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestReadAll_Limit(t *testing.T) {
	ctx := context.Background()
	s, err := storage.New(storage.Config{Enabled: true, Provider: storage.ProviderLocal, BasePath: t.TempDir()}, logger.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Upload(ctx, "k", bytes.NewReader([]byte("0123456789")), ""); err != nil {
		t.Fatal(err)
	}

	data, err := storage.ReadAll(ctx, s, "k", 10)
	if err != nil || string(data) != "0123456789" {
		t.Errorf("ReadAll at limit = %q, %v", data, err)
	}
	if _, err := storage.ReadAll(ctx, s, "k", 9); !errors.Is(err, storage.ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
	if _, err := storage.ReadAll(ctx, s, "missing", 0); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestComponent_Lifecycle(t *testing.T) {
	ctx := context.Background()

	disabled := storage.NewComponent(storage.Config{}, logger.Nop())
	if err := disabled.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if disabled.Storage() != nil {
		t.Error("disabled component should have no storage")
	}
	if h := disabled.Health(ctx); h.Status != "healthy" || h.Message != "disabled" {
		t.Errorf("disabled health = %+v", h)
	}

	c := storage.NewComponent(storage.Config{Enabled: true, Provider: storage.ProviderLocal, BasePath: t.TempDir()}, logger.Nop())
	if h := c.Health(ctx); h.Status != "unhealthy" {
		t.Errorf("health before start = %+v", h)
	}
	if err := c.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if h := c.Health(ctx); h.Status != "healthy" {
		t.Errorf("health after start = %+v", h)
	}
	if d := c.Describe(); !strings.Contains(d.Details, "provider=local") {
		t.Errorf("describe = %+v", d)
	}
	if err := c.Stop(ctx); err != nil || c.Storage() != nil {
		t.Errorf("stop: %v", err)
	}
}
