package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func newJSONLogger(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	return NewWithWriter(&Config{Level: level, Format: "json"}, "transcribealpha", buf), buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	var m map[string]any
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("log line is not JSON: %q (%v)", line, err)
	}
	return m
}

func TestLogger_InfoWithFields(t *testing.T) {
	l, buf := newJSONLogger(t, "info")
	l.WithComponent("transcription").Info("upload complete", Fields("file", "files/abc", "attempt", 2))

	m := decodeLine(t, buf)
	if m["message"] != "upload complete" {
		t.Errorf("message = %v", m["message"])
	}
	if m[FieldComponent] != "transcription" {
		t.Errorf("component = %v", m[FieldComponent])
	}
	if m["file"] != "files/abc" {
		t.Errorf("file = %v", m["file"])
	}
	if m["service"] != "transcribealpha" {
		t.Errorf("service = %v", m["service"])
	}
}

func TestLogger_LevelFilters(t *testing.T) {
	l, buf := newJSONLogger(t, "warn")
	l.Info("hidden")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}
	l.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected warn line, got %q", buf.String())
	}
}

func TestLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	l, buf := newJSONLogger(t, "loud")
	l.Debug("hidden")
	l.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestLogger_WithContextRequestID(t *testing.T) {
	l, buf := newJSONLogger(t, "info")
	ctx := ContextWithRequestID(context.Background(), "req-42")
	l.WithContext(ctx).Info("hello")

	m := decodeLine(t, buf)
	if m[FieldRequestID] != "req-42" {
		t.Errorf("request_id = %v", m[FieldRequestID])
	}
	if RequestIDFromContext(context.Background()) != "" {
		t.Error("expected empty request id for bare context")
	}
}

func TestLogger_WithErrorAndFields(t *testing.T) {
	l, buf := newJSONLogger(t, "info")
	l.WithError(errors.New("boom")).WithFields(map[string]interface{}{"stage": "polling"}).Error("failed")

	m := decodeLine(t, buf)
	if m["error"] != "boom" || m["stage"] != "polling" {
		t.Errorf("unexpected fields %v", m)
	}
}

func TestNop(t *testing.T) {
	Nop().Info("nothing", Fields("a", 1))
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two", 3, "skipped", "dangling")
	if len(m) != 2 || m["a"] != 1 || m["b"] != "two" {
		t.Errorf("Fields = %v", m)
	}
	if ErrorFields("upload", errors.New("x"))[FieldError] != "x" {
		t.Error("ErrorFields missing error")
	}
	if DurationFields("poll", 1500*time.Millisecond)[FieldDuration] != int64(1500) {
		t.Error("DurationFields wrong duration")
	}
}

func TestConfig_DefaultsAndValidate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != "console" || cfg.Output != "stdout" || !cfg.Timestamp {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	cfg.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("expected invalid level error")
	}
	cfg.Level = "info"
	cfg.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("expected invalid format error")
	}
}

func TestGlobalLogger(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	buf := &bytes.Buffer{}
	SetGlobalLogger(NewWithWriter(&Config{Level: "info", Format: "json"}, "svc", buf))
	WithComponent("api").Info("routed")
	if !strings.Contains(buf.String(), `"component":"api"`) {
		t.Errorf("global logger not used: %q", buf.String())
	}
}
