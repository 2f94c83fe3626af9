package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/transcribealpha/component"
	apperrors "github.com/kbukum/transcribealpha/errors"
	"github.com/kbukum/transcribealpha/logger"
)

func newTestServer(t *testing.T, checker func(context.Context) []component.Health) *Server {
	t.Helper()
	cfg := Config{Host: "127.0.0.1"}
	cfg.ApplyDefaults()
	s := New(cfg, logger.Nop())
	s.ApplyMiddleware()
	s.RegisterDefaultEndpoints("transcribealpha", checker)
	return s
}

func serve(s *Server, method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(method, path, http.NoBody))
	return rr
}

func TestHealthEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		status     component.HealthStatus
		wantCode   int
		wantStatus string
	}{
		{"healthy", component.StatusHealthy, http.StatusOK, "healthy"},
		{"degraded", component.StatusDegraded, http.StatusOK, "degraded"},
		{"unhealthy", component.StatusUnhealthy, http.StatusServiceUnavailable, "unhealthy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, func(context.Context) []component.Health {
				return []component.Health{
					{Name: "gemini", Status: component.StatusHealthy},
					{Name: "storage", Status: tt.status},
				}
			})
			rr := serve(s, "GET", "/health")
			if rr.Code != tt.wantCode {
				t.Fatalf("code = %d, want %d", rr.Code, tt.wantCode)
			}
			var body struct {
				Status     string             `json:"status"`
				Components []component.Health `json:"components"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Status != tt.wantStatus || len(body.Components) != 2 {
				t.Errorf("body = %+v", body)
			}
			if rr.Header().Get("X-Request-Id") == "" {
				t.Error("middleware chain should set a request ID")
			}
		})
	}
}

func TestInfoEndpoint(t *testing.T) {
	rr := serve(newTestServer(t, nil), "GET", "/info")
	if rr.Code != http.StatusOK {
		t.Fatalf("code = %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["service"] != "transcribealpha" {
		t.Errorf("service = %v", body["service"])
	}
	if _, ok := body["build"].(map[string]any); !ok {
		t.Errorf("build = %v", body["build"])
	}
}

func TestRespondWithError(t *testing.T) {
	s := newTestServer(t, nil)
	s.GinEngine().GET("/app", func(c *gin.Context) {
		RespondWithError(c, apperrors.QuotaExhausted(errors.New("429")))
	})
	s.GinEngine().GET("/plain", func(c *gin.Context) {
		RespondWithError(c, errors.New("boom"))
	})

	tests := []struct {
		path     string
		wantCode int
		wantErr  apperrors.ErrorCode
	}{
		{"/app", http.StatusTooManyRequests, apperrors.ErrCodeQuotaExhausted},
		{"/plain", http.StatusInternalServerError, apperrors.ErrCodeInternal},
	}
	for _, tt := range tests {
		rr := serve(s, "GET", tt.path)
		if rr.Code != tt.wantCode {
			t.Errorf("%s: code = %d, want %d", tt.path, rr.Code, tt.wantCode)
		}
		var body apperrors.ErrorResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: decode: %v", tt.path, err)
		}
		if body.Error.Code != tt.wantErr {
			t.Errorf("%s: error code = %s, want %s", tt.path, body.Error.Code, tt.wantErr)
		}
	}
}

func TestStartStop(t *testing.T) {
	cfg := Config{Host: "127.0.0.1", Port: 0}
	cfg.ApplyDefaults()
	cfg.Port = 0
	s := New(cfg, logger.Nop())
	comp := NewComponent(s)

	if comp.Health(context.Background()).Status != component.StatusUnhealthy {
		t.Error("server should be unhealthy before Start")
	}
	if err := comp.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if comp.Health(context.Background()).Status != component.StatusHealthy {
		t.Error("server should be healthy after Start")
	}
	if s.Addr() == "127.0.0.1:0" {
		t.Error("Addr should report the bound port")
	}
	if err := comp.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

func TestRoutesOrder(t *testing.T) {
	s := newTestServer(t, nil)
	noop := func(*gin.Context) {}
	s.GinEngine().POST("/transcribe", noop)
	s.GinEngine().GET("/", noop)

	routes := NewComponent(s).Routes()
	var paths []string
	for _, r := range routes {
		paths = append(paths, r.Method+" "+r.Path)
	}
	want := []string{"GET /", "POST /transcribe", "GET /health", "GET /info"}
	if len(paths) != len(want) {
		t.Fatalf("routes = %v", paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("routes = %v, want %v", paths, want)
		}
	}
}

func TestFormatHandlerName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"github.com/kbukum/transcribealpha/api.(*Handler).Transcribe-fm", "Handler.Transcribe"},
		{"github.com/kbukum/transcribealpha/server/endpoint.Health.func1", "health"},
		{"github.com/kbukum/transcribealpha/server.TestRoutesOrder.func1", "testroutesorder"},
		{"main.root", "root"},
	}
	for _, tt := range tests {
		if got := formatHandlerName(tt.in); got != tt.want {
			t.Errorf("formatHandlerName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{}, false},
		{"bad port", Config{Port: 70000}, true},
		{"negative timeout", Config{ReadTimeout: -1}, true},
		{"negative rate limit", Config{RateLimit: -5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.ApplyDefaults()
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
