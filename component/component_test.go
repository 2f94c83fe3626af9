package component

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kbukum/transcribealpha/logger"
)

// stubComponent implements Component and records lifecycle calls.
type stubComponent struct {
	name     string
	startErr error
	stopErr  error
	status   HealthStatus
	calls    *[]string
}

func (s *stubComponent) Name() string { return s.name }

func (s *stubComponent) Start(context.Context) error {
	*s.calls = append(*s.calls, "start:"+s.name)
	return s.startErr
}

func (s *stubComponent) Stop(context.Context) error {
	*s.calls = append(*s.calls, "stop:"+s.name)
	return s.stopErr
}

func (s *stubComponent) Health(context.Context) Health {
	return Health{Name: s.name, Status: s.status}
}

func newStubs(calls *[]string, names ...string) []*stubComponent {
	out := make([]*stubComponent, len(names))
	for i, n := range names {
		out[i] = &stubComponent{name: n, status: StatusHealthy, calls: calls}
	}
	return out
}

func TestRegistry_StartStopOrder(t *testing.T) {
	var calls []string
	r := NewRegistry(logger.Nop())
	for _, c := range newStubs(&calls, "gemini", "storage", "http-server") {
		if err := r.Register(c); err != nil {
			t.Fatal(err)
		}
	}

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll: %v", err)
	}

	want := "start:gemini,start:storage,start:http-server,stop:http-server,stop:storage,stop:gemini"
	if got := strings.Join(calls, ","); got != want {
		t.Errorf("calls = %s\nwant    %s", got, want)
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	var calls []string
	r := NewRegistry(logger.Nop())
	stubs := newStubs(&calls, "gemini", "gemini")
	if err := r.Register(stubs[0]); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(stubs[1]); err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestRegistry_StartFailureStopsOnlyStarted(t *testing.T) {
	var calls []string
	r := NewRegistry(logger.Nop())
	stubs := newStubs(&calls, "gemini", "storage", "http-server")
	stubs[1].startErr = errors.New("bad credentials")
	for _, c := range stubs {
		_ = r.Register(c)
	}

	err := r.StartAll(context.Background())
	if err == nil || !strings.Contains(err.Error(), "storage") {
		t.Fatalf("expected storage start failure, got %v", err)
	}
	calls = nil
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll: %v", err)
	}
	if got := strings.Join(calls, ","); got != "stop:gemini" {
		t.Errorf("stop calls = %s", got)
	}
}

func TestRegistry_StopErrorsJoined(t *testing.T) {
	var calls []string
	r := NewRegistry(logger.Nop())
	stubs := newStubs(&calls, "a", "b")
	stubs[0].stopErr = errors.New("a failed")
	stubs[1].stopErr = errors.New("b failed")
	for _, c := range stubs {
		_ = r.Register(c)
	}
	_ = r.StartAll(context.Background())

	err := r.StopAll(context.Background())
	if !errors.Is(err, stubs[0].stopErr) || !errors.Is(err, stubs[1].stopErr) {
		t.Errorf("expected both stop errors, got %v", err)
	}
}

func TestRegistry_GetAndAll(t *testing.T) {
	var calls []string
	r := NewRegistry(logger.Nop())
	for _, c := range newStubs(&calls, "gemini", "storage") {
		_ = r.Register(c)
	}
	if c := r.Get("storage"); c == nil || c.Name() != "storage" {
		t.Errorf("Get(storage) = %v", c)
	}
	if r.Get("redis") != nil {
		t.Error("unknown component should be nil")
	}
	if all := r.All(); len(all) != 2 || all[0].Name() != "gemini" {
		t.Errorf("All = %v", all)
	}
}

func TestOverall(t *testing.T) {
	tests := []struct {
		name   string
		health []Health
		want   HealthStatus
	}{
		{"empty", nil, StatusHealthy},
		{"all healthy", []Health{{Status: StatusHealthy}, {Status: StatusHealthy}}, StatusHealthy},
		{"degraded", []Health{{Status: StatusHealthy}, {Status: StatusDegraded}}, StatusDegraded},
		{"unhealthy wins", []Health{{Status: StatusDegraded}, {Status: StatusUnhealthy}}, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overall(tt.health); got != tt.want {
				t.Errorf("Overall = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRegistry_HealthAll(t *testing.T) {
	var calls []string
	r := NewRegistry(logger.Nop())
	stubs := newStubs(&calls, "gemini", "storage")
	stubs[1].status = StatusUnhealthy
	for _, c := range stubs {
		_ = r.Register(c)
	}
	h := r.HealthAll(context.Background())
	if len(h) != 2 || h[1].Status != StatusUnhealthy || Overall(h) != StatusUnhealthy {
		t.Errorf("health = %+v", h)
	}
}
