package version

import (
	"runtime/debug"
	"testing"
	"time"
)

func TestResolve(t *testing.T) {
	bi := &debug.BuildInfo{
		GoVersion: "go1.26.0",
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.modified", Value: "true"},
			{Key: "vcs.time", Value: "2026-03-01T10:00:00Z"},
		},
	}

	tests := []struct {
		name      string
		ver       string
		commit    string
		built     string
		bi        *debug.BuildInfo
		wantShort string
		wantTime  time.Time
	}{
		{
			name:      "ldflags win",
			ver:       "1.2.0",
			commit:    "feedbee",
			built:     "2026-04-01T00:00:00Z",
			bi:        bi,
			wantShort: "1.2.0-feedbee-dirty",
			wantTime:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "vcs fallback",
			ver:       "dev",
			bi:        bi,
			wantShort: "dev-0123456-dirty",
			wantTime:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name:      "no build info",
			ver:       "dev",
			wantShort: "dev",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := resolve(tt.ver, tt.commit, tt.built, tt.bi)
			if got := info.Short(); got != tt.wantShort {
				t.Errorf("Short() = %q, want %q", got, tt.wantShort)
			}
			if !info.BuildTime.Equal(tt.wantTime) {
				t.Errorf("BuildTime = %v, want %v", info.BuildTime, tt.wantTime)
			}
		})
	}
}

func TestInfoString(t *testing.T) {
	info := Info{Version: "1.0.0", BuildTime: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), GoVersion: "go1.26.0"}
	want := "1.0.0 (built 2026-01-02T03:04:05Z) go1.26.0"
	if got := info.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestGet(t *testing.T) {
	if Get().Version == "" {
		t.Error("version should never be empty")
	}
}
