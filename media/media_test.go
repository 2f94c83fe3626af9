package media

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func TestMIMEType_Supported(t *testing.T) {
	tests := map[string]string{
		"mp3":   "audio/mp3",
		".WAV":  "audio/wav",
		"aiff":  "audio/aiff",
		"aac":   "audio/aac",
		" ogg ": "audio/ogg",
		"FLAC":  "audio/flac",
	}
	for ext, want := range tests {
		t.Run(ext, func(t *testing.T) {
			got, ok := MIMEType(ext)
			if !ok || got != want {
				t.Errorf("MIMEType(%q) = %q, %v; want %q", ext, got, ok, want)
			}
		})
	}
	for _, ext := range AudioExtensions() {
		if _, ok := MIMEType(ext); !ok {
			t.Errorf("listed extension %q has no MIME type", ext)
		}
	}
}

func TestMIMEType_Unsupported(t *testing.T) {
	for _, ext := range []string{"", "txt", "exe", "mp4", "m4a", "mp33"} {
		if mime, ok := MIMEType(ext); ok {
			t.Errorf("MIMEType(%q) = %q, expected unsupported", ext, mime)
		}
	}
}

func TestIsConvertible(t *testing.T) {
	for _, ext := range []string{"mp4", ".MOV", "avi", "mkv", "m4a"} {
		if !IsConvertible(ext) {
			t.Errorf("expected %q to be convertible", ext)
		}
	}
	if IsConvertible("mp3") || IsConvertible("pdf") {
		t.Error("audio and unknown formats are not convertible")
	}
	if !slices.Equal(ConvertibleExtensions(), []string{"avi", "m4a", "mkv", "mov", "mp4"}) {
		t.Errorf("ConvertibleExtensions = %v", ConvertibleExtensions())
	}
}

type fakeRunner struct {
	calls [][]string
	out   []byte
	err   error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.out, f.err
}

func TestFFmpeg_Convert(t *testing.T) {
	r := &fakeRunner{}
	f := NewFFmpeg(Config{}, WithRunner(r))

	dir := t.TempDir()
	got, err := f.Convert(context.Background(), "/in/hearing.MOV", dir)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if want := filepath.Join(dir, "hearing_audio.mp3"); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if len(r.calls) != 1 {
		t.Fatalf("expected one ffmpeg call, got %d", len(r.calls))
	}
	call := r.calls[0]
	if call[0] != "ffmpeg" || !slices.Contains(call, "libmp3lame") || !slices.Contains(call, "192k") || call[len(call)-1] != got {
		t.Errorf("unexpected ffmpeg args %v", call)
	}
}

func TestFFmpeg_ConvertError(t *testing.T) {
	f := NewFFmpeg(Config{}, WithRunner(&fakeRunner{err: errors.New("exit status 1")}))
	if _, err := f.Convert(context.Background(), "a.mp4", t.TempDir()); err == nil {
		t.Fatal("expected conversion error")
	}
}

func TestFFmpeg_Duration(t *testing.T) {
	r := &fakeRunner{out: []byte(`{"format":{"filename":"a.mp3","duration":"3725.480000"}}`)}
	f := NewFFmpeg(Config{FFprobePath: "/usr/bin/ffprobe"}, WithRunner(r))

	d, err := f.Duration(context.Background(), "a.mp3")
	if err != nil {
		t.Fatalf("Duration: %v", err)
	}
	if diff := d - 3725480*time.Millisecond; diff > time.Millisecond || diff < -time.Millisecond {
		t.Errorf("duration = %v", d)
	}
	if r.calls[0][0] != "/usr/bin/ffprobe" {
		t.Errorf("expected configured ffprobe path, got %v", r.calls[0])
	}
	if FormatDuration(d) != "01:02:05" {
		t.Errorf("FormatDuration = %q", FormatDuration(d))
	}
}

func TestParseProbeDuration_Errors(t *testing.T) {
	for _, out := range []string{`not json`, `{"format":{}}`, `{"format":{"duration":"abc"}}`} {
		if _, err := parseProbeDuration([]byte(out)); err == nil {
			t.Errorf("expected error for %s", out)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00"},
		{59*time.Second + 900*time.Millisecond, "00:00:59"},
		{2*time.Hour + 3*time.Minute + 4*time.Second, "02:03:04"},
		{-time.Second, "00:00:00"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
