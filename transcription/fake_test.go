package transcription

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/transcribealpha/logger"
)

// fakeRemote is a scripted RemoteService that counts every call.
type fakeRemote struct {
	mu sync.Mutex

	uploadErr   error
	uploadState FileState
	uploads     []UploadOptions
	uploadSeen  []bool // whether the staged file existed during Upload

	states      []FileState // Status returns these in order; the last one repeats
	statusErr   error
	statusCalls int

	deleteErr error
	deletes   []string

	genText   string
	genErr    error
	genReqs   []GenerateRequest
	genStart  chan struct{}
	genUnlock chan struct{}
}

func (f *fakeRemote) Upload(_ context.Context, path string, opts UploadOptions) (Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, statErr := os.Stat(path)
	f.uploads = append(f.uploads, opts)
	f.uploadSeen = append(f.uploadSeen, statErr == nil)
	if f.uploadErr != nil {
		return Handle{}, f.uploadErr
	}
	state := f.uploadState
	if state == "" {
		state = StatePending
	}
	return Handle{Name: "files/abc123", URI: "https://example.test/v1/files/abc123", State: state}, nil
}

func (f *fakeRemote) Status(_ context.Context, _ string) (FileState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if f.statusErr != nil {
		return "", f.statusErr
	}
	if len(f.states) == 0 {
		return StateActive, nil
	}
	idx := min(f.statusCalls-1, len(f.states)-1)
	return f.states[idx], nil
}

func (f *fakeRemote) Delete(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, name)
	return f.deleteErr
}

func (f *fakeRemote) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	f.mu.Lock()
	f.genReqs = append(f.genReqs, req)
	start, unlock := f.genStart, f.genUnlock
	f.mu.Unlock()

	if start != nil {
		start <- struct{}{}
	}
	if unlock != nil {
		select {
		case <-unlock:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.genErr != nil {
		return "", f.genErr
	}
	return f.genText, nil
}

func (f *fakeRemote) calls() (uploads, statuses, deletes, generates int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads), f.statusCalls, len(f.deletes), len(f.genReqs)
}

type recordingSleeper struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *recordingSleeper) sleep(_ context.Context, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delays = append(r.delays, d)
	return nil
}

// fakeConverter writes a placeholder mp3 next to the source.
type fakeConverter struct {
	calls int
	err   error
}

func (c *fakeConverter) Convert(_ context.Context, src, dstDir string) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	dst := filepath.Join(dstDir, "converted_audio.mp3")
	return dst, os.WriteFile(dst, []byte("ID3"), 0o600)
}

type fakeProber struct {
	d   time.Duration
	err error
}

func (p fakeProber) Duration(context.Context, string) (time.Duration, error) {
	return p.d, p.err
}

func testConfig(tempDir string) Config {
	return Config{
		Polling: DefaultPollConfig(),
		TempDir: tempDir,
	}
}

func newTestTranscriber(t *testing.T, remote RemoteService, cfg Config, opts ...Option) (*Transcriber, *recordingSleeper) {
	t.Helper()
	sl := &recordingSleeper{}
	opts = append([]Option{WithSleeper(sl.sleep), WithLogger(logger.Nop())}, opts...)
	return New(remote, cfg, opts...), sl
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading %s: %v", dir, err)
	}
	if len(entries) != 0 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("temp dir not cleaned up: %v", names)
	}
}
