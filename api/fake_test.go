package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/kbukum/transcribealpha/media"
	"github.com/kbukum/transcribealpha/storage"
	"github.com/kbukum/transcribealpha/transcription"
)

type fakeTranscriber struct {
	mu       sync.Mutex
	result   *transcription.Result
	err      error
	requests []transcription.Request
	bodies   [][]byte
	released []string
}

func (f *fakeTranscriber) Transcribe(_ context.Context, req transcription.Request) (*transcription.Result, error) {
	body, _ := io.ReadAll(req.Media.Body)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	f.bodies = append(f.bodies, body)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeTranscriber) Release(_ context.Context, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = append(f.released, name)
}

func (f *fakeTranscriber) Supported(ext string) bool {
	_, ok := media.MIMEType(ext)
	return ok
}

type fakeStore struct {
	mu         sync.Mutex
	objects    map[string][]byte
	uploadErr  error
	deleteErr  error
	deleted    []string
	presignErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (s *fakeStore) Upload(_ context.Context, key string, r io.Reader, _ string) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *fakeStore) Download(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.objects, key)
	return nil
}

func (s *fakeStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok, nil
}

func (s *fakeStore) PresignPut(_ context.Context, key, contentType string, expiry time.Duration) (string, error) {
	if s.presignErr != nil {
		return "", s.presignErr
	}
	return fmt.Sprintf("https://r2.example.com/transcript/%s?ct=%s&exp=%d", key, contentType, int(expiry.Seconds())), nil
}

// plainStore hides PresignPut.
type plainStore struct{ storage.Storage }

type failingRenderer struct{}

func (failingRenderer) Render(map[string]string, []transcription.Turn) ([]byte, error) {
	return nil, errors.New("template broken")
}
