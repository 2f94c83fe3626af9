package local

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/kbukum/transcribealpha/storage"
)

func TestStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Upload(ctx, "1700000000_a.mp3", strings.NewReader("audio"), "audio/mpeg"); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	ok, err := s.Exists(ctx, "1700000000_a.mp3")
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v", ok, err)
	}

	rc, err := s.Download(ctx, "1700000000_a.mp3")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "audio" {
		t.Errorf("data = %q", data)
	}

	if err := s.Delete(ctx, "1700000000_a.mp3"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "1700000000_a.mp3"); err != nil {
		t.Errorf("deleting a missing object should succeed: %v", err)
	}
	if _, err := s.Download(ctx, "1700000000_a.mp3"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStorage_KeysStayUnderBase(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	s, err := NewStorage(base)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Upload(ctx, "../../escape.txt", strings.NewReader("x"), ""); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	// The key is cleaned into the base directory rather than escaping it.
	if ok, _ := s.Exists(ctx, "escape.txt"); !ok {
		t.Error("cleaned key should land under the base path")
	}
	if _, err := s.Exists(ctx, ".."); err == nil {
		t.Error("key resolving to the base itself should be rejected")
	}
}

func TestStorage_NoPresign(t *testing.T) {
	s, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var st storage.Storage = s
	if _, ok := st.(storage.PresignedUploader); ok {
		t.Error("local storage should not claim presign support")
	}
}
