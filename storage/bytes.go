package storage

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/kbukum/transcribealpha/util"
)

// ObjectKey returns the staging key for a client filename: "<unix>_<name>".
func ObjectKey(filename string, now time.Time) string {
	return strconv.FormatInt(now.Unix(), 10) + "_" + util.SanitizeFilename(filename)
}

// ReadAll downloads the object at key into memory, failing with ErrTooLarge
// when it exceeds limit bytes. A limit of zero or less disables the check.
func ReadAll(ctx context.Context, s Storage, key string, limit int64) ([]byte, error) {
	rc, err := s.Download(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	if limit <= 0 {
		return io.ReadAll(rc)
	}
	data, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", key, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", ErrTooLarge, key, limit)
	}
	return data, nil
}
