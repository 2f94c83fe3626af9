package transcription

import (
	"context"
	"errors"
)

// Sentinel kinds that RemoteService implementations wrap (with %w) so the
// pipeline can tell misconfiguration and quota problems apart from other failures.
var (
	ErrPermissionDenied = errors.New("remote service: permission denied")
	ErrQuotaExhausted   = errors.New("remote service: quota exhausted")
)

// RemoteService is the remote inference service the pipeline drives.
// Implementations hold credentials and are safe for concurrent use.
type RemoteService interface {
	// Upload sends the file at path and returns its handle and initial state.
	Upload(ctx context.Context, path string, opts UploadOptions) (Handle, error)
	// Status returns the current readiness state of the named file.
	Status(ctx context.Context, name string) (FileState, error)
	// Delete removes the named file.
	Delete(ctx context.Context, name string) error
	// Generate runs a prompted generation over a ready file and returns the raw text.
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// UploadOptions describes the uploaded file.
type UploadOptions struct {
	MIMEType    string
	DisplayName string
}

// GenerateRequest is a structured-output generation request.
type GenerateRequest struct {
	Prompt string
	File   Handle
	// RecordFields asks for a JSON array of objects with these string fields, in order.
	RecordFields []string
	// DisableSafetyFilters sets every content-safety category to never block.
	DisableSafetyFilters bool
}

// remoteReason classifies a remote error for logs and error details.
func remoteReason(err error) string {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return "permission_denied"
	case errors.Is(err, ErrQuotaExhausted):
		return "quota_exhausted"
	default:
		return "unknown"
	}
}
