package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Availability errors (retryable)
const (
	// ErrCodeServiceUnavailable indicates a dependency or the service itself is temporarily unavailable.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Request errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeUnsupportedFormat indicates the media extension has no known audio MIME type.
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	// ErrCodePayloadTooLarge indicates the request body exceeded the configured limit.
	ErrCodePayloadTooLarge ErrorCode = "PAYLOAD_TOO_LARGE"
	// ErrCodeRateLimited indicates the client exceeded the request rate.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
)

// Remote transcription service errors
const (
	// ErrCodeUploadFailed indicates the single upload call to the remote service failed.
	ErrCodeUploadFailed ErrorCode = "UPLOAD_FAILED"
	// ErrCodeProcessingTimeout indicates the remote file never became ready within the polling bound.
	ErrCodeProcessingTimeout ErrorCode = "PROCESSING_TIMEOUT"
	// ErrCodeProcessingFailed indicates the remote service reported a terminal failed state.
	ErrCodeProcessingFailed ErrorCode = "PROCESSING_FAILED"
	// ErrCodePermissionDenied indicates the configured credentials were rejected.
	ErrCodePermissionDenied ErrorCode = "PERMISSION_DENIED"
	// ErrCodeQuotaExhausted indicates the remote quota or rate limit was hit.
	ErrCodeQuotaExhausted ErrorCode = "QUOTA_EXHAUSTED"
	// ErrCodeGenerationFailed indicates an unclassified failure of the generate call.
	ErrCodeGenerationFailed ErrorCode = "GENERATION_FAILED"
	// ErrCodeMalformedResponse indicates the model output was not a list of records.
	ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeExternalService indicates an error from an external service.
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeServiceUnavailable: true,
	ErrCodeTimeout:            true,
	ErrCodeRateLimited:        true,
	ErrCodeUploadFailed:       true,
	ErrCodeProcessingTimeout:  true,
	ErrCodeQuotaExhausted:     true,
	ErrCodeGenerationFailed:   true,
	ErrCodeMalformedResponse:  true,
	ErrCodeExternalService:    true,
	ErrCodeInternal:           false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
