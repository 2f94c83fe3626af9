package errors

import (
	"fmt"
	"net/http"
)

// maxRawDetail bounds how much model output is echoed back in MalformedResponse details.
const maxRawDetail = 512

// UnsupportedFormat is returned before any network call when an extension has no audio MIME type.
func UnsupportedFormat(extension string) *AppError {
	return &AppError{
		Code: ErrCodeUnsupportedFormat, Message: fmt.Sprintf("Unsupported media format %q.", extension),
		HTTPStatus: http.StatusUnsupportedMediaType, Retryable: false,
		Details: map[string]any{"extension": extension},
	}
}

// UploadFailed wraps the failure of the single remote upload call.
// reason is one of "permission_denied", "quota_exhausted" or "unknown".
func UploadFailed(reason string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeUploadFailed, Message: "Uploading the recording to the transcription service failed.",
		HTTPStatus: http.StatusBadGateway, Retryable: reason != "permission_denied",
		Details: map[string]any{"reason": reason}, Cause: cause,
	}
}

// ProcessingTimeout reports that a remote file did not become ready within the polling bound.
func ProcessingTimeout(file string, attempts int) *AppError {
	return &AppError{
		Code: ErrCodeProcessingTimeout, Message: "The transcription service did not finish processing the recording in time.",
		HTTPStatus: http.StatusGatewayTimeout, Retryable: true,
		Details: map[string]any{"file": file, "attempts": attempts},
	}
}

// ProcessingFailed reports a terminal failed state observed while polling.
func ProcessingFailed(file string) *AppError {
	return &AppError{
		Code: ErrCodeProcessingFailed, Message: "The transcription service could not process the recording.",
		HTTPStatus: http.StatusBadGateway, Retryable: false,
		Details: map[string]any{"file": file},
	}
}

// PermissionDenied reports rejected credentials. The service is misconfigured.
func PermissionDenied(cause error) *AppError {
	return &AppError{
		Code: ErrCodePermissionDenied, Message: "The transcription service rejected the configured credentials.",
		HTTPStatus: http.StatusBadGateway, Retryable: false, Cause: cause,
	}
}

// QuotaExhausted reports a remote quota or rate limit.
func QuotaExhausted(cause error) *AppError {
	return &AppError{
		Code: ErrCodeQuotaExhausted, Message: "The transcription service quota is exhausted. Please try again later.",
		HTTPStatus: http.StatusTooManyRequests, Retryable: true, Cause: cause,
	}
}

// GenerationFailed reports an unclassified failure of the generate call.
func GenerationFailed(cause error) *AppError {
	return &AppError{
		Code: ErrCodeGenerationFailed, Message: "Generating the transcript failed.",
		HTTPStatus: http.StatusBadGateway, Retryable: true, Cause: cause,
	}
}

// MalformedResponse reports model output that is not a list of records.
func MalformedResponse(raw string, cause error) *AppError {
	if len(raw) > maxRawDetail {
		raw = raw[:maxRawDetail] + "..."
	}
	return &AppError{
		Code: ErrCodeMalformedResponse, Message: "The transcription service returned a response that is not a transcript.",
		HTTPStatus: http.StatusBadGateway, Retryable: true,
		Details: map[string]any{"raw": raw}, Cause: cause,
	}
}
