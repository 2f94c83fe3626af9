// Package errors defines the application error taxonomy shared by the
// transcription pipeline, the HTTP API and the CLI.
//
// Every failure surfaced to a caller is an *AppError carrying a stable code,
// an HTTP status and a retryable flag, so callers can tell "fix your input"
// apart from "retry later" and "service misconfigured".
package errors
