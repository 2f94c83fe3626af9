// Package api exposes the transcription pipeline over HTTP: presigned
// staging uploads, multipart transcription, docx rendering and cleanup of
// remote files and staged objects.
package api
