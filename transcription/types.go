package transcription

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Turn is one contiguous block of speech attributed to a single speaker.
type Turn struct {
	Speaker string `json:"speaker" validate:"required"`
	Text    string `json:"text"`
}

// SpeakerHints is the caller-supplied, ordered list of speaker identifiers.
// An empty list means the model determines the speakers itself.
type SpeakerHints []string

// NewSpeakerHints normalizes names to uppercase. Blank entries are kept in
// position as generic "SPEAKER n" identifiers.
func NewSpeakerHints(names []string) SpeakerHints {
	if len(names) == 0 {
		return nil
	}
	hints := make(SpeakerHints, len(names))
	for i, name := range names {
		name = strings.ToUpper(strings.TrimSpace(name))
		if name == "" {
			name = fmt.Sprintf("SPEAKER %d", i+1)
		}
		hints[i] = name
	}
	return hints
}

// ParseSpeakerHints splits a comma separated list such as "counsel, witness".
func ParseSpeakerHints(csv string) SpeakerHints {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	return NewSpeakerHints(strings.Split(csv, ","))
}

// Contains reports whether speaker matches a hint, ignoring case and surrounding space.
func (h SpeakerHints) Contains(speaker string) bool {
	speaker = strings.ToUpper(strings.TrimSpace(speaker))
	for _, s := range h {
		if s == speaker {
			return true
		}
	}
	return false
}

// FileState is the readiness state of a remote file.
type FileState string

const (
	StatePending FileState = "PENDING"
	StateActive  FileState = "ACTIVE"
	StateFailed  FileState = "FAILED"
	StateUnknown FileState = "UNKNOWN"
)

// Handle references a file uploaded to the remote service.
type Handle struct {
	// Name is the remote identifier used for status checks and deletion.
	Name string `json:"name"`
	// URI is how generation requests refer to the file.
	URI      string    `json:"uri,omitempty"`
	MIMEType string    `json:"mime_type,omitempty"`
	State    FileState `json:"state"`
}

// Media is one recording submitted for transcription.
type Media struct {
	// Body is read exactly once into request-scoped temporary storage.
	Body io.Reader
	// Filename is the client-supplied name, used for display only.
	Filename string
	// Extension selects the MIME type; derived from Filename when empty.
	Extension   string
	ContentType string
}

// Request is the input of Transcriber.Transcribe.
type Request struct {
	Media    Media
	Speakers SpeakerHints
}

// Result is the output of a successful transcription.
type Result struct {
	Turns    []Turn    `json:"turns"`
	File     Handle    `json:"file"`
	Warnings []Warning `json:"warnings,omitempty"`
	// Duration is zero when the recording could not be probed.
	Duration time.Duration `json:"duration,omitempty"`
}

// Stage names a step of the pipeline.
type Stage string

const (
	StageUploading  Stage = "uploading"
	StagePolling    Stage = "polling"
	StageGenerating Stage = "generating"
	StageValidating Stage = "validating"
	StageDone       Stage = "done"
)
