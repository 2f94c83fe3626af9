package api

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kbukum/transcribealpha/document"
	"github.com/kbukum/transcribealpha/errors"
	"github.com/kbukum/transcribealpha/media"
	"github.com/kbukum/transcribealpha/transcription"
	"github.com/kbukum/transcribealpha/validation"
)

// presignQuery is the query of GET /generate_r2_presigned.
type presignQuery struct {
	Filename    string `form:"filename" json:"filename" validate:"required,max=255"`
	ContentType string `form:"content_type" json:"content_type" validate:"required,max=255"`
}

type presignResponse struct {
	UploadURL string `json:"upload_url"`
	ObjectKey string `json:"object_key"`
}

// requestData is the request_data_json form field of POST /transcribe.
// Title fields are optional and echoed back as title_data.
type requestData struct {
	SpeakerNames []string `json:"speaker_names" validate:"max=20,dive,max=100"`
	CaseName     string   `json:"case_name" validate:"max=500"`
	CaseNumber   string   `json:"case_number" validate:"max=200"`
	FirmName     string   `json:"firm_name" validate:"max=500"`
	InputDate    string   `json:"input_date" validate:"max=100"`
	InputTime    string   `json:"input_time" validate:"max=100"`
	Location     string   `json:"location" validate:"max=500"`
}

// parseRequestData decodes and validates request_data_json. Empty input
// means no hints and no title fields.
func parseRequestData(raw string) (requestData, error) {
	var rd requestData
	if strings.TrimSpace(raw) == "" {
		return rd, nil
	}
	if err := json.Unmarshal([]byte(raw), &rd); err != nil {
		return rd, errors.InvalidInput("request_data_json", "not valid JSON").WithCause(err)
	}
	if err := validation.Validate(rd); err != nil {
		return rd, err
	}
	return rd, nil
}

// titleData maps the request's title fields and what the pipeline learned
// about the recording onto template field names.
func (rd requestData) titleData(filename string, res *transcription.Result) map[string]string {
	title := map[string]string{
		document.FieldCaseName:   rd.CaseName,
		document.FieldCaseNumber: rd.CaseNumber,
		document.FieldFirm:       rd.FirmName,
		document.FieldDate:       rd.InputDate,
		document.FieldTime:       rd.InputTime,
		document.FieldLocation:   rd.Location,
		document.FieldFileName:   filename,
	}
	if res != nil && res.Duration > 0 {
		title[document.FieldFileDuration] = media.FormatDuration(res.Duration)
	}
	return title
}

type transcribeResponse struct {
	TranscriptTurns []transcription.Turn    `json:"transcript_turns"`
	GeminiFileName  string                  `json:"gemini_file_name"`
	R2ObjectKey     string                  `json:"r2_object_key,omitempty"`
	Duration        string                  `json:"duration,omitempty"`
	TitleData       map[string]string       `json:"title_data"`
	Warnings        []transcription.Warning `json:"warnings,omitempty"`
}

// docxRequest is the body of POST /generate_docx. Title values may be any
// JSON scalar; null becomes an empty string.
type docxRequest struct {
	GeminiFileName  string               `json:"gemini_file_name"`
	TitleData       map[string]any       `json:"title_data"`
	TranscriptTurns []transcription.Turn `json:"transcript_turns" validate:"dive"`
}

func (r docxRequest) title() map[string]string {
	title := make(map[string]string, len(r.TitleData))
	for k, v := range r.TitleData {
		if v == nil {
			title[k] = ""
			continue
		}
		title[k] = fmt.Sprint(v)
	}
	return title
}
