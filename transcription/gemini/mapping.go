package gemini

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/kbukum/transcribealpha/transcription"
)

// harmCategories lists every category the API accepts a threshold for.
var harmCategories = []genai.HarmCategory{
	genai.HarmCategoryHarassment,
	genai.HarmCategoryHateSpeech,
	genai.HarmCategorySexuallyExplicit,
	genai.HarmCategoryDangerousContent,
	genai.HarmCategoryCivicIntegrity,
}

// safetySettings returns a never-block setting for every harm category.
func safetySettings() []*genai.SafetySetting {
	settings := make([]*genai.SafetySetting, 0, len(harmCategories))
	for _, c := range harmCategories {
		settings = append(settings, &genai.SafetySetting{
			Category:  c,
			Threshold: genai.HarmBlockThresholdBlockNone,
		})
	}
	return settings
}

// recordListSchema describes a JSON array of objects whose fields are all
// required strings, in the given order.
func recordListSchema(fields []string) *genai.Schema {
	props := make(map[string]*genai.Schema, len(fields))
	for _, f := range fields {
		props[f] = &genai.Schema{Type: genai.TypeString}
	}
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type:             genai.TypeObject,
			Properties:       props,
			Required:         fields,
			PropertyOrdering: fields,
		},
	}
}

func generateConfig(req transcription.GenerateRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if len(req.RecordFields) > 0 {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = recordListSchema(req.RecordFields)
	}
	if req.DisableSafetyFilters {
		cfg.SafetySettings = safetySettings()
	}
	return cfg
}

func generateContents(req transcription.GenerateRequest) []*genai.Content {
	parts := []*genai.Part{
		genai.NewPartFromURI(req.File.URI, req.File.MIMEType),
		genai.NewPartFromText(req.Prompt),
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}

func mapState(s genai.FileState) transcription.FileState {
	switch s {
	case genai.FileStateActive:
		return transcription.StateActive
	case genai.FileStateProcessing:
		return transcription.StatePending
	case genai.FileStateFailed:
		return transcription.StateFailed
	default:
		return transcription.StateUnknown
	}
}

func toHandle(f *genai.File) transcription.Handle {
	return transcription.Handle{
		Name:     f.Name,
		URI:      f.URI,
		MIMEType: f.MIMEType,
		State:    mapState(f.State),
	}
}

// apiError extracts the API error whether it was returned by value or pointer.
func apiError(err error) (genai.APIError, bool) {
	var v genai.APIError
	if errors.As(err, &v) {
		return v, true
	}
	var p *genai.APIError
	if errors.As(err, &p) && p != nil {
		return *p, true
	}
	return genai.APIError{}, false
}

// classify wraps err for op, adding the transcription sentinel that matches
// the API error status.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	apiErr, ok := apiError(err)
	if !ok {
		return fmt.Errorf("gemini %s: %w", op, err)
	}
	switch {
	case apiErr.Code == http.StatusForbidden, apiErr.Code == http.StatusUnauthorized,
		apiErr.Status == "PERMISSION_DENIED", apiErr.Status == "UNAUTHENTICATED",
		strings.Contains(apiErr.Message, "API key not valid"):
		return fmt.Errorf("gemini %s: %w: %w", op, transcription.ErrPermissionDenied, err)
	case apiErr.Code == http.StatusTooManyRequests, apiErr.Status == "RESOURCE_EXHAUSTED":
		return fmt.Errorf("gemini %s: %w: %w", op, transcription.ErrQuotaExhausted, err)
	default:
		return fmt.Errorf("gemini %s: %w", op, err)
	}
}

// responseText returns the generated text, or an error when the prompt or
// every candidate was blocked.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("empty response")
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", errors.New("response has no candidates")
	}
	text := resp.Text()
	if text == "" {
		if reason := resp.Candidates[0].FinishReason; reason != "" && reason != genai.FinishReasonStop {
			return "", fmt.Errorf("generation stopped: %s", reason)
		}
	}
	return text, nil
}
