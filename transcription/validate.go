package transcription

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kbukum/transcribealpha/errors"
)

// Warning codes recorded while validating model output.
const (
	WarnMissingSpeaker = "missing_speaker"
	WarnMissingText    = "missing_text"
	WarnInvalidRecord  = "invalid_record"
	WarnUnknownSpeaker = "unknown_speaker"
)

// Warning describes a record that was dropped or repaired. Index is the
// record's position in the model output.
type Warning struct {
	Index   int    `json:"index"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Validate parses raw model output into turns.
//
// Output that is not a JSON list fails with MALFORMED_RESPONSE. Individual
// records never fail the batch: a record without a speaker is dropped, a
// missing text becomes "", and a record that still is not a {speaker, text}
// pair of strings is dropped. Surviving turns keep their original order; an
// empty result is not an error.
func Validate(raw string) ([]Turn, []Warning, error) {
	var records []json.RawMessage
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &records); err != nil {
		return nil, nil, errors.MalformedResponse(raw, err)
	}
	if records == nil {
		return nil, nil, errors.MalformedResponse(raw, fmt.Errorf("response is null, not a list"))
	}

	turns := make([]Turn, 0, len(records))
	var warnings []Warning
	for i, rec := range records {
		turn, warns, ok := repairRecord(i, rec)
		warnings = append(warnings, warns...)
		if ok {
			turns = append(turns, turn)
		}
	}
	return turns, warnings, nil
}

func repairRecord(i int, rec json.RawMessage) (Turn, []Warning, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(rec, &fields); err != nil || fields == nil {
		return Turn{}, []Warning{{Index: i, Code: WarnInvalidRecord, Message: "record is not an object"}}, false
	}

	speakerRaw, ok := present(fields, FieldSpeaker)
	if !ok {
		return Turn{}, []Warning{{Index: i, Code: WarnMissingSpeaker, Message: "record has no speaker; dropped"}}, false
	}

	var warnings []Warning
	textRaw, ok := present(fields, FieldText)
	if !ok {
		textRaw = json.RawMessage(`""`)
		warnings = append(warnings, Warning{Index: i, Code: WarnMissingText, Message: "record has no text; using empty text"})
	}

	var turn Turn
	if json.Unmarshal(speakerRaw, &turn.Speaker) != nil || json.Unmarshal(textRaw, &turn.Text) != nil {
		return Turn{}, append(warnings, Warning{Index: i, Code: WarnInvalidRecord, Message: "speaker and text must be strings; dropped"}), false
	}
	turn.Speaker = strings.TrimSpace(turn.Speaker)
	if turn.Speaker == "" {
		return Turn{}, append(warnings, Warning{Index: i, Code: WarnInvalidRecord, Message: "speaker is empty; dropped"}), false
	}
	return turn, warnings, true
}

// present returns the field value unless it is absent or JSON null.
func present(fields map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	v, ok := fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil, false
	}
	return v, true
}

// CheckSpeakers warns about turns whose speaker is not one of the hints.
// It returns nil when no hints were given.
func CheckSpeakers(turns []Turn, hints SpeakerHints) []Warning {
	hints = NewSpeakerHints(hints)
	if len(hints) == 0 {
		return nil
	}
	var warnings []Warning
	for i, t := range turns {
		if !hints.Contains(t.Speaker) {
			warnings = append(warnings, Warning{
				Index:   i,
				Code:    WarnUnknownSpeaker,
				Message: fmt.Sprintf("speaker %q is not one of the provided speakers", t.Speaker),
			})
		}
	}
	return warnings
}

// stripCodeFence removes a surrounding Markdown code fence, if any.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
