package transcription

import (
	"fmt"
	"strings"
)

// Record field names the model is asked to produce.
const (
	FieldSpeaker = "speaker"
	FieldText    = "text"
)

// recordFields is the two-field record shape requested from the model.
var recordFields = []string{FieldSpeaker, FieldText}

// BuildPrompt returns the generation instruction for the given hints.
// The result depends only on hints.
func BuildPrompt(hints SpeakerHints) string {
	var b strings.Builder
	b.WriteString("Generate a transcript of the speech. ")
	b.WriteString(SpeakerFragment(hints))
	b.WriteString(" Structure the output STRICTLY as a JSON list of objects. ")
	b.WriteString("Each object represents a continuous block of speech from a single speaker and MUST contain exactly two fields: ")
	b.WriteString("a 'speaker' field (")
	if len(hints) > 0 {
		b.WriteString("using the identifiers given above, IN ALL CAPS")
	} else {
		b.WriteString("using generic identifiers like SPEAKER 1, SPEAKER 2, etc., IN ALL CAPS")
	}
	b.WriteString(") and a 'text' field containing ALL consecutive speech from that speaker before the speaker changes. ")
	b.WriteString("DO NOT create a new JSON object unless the speaker changes; merge consecutive utterances of the same speaker into one object. ")
	b.WriteString("Ensure every object has both 'speaker' and 'text' fields.")
	return b.String()
}

// SpeakerFragment states how many speakers there are and what to call them.
func SpeakerFragment(hints SpeakerHints) string {
	hints = NewSpeakerHints(hints)
	if len(hints) == 0 {
		return "Determine the number of speakers from the audio. " +
			"Speaker identifiers are not provided; use generic identifiers like SPEAKER 1, SPEAKER 2, etc., IN ALL CAPS."
	}
	noun := "speakers"
	verb := "are"
	if len(hints) == 1 {
		noun = "speaker"
		verb = "is"
	}
	return fmt.Sprintf("There %s %d %s. The speakers are identified as: %s.",
		verb, len(hints), noun, strings.Join(hints, ", "))
}
