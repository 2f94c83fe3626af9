package transcription

import (
	"strings"
	"testing"
)

func TestSpeakerFragment(t *testing.T) {
	tests := []struct {
		name  string
		hints SpeakerHints
		want  string
	}{
		{"two", SpeakerHints{"COUNSEL", "WITNESS"}, "There are 2 speakers. The speakers are identified as: COUNSEL, WITNESS."},
		{"one", SpeakerHints{"narrator"}, "There is 1 speaker. The speakers are identified as: NARRATOR."},
		{"blank entry", SpeakerHints{"a", " "}, "There are 2 speakers. The speakers are identified as: A, SPEAKER 2."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpeakerFragment(tt.hints); got != tt.want {
				t.Errorf("SpeakerFragment = %q, want %q", got, tt.want)
			}
		})
	}

	none := SpeakerFragment(nil)
	if !strings.Contains(none, "Determine the number of speakers") || !strings.Contains(none, "SPEAKER 1") {
		t.Errorf("no-hint fragment = %q", none)
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	hints := SpeakerHints{"A", "B"}
	if BuildPrompt(hints) != BuildPrompt(SpeakerHints{"A", "B"}) {
		t.Fatal("prompt depends on more than the hints")
	}
	p := BuildPrompt(hints)
	for _, want := range []string{"JSON list", "'speaker'", "'text'", "IN ALL CAPS", "There are 2 speakers"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if BuildPrompt(nil) == p {
		t.Error("prompt should differ without hints")
	}
}

func TestParseSpeakerHints(t *testing.T) {
	got := ParseSpeakerHints(" counsel, Witness ,")
	want := SpeakerHints{"COUNSEL", "WITNESS", "SPEAKER 3"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("ParseSpeakerHints = %v, want %v", got, want)
	}
	if ParseSpeakerHints("  ") != nil {
		t.Error("blank input should give no hints")
	}
	if !got.Contains(" witness") || got.Contains("judge") {
		t.Error("Contains mismatch")
	}
}
