package transcription

import (
	"strings"
	"testing"

	"github.com/kbukum/transcribealpha/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      []Turn
		wantCodes []string
	}{
		{
			name:      "repairs and drops",
			raw:       `[{"speaker":"A","text":"Hi"},{"text":"orphan"},{"speaker":"B"}]`,
			want:      []Turn{{"A", "Hi"}, {"B", ""}},
			wantCodes: []string{WarnMissingSpeaker, WarnMissingText},
		},
		{
			name: "empty list",
			raw:  `[]`,
			want: []Turn{},
		},
		{
			name:      "null fields count as absent",
			raw:       `[{"speaker":null,"text":"x"},{"speaker":"A","text":null}]`,
			want:      []Turn{{"A", ""}},
			wantCodes: []string{WarnMissingSpeaker, WarnMissingText},
		},
		{
			name:      "non-object and non-string records",
			raw:       `[42,"text",{"speaker":7,"text":"x"},{"speaker":"A","text":["x"]},{"speaker":"  ","text":"x"},{"speaker":"Z","text":"ok"}]`,
			want:      []Turn{{"Z", "ok"}},
			wantCodes: []string{WarnInvalidRecord, WarnInvalidRecord, WarnInvalidRecord, WarnInvalidRecord, WarnInvalidRecord},
		},
		{
			name: "code fence",
			raw:  "```json\n[{\"speaker\":\"A\",\"text\":\"Hi\"}]\n```",
			want: []Turn{{"A", "Hi"}},
		},
		{
			name: "extra fields ignored",
			raw:  `[{"speaker":"A","text":"Hi","confidence":0.9}]`,
			want: []Turn{{"A", "Hi"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warnings, err := Validate(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("turns = %+v, want %+v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("turn %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
			codes := make([]string, 0, len(warnings))
			for _, w := range warnings {
				codes = append(codes, w.Code)
			}
			if strings.Join(codes, ",") != strings.Join(tt.wantCodes, ",") {
				t.Errorf("warning codes = %v, want %v", codes, tt.wantCodes)
			}
		})
	}
}

func TestValidate_WarningIndexes(t *testing.T) {
	_, warnings, err := Validate(`[{"speaker":"A","text":"a"},{"text":"b"},{"speaker":"C"}]`)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 2 || warnings[0].Index != 1 || warnings[1].Index != 2 {
		t.Errorf("warnings = %+v", warnings)
	}
}

func TestValidate_PreservesOrder(t *testing.T) {
	raw := `[{"speaker":"B","text":"1"},{"speaker":"A","text":"2"},{"text":"drop"},{"speaker":"B","text":"3"}]`
	got, _, err := Validate(raw)
	if err != nil {
		t.Fatal(err)
	}
	var texts []string
	for _, turn := range got {
		texts = append(texts, turn.Text)
	}
	if strings.Join(texts, "") != "123" {
		t.Errorf("order = %v", texts)
	}
}

func TestValidate_Malformed(t *testing.T) {
	for _, raw := range []string{
		`{"speaker":"A","text":"Hi"}`,
		`null`,
		`Sorry, I can't help with that.`,
		`[{"speaker":"A"`,
		``,
	} {
		_, _, err := Validate(raw)
		if !errors.HasCode(err, errors.ErrCodeMalformedResponse) {
			t.Errorf("Validate(%q) = %v, want MALFORMED_RESPONSE", raw, err)
		}
	}
}

func TestMalformedResponse_TruncatesRaw(t *testing.T) {
	_, _, err := Validate(strings.Repeat("x", 2000))
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	raw, _ := appErr.Details["raw"].(string)
	if len(raw) != 512+len("...") {
		t.Errorf("raw detail length = %d", len(raw))
	}
}

func TestCheckSpeakers(t *testing.T) {
	turns := []Turn{{"COUNSEL", "q"}, {"witness", "a"}, {"JUDGE", "sustained"}}

	if w := CheckSpeakers(turns, nil); w != nil {
		t.Errorf("no hints should yield no warnings, got %+v", w)
	}
	w := CheckSpeakers(turns, SpeakerHints{"counsel", "Witness"})
	if len(w) != 1 || w[0].Index != 2 || w[0].Code != WarnUnknownSpeaker {
		t.Errorf("warnings = %+v", w)
	}
}
