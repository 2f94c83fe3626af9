package document

import (
	"fmt"
	"os"
	"strings"

	"github.com/kbukum/transcribealpha/transcription"
	"github.com/kbukum/transcribealpha/util"
)

// MIMEType is the content type of rendered documents.
const MIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Config configures the document renderer.
type Config struct {
	// TemplatePath points to a .docx template. Empty uses DefaultTemplate.
	TemplatePath string `yaml:"template_path" mapstructure:"template_path"`
}

// Renderer renders transcripts with a template loaded once at startup.
type Renderer struct {
	template []byte
}

// NewRenderer loads the configured template and checks it renders.
func NewRenderer(cfg Config) (*Renderer, error) {
	if cfg.TemplatePath == "" {
		return &Renderer{template: DefaultTemplate()}, nil
	}
	data, err := os.ReadFile(cfg.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("document: reading template: %w", err)
	}
	if _, err := Render(data, nil, nil); err != nil {
		return nil, err
	}
	return &Renderer{template: data}, nil
}

// Render fills the template with title values and turns.
func (r *Renderer) Render(title map[string]string, turns []transcription.Turn) ([]byte, error) {
	return Render(r.template, title, turns)
}

// Filename returns the download name for a transcript of recording:
// "<stem>_transcript.docx".
func Filename(recording string) string {
	stem := util.Stem(util.SanitizeFilename(recording))
	if recording == "" || stem == "" || stem == "upload" {
		return "transcript.docx"
	}
	return stem + "_transcript.docx"
}

// PlainText renders turns as "SPEAKER:\ttext" blocks separated by blank lines.
func PlainText(turns []transcription.Turn) string {
	var b strings.Builder
	for i, t := range turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(strings.ToUpper(t.Speaker))
		b.WriteString(":\t")
		b.WriteString(t.Text)
	}
	if len(turns) > 0 {
		b.WriteString("\n")
	}
	return b.String()
}
