package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/kbukum/transcribealpha/transcription"
)

// ErrInvalidTemplate is returned when a template is not a readable .docx.
var ErrInvalidTemplate = errors.New("document: invalid docx template")

const documentPart = "word/document.xml"

var (
	paragraphRe = regexp.MustCompile(`(?s)<w:p[ >].*?</w:p>|<w:p/>`)
	textRe      = regexp.MustCompile(`(?s)(<w:t(?: [^>]*)?>)(.*?)(</w:t>)`)
	fieldRe     = regexp.MustCompile(`\{\{([^{}]+)\}\}`)
)

// Render fills template with title values and transcript turns and returns
// the resulting .docx bytes.
func Render(template []byte, title map[string]string, turns []transcription.Turn) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(template), int64(len(template)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}
	values := normalizeTitle(title)

	var (
		out      bytes.Buffer
		foundDoc bool
	)
	zw := zip.NewWriter(&out)
	for _, f := range zr.File {
		switch {
		case f.Name == documentPart:
			foundDoc = true
			data, err := readPart(f)
			if err != nil {
				return nil, err
			}
			if err := writePart(zw, f, renderBody(data, values, turns)); err != nil {
				return nil, err
			}
		case isHeaderOrFooter(f.Name):
			data, err := readPart(f)
			if err != nil {
				return nil, err
			}
			if err := writePart(zw, f, replaceFields(data, values)); err != nil {
				return nil, err
			}
		default:
			if err := zw.Copy(f); err != nil {
				return nil, fmt.Errorf("document: copy %s: %w", f.Name, err)
			}
		}
	}
	if !foundDoc {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidTemplate, documentPart)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("document: finish archive: %w", err)
	}
	return out.Bytes(), nil
}

func normalizeTitle(title map[string]string) map[string]string {
	values := make(map[string]string, len(title))
	for k, v := range title {
		k = strings.ToUpper(strings.TrimSpace(k))
		if k == "" || k == BodyField {
			continue
		}
		values[k] = v
	}
	return values
}

func isHeaderOrFooter(name string) bool {
	return strings.HasPrefix(name, "word/header") || strings.HasPrefix(name, "word/footer")
}

func readPart(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrInvalidTemplate, f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrInvalidTemplate, f.Name, err)
	}
	return data, nil
}

func writePart(zw *zip.Writer, f *zip.File, data []byte) error {
	w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: f.Method, Modified: f.Modified})
	if err != nil {
		return fmt.Errorf("document: write %s: %w", f.Name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("document: write %s: %w", f.Name, err)
	}
	return nil
}

// renderBody replaces title fields and swaps the body placeholder paragraph
// for the turn paragraphs, appending them when there is no placeholder.
func renderBody(doc []byte, values map[string]string, turns []transcription.Turn) []byte {
	bodyToken := "{{" + BodyField + "}}"
	inserted := false
	doc = paragraphRe.ReplaceAllFunc(doc, func(p []byte) []byte {
		text := paragraphText(p)
		if !inserted && strings.Contains(text, bodyToken) {
			inserted = true
			return turnParagraphs(turns)
		}
		return replaceParagraph(p, text, values)
	})
	if inserted {
		return doc
	}

	end := bytes.LastIndex(doc, []byte("</w:body>"))
	if end < 0 {
		return doc
	}
	// The body's own section properties must stay last.
	at := end
	if s := bytes.LastIndex(doc[:end], []byte("<w:sectPr")); s > bytes.LastIndex(doc[:end], []byte("</w:p>")) {
		at = s
	}
	return splice(doc, at, turnParagraphs(turns))
}

func splice(doc []byte, at int, insert []byte) []byte {
	out := make([]byte, 0, len(doc)+len(insert))
	out = append(out, doc[:at]...)
	out = append(out, insert...)
	return append(out, doc[at:]...)
}

// replaceFields applies title values to every paragraph of a part.
func replaceFields(part []byte, values map[string]string) []byte {
	return paragraphRe.ReplaceAllFunc(part, func(p []byte) []byte {
		return replaceParagraph(p, paragraphText(p), values)
	})
}

// paragraphText joins the unescaped text of every run in p.
func paragraphText(p []byte) string {
	var b strings.Builder
	for _, m := range textRe.FindAllSubmatch(p, -1) {
		b.WriteString(unescape(m[2]))
	}
	return b.String()
}

// replaceParagraph substitutes placeholders in a paragraph's text. Word often
// splits a placeholder across runs, so when a substitution happens the whole
// paragraph text moves into the first run and the other runs are emptied.
func replaceParagraph(p []byte, text string, values map[string]string) []byte {
	if !strings.Contains(text, "{{") {
		return p
	}
	replaced := substituteFields(text, values)
	if replaced == text {
		return p
	}

	first := true
	return textRe.ReplaceAllFunc(p, func([]byte) []byte {
		if !first {
			return []byte(`<w:t></w:t>`)
		}
		first = false
		return []byte(`<w:t xml:space="preserve">` + escape(replaced) + `</w:t>`)
	})
}

// substituteFields replaces known {{FIELD}} tokens in one pass, so a value
// that itself contains a token is never expanded again. Unknown tokens stay.
func substituteFields(text string, values map[string]string) string {
	return fieldRe.ReplaceAllStringFunc(text, func(tok string) string {
		if v, ok := values[tok[2:len(tok)-2]]; ok {
			return v
		}
		return tok
	})
}

// turnParagraphs formats each turn as "SPEAKER:   text" in Courier New,
// double spaced with a one inch first-line indent.
// An empty transcript yields one empty paragraph so table cells stay valid.
func turnParagraphs(turns []transcription.Turn) []byte {
	if len(turns) == 0 {
		return []byte(`<w:p/>`)
	}
	var b bytes.Buffer
	for _, t := range turns {
		line := strings.ToUpper(t.Speaker) + ":   " + t.Text
		b.WriteString(`<w:p><w:pPr><w:spacing w:line="480" w:lineRule="auto"/><w:ind w:firstLine="1440"/></w:pPr>`)
		b.WriteString(`<w:r><w:rPr><w:rFonts w:ascii="Courier New" w:hAnsi="Courier New" w:cs="Courier New"/></w:rPr>`)
		for i, seg := range strings.Split(line, "\n") {
			if i > 0 {
				b.WriteString(`<w:br/>`)
			}
			b.WriteString(`<w:t xml:space="preserve">`)
			b.WriteString(escape(seg))
			b.WriteString(`</w:t>`)
		}
		b.WriteString(`</w:r></w:p>`)
	}
	return b.Bytes()
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func unescape(b []byte) string {
	var s string
	if err := xml.Unmarshal([]byte("<t>"+string(b)+"</t>"), &s); err != nil {
		return string(b)
	}
	return s
}
