package document

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

// Title field names used by the default template.
const (
	FieldCaseName     = "CASE_NAME"
	FieldCaseNumber   = "CASE_NUMBER"
	FieldFirm         = "FIRM_OR_ORGANIZATION_NAME"
	FieldDate         = "DATE"
	FieldTime         = "TIME"
	FieldLocation     = "LOCATION"
	FieldFileName     = "FILE_NAME"
	FieldFileDuration = "FILE_DURATION"

	// BodyField marks where transcript turns are inserted.
	BodyField = "TRANSCRIPT_BODY"
)

// TitleFields lists the default template's title fields in display order.
func TitleFields() []string {
	return []string{FieldCaseName, FieldCaseNumber, FieldFirm, FieldDate, FieldTime, FieldLocation, FieldFileName, FieldFileDuration}
}

var titleLabels = map[string]string{
	FieldCaseName:     "Case",
	FieldCaseNumber:   "Case No.",
	FieldFirm:         "Firm / Organization",
	FieldDate:         "Date",
	FieldTime:         "Time",
	FieldLocation:     "Location",
	FieldFileName:     "Recording",
	FieldFileDuration: "Duration",
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const documentHead = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

const documentTail = `<w:sectPr><w:pgSz w:w="12240" w:h="15840"/>` +
	`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"/>` +
	`</w:sectPr></w:body></w:document>`

// DefaultTemplate builds a minimal transcript template: a centered heading,
// one line per title field and the body placeholder.
func DefaultTemplate() []byte {
	var body strings.Builder
	body.WriteString(documentHead)
	body.WriteString(`<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:rPr><w:b/></w:rPr><w:t>TRANSCRIPT OF PROCEEDINGS</w:t></w:r></w:p>`)
	for _, f := range TitleFields() {
		fmt.Fprintf(&body, `<w:p><w:r><w:t xml:space="preserve">%s: {{%s}}</w:t></w:r></w:p>`, titleLabels[f], f)
	}
	body.WriteString(`<w:p/>`)
	fmt.Fprintf(&body, `<w:p><w:r><w:t>{{%s}}</w:t></w:r></w:p>`, BodyField)
	body.WriteString(documentTail)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range []struct{ name, data string }{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{documentPart, body.String()},
	} {
		w, err := zw.Create(part.name)
		if err != nil {
			panic(err) // writes to a bytes.Buffer do not fail
		}
		if _, err := w.Write([]byte(part.data)); err != nil {
			panic(err)
		}
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
