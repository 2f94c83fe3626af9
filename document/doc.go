// Package document renders transcripts into Word (.docx) documents and plain text.
//
// A template is an ordinary .docx whose text contains {{FIELD}} placeholders.
// Title fields replace their placeholders verbatim in the body, headers and
// footers. The paragraph holding {{TRANSCRIPT_BODY}} is replaced by one
// paragraph per turn; without it the turns are appended to the end of the body.
package document
