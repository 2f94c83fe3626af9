// Package gemini implements transcription.RemoteService on the Gemini API
// using google.golang.org/genai.
//
// Remote errors are classified into transcription.ErrPermissionDenied and
// transcription.ErrQuotaExhausted; everything else is returned wrapped as is.
package gemini
