package media

import (
	"slices"
	"strings"
)

// audioTypes is the fixed extension to MIME table accepted by the remote service.
var audioTypes = map[string]string{
	"mp3":  "audio/mp3",
	"wav":  "audio/wav",
	"aiff": "audio/aiff",
	"aac":  "audio/aac",
	"ogg":  "audio/ogg",
	"flac": "audio/flac",
}

// convertible lists containers that become mp3 before upload.
var convertible = map[string]bool{
	"mp4": true,
	"mov": true,
	"avi": true,
	"mkv": true,
	"m4a": true,
}

// ConvertedExtension is the extension produced by conversion.
const ConvertedExtension = "mp3"

// NormalizeExtension lowercases ext and strips a leading dot.
func NormalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// MIMEType returns the audio MIME type for ext.
func MIMEType(ext string) (string, bool) {
	mime, ok := audioTypes[NormalizeExtension(ext)]
	return mime, ok
}

// IsConvertible reports whether ext must be converted to mp3 before upload.
func IsConvertible(ext string) bool {
	return convertible[NormalizeExtension(ext)]
}

// AudioExtensions returns the directly uploadable extensions, sorted.
func AudioExtensions() []string {
	exts := make([]string, 0, len(audioTypes))
	for ext := range audioTypes {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// ConvertibleExtensions returns the extensions accepted through conversion, sorted.
func ConvertibleExtensions() []string {
	exts := make([]string, 0, len(convertible))
	for ext := range convertible {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}
