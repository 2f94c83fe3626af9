// Package media knows which recordings the transcription service accepts and
// how to turn the rest into something it accepts.
//
// Audio extensions map to fixed MIME types. Video containers and m4a are
// converted to mp3 with ffmpeg, and ffprobe supplies the recording duration.
package media
