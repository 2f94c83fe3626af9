// Package transcription turns a recording into an ordered, speaker-attributed
// transcript using a remote generative model.
//
// The pipeline is UPLOADING -> POLLING -> GENERATING -> VALIDATING -> DONE:
//
//   - FileManager uploads the recording, polls the remote file until it is
//     ACTIVE and releases it again.
//   - Invoker asks the model for a JSON list of {speaker, text} records.
//   - Validate parses and repairs that output.
//   - Transcriber sequences the stages, owns the request's temporary files and
//     releases the remote file on every failure after it was created.
//
// The remote service itself is behind the RemoteService interface;
// transcription/gemini implements it with the Gemini API.
package transcription
