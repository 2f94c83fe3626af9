// Package app assembles the transcription service from its packages: the
// configuration tree, telemetry, and the component that wires the pipeline
// into the HTTP API. Both binaries under cmd/ build on it.
package app
