// Package util holds small helpers shared by the HTTP API, the CLI and the
// storage layer: size parsing, secret masking and filename sanitizing.
package util
