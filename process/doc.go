// Package process runs external tools such as ffmpeg and ffprobe.
//
// A run is bound to its context: cancellation sends SIGTERM to the whole
// process group and escalates to SIGKILL after the grace period, so
// transcoders do not outlive the request that started them.
package process
