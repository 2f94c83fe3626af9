// Package bootstrap runs the lifecycle shared by the transcription server
// and the command-line tool: validate config, start components, run
// configure callbacks, print a startup summary, then either block on a
// shutdown signal (Run) or execute a finite task (RunTask) and shut down.
package bootstrap
