// Package version reports build metadata for the /info endpoint, the CLI
// -version flag and the OpenTelemetry service resource.
//
// Values are injected at build time:
//
//	go build -ldflags "-X github.com/kbukum/transcribealpha/version.Version=1.2.0 \
//	  -X github.com/kbukum/transcribealpha/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Missing values fall back to the VCS stamp the Go toolchain embeds.
package version
