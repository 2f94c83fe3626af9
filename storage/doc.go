// Package storage provides the optional object store used to stage large
// recordings outside the request body.
//
// Clients upload directly to the store with a presigned PUT URL and then
// reference the object by key when requesting a transcription.
//
// # Backends
//
//   - storage/s3: Amazon S3 and S3-compatible stores such as Cloudflare R2
//   - storage/local: local filesystem for development and tests
//
// Backends register themselves in init; import them for side effects:
//
//	import _ "github.com/kbukum/transcribealpha/storage/s3"
//
// # Configuration
//
//	storage:
//	  enabled: true
//	  provider: "s3"
//	  bucket: "transcript"
//	  endpoint: "https://<account>.r2.cloudflarestorage.com"
//	  region: "auto"
package storage
