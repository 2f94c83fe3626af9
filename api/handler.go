package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/transcribealpha/logger"
	"github.com/kbukum/transcribealpha/server"
	"github.com/kbukum/transcribealpha/server/middleware"
	"github.com/kbukum/transcribealpha/storage"
	"github.com/kbukum/transcribealpha/transcription"
)

// Transcriber is the part of transcription.Transcriber the handlers use.
type Transcriber interface {
	Transcribe(ctx context.Context, req transcription.Request) (*transcription.Result, error)
	Release(ctx context.Context, name string)
	Supported(ext string) bool
}

// Renderer turns a transcript into a document.
type Renderer interface {
	Render(title map[string]string, turns []transcription.Turn) ([]byte, error)
}

// Deps are the collaborators of the handlers. Storage is nil when object
// storage is disabled.
type Deps struct {
	Transcriber Transcriber
	Renderer    Renderer
	Storage     storage.Storage
	Logger      *logger.Logger

	// PresignExpiry bounds presigned upload URLs.
	PresignExpiry time.Duration
	// MaxObjectSize caps staged objects read back for transcription.
	MaxObjectSize int64
	// RateLimit is the per-client budget for POST /transcribe, per minute. Zero disables it.
	RateLimit int
	// Now is the clock used for object keys. Defaults to time.Now.
	Now func() time.Time
}

// Handler serves the transcription API.
type Handler struct {
	deps Deps
	log  *logger.Logger
}

// NewHandler creates a Handler.
func NewHandler(deps Deps) *Handler {
	if deps.Logger == nil {
		deps.Logger = logger.GetGlobalLogger()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.PresignExpiry <= 0 {
		deps.PresignExpiry = time.Hour
	}
	return &Handler{deps: deps, log: deps.Logger.WithComponent("api")}
}

// Register mounts the API routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/generate_r2_presigned", h.Presign)

	transcribe := []gin.HandlerFunc{h.Transcribe}
	if h.deps.RateLimit > 0 {
		transcribe = append([]gin.HandlerFunc{middleware.GinWrap(middleware.RateLimit(h.deps.RateLimit))}, transcribe...)
	}
	r.POST("/transcribe", transcribe...)

	r.POST("/generate_docx", h.GenerateDocx)
	r.POST("/cleanup/*gemini_file_name", h.Cleanup)
	r.POST("/cleanup_r2/*r2_object_key", h.CleanupObject)
}

// Root answers liveness pings from the web client.
func (h *Handler) Root(c *gin.Context) {
	server.RespondMessage(c, http.StatusOK, "transcribealpha API running")
}

func (h *Handler) logFor(c *gin.Context) *logger.Logger {
	return h.log.WithContext(c.Request.Context())
}
