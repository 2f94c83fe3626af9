package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/transcribealpha/api"
	"github.com/kbukum/transcribealpha/component"
	"github.com/kbukum/transcribealpha/document"
	"github.com/kbukum/transcribealpha/logger"
	"github.com/kbukum/transcribealpha/observability"
	"github.com/kbukum/transcribealpha/storage"
	"github.com/kbukum/transcribealpha/transcription"
	"github.com/kbukum/transcribealpha/transcription/gemini"
)

// APIComponent builds the pipeline from the started infrastructure and
// mounts the API routes. Register it after the Gemini and storage
// components and before the HTTP server, so routes exist before the
// listener accepts connections.
type APIComponent struct {
	cfg     *Config
	gemini  *gemini.Component
	store   *storage.Component
	router  gin.IRouter
	metrics *observability.PipelineMetrics
	log     *logger.Logger

	transcriber *transcription.Transcriber
}

var (
	_ component.Component   = (*APIComponent)(nil)
	_ component.Describable = (*APIComponent)(nil)
)

// NewAPIComponent creates the wiring component.
func NewAPIComponent(cfg *Config, gem *gemini.Component, store *storage.Component, router gin.IRouter, metrics *observability.PipelineMetrics, log *logger.Logger) *APIComponent {
	return &APIComponent{
		cfg:     cfg,
		gemini:  gem,
		store:   store,
		router:  router,
		metrics: metrics,
		log:     log,
	}
}

// Name returns the component name.
func (c *APIComponent) Name() string { return "api" }

// Start builds the transcriber and registers the routes. It runs once per
// process; gin rejects registering the same route twice.
func (c *APIComponent) Start(_ context.Context) error {
	if c.transcriber != nil {
		return nil
	}
	client := c.gemini.Client()
	if client == nil {
		return errors.New("api: gemini client not started")
	}
	renderer, err := document.NewRenderer(c.cfg.Document)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}

	c.transcriber = NewTranscriber(c.cfg, client, c.metrics, c.log)
	api.NewHandler(api.Deps{
		Transcriber:   c.transcriber,
		Renderer:      renderer,
		Storage:       c.store.Storage(),
		Logger:        c.log,
		PresignExpiry: c.cfg.Storage.PresignExpiry,
		MaxObjectSize: c.cfg.Storage.MaxFileSize,
		RateLimit:     c.cfg.Server.RateLimit,
	}).Register(c.router)
	return nil
}

// Stop is a no-op; in-flight requests finish under the server's shutdown.
func (c *APIComponent) Stop(_ context.Context) error { return nil }

// Health reports whether the pipeline was wired.
func (c *APIComponent) Health(_ context.Context) component.Health {
	if c.transcriber == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe returns summary info for the startup display.
func (c *APIComponent) Describe() component.Description {
	converter := "off"
	if c.cfg.Media.Enabled {
		converter = "ffmpeg"
	}
	concurrency := "unlimited"
	if n := c.cfg.Transcription.MaxConcurrent; n > 0 {
		concurrency = fmt.Sprint(n)
	}
	return component.Description{
		Name:    "Pipeline",
		Type:    "transcription",
		Details: fmt.Sprintf("converter=%s max_concurrent=%s polls=%d", converter, concurrency, c.cfg.Transcription.Polling.MaxAttempts),
	}
}
