package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/kbukum/transcribealpha/errors"
	"github.com/kbukum/transcribealpha/server"
	"github.com/kbukum/transcribealpha/storage"
	"github.com/kbukum/transcribealpha/validation"
)

const cleanupMessage = "Cleanup attempted"

// Presign handles GET /generate_r2_presigned: issues a URL the client PUTs
// the recording to, and the object key to transcribe it by.
func (h *Handler) Presign(c *gin.Context) {
	var q presignQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		server.RespondWithError(c, errors.InvalidInput("", "malformed query").WithCause(err))
		return
	}
	if err := validation.Validate(q); err != nil {
		server.RespondWithError(c, err)
		return
	}

	presigner, ok := h.deps.Storage.(storage.PresignedUploader)
	if !ok {
		server.RespondWithError(c, errors.ServiceUnavailable("object storage"))
		return
	}

	key := storage.ObjectKey(q.Filename, h.deps.Now())
	url, err := presigner.PresignPut(c.Request.Context(), key, q.ContentType, h.deps.PresignExpiry)
	if err != nil {
		server.RespondWithError(c, errors.ExternalServiceError("object storage", err))
		return
	}
	server.RespondOK(c, presignResponse{UploadURL: url, ObjectKey: key})
}

// Cleanup handles POST /cleanup/{gemini_file_name}?r2_object_key=. The
// remote file and the staged object are deleted concurrently. Failures are
// logged and the answer is always 200.
func (h *Handler) Cleanup(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("gemini_file_name"), "/")
	if err := validation.New().Required("gemini_file_name", name).MaxLength("gemini_file_name", name, 256).Validate(); err != nil {
		server.RespondWithError(c, err)
		return
	}
	key := c.Query(fieldObjectKey)
	log := h.logFor(c)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), cleanupTimeout)
	defer cancel()

	var g errgroup.Group
	g.Go(func() error {
		h.deps.Transcriber.Release(ctx, name)
		return nil
	})
	if key != "" && h.deps.Storage != nil && validation.IsObjectKey(key) {
		g.Go(func() error {
			h.deleteObject(ctx, log, key)
			return nil
		})
	}
	_ = g.Wait()

	server.RespondMessage(c, http.StatusOK, cleanupMessage)
}

// CleanupObject handles POST /cleanup_r2/{r2_object_key}.
func (h *Handler) CleanupObject(c *gin.Context) {
	if h.deps.Storage == nil {
		server.RespondWithError(c, errors.ServiceUnavailable("object storage"))
		return
	}
	key := strings.TrimPrefix(c.Param(fieldObjectKey), "/")
	if err := validation.New().Required(fieldObjectKey, key).ObjectKey(fieldObjectKey, key).Validate(); err != nil {
		server.RespondWithError(c, err)
		return
	}

	h.deleteObject(c.Request.Context(), h.logFor(c), key)
	server.RespondMessage(c, http.StatusOK, cleanupMessage)
}
