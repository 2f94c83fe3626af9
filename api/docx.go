package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/transcribealpha/document"
	"github.com/kbukum/transcribealpha/errors"
	"github.com/kbukum/transcribealpha/logger"
	"github.com/kbukum/transcribealpha/server"
	"github.com/kbukum/transcribealpha/validation"
)

// GenerateDocx handles POST /generate_docx: renders the turns into the
// configured template and returns the document as an attachment named
// after the FILE_NAME title field.
func (h *Handler) GenerateDocx(c *gin.Context) {
	var req docxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, errors.InvalidInput("", "expected a JSON body").WithCause(err))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	title := req.title()
	data, err := h.deps.Renderer.Render(title, req.TranscriptTurns)
	if err != nil {
		server.RespondWithError(c, errors.Internal(err))
		return
	}

	filename := document.Filename(title[document.FieldFileName])
	h.logFor(c).Debug("Document rendered", logger.Fields(
		logger.FieldFile, req.GeminiFileName,
		"turns", len(req.TranscriptTurns),
		"bytes", len(data),
	))
	server.RespondAttachment(c, filename, document.MIMEType, data)
}
