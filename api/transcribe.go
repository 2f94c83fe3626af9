package api

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/transcribealpha/errors"
	"github.com/kbukum/transcribealpha/logger"
	"github.com/kbukum/transcribealpha/media"
	"github.com/kbukum/transcribealpha/server"
	"github.com/kbukum/transcribealpha/storage"
	"github.com/kbukum/transcribealpha/transcription"
	"github.com/kbukum/transcribealpha/util"
	"github.com/kbukum/transcribealpha/validation"
)

// Multipart field names of POST /transcribe.
const (
	fieldRequestData = "request_data_json"
	fieldAudioFile   = "audio_file"
	fieldObjectKey   = "r2_object_key"
)

// multipartMemory is how much of a multipart body is buffered in memory
// before spilling to disk.
const multipartMemory = 32 << 20

// cleanupTimeout bounds best-effort deletes that outlive the request.
const cleanupTimeout = 30 * time.Second

// Transcribe handles POST /transcribe. The recording arrives either as the
// audio_file part or as the key of an object staged through a presigned
// upload. Direct uploads are staged too when storage is enabled, so the
// client can clean them up with the returned key.
func (h *Handler) Transcribe(c *gin.Context) {
	ctx := c.Request.Context()
	log := h.logFor(c)

	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		server.RespondWithError(c, formError(err))
		return
	}
	form := c.Request.MultipartForm
	defer func() { _ = form.RemoveAll() }()

	rd, err := parseRequestData(formValue(form, fieldRequestData))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	files := form.File[fieldAudioFile]
	key := formValue(form, fieldObjectKey)
	switch {
	case len(files) > 0 && key != "":
		server.RespondWithError(c, errors.InvalidInput(fieldAudioFile, "send either audio_file or r2_object_key, not both"))
		return
	case len(files) == 0 && key == "":
		server.RespondWithError(c, errors.MissingField(fieldAudioFile+" or "+fieldObjectKey))
		return
	}

	var (
		m      transcription.Media
		staged string
	)
	if key != "" {
		m, err = h.mediaFromObject(ctx, key)
	} else {
		var closeFn func()
		m, staged, closeFn, err = h.mediaFromUpload(ctx, log, files[0])
		if closeFn != nil {
			defer closeFn()
		}
		key = staged
	}
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	res, err := h.deps.Transcriber.Transcribe(ctx, transcription.Request{
		Media:    m,
		Speakers: transcription.NewSpeakerHints(rd.SpeakerNames),
	})
	if err != nil {
		if staged != "" {
			h.deleteObject(ctx, log, staged)
		}
		server.RespondWithError(c, err)
		return
	}

	resp := transcribeResponse{
		TranscriptTurns: res.Turns,
		GeminiFileName:  res.File.Name,
		R2ObjectKey:     key,
		TitleData:       rd.titleData(m.Filename, res),
		Warnings:        res.Warnings,
	}
	if resp.TranscriptTurns == nil {
		resp.TranscriptTurns = []transcription.Turn{}
	}
	if res.Duration > 0 {
		resp.Duration = media.FormatDuration(res.Duration)
	}
	log.Info("Transcription served", logger.Fields(
		logger.FieldFile, res.File.Name,
		"turns", len(resp.TranscriptTurns),
		"warnings", len(resp.Warnings),
	))
	server.RespondOK(c, resp)
}

// mediaFromObject reads a staged object into memory.
func (h *Handler) mediaFromObject(ctx context.Context, key string) (transcription.Media, error) {
	if h.deps.Storage == nil {
		return transcription.Media{}, errors.ServiceUnavailable("object storage")
	}
	if err := validation.New().ObjectKey(fieldObjectKey, key).Validate(); err != nil {
		return transcription.Media{}, err
	}
	ext := util.Extension(key)
	if !h.deps.Transcriber.Supported(ext) {
		return transcription.Media{}, errors.UnsupportedFormat(ext)
	}

	data, err := storage.ReadAll(ctx, h.deps.Storage, key, h.deps.MaxObjectSize)
	switch {
	case stderrors.Is(err, storage.ErrNotFound):
		return transcription.Media{}, errors.NotFound("object", key)
	case stderrors.Is(err, storage.ErrTooLarge):
		return transcription.Media{}, errors.PayloadTooLarge(h.deps.MaxObjectSize).WithCause(err)
	case err != nil:
		return transcription.Media{}, errors.ExternalServiceError("object storage", err)
	}
	return transcription.Media{
		Body:      bytes.NewReader(data),
		Filename:  key,
		Extension: ext,
	}, nil
}

// mediaFromUpload opens the uploaded part and stages it when storage is
// enabled. A staging failure is logged and the transcription proceeds
// without a key.
func (h *Handler) mediaFromUpload(ctx context.Context, log *logger.Logger, fh *multipart.FileHeader) (transcription.Media, string, func(), error) {
	ext := util.Extension(fh.Filename)
	if !h.deps.Transcriber.Supported(ext) {
		return transcription.Media{}, "", nil, errors.UnsupportedFormat(ext)
	}

	f, err := fh.Open()
	if err != nil {
		return transcription.Media{}, "", nil, errors.InvalidInput(fieldAudioFile, "unreadable upload").WithCause(err)
	}
	closeFn := func() { _ = f.Close() }
	contentType := fh.Header.Get("Content-Type")

	var staged string
	if h.deps.Storage != nil {
		key := storage.ObjectKey(fh.Filename, h.deps.Now())
		if err := h.deps.Storage.Upload(ctx, key, f, contentType); err != nil {
			log.Warn("Staging upload failed", logger.Fields(logger.FieldFile, key, logger.FieldError, err.Error()))
		} else {
			staged = key
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return transcription.Media{}, "", closeFn, errors.Internal(err)
		}
	}

	return transcription.Media{
		Body:        f,
		Filename:    fh.Filename,
		Extension:   ext,
		ContentType: contentType,
	}, staged, closeFn, nil
}

// deleteObject removes a staged object, surviving request cancellation.
func (h *Handler) deleteObject(ctx context.Context, log *logger.Logger, key string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()
	if err := h.deps.Storage.Delete(ctx, key); err != nil {
		log.Warn("Deleting staged object failed", logger.Fields(logger.FieldFile, key, logger.FieldError, err.Error()))
	}
}

func formValue(form *multipart.Form, name string) string {
	if v := form.Value[name]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// formError maps multipart parsing failures onto client errors.
func formError(err error) error {
	var maxErr *http.MaxBytesError
	if stderrors.As(err, &maxErr) {
		return errors.PayloadTooLarge(maxErr.Limit).WithCause(err)
	}
	return errors.InvalidInput("", "expected a multipart/form-data body").WithCause(err)
}
