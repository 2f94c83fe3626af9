package transcription

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/kbukum/transcribealpha/errors"
	"github.com/kbukum/transcribealpha/logger"
)

// Invoker builds the transcript generation request and calls the model.
type Invoker struct {
	remote  RemoteService
	timeout time.Duration
	log     *logger.Logger
}

// NewInvoker creates an Invoker. A positive timeout bounds each Generate call.
func NewInvoker(remote RemoteService, timeout time.Duration, log *logger.Logger) *Invoker {
	if log == nil {
		log = logger.WithComponent("transcription")
	}
	return &Invoker{remote: remote, timeout: timeout, log: log}
}

// Generate asks the model for a speaker-attributed transcript of h and
// returns its raw text. h must have been observed ACTIVE.
//
// Failures map to PERMISSION_DENIED, QUOTA_EXHAUSTED or GENERATION_FAILED.
func (i *Invoker) Generate(ctx context.Context, h Handle, hints SpeakerHints) (string, error) {
	if h.State != StateActive {
		return "", errors.Internal(fmt.Errorf("file %s is %s, not ACTIVE", h.Name, h.State))
	}

	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	req := GenerateRequest{
		Prompt:               BuildPrompt(hints),
		File:                 h,
		RecordFields:         recordFields,
		DisableSafetyFilters: true,
	}
	start := time.Now()
	text, err := i.remote.Generate(ctx, req)
	if err != nil {
		i.log.Error("generation failed", logger.Fields(
			logger.FieldFile, h.Name,
			"reason", remoteReason(err),
			logger.FieldError, err.Error(),
		))
		return "", classifyGenerateError(err)
	}
	i.log.Info("generation complete", logger.Fields(
		logger.FieldFile, h.Name,
		"speakers", len(hints),
		"response_bytes", len(text),
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return text, nil
}

func classifyGenerateError(err error) error {
	switch {
	case stderrors.Is(err, ErrPermissionDenied):
		return errors.PermissionDenied(err)
	case stderrors.Is(err, ErrQuotaExhausted):
		return errors.QuotaExhausted(err)
	default:
		return errors.GenerationFailed(err)
	}
}
