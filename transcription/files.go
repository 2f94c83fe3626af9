package transcription

import (
	"context"
	"time"

	"github.com/kbukum/transcribealpha/errors"
	"github.com/kbukum/transcribealpha/logger"
	"github.com/kbukum/transcribealpha/media"
	"github.com/kbukum/transcribealpha/observability"
	"github.com/kbukum/transcribealpha/resilience"
)

// releaseTimeout bounds a best-effort delete, detached from the caller's context.
const releaseTimeout = 30 * time.Second

// PollConfig configures readiness polling.
type PollConfig struct {
	MaxAttempts        int `yaml:"max_attempts" mapstructure:"max_attempts"`
	resilience.Backoff `yaml:",inline" mapstructure:",squash"`
}

// DefaultPollConfig allows 15 checks starting at 8s, growing by 1.5 up to 45s.
func DefaultPollConfig() PollConfig {
	return PollConfig{MaxAttempts: 15, Backoff: resilience.DefaultPollBackoff()}
}

// FileManager owns the lifecycle of remote files: upload, readiness polling and release.
type FileManager struct {
	remote  RemoteService
	poll    PollConfig
	sleep   resilience.Sleeper
	log     *logger.Logger
	metrics *observability.PipelineMetrics
}

// NewFileManager creates a FileManager. A nil sleep uses real time.
func NewFileManager(remote RemoteService, poll PollConfig, sleep resilience.Sleeper, log *logger.Logger, metrics *observability.PipelineMetrics) *FileManager {
	if poll.MaxAttempts <= 0 {
		poll.MaxAttempts = DefaultPollConfig().MaxAttempts
	}
	if sleep == nil {
		sleep = resilience.Sleep
	}
	if log == nil {
		log = logger.WithComponent("transcription")
	}
	return &FileManager{remote: remote, poll: poll, sleep: sleep, log: log, metrics: metrics}
}

// Upload sends the file at path with exactly one remote call.
// Extensions without an audio MIME type fail with UNSUPPORTED_FORMAT before any call.
func (m *FileManager) Upload(ctx context.Context, path, extension, displayName string) (Handle, error) {
	mime, ok := media.MIMEType(extension)
	if !ok {
		return Handle{}, errors.UnsupportedFormat(media.NormalizeExtension(extension))
	}

	h, err := m.remote.Upload(ctx, path, UploadOptions{MIMEType: mime, DisplayName: displayName})
	if err != nil {
		reason := remoteReason(err)
		m.log.Error("upload failed", logger.Fields("reason", reason, logger.FieldError, err.Error()))
		return Handle{}, errors.UploadFailed(reason, err)
	}
	if h.MIMEType == "" {
		h.MIMEType = mime
	}
	m.log.Info("uploaded recording", logger.Fields(logger.FieldFile, h.Name, "state", string(h.State), "mime_type", h.MIMEType))
	return h, nil
}

// AwaitReady polls h until it is ACTIVE.
//
// Status errors are transient and consume an attempt. Polling stops on the
// first state other than PENDING; anything but ACTIVE (FAILED, UNKNOWN or an
// unrecognised state) fails with PROCESSING_FAILED. Running out of attempts or
// ctx ending fails with PROCESSING_TIMEOUT. The file is released before any
// failure is returned.
func (m *FileManager) AwaitReady(ctx context.Context, h Handle) (Handle, error) {
	cfg := resilience.PollConfig{
		MaxAttempts: m.poll.MaxAttempts,
		Backoff:     m.poll.Backoff,
		Sleep:       m.sleep,
		OnAttempt: func(attempt int, err error, next time.Duration) {
			fields := logger.Fields(logger.FieldFile, h.Name, logger.FieldAttempt, attempt, "max_attempts", m.poll.MaxAttempts, "next_delay", next.String())
			if err != nil {
				fields[logger.FieldError] = err.Error()
				m.log.Warn("status check failed", fields)
				return
			}
			m.log.Debug("file not ready yet", fields)
		},
	}

	state, attempts, err := resilience.Poll(ctx, cfg, func(ctx context.Context, _ int) (FileState, bool, error) {
		s, err := m.remote.Status(ctx, h.Name)
		if err != nil {
			return StateUnknown, false, err
		}
		return s, s != StatePending, nil
	})
	if state != "" {
		h.State = state
	}
	m.metrics.RecordPollAttempts(ctx, attempts, string(h.State))

	switch {
	case err == nil && state == StateActive:
		m.log.Info("file ready", logger.Fields(logger.FieldFile, h.Name, "attempts", attempts))
		return h, nil
	case err == nil:
		m.log.Error("remote processing failed", logger.Fields(logger.FieldFile, h.Name, "attempts", attempts, "state", string(state)))
		m.Release(ctx, h)
		return h, errors.ProcessingFailed(h.Name).WithDetail("state", string(state))
	default:
		m.log.Error("file did not become ready", logger.Fields(logger.FieldFile, h.Name, "attempts", attempts, "state", string(h.State)))
		m.Release(ctx, h)
		return h, errors.ProcessingTimeout(h.Name, attempts).WithCause(err)
	}
}

// Release deletes the remote file. It never fails; errors are logged.
// It runs even when ctx is already canceled.
func (m *FileManager) Release(ctx context.Context, h Handle) {
	if h.Name == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()

	if err := m.remote.Delete(ctx, h.Name); err != nil {
		m.metrics.RecordCleanup(ctx, false)
		m.log.Warn("release failed", logger.Fields(logger.FieldFile, h.Name, logger.FieldError, err.Error()))
		return
	}
	m.metrics.RecordCleanup(ctx, true)
	m.log.Info("released remote file", logger.Fields(logger.FieldFile, h.Name))
}
