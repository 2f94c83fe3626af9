package app

import (
	"github.com/kbukum/transcribealpha/logger"
	"github.com/kbukum/transcribealpha/media"
	"github.com/kbukum/transcribealpha/observability"
	"github.com/kbukum/transcribealpha/transcription"
)

// NewTranscriber builds the pipeline over remote. The ffmpeg tools are used
// for conversion and probing when enabled and installed; otherwise video
// input is rejected and durations are left out.
func NewTranscriber(cfg *Config, remote transcription.RemoteService, metrics *observability.PipelineMetrics, log *logger.Logger) *transcription.Transcriber {
	opts := []transcription.Option{
		transcription.WithLogger(log.WithComponent("transcription")),
		transcription.WithMetrics(metrics),
	}
	if ff := newFFmpeg(cfg.Media, log); ff != nil {
		opts = append(opts, transcription.WithConverter(ff), transcription.WithProber(ff))
	}
	return transcription.New(remote, cfg.Transcription, opts...)
}

func newFFmpeg(cfg media.Config, log *logger.Logger) *media.FFmpeg {
	if !cfg.Enabled {
		return nil
	}
	ff := media.NewFFmpeg(cfg)
	if err := ff.Available(); err != nil {
		log.Warn("ffmpeg unavailable, video input disabled", logger.Fields(logger.FieldError, err.Error()))
		return nil
	}
	return ff
}
