package transcription

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/kbukum/transcribealpha/errors"
	"github.com/kbukum/transcribealpha/logger"
	"github.com/kbukum/transcribealpha/media"
	"github.com/kbukum/transcribealpha/observability"
	"github.com/kbukum/transcribealpha/resilience"
	"github.com/kbukum/transcribealpha/util"
)

// Config configures the pipeline.
type Config struct {
	Polling PollConfig `yaml:"polling" mapstructure:"polling"`
	// GenerateTimeout bounds the generation call. Zero means no extra deadline.
	GenerateTimeout time.Duration `yaml:"generate_timeout" mapstructure:"generate_timeout"`
	// KeepFileOnMalformed leaves the remote file alive when the model output
	// cannot be parsed, so the caller can release it later.
	KeepFileOnMalformed bool `yaml:"keep_file_on_malformed" mapstructure:"keep_file_on_malformed"`
	// MaxConcurrent caps simultaneous transcriptions. Zero means unlimited.
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
	// TempDir is where request-scoped files are staged. Empty uses os.TempDir.
	TempDir string `yaml:"temp_dir" mapstructure:"temp_dir"`
}

// ApplyDefaults fills polling and timeout defaults.
func (c *Config) ApplyDefaults() {
	def := DefaultPollConfig()
	if c.Polling.MaxAttempts <= 0 {
		c.Polling.MaxAttempts = def.MaxAttempts
	}
	if c.Polling.Initial <= 0 {
		c.Polling.Initial = def.Initial
	}
	if c.Polling.Max <= 0 {
		c.Polling.Max = def.Max
	}
	if c.Polling.Factor < 1 {
		c.Polling.Factor = def.Factor
	}
	if c.GenerateTimeout == 0 {
		c.GenerateTimeout = 5 * time.Minute
	}
}

// Validate checks the polling bounds.
func (c *Config) Validate() error {
	if c.Polling.Max < c.Polling.Initial {
		return fmt.Errorf("transcription.polling.max_delay (%s) must be >= initial_delay (%s)", c.Polling.Max, c.Polling.Initial)
	}
	if c.MaxConcurrent < 0 {
		return fmt.Errorf("transcription.max_concurrent must be >= 0")
	}
	return nil
}

// Converter turns a recording the remote service does not accept into an mp3.
type Converter interface {
	Convert(ctx context.Context, src, dstDir string) (string, error)
}

// Prober reports the playing time of a recording.
type Prober interface {
	Duration(ctx context.Context, path string) (time.Duration, error)
}

// Option configures a Transcriber.
type Option func(*Transcriber)

// WithConverter enables video and m4a input.
func WithConverter(c Converter) Option {
	return func(t *Transcriber) { t.converter = c }
}

// WithProber fills Result.Duration.
func WithProber(p Prober) Option {
	return func(t *Transcriber) { t.prober = p }
}

// WithSleeper replaces the real-time wait between status checks.
func WithSleeper(s resilience.Sleeper) Option {
	return func(t *Transcriber) { t.sleep = s }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(t *Transcriber) { t.log = l }
}

// WithMetrics records pipeline metrics.
func WithMetrics(m *observability.PipelineMetrics) Option {
	return func(t *Transcriber) { t.metrics = m }
}

// Transcriber runs the upload, poll, generate and validate pipeline.
// It holds no per-request state and is safe for concurrent use.
type Transcriber struct {
	cfg       Config
	remote    RemoteService
	files     *FileManager
	invoker   *Invoker
	converter Converter
	prober    Prober
	sleep     resilience.Sleeper
	bulkhead  *resilience.Bulkhead
	log       *logger.Logger
	metrics   *observability.PipelineMetrics
}

// New creates a Transcriber over remote.
func New(remote RemoteService, cfg Config, opts ...Option) *Transcriber {
	cfg.ApplyDefaults()
	t := &Transcriber{cfg: cfg, remote: remote}
	for _, opt := range opts {
		opt(t)
	}
	if t.log == nil {
		t.log = logger.WithComponent("transcription")
	}
	t.files = NewFileManager(remote, cfg.Polling, t.sleep, t.log, t.metrics)
	t.invoker = NewInvoker(remote, cfg.GenerateTimeout, t.log)
	if cfg.MaxConcurrent > 0 {
		t.bulkhead = resilience.NewBulkhead(resilience.BulkheadConfig{
			Name:          "transcriptions",
			MaxConcurrent: cfg.MaxConcurrent,
			OnReject: func(name string, err error) {
				t.log.Warn("transcription rejected", logger.Fields("bulkhead", name, logger.FieldError, err.Error()))
			},
		})
	}
	return t
}

// Files exposes the file manager for callers that release files later.
func (t *Transcriber) Files() *FileManager {
	return t.files
}

// Release deletes a remote file by name. It never fails; errors are logged.
func (t *Transcriber) Release(ctx context.Context, name string) {
	t.files.Release(ctx, Handle{Name: name})
}

// Supported reports whether a recording with ext can be transcribed.
func (t *Transcriber) Supported(ext string) bool {
	if _, ok := media.MIMEType(ext); ok {
		return true
	}
	return t.converter != nil && media.IsConvertible(ext)
}

// Transcribe runs the pipeline for one recording.
//
// On success the remote file is still alive and returned in Result.File; the
// caller releases it when done. Every failure after the upload created a
// remote file releases it before returning, except a malformed response when
// KeepFileOnMalformed is set. Local temporary files never outlive the call.
func (t *Transcriber) Transcribe(ctx context.Context, req Request) (*Result, error) {
	if t.bulkhead == nil {
		return t.run(ctx, req)
	}
	res, err := resilience.ExecuteWithResult(ctx, t.bulkhead, func() (*Result, error) {
		return t.run(ctx, req)
	})
	if stderrors.Is(err, resilience.ErrBulkheadFull) || stderrors.Is(err, resilience.ErrBulkheadTimeout) {
		return nil, errors.ServiceUnavailable("transcription pipeline").WithCause(err)
	}
	return res, err
}

func (t *Transcriber) run(ctx context.Context, req Request) (res *Result, err error) {
	ctx, span := observability.StartSpan(ctx, "transcription.transcribe")
	log := t.log.WithContext(ctx)
	defer func() {
		observability.EndSpan(span, err)
		outcome := "ok"
		if err != nil {
			outcome = string(errors.FromError(err).Code)
		}
		t.metrics.RecordOutcome(ctx, outcome)
	}()

	ext := media.NormalizeExtension(req.Media.Extension)
	if ext == "" {
		ext = util.Extension(req.Media.Filename)
	}
	if !t.Supported(ext) {
		return nil, errors.UnsupportedFormat(ext)
	}
	if req.Media.Body == nil {
		return nil, errors.MissingField("file")
	}
	hints := NewSpeakerHints(req.Speakers)

	var (
		h        Handle
		duration time.Duration
	)
	err = t.stage(ctx, log, StageUploading, func(ctx context.Context) error {
		var err error
		h, duration, err = t.upload(ctx, log, req.Media, ext)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = t.stage(ctx, log, StagePolling, func(ctx context.Context) error {
		var err error
		h, err = t.files.AwaitReady(ctx, h)
		return err
	})
	if err != nil {
		return nil, err
	}

	var raw string
	err = t.stage(ctx, log, StageGenerating, func(ctx context.Context) error {
		var err error
		raw, err = t.invoker.Generate(ctx, h, hints)
		return err
	})
	if err != nil {
		t.files.Release(ctx, h)
		return nil, err
	}

	var (
		turns    []Turn
		warnings []Warning
	)
	err = t.stage(ctx, log, StageValidating, func(context.Context) error {
		var err error
		turns, warnings, err = Validate(raw)
		return err
	})
	if err != nil {
		if t.cfg.KeepFileOnMalformed {
			log.Warn("keeping remote file after malformed response", logger.Fields(logger.FieldFile, h.Name))
			return nil, errors.FromError(err).WithDetail("file", h.Name)
		}
		t.files.Release(ctx, h)
		return nil, err
	}
	warnings = append(warnings, CheckSpeakers(turns, hints)...)
	t.reportWarnings(ctx, log, warnings)

	log.Info("transcription complete", logger.Fields(
		logger.FieldStage, string(StageDone),
		logger.FieldFile, h.Name,
		"turns", len(turns),
		"warnings", len(warnings),
	))
	return &Result{Turns: turns, File: h, Warnings: warnings, Duration: duration}, nil
}

// stage runs fn inside a span, logs the transition and records its duration.
func (t *Transcriber) stage(ctx context.Context, log *logger.Logger, s Stage, fn func(context.Context) error) error {
	ctx, span := observability.StartSpan(ctx, "transcription."+string(s))
	log.Debug("stage started", logger.Fields(logger.FieldStage, string(s)))

	start := time.Now()
	err := fn(ctx)
	t.metrics.RecordStage(ctx, string(s), time.Since(start), err != nil)
	observability.EndSpan(span, err)

	if err != nil {
		log.Error("stage failed", logger.Fields(logger.FieldStage, string(s), logger.FieldError, err.Error()))
	}
	return err
}

// upload stages the body in a request-scoped directory, converts it if
// needed and sends it to the remote service. The directory is removed before
// upload returns.
func (t *Transcriber) upload(ctx context.Context, log *logger.Logger, m Media, ext string) (Handle, time.Duration, error) {
	dir, err := os.MkdirTemp(t.cfg.TempDir, "transcribealpha-*")
	if err != nil {
		return Handle{}, 0, errors.Internal(fmt.Errorf("creating temp dir: %w", err))
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			log.Warn("removing temp dir failed", logger.Fields("dir", dir, logger.FieldError, rmErr.Error()))
		}
	}()

	path := filepath.Join(dir, "input."+ext)
	n, err := writeFile(path, m.Body)
	if err != nil {
		return Handle{}, 0, errors.Internal(fmt.Errorf("staging recording: %w", err))
	}
	if n == 0 {
		return Handle{}, 0, errors.InvalidInput("file", "recording is empty")
	}

	if media.IsConvertible(ext) {
		converted, err := t.converter.Convert(ctx, path, dir)
		if err != nil {
			return Handle{}, 0, errors.UnsupportedFormat(ext).WithCause(err)
		}
		path, ext = converted, media.ConvertedExtension
	}

	var duration time.Duration
	if t.prober != nil {
		d, err := t.prober.Duration(ctx, path)
		if err != nil {
			log.Warn("duration probe failed", logger.Fields(logger.FieldError, err.Error()))
		} else {
			duration = d
		}
	}

	display := m.Filename
	if display == "" {
		display = filepath.Base(path)
	}
	h, err := t.files.Upload(ctx, path, ext, display)
	return h, duration, err
}

func writeFile(path string, body io.Reader) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return n, err
}

func (t *Transcriber) reportWarnings(ctx context.Context, log *logger.Logger, warnings []Warning) {
	counts := make(map[string]int)
	for _, w := range warnings {
		counts[w.Code]++
		log.Warn("transcript record repaired", logger.Fields("index", w.Index, "code", w.Code, "detail", w.Message))
	}
	for code, n := range counts {
		t.metrics.RecordWarnings(ctx, code, n)
	}
}
