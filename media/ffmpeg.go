package media

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kbukum/transcribealpha/logger"
	"github.com/kbukum/transcribealpha/process"
)

// Config configures the ffmpeg converter.
type Config struct {
	Enabled     bool   `yaml:"enabled" mapstructure:"enabled"`
	FFmpegPath  string `yaml:"ffmpeg_path" mapstructure:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path" mapstructure:"ffprobe_path"`
	Bitrate     string `yaml:"bitrate" mapstructure:"bitrate"`
}

// ApplyDefaults fills in binary names and the mp3 bitrate.
func (c *Config) ApplyDefaults() {
	if c.FFmpegPath == "" {
		c.FFmpegPath = "ffmpeg"
	}
	if c.FFprobePath == "" {
		c.FFprobePath = "ffprobe"
	}
	if c.Bitrate == "" {
		c.Bitrate = "192k"
	}
}

// Runner executes an external command and returns its stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type processRunner struct{}

func (processRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	res, err := process.Run(ctx, process.Command{Binary: name, Args: args})
	if err != nil {
		return nil, err
	}
	return res.Stdout, nil
}

// FFmpeg converts recordings and probes their duration using the ffmpeg tools.
type FFmpeg struct {
	cfg    Config
	runner Runner
	log    *logger.Logger
}

// Option configures an FFmpeg.
type Option func(*FFmpeg)

// WithRunner replaces the command runner.
func WithRunner(r Runner) Option {
	return func(f *FFmpeg) { f.runner = r }
}

// NewFFmpeg creates a converter from cfg.
func NewFFmpeg(cfg Config, opts ...Option) *FFmpeg {
	cfg.ApplyDefaults()
	f := &FFmpeg{
		cfg:    cfg,
		runner: processRunner{},
		log:    logger.WithComponent("media"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Available reports whether both binaries can be found.
func (f *FFmpeg) Available() error {
	for _, bin := range []string{f.cfg.FFmpegPath, f.cfg.FFprobePath} {
		if _, err := exec.LookPath(bin); err != nil {
			return fmt.Errorf("media: %s not found: %w", bin, err)
		}
	}
	return nil
}

// Convert transcodes src to an mp3 inside dstDir and returns the new path.
func (f *FFmpeg) Convert(ctx context.Context, src, dstDir string) (string, error) {
	base := filepath.Base(src)
	dst := filepath.Join(dstDir, strings.TrimSuffix(base, filepath.Ext(base))+"_audio."+ConvertedExtension)

	start := time.Now()
	_, err := f.runner.Run(ctx, f.cfg.FFmpegPath, f.convertArgs(src, dst)...)
	if err != nil {
		return "", fmt.Errorf("media: converting %s: %w", base, err)
	}
	f.log.Debug("converted recording to mp3", logger.DurationFields("convert", time.Since(start)))
	return dst, nil
}

func (f *FFmpeg) convertArgs(src, dst string) []string {
	return []string{
		"-y",
		"-i", src,
		"-vn",
		"-acodec", "libmp3lame",
		"-b:a", f.cfg.Bitrate,
		dst,
	}
}

// Duration reads the container duration of path with ffprobe.
func (f *FFmpeg) Duration(ctx context.Context, path string) (time.Duration, error) {
	out, err := f.runner.Run(ctx, f.cfg.FFprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("media: probing %s: %w", filepath.Base(path), err)
	}
	return parseProbeDuration(out)
}

func parseProbeDuration(out []byte) (time.Duration, error) {
	var probe struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(out, &probe); err != nil {
		return 0, fmt.Errorf("media: parsing ffprobe output: %w", err)
	}
	if probe.Format.Duration == "" {
		return 0, fmt.Errorf("media: ffprobe reported no duration")
	}
	secs, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("media: invalid duration %q: %w", probe.Format.Duration, err)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// FormatDuration renders d as HH:MM:SS, truncating fractional seconds.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
