// Command transcribe runs the speaker-attributed transcription pipeline on
// one local recording and prints the transcript.
//
//	transcribe -file deposition.mp4 -speakers "counsel,witness" -docx out.docx -title CASE_NAME="Doe v. Roe"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/kbukum/transcribealpha/app"
	"github.com/kbukum/transcribealpha/bootstrap"
	"github.com/kbukum/transcribealpha/document"
	apperrors "github.com/kbukum/transcribealpha/errors"
	"github.com/kbukum/transcribealpha/logger"
	"github.com/kbukum/transcribealpha/media"
	"github.com/kbukum/transcribealpha/transcription"
	"github.com/kbukum/transcribealpha/transcription/gemini"
	"github.com/kbukum/transcribealpha/util"
	"github.com/kbukum/transcribealpha/version"
)

type options struct {
	configPath string
	file       string
	speakers   string
	docx       string
	keep       bool
	title      titleFlags
}

func main() {
	var (
		opts        options
		showVersion bool
	)
	flag.StringVar(&opts.configPath, "config", "", "path to config.yml")
	flag.StringVar(&opts.file, "file", "", "recording to transcribe (required)")
	flag.StringVar(&opts.speakers, "speakers", "", "comma-separated speaker names, in order of appearance")
	flag.StringVar(&opts.docx, "docx", "", "also write the transcript as a .docx to this path")
	flag.BoolVar(&opts.keep, "keep", false, "keep the remote file instead of deleting it afterwards")
	flag.Var(&opts.title, "title", "title field as KEY=VALUE for the .docx (repeatable)")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(version.Get().String())
		return
	}
	if opts.file == "" {
		fmt.Fprintln(os.Stderr, "transcribe: -file is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(context.Background(), opts); err != nil {
		fmt.Fprintln(os.Stderr, "transcribe:", describe(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := app.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	// stdout carries the transcript.
	cfg.Logging.Output = "stderr"

	a, err := bootstrap.NewApp(cfg, bootstrap.WithQuiet())
	if err != nil {
		return err
	}
	gem := gemini.NewComponent(cfg.Gemini, a.Logger)
	if err := a.RegisterComponent(gem); err != nil {
		return err
	}

	return a.RunTask(ctx, func(ctx context.Context) error {
		ctx = logger.ContextWithRequestID(ctx, uuid.NewString())
		t := app.NewTranscriber(cfg, gem.Client(), nil, a.Logger)
		return transcribe(ctx, t, cfg, opts)
	})
}

func transcribe(ctx context.Context, t *transcription.Transcriber, cfg *app.Config, opts options) error {
	f, err := os.Open(opts.file)
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := t.Transcribe(ctx, transcription.Request{
		Media: transcription.Media{
			Body:      f,
			Filename:  filepath.Base(opts.file),
			Extension: util.Extension(opts.file),
		},
		Speakers: transcription.ParseSpeakerHints(opts.speakers),
	})
	if err != nil {
		return err
	}
	if opts.keep {
		fmt.Fprintf(os.Stderr, "remote file kept: %s\n", res.File.Name)
	} else {
		defer t.Release(context.WithoutCancel(ctx), res.File.Name)
	}

	fmt.Print(document.PlainText(res.Turns))
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: record %d: %s\n", w.Index, w.Message)
	}

	if opts.docx == "" {
		return nil
	}
	renderer, err := document.NewRenderer(cfg.Document)
	if err != nil {
		return err
	}
	title := opts.title.fields()
	if _, ok := title[document.FieldFileName]; !ok {
		title[document.FieldFileName] = filepath.Base(opts.file)
	}
	if res.Duration > 0 {
		title[document.FieldFileDuration] = media.FormatDuration(res.Duration)
	}
	data, err := renderer.Render(title, res.Turns)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.docx, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", opts.docx)
	return nil
}

// describe marks pipeline errors worth retrying.
func describe(err error) string {
	if appErr, ok := apperrors.AsAppError(err); ok && appErr.Retryable {
		return appErr.Error() + " (retryable)"
	}
	return err.Error()
}

// titleFlags collects repeated -title KEY=VALUE flags.
type titleFlags []string

func (t *titleFlags) String() string { return strings.Join(*t, ",") }

func (t *titleFlags) Set(v string) error {
	key, _, ok := strings.Cut(v, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return errors.New("expected KEY=VALUE")
	}
	*t = append(*t, v)
	return nil
}

func (t titleFlags) fields() map[string]string {
	out := make(map[string]string, len(t)+2)
	for _, kv := range t {
		key, value, _ := strings.Cut(kv, "=")
		out[strings.ToUpper(strings.TrimSpace(key))] = value
	}
	return out
}
