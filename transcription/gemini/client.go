package gemini

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/kbukum/transcribealpha/logger"
	"github.com/kbukum/transcribealpha/transcription"
	"github.com/kbukum/transcribealpha/util"
)

// Client is a transcription.RemoteService backed by the Gemini API.
// It holds one long-lived genai client and is safe for concurrent use.
type Client struct {
	genai *genai.Client
	cfg   Config
	log   *logger.Logger
}

var _ transcription.RemoteService = (*Client)(nil)

// New creates a Client. It fails when no API key is configured.
func New(ctx context.Context, cfg Config, log *logger.Logger) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.WithComponent("gemini")
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	gc, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}

	log.Info("gemini client ready", logger.Fields("model", cfg.Model, "api_key", util.MaskSecret(cfg.APIKey, 4)))
	return &Client{genai: gc, cfg: cfg, log: log}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.cfg.Model
}

// Upload sends the file at path with a single upload call.
func (c *Client) Upload(ctx context.Context, path string, opts transcription.UploadOptions) (transcription.Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return transcription.Handle{}, fmt.Errorf("gemini upload: %w", err)
	}
	defer f.Close()

	if c.cfg.UploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.UploadTimeout)
		defer cancel()
	}

	file, err := c.genai.Files.Upload(ctx, f, &genai.UploadFileConfig{
		MIMEType:    opts.MIMEType,
		DisplayName: opts.DisplayName,
	})
	if err != nil {
		return transcription.Handle{}, classify("upload", err)
	}
	return toHandle(file), nil
}

// Status returns the processing state of the named file.
func (c *Client) Status(ctx context.Context, name string) (transcription.FileState, error) {
	file, err := c.genai.Files.Get(ctx, name, nil)
	if err != nil {
		return transcription.StateUnknown, classify("status", err)
	}
	return mapState(file.State), nil
}

// Delete removes the named file.
func (c *Client) Delete(ctx context.Context, name string) error {
	if _, err := c.genai.Files.Delete(ctx, name, nil); err != nil {
		return classify("delete", err)
	}
	return nil
}

// Generate runs a structured-output generation over the referenced file.
func (c *Client) Generate(ctx context.Context, req transcription.GenerateRequest) (string, error) {
	resp, err := c.genai.Models.GenerateContent(ctx, c.cfg.Model, generateContents(req), generateConfig(req))
	if err != nil {
		return "", classify("generate", err)
	}
	text, err := responseText(resp)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return text, nil
}
