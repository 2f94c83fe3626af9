package gemini

import (
	"context"
	"fmt"

	"github.com/kbukum/transcribealpha/component"
	"github.com/kbukum/transcribealpha/logger"
	"github.com/kbukum/transcribealpha/util"
)

// Component manages the Gemini client lifecycle.
type Component struct {
	cfg    Config
	client *Client
	log    *logger.Logger
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates a Gemini component. The client is built on Start.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, log: log.WithComponent("gemini")}
}

// Client returns the client, or nil before Start.
func (c *Component) Client() *Client {
	return c.client
}

// Name returns the component name.
func (c *Component) Name() string { return "gemini" }

// Start creates the client.
func (c *Component) Start(ctx context.Context) error {
	client, err := New(ctx, c.cfg, c.log)
	if err != nil {
		return fmt.Errorf("gemini start: %w", err)
	}
	c.client = client
	return nil
}

// Stop drops the client. The genai client holds no resources to close.
func (c *Component) Stop(_ context.Context) error {
	c.client = nil
	return nil
}

// Health reports whether the client was created.
func (c *Component) Health(_ context.Context) component.Health {
	if c.client == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "client not initialized"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe returns summary info for the startup display.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    "Gemini",
		Type:    "inference",
		Details: fmt.Sprintf("model=%s key=%s", c.cfg.Model, util.MaskSecret(c.cfg.APIKey, 4)),
	}
}
