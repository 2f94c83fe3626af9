package bootstrap

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kbukum/transcribealpha/component"
)

// Summary renders the startup banner: infrastructure self-reported by
// components, registered routes and live health.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	extra           []component.Description
}

// NewSummary creates a summary for the named service.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// Track adds an entry that is not a registered component, such as the
// telemetry exporter or the ffmpeg binary.
func (s *Summary) Track(d component.Description) {
	s.extra = append(s.extra, d)
}

// Write prints the summary. A nil registry prints only the header and
// tracked entries.
func (s *Summary) Write(ctx context.Context, w io.Writer, registry *component.Registry) {
	fmt.Fprintf(w, "\n%s %s started in %.2fs\n", s.serviceName, s.version, s.startupDuration.Seconds())

	infra := s.infrastructure(registry)
	if len(infra) > 0 {
		fmt.Fprintf(w, "\nInfrastructure\n")
		for i, d := range infra {
			details := d.Details
			if d.Port > 0 {
				details = fmt.Sprintf("%s (:%d)", details, d.Port)
			}
			fmt.Fprintf(w, "   %s [%s] %s: %s\n", branch(i, len(infra)), d.Type, d.Name, details)
		}
	}

	if registry == nil {
		fmt.Fprintln(w)
		return
	}

	routes := collectRoutes(registry)
	if len(routes) > 0 {
		fmt.Fprintf(w, "\nRoutes (%d)\n", len(routes))
		for i, r := range routes {
			fmt.Fprintf(w, "   %s %-7s %s -> %s\n", branch(i, len(routes)), r.Method, r.Path, r.Handler)
		}
	}

	health := registry.HealthAll(ctx)
	if len(health) > 0 {
		fmt.Fprintf(w, "\nHealth (%s)\n", component.Overall(health))
		for i, h := range health {
			msg := ""
			if h.Message != "" {
				msg = " - " + h.Message
			}
			fmt.Fprintf(w, "   %s %s: %s%s\n", branch(i, len(health)), h.Name, strings.ToLower(string(h.Status)), msg)
		}
	}
	fmt.Fprintln(w)
}

func (s *Summary) infrastructure(registry *component.Registry) []component.Description {
	var out []component.Description
	if registry != nil {
		for _, c := range registry.All() {
			d, ok := c.(component.Describable)
			if !ok {
				continue
			}
			desc := d.Describe()
			if desc.Name == "" {
				desc.Name = c.Name()
			}
			out = append(out, desc)
		}
	}
	return append(out, s.extra...)
}

func collectRoutes(registry *component.Registry) []component.Route {
	var routes []component.Route
	for _, c := range registry.All() {
		if rp, ok := c.(component.RouteProvider); ok {
			routes = append(routes, rp.Routes()...)
		}
	}
	return routes
}

func branch(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}
