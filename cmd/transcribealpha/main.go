// Command transcribealpha serves the transcription API over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/kbukum/transcribealpha/app"
	"github.com/kbukum/transcribealpha/bootstrap"
	"github.com/kbukum/transcribealpha/component"
	"github.com/kbukum/transcribealpha/server"
	"github.com/kbukum/transcribealpha/storage"
	_ "github.com/kbukum/transcribealpha/storage/local"
	_ "github.com/kbukum/transcribealpha/storage/s3"
	"github.com/kbukum/transcribealpha/transcription/gemini"
	"github.com/kbukum/transcribealpha/version"
)

func main() {
	configPath := flag.String("config", "", "path to config.yml (default: search ./cmd/transcribealpha, ./)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().String())
		return
	}
	if err := run(context.Background(), *configPath); err != nil {
		fmt.Fprintln(os.Stderr, "transcribealpha:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		return err
	}
	a, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}

	telemetry, err := app.InitTelemetry(ctx, cfg)
	if err != nil {
		return err
	}
	a.OnStop(telemetry.Shutdown)
	if cfg.Tracing.Enabled || cfg.Metrics.Enabled {
		a.Summary.Track(component.Description{
			Name:    "Telemetry",
			Type:    "otlp",
			Details: fmt.Sprintf("tracing=%t metrics=%t", cfg.Tracing.Enabled, cfg.Metrics.Enabled),
		})
	}

	srv := server.New(cfg.Server, a.Logger.WithComponent("http"))
	srv.ApplyMiddleware()
	srv.RegisterDefaultEndpoints(cfg.Name, a.Components.HealthAll)

	gem := gemini.NewComponent(cfg.Gemini, a.Logger)
	store := storage.NewComponent(cfg.Storage, a.Logger)
	components := []component.Component{
		gem,
		store,
		app.NewAPIComponent(cfg, gem, store, srv.GinEngine(), telemetry.Metrics, a.Logger),
		server.NewComponent(srv),
	}
	for _, c := range components {
		if err := a.RegisterComponent(c); err != nil {
			return err
		}
	}

	return a.Run(ctx)
}
