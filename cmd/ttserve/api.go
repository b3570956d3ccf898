package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/jzhengTT/ttserve/internal/api"
	"github.com/jzhengTT/ttserve/internal/demo"
)

func apiCmd() *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
		demoTimeout time.Duration
	)

	return &cli.Command{
		Name:  "api",
		Usage: "Serve a REST wrapper around the tt-metal text demo",
		Description: `Development server that runs the tt-metal demo per request. The
model is reloaded on every prompt, so responses take minutes; use the
serve command for real workloads.`,
		Flags: append(loggingFlags(),
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "HTTP read header timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
			&cli.DurationFlag{
				Name:        "demo-timeout",
				Usage:       "per-request inference timeout",
				Value:       5 * time.Minute,
				Destination: &demoTimeout,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()
			applyLoggingConfig(cmd, cfg)
			applyAPIConfig(cmd, cfg, &addr)
			log := newLogger()

			preflight := demo.Preflight{}
			if err := preflight.Check(); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			runner := &demo.Runner{
				Preflight: preflight,
				Timeout:   demoTimeout,
				Log:       log,
			}
			server := api.NewServer(runner, api.Options{
				LlamaDir: preflight.LlamaDir,
				Log:      log,
			})

			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)

			log.Info("starting api server", "address", addr)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
