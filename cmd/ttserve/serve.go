package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/jzhengTT/ttserve/internal/launch"
	"github.com/jzhengTT/ttserve/internal/logger"
	"github.com/jzhengTT/ttserve/internal/registry"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:      "serve",
		Usage:     "Register Tenstorrent models, then exec the vLLM OpenAI API server",
		ArgsUsage: "[vllm arguments...]",
		Description: `Registers the Tenstorrent model classes and replaces this process
with the vLLM OpenAI API server. Every argument after "serve" is
forwarded to vLLM unchanged; ttserve parses none of them.

Example:
   ttserve serve --model ~/models/Llama-3.1-8B-Instruct --port 8000 --max-model-len 65536`,
		// The whole trailing argument vector belongs to vLLM.
		SkipFlagParsing: true,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()
			if cfg.LogLevel != "" {
				logLevel = cfg.LogLevel
			}
			if cfg.LogFormat != "" {
				logFormat = cfg.LogFormat
			}
			log := newLogger()
			ctx = logger.WithContext(ctx, log)

			env := registry.NewEnvTable()
			launcher := &launch.Launcher{
				Registry: env,
				Entries:  registrationEntries(cfg),
				Entrypoint: &launch.ExecEntrypoint{
					Python:  cfg.Python,
					Module:  cfg.ServerModule,
					Environ: env.Environ,
				},
				Stdout: os.Stdout,
			}

			// Launch only returns on failure; on success the vLLM
			// server owns the process from here on.
			if err := launcher.Launch(ctx, cmd.Args().Slice()); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			return nil
		},
	}
}
