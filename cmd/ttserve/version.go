package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/jzhengTT/ttserve/internal/version"
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Printf("ttserve %s\n", version.String())
			if info := version.Resolve(); info.BuildTime != "" {
				fmt.Printf("build time: %s\n", info.BuildTime)
			}
			return nil
		},
	}
}
