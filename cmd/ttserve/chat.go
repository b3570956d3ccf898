package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/jzhengTT/ttserve/internal/demo"
)

func chatCmd() *cli.Command {
	var demoTimeout time.Duration

	return &cli.Command{
		Name:  "chat",
		Usage: "Interactive chat against the tt-metal text demo",
		Flags: append(loggingFlags(),
			&cli.DurationFlag{
				Name:        "demo-timeout",
				Usage:       "per-prompt inference timeout",
				Value:       5 * time.Minute,
				Destination: &demoTimeout,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()
			applyLoggingConfig(cmd, cfg)
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

			fmt.Fprintln(os.Stderr, "Chat against the tt-metal demo. Each prompt reloads the model;")
			fmt.Fprintln(os.Stderr, "the first run compiles kernels and can take several minutes.")
			fmt.Fprintln(os.Stderr, "Type /exit to quit.")

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					break
				}
				input := strings.TrimSpace(scanner.Text())
				switch strings.ToLower(input) {
				case "":
					continue
				case "/exit", "exit", "quit", "q":
					return scanner.Err()
				}

				res, err := runner.Run(ctx, input)
				if err != nil {
					fmt.Fprintf(os.Stderr, "inference failed: %v\n", err)
					continue
				}
				fmt.Println(res.Output)
				fmt.Fprintf(os.Stderr, "(%.1fs)\n", res.Elapsed.Seconds())
			}
			return scanner.Err()
		},
	}
}
