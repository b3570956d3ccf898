package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/jzhengTT/ttserve/internal/registry"
)

func modelsCmd() *cli.Command {
	return &cli.Command{
		Name:    "models",
		Aliases: []string{"ls"},
		Usage:   "Print the model registrations serve would install",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()

			tbl := registry.NewTable()
			if err := registry.RegisterAll(tbl, registrationEntries(cfg)); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			for _, e := range tbl.Entries() {
				fmt.Printf("%-36s %s\n", e.Name, e.ClassPath)
			}
			return nil
		},
	}
}
