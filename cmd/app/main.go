package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/graflint/internal"
	"github.com/starford/graflint/internal/apperr"
	pkgconfig "github.com/starford/graflint/pkg/config"
)

func run(ctx context.Context, cmd *cli.Command) error {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadIfPresent(cmd.String("config"), cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	// Flags and the positional argument override the config file.
	if repo := cmd.Args().First(); repo != "" {
		cfg.Repo.Path = repo
	} else if repo := cmd.String("repo"); repo != "" {
		cfg.Repo.Path = repo
	}
	if bin := cmd.String("archi"); bin != "" {
		cfg.Repo.ArchiBin = bin
	}
	if cmd.Bool("strict-ids") {
		cfg.Repo.StrictIDs = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
		internal.WithWatch(cmd.Bool("watch")),
		internal.WithServe(cmd.Bool("serve")),
	}

	return internal.Run(ctx, opts...)
}

func main() {
	cmd := &cli.Command{
		Name:      "graflint",
		Usage:     "Validate a Grafico-style ArchiMate repository: structure, identities, references, relationships, and diagrams",
		ArgsUsage: "[repository path]",
		Action:    run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("GRAFLINT_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "repo",
				Aliases: []string{"r"},
				Usage:   "Path to the repository root",
			},
			&cli.StringFlag{
				Name:    "archi",
				Aliases: []string{"a"},
				Usage:   "Path to an Archi binary for the end-to-end smoke test",
			},
			&cli.BoolFlag{
				Name:  "strict-ids",
				Usage: "Require identifiers of the form id-<32 hex>",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Keep running and re-validate on repository changes",
			},
			&cli.BoolFlag{
				Name:  "serve",
				Usage: "Expose the latest report over HTTP (implies --watch)",
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		if !errors.Is(err, apperr.ErrValidationFailed) {
			slog.Error("application error", slog.String("error", err.Error()))
		}
		os.Exit(1)
	}
}
