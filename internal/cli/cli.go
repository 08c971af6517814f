// Package cli implements liviewctl, a local front-end to the discovery and
// extraction operations that needs no running server.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/GriffinCanCode/liview/internal/domain/archive"
	"github.com/GriffinCanCode/liview/internal/domain/gallery"
	"github.com/GriffinCanCode/liview/internal/infrastructure/config"
	"github.com/GriffinCanCode/liview/internal/infrastructure/logging"
)

// Version is reported by --version.
const Version = "0.1.0"

// env carries what every command needs, built in Before.
type env struct {
	cfg       *config.Config
	log       *logging.Logger
	locator   *gallery.Locator
	extractor *archive.Extractor
	out       *printer
}

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout)
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	var (
		e        env
		logLevel string
		asJSON   bool
	)

	app := &cli.Command{
		Name:    "liviewctl",
		Usage:   "Browse image folders and zip archives from the terminal",
		Version: Version,
		Writer:  stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Log level (debug, info, warn, error)",
				Value:       "warn",
				Sources:     cli.EnvVars("LIVIEW_CTL_LOG_LEVEL"),
				Destination: &logLevel,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "Print results as JSON",
				Destination: &asJSON,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := config.Load()
			if err != nil {
				return ctx, err
			}
			log, err := logging.New(logging.Config{Level: logLevel, OutputPaths: []string{"stderr"}})
			if err != nil {
				return ctx, fmt.Errorf("invalid log level: %w", err)
			}
			locator, err := gallery.NewLocator(cfg.Images.Extensions, log)
			if err != nil {
				return ctx, err
			}

			e = env{
				cfg:     cfg,
				log:     log,
				locator: locator,
				extractor: archive.NewExtractor(archive.Options{
					MaxEntrySize: cfg.Archive.MaxEntrySizeBytes(),
					Logger:       log,
				}),
				out: newPrinter(stdout, asJSON),
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdImages(&e),
			cmdFolders(&e),
			cmdSiblings(&e),
			cmdExtract(&e),
			cmdEntries(&e),
		},
	}

	return app.Run(ctx, args)
}

func requireArg(c *cli.Command, name string) (string, error) {
	if c.Args().Len() < 1 {
		return "", fmt.Errorf("%s requires a %s argument", c.Name, name)
	}
	return c.Args().First(), nil
}
