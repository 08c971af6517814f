package cli

import (
	"context"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/GriffinCanCode/liview/internal/domain/gallery"
	"github.com/GriffinCanCode/liview/internal/domain/session"
	"github.com/GriffinCanCode/liview/internal/domain/temparea"
)

func cmdImages(e *env) *cli.Command {
	var recursive bool

	return &cli.Command{
		Name:      "images",
		Aliases:   []string{"i"},
		Usage:     "List images in a folder",
		ArgsUsage: "<dir>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "recursive",
				Aliases:     []string{"r"},
				Usage:       "Descend into sub-folders",
				Destination: &recursive,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			dir, err := requireArg(c, "dir")
			if err != nil {
				return err
			}

			var images []string
			if recursive {
				images, err = e.locator.ListImagesRecursive(ctx, dir)
			} else {
				images, err = e.locator.ListImages(dir)
			}
			if err != nil {
				return err
			}
			return e.out.paths(images)
		},
	}
}

func cmdFolders(e *env) *cli.Command {
	return &cli.Command{
		Name:      "folders",
		Aliases:   []string{"f"},
		Usage:     "List sub-folders of a folder",
		ArgsUsage: "<dir>",
		Action: func(ctx context.Context, c *cli.Command) error {
			dir, err := requireArg(c, "dir")
			if err != nil {
				return err
			}

			folders, err := gallery.NewBrowser(nil).ListFolders(dir)
			if err != nil {
				return err
			}
			return e.out.folders(folders)
		},
	}
}

func cmdSiblings(e *env) *cli.Command {
	return &cli.Command{
		Name:      "siblings",
		Usage:     "List folders next to a folder",
		ArgsUsage: "<dir>",
		Action: func(ctx context.Context, c *cli.Command) error {
			dir, err := requireArg(c, "dir")
			if err != nil {
				return err
			}

			siblings, err := gallery.Siblings(dir)
			if err != nil {
				return err
			}
			return e.out.paths(siblings)
		},
	}
}

func cmdExtract(e *env) *cli.Command {
	var dest, name string

	return &cli.Command{
		Name:      "extract",
		Aliases:   []string{"x"},
		Usage:     "Extract a zip archive into the cache root or a chosen directory",
		ArgsUsage: "<archive>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dest",
				Aliases:     []string{"d"},
				Usage:       "Extract into this directory instead of the cache root",
				Destination: &dest,
			},
			&cli.StringFlag{
				Name:        "name",
				Aliases:     []string{"n"},
				Usage:       "Cache directory name (default: archive file name without extension)",
				Destination: &name,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			archivePath, err := requireArg(c, "archive")
			if err != nil {
				return err
			}

			if dest != "" {
				res, err := e.extractor.Extract(ctx, archivePath, dest)
				if err != nil {
					return err
				}
				return e.out.extracted(res)
			}

			// Scoped directories would vanish on exit, so the CLI always keeps its output
			sess, err := session.New(session.Options{
				TempRoot:      e.cfg.Storage.TempRoot,
				CacheRoot:     e.cfg.Storage.CacheRoot,
				DefaultPolicy: temparea.Named,
				Extractor:     e.extractor,
				Logger:        e.log,
			})
			if err != nil {
				return err
			}
			defer sess.Close()

			res, err := sess.OpenArchive(ctx, archivePath, name)
			if err != nil {
				return err
			}
			return e.out.extracted(res)
		},
	}
}

func cmdEntries(e *env) *cli.Command {
	return &cli.Command{
		Name:      "entries",
		Aliases:   []string{"ls"},
		Usage:     "List the members of a zip archive without extracting it",
		ArgsUsage: "<archive>",
		Action: func(ctx context.Context, c *cli.Command) error {
			archivePath, err := requireArg(c, "archive")
			if err != nil {
				return err
			}

			entries, err := e.extractor.List(filepath.Clean(archivePath))
			if err != nil {
				return err
			}
			return e.out.entries(entries)
		},
	}
}
