// Command djinn-index manages the djinnsearch content index: it creates the
// index, loads documents from JSON files, deletes them and runs ad hoc
// queries through the same search pipeline the server uses.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/djinnsearch/internal/config"
	logpkg "github.com/kailas-cloud/djinnsearch/internal/logger"
	"github.com/kailas-cloud/djinnsearch/internal/version"
)

const (
	metaConfig = "config"
	metaLogger = "logger"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:    "djinn-index",
		Usage:   "Manage the djinnsearch content index",
		Version: version.Version,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file (default: config/<ENV>.yaml)",
				EnvVars: []string{"DJINN_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setup,
		After:  teardown,
		Commands: []*cli.Command{
			{
				Name:   "create",
				Usage:  "Create an empty index at engine.index_path",
				Action: createCommand,
			},
			{
				Name:      "index",
				Usage:     "Index documents from JSON or JSON Lines files",
				ArgsUsage: "FILE...",
				Action:    indexCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of files decoded concurrently",
						Value: 4,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Documents written per batch (default: engine.index_batch_size)",
					},
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete documents by id",
				ArgsUsage: "ID...",
				Action:    deleteCommand,
			},
			{
				Name:   "count",
				Usage:  "Print the number of indexed documents",
				Action: countCommand,
			},
			{
				Name:      "query",
				Usage:     "Run a search as a user and print the result as JSON",
				ArgsUsage: "TEXT",
				Action:    queryCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "user",
						Aliases:  []string{"u"},
						Usage:    "Username to search as",
						Required: true,
					},
					&cli.Int64Flag{
						Name:  "group",
						Usage: "Restrict to one group's content",
					},
					&cli.StringFlag{
						Name:  "owner",
						Usage: "Restrict to one user's content",
					},
					&cli.StringSliceFlag{
						Name:  "content-type",
						Usage: "Filter by content type (repeatable)",
					},
					&cli.StringFlag{
						Name:  "order",
						Usage: "Result ordering (relevance, changed, -changed, title)",
					},
					&cli.IntFlag{
						Name:  "page",
						Usage: "Result page, starting at 1",
					},
				},
			},
		},
	}
}

// setup loads the configuration and builds the logger shared by all commands.
func setup(c *cli.Context) error {
	var (
		cfg config.Config
		err error
	)
	if path := c.String("config"); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load(config.GetEnv())
	}
	if err != nil {
		return err
	}

	logger, err := logpkg.NewLogger("cli", c.String("log-level"))
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	c.App.Metadata = map[string]any{
		metaConfig: cfg,
		metaLogger: logger,
	}
	return nil
}

func teardown(c *cli.Context) error {
	if l, ok := c.App.Metadata[metaLogger].(*zap.Logger); ok {
		_ = l.Sync()
	}
	return nil
}

func configFrom(c *cli.Context) config.Config {
	cfg, _ := c.App.Metadata[metaConfig].(config.Config)
	return cfg
}

func loggerFrom(c *cli.Context) *zap.Logger {
	if l, ok := c.App.Metadata[metaLogger].(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
