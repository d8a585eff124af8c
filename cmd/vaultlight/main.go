package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/atlanticdynamic/vaultlight/internal/logging"
)

// Version is set during build using ldflags
var Version = "dev"

func main() {
	app := &cli.Command{
		Name:    "vaultlight",
		Version: Version,
		Usage:   "Export Obsidian vaults as static websites",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Log level (trace, debug, info, warn, error)",
				Value:   logging.LevelFromEnv("info"),
			},
			&cli.BoolFlag{
				Name:  "json-logs",
				Usage: "Emit logs as JSON instead of styled text (always on in CI)",
			},
			&cli.StringFlag{
				Name:  "log-output",
				Usage: "Log destination: stderr, stdout, or a file path",
				Value: "stderr",
			},
		},
		Commands: []*cli.Command{
			exportCmd,
			validateCmd,
			serveCmd,
			mcpCmd,
			{
				Name:  "version",
				Usage: "Print the version information",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Printf("vaultlight version %s\n", cmd.Root().Version)
					return nil
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
