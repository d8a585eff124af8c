package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/robbyt/go-supervisor/runnables/httpserver"
	"github.com/robbyt/go-supervisor/supervisor"
	"github.com/urfave/cli/v3"
)

var serveCmd = &cli.Command{
	Name:      "serve",
	Usage:     "Serve an exported site locally for preview",
	ArgsUsage: "<site-dir>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "listen",
			Aliases: []string{"a"},
			Usage:   "Address to listen on",
			Value:   "127.0.0.1:8080",
		},
	},
	Suggest: true,
	Action:  serveAction,
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	dir := "."
	if cmd.Args().Len() > 0 {
		dir = cmd.Args().Get(0)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("site directory %s does not exist; run an export first", dir)
	}

	listenAddr := cmd.String("listen")
	handler := logHandler(cmd)

	fileServer := http.FileServer(http.Dir(dir))
	route, err := httpserver.NewRouteFromHandlerFunc("static", "/", fileServer.ServeHTTP)
	if err != nil {
		return fmt.Errorf("failed to create route: %w", err)
	}

	configCallback := func() (*httpserver.Config, error) {
		return httpserver.NewConfig(listenAddr, []httpserver.Route{*route})
	}
	runner, err := httpserver.NewRunner(
		httpserver.WithConfigCallback(configCallback),
	)
	if err != nil {
		return fmt.Errorf("failed to create HTTP server runner: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	super, err := supervisor.New(
		supervisor.WithContext(ctx),
		supervisor.WithLogHandler(handler),
		supervisor.WithRunnables(runner),
	)
	if err != nil {
		return fmt.Errorf("failed to create supervisor: %w", err)
	}

	fmt.Printf("Serving %s on http://%s\n", dir, listenAddr)
	if err := super.Run(); err != nil {
		return fmt.Errorf("failed to run server: %w", err)
	}
	return nil
}
