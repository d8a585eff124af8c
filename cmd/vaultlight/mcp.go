package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/urfave/cli/v3"

	"github.com/atlanticdynamic/vaultlight/internal/logging"
	"github.com/atlanticdynamic/vaultlight/internal/mcptool"
)

var mcpCmd = &cli.Command{
	Name:   "mcp",
	Usage:  "Run an MCP server exposing vault tools over stdio",
	Action: mcpAction,
}

func mcpAction(ctx context.Context, cmd *cli.Command) error {
	// stdout belongs to the MCP transport; logs must stay on stderr and be
	// machine-parseable for the host process.
	handler := logging.SetupHandlerJSON(cmd.Root().String("log-level"), os.Stderr)

	svc := mcptool.New(handler)
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "vaultlight",
		Version: cmd.Root().Version,
	}, nil)
	svc.Register(srv)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx, &mcp.StdioTransport{})
}
