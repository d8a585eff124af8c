package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/atlanticdynamic/vaultlight/internal/logging"
	"github.com/atlanticdynamic/vaultlight/internal/logging/writers"
)

// logHandler builds the slog handler for a command invocation. Logs default
// to stderr so stdout stays clean for reports and piped output; CI runs and
// file targets get JSON regardless of the flag.
func logHandler(cmd *cli.Command) slog.Handler {
	level := cmd.Root().String("log-level")

	output := cmd.Root().String("log-output")
	writer, err := writers.CreateWriter(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, logging to stderr\n", err)
		writer = os.Stderr
		output = "stderr"
	}

	jsonLogs := cmd.Root().Bool("json-logs") || logging.IsCI() ||
		writers.ParseWriterType(output) == writers.WriterTypeFile
	if jsonLogs {
		return logging.SetupHandlerJSON(level, writer)
	}
	return logging.SetupHandlerText(level, writer)
}
